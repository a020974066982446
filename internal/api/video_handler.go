package api

import (
	"fmt"
	"net/http"
	"strings"

	"vidtube/internal/service"
	"vidtube/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// VideoHandler holds the catalog and media store dependencies.
type VideoHandler struct {
	catalogService service.CatalogService
	media          storage.MediaStorage
}

// NewVideoHandler creates a new VideoHandler.
func NewVideoHandler(catalogService service.CatalogService, media storage.MediaStorage) *VideoHandler {
	return &VideoHandler{catalogService: catalogService, media: media}
}

// --- Request/Response Structs ---

type UploadRequest struct {
	VideoContentType     string `json:"videoContentType" binding:"required"`
	ThumbnailContentType string `json:"thumbnailContentType" binding:"required"`
}

// UploadResponse hands the client two presigned PUT destinations. The keys
// come back in the publish request once the uploads finish.
type UploadResponse struct {
	VideoKey           string `json:"videoKey"`
	VideoUploadURL     string `json:"videoUploadUrl"`
	ThumbnailKey       string `json:"thumbnailKey"`
	ThumbnailUploadURL string `json:"thumbnailUploadUrl"`
}

type PublishRequest struct {
	Title        string  `json:"title" binding:"required"`
	Description  string  `json:"description" binding:"required"`
	VideoKey     string  `json:"videoKey" binding:"required"`
	ThumbnailKey string  `json:"thumbnailKey" binding:"required"`
	Duration     float64 `json:"duration"`
}

type UpdateVideoRequest struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	ThumbnailKey string `json:"thumbnailKey"`
}

// --- Handler Methods ---

// Uploads issues presigned PUT URLs for a video file and its thumbnail.
// The binary bytes never pass through this service.
func (h *VideoHandler) Uploads(c *gin.Context) {
	var req UploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "validation error: "+err.Error())
		return
	}
	if !strings.HasPrefix(req.VideoContentType, "video/") {
		abortWithError(c, http.StatusBadRequest, "videoContentType must be a video type")
		return
	}
	if !strings.HasPrefix(req.ThumbnailContentType, "image/") {
		abortWithError(c, http.StatusBadRequest, "thumbnailContentType must be an image type")
		return
	}

	videoKey := fmt.Sprintf("videos/%s", uuid.New().String())
	thumbnailKey := fmt.Sprintf("thumbnails/%s", uuid.New().String())

	videoURL, err := h.media.PresignUpload(c.Request.Context(), videoKey, req.VideoContentType, storage.DefaultPresignedURLExpiry)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "failed to create upload URL")
		return
	}
	thumbnailURL, err := h.media.PresignUpload(c.Request.Context(), thumbnailKey, req.ThumbnailContentType, storage.DefaultPresignedURLExpiry)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "failed to create upload URL")
		return
	}

	respond(c, http.StatusOK, UploadResponse{
		VideoKey:           videoKey,
		VideoUploadURL:     videoURL,
		ThumbnailKey:       thumbnailKey,
		ThumbnailUploadURL: thumbnailURL,
	}, "upload URLs created successfully")
}

func (h *VideoHandler) List(c *gin.Context) {
	videos, err := h.catalogService.List(c.Request.Context(), service.CatalogQuery{
		Search:   c.Query("query"),
		UserID:   c.Query("userId"),
		SortBy:   c.Query("sortBy"),
		SortType: c.Query("sortType"),
		Page:     c.Query("page"),
		Limit:    c.Query("limit"),
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respond(c, http.StatusOK, videos, "videos fetched successfully")
}

func (h *VideoHandler) Publish(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "failed to get user ID from token")
		return
	}

	var req PublishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "validation error: "+err.Error())
		return
	}

	video, err := h.catalogService.Publish(c.Request.Context(), userID, service.PublishInput{
		Title:        req.Title,
		Description:  req.Description,
		VideoKey:     req.VideoKey,
		ThumbnailKey: req.ThumbnailKey,
		Duration:     req.Duration,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respond(c, http.StatusCreated, video, "video published successfully")
}

// Get fetches a single video with its owner profile. Every successful fetch
// counts as a view; signed-in viewers also get the video added to their
// watch history.
func (h *VideoHandler) Get(c *gin.Context) {
	videoID, ok := pathObjectID(c, "videoId")
	if !ok {
		return
	}

	video, err := h.catalogService.Get(c.Request.Context(), videoID, optionalUserID(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respond(c, http.StatusOK, video, "video fetched successfully")
}

func (h *VideoHandler) Update(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "failed to get user ID from token")
		return
	}
	videoID, ok := pathObjectID(c, "videoId")
	if !ok {
		return
	}

	var req UpdateVideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "validation error: "+err.Error())
		return
	}

	video, err := h.catalogService.Update(c.Request.Context(), userID, videoID, service.UpdateInput{
		Title:        req.Title,
		Description:  req.Description,
		ThumbnailKey: req.ThumbnailKey,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respond(c, http.StatusOK, video, "video updated successfully")
}

func (h *VideoHandler) Delete(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "failed to get user ID from token")
		return
	}
	videoID, ok := pathObjectID(c, "videoId")
	if !ok {
		return
	}

	if err := h.catalogService.Delete(c.Request.Context(), userID, videoID); err != nil {
		respondServiceError(c, err)
		return
	}
	respond(c, http.StatusOK, nil, "video deleted successfully")
}

func (h *VideoHandler) TogglePublish(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "failed to get user ID from token")
		return
	}
	videoID, ok := pathObjectID(c, "videoId")
	if !ok {
		return
	}

	video, err := h.catalogService.TogglePublish(c.Request.Context(), userID, videoID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respond(c, http.StatusOK, video, "publish status toggled successfully")
}
