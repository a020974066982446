package api

import (
	"net/http"

	"vidtube/internal/service"

	"github.com/gin-gonic/gin"
)

// PlaylistHandler holds the playlist service dependency.
type PlaylistHandler struct {
	playlistService service.PlaylistService
}

// NewPlaylistHandler creates a new PlaylistHandler.
func NewPlaylistHandler(playlistService service.PlaylistService) *PlaylistHandler {
	return &PlaylistHandler{playlistService: playlistService}
}

// --- Request/Response Structs ---

type CreatePlaylistRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type UpdatePlaylistRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// --- Handler Methods ---

func (h *PlaylistHandler) Create(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "failed to get user ID from token")
		return
	}

	var req CreatePlaylistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "validation error: "+err.Error())
		return
	}

	playlist, err := h.playlistService.Create(c.Request.Context(), userID, service.CreatePlaylistInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respond(c, http.StatusCreated, playlist, "playlist created successfully")
}

func (h *PlaylistHandler) Get(c *gin.Context) {
	playlistID, ok := pathObjectID(c, "playlistId")
	if !ok {
		return
	}

	playlist, err := h.playlistService.GetByID(c.Request.Context(), playlistID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respond(c, http.StatusOK, playlist, "playlist fetched successfully")
}

func (h *PlaylistHandler) ListByUser(c *gin.Context) {
	userID, ok := pathObjectID(c, "userId")
	if !ok {
		return
	}

	playlists, err := h.playlistService.ListByOwner(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respond(c, http.StatusOK, playlists, "playlists fetched successfully")
}

func (h *PlaylistHandler) Update(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "failed to get user ID from token")
		return
	}
	playlistID, ok := pathObjectID(c, "playlistId")
	if !ok {
		return
	}

	var req UpdatePlaylistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "validation error: "+err.Error())
		return
	}

	playlist, err := h.playlistService.Update(c.Request.Context(), playlistID, userID, service.UpdatePlaylistInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respond(c, http.StatusOK, playlist, "playlist updated successfully")
}

func (h *PlaylistHandler) Delete(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "failed to get user ID from token")
		return
	}
	playlistID, ok := pathObjectID(c, "playlistId")
	if !ok {
		return
	}

	if err := h.playlistService.Delete(c.Request.Context(), playlistID, userID); err != nil {
		respondServiceError(c, err)
		return
	}
	respond(c, http.StatusOK, nil, "playlist deleted successfully")
}

func (h *PlaylistHandler) AddVideo(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "failed to get user ID from token")
		return
	}
	playlistID, ok := pathObjectID(c, "playlistId")
	if !ok {
		return
	}
	videoID, ok := pathObjectID(c, "videoId")
	if !ok {
		return
	}

	playlist, err := h.playlistService.AddVideo(c.Request.Context(), playlistID, videoID, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respond(c, http.StatusOK, playlist, "video added to playlist")
}

func (h *PlaylistHandler) RemoveVideo(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "failed to get user ID from token")
		return
	}
	playlistID, ok := pathObjectID(c, "playlistId")
	if !ok {
		return
	}
	videoID, ok := pathObjectID(c, "videoId")
	if !ok {
		return
	}

	playlist, err := h.playlistService.RemoveVideo(c.Request.Context(), playlistID, videoID, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respond(c, http.StatusOK, playlist, "video removed from playlist")
}
