package api

import (
	"net/http"
	"strconv"

	"vidtube/internal/service"

	"github.com/gin-gonic/gin"
)

// CommentHandler holds the social service dependency.
type CommentHandler struct {
	socialService service.SocialService
}

// NewCommentHandler creates a new CommentHandler.
func NewCommentHandler(socialService service.SocialService) *CommentHandler {
	return &CommentHandler{socialService: socialService}
}

type CommentRequest struct {
	Content string `json:"content" binding:"required"`
}

func (h *CommentHandler) Create(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "failed to get user ID from token")
		return
	}
	videoID, ok := pathObjectID(c, "videoId")
	if !ok {
		return
	}

	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "validation error: "+err.Error())
		return
	}

	comment, err := h.socialService.CreateComment(c.Request.Context(), videoID, userID, req.Content)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respond(c, http.StatusCreated, comment, "comment added successfully")
}

// ListByVideo returns a page of a video's comments with their authors'
// public profiles. Malformed page/limit values fall back to the defaults.
func (h *CommentHandler) ListByVideo(c *gin.Context) {
	videoID, ok := pathObjectID(c, "videoId")
	if !ok {
		return
	}

	page, _ := strconv.ParseInt(c.DefaultQuery("page", "1"), 10, 64)
	limit, _ := strconv.ParseInt(c.DefaultQuery("limit", "10"), 10, 64)

	comments, err := h.socialService.ListComments(c.Request.Context(), videoID, page, limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respond(c, http.StatusOK, comments, "comments fetched successfully")
}

func (h *CommentHandler) Update(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "failed to get user ID from token")
		return
	}
	commentID, ok := pathObjectID(c, "commentId")
	if !ok {
		return
	}

	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "validation error: "+err.Error())
		return
	}

	comment, err := h.socialService.UpdateComment(c.Request.Context(), commentID, userID, req.Content)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respond(c, http.StatusOK, comment, "comment updated successfully")
}

func (h *CommentHandler) Delete(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "failed to get user ID from token")
		return
	}
	commentID, ok := pathObjectID(c, "commentId")
	if !ok {
		return
	}

	if err := h.socialService.DeleteComment(c.Request.Context(), commentID, userID); err != nil {
		respondServiceError(c, err)
		return
	}
	respond(c, http.StatusOK, nil, "comment deleted successfully")
}
