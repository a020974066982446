package api

import (
	"net/http"

	"vidtube/internal/domain"
	"vidtube/internal/service"

	"github.com/gin-gonic/gin"
)

// LikeHandler holds the engagement service dependency.
type LikeHandler struct {
	engagementService service.EngagementService
}

// NewLikeHandler creates a new LikeHandler.
func NewLikeHandler(engagementService service.EngagementService) *LikeHandler {
	return &LikeHandler{engagementService: engagementService}
}

// ToggleVideoLike flips the caller's like on a video.
func (h *LikeHandler) ToggleVideoLike(c *gin.Context) {
	h.toggle(c, domain.LikeSubjectVideo, "videoId")
}

// ToggleCommentLike flips the caller's like on a comment.
func (h *LikeHandler) ToggleCommentLike(c *gin.Context) {
	h.toggle(c, domain.LikeSubjectComment, "commentId")
}

// ToggleTweetLike flips the caller's like on a tweet.
func (h *LikeHandler) ToggleTweetLike(c *gin.Context) {
	h.toggle(c, domain.LikeSubjectTweet, "tweetId")
}

func (h *LikeHandler) toggle(c *gin.Context, subject domain.LikeSubject, param string) {
	userID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "failed to get user ID from token")
		return
	}
	subjectID, ok := pathObjectID(c, param)
	if !ok {
		return
	}

	liked, err := h.engagementService.ToggleLike(c.Request.Context(), subject, subjectID, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	message := "like removed"
	if liked {
		message = "like added"
	}
	respond(c, http.StatusOK, gin.H{"liked": liked}, message)
}

// LikedVideos lists the published videos the caller has liked.
func (h *LikeHandler) LikedVideos(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "failed to get user ID from token")
		return
	}

	videos, err := h.engagementService.ListLikedVideos(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respond(c, http.StatusOK, videos, "liked videos fetched successfully")
}
