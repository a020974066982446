package api

import (
	"net/http"

	"vidtube/internal/service"

	"github.com/gin-gonic/gin"
)

// TweetHandler holds the social service dependency.
type TweetHandler struct {
	socialService service.SocialService
}

// NewTweetHandler creates a new TweetHandler.
func NewTweetHandler(socialService service.SocialService) *TweetHandler {
	return &TweetHandler{socialService: socialService}
}

type TweetRequest struct {
	Content string `json:"content" binding:"required"`
}

func (h *TweetHandler) Create(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "failed to get user ID from token")
		return
	}

	var req TweetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "validation error: "+err.Error())
		return
	}

	tweet, err := h.socialService.CreateTweet(c.Request.Context(), userID, req.Content)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respond(c, http.StatusCreated, tweet, "tweet created successfully")
}

func (h *TweetHandler) ListByUser(c *gin.Context) {
	userID, ok := pathObjectID(c, "userId")
	if !ok {
		return
	}

	tweets, err := h.socialService.ListTweetsByUser(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respond(c, http.StatusOK, tweets, "tweets fetched successfully")
}

func (h *TweetHandler) Update(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "failed to get user ID from token")
		return
	}
	tweetID, ok := pathObjectID(c, "tweetId")
	if !ok {
		return
	}

	var req TweetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "validation error: "+err.Error())
		return
	}

	tweet, err := h.socialService.UpdateTweet(c.Request.Context(), tweetID, userID, req.Content)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respond(c, http.StatusOK, tweet, "tweet updated successfully")
}

func (h *TweetHandler) Delete(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "failed to get user ID from token")
		return
	}
	tweetID, ok := pathObjectID(c, "tweetId")
	if !ok {
		return
	}

	if err := h.socialService.DeleteTweet(c.Request.Context(), tweetID, userID); err != nil {
		respondServiceError(c, err)
		return
	}
	respond(c, http.StatusOK, nil, "tweet deleted successfully")
}
