package api

import (
	"net/http"

	"vidtube/internal/service"

	"github.com/gin-gonic/gin"
)

// SubscriptionHandler holds the engagement service dependency.
type SubscriptionHandler struct {
	engagementService service.EngagementService
}

// NewSubscriptionHandler creates a new SubscriptionHandler.
func NewSubscriptionHandler(engagementService service.EngagementService) *SubscriptionHandler {
	return &SubscriptionHandler{engagementService: engagementService}
}

// Toggle flips the caller's subscription to a channel.
func (h *SubscriptionHandler) Toggle(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "failed to get user ID from token")
		return
	}
	channelID, ok := pathObjectID(c, "channelId")
	if !ok {
		return
	}

	subscribed, err := h.engagementService.ToggleSubscription(c.Request.Context(), channelID, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	message := "unsubscribed"
	if subscribed {
		message = "subscribed"
	}
	respond(c, http.StatusOK, gin.H{"subscribed": subscribed}, message)
}

// Subscribers lists a channel's subscribers as public profiles.
func (h *SubscriptionHandler) Subscribers(c *gin.Context) {
	channelID, ok := pathObjectID(c, "channelId")
	if !ok {
		return
	}

	subscribers, err := h.engagementService.ListChannelSubscribers(c.Request.Context(), channelID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respond(c, http.StatusOK, subscribers, "subscribers fetched successfully")
}

// SubscribedChannels lists the channels a user follows as public profiles.
func (h *SubscriptionHandler) SubscribedChannels(c *gin.Context) {
	subscriberID, ok := pathObjectID(c, "subscriberId")
	if !ok {
		return
	}

	channels, err := h.engagementService.ListSubscribedChannels(c.Request.Context(), subscriberID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respond(c, http.StatusOK, channels, "subscribed channels fetched successfully")
}
