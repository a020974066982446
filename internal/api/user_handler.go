package api

import (
	"errors"
	"net/http"

	"vidtube/internal/domain"
	"vidtube/internal/service"

	"github.com/gin-gonic/gin"
)

// UserHandler holds the account and channel profile dependencies.
type UserHandler struct {
	authService       service.AuthService
	engagementService service.EngagementService
	catalogService    service.CatalogService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(authService service.AuthService, engagementService service.EngagementService, catalogService service.CatalogService) *UserHandler {
	return &UserHandler{
		authService:       authService,
		engagementService: engagementService,
		catalogService:    catalogService,
	}
}

// --- Request/Response Structs ---

type RegisterRequest struct {
	Username   string `json:"username" binding:"required,min=3"`
	Email      string `json:"email" binding:"required,email"`
	FullName   string `json:"fullname" binding:"required"`
	Password   string `json:"password" binding:"required,min=8"`
	Avatar     string `json:"avatar" binding:"required"`
	CoverImage string `json:"coverImage"`
}

type LoginRequest struct {
	// Username accepts either the username or the account email.
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

type LoginResponse struct {
	User         *domain.User `json:"user"`
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
}

type TokenResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// ChannelProfileResponse is a channel page: the public profile plus the
// relation figures for the requesting viewer.
type ChannelProfileResponse struct {
	ID              string `json:"id"`
	Username        string `json:"username"`
	FullName        string `json:"fullname"`
	Avatar          string `json:"avatar"`
	CoverImage      string `json:"coverImage,omitempty"`
	SubscriberCount int64  `json:"subscriberCount"`
	SubscribedTo    int64  `json:"channelsSubscribedToCount"`
	IsSubscribed    bool   `json:"isSubscribed"`
}

// --- Handler Methods ---

func (h *UserHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "validation error: "+err.Error())
		return
	}

	user, err := h.authService.Register(c.Request.Context(), service.RegisterInput{
		Username:   req.Username,
		Email:      req.Email,
		FullName:   req.FullName,
		Password:   req.Password,
		Avatar:     req.Avatar,
		CoverImage: req.CoverImage,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respond(c, http.StatusCreated, user, "user registered successfully")
}

func (h *UserHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "validation error: "+err.Error())
		return
	}

	tokens, user, err := h.authService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrAuthenticationFailed) {
			abortWithError(c, http.StatusUnauthorized, err.Error())
			return
		}
		respondServiceError(c, err)
		return
	}

	respond(c, http.StatusOK, LoginResponse{
		User:         user,
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	}, "logged in successfully")
}

func (h *UserHandler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "validation error: "+err.Error())
		return
	}

	tokens, err := h.authService.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		if errors.Is(err, service.ErrInvalidRefreshToken) {
			abortWithError(c, http.StatusUnauthorized, err.Error())
			return
		}
		respondServiceError(c, err)
		return
	}

	respond(c, http.StatusOK, TokenResponse{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	}, "tokens refreshed successfully")
}

func (h *UserHandler) Logout(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "failed to get user ID from token")
		return
	}

	if err := h.authService.Logout(c.Request.Context(), userID); err != nil {
		respondServiceError(c, err)
		return
	}
	respond(c, http.StatusOK, nil, "logged out successfully")
}

func (h *UserHandler) CurrentUser(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "failed to get user ID from token")
		return
	}

	user, err := h.authService.GetUser(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respond(c, http.StatusOK, user, "current user fetched successfully")
}

// ChannelProfile returns a channel page by username. Subscriber figures are
// recomputed per request; isSubscribed reflects the viewer when one is
// signed in.
func (h *UserHandler) ChannelProfile(c *gin.Context) {
	username := c.Param("username")

	user, err := h.authService.GetUserByUsername(c.Request.Context(), username)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	subscriberCount, err := h.engagementService.CountSubscribers(c.Request.Context(), user.ID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	subscribedTo, err := h.engagementService.ListSubscribedChannels(c.Request.Context(), user.ID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	isSubscribed := false
	if viewerID := optionalUserID(c); viewerID != nil {
		isSubscribed, err = h.engagementService.IsSubscribed(c.Request.Context(), user.ID, *viewerID)
		if err != nil {
			respondServiceError(c, err)
			return
		}
	}

	respond(c, http.StatusOK, ChannelProfileResponse{
		ID:              user.ID.Hex(),
		Username:        user.Username,
		FullName:        user.FullName,
		Avatar:          user.Avatar,
		CoverImage:      user.CoverImage,
		SubscriberCount: subscriberCount,
		SubscribedTo:    int64(len(subscribedTo)),
		IsSubscribed:    isSubscribed,
	}, "channel profile fetched successfully")
}

// WatchHistory returns the caller's watched videos, most recent first.
func (h *UserHandler) WatchHistory(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "failed to get user ID from token")
		return
	}

	videos, err := h.catalogService.WatchHistory(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respond(c, http.StatusOK, videos, "watch history fetched successfully")
}
