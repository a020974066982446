package api

import (
	"net/http"

	"vidtube/internal/service"

	"github.com/gin-gonic/gin"
)

// DashboardHandler holds the dashboard service dependency.
type DashboardHandler struct {
	dashboardService service.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(dashboardService service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// Stats returns the caller's channel figures, recomputed on each request.
func (h *DashboardHandler) Stats(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "failed to get user ID from token")
		return
	}

	stats, err := h.dashboardService.Stats(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respond(c, http.StatusOK, stats, "channel stats fetched successfully")
}

// Videos returns every video the caller owns, drafts included.
func (h *DashboardHandler) Videos(c *gin.Context) {
	userID, err := currentUserID(c)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "failed to get user ID from token")
		return
	}

	videos, err := h.dashboardService.Videos(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respond(c, http.StatusOK, videos, "channel videos fetched successfully")
}
