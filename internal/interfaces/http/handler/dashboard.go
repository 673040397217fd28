package handler

import (
	"github.com/gin-gonic/gin"
	reportapp "github.com/landlord/backend/internal/application/report"
)

// DashboardHandler handles reporting API endpoints
type DashboardHandler struct {
	BaseHandler
	dashboardService *reportapp.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(dashboardService *reportapp.DashboardService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
	}
}

// RegisterRoutes registers all dashboard routes
func (h *DashboardHandler) RegisterRoutes(rg *gin.RouterGroup) {
	dashboard := rg.Group("/dashboard")
	{
		dashboard.GET("", h.GetDashboard)
		dashboard.GET("/needs-reading", h.NeedsReading)
	}
}

type periodQuery struct {
	Period string `form:"period" binding:"omitempty,period"`
}

// GetDashboard returns the monthly summary, defaulting to the current
// billing period
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	var query periodQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	summary, err := h.dashboardService.GetDashboard(c.Request.Context(), query.Period)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, summary)
}

// NeedsReading lists electricity tenants still without a bill for the period
func (h *DashboardHandler) NeedsReading(c *gin.Context) {
	var query periodQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	tenants, err := h.dashboardService.NeedsReading(c.Request.Context(), query.Period)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, tenants)
}
