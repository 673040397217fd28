package handler

import (
	"errors"
	"io"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	rentapp "github.com/landlord/backend/internal/application/rent"
	"github.com/landlord/backend/internal/interfaces/http/middleware"
)

// RentHandler handles rent collection API endpoints
type RentHandler struct {
	BaseHandler
	paymentService *rentapp.PaymentService
}

// NewRentHandler creates a new RentHandler
func NewRentHandler(paymentService *rentapp.PaymentService) *RentHandler {
	return &RentHandler{
		paymentService: paymentService,
	}
}

// RegisterRoutes registers all rent routes
func (h *RentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rent := rg.Group("/rent")
	{
		rent.POST("/rollover", h.Rollover)
		rent.GET("/payments", h.List)
		rent.GET("/payments/:id", h.GetByID)
		rent.POST("/payments/:id/toggle", h.Toggle)
	}
}

// Rollover creates pending rent records for every active rent-subscribed
// tenant missing one for the month. Safe to call repeatedly.
func (h *RentHandler) Rollover(c *gin.Context) {
	// The body is optional; rollover without one targets the current month.
	var req rentapp.RolloverRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		middleware.HandleValidationError(c, err)
		return
	}

	result, err := h.paymentService.Rollover(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// GetByID returns a single rent payment record
func (h *RentHandler) GetByID(c *gin.Context) {
	paymentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid payment ID")
		return
	}

	payment, err := h.paymentService.GetByID(c.Request.Context(), paymentID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, payment)
}

// List returns rent payment records matching the query filters
func (h *RentHandler) List(c *gin.Context) {
	var filter rentapp.PaymentListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	payments, total, err := h.paymentService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, payments, total, filter.Page, filter.PageSize)
}

// Toggle flips a rent record between paid and pending
func (h *RentHandler) Toggle(c *gin.Context) {
	paymentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid payment ID")
		return
	}

	payment, err := h.paymentService.Toggle(c.Request.Context(), paymentID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, payment)
}
