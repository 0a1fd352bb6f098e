package handlers

import (
	"errors"
	"net/http"
	"strings"

	"laundry_app/internal/intake"
	"laundry_app/internal/middleware"
	"laundry_app/internal/services"

	"github.com/gin-gonic/gin"
)

type IntakeHandler struct {
	intakeService services.IntakeService
}

func NewIntakeHandler(intakeService services.IntakeService) *IntakeHandler {
	return &IntakeHandler{intakeService: intakeService}
}

func intakeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, intake.ErrNameWhatsAppRequired),
		errors.Is(err, intake.ErrLocationMissing),
		errors.Is(err, intake.ErrExpressDisabled),
		errors.Is(err, intake.ErrAlreadySubmitted),
		errors.Is(err, intake.ErrInvalidOrderType):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrLoginRequired):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case strings.Contains(err.Error(), "draft not found"):
		c.JSON(http.StatusNotFound, gin.H{"error": "Draft tidak ditemukan"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func (h *IntakeHandler) Start(c *gin.Context) {
	draft, err := h.intakeService.StartDraft(middleware.UserID(c))
	if err != nil {
		intakeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"draft": draft})
}

func (h *IntakeHandler) Get(c *gin.Context) {
	draft, err := h.intakeService.GetDraft(c.Param("draft_id"))
	if err != nil {
		intakeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"draft": draft})
}

// ResolveLocation accepts device coordinates when the client has them; with
// no body or no fix, the fixed fallback address is used instead.
func (h *IntakeHandler) ResolveLocation(c *gin.Context) {
	var req struct {
		Latitude  *float64 `json:"latitude"`
		Longitude *float64 `json:"longitude"`
	}
	// Missing body means no geolocation fix; fall through with nil coords.
	_ = c.ShouldBindJSON(&req)

	draft, err := h.intakeService.ResolveLocation(c.Param("draft_id"), req.Latitude, req.Longitude)
	if err != nil {
		intakeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"draft": draft})
}

func (h *IntakeHandler) SelectOrderType(c *gin.Context) {
	var req struct {
		OrderType string `json:"order_type" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Format request tidak valid"})
		return
	}

	draft, err := h.intakeService.SelectOrderType(c.Param("draft_id"), req.OrderType)
	if err != nil {
		intakeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"draft": draft})
}

func (h *IntakeHandler) SelectServiceSpeed(c *gin.Context) {
	var req struct {
		ServiceSpeed string `json:"service_speed" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Format request tidak valid"})
		return
	}

	draft, err := h.intakeService.SelectServiceSpeed(c.Param("draft_id"), req.ServiceSpeed)
	if err != nil {
		intakeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"draft": draft})
}

func (h *IntakeHandler) AdjustQuantity(c *gin.Context) {
	var req struct {
		ServiceID uint `json:"service_id" binding:"required"`
		Delta     int  `json:"delta" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Format request tidak valid"})
		return
	}

	draft, err := h.intakeService.AdjustQuantity(c.Param("draft_id"), req.ServiceID, req.Delta)
	if err != nil {
		intakeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"draft": draft})
}

func (h *IntakeHandler) AdjustWeight(c *gin.Context) {
	var req struct {
		Delta int `json:"delta" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Format request tidak valid"})
		return
	}

	draft, err := h.intakeService.AdjustWeight(c.Param("draft_id"), req.Delta)
	if err != nil {
		intakeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"draft": draft})
}

func (h *IntakeHandler) SetItemDetail(c *gin.Context) {
	var req struct {
		Category string `json:"category" binding:"required"`
		Count    int    `json:"count"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Format request tidak valid"})
		return
	}

	draft, err := h.intakeService.SetItemDetail(c.Param("draft_id"), req.Category, req.Count)
	if err != nil {
		intakeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"draft": draft})
}

func (h *IntakeHandler) SetContact(c *gin.Context) {
	var req struct {
		CustomerName string `json:"customer_name"`
		WhatsApp     string `json:"whatsapp"`
		Notes        string `json:"notes"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Format request tidak valid"})
		return
	}

	draft, err := h.intakeService.SetContact(c.Param("draft_id"), req.CustomerName, req.WhatsApp, req.Notes)
	if err != nil {
		intakeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"draft": draft})
}

func (h *IntakeHandler) Next(c *gin.Context) {
	draft, err := h.intakeService.NextStep(c.Param("draft_id"))
	if err != nil {
		intakeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"draft": draft})
}

func (h *IntakeHandler) Back(c *gin.Context) {
	draft, err := h.intakeService.PrevStep(c.Param("draft_id"))
	if err != nil {
		intakeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"draft": draft})
}

func (h *IntakeHandler) Quote(c *gin.Context) {
	total, err := h.intakeService.Quote(c.Param("draft_id"))
	if err != nil {
		intakeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"total": total})
}

func (h *IntakeHandler) Submit(c *gin.Context) {
	order, err := h.intakeService.Submit(c.Param("draft_id"), middleware.UserID(c))
	if err != nil {
		intakeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"order":        order,
		"order_number": order.OrderNumber,
	})
}
