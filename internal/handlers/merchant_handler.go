package handlers

import (
	"context"
	"io"
	"net/http"
	"strconv"

	"laundry_app/internal/middleware"
	"laundry_app/internal/models"
	"laundry_app/internal/services"

	"github.com/gin-gonic/gin"
)

// EventSubscriber delivers re-fetch triggers for one merchant's orders.
type EventSubscriber interface {
	SubscribeOrderEvents(ctx context.Context, merchantID uint) (<-chan string, func())
}

type MerchantHandler struct {
	orderService services.OrderService
	subscriber   EventSubscriber
}

func NewMerchantHandler(orderService services.OrderService, subscriber EventSubscriber) *MerchantHandler {
	return &MerchantHandler{
		orderService: orderService,
		subscriber:   subscriber,
	}
}

// ListOrders returns the merchant's assigned orders, optionally filtered by
// status. Listing is on-demand; the subscribe stream only signals re-fetch.
func (h *MerchantHandler) ListOrders(c *gin.Context) {
	orders, err := h.orderService.GetOrdersByMerchant(middleware.UserID(c), c.Query("status"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

func (h *MerchantHandler) UpdateStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID tidak valid"})
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Format request tidak valid"})
		return
	}

	// Merchants may only touch their own assignments.
	order, err := h.orderService.GetOrder(uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order tidak ditemukan"})
		return
	}
	if order.MerchantID == nil || *order.MerchantID != middleware.UserID(c) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Akses ditolak"})
		return
	}

	updated, err := h.orderService.UpdateStatus(uint(id), req.Status, models.RoleMerchant)
	if err != nil {
		if err == services.ErrUnknownStatus {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": updated})
}

// Subscribe streams order events for this merchant as server-sent events.
// Each event means "re-fetch your list", it carries no incremental diff.
func (h *MerchantHandler) Subscribe(c *gin.Context) {
	merchantID := middleware.UserID(c)

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	events, unsubscribe := h.subscriber.SubscribeOrderEvents(ctx, merchantID)
	defer unsubscribe()

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	c.Stream(func(w io.Writer) bool {
		select {
		case payload, ok := <-events:
			if !ok {
				return false
			}
			c.SSEvent("order", payload)
			return true
		case <-ctx.Done():
			return false
		}
	})
}
