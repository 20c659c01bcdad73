// internal/interfaces/http/handlers/order.go
package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/your-org/marketplace-backend/internal/config"
	"github.com/your-org/marketplace-backend/internal/domain/order"
	"github.com/your-org/marketplace-backend/internal/interfaces/http/middleware"
)

// OrderHandler handles order endpoints for buyers and sellers
type OrderHandler struct {
	orderService *order.Service
	config       *config.Config
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService *order.Service, cfg *config.Config) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		config:       cfg,
	}
}

// GetOrders handles GET /orders
func (h *OrderHandler) GetOrders(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	activeOnly := c.Query("active") == "true"

	orders, total, err := h.orderService.ListUserOrders(c.Request.Context(), userID, activeOnly, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve orders",
		})
		return
	}

	views := make([]interface{}, len(orders))
	for i := range orders {
		views[i] = orders[i].View()
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Orders retrieved successfully",
		"data": gin.H{
			"orders": views,
			"total":  total,
			"page":   page,
			"limit":  limit,
		},
	})
}

// GetOrder handles GET /orders/:id
func (h *OrderHandler) GetOrder(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)
	orderID := c.Param("id")

	result, err := h.orderService.GetOrder(c.Request.Context(), userID, orderID)
	if err != nil {
		if errors.Is(err, order.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Order not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve order",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order retrieved successfully",
		"data":    result.View(),
	})
}

// GetStoreOrders handles GET /seller/orders
func (h *OrderHandler) GetStoreOrders(c *gin.Context) {
	storeID, _ := middleware.GetStoreIDFromContext(c)

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	status := order.Status(c.Query("status"))

	storeOrders, total, err := h.orderService.ListStoreOrders(c.Request.Context(), storeID, status, page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve store orders",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Store orders retrieved successfully",
		"data": gin.H{
			"orders": storeOrders,
			"total":  total,
			"page":   page,
			"limit":  limit,
		},
	})
}

// GetStoreOrder handles GET /seller/orders/:id
func (h *OrderHandler) GetStoreOrder(c *gin.Context) {
	storeID, _ := middleware.GetStoreIDFromContext(c)
	storeOrderID := c.Param("id")

	result, err := h.orderService.GetStoreOrder(c.Request.Context(), storeID, storeOrderID)
	if err != nil {
		if errors.Is(err, order.ErrStoreOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Store order not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve store order",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Store order retrieved successfully",
		"data":    result,
	})
}

// UpdateStoreOrderStatusRequest represents a fulfillment status update
type UpdateStoreOrderStatusRequest struct {
	Status order.Status `json:"status" binding:"required"`
}

// UpdateStoreOrderStatus handles PUT /seller/orders/:id/status
func (h *OrderHandler) UpdateStoreOrderStatus(c *gin.Context) {
	storeID, _ := middleware.GetStoreIDFromContext(c)
	storeOrderID := c.Param("id")

	var req UpdateStoreOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	result, err := h.orderService.UpdateStoreOrderStatus(c.Request.Context(), storeID, storeOrderID, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, order.ErrStoreOrderNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Store order not found",
			})
		case errors.Is(err, order.ErrInvalidTransition):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": err.Error(),
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to update store order status",
			})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Store order status updated successfully",
		"data":    result,
	})
}
