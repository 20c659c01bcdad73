// internal/interfaces/http/handlers/store.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/your-org/marketplace-backend/internal/config"
	"github.com/your-org/marketplace-backend/internal/domain/metrics"
	"github.com/your-org/marketplace-backend/internal/domain/store"
	"github.com/your-org/marketplace-backend/internal/domain/user"
	"github.com/your-org/marketplace-backend/internal/interfaces/http/middleware"
)

// StoreHandler handles store endpoints
type StoreHandler struct {
	storeService   *store.Service
	userService    *user.Service
	metricsService *metrics.Service
	config         *config.Config
}

// NewStoreHandler creates a new store handler
func NewStoreHandler(db *gorm.DB, redisClient *redis.Client, cfg *config.Config, logger *logrus.Logger) *StoreHandler {
	return &StoreHandler{
		storeService:   store.NewService(db, cfg, logger),
		userService:    user.NewService(db, cfg),
		metricsService: metrics.NewService(db, redisClient, cfg, logger),
		config:         cfg,
	}
}

// CreateStore handles POST /stores
func (h *StoreHandler) CreateStore(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	var req store.CreateStoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	newStore, err := h.storeService.CreateStore(userID, &req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	// Mark the owner as a seller. New tokens issued from here on carry the
	// store id.
	if err := h.userService.AttachStore(userID, newStore.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to link store to account",
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Store created successfully",
		"data":    newStore,
	})
}

// GetStores handles GET /stores
func (h *StoreHandler) GetStores(c *gin.Context) {
	var req store.StoreListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid query parameters",
		})
		return
	}

	stores, total, err := h.storeService.ListStores(&req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve stores",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Stores retrieved successfully",
		"data": gin.H{
			"stores": stores,
			"total":  total,
			"page":   req.Page,
			"limit":  req.Limit,
		},
	})
}

// GetStore handles GET /stores/:id
func (h *StoreHandler) GetStore(c *gin.Context) {
	storeID := c.Param("id")

	result, err := h.storeService.GetStore(storeID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Store retrieved successfully",
		"data":    result,
	})
}

// UpdateStore handles PUT /stores/:id
func (h *StoreHandler) UpdateStore(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)
	storeID := c.Param("id")

	var req store.UpdateStoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	result, err := h.storeService.UpdateStore(userID, storeID, &req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Store updated successfully",
		"data":    result,
	})
}

// FollowStore handles POST /stores/:id/follow
func (h *StoreHandler) FollowStore(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)
	storeID := c.Param("id")

	if err := h.storeService.Follow(userID, storeID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Store followed successfully",
	})
}

// UnfollowStore handles DELETE /stores/:id/follow
func (h *StoreHandler) UnfollowStore(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)
	storeID := c.Param("id")

	if err := h.storeService.Unfollow(userID, storeID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Store unfollowed successfully",
	})
}

// GetFollowedStores handles GET /stores/following
func (h *StoreHandler) GetFollowedStores(c *gin.Context) {
	userID, _ := middleware.GetUserIDFromContext(c)

	stores, err := h.storeService.ListFollowedStores(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve followed stores",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Followed stores retrieved successfully",
		"data":    stores,
	})
}

// GetDashboard handles GET /seller/dashboard
func (h *StoreHandler) GetDashboard(c *gin.Context) {
	storeID, exists := middleware.GetStoreIDFromContext(c)
	if !exists {
		c.JSON(http.StatusForbidden, gin.H{
			"error": "Seller account required",
		})
		return
	}

	result, err := h.metricsService.Get(c.Request.Context(), storeID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve dashboard metrics",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Dashboard metrics retrieved successfully",
		"data":    result,
	})
}
