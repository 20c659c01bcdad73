// internal/domain/store/service.go
package store

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/your-org/marketplace-backend/internal/config"
	"github.com/your-org/marketplace-backend/internal/domain/metrics"
	"gorm.io/gorm"
)

// Service handles store business logic
type Service struct {
	db     *gorm.DB
	config *config.Config
	logger *logrus.Logger
}

// NewService creates a new store service
func NewService(db *gorm.DB, cfg *config.Config, logger *logrus.Logger) *Service {
	return &Service{
		db:     db,
		config: cfg,
		logger: logger,
	}
}

// CreateStoreRequest represents store creation data
type CreateStoreRequest struct {
	Name         string   `json:"name" binding:"required"`
	Description  string   `json:"description"`
	Logo         string   `json:"logo"`
	BannerImage  string   `json:"banner_image"`
	Location     string   `json:"location"`
	ContactEmail string   `json:"contact_email" binding:"omitempty,email"`
	ContactPhone string   `json:"contact_phone"`
	Categories   []string `json:"categories"`
}

// StoreListRequest represents store list query parameters
type StoreListRequest struct {
	Page     int    `form:"page,default=1"`
	Limit    int    `form:"limit,default=20"`
	Category string `form:"category"`
	Search   string `form:"search"`
}

// CreateStore creates a store for a seller. A user owns at most one store.
func (s *Service) CreateStore(ownerID uint, req *CreateStoreRequest) (*Store, error) {
	var existing Store
	if err := s.db.Where("owner_id = ?", ownerID).First(&existing).Error; err == nil {
		return nil, fmt.Errorf("user already owns a store")
	}

	store := Store{
		ID:           uuid.New().String(),
		OwnerID:      ownerID,
		Name:         req.Name,
		Description:  req.Description,
		Logo:         req.Logo,
		BannerImage:  req.BannerImage,
		Location:     req.Location,
		ContactEmail: req.ContactEmail,
		ContactPhone: req.ContactPhone,
		Categories:   req.Categories,
		Status:       StoreStatusActive,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&store).Error; err != nil {
			return fmt.Errorf("failed to create store: %w", err)
		}
		// Seed the dashboard row so a brand-new store reads as zeroes
		// rather than missing.
		seed := metrics.StoreMetrics{StoreID: store.ID, RecentOrders: metrics.RecentOrderList{}}
		if err := tx.Create(&seed).Error; err != nil {
			return fmt.Errorf("failed to seed store metrics: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"store_id": store.ID,
		"owner_id": ownerID,
	}).Info("store created")

	return &store, nil
}

// GetStore retrieves a store by id
func (s *Service) GetStore(storeID string) (*Store, error) {
	var store Store
	if err := s.db.Where("id = ?", storeID).First(&store).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("store not found")
		}
		return nil, fmt.Errorf("failed to retrieve store: %w", err)
	}
	return &store, nil
}

// GetStoreByOwner retrieves the store owned by a user
func (s *Service) GetStoreByOwner(ownerID uint) (*Store, error) {
	var store Store
	if err := s.db.Where("owner_id = ?", ownerID).First(&store).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("store not found")
		}
		return nil, fmt.Errorf("failed to retrieve store: %w", err)
	}
	return &store, nil
}

// ListStores retrieves active stores with filtering and pagination
func (s *Service) ListStores(req *StoreListRequest) ([]Store, int64, error) {
	var stores []Store
	var total int64

	query := s.db.Model(&Store{}).Where("status = ?", StoreStatusActive)

	if req.Category != "" {
		query = query.Where("? = ANY(categories)", req.Category)
	}
	if req.Search != "" {
		query = query.Where("name ILIKE ?", "%"+req.Search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count stores: %w", err)
	}

	offset := (req.Page - 1) * req.Limit
	if err := query.Order("followers DESC, created_at DESC").
		Offset(offset).Limit(req.Limit).Find(&stores).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to retrieve stores: %w", err)
	}

	return stores, total, nil
}

// UpdateStoreRequest represents store update data
type UpdateStoreRequest struct {
	Name         *string  `json:"name"`
	Description  *string  `json:"description"`
	Logo         *string  `json:"logo"`
	BannerImage  *string  `json:"banner_image"`
	Location     *string  `json:"location"`
	ContactEmail *string  `json:"contact_email"`
	ContactPhone *string  `json:"contact_phone"`
	Categories   []string `json:"categories"`
}

// UpdateStore applies a partial update to a store owned by ownerID
func (s *Service) UpdateStore(ownerID uint, storeID string, req *UpdateStoreRequest) (*Store, error) {
	var store Store
	if err := s.db.Where("id = ? AND owner_id = ?", storeID, ownerID).First(&store).Error; err != nil {
		return nil, fmt.Errorf("store not found: %w", err)
	}

	if req.Name != nil {
		store.Name = *req.Name
	}
	if req.Description != nil {
		store.Description = *req.Description
	}
	if req.Logo != nil {
		store.Logo = *req.Logo
	}
	if req.BannerImage != nil {
		store.BannerImage = *req.BannerImage
	}
	if req.Location != nil {
		store.Location = *req.Location
	}
	if req.ContactEmail != nil {
		store.ContactEmail = *req.ContactEmail
	}
	if req.ContactPhone != nil {
		store.ContactPhone = *req.ContactPhone
	}
	if req.Categories != nil {
		store.Categories = req.Categories
	}

	if err := s.db.Save(&store).Error; err != nil {
		return nil, fmt.Errorf("failed to update store: %w", err)
	}

	return &store, nil
}

// Follow records userID as a follower of storeID and bumps the denormalized
// follower counter in the same transaction.
func (s *Service) Follow(userID uint, storeID string) error {
	var store Store
	if err := s.db.Where("id = ?", storeID).First(&store).Error; err != nil {
		return fmt.Errorf("store not found")
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		follower := Follower{UserID: userID, StoreID: storeID}
		result := tx.Create(&follower)
		if result.Error != nil {
			return fmt.Errorf("already following or failed to follow: %w", result.Error)
		}

		if err := tx.Model(&Store{}).Where("id = ?", storeID).
			UpdateColumn("followers", gorm.Expr("followers + ?", 1)).Error; err != nil {
			return fmt.Errorf("failed to update follower count: %w", err)
		}

		return nil
	})
}

// Unfollow removes the follow relationship and decrements the counter
func (s *Service) Unfollow(userID uint, storeID string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Where("user_id = ? AND store_id = ?", userID, storeID).Delete(&Follower{})
		if result.Error != nil {
			return fmt.Errorf("failed to unfollow: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("not following this store")
		}

		if err := tx.Model(&Store{}).Where("id = ? AND followers > 0", storeID).
			UpdateColumn("followers", gorm.Expr("followers - ?", 1)).Error; err != nil {
			return fmt.Errorf("failed to update follower count: %w", err)
		}

		return nil
	})
}

// IsFollowing reports whether userID follows storeID
func (s *Service) IsFollowing(userID uint, storeID string) (bool, error) {
	var count int64
	err := s.db.Model(&Follower{}).
		Where("user_id = ? AND store_id = ?", userID, storeID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check follow status: %w", err)
	}
	return count > 0, nil
}

// ListFollowedStores returns the stores a user follows
func (s *Service) ListFollowedStores(userID uint) ([]Store, error) {
	var stores []Store
	err := s.db.
		Joins("JOIN store_followers ON store_followers.store_id = stores.id").
		Where("store_followers.user_id = ?", userID).
		Order("store_followers.created_at DESC").
		Find(&stores).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list followed stores: %w", err)
	}
	return stores, nil
}
