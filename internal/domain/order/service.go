// internal/domain/order/service.go
package order

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/your-org/marketplace-backend/internal/config"
	"github.com/your-org/marketplace-backend/internal/domain/cart"
)

var (
	ErrOrderNotFound      = errors.New("order not found")
	ErrStoreOrderNotFound = errors.New("store order not found")
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrCartChanged        = errors.New("cart changed during checkout")
)

// StatusListener is notified after a sub-order status change has been
// committed. Implementations must not block; failures are the listener's
// problem, not the caller's.
type StatusListener interface {
	OnStatusChange(ctx context.Context, storeID, storeOrderID string, from, to Status)
}

// Service handles order persistence and fulfillment progression
type Service struct {
	db       *gorm.DB
	config   *config.Config
	logger   *logrus.Logger
	listener StatusListener
}

// NewService creates a new order service
func NewService(db *gorm.DB, cfg *config.Config, logger *logrus.Logger) *Service {
	return &Service{
		db:     db,
		config: cfg,
		logger: logger,
	}
}

// SetStatusListener registers the post-commit status change hook
func (s *Service) SetStatusListener(l StatusListener) {
	s.listener = l
}

// CommitCheckout writes an assembled order and consumes the cart rows it was
// built from, atomically. If any write fails, or the cart rows were modified
// since the order was assembled, nothing is persisted.
func (s *Service) CommitCheckout(ctx context.Context, o *Order, cartItemIDs []string) error {
	tx := s.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	// Creates the umbrella order, sub-orders and item snapshots in one go
	// through the association graph.
	if err := tx.Create(o).Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to create order: %w", err)
	}

	result := tx.Where("id IN ? AND user_id = ?", cartItemIDs, o.UserID).Delete(&cart.Item{})
	if result.Error != nil {
		tx.Rollback()
		return fmt.Errorf("failed to clear cart: %w", result.Error)
	}
	if result.RowsAffected != int64(len(cartItemIDs)) {
		tx.Rollback()
		return ErrCartChanged
	}

	if err := tx.Commit().Error; err != nil {
		return fmt.Errorf("failed to commit order: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"order_id":     o.ID,
		"user_id":      o.UserID,
		"store_orders": len(o.StoreOrders),
		"total_amount": o.TotalAmount,
	}).Info("Order committed")

	return nil
}

// GetOrder returns a buyer's order with its sub-orders and items
func (s *Service) GetOrder(ctx context.Context, userID uint, orderID string) (*Order, error) {
	var o Order
	err := s.db.WithContext(ctx).
		Preload("StoreOrders").
		Preload("StoreOrders.Items").
		Where("id = ? AND user_id = ?", orderID, userID).
		First(&o).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return &o, nil
}

// ListUserOrders returns a buyer's orders, newest first. With activeOnly set
// it keeps only orders still in flight (pending or processing).
func (s *Service) ListUserOrders(ctx context.Context, userID uint, activeOnly bool, page, limit int) ([]Order, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	query := s.db.WithContext(ctx).Model(&Order{}).Where("user_id = ?", userID)
	if activeOnly {
		query = query.Where("status IN ?", []Status{StatusPending, StatusProcessing})
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	var orders []Order
	err := query.
		Preload("StoreOrders").
		Preload("StoreOrders.Items").
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&orders).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list orders: %w", err)
	}

	return orders, total, nil
}

// ListStoreOrders returns a seller's sub-orders, newest first, optionally
// filtered by status.
func (s *Service) ListStoreOrders(ctx context.Context, storeID string, status Status, page, limit int) ([]StoreOrder, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	query := s.db.WithContext(ctx).Model(&StoreOrder{}).Where("store_id = ?", storeID)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count store orders: %w", err)
	}

	var storeOrders []StoreOrder
	err := query.
		Preload("Items").
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&storeOrders).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list store orders: %w", err)
	}

	return storeOrders, total, nil
}

// GetStoreOrder returns a single sub-order scoped to its store
func (s *Service) GetStoreOrder(ctx context.Context, storeID, storeOrderID string) (*StoreOrder, error) {
	var so StoreOrder
	err := s.db.WithContext(ctx).
		Preload("Items").
		Where("id = ? AND store_id = ?", storeOrderID, storeID).
		First(&so).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStoreOrderNotFound
		}
		return nil, fmt.Errorf("failed to get store order: %w", err)
	}
	return &so, nil
}

// UpdateStoreOrderStatus advances a sub-order through the fulfillment
// machine and re-derives the umbrella order's status in the same
// transaction. The registered status listener is invoked after commit.
func (s *Service) UpdateStoreOrderStatus(ctx context.Context, storeID, storeOrderID string, newStatus Status) (*StoreOrder, error) {
	var so StoreOrder
	var previous Status

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND store_id = ?", storeOrderID, storeID).First(&so).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrStoreOrderNotFound
			}
			return fmt.Errorf("failed to get store order: %w", err)
		}

		if !CanTransition(so.Status, newStatus) {
			return fmt.Errorf("%w: %s → %s", ErrInvalidTransition, so.Status, newStatus)
		}

		previous = so.Status
		so.Status = newStatus
		if err := tx.Model(&StoreOrder{}).Where("id = ?", so.ID).Update("status", newStatus).Error; err != nil {
			return fmt.Errorf("failed to update store order: %w", err)
		}

		var siblings []StoreOrder
		if err := tx.Where("order_id = ?", so.OrderID).Find(&siblings).Error; err != nil {
			return fmt.Errorf("failed to load sibling orders: %w", err)
		}
		derived := DeriveStatus(siblings)
		if err := tx.Model(&Order{}).Where("id = ?", so.OrderID).Update("status", derived).Error; err != nil {
			return fmt.Errorf("failed to update order status: %w", err)
		}

		s.logger.WithFields(logrus.Fields{
			"store_order_id": so.ID,
			"order_id":       so.OrderID,
			"store_id":       storeID,
			"from":           previous,
			"to":             newStatus,
			"order_status":   derived,
		}).Info("Store order status updated")

		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.listener != nil {
		s.listener.OnStatusChange(ctx, storeID, so.ID, previous, so.Status)
	}

	if err := s.db.WithContext(ctx).Preload("Items").First(&so, "id = ?", so.ID).Error; err != nil {
		return nil, fmt.Errorf("failed to reload store order: %w", err)
	}
	return &so, nil
}
