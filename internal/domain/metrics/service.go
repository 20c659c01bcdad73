// internal/domain/metrics/service.go
package metrics

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/your-org/marketplace-backend/internal/config"
	"github.com/your-org/marketplace-backend/internal/domain/order"
)

// Service maintains per-store dashboard metrics. Writes go through a
// row-level lock so concurrent checkouts against the same store never lose
// an increment; reads are cached in redis for the dashboard poll loop.
type Service struct {
	db     *gorm.DB
	cache  *redis.Client
	config *config.Config
	logger *logrus.Logger
}

// NewService creates a new metrics service. cache may be nil, in which case
// dashboard reads always hit the database.
func NewService(db *gorm.DB, cache *redis.Client, cfg *config.Config, logger *logrus.Logger) *Service {
	return &Service{
		db:     db,
		cache:  cache,
		config: cfg,
		logger: logger,
	}
}

func cacheKey(storeID string) string {
	return fmt.Sprintf("metrics:store:%s", storeID)
}

// RecordOrder folds a freshly committed sub-order into its store's metrics:
// order and pending counters go up, the subtotal joins lifetime sales, and
// the sub-order is prepended to the recent list. Creates the row on a
// store's first sale.
func (s *Service) RecordOrder(ctx context.Context, so order.StoreOrder) error {
	entry := RecentOrder{
		StoreOrderID: so.ID,
		OrderID:      so.OrderID,
		Amount:       so.Subtotal,
		Status:       string(so.Status),
		CreatedAt:    so.CreatedAt,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var m StoreMetrics
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("store_id = ?", so.StoreID).
			First(&m).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			m = StoreMetrics{
				StoreID:       so.StoreID,
				TotalOrders:   1,
				PendingOrders: 1,
				TotalSales:    so.Subtotal,
				RecentOrders:  RecentOrderList{entry},
			}
			if err := tx.Create(&m).Error; err != nil {
				return fmt.Errorf("failed to create store metrics: %w", err)
			}
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to load store metrics: %w", err)
		}

		updates := map[string]interface{}{
			"total_orders":   gorm.Expr("total_orders + 1"),
			"pending_orders": gorm.Expr("pending_orders + 1"),
			"total_sales":    gorm.Expr("total_sales + ?", so.Subtotal),
			"recent_orders":  m.RecentOrders.Prepend(entry, s.config.Checkout.RecentOrdersLimit),
		}
		if err := tx.Model(&StoreMetrics{}).Where("store_id = ?", so.StoreID).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to update store metrics: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.invalidate(ctx, so.StoreID)
	return nil
}

// OnStatusChange keeps the pending counter and the recent list in step with
// fulfillment. Failures are logged, never surfaced; metrics lag behind
// orders rather than blocking them.
func (s *Service) OnStatusChange(ctx context.Context, storeID, storeOrderID string, from, to order.Status) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var m StoreMetrics
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("store_id = ?", storeID).
			First(&m).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to load store metrics: %w", err)
		}

		updates := map[string]interface{}{
			"recent_orders": m.RecentOrders.WithStatus(storeOrderID, string(to)),
		}
		if from == order.StatusPending && to != order.StatusPending {
			updates["pending_orders"] = gorm.Expr("GREATEST(pending_orders - 1, 0)")
		}
		if err := tx.Model(&StoreMetrics{}).Where("store_id = ?", storeID).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to update store metrics: %w", err)
		}
		return nil
	})
	if err != nil {
		s.logger.WithError(err).WithFields(logrus.Fields{
			"store_id":       storeID,
			"store_order_id": storeOrderID,
		}).Error("Failed to apply status change to store metrics")
		return
	}

	s.invalidate(ctx, storeID)
}

// Get returns a store's dashboard metrics, served from cache when fresh.
// A store with no sales yet gets a zero-valued row without creating one.
func (s *Service) Get(ctx context.Context, storeID string) (*StoreMetrics, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, cacheKey(storeID)).Result()
		if err == nil {
			var m StoreMetrics
			if err := json.Unmarshal([]byte(cached), &m); err == nil {
				return &m, nil
			}
		}
	}

	var m StoreMetrics
	err := s.db.WithContext(ctx).Where("store_id = ?", storeID).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		m = StoreMetrics{StoreID: storeID, RecentOrders: RecentOrderList{}, UpdatedAt: time.Now()}
	} else if err != nil {
		return nil, fmt.Errorf("failed to get store metrics: %w", err)
	}

	if s.cache != nil {
		if data, err := json.Marshal(m); err == nil {
			if err := s.cache.Set(ctx, cacheKey(storeID), data, s.config.Checkout.DashboardCacheTTL).Err(); err != nil {
				s.logger.WithError(err).WithField("store_id", storeID).Warn("Failed to cache store metrics")
			}
		}
	}

	return &m, nil
}

func (s *Service) invalidate(ctx context.Context, storeID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, cacheKey(storeID)).Err(); err != nil {
		s.logger.WithError(err).WithField("store_id", storeID).Warn("Failed to invalidate metrics cache")
	}
}
