// internal/domain/checkout/service.go
package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/your-org/marketplace-backend/internal/config"
	"github.com/your-org/marketplace-backend/internal/domain/cart"
	"github.com/your-org/marketplace-backend/internal/domain/order"
	"github.com/your-org/marketplace-backend/internal/domain/user"
)

var (
	ErrEmptyCart         = errors.New("cart is empty")
	ErrIncompleteProfile = errors.New("profile is missing delivery details")
	ErrCheckoutInFlight  = errors.New("checkout already in progress")
)

// CommitError wraps a failure of the atomic commit stage. When a checkout
// fails with a CommitError the cart and all order collections are unchanged.
type CommitError struct {
	Err error
}

func (e *CommitError) Error() string {
	return fmt.Sprintf("checkout commit failed: %v", e.Err)
}

func (e *CommitError) Unwrap() error {
	return e.Err
}

// CartReader yields the cart lines checkout consumes
type CartReader interface {
	ListItems(ctx context.Context, userID uint) ([]cart.Item, error)
}

// OrderCommitter persists an assembled order and consumes its cart rows
// atomically.
type OrderCommitter interface {
	CommitCheckout(ctx context.Context, o *order.Order, cartItemIDs []string) error
}

// MetricsRecorder records a committed sub-order against its store's
// dashboard counters.
type MetricsRecorder interface {
	RecordOrder(ctx context.Context, so order.StoreOrder) error
}

// Locker guards against concurrent checkouts by the same buyer
type Locker interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, key string) error
}

// EventPublisher announces committed orders to downstream consumers
type EventPublisher interface {
	PublishOrderCreated(ctx context.Context, o *order.Order) error
}

// Service orchestrates the checkout workflow: read cart, split by store,
// commit atomically, then update store metrics best-effort.
type Service struct {
	config    *config.Config
	logger    *logrus.Logger
	carts     CartReader
	committer OrderCommitter
	metrics   MetricsRecorder
	locker    Locker
	publisher EventPublisher
}

// NewService creates a new checkout service. publisher may be nil when
// event publishing is disabled.
func NewService(cfg *config.Config, logger *logrus.Logger, carts CartReader, committer OrderCommitter, metrics MetricsRecorder, locker Locker, publisher EventPublisher) *Service {
	return &Service{
		config:    cfg,
		logger:    logger,
		carts:     carts,
		committer: committer,
		metrics:   metrics,
		locker:    locker,
		publisher: publisher,
	}
}

// Checkout turns the buyer's cart into a committed order split per store.
// The commit is atomic; metrics and event publishing happen after commit
// and cannot fail the checkout.
func (s *Service) Checkout(ctx context.Context, buyer *user.User, notes string) (*order.Order, error) {
	lockKey := fmt.Sprintf("checkout:user:%d", buyer.ID)
	acquired, err := s.locker.Acquire(ctx, lockKey, s.config.Checkout.LockTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire checkout lock: %w", err)
	}
	if !acquired {
		return nil, ErrCheckoutInFlight
	}
	defer func() {
		if err := s.locker.Release(context.WithoutCancel(ctx), lockKey); err != nil {
			s.logger.WithError(err).WithField("key", lockKey).Warn("Failed to release checkout lock")
		}
	}()

	items, err := s.carts.ListItems(ctx, buyer.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to read cart: %w", err)
	}
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	customer, err := customerInfoFor(buyer)
	if err != nil {
		return nil, err
	}

	o := BuildOrder(buyer.ID, items, customer)
	if notes != "" {
		for i := range o.StoreOrders {
			o.StoreOrders[i].Notes = notes
		}
	}

	cartItemIDs := make([]string, len(items))
	for i, item := range items {
		cartItemIDs[i] = item.ID
	}

	if err := s.committer.CommitCheckout(ctx, o, cartItemIDs); err != nil {
		return nil, &CommitError{Err: err}
	}

	s.recordMetrics(o)

	if s.publisher != nil {
		if err := s.publisher.PublishOrderCreated(context.WithoutCancel(ctx), o); err != nil {
			s.logger.WithError(err).WithField("order_id", o.ID).Warn("Failed to publish order created event")
		}
	}

	return o, nil
}

// recordMetrics updates each affected store's metrics concurrently. The
// order is already committed; a metrics failure is logged and swallowed so
// one store's bad counters never break another's, or the checkout itself.
func (s *Service) recordMetrics(o *order.Order) {
	ctx, cancel := context.WithTimeout(context.Background(), s.config.Checkout.MetricsTimeout)
	defer cancel()

	var wg sync.WaitGroup
	for _, so := range o.StoreOrders {
		wg.Add(1)
		go func(so order.StoreOrder) {
			defer wg.Done()
			if err := s.metrics.RecordOrder(ctx, so); err != nil {
				s.logger.WithError(err).WithFields(logrus.Fields{
					"order_id": o.ID,
					"store_id": so.StoreID,
				}).Error("Failed to record store metrics")
			}
		}(so)
	}
	wg.Wait()
}

func customerInfoFor(buyer *user.User) (order.CustomerInfo, error) {
	address := buyer.DeliveryAddress()

	missing := make([]string, 0, 3)
	if buyer.FullName == "" {
		missing = append(missing, "name")
	}
	if buyer.Phone == "" {
		missing = append(missing, "phone")
	}
	if address == "" && buyer.Geolocation == nil {
		missing = append(missing, "address")
	}
	if len(missing) > 0 {
		return order.CustomerInfo{}, fmt.Errorf("%w: %s", ErrIncompleteProfile, strings.Join(missing, ", "))
	}

	info := order.CustomerInfo{
		Name:    buyer.FullName,
		Phone:   buyer.Phone,
		Email:   buyer.Email,
		Address: address,
	}
	if buyer.Geolocation != nil {
		info.Location = &order.GeoPoint{
			Latitude:  buyer.Geolocation.Latitude,
			Longitude: buyer.Geolocation.Longitude,
		}
		if info.Address == "" {
			info.Address = buyer.Geolocation.Address
		}
	}
	return info, nil
}
