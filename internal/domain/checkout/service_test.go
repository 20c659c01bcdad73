// internal/domain/checkout/service_test.go
package checkout

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/your-org/marketplace-backend/internal/config"
	"github.com/your-org/marketplace-backend/internal/domain/cart"
	"github.com/your-org/marketplace-backend/internal/domain/order"
	"github.com/your-org/marketplace-backend/internal/domain/user"
)

type fakeCartReader struct {
	items []cart.Item
	err   error
}

func (f *fakeCartReader) ListItems(ctx context.Context, userID uint) ([]cart.Item, error) {
	return f.items, f.err
}

type fakeCommitter struct {
	err     error
	order   *order.Order
	cartIDs []string
	commits int
}

func (f *fakeCommitter) CommitCheckout(ctx context.Context, o *order.Order, cartItemIDs []string) error {
	f.commits++
	if f.err != nil {
		return f.err
	}
	f.order = o
	f.cartIDs = cartItemIDs
	return nil
}

type fakeMetrics struct {
	mu       sync.Mutex
	recorded []string
	failFor  map[string]error
}

func (f *fakeMetrics) RecordOrder(ctx context.Context, so order.StoreOrder) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err, ok := f.failFor[so.StoreID]; ok {
		return err
	}
	f.recorded = append(f.recorded, so.StoreID)
	return nil
}

type fakeLocker struct {
	mu       sync.Mutex
	denied   bool
	held     map[string]bool
	releases int
}

func (f *fakeLocker) Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.denied {
		return false, nil
	}
	if f.held == nil {
		f.held = make(map[string]bool)
	}
	if f.held[key] {
		return false, nil
	}
	f.held[key] = true
	return true, nil
}

func (f *fakeLocker) Release(ctx context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.held, key)
	f.releases++
	return nil
}

type fakePublisher struct {
	err       error
	published int
}

func (f *fakePublisher) PublishOrderCreated(ctx context.Context, o *order.Order) error {
	f.published++
	return f.err
}

func testConfig() *config.Config {
	return &config.Config{
		Checkout: config.CheckoutConfig{
			LockTTL:           30 * time.Second,
			MetricsTimeout:    5 * time.Second,
			RecentOrdersLimit: 10,
		},
	}
}

func testBuyer() *user.User {
	return &user.User{
		ID:       7,
		Email:    "ana@example.com",
		FullName: "Ana Torres",
		Phone:    "+34600000000",
		Street:   "Calle Mayor 1",
		City:     "Madrid",
		Country:  "Spain",
	}
}

func testItems() []cart.Item {
	return []cart.Item{
		{ID: "c1", ProductID: "p1", StoreID: "store-a", Price: 1000, Quantity: 2},
		{ID: "c2", ProductID: "p2", StoreID: "store-b", Price: 500, Quantity: 1},
	}
}

func newTestService(carts *fakeCartReader, committer *fakeCommitter, metrics *fakeMetrics, locker *fakeLocker, publisher EventPublisher) *Service {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return NewService(testConfig(), logger, carts, committer, metrics, locker, publisher)
}

func TestCheckoutSuccess(t *testing.T) {
	committer := &fakeCommitter{}
	metrics := &fakeMetrics{}
	locker := &fakeLocker{}
	svc := newTestService(&fakeCartReader{items: testItems()}, committer, metrics, locker, nil)

	o, err := svc.Checkout(context.Background(), testBuyer(), "leave at the door")
	require.NoError(t, err)
	require.NotNil(t, o)

	assert.Equal(t, int64(2500), o.TotalAmount)
	require.Len(t, o.StoreOrders, 2)
	for _, so := range o.StoreOrders {
		assert.Equal(t, "leave at the door", so.Notes)
		assert.Equal(t, "Ana Torres", so.CustomerInfo.Name)
	}

	assert.Equal(t, o.ID, committer.order.ID)
	assert.Equal(t, []string{"c1", "c2"}, committer.cartIDs)
	assert.ElementsMatch(t, []string{"store-a", "store-b"}, metrics.recorded)
	assert.Equal(t, 1, locker.releases)
}

func TestCheckoutEmptyCart(t *testing.T) {
	committer := &fakeCommitter{}
	svc := newTestService(&fakeCartReader{}, committer, &fakeMetrics{}, &fakeLocker{}, nil)

	_, err := svc.Checkout(context.Background(), testBuyer(), "")
	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Zero(t, committer.commits)
}

func TestCheckoutIncompleteProfile(t *testing.T) {
	committer := &fakeCommitter{}
	svc := newTestService(&fakeCartReader{items: testItems()}, committer, &fakeMetrics{}, &fakeLocker{}, nil)

	buyer := testBuyer()
	buyer.Phone = ""
	buyer.Street = ""
	buyer.City = ""
	buyer.Country = ""

	_, err := svc.Checkout(context.Background(), buyer, "")
	assert.ErrorIs(t, err, ErrIncompleteProfile)
	assert.Contains(t, err.Error(), "phone")
	assert.Contains(t, err.Error(), "address")
	assert.Zero(t, committer.commits)
}

func TestCheckoutGeolocationSatisfiesAddress(t *testing.T) {
	committer := &fakeCommitter{}
	svc := newTestService(&fakeCartReader{items: testItems()}, committer, &fakeMetrics{}, &fakeLocker{}, nil)

	buyer := testBuyer()
	buyer.Street = ""
	buyer.City = ""
	buyer.Country = ""
	buyer.Geolocation = &user.Geolocation{Latitude: 40.4168, Longitude: -3.7038, Address: "Puerta del Sol, Madrid"}

	o, err := svc.Checkout(context.Background(), buyer, "")
	require.NoError(t, err)
	require.NotEmpty(t, o.StoreOrders)
	info := o.StoreOrders[0].CustomerInfo
	require.NotNil(t, info.Location)
	assert.Equal(t, 40.4168, info.Location.Latitude)
	assert.Equal(t, "Puerta del Sol, Madrid", info.Address)
}

func TestCheckoutCommitFailure(t *testing.T) {
	boom := errors.New("connection reset")
	committer := &fakeCommitter{err: boom}
	metrics := &fakeMetrics{}
	locker := &fakeLocker{}
	svc := newTestService(&fakeCartReader{items: testItems()}, committer, metrics, locker, nil)

	_, err := svc.Checkout(context.Background(), testBuyer(), "")
	require.Error(t, err)

	var commitErr *CommitError
	require.ErrorAs(t, err, &commitErr)
	assert.ErrorIs(t, err, boom)

	// Nothing downstream of the commit runs.
	assert.Empty(t, metrics.recorded)
	assert.Equal(t, 1, locker.releases)
}

func TestCheckoutMetricsFailureIsIsolated(t *testing.T) {
	committer := &fakeCommitter{}
	metrics := &fakeMetrics{failFor: map[string]error{"store-a": errors.New("metrics down")}}
	svc := newTestService(&fakeCartReader{items: testItems()}, committer, metrics, &fakeLocker{}, nil)

	o, err := svc.Checkout(context.Background(), testBuyer(), "")
	require.NoError(t, err)
	require.NotNil(t, o)

	// The other store's metrics still land.
	assert.Equal(t, []string{"store-b"}, metrics.recorded)
}

func TestCheckoutRejectsConcurrentSubmission(t *testing.T) {
	committer := &fakeCommitter{}
	svc := newTestService(&fakeCartReader{items: testItems()}, committer, &fakeMetrics{}, &fakeLocker{denied: true}, nil)

	_, err := svc.Checkout(context.Background(), testBuyer(), "")
	assert.ErrorIs(t, err, ErrCheckoutInFlight)
	assert.Zero(t, committer.commits)
}

func TestCheckoutPublisherFailureIsIsolated(t *testing.T) {
	publisher := &fakePublisher{err: errors.New("broker unavailable")}
	svc := newTestService(&fakeCartReader{items: testItems()}, &fakeCommitter{}, &fakeMetrics{}, &fakeLocker{}, publisher)

	o, err := svc.Checkout(context.Background(), testBuyer(), "")
	require.NoError(t, err)
	require.NotNil(t, o)
	assert.Equal(t, 1, publisher.published)
}
