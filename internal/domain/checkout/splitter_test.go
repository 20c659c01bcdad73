// internal/domain/checkout/splitter_test.go
package checkout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/your-org/marketplace-backend/internal/domain/cart"
	"github.com/your-org/marketplace-backend/internal/domain/order"
)

func TestBuildOrderSplitsByStore(t *testing.T) {
	items := []cart.Item{
		{ID: "c1", ProductID: "p1", StoreID: "store-a", ProductName: "Denim Jacket", Price: 1000, Quantity: 2},
		{ID: "c2", ProductID: "p2", StoreID: "store-b", ProductName: "Silk Scarf", Price: 500, Quantity: 1},
	}

	o := BuildOrder(7, items, order.CustomerInfo{Name: "Ana", Phone: "+34600000000"})

	require.Len(t, o.StoreOrders, 2)
	assert.Equal(t, int64(2500), o.TotalAmount)
	assert.Equal(t, order.StatusPending, o.Status)
	assert.Equal(t, uint(7), o.UserID)
	assert.NotEmpty(t, o.ID)

	byStore := o.OrdersByStore()
	require.Contains(t, byStore, "store-a")
	require.Contains(t, byStore, "store-b")
	assert.Equal(t, int64(2000), byStore["store-a"].Subtotal)
	assert.Equal(t, int64(500), byStore["store-b"].Subtotal)
	assert.NotEqual(t, byStore["store-a"].ID, byStore["store-b"].ID)
}

func TestBuildOrderMergesInterleavedStoreLines(t *testing.T) {
	// Lines from the same store separated by another store's line must end
	// up in one sub-order, not overwrite each other.
	items := []cart.Item{
		{ID: "c1", ProductID: "p1", StoreID: "store-a", Price: 1000, Quantity: 1},
		{ID: "c2", ProductID: "p2", StoreID: "store-b", Price: 700, Quantity: 1},
		{ID: "c3", ProductID: "p3", StoreID: "store-a", Price: 2000, Quantity: 1},
	}

	o := BuildOrder(7, items, order.CustomerInfo{})

	require.Len(t, o.StoreOrders, 2)
	byStore := o.OrdersByStore()
	require.Len(t, byStore["store-a"].Items, 2)
	assert.Equal(t, int64(3000), byStore["store-a"].Subtotal)
	assert.Equal(t, int64(700), byStore["store-b"].Subtotal)
	assert.Equal(t, int64(3700), o.TotalAmount)
}

func TestBuildOrderTotalMatchesSubtotals(t *testing.T) {
	items := []cart.Item{
		{ID: "c1", StoreID: "store-a", Price: 1234, Quantity: 3},
		{ID: "c2", StoreID: "store-b", Price: 99, Quantity: 7},
		{ID: "c3", StoreID: "store-c", Price: 5000, Quantity: 1},
		{ID: "c4", StoreID: "store-a", Price: 250, Quantity: 2},
	}

	o := BuildOrder(1, items, order.CustomerInfo{})

	var sum int64
	for _, so := range o.StoreOrders {
		sum += so.Subtotal
	}
	assert.Equal(t, o.TotalAmount, sum)
}

func TestBuildOrderSnapshotsItems(t *testing.T) {
	size := "M"
	items := []cart.Item{
		{
			ID:           "c1",
			ProductID:    "p1",
			StoreID:      "store-a",
			ProductName:  "Wool Coat",
			ProductImage: "https://cdn.example.com/coat.jpg",
			SelectedSize: &size,
			Price:        8900,
			Quantity:     1,
		},
	}
	customer := order.CustomerInfo{Name: "Ana", Phone: "+34600000000", Address: "Calle Mayor 1, Madrid"}

	o := BuildOrder(7, items, customer)

	require.Len(t, o.StoreOrders, 1)
	so := o.StoreOrders[0]
	assert.Equal(t, customer, so.CustomerInfo)

	require.Len(t, so.Items, 1)
	item := so.Items[0]
	assert.Equal(t, so.ID, item.StoreOrderID)
	assert.Equal(t, so.StoreID, item.StoreID)
	assert.Equal(t, "Wool Coat", item.ProductName)
	assert.Equal(t, "https://cdn.example.com/coat.jpg", item.ProductImage)
	require.NotNil(t, item.SelectedSize)
	assert.Equal(t, "M", *item.SelectedSize)
	assert.Equal(t, int64(8900), item.TotalPrice)
}
