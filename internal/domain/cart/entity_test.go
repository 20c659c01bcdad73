// internal/domain/cart/entity_test.go
package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateTotals(t *testing.T) {
	items := []Item{
		{StoreID: "store-a", Price: 1000, Quantity: 2},
		{StoreID: "store-b", Price: 500, Quantity: 1},
		{StoreID: "store-a", Price: 250, Quantity: 4},
	}

	totals := CalculateTotals(items)

	assert.Equal(t, 3, totals.ItemCount)
	assert.Equal(t, 7, totals.TotalQuantity)
	assert.Equal(t, 2, totals.StoreCount)
	assert.Equal(t, int64(3500), totals.TotalAmount)
}

func TestCalculateTotalsEmpty(t *testing.T) {
	totals := CalculateTotals(nil)

	assert.Zero(t, totals.ItemCount)
	assert.Zero(t, totals.TotalQuantity)
	assert.Zero(t, totals.StoreCount)
	assert.Zero(t, totals.TotalAmount)
}

func TestLineTotal(t *testing.T) {
	item := Item{Price: 1299, Quantity: 3}
	assert.Equal(t, int64(3897), item.LineTotal())
}
