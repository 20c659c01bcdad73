// internal/domain/order/entity_test.go
package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name string
		from Status
		to   Status
		want bool
	}{
		{"pending to processing", StatusPending, StatusProcessing, true},
		{"pending to cancelled", StatusPending, StatusCancelled, true},
		{"pending to shipped skips processing", StatusPending, StatusShipped, false},
		{"processing to shipped", StatusProcessing, StatusShipped, true},
		{"processing cannot cancel", StatusProcessing, StatusCancelled, false},
		{"processing cannot revert", StatusProcessing, StatusPending, false},
		{"shipped is terminal", StatusShipped, StatusCancelled, false},
		{"cancelled is terminal", StatusCancelled, StatusPending, false},
		{"cancelled cannot ship", StatusCancelled, StatusShipped, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanTransition(tt.from, tt.to))
		})
	}
}

func TestStatusIsTerminal(t *testing.T) {
	assert.False(t, StatusPending.IsTerminal())
	assert.False(t, StatusProcessing.IsTerminal())
	assert.True(t, StatusShipped.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
}

func TestDeriveStatus(t *testing.T) {
	sub := func(statuses ...Status) []StoreOrder {
		out := make([]StoreOrder, len(statuses))
		for i, s := range statuses {
			out[i] = StoreOrder{Status: s}
		}
		return out
	}

	tests := []struct {
		name      string
		subOrders []StoreOrder
		want      Status
	}{
		{"no sub orders", nil, StatusPending},
		{"all pending", sub(StatusPending, StatusPending), StatusPending},
		{"one processing", sub(StatusPending, StatusProcessing), StatusProcessing},
		{"one shipped one pending", sub(StatusShipped, StatusPending), StatusProcessing},
		{"all shipped", sub(StatusShipped, StatusShipped), StatusShipped},
		{"shipped and cancelled", sub(StatusShipped, StatusCancelled), StatusShipped},
		{"all cancelled", sub(StatusCancelled, StatusCancelled), StatusCancelled},
		{"cancelled and pending", sub(StatusCancelled, StatusPending), StatusPending},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveStatus(tt.subOrders))
		})
	}
}

func TestOrdersByStore(t *testing.T) {
	o := &Order{
		ID: "order-1",
		StoreOrders: []StoreOrder{
			{ID: "so-1", StoreID: "store-a", Subtotal: 2000},
			{ID: "so-2", StoreID: "store-b", Subtotal: 500},
		},
	}

	byStore := o.OrdersByStore()
	assert.Len(t, byStore, 2)
	assert.Equal(t, "so-1", byStore["store-a"].ID)
	assert.Equal(t, "so-2", byStore["store-b"].ID)
	assert.Equal(t, int64(500), byStore["store-b"].Subtotal)
}
