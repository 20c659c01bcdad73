// internal/domain/metrics/entity_test.go
package metrics

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecentOrderListPrepend(t *testing.T) {
	var list RecentOrderList

	list = list.Prepend(RecentOrder{StoreOrderID: "so-1", Amount: 100}, 3)
	list = list.Prepend(RecentOrder{StoreOrderID: "so-2", Amount: 200}, 3)

	require.Len(t, list, 2)
	assert.Equal(t, "so-2", list[0].StoreOrderID)
	assert.Equal(t, "so-1", list[1].StoreOrderID)
}

func TestRecentOrderListPrependBounded(t *testing.T) {
	var list RecentOrderList
	for i := 1; i <= 15; i++ {
		list = list.Prepend(RecentOrder{StoreOrderID: fmt.Sprintf("so-%d", i)}, 10)
	}

	require.Len(t, list, 10)
	assert.Equal(t, "so-15", list[0].StoreOrderID)
	assert.Equal(t, "so-6", list[9].StoreOrderID)
}

func TestRecentOrderListWithStatus(t *testing.T) {
	list := RecentOrderList{
		{StoreOrderID: "so-1", Status: "pending"},
		{StoreOrderID: "so-2", Status: "pending"},
	}

	updated := list.WithStatus("so-2", "processing")

	assert.Equal(t, "pending", updated[0].Status)
	assert.Equal(t, "processing", updated[1].Status)
	// The original list is untouched.
	assert.Equal(t, "pending", list[1].Status)
}
