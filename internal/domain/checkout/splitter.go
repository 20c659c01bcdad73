// internal/domain/checkout/splitter.go
package checkout

import (
	"time"

	"github.com/google/uuid"

	"github.com/your-org/marketplace-backend/internal/domain/cart"
	"github.com/your-org/marketplace-backend/internal/domain/order"
)

// BuildOrder assembles an umbrella order from the buyer's cart lines. Lines
// are grouped by store id before any sub-order is built, so two lines from
// the same store always land in the same sub-order regardless of their
// position in the cart. The function is pure apart from id generation.
//
// TotalAmount is computed over the original lines; each sub-order subtotal
// over its group. The two always agree because grouping is a partition.
func BuildOrder(userID uint, items []cart.Item, customer order.CustomerInfo) *order.Order {
	now := time.Now()

	// Group lines by store, preserving the order stores first appear in
	// the cart.
	storeIDs := make([]string, 0)
	grouped := make(map[string][]cart.Item)
	for _, item := range items {
		if _, seen := grouped[item.StoreID]; !seen {
			storeIDs = append(storeIDs, item.StoreID)
		}
		grouped[item.StoreID] = append(grouped[item.StoreID], item)
	}

	o := &order.Order{
		ID:        uuid.New().String(),
		UserID:    userID,
		Status:    order.StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	for _, storeID := range storeIDs {
		so := order.StoreOrder{
			ID:           uuid.New().String(),
			OrderID:      o.ID,
			StoreID:      storeID,
			UserID:       userID,
			Status:       order.StatusPending,
			CustomerInfo: customer,
			CreatedAt:    now,
			UpdatedAt:    now,
		}

		for _, item := range grouped[storeID] {
			lineTotal := item.Price * int64(item.Quantity)
			so.Items = append(so.Items, order.Item{
				StoreOrderID:  so.ID,
				ProductID:     item.ProductID,
				StoreID:       item.StoreID,
				ProductName:   item.ProductName,
				ProductImage:  item.ProductImage,
				Quantity:      item.Quantity,
				SelectedSize:  item.SelectedSize,
				SelectedColor: item.SelectedColor,
				Price:         item.Price,
				TotalPrice:    lineTotal,
				CreatedAt:     now,
			})
			so.Subtotal += lineTotal
		}

		o.StoreOrders = append(o.StoreOrders, so)
	}

	for _, item := range items {
		o.TotalAmount += item.LineTotal()
	}

	return o
}
