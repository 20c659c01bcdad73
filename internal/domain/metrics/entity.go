// internal/domain/metrics/entity.go
package metrics

import "time"

// StoreMetrics is the per-store dashboard row. Counters only ever move
// through atomic updates inside a transaction; the row is created lazily on
// a store's first sale.
type StoreMetrics struct {
	StoreID string `gorm:"primaryKey;size:36" json:"store_id"`

	TotalOrders   int64 `gorm:"not null;default:0" json:"total_orders"`
	PendingOrders int64 `gorm:"not null;default:0" json:"pending_orders"`

	// TotalSales is lifetime revenue in cents.
	TotalSales int64 `gorm:"not null;default:0" json:"total_sales"`

	RecentOrders RecentOrderList `gorm:"type:jsonb;serializer:json" json:"recent_orders"`

	UpdatedAt time.Time `json:"updated_at"`
}

// TableName overrides the table name
func (StoreMetrics) TableName() string {
	return "store_metrics"
}

// RecentOrder is a dashboard summary of one sub-order
type RecentOrder struct {
	StoreOrderID string    `json:"store_order_id"`
	OrderID      string    `json:"order_id"`
	Amount       int64     `json:"amount"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

// RecentOrderList holds the newest sub-orders first, bounded by the
// configured limit.
type RecentOrderList []RecentOrder

// Prepend inserts an entry at the front and drops anything past limit
func (l RecentOrderList) Prepend(entry RecentOrder, limit int) RecentOrderList {
	out := make(RecentOrderList, 0, limit)
	out = append(out, entry)
	for _, existing := range l {
		if len(out) >= limit {
			break
		}
		out = append(out, existing)
	}
	return out
}

// WithStatus returns a copy with the matching entry's status replaced
func (l RecentOrderList) WithStatus(storeOrderID, status string) RecentOrderList {
	out := make(RecentOrderList, len(l))
	copy(out, l)
	for i := range out {
		if out[i].StoreOrderID == storeOrderID {
			out[i].Status = status
		}
	}
	return out
}
