// internal/domain/order/entity.go
package order

import (
	"time"

	"github.com/your-org/marketplace-backend/internal/domain/product"
)

// Status represents the fulfillment status of an order or sub-order.
// Sub-orders move pending → processing → shipped, driven by the seller.
// A pending sub-order may be cancelled; shipped and cancelled are terminal.
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusCancelled  Status = "cancelled"
)

var validTransitions = map[Status][]Status{
	StatusPending:    {StatusProcessing, StatusCancelled},
	StatusProcessing: {StatusShipped},
}

// CanTransition reports whether a sub-order may move from one status to
// another.
func CanTransition(from, to Status) bool {
	for _, allowed := range validTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transitions are allowed
func (s Status) IsTerminal() bool {
	return len(validTransitions[s]) == 0
}

// Order is the umbrella record for one checkout event, spanning possibly
// multiple stores. Never deleted; it is the buyer's audit trail.
type Order struct {
	ID     string `gorm:"primaryKey;size:36" json:"id"`
	UserID uint   `gorm:"not null;index" json:"user_id"`

	// TotalAmount is the sum of all sub-order subtotals, in cents.
	TotalAmount int64  `gorm:"not null" json:"total_amount"`
	Status      Status `gorm:"not null;default:'pending'" json:"status"`

	StoreOrders []StoreOrder `gorm:"foreignKey:OrderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// StoreOrder is the per-store portion of an umbrella order, independently
// progressed through fulfillment by its seller.
type StoreOrder struct {
	ID      string `gorm:"primaryKey;size:36" json:"id"`
	OrderID string `gorm:"not null;size:36;index" json:"order_id"`
	StoreID string `gorm:"not null;size:36;index" json:"store_id"`
	UserID  uint   `gorm:"not null;index" json:"user_id"`

	Items []Item `gorm:"foreignKey:StoreOrderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"items"`

	// Subtotal is Σ item price × quantity over Items, in cents.
	Subtotal int64  `gorm:"not null" json:"subtotal"`
	Status   Status `gorm:"not null;default:'pending'" json:"status"`
	Notes    string `gorm:"type:text" json:"notes,omitempty"`

	CustomerInfo CustomerInfo `gorm:"type:jsonb;serializer:json" json:"customer_info"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Item is an immutable snapshot of a cart line at purchase time. It keeps
// the product name and image the buyer saw even if the listing later changes.
type Item struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	StoreOrderID string `gorm:"not null;size:36;index" json:"store_order_id"`
	ProductID    string `gorm:"not null;size:36;index" json:"product_id"`
	StoreID      string `gorm:"not null;size:36" json:"store_id"`

	ProductName  string `gorm:"not null;size:255" json:"product_name"`
	ProductImage string `gorm:"size:500" json:"product_image"`

	Quantity      int            `gorm:"not null" json:"quantity"`
	SelectedSize  *string        `gorm:"size:10" json:"selected_size,omitempty"`
	SelectedColor *product.Color `gorm:"type:jsonb;serializer:json" json:"selected_color,omitempty"`

	// Price is the unit price in cents; TotalPrice is Price × Quantity.
	Price      int64 `gorm:"not null" json:"price"`
	TotalPrice int64 `gorm:"not null" json:"total_price"`

	CreatedAt time.Time `json:"created_at"`
}

// CustomerInfo is the buyer contact snapshot taken at checkout
type CustomerInfo struct {
	Name     string    `json:"name"`
	Phone    string    `json:"phone"`
	Email    string    `json:"email"`
	Address  string    `json:"address"`
	Location *GeoPoint `json:"location,omitempty"`
}

// GeoPoint is an optional delivery coordinate
type GeoPoint struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// TableName overrides
func (Order) TableName() string      { return "orders" }
func (StoreOrder) TableName() string { return "store_orders" }
func (Item) TableName() string       { return "order_items" }

// OrdersByStore returns the sub-orders keyed by store id. Keys equal the set
// of distinct store ids present in the originating cart.
func (o *Order) OrdersByStore() map[string]*StoreOrder {
	byStore := make(map[string]*StoreOrder, len(o.StoreOrders))
	for i := range o.StoreOrders {
		byStore[o.StoreOrders[i].StoreID] = &o.StoreOrders[i]
	}
	return byStore
}

type orderJSON struct {
	ID            string                 `json:"id"`
	UserID        uint                   `json:"user_id"`
	TotalAmount   int64                  `json:"total_amount"`
	Status        Status                 `json:"status"`
	OrdersByStore map[string]*StoreOrder `json:"orders_by_store"`
	CreatedAt     time.Time              `json:"created_at"`
	UpdatedAt     time.Time              `json:"updated_at"`
}

// View returns the API representation with sub-orders keyed by store
func (o *Order) View() interface{} {
	return orderJSON{
		ID:            o.ID,
		UserID:        o.UserID,
		TotalAmount:   o.TotalAmount,
		Status:        o.Status,
		OrdersByStore: o.OrdersByStore(),
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
	}
}

// DeriveStatus computes the umbrella status from its sub-orders: cancelled
// when every sub-order is cancelled, shipped when every remaining sub-order
// has shipped, processing once any seller has started, otherwise pending.
func DeriveStatus(subOrders []StoreOrder) Status {
	if len(subOrders) == 0 {
		return StatusPending
	}

	allCancelled := true
	allDone := true
	anyStarted := false

	for _, so := range subOrders {
		if so.Status != StatusCancelled {
			allCancelled = false
		}
		if so.Status != StatusShipped && so.Status != StatusCancelled {
			allDone = false
		}
		if so.Status == StatusProcessing || so.Status == StatusShipped {
			anyStarted = true
		}
	}

	switch {
	case allCancelled:
		return StatusCancelled
	case allDone:
		return StatusShipped
	case anyStarted:
		return StatusProcessing
	default:
		return StatusPending
	}
}
