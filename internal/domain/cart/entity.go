// internal/domain/cart/entity.go
package cart

import (
	"time"

	"github.com/your-org/marketplace-backend/internal/domain/product"
)

// Item represents one buyer-selected product variant awaiting checkout.
// Product name, image and unit price are cached at add time so the order
// snapshot reflects what the buyer saw.
type Item struct {
	ID        string `gorm:"primaryKey;size:36" json:"id"`
	UserID    uint   `gorm:"not null;index" json:"user_id"`
	ProductID string `gorm:"not null;size:36;index" json:"product_id"`
	StoreID   string `gorm:"not null;size:36;index" json:"store_id"`

	Quantity      int            `gorm:"not null;default:1" json:"quantity"`
	SelectedSize  *string        `gorm:"size:10" json:"selected_size,omitempty"`
	SelectedColor *product.Color `gorm:"type:jsonb;serializer:json" json:"selected_color,omitempty"`

	// Price is the cached unit price in cents at the time of adding.
	Price        int64  `gorm:"not null" json:"price"`
	ProductName  string `gorm:"not null;size:255" json:"product_name"`
	ProductImage string `gorm:"size:500" json:"product_image"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName overrides the table name
func (Item) TableName() string {
	return "cart_items"
}

// LineTotal returns quantity times cached unit price
func (i *Item) LineTotal() int64 {
	return i.Price * int64(i.Quantity)
}

// Totals represents calculated cart totals
type Totals struct {
	ItemCount     int   `json:"item_count"`     // Number of cart lines
	TotalQuantity int   `json:"total_quantity"` // Sum of all quantities
	StoreCount    int   `json:"store_count"`    // Distinct stores represented
	TotalAmount   int64 `json:"total_amount"`   // Σ price × quantity, in cents
}

// CalculateTotals computes cart totals over a set of lines
func CalculateTotals(items []Item) Totals {
	totals := Totals{ItemCount: len(items)}

	stores := make(map[string]struct{})
	for _, item := range items {
		totals.TotalQuantity += item.Quantity
		totals.TotalAmount += item.LineTotal()
		stores[item.StoreID] = struct{}{}
	}
	totals.StoreCount = len(stores)

	return totals
}
