// internal/domain/product/entity.go
package product

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// ProductStatus represents listing visibility
type ProductStatus string

const (
	ProductStatusActive   ProductStatus = "active"
	ProductStatusInactive ProductStatus = "inactive"
	ProductStatusDraft    ProductStatus = "draft"
)

// Condition grades second-hand clothing
type Condition string

const (
	ConditionNew     Condition = "new"
	ConditionLikeNew Condition = "like-new"
	ConditionGood    Condition = "good"
	ConditionFair    Condition = "fair"
)

// Color is a named color with its hex code
type Color struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

// Measurements captures optional garment dimensions in centimeters
type Measurements struct {
	Bust   *float64 `json:"bust,omitempty"`
	Waist  *float64 `json:"waist,omitempty"`
	Hips   *float64 `json:"hips,omitempty"`
	Length *float64 `json:"length,omitempty"`
	Sleeve *float64 `json:"sleeve,omitempty"`
}

// Product represents a clothing listing belonging to a store
type Product struct {
	ID          string `gorm:"primaryKey;size:36" json:"id"`
	StoreID     string `gorm:"not null;size:36;index" json:"store_id"`
	Name        string `gorm:"not null;size:255" json:"name"`
	Description string `gorm:"type:text" json:"description"`

	// Price is the unit price in cents.
	Price          int64  `gorm:"not null" json:"price"`
	CompareAtPrice *int64 `json:"compare_at_price,omitempty"`

	Images      pq.StringArray `gorm:"type:text[]" json:"images"`
	Category    string         `gorm:"size:100;index" json:"category"`
	Subcategory string         `gorm:"size:100" json:"subcategory"`
	Brand       string         `gorm:"size:100" json:"brand"`
	Condition   Condition      `gorm:"size:20;not null;default:'good'" json:"condition"`

	Sizes        pq.StringArray `gorm:"type:text[]" json:"sizes"`
	Colors       []Color        `gorm:"type:jsonb;serializer:json" json:"colors"`
	Tags         pq.StringArray `gorm:"type:text[]" json:"tags"`
	Measurements *Measurements  `gorm:"type:jsonb;serializer:json" json:"measurements,omitempty"`

	Stock  int           `gorm:"not null;default:0" json:"stock"`
	Status ProductStatus `gorm:"not null;default:'draft'" json:"status"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName overrides the table name
func (Product) TableName() string {
	return "products"
}

// PrimaryImage returns the first image URL, if any
func (p *Product) PrimaryImage() string {
	if len(p.Images) > 0 {
		return p.Images[0]
	}
	return ""
}

// IsPurchasable reports whether the product can be added to a cart
func (p *Product) IsPurchasable(quantity int) bool {
	return p.Status == ProductStatusActive && p.Stock >= quantity
}
