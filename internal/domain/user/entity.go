// internal/domain/user/entity.go
package user

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// User represents a marketplace account. Every user is a buyer; a user
// becomes a seller once a store is created and StoreID is set.
type User struct {
	ID       uint    `gorm:"primaryKey" json:"id"`
	Email    string  `gorm:"uniqueIndex;not null;size:255" json:"email"`
	Password string  `gorm:"not null;size:255" json:"-"`
	FullName string  `gorm:"size:150" json:"full_name"`
	Phone    string  `gorm:"size:20" json:"phone"`
	Bio      string  `gorm:"type:text" json:"bio"`
	Avatar   string  `gorm:"size:500" json:"avatar"`
	StoreID  *string `gorm:"size:36;index" json:"store_id,omitempty"`

	// Manual address used as the default delivery address at checkout.
	Street     string `gorm:"size:255" json:"street"`
	City       string `gorm:"size:100" json:"city"`
	PostalCode string `gorm:"size:20" json:"postal_code"`
	Country    string `gorm:"size:100" json:"country"`

	// Geolocation is the optional device-provided delivery point.
	Geolocation *Geolocation `gorm:"type:jsonb;serializer:json" json:"geolocation,omitempty"`

	IsActive    bool           `gorm:"default:true" json:"is_active"`
	LastLoginAt *time.Time     `json:"last_login_at"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// Geolocation is an optional resolved device location
type Geolocation struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Address   string  `json:"address,omitempty"`
}

// TableName overrides the table name for User
func (User) TableName() string {
	return "users"
}

// BeforeCreate hook to normalize fields before user creation
func (u *User) BeforeCreate(tx *gorm.DB) error {
	u.Email = strings.ToLower(u.Email)
	return nil
}

// IsSeller reports whether the user owns a store
func (u *User) IsSeller() bool {
	return u.StoreID != nil && *u.StoreID != ""
}

// DeliveryAddress returns the manual address as a single display line
func (u *User) DeliveryAddress() string {
	parts := make([]string, 0, 4)
	for _, p := range []string{u.Street, u.City, u.PostalCode, u.Country} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}
