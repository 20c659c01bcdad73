// internal/domain/store/entity.go
package store

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// StoreStatus represents the lifecycle status of a store
type StoreStatus string

const (
	StoreStatusActive   StoreStatus = "active"
	StoreStatusInactive StoreStatus = "inactive"
	StoreStatusPending  StoreStatus = "pending"
)

// Store represents a seller's shop
type Store struct {
	ID           string         `gorm:"primaryKey;size:36" json:"id"`
	OwnerID      uint           `gorm:"not null;uniqueIndex" json:"owner_id"`
	Name         string         `gorm:"not null;size:150" json:"name"`
	Description  string         `gorm:"type:text" json:"description"`
	Logo         string         `gorm:"size:500" json:"logo"`
	BannerImage  string         `gorm:"size:500" json:"banner_image"`
	Location     string         `gorm:"size:255" json:"location"`
	ContactEmail string         `gorm:"size:255" json:"contact_email"`
	ContactPhone string         `gorm:"size:20" json:"contact_phone"`
	Categories   pq.StringArray `gorm:"type:text[]" json:"categories"`
	Rating       float64        `gorm:"default:0" json:"rating"`
	ReviewCount  int            `gorm:"default:0" json:"review_count"`
	Followers    int            `gorm:"default:0" json:"followers"`
	IsVerified   bool           `gorm:"default:false" json:"is_verified"`
	Status       StoreStatus    `gorm:"not null;default:'active'" json:"status"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// Follower links a user to a store they follow
type Follower struct {
	UserID    uint      `gorm:"primaryKey" json:"user_id"`
	StoreID   string    `gorm:"primaryKey;size:36" json:"store_id"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName overrides
func (Store) TableName() string    { return "stores" }
func (Follower) TableName() string { return "store_followers" }
