// internal/domain/cart/service.go
package cart

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/your-org/marketplace-backend/internal/config"
	"github.com/your-org/marketplace-backend/internal/domain/product"
	"gorm.io/gorm"
)

// Service handles cart business logic
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new cart service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// CartResponse represents a shopping cart with its lines and totals
type CartResponse struct {
	UserID uint   `json:"user_id"`
	Items  []Item `json:"items"`
	Totals Totals `json:"totals"`
}

// AddToCartRequest represents add to cart request
type AddToCartRequest struct {
	ProductID     string         `json:"product_id" binding:"required"`
	Quantity      int            `json:"quantity" binding:"required,min=1"`
	SelectedSize  *string        `json:"selected_size"`
	SelectedColor *product.Color `json:"selected_color"`
}

// UpdateItemRequest represents a cart line quantity update
type UpdateItemRequest struct {
	Quantity int `json:"quantity" binding:"required,min=0"`
}

// GetCart retrieves the buyer's cart
func (s *Service) GetCart(ctx context.Context, userID uint) (*CartResponse, error) {
	items, err := s.ListItems(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &CartResponse{
		UserID: userID,
		Items:  items,
		Totals: CalculateTotals(items),
	}, nil
}

// ListItems returns the buyer's cart lines, oldest first. Checkout reads the
// cart through this method.
func (s *Service) ListItems(ctx context.Context, userID uint) ([]Item, error) {
	var items []Item
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve cart: %w", err)
	}
	return items, nil
}

// AddItem adds a product to the cart, snapshotting its name, image and
// price. Adding the same product/size/color again bumps the quantity.
func (s *Service) AddItem(ctx context.Context, userID uint, req *AddToCartRequest) (*CartResponse, error) {
	var prod product.Product
	result := s.db.WithContext(ctx).
		Where("id = ? AND status = ?", req.ProductID, product.ProductStatusActive).
		First(&prod)
	if result.Error != nil {
		return nil, fmt.Errorf("product not found or inactive")
	}

	if !prod.IsPurchasable(req.Quantity) {
		return nil, fmt.Errorf("insufficient stock. Available: %d", prod.Stock)
	}

	if req.SelectedSize != nil && !containsSize(prod.Sizes, *req.SelectedSize) {
		return nil, fmt.Errorf("size %q not offered for this product", *req.SelectedSize)
	}

	existing, err := s.findMatchingLine(ctx, userID, req)
	if err != nil {
		return nil, err
	}

	if existing != nil {
		newQuantity := existing.Quantity + req.Quantity
		if !prod.IsPurchasable(newQuantity) {
			return nil, fmt.Errorf("insufficient stock for total quantity. Available: %d", prod.Stock)
		}
		existing.Quantity = newQuantity
		existing.Price = prod.Price // refresh in case the listing changed
		if err := s.db.WithContext(ctx).Save(existing).Error; err != nil {
			return nil, fmt.Errorf("failed to update cart item: %w", err)
		}
	} else {
		item := Item{
			ID:            uuid.New().String(),
			UserID:        userID,
			ProductID:     prod.ID,
			StoreID:       prod.StoreID,
			Quantity:      req.Quantity,
			SelectedSize:  req.SelectedSize,
			SelectedColor: req.SelectedColor,
			Price:         prod.Price,
			ProductName:   prod.Name,
			ProductImage:  prod.PrimaryImage(),
		}
		if err := s.db.WithContext(ctx).Create(&item).Error; err != nil {
			return nil, fmt.Errorf("failed to add cart item: %w", err)
		}
	}

	return s.GetCart(ctx, userID)
}

// UpdateItem updates the quantity of a cart line; zero removes it
func (s *Service) UpdateItem(ctx context.Context, userID uint, itemID string, req *UpdateItemRequest) (*CartResponse, error) {
	if req.Quantity == 0 {
		return s.RemoveItem(ctx, userID, itemID)
	}

	var item Item
	if err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", itemID, userID).First(&item).Error; err != nil {
		return nil, fmt.Errorf("cart item not found")
	}

	var prod product.Product
	if err := s.db.WithContext(ctx).Where("id = ?", item.ProductID).First(&prod).Error; err == nil {
		if !prod.IsPurchasable(req.Quantity) {
			return nil, fmt.Errorf("insufficient stock. Available: %d", prod.Stock)
		}
	}

	if err := s.db.WithContext(ctx).Model(&item).Update("quantity", req.Quantity).Error; err != nil {
		return nil, fmt.Errorf("failed to update cart item: %w", err)
	}

	return s.GetCart(ctx, userID)
}

// RemoveItem deletes one cart line
func (s *Service) RemoveItem(ctx context.Context, userID uint, itemID string) (*CartResponse, error) {
	result := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", itemID, userID).Delete(&Item{})
	if result.Error != nil {
		return nil, fmt.Errorf("failed to remove cart item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, fmt.Errorf("cart item not found")
	}

	return s.GetCart(ctx, userID)
}

// ClearCart removes all lines from the buyer's cart
func (s *Service) ClearCart(ctx context.Context, userID uint) error {
	return s.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&Item{}).Error
}

func (s *Service) findMatchingLine(ctx context.Context, userID uint, req *AddToCartRequest) (*Item, error) {
	var items []Item
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, req.ProductID).
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to look up cart: %w", err)
	}

	for i := range items {
		if sameSize(items[i].SelectedSize, req.SelectedSize) && sameColor(items[i].SelectedColor, req.SelectedColor) {
			return &items[i], nil
		}
	}
	return nil, nil
}

func containsSize(sizes []string, size string) bool {
	for _, s := range sizes {
		if s == size {
			return true
		}
	}
	// Products without declared sizes accept any selection.
	return len(sizes) == 0
}

func sameSize(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func sameColor(a, b *product.Color) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Name == b.Name && a.Code == b.Code
}
