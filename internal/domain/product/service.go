// internal/domain/product/service.go
package product

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/your-org/marketplace-backend/internal/config"
	"gorm.io/gorm"
)

// Service handles product business logic
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new product service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// CreateProductRequest represents product creation data
type CreateProductRequest struct {
	Name           string        `json:"name" binding:"required"`
	Description    string        `json:"description"`
	Price          int64         `json:"price" binding:"required,min=0"`
	CompareAtPrice *int64        `json:"compare_at_price"`
	Images         []string      `json:"images"`
	Category       string        `json:"category" binding:"required"`
	Subcategory    string        `json:"subcategory"`
	Brand          string        `json:"brand"`
	Condition      Condition     `json:"condition"`
	Sizes          []string      `json:"sizes"`
	Colors         []Color       `json:"colors"`
	Tags           []string      `json:"tags"`
	Measurements   *Measurements `json:"measurements"`
	Stock          int           `json:"stock" binding:"min=0"`
	Status         ProductStatus `json:"status"`
}

// UpdateProductRequest represents product update data
type UpdateProductRequest struct {
	Name           *string        `json:"name"`
	Description    *string        `json:"description"`
	Price          *int64         `json:"price"`
	CompareAtPrice *int64         `json:"compare_at_price"`
	Images         []string       `json:"images"`
	Category       *string        `json:"category"`
	Subcategory    *string        `json:"subcategory"`
	Brand          *string        `json:"brand"`
	Condition      *Condition     `json:"condition"`
	Sizes          []string       `json:"sizes"`
	Colors         []Color        `json:"colors"`
	Tags           []string       `json:"tags"`
	Measurements   *Measurements  `json:"measurements"`
	Stock          *int           `json:"stock"`
	Status         *ProductStatus `json:"status"`
}

// ProductListRequest represents product list query parameters
type ProductListRequest struct {
	Page      int           `form:"page,default=1"`
	Limit     int           `form:"limit,default=20"`
	StoreID   string        `form:"store_id"`
	Category  string        `form:"category"`
	Search    string        `form:"search"`
	Status    ProductStatus `form:"status"`
	MinPrice  *int64        `form:"min_price"`
	MaxPrice  *int64        `form:"max_price"`
	SortBy    string        `form:"sort_by,default=created_at"`
	SortOrder string        `form:"sort_order,default=desc"`
}

// CreateProduct creates a new product under a store
func (s *Service) CreateProduct(storeID string, req *CreateProductRequest) (*Product, error) {
	if req.Condition == "" {
		req.Condition = ConditionGood
	}
	if req.Status == "" {
		req.Status = ProductStatusDraft
	}

	product := Product{
		ID:             uuid.New().String(),
		StoreID:        storeID,
		Name:           req.Name,
		Description:    req.Description,
		Price:          req.Price,
		CompareAtPrice: req.CompareAtPrice,
		Images:         req.Images,
		Category:       req.Category,
		Subcategory:    req.Subcategory,
		Brand:          req.Brand,
		Condition:      req.Condition,
		Sizes:          req.Sizes,
		Colors:         req.Colors,
		Tags:           req.Tags,
		Measurements:   req.Measurements,
		Stock:          req.Stock,
		Status:         req.Status,
	}

	if err := s.db.Create(&product).Error; err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	return &product, nil
}

// GetProduct retrieves a product by id
func (s *Service) GetProduct(productID string) (*Product, error) {
	var product Product
	if err := s.db.Where("id = ?", productID).First(&product).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("product not found")
		}
		return nil, fmt.Errorf("failed to retrieve product: %w", err)
	}
	return &product, nil
}

// ListProducts retrieves products with filtering and pagination. Public
// listings only surface active products; sellers pass an explicit status.
func (s *Service) ListProducts(req *ProductListRequest) ([]Product, int64, error) {
	var products []Product
	var total int64

	query := s.db.Model(&Product{})

	if req.StoreID != "" {
		query = query.Where("store_id = ?", req.StoreID)
	}
	if req.Status != "" {
		query = query.Where("status = ?", req.Status)
	} else {
		query = query.Where("status = ?", ProductStatusActive)
	}
	if req.Category != "" {
		query = query.Where("category = ?", req.Category)
	}
	if req.Search != "" {
		query = query.Where("name ILIKE ? OR brand ILIKE ?", "%"+req.Search+"%", "%"+req.Search+"%")
	}
	if req.MinPrice != nil {
		query = query.Where("price >= ?", *req.MinPrice)
	}
	if req.MaxPrice != nil {
		query = query.Where("price <= ?", *req.MaxPrice)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	orderClause := s.buildOrderClause(req.SortBy, req.SortOrder)
	offset := (req.Page - 1) * req.Limit
	if err := query.Order(orderClause).Offset(offset).Limit(req.Limit).Find(&products).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to retrieve products: %w", err)
	}

	return products, total, nil
}

// UpdateProduct applies a partial update to a product owned by storeID
func (s *Service) UpdateProduct(storeID, productID string, req *UpdateProductRequest) (*Product, error) {
	var product Product
	if err := s.db.Where("id = ? AND store_id = ?", productID, storeID).First(&product).Error; err != nil {
		return nil, fmt.Errorf("product not found: %w", err)
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.CompareAtPrice != nil {
		product.CompareAtPrice = req.CompareAtPrice
	}
	if req.Images != nil {
		product.Images = req.Images
	}
	if req.Category != nil {
		product.Category = *req.Category
	}
	if req.Subcategory != nil {
		product.Subcategory = *req.Subcategory
	}
	if req.Brand != nil {
		product.Brand = *req.Brand
	}
	if req.Condition != nil {
		product.Condition = *req.Condition
	}
	if req.Sizes != nil {
		product.Sizes = req.Sizes
	}
	if req.Colors != nil {
		product.Colors = req.Colors
	}
	if req.Tags != nil {
		product.Tags = req.Tags
	}
	if req.Measurements != nil {
		product.Measurements = req.Measurements
	}
	if req.Stock != nil {
		product.Stock = *req.Stock
	}
	if req.Status != nil {
		product.Status = *req.Status
	}

	if err := s.db.Save(&product).Error; err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	return &product, nil
}

// DeleteProduct soft-deletes a product owned by storeID
func (s *Service) DeleteProduct(storeID, productID string) error {
	result := s.db.Where("id = ? AND store_id = ?", productID, storeID).Delete(&Product{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete product: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("product not found")
	}
	return nil
}

func (s *Service) buildOrderClause(sortBy, sortOrder string) string {
	validSortFields := map[string]bool{
		"created_at": true,
		"updated_at": true,
		"price":      true,
		"name":       true,
	}

	if !validSortFields[sortBy] {
		sortBy = "created_at"
	}
	if sortOrder != "asc" && sortOrder != "desc" {
		sortOrder = "desc"
	}

	return fmt.Sprintf("%s %s", sortBy, sortOrder)
}
