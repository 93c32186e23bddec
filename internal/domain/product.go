package domain

import (
	"strings"
	"time"
)

// Product represents a physical catalog item with tracked stock
type Product struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"size:200;index" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	Price       float64   `json:"price"` // price in colones
	Stock       int       `json:"stock"`
	Category    string    `gorm:"size:100;index" json:"category"`
	ImageURL    string    `gorm:"size:1024" json:"image_url"` // URL to product image (optional)
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName Specify table name
func (Product) TableName() string {
	return "products"
}

// NormalizeForCreate trims text fields and stamps both timestamps with
// the same instant.
func (p *Product) NormalizeForCreate(now time.Time) {
	p.Name = strings.TrimSpace(p.Name)
	p.ImageURL = strings.TrimSpace(p.ImageURL)
	p.CreatedAt = now
	p.UpdatedAt = now
}

func (p *Product) Validate() error {
	if p.Name == "" {
		return NewValidationError("name", "name is required")
	}
	if p.Price <= 0 {
		return NewValidationError("price", "price must be greater than zero")
	}
	if p.Stock < 0 {
		return NewValidationError("stock", "stock cannot be negative")
	}
	return nil
}

func (p *Product) ActiveFlag() bool { return p.IsActive }
