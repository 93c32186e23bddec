package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// TreatmentStock is the sentinel stock value for treatments. They are
// services, not inventoried goods, so they are always available.
const TreatmentStock = 999

// Treatment represents a service-type catalog item (facial, massage...)
type Treatment struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	Name        string    `gorm:"size:200;index" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	Price       float64   `json:"price"`
	Duration    string    `gorm:"size:100" json:"duration"` // "60 minutos", "5 sesiones", etc
	Stock       int       `json:"stock"`
	Category    string    `gorm:"size:100;index" json:"category"`
	ImageURL    string    `gorm:"size:1024" json:"image_url"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName Specify table name
func (Treatment) TableName() string {
	return "treatments"
}

// NormalizeForCreate assigns a UUID when the id is empty, forces the
// sentinel stock and stamps both timestamps with the same instant.
func (t *Treatment) NormalizeForCreate(now time.Time) {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	t.Name = strings.TrimSpace(t.Name)
	t.ImageURL = strings.TrimSpace(t.ImageURL)
	t.Stock = TreatmentStock
	t.CreatedAt = now
	t.UpdatedAt = now
}

func (t *Treatment) Validate() error {
	if t.Name == "" {
		return NewValidationError("name", "name is required")
	}
	if t.Price <= 0 {
		return NewValidationError("price", "price must be greater than zero")
	}
	if t.Stock < 0 {
		return NewValidationError("stock", "stock cannot be negative")
	}
	return nil
}

func (t *Treatment) ActiveFlag() bool { return t.IsActive }
