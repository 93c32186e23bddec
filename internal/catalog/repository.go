package catalog

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"github.com/kalai-medical/kalaiapi/internal/domain"
)

// Record is the behavior a catalog row must provide to the generic
// repository. Both domain.Product and domain.Treatment implement it.
type Record interface {
	NormalizeForCreate(now time.Time)
	Validate() error
	ActiveFlag() bool
}

// Filter narrows List results. ActiveOnly is set for public callers and
// left false for admin callers, who see inactive records too.
type Filter struct {
	ActiveOnly bool
	Category   string
}

// Changes carries a partial update. Only non-nil fields are written;
// omitted fields keep their stored value.
type Changes struct {
	Name        *string
	Description *string
	Price       *float64
	Stock       *int
	Duration    *string
	Category    *string
	ImageURL    *string
	IsActive    *bool
}

// Repository performs filtered reads and validated mutations for one
// catalog collection. It holds no state besides the shared DB handle;
// the store is the sole source of truth between requests.
type Repository[T any, PT interface {
	Record
	*T
}] struct {
	db *gorm.DB
}

type (
	Products   = Repository[domain.Product, *domain.Product]
	Treatments = Repository[domain.Treatment, *domain.Treatment]
)

func NewProducts(db *gorm.DB) *Products {
	return &Products{db: db}
}

func NewTreatments(db *gorm.DB) *Treatments {
	return &Treatments{db: db}
}

// List returns records newest-first by creation time.
func (r *Repository[T, PT]) List(ctx context.Context, filter Filter) ([]T, error) {
	q := r.db.WithContext(ctx).Model(new(T))
	if filter.ActiveOnly {
		q = q.Where("is_active = ?", true)
	}
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	var recs []T
	if err := q.Order("created_at DESC").Find(&recs).Error; err != nil {
		return nil, errors.Wrap(err, "catalog: list query failed")
	}
	return recs, nil
}

func (r *Repository[T, PT]) Get(ctx context.Context, id interface{}) (PT, error) {
	rec := PT(new(T))
	err := r.db.WithContext(ctx).First(rec, "id = ?", id).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, ErrNotFound
	case err != nil:
		return nil, errors.Wrap(err, "catalog: get query failed")
	}
	return rec, nil
}

// Categories returns the distinct non-empty category values across the
// collection. There is no predefined enumeration.
func (r *Repository[T, PT]) Categories(ctx context.Context) ([]string, error) {
	var cats []string
	err := r.db.WithContext(ctx).Model(new(T)).
		Distinct().
		Where("category IS NOT NULL AND category <> ''").
		Order("category").
		Pluck("category", &cats).Error
	if err != nil {
		return nil, errors.Wrap(err, "catalog: categories query failed")
	}
	return cats, nil
}

// Create validates the record and inserts it. On a validation failure
// nothing is written. The store assigns product ids; treatment ids and
// the sentinel stock come from NormalizeForCreate.
func (r *Repository[T, PT]) Create(ctx context.Context, rec PT) error {
	rec.NormalizeForCreate(time.Now())
	if err := rec.Validate(); err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(rec).Error; err != nil {
		return errors.Wrap(err, "catalog: insert failed")
	}
	return nil
}

// Update merges only the supplied fields onto the stored record and
// refreshes updated_at. An empty Changes is a no-op that returns the
// record unchanged, updated_at included.
func (r *Repository[T, PT]) Update(ctx context.Context, id interface{}, ch Changes) (PT, error) {
	rec, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	updates, err := buildUpdates(ch)
	if err != nil {
		return nil, err
	}
	if len(updates) == 0 {
		return rec, nil
	}
	updates["updated_at"] = time.Now()
	if err := r.db.WithContext(ctx).Model(new(T)).Where("id = ?", id).Updates(updates).Error; err != nil {
		return nil, errors.Wrap(err, "catalog: update failed")
	}
	return r.Get(ctx, id)
}

// Delete removes the record. A second delete of the same id reports
// ErrNotFound instead of silently succeeding.
func (r *Repository[T, PT]) Delete(ctx context.Context, id interface{}) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(new(T))
	if res.Error != nil {
		return errors.Wrap(res.Error, "catalog: delete failed")
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ToggleActive flips the visibility flag. The read and the write are
// separate round trips with no locking: two concurrent toggles on the
// same record can read the same value and the last write wins.
func (r *Repository[T, PT]) ToggleActive(ctx context.Context, id interface{}) (PT, error) {
	rec, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	updates := map[string]interface{}{
		"is_active":  !rec.ActiveFlag(),
		"updated_at": time.Now(),
	}
	if err := r.db.WithContext(ctx).Model(new(T)).Where("id = ?", id).Updates(updates).Error; err != nil {
		return nil, errors.Wrap(err, "catalog: toggle failed")
	}
	return r.Get(ctx, id)
}

// SetStock writes an absolute stock value. Validation happens before
// any store call; an update that matches no row reports ErrNotFound.
func (r *Repository[T, PT]) SetStock(ctx context.Context, id interface{}, stock int) (PT, error) {
	if stock < 0 {
		return nil, domain.NewValidationError("stock", "stock cannot be negative")
	}
	res := r.db.WithContext(ctx).Model(new(T)).Where("id = ?", id).Updates(map[string]interface{}{
		"stock":      stock,
		"updated_at": time.Now(),
	})
	if res.Error != nil {
		return nil, errors.Wrap(res.Error, "catalog: stock update failed")
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return r.Get(ctx, id)
}

func buildUpdates(ch Changes) (map[string]interface{}, error) {
	updates := map[string]interface{}{}
	if ch.Name != nil {
		name := strings.TrimSpace(*ch.Name)
		if name == "" {
			return nil, domain.NewValidationError("name", "name is required")
		}
		updates["name"] = name
	}
	if ch.Description != nil {
		updates["description"] = *ch.Description
	}
	if ch.Price != nil {
		if *ch.Price <= 0 {
			return nil, domain.NewValidationError("price", "price must be greater than zero")
		}
		updates["price"] = *ch.Price
	}
	if ch.Stock != nil {
		if *ch.Stock < 0 {
			return nil, domain.NewValidationError("stock", "stock cannot be negative")
		}
		updates["stock"] = *ch.Stock
	}
	if ch.Duration != nil {
		updates["duration"] = *ch.Duration
	}
	if ch.Category != nil {
		updates["category"] = *ch.Category
	}
	if ch.ImageURL != nil {
		updates["image_url"] = strings.TrimSpace(*ch.ImageURL)
	}
	if ch.IsActive != nil {
		updates["is_active"] = *ch.IsActive
	}
	return updates, nil
}
