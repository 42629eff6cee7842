package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/slaviors/simenu/models"
)

// MenuRepository defines the interface for menu catalog data access.
type MenuRepository interface {
	FindActive(ctx context.Context) ([]models.MenuItem, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.MenuItem, error)
	Create(ctx context.Context, item *models.MenuItem) error
	Update(ctx context.Context, item *models.MenuItem) error
	Deactivate(ctx context.Context, id uuid.UUID) (int64, error)
}

// GormMenuRepository implements MenuRepository using GORM.
type GormMenuRepository struct {
	db *gorm.DB
}

// NewGormMenuRepository creates a new instance of GormMenuRepository.
func NewGormMenuRepository(db *gorm.DB) MenuRepository {
	return &GormMenuRepository{db: db}
}

// FindActive retrieves active menu items, newest first.
func (r *GormMenuRepository) FindActive(ctx context.Context) ([]models.MenuItem, error) {
	var items []models.MenuItem
	if err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("created_at DESC").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// FindByID retrieves a menu item regardless of its active flag.
func (r *GormMenuRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.MenuItem, error) {
	var item models.MenuItem
	if err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// Create inserts a new menu item.
func (r *GormMenuRepository) Create(ctx context.Context, item *models.MenuItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

// Update saves an existing menu item.
func (r *GormMenuRepository) Update(ctx context.Context, item *models.MenuItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

// Deactivate soft-removes a menu item from the active catalog. Returns the
// number of rows affected so callers can distinguish a missing id.
func (r *GormMenuRepository) Deactivate(ctx context.Context, id uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.MenuItem{}).
		Where("id = ? AND active = ?", id, true).
		Update("active", false)
	return res.RowsAffected, res.Error
}
