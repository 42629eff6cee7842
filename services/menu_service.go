package services

import (
	"context"
	"errors"
	"mime/multipart"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/slaviors/simenu/cache"
	"github.com/slaviors/simenu/models"
	"github.com/slaviors/simenu/repository"
	"github.com/slaviors/simenu/storage"
)

// MenuUpsertRequest carries the validated fields of a menu create/edit form.
type MenuUpsertRequest struct {
	Name        string
	Description string
	Price       float64
	Category    string
	Image       *multipart.FileHeader // nil keeps the existing image on edit
}

// MenuService defines the business logic for the menu catalog.
type MenuService interface {
	ListActiveMenu(ctx context.Context) ([]models.MenuItemView, *ServiceError)
	CreateMenuItem(ctx context.Context, req *MenuUpsertRequest) (uuid.UUID, *ServiceError)
	UpdateMenuItem(ctx context.Context, id uuid.UUID, req *MenuUpsertRequest) *ServiceError
	DeactivateMenuItem(ctx context.Context, id uuid.UUID) *ServiceError
}

type menuServiceImpl struct {
	menuRepo   repository.MenuRepository
	imageStore storage.ImageStore
	menuCache  *cache.MenuCache
	logger     *zap.Logger
}

// NewMenuService creates a new MenuService.
func NewMenuService(menuRepo repository.MenuRepository, imageStore storage.ImageStore, menuCache *cache.MenuCache, logger *zap.Logger) MenuService {
	return &menuServiceImpl{
		menuRepo:   menuRepo,
		imageStore: imageStore,
		menuCache:  menuCache,
		logger:     logger,
	}
}

// ListActiveMenu retrieves the active catalog, serving from cache when fresh.
// The cache version is captured before the database read, so an invalidation
// that lands in between cannot have this (now stale) list cached under the
// bumped version.
func (s *menuServiceImpl) ListActiveMenu(ctx context.Context) ([]models.MenuItemView, *ServiceError) {
	var cacheVersion int64
	if s.menuCache != nil {
		cached, version, ok := s.menuCache.GetActiveMenu(ctx)
		if ok {
			return cached, nil
		}
		cacheVersion = version
	}

	items, err := s.menuRepo.FindActive(ctx)
	if err != nil {
		s.logger.Error("Failed to fetch menu items", zap.Error(err))
		return nil, storageError("Failed to fetch menu items")
	}

	views := make([]models.MenuItemView, 0, len(items))
	for i := range items {
		views = append(views, items[i].View())
	}

	if s.menuCache != nil {
		s.menuCache.SetActiveMenuAsync(cacheVersion, views)
	}
	return views, nil
}

// CreateMenuItem adds an item to the catalog, uploading its image first.
func (s *menuServiceImpl) CreateMenuItem(ctx context.Context, req *MenuUpsertRequest) (uuid.UUID, *ServiceError) {
	if svcErr := validateMenuUpsert(req); svcErr != nil {
		return uuid.Nil, svcErr
	}

	imageURL := ""
	if req.Image != nil {
		url, svcErr := s.uploadImage(ctx, req.Image)
		if svcErr != nil {
			return uuid.Nil, svcErr
		}
		imageURL = url
	}

	item := &models.MenuItem{
		Name:        req.Name,
		Description: req.Description,
		PriceCents:  models.CentsFromPrice(req.Price),
		Category:    req.Category,
		ImageURL:    imageURL,
		Active:      true,
	}

	if err := s.menuRepo.Create(ctx, item); err != nil {
		s.logger.Error("Failed to create menu item", zap.Error(err))
		return uuid.Nil, storageError("Failed to create menu item")
	}

	s.invalidateCache(ctx)
	s.logger.Info("Menu item created",
		zap.String("menu_item_id", item.ID.String()),
		zap.String("name", item.Name),
	)
	return item.ID, nil
}

// UpdateMenuItem edits an existing item. The stored image is kept when the
// form carries no replacement file.
func (s *menuServiceImpl) UpdateMenuItem(ctx context.Context, id uuid.UUID, req *MenuUpsertRequest) *ServiceError {
	if svcErr := validateMenuUpsert(req); svcErr != nil {
		return svcErr
	}

	item, err := s.menuRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return notFoundError("Menu item not found")
		}
		s.logger.Error("Failed to fetch menu item", zap.Error(err))
		return storageError("Failed to update menu item")
	}

	if req.Image != nil {
		url, svcErr := s.uploadImage(ctx, req.Image)
		if svcErr != nil {
			return svcErr
		}
		item.ImageURL = url
	}

	item.Name = req.Name
	item.Description = req.Description
	item.PriceCents = models.CentsFromPrice(req.Price)
	item.Category = req.Category

	if err := s.menuRepo.Update(ctx, item); err != nil {
		s.logger.Error("Failed to update menu item", zap.Error(err))
		return storageError("Failed to update menu item")
	}

	s.invalidateCache(ctx)
	s.logger.Info("Menu item updated", zap.String("menu_item_id", id.String()))
	return nil
}

// DeactivateMenuItem soft-removes an item from the active catalog.
// Historical order items keep referencing the row.
func (s *menuServiceImpl) DeactivateMenuItem(ctx context.Context, id uuid.UUID) *ServiceError {
	affected, err := s.menuRepo.Deactivate(ctx, id)
	if err != nil {
		s.logger.Error("Failed to deactivate menu item", zap.Error(err))
		return storageError("Failed to deactivate menu item")
	}
	if affected == 0 {
		return notFoundError("Menu item not found")
	}

	s.invalidateCache(ctx)
	s.logger.Info("Menu item deactivated", zap.String("menu_item_id", id.String()))
	return nil
}

func (s *menuServiceImpl) uploadImage(ctx context.Context, header *multipart.FileHeader) (string, *ServiceError) {
	if s.imageStore == nil {
		return "", storageError("Image storage not configured")
	}

	file, err := header.Open()
	if err != nil {
		return "", validationError("Unable to read uploaded image")
	}
	defer file.Close()

	url, err := s.imageStore.Upload(ctx, file, header)
	if err != nil {
		s.logger.Error("Image upload failed", zap.Error(err))
		return "", storageError("Failed to upload image")
	}
	return url, nil
}

func (s *menuServiceImpl) invalidateCache(ctx context.Context) {
	if s.menuCache != nil {
		s.menuCache.Invalidate(ctx)
	}
}

func validateMenuUpsert(req *MenuUpsertRequest) *ServiceError {
	if req.Name == "" {
		return validationError("Name is required")
	}
	if req.Price < 0 {
		return validationError("Price must be non-negative")
	}
	return nil
}
