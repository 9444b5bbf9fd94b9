package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/clinicore/backend/internal/domain/inventory"
	"github.com/clinicore/backend/internal/domain/shared"
	"github.com/clinicore/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormSupplyItemRepository implements SupplyItemRepository using GORM
type GormSupplyItemRepository struct {
	db *gorm.DB
}

// NewGormSupplyItemRepository creates a new GormSupplyItemRepository
func NewGormSupplyItemRepository(db *gorm.DB) *GormSupplyItemRepository {
	return &GormSupplyItemRepository{db: db}
}

// FindByID finds a supply item by ID
func (r *GormSupplyItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.SupplyItem, error) {
	var model models.SupplyItemModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindBySKU finds a supply item by SKU
func (r *GormSupplyItemRepository) FindBySKU(ctx context.Context, sku string) (*inventory.SupplyItem, error) {
	var model models.SupplyItemModel
	if err := r.db.WithContext(ctx).
		Where("sku = ?", sku).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds supply items with filtering
func (r *GormSupplyItemRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inventory.SupplyItem, error) {
	var itemModels []models.SupplyItemModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.SupplyItemModel{}), filter)
	if err := query.Find(&itemModels).Error; err != nil {
		return nil, err
	}
	items := make([]inventory.SupplyItem, len(itemModels))
	for i, model := range itemModels {
		items[i] = *model.ToDomain()
	}
	return items, nil
}

// FindBelowReorderLevel returns items whose stock has fallen below their
// reorder level.
func (r *GormSupplyItemRepository) FindBelowReorderLevel(ctx context.Context) ([]inventory.SupplyItem, error) {
	var itemModels []models.SupplyItemModel
	if err := r.db.WithContext(ctx).
		Where("quantity_on_hand < reorder_level").
		Order("name ASC").
		Find(&itemModels).Error; err != nil {
		return nil, err
	}
	items := make([]inventory.SupplyItem, len(itemModels))
	for i, model := range itemModels {
		items[i] = *model.ToDomain()
	}
	return items, nil
}

// Save creates or updates a supply item
func (r *GormSupplyItemRepository) Save(ctx context.Context, item *inventory.SupplyItem) error {
	model := models.SupplyItemModelFromDomain(item)
	return r.db.WithContext(ctx).Save(model).Error
}

// SaveWithLock saves with optimistic locking, conditioned on the version
// the aggregate was loaded with.
func (r *GormSupplyItemRepository) SaveWithLock(ctx context.Context, item *inventory.SupplyItem) error {
	model := models.SupplyItemModelFromDomain(item)
	// Select("*") forces zero-valued columns through; a consume that
	// drains stock to 0 must still persist.
	result := r.db.WithContext(ctx).
		Model(model).
		Where("id = ? AND version = ?", item.ID, item.Version-1).
		Select("*").
		Updates(model)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrentModification
	}
	return nil
}

// Delete deletes a supply item
func (r *GormSupplyItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.SupplyItemModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts supply items matching the filter
func (r *GormSupplyItemRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&models.SupplyItemModel{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormSupplyItemRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := filter.OrderBy
	switch orderBy {
	case "created_at", "updated_at", "sku", "name", "category", "quantity_on_hand":
	default:
		orderBy = "created_at"
	}
	orderDir := "DESC"
	if strings.ToLower(filter.OrderDir) == "asc" {
		orderDir = "ASC"
	}
	return query.Order(orderBy + " " + orderDir)
}

func (r *GormSupplyItemRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("sku ILIKE ? OR name ILIKE ?", searchPattern, searchPattern)
	}
	if category, ok := filter.Filters["category"]; ok {
		query = query.Where("category = ?", category)
	}
	return query
}

// Ensure GormSupplyItemRepository implements SupplyItemRepository
var _ inventory.SupplyItemRepository = (*GormSupplyItemRepository)(nil)
