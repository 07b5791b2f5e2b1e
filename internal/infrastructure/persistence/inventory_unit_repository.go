package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/21501a05b6/Magnova/internal/domain/inventory"
	"github.com/21501a05b6/Magnova/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormInventoryUnitRepository implements inventory.InventoryUnitRepository using GORM
type GormInventoryUnitRepository struct {
	db *gorm.DB
}

// NewGormInventoryUnitRepository creates a new GormInventoryUnitRepository
func NewGormInventoryUnitRepository(db *gorm.DB) *GormInventoryUnitRepository {
	return &GormInventoryUnitRepository{db: db}
}

// FindByID finds a unit by its ID
func (r *GormInventoryUnitRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.InventoryUnit, error) {
	var unit inventory.InventoryUnit
	if err := r.db.WithContext(ctx).First(&unit, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &unit, nil
}

// FindByIMEI finds the unit registered under the given IMEI
func (r *GormInventoryUnitRepository) FindByIMEI(ctx context.Context, imei string) (*inventory.InventoryUnit, error) {
	var unit inventory.InventoryUnit
	if err := r.db.WithContext(ctx).First(&unit, "imei = ?", imei).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &unit, nil
}

// ExistsByIMEI reports whether a unit with this IMEI is already registered
func (r *GormInventoryUnitRepository) ExistsByIMEI(ctx context.Context, imei string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&inventory.InventoryUnit{}).
		Where("imei = ?", imei).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// FindAll finds units matching the filter
func (r *GormInventoryUnitRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inventory.InventoryUnit, error) {
	var units []inventory.InventoryUnit
	query := r.applyFilter(r.db.WithContext(ctx).Model(&inventory.InventoryUnit{}), filter)
	if err := query.Find(&units).Error; err != nil {
		return nil, err
	}
	return units, nil
}

// FindByPONumber finds all units procured against one purchase order
func (r *GormInventoryUnitRepository) FindByPONumber(ctx context.Context, poNumber string) ([]inventory.InventoryUnit, error) {
	var units []inventory.InventoryUnit
	if err := r.db.WithContext(ctx).
		Where("po_number = ?", poNumber).
		Order("created_at ASC").
		Find(&units).Error; err != nil {
		return nil, err
	}
	return units, nil
}

// Save creates or updates a unit
func (r *GormInventoryUnitRepository) Save(ctx context.Context, unit *inventory.InventoryUnit) error {
	return r.db.WithContext(ctx).Save(unit).Error
}

// Count counts units matching the filter
func (r *GormInventoryUnitRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&inventory.InventoryUnit{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByStatus counts units currently in the given custody status
func (r *GormInventoryUnitRepository) CountByStatus(ctx context.Context, status inventory.UnitStatus) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&inventory.InventoryUnit{}).
		Where("status = ?", status).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormInventoryUnitRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	sortField := ValidateSortField(filter.OrderBy, InventoryUnitSortFields, "created_at")
	query = query.Order(sortField + " " + ValidateSortOrder(filter.OrderDir))

	return query
}

func (r *GormInventoryUnitRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where(
			"LOWER(imei) LIKE ? OR LOWER(brand) LIKE ? OR LOWER(device_model) LIKE ?",
			pattern, pattern, pattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "organization":
			query = query.Where("current_organization = ?", value)
		case "brand":
			query = query.Where("brand = ?", value)
		case "po_number":
			query = query.Where("po_number = ?", value)
		case "location":
			query = query.Where("current_location = ?", value)
		}
	}

	return query
}

var _ inventory.InventoryUnitRepository = (*GormInventoryUnitRepository)(nil)
