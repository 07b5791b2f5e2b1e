package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/21501a05b6/Magnova/internal/domain/logistics"
	"github.com/21501a05b6/Magnova/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormShipmentRepository implements logistics.ShipmentRepository using GORM
type GormShipmentRepository struct {
	db *gorm.DB
}

// NewGormShipmentRepository creates a new GormShipmentRepository
func NewGormShipmentRepository(db *gorm.DB) *GormShipmentRepository {
	return &GormShipmentRepository{db: db}
}

// FindByID finds a shipment by its ID
func (r *GormShipmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*logistics.Shipment, error) {
	var shipment logistics.Shipment
	if err := r.db.WithContext(ctx).
		Preload("Units", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		First(&shipment, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &shipment, nil
}

// FindByNumber finds a shipment by its shipment number
func (r *GormShipmentRepository) FindByNumber(ctx context.Context, shipmentNumber string) (*logistics.Shipment, error) {
	var shipment logistics.Shipment
	if err := r.db.WithContext(ctx).
		Preload("Units", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		First(&shipment, "shipment_number = ?", shipmentNumber).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &shipment, nil
}

// FindAll finds shipments matching the filter
func (r *GormShipmentRepository) FindAll(ctx context.Context, filter shared.Filter) ([]logistics.Shipment, error) {
	var shipments []logistics.Shipment
	query := r.applyFilter(r.db.WithContext(ctx).Model(&logistics.Shipment{}), filter)
	if err := query.Preload("Units", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Find(&shipments).Error; err != nil {
		return nil, err
	}
	return shipments, nil
}

// FindByPONumber finds all shipments created against one purchase order
func (r *GormShipmentRepository) FindByPONumber(ctx context.Context, poNumber string) ([]logistics.Shipment, error) {
	var shipments []logistics.Shipment
	if err := r.db.WithContext(ctx).
		Preload("Units", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Where("po_number = ?", poNumber).
		Order("created_at ASC").
		Find(&shipments).Error; err != nil {
		return nil, err
	}
	return shipments, nil
}

// Save creates or updates a shipment with its units
func (r *GormShipmentRepository) Save(ctx context.Context, shipment *logistics.Shipment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Units").Save(shipment).Error; err != nil {
			return err
		}
		for i := range shipment.Units {
			shipment.Units[i].ShipmentID = shipment.ID
			if err := tx.Save(&shipment.Units[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Count counts shipments matching the filter
func (r *GormShipmentRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&logistics.Shipment{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByStatus counts shipments in the given status
func (r *GormShipmentRepository) CountByStatus(ctx context.Context, status logistics.ShipmentStatus) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&logistics.Shipment{}).
		Where("status = ?", status).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// GenerateShipmentNumber generates the next unique shipment number.
// Format: SH-YYYY-NNNNN (e.g., SH-2026-00001)
func (r *GormShipmentRepository) GenerateShipmentNumber(ctx context.Context) (string, error) {
	year := time.Now().Year()
	prefix := fmt.Sprintf("SH-%d-", year)

	var last logistics.Shipment
	err := r.db.WithContext(ctx).
		Model(&logistics.Shipment{}).
		Where("shipment_number LIKE ?", prefix+"%").
		Order("shipment_number DESC").
		First(&last).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	var nextNum int64 = 1
	if err == nil && last.ShipmentNumber != "" {
		parts := strings.Split(last.ShipmentNumber, "-")
		if len(parts) == 3 {
			var num int64
			if _, parseErr := fmt.Sscanf(parts[2], "%d", &num); parseErr == nil {
				nextNum = num + 1
			}
		}
	}

	return fmt.Sprintf("%s%05d", prefix, nextNum), nil
}

func (r *GormShipmentRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	sortField := ValidateSortField(filter.OrderBy, ShipmentSortFields, "created_at")
	query = query.Order(sortField + " " + ValidateSortOrder(filter.OrderDir))

	return query
}

func (r *GormShipmentRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where(
			"LOWER(shipment_number) LIKE ? OR LOWER(po_number) LIKE ? OR LOWER(transporter_name) LIKE ?",
			pattern, pattern, pattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "po_number":
			query = query.Where("po_number = ?", value)
		case "transporter_name":
			query = query.Where("transporter_name = ?", value)
		}
	}

	return query
}

var _ logistics.ShipmentRepository = (*GormShipmentRepository)(nil)
