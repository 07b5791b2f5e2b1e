package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/21501a05b6/Magnova/internal/domain/payment"
	"github.com/21501a05b6/Magnova/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormPaymentRepository implements payment.PaymentRepository using GORM
type GormPaymentRepository struct {
	db *gorm.DB
}

// NewGormPaymentRepository creates a new GormPaymentRepository
func NewGormPaymentRepository(db *gorm.DB) *GormPaymentRepository {
	return &GormPaymentRepository{db: db}
}

// FindByID finds a ledger entry by its ID
func (r *GormPaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*payment.Payment, error) {
	var p payment.Payment
	if err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// FindAll finds ledger entries matching the filter
func (r *GormPaymentRepository) FindAll(ctx context.Context, filter shared.Filter) ([]payment.Payment, error) {
	var payments []payment.Payment
	query := r.applyFilter(r.db.WithContext(ctx).Model(&payment.Payment{}), filter)
	if err := query.Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}

// FindByPONumber finds entries of one type recorded against a purchase order
func (r *GormPaymentRepository) FindByPONumber(ctx context.Context, poNumber string, paymentType payment.PaymentType) ([]payment.Payment, error) {
	var payments []payment.Payment
	if err := r.db.WithContext(ctx).
		Where("po_number = ? AND payment_type = ?", poNumber, paymentType).
		Order("payment_date ASC").
		Find(&payments).Error; err != nil {
		return nil, err
	}
	return payments, nil
}

// Save appends a ledger entry
func (r *GormPaymentRepository) Save(ctx context.Context, p *payment.Payment) error {
	return r.db.WithContext(ctx).Save(p).Error
}

// Count counts ledger entries matching the filter
func (r *GormPaymentRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&payment.Payment{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// SumByPONumber totals recorded amounts of one type for a purchase order
func (r *GormPaymentRepository) SumByPONumber(ctx context.Context, poNumber string, paymentType payment.PaymentType) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	if err := r.db.WithContext(ctx).Model(&payment.Payment{}).
		Where("po_number = ? AND payment_type = ?", poNumber, paymentType).
		Select("SUM(amount)").
		Scan(&total).Error; err != nil {
		return decimal.Zero, err
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}

// SumAll totals every recorded amount across both subtypes
func (r *GormPaymentRepository) SumAll(ctx context.Context) (decimal.Decimal, error) {
	var total decimal.NullDecimal
	if err := r.db.WithContext(ctx).Model(&payment.Payment{}).
		Select("SUM(amount)").
		Scan(&total).Error; err != nil {
		return decimal.Zero, err
	}
	if !total.Valid {
		return decimal.Zero, nil
	}
	return total.Decimal, nil
}

// ExistsByTransactionRef reports whether an internal payment already uses the reference
func (r *GormPaymentRepository) ExistsByTransactionRef(ctx context.Context, transactionRef string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&payment.Payment{}).
		Where("payment_type = ? AND transaction_ref = ?", payment.PaymentTypeInternal, transactionRef).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ExistsByUTRNumber reports whether an external payment already uses the UTR
func (r *GormPaymentRepository) ExistsByUTRNumber(ctx context.Context, utrNumber string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&payment.Payment{}).
		Where("payment_type = ? AND utr_number = ?", payment.PaymentTypeExternal, utrNumber).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormPaymentRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	sortField := ValidateSortField(filter.OrderBy, PaymentSortFields, "created_at")
	query = query.Order(sortField + " " + ValidateSortOrder(filter.OrderDir))

	return query
}

func (r *GormPaymentRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where(
			"LOWER(po_number) LIKE ? OR LOWER(payee_name) LIKE ?", pattern, pattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "payment_type":
			query = query.Where("payment_type = ?", value)
		case "po_number":
			query = query.Where("po_number = ?", value)
		case "payee_type":
			query = query.Where("payee_type = ?", value)
		case "start_date":
			if t, ok := value.(time.Time); ok {
				query = query.Where("payment_date >= ?", t)
			}
		case "end_date":
			if t, ok := value.(time.Time); ok {
				query = query.Where("payment_date <= ?", t)
			}
		}
	}

	return query
}

var _ payment.PaymentRepository = (*GormPaymentRepository)(nil)
