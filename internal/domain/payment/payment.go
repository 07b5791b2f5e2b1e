package payment

import (
	"fmt"
	"strings"
	"time"

	"github.com/21501a05b6/Magnova/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// PaymentType discriminates the two payment subtypes sharing one ledger
type PaymentType string

const (
	PaymentTypeInternal PaymentType = "internal"
	PaymentTypeExternal PaymentType = "external"
)

// String returns the string representation of PaymentType
func (t PaymentType) String() string {
	return string(t)
}

// PayeeType values with special handling. The field is an open string;
// only "cc" carries an extra requirement (payee phone).
const (
	PayeeTypeVendor = "vendor"
	PayeeTypeCC     = "cc"
)

// Payment is one append-only ledger entry against a purchase order.
// Internal payments go to the vendor; external payments disburse the
// internally funded amount onward. Entries are never edited or deleted.
type Payment struct {
	shared.BaseAggregateRoot
	PaymentType PaymentType     `gorm:"type:varchar(10);not null;index"`
	PONumber    string          `gorm:"type:varchar(50);not null;index"`
	PayeeName   string          `gorm:"type:varchar(200);not null"`
	Amount      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	PaymentMode string          `gorm:"type:varchar(50)"`
	PaymentDate time.Time       `gorm:"not null"`

	// Internal payment fields
	PayeeAccount   string `gorm:"type:varchar(50)"`
	PayeeBank      string `gorm:"type:varchar(100)"`
	TransactionRef string `gorm:"type:varchar(100);index"`

	// External payment fields
	PayeeType     string `gorm:"type:varchar(30)"`
	PayeePhone    string `gorm:"type:varchar(20)"`
	AccountNumber string `gorm:"type:varchar(50)"`
	IFSCCode      string `gorm:"type:varchar(20)"`
	Location      string `gorm:"type:varchar(200)"`
	UTRNumber     string `gorm:"type:varchar(100);index"`
}

// TableName returns the table name for GORM
func (Payment) TableName() string {
	return "payments"
}

// IsInternal returns true for vendor-facing ledger entries
func (p *Payment) IsInternal() bool {
	return p.PaymentType == PaymentTypeInternal
}

// NewInternalPaymentInput carries the fields of a vendor payment
type NewInternalPaymentInput struct {
	PONumber       string
	PayeeName      string
	PayeeAccount   string
	PayeeBank      string
	PaymentMode    string
	Amount         decimal.Decimal
	TransactionRef string
	PaymentDate    time.Time
}

// NewInternalPayment records a payment made to the vendor of a purchase order
func NewInternalPayment(in NewInternalPaymentInput) (*Payment, error) {
	if in.PONumber == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "PO number cannot be empty")
	}
	if in.PayeeName == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Payee name cannot be empty")
	}
	if in.Amount.IsNegative() {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Payment amount cannot be negative")
	}
	if in.TransactionRef == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Transaction reference cannot be empty")
	}
	if in.PaymentDate.IsZero() {
		in.PaymentDate = time.Now()
	}

	p := &Payment{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		PaymentType:       PaymentTypeInternal,
		PONumber:          in.PONumber,
		PayeeName:         in.PayeeName,
		PayeeAccount:      in.PayeeAccount,
		PayeeBank:         in.PayeeBank,
		PaymentMode:       in.PaymentMode,
		Amount:            in.Amount,
		TransactionRef:    in.TransactionRef,
		PaymentDate:       in.PaymentDate,
	}

	p.AddDomainEvent(NewPaymentRecordedEvent(p))

	return p, nil
}

// NewExternalPaymentInput carries the fields of an outward disbursement
type NewExternalPaymentInput struct {
	PONumber      string
	PayeeType     string
	PayeeName     string
	PayeePhone    string
	AccountNumber string
	IFSCCode      string
	Location      string
	PaymentMode   string
	Amount        decimal.Decimal
	UTRNumber     string
	PaymentDate   time.Time
}

// NewExternalPayment records an outward disbursement against a purchase order.
// Payee phone is mandatory for "cc" payees; other payee types leave it optional.
func NewExternalPayment(in NewExternalPaymentInput) (*Payment, error) {
	if in.PONumber == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "PO number cannot be empty")
	}
	if in.PayeeName == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Payee name cannot be empty")
	}
	payeeType := strings.ToLower(strings.TrimSpace(in.PayeeType))
	if payeeType == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Payee type cannot be empty")
	}
	if payeeType == PayeeTypeCC && strings.TrimSpace(in.PayeePhone) == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR",
			fmt.Sprintf("Payee phone is required for payee type %q", PayeeTypeCC))
	}
	if !in.Amount.IsPositive() {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Payment amount must be positive")
	}
	if in.UTRNumber == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "UTR number cannot be empty")
	}
	if in.PaymentDate.IsZero() {
		in.PaymentDate = time.Now()
	}

	p := &Payment{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		PaymentType:       PaymentTypeExternal,
		PONumber:          in.PONumber,
		PayeeType:         payeeType,
		PayeeName:         in.PayeeName,
		PayeePhone:        in.PayeePhone,
		AccountNumber:     in.AccountNumber,
		IFSCCode:          in.IFSCCode,
		Location:          in.Location,
		PaymentMode:       in.PaymentMode,
		Amount:            in.Amount,
		UTRNumber:         in.UTRNumber,
		PaymentDate:       in.PaymentDate,
	}

	p.AddDomainEvent(NewPaymentRecordedEvent(p))

	return p, nil
}

// Summary is the reconciliation view of one purchase order's ledger
type Summary struct {
	PONumber          string          `json:"po_number"`
	InternalPaid      decimal.Decimal `json:"internal_paid"`
	ExternalPaid      decimal.Decimal `json:"external_paid"`
	ExternalRemaining decimal.Decimal `json:"external_remaining"`
}

// NewSummary derives the reconciliation figures for one purchase order
func NewSummary(poNumber string, internalPaid, externalPaid decimal.Decimal) Summary {
	return Summary{
		PONumber:          poNumber,
		InternalPaid:      internalPaid,
		ExternalPaid:      externalPaid,
		ExternalRemaining: internalPaid.Sub(externalPaid),
	}
}
