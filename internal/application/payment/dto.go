package payment

import (
	"time"

	"github.com/21501a05b6/Magnova/internal/domain/payment"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RecordInternalPaymentRequest represents a vendor payment to record
type RecordInternalPaymentRequest struct {
	PONumber       string          `json:"po_number" binding:"required"`
	PayeeName      string          `json:"payee_name" binding:"required"`
	PayeeAccount   string          `json:"payee_account"`
	PayeeBank      string          `json:"payee_bank"`
	PaymentMode    string          `json:"payment_mode"`
	Amount         decimal.Decimal `json:"amount"`
	TransactionRef string          `json:"transaction_ref" binding:"required"`
	PaymentDate    *time.Time      `json:"payment_date"`
}

// RecordExternalPaymentRequest represents an outward disbursement to record
type RecordExternalPaymentRequest struct {
	PONumber      string          `json:"po_number" binding:"required"`
	PayeeType     string          `json:"payee_type" binding:"required"`
	PayeeName     string          `json:"payee_name" binding:"required"`
	PayeePhone    string          `json:"payee_phone"`
	AccountNumber string          `json:"account_number"`
	IFSCCode      string          `json:"ifsc_code"`
	Location      string          `json:"location"`
	PaymentMode   string          `json:"payment_mode"`
	Amount        decimal.Decimal `json:"amount"`
	UTRNumber     string          `json:"utr_number" binding:"required"`
	PaymentDate   *time.Time      `json:"payment_date"`
}

// PaymentListFilter represents filter options for the merged ledger list
type PaymentListFilter struct {
	Search      string `form:"search"`
	PaymentType string `form:"payment_type" binding:"omitempty,oneof=internal external"`
	PONumber    string `form:"po_number"`
	PayeeType   string `form:"payee_type"`
	Page        int    `form:"page" binding:"omitempty,min=1"`
	PageSize    int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy     string `form:"order_by"`
	OrderDir    string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// PaymentResponse represents one ledger entry in API responses. The
// payment_type discriminator tells the two subtypes apart; subtype-only
// fields are omitted when empty.
type PaymentResponse struct {
	ID          uuid.UUID       `json:"payment_id"`
	PaymentType string          `json:"payment_type"`
	PONumber    string          `json:"po_number"`
	PayeeName   string          `json:"payee_name"`
	Amount      decimal.Decimal `json:"amount"`
	PaymentMode string          `json:"payment_mode,omitempty"`
	PaymentDate time.Time       `json:"payment_date"`

	PayeeAccount   string `json:"payee_account,omitempty"`
	PayeeBank      string `json:"payee_bank,omitempty"`
	TransactionRef string `json:"transaction_ref,omitempty"`

	PayeeType     string `json:"payee_type,omitempty"`
	PayeePhone    string `json:"payee_phone,omitempty"`
	AccountNumber string `json:"account_number,omitempty"`
	IFSCCode      string `json:"ifsc_code,omitempty"`
	Location      string `json:"location,omitempty"`
	UTRNumber     string `json:"utr_number,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// ToPaymentResponse converts a domain ledger entry to a response DTO
func ToPaymentResponse(p *payment.Payment) PaymentResponse {
	return PaymentResponse{
		ID:             p.ID,
		PaymentType:    p.PaymentType.String(),
		PONumber:       p.PONumber,
		PayeeName:      p.PayeeName,
		Amount:         p.Amount,
		PaymentMode:    p.PaymentMode,
		PaymentDate:    p.PaymentDate,
		PayeeAccount:   p.PayeeAccount,
		PayeeBank:      p.PayeeBank,
		TransactionRef: p.TransactionRef,
		PayeeType:      p.PayeeType,
		PayeePhone:     p.PayeePhone,
		AccountNumber:  p.AccountNumber,
		IFSCCode:       p.IFSCCode,
		Location:       p.Location,
		UTRNumber:      p.UTRNumber,
		CreatedAt:      p.CreatedAt,
	}
}

// ToPaymentResponses converts a slice of ledger entries
func ToPaymentResponses(payments []payment.Payment) []PaymentResponse {
	responses := make([]PaymentResponse, 0, len(payments))
	for idx := range payments {
		responses = append(responses, ToPaymentResponse(&payments[idx]))
	}
	return responses
}
