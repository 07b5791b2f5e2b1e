package payment

import (
	"context"
	"fmt"
	"time"

	"github.com/21501a05b6/Magnova/internal/domain/payment"
	"github.com/21501a05b6/Magnova/internal/domain/procurement"
	"github.com/21501a05b6/Magnova/internal/domain/shared"
	"github.com/21501a05b6/Magnova/internal/infrastructure/locking"
)

// PaymentService handles the append-only payment reconciliation ledger
type PaymentService struct {
	paymentRepo    payment.PaymentRepository
	orderRepo      procurement.PurchaseOrderRepository
	locks          *locking.KeyedMutex
	eventPublisher shared.EventPublisher
}

// NewPaymentService creates a new PaymentService
func NewPaymentService(
	paymentRepo payment.PaymentRepository,
	orderRepo procurement.PurchaseOrderRepository,
	locks *locking.KeyedMutex,
) *PaymentService {
	return &PaymentService{
		paymentRepo: paymentRepo,
		orderRepo:   orderRepo,
		locks:       locks,
	}
}

// SetEventPublisher sets the event publisher for publishing domain events
func (s *PaymentService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

func (s *PaymentService) publishDomainEvents(ctx context.Context, p *payment.Payment) {
	if s.eventPublisher == nil {
		return
	}
	events := p.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	_ = s.eventPublisher.Publish(ctx, events...)
	p.ClearDomainEvents()
}

// RecordInternal appends a vendor payment against a purchase order.
// Recordings against the same PO are serialized so reference uniqueness
// and the funding invariant hold under concurrency.
func (s *PaymentService) RecordInternal(ctx context.Context, req RecordInternalPaymentRequest) (*PaymentResponse, error) {
	release, err := s.locks.Acquire(ctx, locking.POKey(req.PONumber))
	if err != nil {
		return nil, err
	}
	defer release()

	if _, err := s.orderRepo.FindByNumber(ctx, req.PONumber); err != nil {
		return nil, err
	}

	taken, err := s.paymentRepo.ExistsByTransactionRef(ctx, req.TransactionRef)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, shared.NewDomainError("CONFLICT",
			fmt.Sprintf("Transaction reference %s is already recorded", req.TransactionRef))
	}

	paymentDate := time.Time{}
	if req.PaymentDate != nil {
		paymentDate = *req.PaymentDate
	}

	entry, err := payment.NewInternalPayment(payment.NewInternalPaymentInput{
		PONumber:       req.PONumber,
		PayeeName:      req.PayeeName,
		PayeeAccount:   req.PayeeAccount,
		PayeeBank:      req.PayeeBank,
		PaymentMode:    req.PaymentMode,
		Amount:         req.Amount,
		TransactionRef: req.TransactionRef,
		PaymentDate:    paymentDate,
	})
	if err != nil {
		return nil, err
	}

	if err := s.paymentRepo.Save(ctx, entry); err != nil {
		return nil, err
	}
	s.publishDomainEvents(ctx, entry)

	response := ToPaymentResponse(entry)
	return &response, nil
}

// RecordExternal appends an outward disbursement against a purchase order.
// The running external total may never exceed the internally funded total.
func (s *PaymentService) RecordExternal(ctx context.Context, req RecordExternalPaymentRequest) (*PaymentResponse, error) {
	release, err := s.locks.Acquire(ctx, locking.POKey(req.PONumber))
	if err != nil {
		return nil, err
	}
	defer release()

	if _, err := s.orderRepo.FindByNumber(ctx, req.PONumber); err != nil {
		return nil, err
	}

	taken, err := s.paymentRepo.ExistsByUTRNumber(ctx, req.UTRNumber)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, shared.NewDomainError("CONFLICT",
			fmt.Sprintf("UTR number %s is already recorded", req.UTRNumber))
	}

	paymentDate := time.Time{}
	if req.PaymentDate != nil {
		paymentDate = *req.PaymentDate
	}

	entry, err := payment.NewExternalPayment(payment.NewExternalPaymentInput{
		PONumber:      req.PONumber,
		PayeeType:     req.PayeeType,
		PayeeName:     req.PayeeName,
		PayeePhone:    req.PayeePhone,
		AccountNumber: req.AccountNumber,
		IFSCCode:      req.IFSCCode,
		Location:      req.Location,
		PaymentMode:   req.PaymentMode,
		Amount:        req.Amount,
		UTRNumber:     req.UTRNumber,
		PaymentDate:   paymentDate,
	})
	if err != nil {
		return nil, err
	}

	internalPaid, err := s.paymentRepo.SumByPONumber(ctx, req.PONumber, payment.PaymentTypeInternal)
	if err != nil {
		return nil, err
	}
	externalPaid, err := s.paymentRepo.SumByPONumber(ctx, req.PONumber, payment.PaymentTypeExternal)
	if err != nil {
		return nil, err
	}
	if externalPaid.Add(entry.Amount).GreaterThan(internalPaid) {
		return nil, shared.NewDomainError("CONFLICT",
			fmt.Sprintf("Insufficient internal funding for %s: %s internal, %s already disbursed",
				req.PONumber, internalPaid.String(), externalPaid.String()))
	}

	if err := s.paymentRepo.Save(ctx, entry); err != nil {
		return nil, err
	}
	s.publishDomainEvents(ctx, entry)

	response := ToPaymentResponse(entry)
	return &response, nil
}

// List retrieves ledger entries of both subtypes with filtering
func (s *PaymentService) List(ctx context.Context, filter PaymentListFilter) ([]PaymentResponse, int64, error) {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.OrderBy != "" {
		domainFilter.OrderBy = filter.OrderBy
	} else {
		domainFilter.OrderBy = "payment_date"
	}
	if filter.OrderDir != "" {
		domainFilter.OrderDir = filter.OrderDir
	} else {
		domainFilter.OrderDir = "desc"
	}
	domainFilter.Search = filter.Search
	if filter.PaymentType != "" {
		domainFilter.Filters["payment_type"] = filter.PaymentType
	}
	if filter.PONumber != "" {
		domainFilter.Filters["po_number"] = filter.PONumber
	}
	if filter.PayeeType != "" {
		domainFilter.Filters["payee_type"] = filter.PayeeType
	}

	payments, err := s.paymentRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.paymentRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToPaymentResponses(payments), total, nil
}

// Summary derives the reconciliation figures for one purchase order
func (s *PaymentService) Summary(ctx context.Context, poNumber string) (*payment.Summary, error) {
	if _, err := s.orderRepo.FindByNumber(ctx, poNumber); err != nil {
		return nil, err
	}

	internalPaid, err := s.paymentRepo.SumByPONumber(ctx, poNumber, payment.PaymentTypeInternal)
	if err != nil {
		return nil, err
	}
	externalPaid, err := s.paymentRepo.SumByPONumber(ctx, poNumber, payment.PaymentTypeExternal)
	if err != nil {
		return nil, err
	}

	summary := payment.NewSummary(poNumber, internalPaid, externalPaid)
	return &summary, nil
}
