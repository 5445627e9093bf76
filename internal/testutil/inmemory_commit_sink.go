package testutil

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/sangkips/investify-receiving/internal/domain/entity"
	"github.com/sangkips/investify-receiving/internal/domain/enum"
	"github.com/sangkips/investify-receiving/internal/domain/receiving"
	"github.com/sangkips/investify-receiving/internal/domain/repository"
	infraRepo "github.com/sangkips/investify-receiving/internal/infrastructure/repository"
)

// InMemoryCommitSink implements repository.CommitSink and
// repository.GoodsReceiptRepository, recording every request it accepts
type InMemoryCommitSink struct {
	mu       sync.RWMutex
	requests []receiving.CommitRequest
	receipts []entity.GoodsReceipt
	calls    int
	err      error
}

// NewInMemoryCommitSink creates an accepting commit sink
func NewInMemoryCommitSink() *InMemoryCommitSink {
	return &InMemoryCommitSink{}
}

// SetError makes Commit fail with err; nil restores it
func (s *InMemoryCommitSink) SetError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

// Calls counts Commit invocations, failed ones included
func (s *InMemoryCommitSink) Calls() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.calls
}

// Requests returns the accepted commit requests
func (s *InMemoryCommitSink) Requests() []receiving.CommitRequest {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]receiving.CommitRequest(nil), s.requests...)
}

func (s *InMemoryCommitSink) Commit(_ context.Context, req receiving.CommitRequest) (*entity.GoodsReceipt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	s.requests = append(s.requests, req)

	receipt := &entity.GoodsReceipt{
		ID:            uuid.New(),
		LocationID:    req.LocationID,
		SupplierID:    req.SupplierID,
		CreatedByID:   req.ActorID,
		ReceiptNo:     "GRN-" + strings.ToUpper(uuid.NewString()[:8]),
		Status:        entity.StatusFor(req.TotalAmount, req.PaymentInfo.PaidAmount),
		Subtotal:      req.Subtotal,
		Discount:      req.PaymentInfo.Discount,
		TotalAmount:   req.TotalAmount,
		PaidAmount:    req.PaymentInfo.PaidAmount,
		BalanceDue:    req.RemainingBalance,
		PaymentMethod: req.PaymentInfo.PaymentMethod,
		PaymentType:   req.PaymentInfo.PaymentType,
	}
	s.receipts = append(s.receipts, *receipt)
	return receipt, nil
}

func (s *InMemoryCommitSink) GetByID(_ context.Context, id uuid.UUID) (*entity.GoodsReceipt, error) {
	return s.find(func(r entity.GoodsReceipt) bool { return r.ID == id })
}

func (s *InMemoryCommitSink) GetByReceiptNo(_ context.Context, receiptNo string) (*entity.GoodsReceipt, error) {
	receiptNo = strings.ToUpper(strings.TrimSpace(receiptNo))
	return s.find(func(r entity.GoodsReceipt) bool { return r.ReceiptNo == receiptNo })
}

func (s *InMemoryCommitSink) find(match func(entity.GoodsReceipt) bool) (*entity.GoodsReceipt, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := lo.Find(s.receipts, match)
	if !ok {
		return nil, nil
	}
	return &r, nil
}

// List filters by the location in ctx, newest first
func (s *InMemoryCommitSink) List(ctx context.Context, params *repository.GoodsReceiptFilterParams) ([]entity.GoodsReceipt, int64, error) {
	locationID, ok := infraRepo.GetLocationID(ctx)
	if !ok {
		return []entity.GoodsReceipt{}, 0, nil
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := lo.Filter(lo.Reverse(append([]entity.GoodsReceipt(nil), s.receipts...)), func(r entity.GoodsReceipt, _ int) bool {
		if r.LocationID != locationID {
			return false
		}
		if params.SupplierID != nil && (r.SupplierID == nil || *r.SupplierID != *params.SupplierID) {
			return false
		}
		return !params.Unpaid || r.Status != enum.ReceiptStatusPaid
	})

	total := int64(len(matched))
	p := params.Pagination
	start := min(p.Offset(), len(matched))
	end := min(start+p.PerPage, len(matched))
	return matched[start:end], total, nil
}
