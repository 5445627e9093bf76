package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/sangkips/investify-receiving/internal/cache"
	"github.com/sangkips/investify-receiving/internal/domain/entity"
	"github.com/sangkips/investify-receiving/internal/domain/enum"
	"github.com/sangkips/investify-receiving/internal/domain/receiving"
	"github.com/sangkips/investify-receiving/internal/domain/repository"
	"github.com/sangkips/investify-receiving/internal/infrastructure/importer"
	"github.com/sangkips/investify-receiving/internal/logger"
	"github.com/sangkips/investify-receiving/pkg/apperror"
	"github.com/sangkips/investify-receiving/pkg/utils"
)

// RecoveryOffer describes a persisted draft found when a session opened
type RecoveryOffer struct {
	SavedAt    time.Time  `json:"saved_at"`
	LineCount  int        `json:"line_count"`
	SupplierID *uuid.UUID `json:"supplier_id,omitempty"`
}

// DraftView is the operator-facing state of a location's draft
type DraftView struct {
	LocationID   uuid.UUID                 `json:"location_id"`
	Lines        []receiving.LineItem      `json:"lines"`
	SupplierID   *uuid.UUID                `json:"supplier_id"`
	Discount     int64                     `json:"discount"`
	DiscountMode enum.DiscountMode         `json:"discount_mode"`
	Payment      receiving.SettlementInput `json:"payment"`
	Settlement   receiving.Settlement      `json:"settlement"`
	Warnings     []receiving.Warning       `json:"warnings"`
	Outcome      receiving.MergeOutcome    `json:"outcome,omitempty"`
	Recovery     *RecoveryOffer            `json:"recovery,omitempty"`
}

// ImportResult reports how a delivery sheet was applied
type ImportResult struct {
	TotalRows int                 `json:"total_rows"`
	Applied   int                 `json:"applied"`
	Failed    int                 `json:"failed"`
	Errors    []importer.RowError `json:"errors"`
	Draft     *DraftView          `json:"draft"`
}

// session is the in-memory staging state of one location. mu serialises
// every operation on it.
type session struct {
	mu       sync.Mutex
	draft    *receiving.Draft
	offer    *receiving.Snapshot
	warnings []receiving.Warning
	outcome  receiving.MergeOutcome
	loaded   bool
}

// change is what a draft mutation reports back
type change struct {
	warnings []receiving.Warning
	outcome  receiving.MergeOutcome
	noop     bool
}

// ReceivingService stages goods receipts: one draft per location, mirrored
// to the draft store after every mutation and committed through the sink
type ReceivingService struct {
	catalog    *CatalogService
	creator    repository.CatalogItemCreator
	suppliers  repository.SupplierDirectory
	drafts     repository.DraftStore
	sink       repository.CommitSink
	authorizer PriceAuthorizer
	sessions   cache.Cache
	policy     receiving.Policy
	logger     *logger.Logger
	now        func() time.Time

	// guards get-or-create of sessions
	mu sync.Mutex
}

// NewReceivingService creates a new receiving service. Sessions live in the
// given cache; its default expiration is the idle timeout.
func NewReceivingService(
	catalog *CatalogService,
	creator repository.CatalogItemCreator,
	suppliers repository.SupplierDirectory,
	drafts repository.DraftStore,
	sink repository.CommitSink,
	authorizer PriceAuthorizer,
	sessions cache.Cache,
	policy receiving.Policy,
	log *logger.Logger,
) *ReceivingService {
	if policy.StaleAfter <= 0 {
		policy.StaleAfter = receiving.DefaultStaleAfter
	}
	return &ReceivingService{
		catalog:    catalog,
		creator:    creator,
		suppliers:  suppliers,
		drafts:     drafts,
		sink:       sink,
		authorizer: authorizer,
		sessions:   sessions,
		policy:     policy,
		logger:     log,
		now:        time.Now,
	}
}

// WithClock replaces the time source. Used by tests.
func (s *ReceivingService) WithClock(now func() time.Time) *ReceivingService {
	s.now = now
	return s
}

// Policy returns the limits drafts are created with
func (s *ReceivingService) Policy() receiving.Policy {
	return s.policy
}

func sessionKey(locationID uuid.UUID) string {
	return cache.GenerateKey(cache.PrefixSession, locationID)
}

// acquire returns the locked session of a location, creating it and reading
// its snapshot on first use. The caller must unlock it.
func (s *ReceivingService) acquire(ctx context.Context, locationID uuid.UUID) *session {
	key := sessionKey(locationID)

	s.mu.Lock()
	var sess *session
	if v, ok := s.sessions.Get(ctx, key); ok {
		sess, _ = v.(*session)
	}
	if sess == nil {
		sess = &session{draft: receiving.NewDraft(locationID, s.policy)}
	}
	// re-set on every access so the idle timeout restarts
	s.sessions.Set(ctx, key, sess, 0)
	s.mu.Unlock()

	sess.mu.Lock()
	if !sess.loaded {
		s.load(ctx, sess)
		sess.loaded = true
	}
	return sess
}

// load reads the persisted snapshot of a fresh session. A stale, corrupt or
// empty snapshot is deleted; a usable one becomes a recovery offer.
func (s *ReceivingService) load(ctx context.Context, sess *session) {
	locationID := sess.draft.LocationID
	raw, found, err := s.drafts.Get(ctx, receiving.SnapshotKey(locationID))
	if err != nil {
		s.logPersistence(err, locationID, "read")
		return
	}
	if !found {
		return
	}

	snapshot, err := receiving.DecodeSnapshot(raw)
	if err != nil {
		s.logPersistence(err, locationID, "decode")
		s.deleteSnapshot(ctx, locationID)
		return
	}

	switch {
	case snapshot.IsStale(s.now(), s.policy.StaleAfter):
		s.logger.Infow("discarding stale draft",
			"location_id", locationID,
			"saved_at", snapshot.SavedAt,
		)
		s.deleteSnapshot(ctx, locationID)
	case snapshot.IsEmpty() || snapshot.LocationID != locationID:
		s.deleteSnapshot(ctx, locationID)
	default:
		sess.offer = &snapshot
	}
}

// persist mirrors the draft to the store. Empty drafts are not written and
// clear any earlier snapshot.
func (s *ReceivingService) persist(ctx context.Context, sess *session) {
	locationID := sess.draft.LocationID
	if sess.draft.IsEmpty() {
		s.deleteSnapshot(ctx, locationID)
		return
	}

	raw, err := sess.draft.Snapshot(s.now()).Encode()
	if err != nil {
		s.logPersistence(err, locationID, "encode")
		return
	}
	if err := s.drafts.Set(ctx, receiving.SnapshotKey(locationID), raw); err != nil {
		s.logPersistence(err, locationID, "write")
	}
}

func (s *ReceivingService) deleteSnapshot(ctx context.Context, locationID uuid.UUID) {
	if err := s.drafts.Delete(ctx, receiving.SnapshotKey(locationID)); err != nil {
		s.logPersistence(err, locationID, "delete")
	}
}

func (s *ReceivingService) logPersistence(err error, locationID uuid.UUID, op string) {
	s.logger.Warnw("draft persistence failed",
		"location_id", locationID,
		"operation", op,
		"error", receiving.PersistenceFailure(err, op),
	)
}

func (s *ReceivingService) view(sess *session) *DraftView {
	d := sess.draft
	v := &DraftView{
		LocationID:   d.LocationID,
		Lines:        d.Ledger().Lines(),
		SupplierID:   d.SupplierID,
		Discount:     d.Discount,
		DiscountMode: d.DiscountMode,
		Payment:      d.Payment,
		Settlement:   d.Settlement(),
		Warnings:     sess.warnings,
		Outcome:      sess.outcome,
	}
	if v.Warnings == nil {
		v.Warnings = []receiving.Warning{}
	}
	if sess.offer != nil {
		v.Recovery = &RecoveryOffer{
			SavedAt:    sess.offer.SavedAt,
			LineCount:  len(sess.offer.LineItems),
			SupplierID: sess.offer.SupplierID,
		}
	}
	return v
}

// mutate applies fn to the location's draft and persists the result. A
// pending recovery offer is dropped by the first real mutation.
func (s *ReceivingService) mutate(ctx context.Context, locationID uuid.UUID, fn func(d *receiving.Draft) (change, error)) (*DraftView, error) {
	sess := s.acquire(ctx, locationID)
	defer sess.mu.Unlock()

	c, err := fn(sess.draft)
	if err != nil {
		return nil, err
	}
	sess.warnings = c.warnings
	sess.outcome = c.outcome
	if c.noop {
		return s.view(sess), nil
	}

	if sess.offer != nil {
		s.logger.Infow("pending draft recovery overwritten", "location_id", locationID)
		sess.offer = nil
	}
	s.persist(ctx, sess)
	return s.view(sess), nil
}

// Open returns the location's draft, creating the session if needed. A
// persisted draft younger than the staleness window is reported as a
// recovery offer.
func (s *ReceivingService) Open(ctx context.Context, locationID uuid.UUID) (*DraftView, error) {
	sess := s.acquire(ctx, locationID)
	defer sess.mu.Unlock()
	return s.view(sess), nil
}

// ResolveRecovery accepts or declines the pending recovery offer. Accepting
// replaces the empty draft with the persisted one; declining deletes it.
func (s *ReceivingService) ResolveRecovery(ctx context.Context, locationID uuid.UUID, accept bool) (*DraftView, error) {
	sess := s.acquire(ctx, locationID)
	defer sess.mu.Unlock()

	if sess.offer == nil {
		return nil, apperror.NewConflictError("No draft recovery is pending for this location")
	}
	offer := *sess.offer
	sess.offer = nil
	sess.warnings = nil
	sess.outcome = ""

	if accept {
		sess.draft.Restore(offer)
		s.persist(ctx, sess)
		s.logger.Infow("draft recovered",
			"location_id", locationID,
			"lines", len(offer.LineItems),
			"saved_at", offer.SavedAt,
		)
	} else {
		s.deleteSnapshot(ctx, locationID)
		s.logger.Infow("draft recovery declined", "location_id", locationID)
	}
	return s.view(sess), nil
}

// AddItem adds a catalog item to the draft, merging with an existing line
func (s *ReceivingService) AddItem(ctx context.Context, locationID, itemID uuid.UUID) (*DraftView, error) {
	item, err := s.catalog.Find(ctx, locationID, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, apperror.NewNotFoundError("Catalog item")
	}
	return s.addToDraft(ctx, locationID, *item, nil)
}

// AddBySKU resolves a scanned SKU and adds the item like AddItem
func (s *ReceivingService) AddBySKU(ctx context.Context, locationID uuid.UUID, sku string) (*DraftView, error) {
	if strings.TrimSpace(sku) == "" {
		return nil, apperror.NewBadRequestError("SKU is required")
	}
	item, err := s.catalog.FindBySKU(ctx, locationID, sku)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, apperror.NewNotFoundError("Catalog item with SKU " + utils.NormalizeSKU(sku))
	}
	return s.addToDraft(ctx, locationID, *item, nil)
}

func (s *ReceivingService) addToDraft(ctx context.Context, locationID uuid.UUID, item receiving.CatalogItem, warnings []receiving.Warning) (*DraftView, error) {
	return s.mutate(ctx, locationID, func(d *receiving.Draft) (change, error) {
		outcome, w := d.AddOrMerge(item)
		return change{warnings: append(warnings, w...), outcome: outcome}, nil
	})
}

// CreateAndAddItem creates a catalog item and adds it to the draft. If
// creation fails the draft is left untouched.
func (s *ReceivingService) CreateAndAddItem(ctx context.Context, locationID uuid.UUID, actor Actor, spec receiving.NewItemSpec) (*DraftView, error) {
	spec.LocationID = locationID
	spec.CreatedBy = actor.ID
	warnings := spec.Normalize(s.policy)
	if spec.Name == "" {
		return nil, apperror.NewValidationError([]apperror.FieldError{
			{Field: "name", Message: "Item name is required"},
		})
	}

	if spec.SKU != "" {
		existing, err := s.catalog.FindBySKU(ctx, locationID, spec.SKU)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, apperror.NewConflictError("An item with this SKU already exists")
		}
	}

	item, err := s.creator.CreateItem(ctx, spec)
	if err != nil {
		return nil, receiving.CreationFailure(err, "catalog item")
	}
	s.catalog.Invalidate(ctx)

	return s.addToDraft(ctx, locationID, *item, warnings)
}

// ImportSheet applies a parsed delivery sheet as a single mutation. Each
// known SKU is merged; the sheet quantity is added to the line and its import
// price set through the clamp, so retail derivation applies unless an explicit
// retail price is given.
func (s *ReceivingService) ImportSheet(ctx context.Context, locationID uuid.UUID, sheet *importer.Sheet) (*ImportResult, error) {
	items, err := s.catalog.Items(ctx, locationID)
	if err != nil {
		return nil, err
	}
	bySKU := lo.KeyBy(items, func(c receiving.CatalogItem) string {
		return utils.NormalizeSKU(c.SKU)
	})

	result := &ImportResult{
		TotalRows: sheet.TotalRows(),
		Errors:    append([]importer.RowError{}, sheet.Errors...),
	}

	view, err := s.mutate(ctx, locationID, func(d *receiving.Draft) (change, error) {
		var warnings []receiving.Warning
		for _, row := range sheet.Rows {
			if rowErr := row.Validate(); rowErr != nil {
				result.Errors = append(result.Errors, *rowErr)
				continue
			}
			item, ok := bySKU[utils.NormalizeSKU(row.SKU)]
			if !ok {
				result.Errors = append(result.Errors, importer.RowError{
					Line:    row.Line,
					SKU:     row.SKU,
					Message: "unknown SKU",
				})
				continue
			}

			var existing int64
			if line, ok := d.Ledger().Line(item.ID); ok {
				existing = line.Quantity
			} else {
				_, w := d.AddOrMerge(item)
				warnings = append(warnings, w...)
			}
			w, _ := d.UpdateLine(item.ID, receiving.FieldQuantity, float64(existing)+row.Quantity)
			warnings = append(warnings, w...)
			w, _ = d.UpdateLine(item.ID, receiving.FieldImportPrice, row.ImportPrice)
			warnings = append(warnings, w...)
			if row.RetailPrice != nil {
				w, _ = d.UpdateLine(item.ID, receiving.FieldRetailPrice, *row.RetailPrice)
				warnings = append(warnings, w...)
			}
			result.Applied++
		}
		return change{warnings: warnings, noop: result.Applied == 0}, nil
	})
	if err != nil {
		return nil, err
	}

	result.Failed = len(result.Errors)
	result.Draft = view
	return result, nil
}

// UpdateLine edits one field of a line. An unknown item id is a no-op.
func (s *ReceivingService) UpdateLine(ctx context.Context, locationID, itemID uuid.UUID, field receiving.Field, value float64) (*DraftView, error) {
	if !field.IsValid() {
		return nil, apperror.NewBadRequestError("Unknown line field: " + string(field))
	}
	return s.mutate(ctx, locationID, func(d *receiving.Draft) (change, error) {
		w, ok := d.UpdateLine(itemID, field, value)
		return change{warnings: w, noop: !ok}, nil
	})
}

// RemoveLine removes a line; removing an absent line is a no-op
func (s *ReceivingService) RemoveLine(ctx context.Context, locationID, itemID uuid.UUID) (*DraftView, error) {
	return s.mutate(ctx, locationID, func(d *receiving.Draft) (change, error) {
		return change{noop: !d.RemoveLine(itemID)}, nil
	})
}

// SetSupplier selects the supplier of the draft; nil clears it
func (s *ReceivingService) SetSupplier(ctx context.Context, locationID uuid.UUID, supplierID *uuid.UUID) (*DraftView, error) {
	return s.mutate(ctx, locationID, func(d *receiving.Draft) (change, error) {
		d.SetSupplier(supplierID)
		return change{}, nil
	})
}

// CreateAndSelectSupplier creates a supplier and selects it for the draft.
// If creation fails the draft is left untouched.
func (s *ReceivingService) CreateAndSelectSupplier(ctx context.Context, locationID uuid.UUID, actor Actor, spec receiving.NewSupplierSpec) (*receiving.SupplierRef, *DraftView, error) {
	spec.CreatedBy = actor.ID
	spec.Normalize()
	if err := validateSupplierSpec(spec); err != nil {
		return nil, nil, err
	}
	ref, err := s.suppliers.CreateSupplier(ctx, spec)
	if err != nil {
		return nil, nil, receiving.CreationFailure(err, "supplier")
	}

	view, err := s.SetSupplier(ctx, locationID, &ref.ID)
	if err != nil {
		return nil, nil, err
	}
	return ref, view, nil
}

// SetDiscount stores the draft discount as an amount or a percentage
func (s *ReceivingService) SetDiscount(ctx context.Context, locationID uuid.UUID, value float64, mode enum.DiscountMode) (*DraftView, error) {
	if !mode.IsValid() {
		return nil, apperror.NewBadRequestError("Unknown discount mode: " + string(mode))
	}
	return s.mutate(ctx, locationID, func(d *receiving.Draft) (change, error) {
		return change{warnings: d.SetDiscount(value, mode)}, nil
	})
}

// SetPayment stores the settlement inputs of the draft
func (s *ReceivingService) SetPayment(ctx context.Context, locationID uuid.UUID, in receiving.SettlementInput) (*DraftView, error) {
	var fieldErrors []apperror.FieldError
	if !in.PaymentMethod.IsValid() {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "payment_method", Message: "Unknown payment method"})
	}
	if !in.PaymentType.IsValid() {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "payment_type", Message: "Unknown payment type"})
	}
	if in.PartialAmountPaid < 0 {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "partial_amount_paid", Message: "Amount paid cannot be negative"})
	}
	if len(fieldErrors) > 0 {
		return nil, apperror.NewValidationError(fieldErrors)
	}

	return s.mutate(ctx, locationID, func(d *receiving.Draft) (change, error) {
		d.SetPayment(in)
		return change{}, nil
	})
}

// Commit validates the draft and hands its commit request to the sink. On
// success the draft, its settlement inputs and its snapshot are cleared; on
// any failure they are kept.
func (s *ReceivingService) Commit(ctx context.Context, locationID uuid.UUID, actor Actor, note string) (*entity.GoodsReceipt, error) {
	sess := s.acquire(ctx, locationID)
	defer sess.mu.Unlock()

	req, err := sess.draft.BuildCommitRequest(note, actor.ID, s.authorizer.CanUpdatePrices(actor))
	if err != nil {
		return nil, err
	}

	receipt, err := s.sink.Commit(ctx, req)
	if err != nil {
		s.logger.Errorw("goods receipt commit failed",
			"location_id", locationID,
			"lines", len(req.Lines),
			"total_amount", req.TotalAmount,
			"error", err,
		)
		return nil, receiving.CommitFailure(err)
	}

	sess.draft.Reset()
	sess.offer = nil
	sess.warnings = nil
	sess.outcome = ""
	s.deleteSnapshot(ctx, locationID)
	s.catalog.Invalidate(ctx)

	s.logger.Infow("goods receipt committed",
		"location_id", locationID,
		"receipt_no", receipt.ReceiptNo,
		"lines", len(req.Lines),
		"total_amount", req.TotalAmount,
		"actor_id", actor.ID,
	)
	return receipt, nil
}

// Close drops the in-memory session. The snapshot stays for recovery.
func (s *ReceivingService) Close(ctx context.Context, locationID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions.Delete(ctx, sessionKey(locationID))
}

// Discard drops the session and deletes the snapshot
func (s *ReceivingService) Discard(ctx context.Context, locationID uuid.UUID) {
	sess := s.acquire(ctx, locationID)
	sess.draft.Reset()
	sess.offer = nil
	s.deleteSnapshot(ctx, locationID)
	sess.mu.Unlock()

	s.Close(ctx, locationID)
	s.logger.Infow("draft discarded", "location_id", locationID)
}

// PurgeStale deletes snapshots older than the staleness window
func (s *ReceivingService) PurgeStale(ctx context.Context) (int64, error) {
	cutoff := s.now().Add(-s.policy.StaleAfter)
	n, err := s.drafts.PurgeOlderThan(ctx, cutoff)
	if err != nil {
		return 0, receiving.PersistenceFailure(err, "purge")
	}
	if n > 0 {
		s.logger.Infow("purged stale drafts", "count", n, "cutoff", cutoff)
	}
	return n, nil
}
