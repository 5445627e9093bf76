package service

import (
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/sangkips/investify-receiving/internal/cache"
	"github.com/sangkips/investify-receiving/internal/domain/enum"
	"github.com/sangkips/investify-receiving/internal/domain/receiving"
	"github.com/sangkips/investify-receiving/internal/infrastructure/importer"
	"github.com/sangkips/investify-receiving/internal/testutil"
	"github.com/sangkips/investify-receiving/pkg/apperror"
	"github.com/stretchr/testify/suite"
)

type ReceivingServiceSuite struct {
	testutil.BaseServiceTestSuite
	service *ReceivingService
	manager Actor
	clerk   Actor
	sugar   receiving.CatalogItem
	rice    receiving.CatalogItem
}

func TestReceivingService(t *testing.T) {
	suite.Run(t, new(ReceivingServiceSuite))
}

func (s *ReceivingServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()
	s.sugar = s.AddCatalogItem("Sugar 1kg", "SUG-1", 12_000, 15_000, 14_000)
	s.rice = s.AddCatalogItem("Rice 5kg", "RICE-5", 60_000, 0, 0)
	s.manager = Actor{ID: uuid.New(), Roles: []string{enum.RoleManager}}
	s.clerk = Actor{ID: uuid.New(), Roles: []string{enum.RoleClerk}}
	s.service = s.newService()
}

// newService builds a service with fresh sessions over the shared stores,
// as after a process restart
func (s *ReceivingServiceSuite) newService() *ReceivingService {
	stores := s.GetStores()
	catalog := NewCatalogService(stores.Catalog, cache.NewInMemoryCache(time.Minute, time.Minute), 0)
	return NewReceivingService(
		catalog,
		stores.Catalog,
		stores.Suppliers,
		stores.Drafts,
		stores.Sink,
		NewRoleAuthorizer([]string{enum.RoleAdmin, enum.RoleManager}),
		cache.NewInMemoryCache(time.Hour, time.Minute),
		receiving.DefaultPolicy(),
		s.GetLogger(),
	).WithClock(s.GetClock().Now)
}

func (s *ReceivingServiceSuite) snapshotKey() string {
	return receiving.SnapshotKey(s.GetLocationID())
}

func (s *ReceivingServiceSuite) readySettlement() {
	_, err := s.service.SetPayment(s.GetContext(), s.GetLocationID(), receiving.SettlementInput{
		PaymentMethod: enum.PaymentMethodCash,
		PaymentType:   enum.PaymentTypeFull,
	})
	s.Require().NoError(err)
}

func (s *ReceivingServiceSuite) TestOpenEmpty() {
	view, err := s.service.Open(s.GetContext(), s.GetLocationID())
	s.Require().NoError(err)
	s.NotNil(view.Lines)
	s.Empty(view.Lines)
	s.Nil(view.Recovery)
	s.Equal(enum.DiscountModeAmount, view.DiscountMode)
	s.Zero(s.GetStores().Drafts.Writes())
}

func (s *ReceivingServiceSuite) TestAddItemAppendsThenMerges() {
	ctx, loc := s.GetContext(), s.GetLocationID()

	view, err := s.service.AddItem(ctx, loc, s.sugar.ID)
	s.Require().NoError(err)
	s.Equal(receiving.Appended, view.Outcome)
	s.Require().Len(view.Lines, 1)
	s.Equal(int64(1), view.Lines[0].Quantity)
	s.Equal(int64(12_000), view.Lines[0].ImportUnitPrice)
	s.Equal(int64(15_000), view.Lines[0].RetailUnitPrice)

	view, err = s.service.AddItem(ctx, loc, s.sugar.ID)
	s.Require().NoError(err)
	s.Equal(receiving.Merged, view.Outcome)
	s.Require().Len(view.Lines, 1)
	s.Equal(int64(2), view.Lines[0].Quantity)
	s.Equal(int64(24_000), view.Settlement.Subtotal)

	raw, ok := s.GetStores().Drafts.Raw(s.snapshotKey())
	s.Require().True(ok)
	snapshot, err := receiving.DecodeSnapshot(raw)
	s.Require().NoError(err)
	s.Require().Len(snapshot.LineItems, 1)
	s.Equal(int64(2), snapshot.LineItems[0].Quantity)
}

func (s *ReceivingServiceSuite) TestAddItemDerivesMissingRetail() {
	view, err := s.service.AddItem(s.GetContext(), s.GetLocationID(), s.rice.ID)
	s.Require().NoError(err)
	s.Require().Len(view.Lines, 1)
	s.Equal(int64(90_000), view.Lines[0].RetailUnitPrice)
}

func (s *ReceivingServiceSuite) TestAddItemUnknown() {
	_, err := s.service.AddItem(s.GetContext(), s.GetLocationID(), uuid.New())
	s.Require().Error(err)
	appErr := apperror.GetAppError(err)
	s.Require().NotNil(appErr)
	s.Equal(404, appErr.Code)
}

func (s *ReceivingServiceSuite) TestAddBySKU() {
	ctx, loc := s.GetContext(), s.GetLocationID()

	view, err := s.service.AddBySKU(ctx, loc, "  sug-1 ")
	s.Require().NoError(err)
	s.Require().Len(view.Lines, 1)
	s.Equal(s.sugar.ID, view.Lines[0].ItemID)

	_, err = s.service.AddBySKU(ctx, loc, "NOPE")
	s.Require().Error(err)
	s.Equal(404, apperror.GetAppError(err).Code)

	_, err = s.service.AddBySKU(ctx, loc, " ")
	s.Require().Error(err)
	s.Equal(400, apperror.GetAppError(err).Code)
}

func (s *ReceivingServiceSuite) TestUpdateLineClampsAndWarns() {
	ctx, loc := s.GetContext(), s.GetLocationID()
	_, err := s.service.AddItem(ctx, loc, s.sugar.ID)
	s.Require().NoError(err)

	view, err := s.service.UpdateLine(ctx, loc, s.sugar.ID, receiving.FieldQuantity, 50_000)
	s.Require().NoError(err)
	s.Equal(receiving.DefaultMaxQuantity, view.Lines[0].Quantity)
	s.Require().Len(view.Warnings, 1)
	s.Equal(receiving.FieldQuantity, view.Warnings[0].Field)

	view, err = s.service.UpdateLine(ctx, loc, s.sugar.ID, receiving.FieldImportPrice, 10_000)
	s.Require().NoError(err)
	s.Empty(view.Warnings)
	s.Equal(int64(10_000), view.Lines[0].ImportUnitPrice)

	_, err = s.service.UpdateLine(ctx, loc, s.sugar.ID, receiving.Field("colour"), 1)
	s.Require().Error(err)
	s.Equal(400, apperror.GetAppError(err).Code)
}

func (s *ReceivingServiceSuite) TestNoopDoesNotPersist() {
	ctx, loc := s.GetContext(), s.GetLocationID()
	_, err := s.service.AddItem(ctx, loc, s.sugar.ID)
	s.Require().NoError(err)
	writes := s.GetStores().Drafts.Writes()

	_, err = s.service.UpdateLine(ctx, loc, uuid.New(), receiving.FieldQuantity, 3)
	s.Require().NoError(err)
	_, err = s.service.RemoveLine(ctx, loc, uuid.New())
	s.Require().NoError(err)

	s.Equal(writes, s.GetStores().Drafts.Writes())
}

func (s *ReceivingServiceSuite) TestRemovingLastLineClearsSnapshot() {
	ctx, loc := s.GetContext(), s.GetLocationID()
	_, err := s.service.AddItem(ctx, loc, s.sugar.ID)
	s.Require().NoError(err)

	view, err := s.service.RemoveLine(ctx, loc, s.sugar.ID)
	s.Require().NoError(err)
	s.Empty(view.Lines)

	_, ok := s.GetStores().Drafts.Raw(s.snapshotKey())
	s.False(ok)
}

func (s *ReceivingServiceSuite) TestSettlementPartialPayment() {
	ctx, loc := s.GetContext(), s.GetLocationID()
	item := s.AddCatalogItem("Flour bale", "FLR-24", 100_000, 0, 0)
	_, err := s.service.AddItem(ctx, loc, item.ID)
	s.Require().NoError(err)
	_, err = s.service.UpdateLine(ctx, loc, item.ID, receiving.FieldQuantity, 10)
	s.Require().NoError(err)

	_, err = s.service.SetDiscount(ctx, loc, 200_000, enum.DiscountModeAmount)
	s.Require().NoError(err)
	view, err := s.service.SetPayment(ctx, loc, receiving.SettlementInput{
		PaymentMethod:     enum.PaymentMethodBankTransfer,
		PaymentType:       enum.PaymentTypePartial,
		PartialAmountPaid: 300_000,
	})
	s.Require().NoError(err)

	s.Equal(int64(1_000_000), view.Settlement.Subtotal)
	s.Equal(int64(800_000), view.Settlement.TotalAmount)
	s.Equal(int64(300_000), view.Settlement.PaidAmount)
	s.Equal(int64(500_000), view.Settlement.RemainingBalance)
}

func (s *ReceivingServiceSuite) TestSetDiscountRejectsUnknownMode() {
	_, err := s.service.SetDiscount(s.GetContext(), s.GetLocationID(), 10, enum.DiscountMode("fraction"))
	s.Require().Error(err)
	s.Equal(400, apperror.GetAppError(err).Code)
}

func (s *ReceivingServiceSuite) TestSetPaymentValidates() {
	_, err := s.service.SetPayment(s.GetContext(), s.GetLocationID(), receiving.SettlementInput{
		PaymentMethod:     enum.PaymentMethod("cheque"),
		PartialAmountPaid: -5,
	})
	s.Require().Error(err)
	appErr := apperror.GetAppError(err)
	s.Require().NotNil(appErr)
	s.Len(appErr.Errors, 2)
}

func (s *ReceivingServiceSuite) TestCommitEmptyNeverReachesSink() {
	s.readySettlement()

	_, err := s.service.Commit(s.GetContext(), s.GetLocationID(), s.manager, "")
	s.Require().Error(err)
	s.True(receiving.IsPrecondition(err))
	s.True(errors.Is(err, receiving.ErrEmptyLedger))
	s.Zero(s.GetStores().Sink.Calls())
}

func (s *ReceivingServiceSuite) TestCommitWithoutPaymentMethod() {
	_, err := s.service.AddItem(s.GetContext(), s.GetLocationID(), s.sugar.ID)
	s.Require().NoError(err)

	_, err = s.service.Commit(s.GetContext(), s.GetLocationID(), s.manager, "")
	s.Require().Error(err)
	s.True(errors.Is(err, receiving.ErrPaymentMethodMissing))
	s.NotEmpty(receiving.Hint(err))
	s.Zero(s.GetStores().Sink.Calls())
}

func (s *ReceivingServiceSuite) TestCommitRequiresPricePermission() {
	ctx, loc := s.GetContext(), s.GetLocationID()
	_, err := s.service.AddItem(ctx, loc, s.sugar.ID)
	s.Require().NoError(err)
	s.readySettlement()

	_, err = s.service.Commit(ctx, loc, s.clerk, "")
	s.Require().Error(err)
	s.True(errors.Is(err, receiving.ErrPriceUpdateDenied))
	s.Zero(s.GetStores().Sink.Calls())

	s.clerk.Permissions = []string{enum.PermissionUpdatePrices}
	_, err = s.service.Commit(ctx, loc, s.clerk, "")
	s.Require().NoError(err)
	s.Equal(1, s.GetStores().Sink.Calls())
}

func (s *ReceivingServiceSuite) TestCommitSuccessClearsDraft() {
	ctx, loc := s.GetContext(), s.GetLocationID()
	supplier, _, err := s.service.CreateAndSelectSupplier(ctx, loc, s.manager, receiving.NewSupplierSpec{Name: "Mombasa Millers"})
	s.Require().NoError(err)
	_, err = s.service.AddItem(ctx, loc, s.sugar.ID)
	s.Require().NoError(err)
	_, err = s.service.UpdateLine(ctx, loc, s.sugar.ID, receiving.FieldQuantity, 4)
	s.Require().NoError(err)
	s.readySettlement()

	receipt, err := s.service.Commit(ctx, loc, s.manager, "  morning delivery ")
	s.Require().NoError(err)
	s.NotEmpty(receipt.ReceiptNo)
	s.Equal(enum.ReceiptStatusPaid, receipt.Status)

	requests := s.GetStores().Sink.Requests()
	s.Require().Len(requests, 1)
	req := requests[0]
	s.Equal(loc, req.LocationID)
	s.Require().NotNil(req.SupplierID)
	s.Equal(supplier.ID, *req.SupplierID)
	s.Equal("morning delivery", req.Note)
	s.Equal(s.manager.ID, req.ActorID)
	s.Require().Len(req.Lines, 1)
	s.Equal(int64(4), req.Lines[0].Quantity)
	s.Equal(int64(48_000), req.TotalAmount)
	s.Equal(int64(48_000), req.PaymentInfo.PaidAmount)

	view, err := s.service.Open(ctx, loc)
	s.Require().NoError(err)
	s.Empty(view.Lines)
	s.Nil(view.SupplierID)
	s.False(view.Payment.PaymentMethod.IsSet())

	_, ok := s.GetStores().Drafts.Raw(s.snapshotKey())
	s.False(ok)
}

func (s *ReceivingServiceSuite) TestCommitFailureKeepsDraft() {
	ctx, loc := s.GetContext(), s.GetLocationID()
	_, err := s.service.AddItem(ctx, loc, s.sugar.ID)
	s.Require().NoError(err)
	s.readySettlement()
	s.GetStores().Sink.SetError(errors.New("connection reset"))

	_, err = s.service.Commit(ctx, loc, s.manager, "")
	s.Require().Error(err)
	s.True(receiving.IsCommit(err))
	s.NotEmpty(receiving.Hint(err))

	view, err := s.service.Open(ctx, loc)
	s.Require().NoError(err)
	s.Len(view.Lines, 1)
	s.Equal(enum.PaymentMethodCash, view.Payment.PaymentMethod)
	_, ok := s.GetStores().Drafts.Raw(s.snapshotKey())
	s.True(ok)

	s.GetStores().Sink.SetError(nil)
	_, err = s.service.Commit(ctx, loc, s.manager, "")
	s.Require().NoError(err)
}

func (s *ReceivingServiceSuite) TestPersistenceFailureDoesNotBlockMutation() {
	ctx, loc := s.GetContext(), s.GetLocationID()
	s.GetStores().Drafts.SetErrors(errors.New("read timeout"), errors.New("disk full"), nil)

	view, err := s.service.AddItem(ctx, loc, s.sugar.ID)
	s.Require().NoError(err)
	s.Len(view.Lines, 1)
	s.Zero(s.GetStores().Drafts.Writes())

	s.readySettlement()
	_, err = s.service.Commit(ctx, loc, s.manager, "")
	s.Require().NoError(err)
}

func (s *ReceivingServiceSuite) TestCreateAndAddItem() {
	ctx, loc := s.GetContext(), s.GetLocationID()

	view, err := s.service.CreateAndAddItem(ctx, loc, s.manager, receiving.NewItemSpec{
		Name:      " Cooking oil 3L ",
		SKU:       "oil-3",
		CostPrice: 40_000,
	})
	s.Require().NoError(err)
	s.Require().Len(view.Lines, 1)
	s.Equal("Cooking oil 3L", view.Lines[0].DisplayName)
	s.Equal("OIL-3", view.Lines[0].SKU)
	s.Equal(int64(60_000), view.Lines[0].RetailUnitPrice)

	_, err = s.service.CreateAndAddItem(ctx, loc, s.manager, receiving.NewItemSpec{Name: "Other", SKU: "SUG-1"})
	s.Require().Error(err)
	s.Equal(409, apperror.GetAppError(err).Code)

	_, err = s.service.CreateAndAddItem(ctx, loc, s.manager, receiving.NewItemSpec{Name: "  "})
	s.Require().Error(err)
	s.Equal(422, apperror.GetAppError(err).Code)
}

func (s *ReceivingServiceSuite) TestCreationFailureLeavesDraftUntouched() {
	ctx, loc := s.GetContext(), s.GetLocationID()
	_, err := s.service.AddItem(ctx, loc, s.sugar.ID)
	s.Require().NoError(err)
	writes := s.GetStores().Drafts.Writes()

	s.GetStores().Catalog.SetCreateError(errors.New("duplicate key"))
	_, err = s.service.CreateAndAddItem(ctx, loc, s.manager, receiving.NewItemSpec{Name: "Salt", CostPrice: 3_000})
	s.Require().Error(err)
	s.True(receiving.IsCreation(err))

	s.GetStores().Suppliers.SetCreateError(errors.New("duplicate key"))
	_, _, err = s.service.CreateAndSelectSupplier(ctx, loc, s.manager, receiving.NewSupplierSpec{Name: "Kapa"})
	s.Require().Error(err)
	s.True(receiving.IsCreation(err))

	view, err := s.service.Open(ctx, loc)
	s.Require().NoError(err)
	s.Len(view.Lines, 1)
	s.Nil(view.SupplierID)
	s.Equal(writes, s.GetStores().Drafts.Writes())
}

func (s *ReceivingServiceSuite) TestImportSheet() {
	ctx, loc := s.GetContext(), s.GetLocationID()
	_, err := s.service.AddItem(ctx, loc, s.sugar.ID)
	s.Require().NoError(err)
	writes := s.GetStores().Drafts.Writes()

	retail := 99_000.0
	sheet := &importer.Sheet{
		Rows: []importer.Row{
			{Line: 2, SKU: "sug-1", Quantity: 9, ImportPrice: 11_000},
			{Line: 3, SKU: "RICE-5", Quantity: 2, ImportPrice: 62_000, RetailPrice: &retail},
			{Line: 4, SKU: "GHOST", Quantity: 1, ImportPrice: 100},
		},
		Errors: []importer.RowError{{Line: 5, Message: "quantity is not a number"}},
	}

	result, err := s.service.ImportSheet(ctx, loc, sheet)
	s.Require().NoError(err)
	s.Equal(4, result.TotalRows)
	s.Equal(2, result.Applied)
	s.Equal(2, result.Failed)
	s.Require().Len(result.Errors, 2)
	s.Equal("GHOST", result.Errors[1].SKU)

	lines := result.Draft.Lines
	s.Require().Len(lines, 2)
	s.Equal(int64(10), lines[0].Quantity)
	s.Equal(int64(11_000), lines[0].ImportUnitPrice)
	s.Equal(int64(16_500), lines[0].RetailUnitPrice)
	s.Equal(int64(2), lines[1].Quantity)
	s.Equal(int64(99_000), lines[1].RetailUnitPrice)

	s.Equal(writes+1, s.GetStores().Drafts.Writes())
}

func (s *ReceivingServiceSuite) TestImportSheetRejectsNonPositiveQuantity() {
	ctx, loc := s.GetContext(), s.GetLocationID()
	_, err := s.service.AddItem(ctx, loc, s.sugar.ID)
	s.Require().NoError(err)
	_, err = s.service.UpdateLine(ctx, loc, s.sugar.ID, receiving.FieldQuantity, 5)
	s.Require().NoError(err)

	sheet := &importer.Sheet{
		Rows: []importer.Row{
			{Line: 2, SKU: "SUG-1", Quantity: -3, ImportPrice: 12_000},
			{Line: 3, SKU: "RICE-5", Quantity: 0, ImportPrice: 60_000},
		},
	}

	result, err := s.service.ImportSheet(ctx, loc, sheet)
	s.Require().NoError(err)
	s.Equal(0, result.Applied)
	s.Equal(2, result.Failed)
	s.Empty(result.Draft.Warnings)

	lines := result.Draft.Lines
	s.Require().Len(lines, 1)
	s.Equal(int64(5), lines[0].Quantity)
}

func (s *ReceivingServiceSuite) TestImportSheetAtCeilingWarnsOnce() {
	ctx, loc := s.GetContext(), s.GetLocationID()
	_, err := s.service.AddItem(ctx, loc, s.sugar.ID)
	s.Require().NoError(err)
	_, err = s.service.UpdateLine(ctx, loc, s.sugar.ID, receiving.FieldQuantity, float64(receiving.DefaultMaxQuantity))
	s.Require().NoError(err)

	sheet := &importer.Sheet{
		Rows: []importer.Row{{Line: 2, SKU: "SUG-1", Quantity: 4, ImportPrice: 12_000}},
	}

	result, err := s.service.ImportSheet(ctx, loc, sheet)
	s.Require().NoError(err)
	s.Equal(1, result.Applied)
	s.Require().Len(result.Draft.Warnings, 1)
	s.Equal(receiving.FieldQuantity, result.Draft.Warnings[0].Field)
	s.Equal(float64(receiving.DefaultMaxQuantity+4), result.Draft.Warnings[0].Requested)
	s.Equal(receiving.DefaultMaxQuantity, result.Draft.Lines[0].Quantity)
}

func (s *ReceivingServiceSuite) seedSnapshot(age time.Duration) {
	draft := receiving.NewDraft(s.GetLocationID(), receiving.DefaultPolicy())
	draft.AddOrMerge(s.sugar)
	draft.AddOrMerge(s.rice)
	raw, err := draft.Snapshot(s.GetClock().Now().Add(-age)).Encode()
	s.Require().NoError(err)
	s.GetStores().Drafts.Put(s.snapshotKey(), raw, s.GetClock().Now().Add(-age))
}

func (s *ReceivingServiceSuite) TestRecoveryOfferedWithinWindow() {
	s.seedSnapshot(23*time.Hour + 59*time.Minute)
	ctx, loc := s.GetContext(), s.GetLocationID()

	view, err := s.service.Open(ctx, loc)
	s.Require().NoError(err)
	s.Empty(view.Lines)
	s.Require().NotNil(view.Recovery)
	s.Equal(2, view.Recovery.LineCount)

	view, err = s.service.ResolveRecovery(ctx, loc, true)
	s.Require().NoError(err)
	s.Nil(view.Recovery)
	s.Len(view.Lines, 2)
	s.False(view.Payment.PaymentMethod.IsSet())

	_, err = s.service.ResolveRecovery(ctx, loc, true)
	s.Require().Error(err)
	s.Equal(409, apperror.GetAppError(err).Code)
}

func (s *ReceivingServiceSuite) TestAcceptedRecoveryRestartsStalenessWindow() {
	s.seedSnapshot(23 * time.Hour)
	ctx, loc := s.GetContext(), s.GetLocationID()

	_, err := s.service.Open(ctx, loc)
	s.Require().NoError(err)
	writes := s.GetStores().Drafts.Writes()
	_, err = s.service.ResolveRecovery(ctx, loc, true)
	s.Require().NoError(err)
	s.Equal(writes+1, s.GetStores().Drafts.Writes())

	s.GetClock().Advance(2 * time.Hour)
	n, err := s.service.PurgeStale(ctx)
	s.Require().NoError(err)
	s.Zero(n)

	restarted := s.newService()
	view, err := restarted.Open(ctx, loc)
	s.Require().NoError(err)
	s.Require().NotNil(view.Recovery)
	s.Equal(2, view.Recovery.LineCount)
}

func (s *ReceivingServiceSuite) TestRecoveryDeclined() {
	s.seedSnapshot(time.Hour)
	ctx, loc := s.GetContext(), s.GetLocationID()

	view, err := s.service.ResolveRecovery(ctx, loc, false)
	s.Require().NoError(err)
	s.Empty(view.Lines)
	_, ok := s.GetStores().Drafts.Raw(s.snapshotKey())
	s.False(ok)
}

func (s *ReceivingServiceSuite) TestStaleSnapshotDiscarded() {
	s.seedSnapshot(24*time.Hour + time.Minute)

	view, err := s.service.Open(s.GetContext(), s.GetLocationID())
	s.Require().NoError(err)
	s.Nil(view.Recovery)
	_, ok := s.GetStores().Drafts.Raw(s.snapshotKey())
	s.False(ok)
}

func (s *ReceivingServiceSuite) TestCorruptSnapshotDiscarded() {
	s.GetStores().Drafts.Put(s.snapshotKey(), "{not json", s.GetClock().Now())

	view, err := s.service.Open(s.GetContext(), s.GetLocationID())
	s.Require().NoError(err)
	s.Nil(view.Recovery)
	_, ok := s.GetStores().Drafts.Raw(s.snapshotKey())
	s.False(ok)
}

func (s *ReceivingServiceSuite) TestMutationDropsPendingOffer() {
	s.seedSnapshot(time.Hour)
	ctx, loc := s.GetContext(), s.GetLocationID()

	view, err := s.service.AddItem(ctx, loc, s.sugar.ID)
	s.Require().NoError(err)
	s.Nil(view.Recovery)
	s.Len(view.Lines, 1)

	raw, ok := s.GetStores().Drafts.Raw(s.snapshotKey())
	s.Require().True(ok)
	snapshot, err := receiving.DecodeSnapshot(raw)
	s.Require().NoError(err)
	s.Len(snapshot.LineItems, 1)
}

func (s *ReceivingServiceSuite) TestDraftSurvivesRestart() {
	ctx, loc := s.GetContext(), s.GetLocationID()
	_, err := s.service.AddItem(ctx, loc, s.sugar.ID)
	s.Require().NoError(err)
	_, err = s.service.SetDiscount(ctx, loc, 10, enum.DiscountModePercent)
	s.Require().NoError(err)

	restarted := s.newService()
	view, err := restarted.Open(ctx, loc)
	s.Require().NoError(err)
	s.Require().NotNil(view.Recovery)

	view, err = restarted.ResolveRecovery(ctx, loc, true)
	s.Require().NoError(err)
	s.Len(view.Lines, 1)
	s.Equal(int64(10), view.Discount)
	s.Equal(enum.DiscountModePercent, view.DiscountMode)
}

func (s *ReceivingServiceSuite) TestCloseKeepsSnapshotDiscardDeletesIt() {
	ctx, loc := s.GetContext(), s.GetLocationID()
	_, err := s.service.AddItem(ctx, loc, s.sugar.ID)
	s.Require().NoError(err)

	s.service.Close(ctx, loc)
	view, err := s.service.Open(ctx, loc)
	s.Require().NoError(err)
	s.NotNil(view.Recovery)

	s.service.Discard(ctx, loc)
	_, ok := s.GetStores().Drafts.Raw(s.snapshotKey())
	s.False(ok)
	view, err = s.service.Open(ctx, loc)
	s.Require().NoError(err)
	s.Nil(view.Recovery)
	s.Empty(view.Lines)
}

func (s *ReceivingServiceSuite) TestLocationsAreIsolated() {
	ctx := s.GetContext()
	other := uuid.New()
	_, err := s.service.AddItem(ctx, s.GetLocationID(), s.sugar.ID)
	s.Require().NoError(err)

	view, err := s.service.Open(ctx, other)
	s.Require().NoError(err)
	s.Empty(view.Lines)
}

func (s *ReceivingServiceSuite) TestPurgeStale() {
	drafts := s.GetStores().Drafts
	now := s.GetClock().Now()
	drafts.Put("receiving:draft:v1:old", "{}", now.Add(-25*time.Hour))
	drafts.Put("receiving:draft:v1:new", "{}", now.Add(-time.Hour))

	n, err := s.service.PurgeStale(s.GetContext())
	s.Require().NoError(err)
	s.Equal(int64(1), n)
	_, ok := drafts.Raw("receiving:draft:v1:new")
	s.True(ok)
}
