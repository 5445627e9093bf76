package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/sangkips/investify-receiving/internal/domain/entity"
	"github.com/sangkips/investify-receiving/internal/domain/enum"
	"github.com/sangkips/investify-receiving/internal/domain/receiving"
	"github.com/sangkips/investify-receiving/internal/domain/repository"
	infraRepo "github.com/sangkips/investify-receiving/internal/infrastructure/repository"
	"github.com/sangkips/investify-receiving/internal/testutil"
	"github.com/sangkips/investify-receiving/pkg/apperror"
	"github.com/sangkips/investify-receiving/pkg/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReceiptService(t *testing.T) {
	ctx := context.Background()
	branch := entity.Location{ID: uuid.New(), Name: "Main Branch"}
	depot := entity.Location{ID: uuid.New(), Name: "Depot"}
	locations := testutil.NewInMemoryLocationStore(branch, depot)
	sink := testutil.NewInMemoryCommitSink()
	svc := NewReceiptService(sink, locations)

	clerk := Actor{ID: uuid.New(), Roles: []string{enum.RoleClerk}}
	require.NoError(t, locations.AddMember(ctx, &entity.LocationMembership{LocationID: branch.ID, UserID: clerk.ID}))

	commit := func(locationID uuid.UUID, total, paid int64) *entity.GoodsReceipt {
		receipt, err := sink.Commit(ctx, receiving.CommitRequest{
			LocationID:       locationID,
			Subtotal:         total,
			TotalAmount:      total,
			RemainingBalance: total - paid,
			ActorID:          clerk.ID,
			PaymentInfo: receiving.PaymentInfo{
				PaymentMethod: enum.PaymentMethodCash,
				PaymentType:   enum.PaymentTypePartial,
				PaidAmount:    paid,
			},
		})
		require.NoError(t, err)
		return receipt
	}
	paid := commit(branch.ID, 100_000, 100_000)
	partial := commit(branch.ID, 80_000, 30_000)
	other := commit(depot.ID, 50_000, 0)

	t.Run("list is scoped to the location in context", func(t *testing.T) {
		result, err := svc.ListReceipts(infraRepo.WithLocation(ctx, branch.ID), &repository.GoodsReceiptFilterParams{})
		require.NoError(t, err)
		require.Len(t, result.Items, 2)
		assert.Equal(t, partial.ID, result.Items[0].ID)
		assert.Equal(t, paid.ID, result.Items[1].ID)
		assert.EqualValues(t, 2, result.Pagination.Total)
	})

	t.Run("unpaid filter and paging", func(t *testing.T) {
		result, err := svc.ListReceipts(infraRepo.WithLocation(ctx, branch.ID), &repository.GoodsReceiptFilterParams{Unpaid: true})
		require.NoError(t, err)
		require.Len(t, result.Items, 1)
		assert.Equal(t, enum.ReceiptStatusPartial, result.Items[0].Status)

		page2, err := svc.ListReceipts(infraRepo.WithLocation(ctx, branch.ID), &repository.GoodsReceiptFilterParams{
			Pagination: &pagination.PaginationParams{Page: 2, PerPage: 1},
		})
		require.NoError(t, err)
		require.Len(t, page2.Items, 1)
		assert.Equal(t, paid.ID, page2.Items[0].ID)
	})

	t.Run("list without a location is rejected", func(t *testing.T) {
		_, err := svc.ListReceipts(ctx, &repository.GoodsReceiptFilterParams{})
		require.Error(t, err)
		assert.Equal(t, 400, apperror.GetAppError(err).Code)
	})

	t.Run("get by id or receipt number", func(t *testing.T) {
		got, err := svc.GetReceipt(ctx, clerk, partial.ID.String())
		require.NoError(t, err)
		assert.Equal(t, partial.ReceiptNo, got.ReceiptNo)

		got, err = svc.GetReceipt(ctx, clerk, " "+partial.ReceiptNo+" ")
		require.NoError(t, err)
		assert.Equal(t, partial.ID, got.ID)
	})

	t.Run("receipts outside the actor's locations are not found", func(t *testing.T) {
		_, err := svc.GetReceipt(ctx, clerk, other.ID.String())
		require.Error(t, err)
		assert.Equal(t, 404, apperror.GetAppError(err).Code)

		admin := Actor{ID: uuid.New(), Roles: []string{enum.RoleSuperAdmin}}
		got, err := svc.GetReceipt(ctx, admin, other.ReceiptNo)
		require.NoError(t, err)
		assert.Equal(t, depot.ID, got.LocationID)
	})
}
