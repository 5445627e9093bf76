package main

import (
	"fmt"
	"time"

	"github.com/sangkips/investify-receiving/internal/application/service"
	"github.com/sangkips/investify-receiving/internal/cache"
	"github.com/sangkips/investify-receiving/internal/infrastructure/repository"
	"github.com/spf13/cobra"
)

var draftsCmd = &cobra.Command{
	Use:   "drafts",
	Short: "Manage persisted receiving drafts",
}

var purgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Delete drafts older than the staleness window and expired idempotency keys",
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := bootstrap()
		if err != nil {
			return err
		}
		defer a.close()

		ctx := cmd.Context()
		catalog := service.NewCatalogService(repository.NewProductRepository(a.db), cache.NewInMemoryCache(time.Minute, time.Minute), 0)
		drafts, err := a.receivingService(catalog).PurgeStale(ctx)
		if err != nil {
			return err
		}
		keys, err := repository.NewIdempotencyRepository(a.db).DeleteExpired(ctx, time.Now())
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "purged %d stale drafts and %d expired idempotency keys\n", drafts, keys)
		return nil
	},
}

func init() {
	draftsCmd.AddCommand(purgeCmd)
}
