package main

import (
	"bufio"
	"fmt"
	"os/signal"
	"strings"
	"syscall"

	redisStorage "payment-resolver/internal/adapter/storage/redis"
	"payment-resolver/internal/service"
	"payment-resolver/pkg/logger"

	"github.com/spf13/cobra"
)

func newBuildCacheCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "build-cache",
		Short: "Scan new blocks into the used-address cache",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			a, err := newApp(ctx, *configPath)
			if err != nil {
				return err
			}
			defer a.Close()

			cache := redisStorage.NewAddressCache(a.cacheRDB, a.node, a.cfg.Chain.CacheBlockheightThreshold)
			builder := service.NewCacheBuilder(a.node, cache, a.params, a.cfg.Jobs.CacheWorkers, a.cfg.Jobs.CacheBatch, logger.Component(a.log, "cache_builder"))

			height, err := builder.Run(ctx)
			if err != nil {
				a.log.Error().Err(err).Int64("synced_height", height).Msg("address cache build stopped")
				return err
			}
			a.log.Info().Int64("synced_height", height).Msg("address cache up to date")
			return nil
		},
	}
}

func newCleanupCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "cleanup",
		Short: "Purge expired PRRs, return payment requests and metadata",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx, *configPath)
			if err != nil {
				return err
			}
			defer a.Close()

			janitor := service.NewJanitor(
				redisStorage.NewPRRQueue(a.rdb),
				redisStorage.NewReturnPRStore(a.rdb),
				redisStorage.NewInvoiceMetaStore(a.rdb),
				redisStorage.NewPaymentMetaStore(a.rdb),
				a.cfg.PRR.Expiration,
				a.cfg.PRR.ReturnExpiration,
				logger.Component(a.log, "janitor"),
			)

			stats, err := janitor.Run(ctx)
			if err != nil {
				return err
			}
			a.log.Info().
				Int("prrs", stats.PRRs).
				Int("returns", stats.Returns).
				Int("invoice_metas", stats.InvoiceMetas).
				Int("payment_metas", stats.PaymentMetas).
				Msg("cleanup complete")
			return nil
		},
	}
}

func newHashPasswordCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-password [password]",
		Short: "Print an argon2id hash for admin.password_hash",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			password := ""
			if len(args) == 1 {
				password = args[0]
			} else {
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && line == "" {
					return fmt.Errorf("read password: %w", err)
				}
				password = strings.TrimRight(line, "\r\n")
			}
			if password == "" {
				return fmt.Errorf("password must not be empty")
			}

			hash, err := service.NewArgon2HashService().Hash(password)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hash)
			return nil
		},
	}
}
