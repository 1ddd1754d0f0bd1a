package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpHandler "payment-resolver/internal/adapter/http/handler"
	"payment-resolver/internal/adapter/http/middleware"
	"payment-resolver/internal/adapter/signer"
	pgStorage "payment-resolver/internal/adapter/storage/postgres"
	redisStorage "payment-resolver/internal/adapter/storage/redis"
	"payment-resolver/internal/core/ports"
	"payment-resolver/internal/service"
	"payment-resolver/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP resolver",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd.Context(), *configPath)
		},
	}
}

func serve(ctx context.Context, configPath string) error {
	a, err := newApp(ctx, configPath)
	if err != nil {
		return err
	}
	defer a.Close()

	cfg, log := a.cfg, a.log
	gin.SetMode(cfg.Server.Mode)

	log.Info().
		Str("mode", cfg.Server.Mode).
		Str("network", a.params.Name).
		Str("store", cfg.Store.Backend).
		Msg("Starting payment resolver")

	// Redis stores
	branches := redisStorage.NewBranchStore(a.rdb)
	queue := redisStorage.NewPRRQueue(a.rdb)
	returns := redisStorage.NewReturnPRStore(a.rdb)
	invoices := redisStorage.NewInvoiceMetaStore(a.rdb)
	payments := redisStorage.NewPaymentMetaStore(a.rdb)
	addrCache := redisStorage.NewAddressCache(a.cacheRDB, a.node, cfg.Chain.CacheBlockheightThreshold)

	// Postgres-only repositories stay nil interfaces when the database is off.
	var (
		auditRepo        ports.AuditRepository
		notificationRepo ports.NotificationRepository
	)
	if a.pool != nil {
		auditRepo = pgStorage.NewAuditRepo(a.pool)
		notificationRepo = pgStorage.NewNotificationRepo(a.pool)
	}

	// Core services
	encSvc, err := service.NewAESEncryptionService(cfg.AES.Key)
	if err != nil {
		return err
	}
	sigSvc := service.NewSecp256k1SignatureService()
	hashSvc := service.NewArgon2HashService()
	tokenSvc := service.NewJWTTokenService(cfg.JWT.Secret, cfg.JWT.Expiry, cfg.JWT.Issuer)

	prSigner, err := signer.New(cfg.Signer, encSvc, logger.Component(log, "signer"))
	if err != nil {
		return err
	}
	prLog, err := a.paymentRequestLogger(ctx)
	if err != nil {
		return err
	}

	// Business services
	resolverSvc := service.NewResolverService(a.repo, branches, addrCache, invoices, prSigner, prLog, a.params,
		service.ResolverConfig{
			SiteURL:               cfg.Site.URL,
			IPBranching:           cfg.Resolver.IPBranching,
			MaxDerivationAttempts: cfg.Resolver.MaxDerivationAttempts,
			DefaultExpiration:     cfg.BIP70.DefaultExpiration,
		}, logger.Component(log, "resolver"))
	paymentSvc := service.NewPaymentService(invoices, payments, a.node, a.params,
		service.PaymentConfig{
			MaxSize:       cfg.Payment.MaxSize,
			SubmitRetries: cfg.Payment.SubmitRetries,
			SubmitBackoff: cfg.Payment.SubmitBackoff,
			MetaRetention: cfg.Payment.MetaRetention,
		}, logger.Component(log, "payment"))
	sfSvc := service.NewStoreForwardService(a.repo, branches,
		service.StoreForwardConfig{
			SiteURL:          cfg.Site.URL,
			PresignedPRLimit: cfg.StoreForward.PresignedPRLimit,
			MaxPRSize:        cfg.StoreForward.MaxPRSize,
		}, logger.Component(log, "storeforward"))
	notifySvc := service.NewNotificationService(notificationRepo, &http.Client{Timeout: cfg.PRR.NotifyTimeout}, cfg.PRR.NotifyTimeout, logger.Component(log, "notify"))
	prrSvc := service.NewPRRService(a.repo, queue, returns, notifySvc, cfg.Site.URL, logger.Component(log, "prr"))
	adminSvc := service.NewAdminService(a.repo, branches, prSigner, logger.Component(log, "admin"))
	authSvc := service.NewAuthService(cfg.Admin.Username, cfg.Admin.PasswordHash, hashSvc, tokenSvc)
	auditSvc := service.NewAuditService(auditRepo, logger.Component(log, "audit"))

	var limiter middleware.Limiter
	if cfg.RateLimit.Enabled {
		limiter = redisStorage.NewRateLimitStore(a.rdb)
	}

	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		ResolverSvc:     resolverSvc,
		PaymentSvc:      paymentSvc,
		StoreForwardSvc: sfSvc,
		PRRSvc:          prrSvc,
		AdminSvc:        adminSvc,
		AuthSvc:         authSvc,
		AuditSvc:        auditSvc,
		TokenSvc:        tokenSvc,
		SigSvc:          sigSvc,
		Repo:            a.repo,
		RateLimiter:     limiter,
		RateLimitRules:  middleware.RateLimitRules(cfg.RateLimit.ResolvePerMinute, cfg.RateLimit.DefaultPerMinute),
		HealthCheckers:  a.checkers,
		AdminPublicKey:  cfg.Admin.PublicKey,
		SiteURL:         cfg.Site.URL,
		MaxBodyBytes:    int64(max(cfg.Payment.MaxSize, cfg.StoreForward.MaxPRSize*cfg.StoreForward.PresignedPRLimit)),
		Logger:          logger.Component(log, "http"),
	})

	// HTTP Server with graceful shutdown
	srv := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case err := <-errCh:
		log.Error().Err(err).Msg("HTTP server failed")
		return err
	}
	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
	return nil
}
