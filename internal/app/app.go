package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/heartmarshall/mikro-backoffice/internal/config"
	"github.com/heartmarshall/mikro-backoffice/internal/transport/middleware"
	"github.com/heartmarshall/mikro-backoffice/internal/transport/rest"
	"github.com/heartmarshall/mikro-backoffice/internal/transport/rest/loader"
)

// Run is the application entry point. It loads configuration, connects the
// stores, starts the sync scheduler and serves HTTP until ctx is cancelled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)
	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	infra, err := openInfra(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer infra.Close()

	svc, err := newServices(cfg, logger, infra)
	if err != nil {
		return err
	}

	limiter := middleware.NewRateLimiter(cfg.RateLimit.MaxClients, cfg.RateLimit.IdleTTL)
	mux := rest.NewRouter(newHandlers(logger, infra, svc), rest.Guards{
		Permissions: middleware.NewPermissions(svc.perms, logger),
		LoginLimit:  limiter.Limit(cfg.RateLimit.LoginPerMinute),
	})

	handler := middleware.Chain(
		middleware.RequestID,
		middleware.Logger(logger),
		middleware.Recovery(logger),
		middleware.CORS(cfg.CORS),
		middleware.Auth(svc.auth),
		loader.Middleware(svc.customers),
	)(mux)

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		svc.sync.Start(runCtx)
	}()

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	var serveErr error
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case serveErr = <-errCh:
		if serveErr != nil {
			logger.Error("http server failed", slog.String("error", serveErr.Error()))
		}
	}

	shutdownCtx, stop := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer stop()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown", slog.String("error", err.Error()))
	}

	cancel()
	wg.Wait()
	logger.Info("application stopped")

	if serveErr != nil {
		return fmt.Errorf("app: serve: %w", serveErr)
	}
	return nil
}

// RunSync performs one sync pass over every table and returns. It backs the
// sync command used by cron deployments that disable the in-process
// scheduler.
func RunSync(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := NewLogger(cfg.Log)

	infra, err := openInfra(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer infra.Close()

	svc, err := newServices(cfg, logger, infra)
	if err != nil {
		return err
	}

	results, err := svc.sync.Run(ctx)
	for _, r := range results {
		logger.Info("table synced",
			slog.String("table", string(r.Table)),
			slog.Int("fetched", r.Fetched),
			slog.Bool("skipped", r.Skipped),
		)
	}
	if err != nil {
		return fmt.Errorf("app: sync: %w", err)
	}
	return nil
}

func newHandlers(logger *slog.Logger, infra *infra, svc *services) rest.Handlers {
	return rest.Handlers{
		Health:      rest.NewHealthHandler(infra.pool, svc.erp, BuildVersion()),
		ERP:         rest.NewERPHandler(svc.erp, logger),
		Auth:        rest.NewAuthHandler(svc.auth, logger),
		User:        rest.NewUserHandler(svc.users, logger),
		Customer:    rest.NewCustomerHandler(svc.customers, logger),
		Product:     rest.NewProductHandler(svc.products, logger),
		Cart:        rest.NewCartHandler(svc.carts, logger),
		Approval:    rest.NewApprovalHandler(svc.approvals, logger),
		Transaction: rest.NewTransactionHandler(svc.ledger, logger),
		Order:       rest.NewOrderHandler(svc.orders, logger),
		Inventory:   rest.NewInventoryHandler(svc.inventory, logger),
		Setting:     rest.NewSettingHandler(svc.settings, logger),
		Sync:        rest.NewSyncHandler(svc.sync, logger),
		Report:      rest.NewReportHandler(svc.reports, logger),
	}
}
