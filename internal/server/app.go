// Package server wires configuration, storage, services and the network
// front ends together and runs them until shutdown.
package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/duoledger/internal/logging"
	"github.com/dmitrijs2005/duoledger/internal/server/auth"
	"github.com/dmitrijs2005/duoledger/internal/server/config"
	"github.com/dmitrijs2005/duoledger/internal/server/httpapi"
	"github.com/dmitrijs2005/duoledger/internal/server/notify"
	"github.com/dmitrijs2005/duoledger/internal/server/repositories/memory"
	"github.com/dmitrijs2005/duoledger/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/duoledger/internal/server/services"

	gs "github.com/dmitrijs2005/duoledger/internal/server/grpc"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	repomanager repomanager.RepositoryManager
	http        *httpapi.Server
	health      *gs.HealthServer
}

// openStore selects the in-process store or PostgreSQL and brings the
// schema up to date.
func openStore(ctx context.Context, c *config.Config) (repomanager.RepositoryManager, error) {
	var (
		rm  repomanager.RepositoryManager
		err error
	)
	if c.UsesMemoryStore() {
		rm = memory.NewManager()
	} else {
		rm, err = repomanager.OpenPostgres(ctx, c.DatabaseDSN)
		if err != nil {
			return nil, fmt.Errorf("db init error: %w", err)
		}
	}
	if err := rm.RunMigrations(ctx); err != nil {
		_ = rm.Close()
		return nil, fmt.Errorf("migrations error: %w", err)
	}
	return rm, nil
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.New(c.LogFormat, os.Stdout)

	rm, err := openStore(ctx, c)
	if err != nil {
		return nil, err
	}

	notifier, err := notify.New(ctx, c, logger)
	if err != nil {
		_ = rm.Close()
		return nil, fmt.Errorf("notifier init error: %w", err)
	}

	tokens := auth.NewTokenService([]byte(c.SecretKey))
	deps := httpapi.Deps{
		Users:      services.NewUserService(rm, tokens, notifier, c.BaseURL, logger),
		Households: services.NewHouseholdService(rm, logger),
		Ledger:     services.NewLedgerService(rm, logger),
		Tokens:     tokens,
	}

	app := &App{
		config:      c,
		logger:      logger,
		repomanager: rm,
		http: httpapi.New(deps, httpapi.Options{
			Addr:            c.HTTPAddr,
			Production:      c.Production,
			StaticDir:       c.StaticDir,
			ShutdownTimeout: c.ShutdownTimeout,
		}, logger),
	}
	if c.HealthAddrGRPC != "" {
		app.health = gs.NewHealthServer(c.HealthAddrGRPC, rm, c.HealthCheckInterval, logger)
	}
	return app, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// serve runs one front end; a failure brings the whole app down.
func (app *App) serve(ctx context.Context, cancelFunc context.CancelFunc, name string, run func(context.Context) error) {
	if err := run(ctx); err != nil {
		app.logger.Error(ctx, "server failed", "server", name, "error", err)
		cancelFunc()
	}
}

// Run blocks until ctx is cancelled, a signal arrives or a server fails,
// then closes the store.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.serve(ctx, cancelFunc, "http", app.http.Run)
	}()

	if app.health != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			app.serve(ctx, cancelFunc, "grpc_health", app.health.Run)
		}()
	}

	wg.Wait()

	app.logger.Info(context.Background(), "Stopping app...")
	return app.repomanager.Close()
}
