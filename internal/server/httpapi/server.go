// Package httpapi serves the JSON API and the static pages behind the
// session guard.
package httpapi

import (
	"context"
	"time"

	"github.com/dmitrijs2005/duoledger/internal/logging"
	"github.com/dmitrijs2005/duoledger/internal/server/auth"
	"github.com/dmitrijs2005/duoledger/internal/server/services"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/shopspring/decimal"
)

// Amounts and balances go over the wire as JSON numbers. Input accepts both
// numbers and numeric strings.
func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// Options tune the HTTP surface.
type Options struct {
	Addr            string
	Production      bool
	StaticDir       string
	ShutdownTimeout time.Duration
}

// Deps are the services the handlers call into.
type Deps struct {
	Users      *services.UserService
	Households *services.HouseholdService
	Ledger     *services.LedgerService
	Tokens     *auth.TokenService
}

type Server struct {
	app    *fiber.App
	deps   Deps
	opts   Options
	logger logging.Logger
}

func New(deps Deps, opts Options, l logging.Logger) *Server {
	s := &Server{deps: deps, opts: opts, logger: l.With("module", "http")}

	s.app = fiber.New(fiber.Config{
		AppName:               "duoledger",
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler(s.logger),
	})

	s.app.Use(requestid.New())
	s.app.Use(requestLogger(s.logger))
	s.app.Use(recover.New())
	s.app.Use(guard(deps.Tokens))

	s.routes()

	if opts.StaticDir != "" {
		s.app.Static("/", opts.StaticDir)
	}
	return s
}

func (s *Server) routes() {
	api := s.app.Group("/api")

	a := api.Group("/auth")
	a.Post("/register", s.register)
	a.Post("/login", s.login)
	a.Post("/logout", s.logout)
	a.Get("/me", s.me)
	a.Get("/verify-email", s.verifyEmail)

	api.Post("/households", s.createHousehold)
	api.Post("/accounts", s.createAccount)
	api.Get("/accounts", s.listAccounts)
	api.Post("/transactions", s.createTransaction)
	api.Get("/transactions", s.listTransactions)
	api.Get("/categories", s.listCategories)
}

// App exposes the fiber application, mostly for app.Test.
func (s *Server) App() *fiber.App {
	return s.app
}

// Run listens until ctx is cancelled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info(ctx, "http server listening", "addr", s.opts.Addr)
		errCh <- s.app.Listen(s.opts.Addr)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	timeout := s.opts.ShutdownTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := s.app.ShutdownWithContext(shutdownCtx); err != nil {
		return err
	}
	s.logger.Info(ctx, "http server stopped")
	return <-errCh
}
