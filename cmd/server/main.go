package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"girobank/internal/bank"
	"girobank/internal/bank/handler"
	"girobank/internal/bank/store/memory"
	"girobank/internal/bank/store/postgres"
	"girobank/internal/platform/config"
	"girobank/internal/platform/httpserver"
	"girobank/internal/platform/logger"
	"girobank/internal/platform/metrics"
	"girobank/internal/platform/middleware"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps
// the server lifecycle small. Business logic lives in internal/bank.
func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}
	log := logger.New(cfg.LogLevel)
	m := metrics.New()

	var (
		clients  bank.ClientStore
		accounts bank.AccountStore
		accesses bank.AccessStore
		runner   bank.TxRunner
	)
	if cfg.DatabaseURL != "" {
		pool, err := postgres.Connect(context.Background(), cfg.DatabaseURL)
		if err != nil {
			log.Error("database connect failed", "error", err)
			os.Exit(1)
		}
		defer pool.Close()
		if err := postgres.Migrate(context.Background(), pool); err != nil {
			log.Error("database migration failed", "error", err)
			os.Exit(1)
		}
		clients = postgres.NewClientStore(pool)
		accounts = postgres.NewAccountStore(pool)
		accesses = postgres.NewAccessStore(pool)
		runner = postgres.NewTxRunner(pool)
		log.Info("using postgres stores")
	} else {
		clients = memory.NewClientStore()
		accounts = memory.NewAccountStore()
		accesses = memory.NewAccessStore()
		runner = memory.NewTxRunner()
		log.Warn("DATABASE_URL not set, using in-memory stores")
	}

	bankSvc := bank.NewBank(clients, accesses, runner,
		bank.WithBankLogger(log), bank.WithBankMetrics(m))
	ledger := bank.NewLedger(accounts, accesses, runner,
		bank.WithLedgerLogger(log), bank.WithLedgerMetrics(m))

	tag, err := language.Parse(cfg.Locale)
	if err != nil {
		log.Warn("invalid locale, falling back to German", "locale", cfg.Locale)
		tag = language.German
	}
	printer := message.NewPrinter(tag)

	h := handler.New(bankSvc, ledger, printer, log)
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestLogger(log))
	h.Register(r)
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	srv := httpserver.New(cfg.Addr, r)

	log.Info("starting girobank", "addr", cfg.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
		os.Exit(1)
	}
}
