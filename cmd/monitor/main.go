package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"deskwatch/internal/chat"
	"deskwatch/internal/deskapi"
	"deskwatch/internal/gate"
	"deskwatch/internal/monitor"
	"deskwatch/internal/notify"
	"deskwatch/internal/platform/config"
	"deskwatch/internal/platform/httpserver"
	"deskwatch/internal/platform/logger"
	"deskwatch/internal/platform/metrics"
	platformredis "deskwatch/internal/platform/redis"
	"deskwatch/internal/statestore"
	httptransport "deskwatch/internal/transport/http"
	"deskwatch/pkg/platform/audit"
	auditmemory "deskwatch/pkg/platform/audit/store/memory"
	auditpostgres "deskwatch/pkg/platform/audit/store/postgres"
	auditworker "deskwatch/pkg/platform/audit/worker"
)

// main wires dependencies and keeps the process lifecycle small. Business
// logic lives in the internal packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	mx := metrics.New()

	api, err := deskapi.New(cfg.API.BaseURL, cfg.API.APIKey, cfg.API.Timeout)
	if err != nil {
		log.Error("desk api client init failed", "error", err)
		os.Exit(1)
	}

	var checkers []httptransport.HealthChecker

	// Operating-state store: redis shared with the kiosk frontend when
	// configured, in-memory otherwise.
	var store statestore.Store = statestore.NewInMemoryStore()
	redisClient, err := platformredis.New(cfg.RedisURL)
	if err != nil {
		log.Error("redis init failed", "error", err)
		os.Exit(1)
	}
	if redisClient != nil {
		defer redisClient.Close()
		store = statestore.NewRedisStore(redisClient.Client)
		checkers = append(checkers, redisClient.Health)
	}

	// Local audit trail: postgres when configured, in-memory otherwise.
	var auditStore audit.Store = auditmemory.NewInMemoryStore()
	if cfg.PostgresDSN != "" {
		db, err := sql.Open("pgx", cfg.PostgresDSN)
		if err != nil {
			log.Error("postgres init failed", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		auditStore = auditpostgres.New(db)
		checkers = append(checkers, db.PingContext)
	}

	auditor := audit.NewChannelPublisher(256,
		audit.WithLogger(log),
		audit.WithDropFunc(mx.AuditDropped.Inc),
	)
	go func() {
		worker := auditworker.NewWorker(auditStore, auditor.Inbox(), log)
		if err := worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Error("audit worker stopped", "error", err)
		}
	}()

	dispatcherOpts := []notify.Option{
		notify.WithLogger(log),
		notify.WithMetrics(mx),
		notify.WithAuditPublisher(auditor),
	}
	if len(cfg.KafkaBrokers) > 0 {
		chatPublisher, err := chat.NewPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
		if err != nil {
			log.Error("chat publisher init failed", "error", err)
			os.Exit(1)
		}
		defer chatPublisher.Close()
		dispatcherOpts = append(dispatcherOpts, notify.WithChatPublisher(chatPublisher))
	}

	dispatcher, err := notify.NewDispatcher(api, dispatcherOpts...)
	if err != nil {
		log.Error("dispatcher init failed", "error", err)
		os.Exit(1)
	}

	hoursGate, err := gate.New(store, gate.WithLogger(log))
	if err != nil {
		log.Error("gate init failed", "error", err)
		os.Exit(1)
	}

	mon, err := monitor.New(api, store, hoursGate, dispatcher,
		monitor.WithLogger(log),
		monitor.WithMetrics(mx),
		monitor.WithAuditPublisher(auditor),
		monitor.WithIntervals(cfg.FastInterval, cfg.SlowInterval),
	)
	if err != nil {
		log.Error("monitor init failed", "error", err)
		os.Exit(1)
	}

	srv := httpserver.New(cfg.Addr, httptransport.NewRouter(httptransport.NewHandler(mon, checkers...)))
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("ops server error", "error", err)
		}
	}()

	log.Info("deskwatch monitor starting",
		"addr", cfg.Addr,
		"api", cfg.API.BaseURL,
		"slow_interval", cfg.SlowInterval.String(),
	)

	if err := mon.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("monitor stopped", "error", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
	}
}
