package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/hamed0406/domainwatch/internal/bot"
	"github.com/hamed0406/domainwatch/internal/config"
	"github.com/hamed0406/domainwatch/internal/httpapi"
	"github.com/hamed0406/domainwatch/internal/logging"
	"github.com/hamed0406/domainwatch/internal/notify"
	"github.com/hamed0406/domainwatch/internal/probe"
	"github.com/hamed0406/domainwatch/internal/scheduler"
	"github.com/hamed0406/domainwatch/internal/source"
	badgerstore "github.com/hamed0406/domainwatch/internal/store/badger"
	"github.com/hamed0406/domainwatch/internal/tracker"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("no .env file: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := logging.NewLogger(cfg.LogDir)
	if err != nil {
		log.Fatalf("logging: %v", err)
	}
	defer logger.Sync()

	// stores must be readable before the first cycle; failing to open them
	// is fatal
	db, err := badgerstore.Open(cfg.DataDir, logger)
	if err != nil {
		logger.Fatal("store_open_error", zap.Error(err))
	}
	defer db.Close()

	ignores := badgerstore.NewIgnoreStore(db)
	admins := badgerstore.NewAdminStore(db)

	tg := notify.NewTelegram(cfg.TelegramBotToken)
	dispatcher := notify.NewDispatcher(logger, admins, tg, 10*time.Second)

	tr := tracker.New(cfg.MaxFailures)
	checker := probe.NewWPChecker(cfg.Timeout(), cfg.HealthAPIKey, cfg.VerifySSL)
	src := source.NewHTTP(cfg.DomainsAPI, cfg.Timeout())

	runner := scheduler.NewRunner(
		logger, src, ignores, checker, tr,
		func(ctx context.Context, text string) { dispatcher.Dispatch(ctx, text) },
		cfg.CheckCycle(), cfg.Timeout(), cfg.Concurrency,
	)

	router := bot.NewRouter(logger, ignores, admins, tr, tg, cfg.AdminPhones, runner.Kick)
	poller := bot.NewPoller(logger, cfg.TelegramBotToken, router)

	api := httpapi.NewServer(logger, tr, ignores, cfg.APIKeyList())
	srv := &http.Server{Addr: cfg.APIAddr, Handler: api.Router()}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("watcher_starting",
		zap.String("domains_api", cfg.DomainsAPI),
		zap.Duration("check_cycle", cfg.CheckCycle()),
		zap.Int("max_failures", cfg.MaxFailures),
		zap.String("api_addr", cfg.APIAddr),
	)
	dispatcher.Dispatch(ctx, "🚀 domainwatch started")

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return runner.Run(gctx) })
	g.Go(func() error { return poller.Run(gctx) })
	g.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("watcher_exit", zap.Error(err))
	}
	logger.Info("watcher_stopped")
}
