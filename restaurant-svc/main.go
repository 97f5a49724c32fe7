package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"brasserie/config"
	"brasserie/internal/events"
	httpapi "brasserie/restaurant-svc/internal/api/http"
	"brasserie/restaurant-svc/internal/service"
	"brasserie/restaurant-svc/internal/storage"

	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

type appConfig struct {
	addr           string
	env            string
	taxRate        float64
	receiptBaseURL string
	settledTTL     time.Duration
	publishTimeout time.Duration
}

type application struct {
	config   appConfig
	logger   *zap.SugaredLogger
	db       *sql.DB
	redis    *redis.Client
	writers  []*kafka.Writer
	notifier *service.Notifier
	handler  *httpapi.Handler
}

func main() {
	_ = config.LoadDotEnv()

	migrateOnly := flag.Bool("migrate-only", false, "apply migrations and exit")
	seed := flag.Bool("seed", config.GetBool("SEED_DEMO_DATA", false), "insert demo data on startup")
	flag.Parse()

	cfg := appConfig{
		addr:           ":" + config.GetString("PORT", "8081"),
		env:            config.GetString("ENV", "development"),
		taxRate:        config.GetFloat("TAX_RATE", 0.10),
		receiptBaseURL: config.GetString("RECEIPT_BASE_URL", "http://localhost"),
		settledTTL:     config.GetDuration("SETTLED_TTL", 24*time.Hour),
		publishTimeout: config.GetDuration("PUBLISH_TIMEOUT", 5*time.Second),
	}

	logger := config.NewLogger(cfg.env, "restaurant-svc")
	defer logger.Sync()

	db := config.MustInitPostgres(config.LoadPostgres(), logger)

	version, err := storage.Migrate(db)
	if err != nil {
		logger.Fatalw("failed to apply migrations", "error", err)
	}
	logger.Infow("schema up to date", "version", version)

	if *migrateOnly {
		_ = db.Close()
		return
	}

	if *seed {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		if err := storage.Seed(ctx, db, time.Now()); err != nil {
			logger.Warnw("demo data partially seeded", "error", err)
		} else {
			logger.Info("demo data seeded")
		}
		cancel()
	}

	rdb := config.MustInitRedis(config.LoadRedis(), logger)

	kafkaCfg := config.LoadKafka()
	notifications := config.NewKafkaWriter(kafkaCfg, events.NotificationsTopic)
	orderEvents := config.NewKafkaWriter(kafkaCfg, events.OrderEventsTopic)

	repo := storage.NewPostgresRepository(db)
	cache := storage.NewSettlementCache(rdb, cfg.settledTTL)
	notifier := service.NewNotifier(storage.NewKafkaPublisher(notifications, orderEvents), logger, cfg.publishTimeout)
	qr := service.ReceiptQRGenerator{BaseURL: cfg.receiptBaseURL}

	handler := httpapi.NewHandler(
		service.NewCatalogService(repo, repo, repo),
		service.NewTableService(repo, logger),
		service.NewOrderService(repo, repo, repo, qr, notifier, logger, cfg.taxRate),
		service.NewReservationService(repo, repo, notifier, logger),
		service.NewPaymentService(repo, repo, repo, cache, notifier, logger),
		logger,
	)

	app := &application{
		config:   cfg,
		logger:   logger,
		db:       db,
		redis:    rdb,
		writers:  []*kafka.Writer{notifications, orderEvents},
		notifier: notifier,
		handler:  handler,
	}

	if err := app.run(app.mount()); err != nil {
		logger.Fatalw("server error", "error", err)
	}
}

func (app *application) mount() http.Handler {
	return httpapi.NewRouter(app.handler)
}

func (app *application) run(h http.Handler) error {
	srv := &http.Server{
		Addr:         app.config.addr,
		Handler:      h,
		WriteTimeout: 30 * time.Second,
		ReadTimeout:  10 * time.Second,
		IdleTimeout:  time.Minute,
	}

	shutdown := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		app.logger.Infow("signal caught", "signal", s.String())

		err := srv.Shutdown(ctx)

		app.notifier.Wait()
		for _, w := range app.writers {
			if cerr := w.Close(); cerr != nil {
				app.logger.Errorw("error closing kafka writer", "topic", w.Topic, "error", cerr)
			}
		}
		if cerr := app.redis.Close(); cerr != nil {
			app.logger.Errorw("error closing redis", "error", cerr)
		}
		if cerr := app.db.Close(); cerr != nil {
			app.logger.Errorw("error closing postgres", "error", cerr)
		}

		shutdown <- err
	}()

	app.logger.Infow("server has started", "addr", app.config.addr, "env", app.config.env)

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	if err := <-shutdown; err != nil {
		return err
	}

	app.logger.Infow("server has stopped", "addr", app.config.addr)
	return nil
}
