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

	httpapi "brasserie/analytics-svc/internal/api/http"
	"brasserie/analytics-svc/internal/service"
	"brasserie/analytics-svc/internal/storage"
	"brasserie/config"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type appConfig struct {
	addr string
	env  string
	loc  *time.Location
}

type application struct {
	config  appConfig
	logger  *zap.SugaredLogger
	db      *sql.DB
	redis   *redis.Client
	handler *httpapi.Handler
}

func main() {
	_ = config.LoadDotEnv()

	cfg := appConfig{
		addr: ":" + config.GetString("PORT", "8083"),
		env:  config.GetString("ENV", "development"),
		loc:  config.GetLocation("ANALYTICS_TZ", time.UTC),
	}

	logger := config.NewLogger(cfg.env, "analytics-svc")
	defer logger.Sync()

	db := config.MustInitPostgres(config.LoadPostgres(), logger)
	rdb := config.MustInitRedis(config.LoadRedis(), logger)

	svc := service.NewAnalyticsService(storage.NewCounters(rdb), storage.NewLedger(db, cfg.loc), cfg.loc, logger)

	app := &application{
		config:  cfg,
		logger:  logger,
		db:      db,
		redis:   rdb,
		handler: httpapi.NewHandler(svc, logger),
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

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		app.logger.Infow("signal caught", "signal", s.String())

		err := srv.Shutdown(ctx)
		if cerr := app.redis.Close(); cerr != nil {
			app.logger.Errorw("error closing redis", "error", cerr)
		}
		if cerr := app.db.Close(); cerr != nil {
			app.logger.Errorw("error closing postgres", "error", cerr)
		}

		shutdown <- err
	}()

	app.logger.Infow("server has started", "addr", app.config.addr, "env", app.config.env, "tz", app.config.loc.String())

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
