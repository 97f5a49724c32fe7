package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"brasserie/api-gateway/internal/gateway"
	"brasserie/config"

	"github.com/rs/cors"
	"go.uber.org/zap"
)

func main() {
	_ = config.LoadDotEnv()

	logger := config.NewLogger(config.GetString("ENV", "development"), "api-gateway")
	defer logger.Sync()

	profile := config.RestrictedProfile()
	if role, err := config.ParseRole(config.GetString("APP_ROLE", string(config.RoleManager))); err != nil {
		logger.Warnw("unknown APP_ROLE, serving the root page only", "error", err)
	} else {
		profile = config.ProfileFor(role)
	}

	cfg := gateway.Config{
		RestaurantSvcURL: config.GetString("RESTAURANT_SVC_URL", "http://localhost:8081"),
		AnalyticsSvcURL:  config.GetString("ANALYTICS_SVC_URL", "http://localhost:8083"),
		FrontendURL:      config.GetString("FRONTEND_URL", "http://localhost:3100"),
		SocketHost:       config.GetString("SOCKET_HOST", "localhost"),
		Profile:          profile,
		ProxyTimeout:     config.GetDuration("PROXY_TIMEOUT", 30*time.Second),
	}

	gw := gateway.NewGateway(cfg, &http.Client{
		CheckRedirect: func(*http.Request, []*http.Request) error { return http.ErrUseLastResponse },
	}, logger)

	handler := cors.New(cors.Options{
		AllowedOrigins:   config.GetList("CORS_ORIGINS", []string{"http://localhost:8080", "http://127.0.0.1:8080"}),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}).Handler(gw.SetupRoutes())

	addr := ":" + config.GetString("PORT", "8080")
	if err := run(addr, handler, logger); err != nil {
		logger.Fatalw("server error", "error", err)
	}
}

func run(addr string, h http.Handler, logger *zap.SugaredLogger) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      h,
		WriteTimeout: time.Minute,
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

		logger.Infow("signal caught", "signal", s.String())
		shutdown <- srv.Shutdown(ctx)
	}()

	logger.Infow("gateway has started", "addr", addr)

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	if err := <-shutdown; err != nil {
		return err
	}

	logger.Infow("gateway has stopped", "addr", addr)
	return nil
}
