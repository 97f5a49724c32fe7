package main

import (
	"context"
	"os/signal"
	"syscall"

	"brasserie/config"
	"brasserie/internal/events"
	"brasserie/notify-svc/internal/domain"
	"brasserie/notify-svc/internal/service"
	"brasserie/notify-svc/internal/storage"
)

func main() {
	_ = config.LoadDotEnv()

	logger := config.NewLogger(config.GetString("ENV", "development"), "notify-svc")
	defer logger.Sync()

	smtp := config.LoadSMTP()
	if err := smtp.Validate(); err != nil {
		logger.Fatalw("invalid mail configuration", "error", err)
	}

	emails, missing := config.LoadStaffEmails()
	if len(missing) > 0 {
		logger.Warnw("staff addresses missing, those roles will not be notified", "variables", missing)
	}

	renderer, err := service.NewRenderer()
	if err != nil {
		logger.Fatalw("failed to load mail templates", "error", err)
	}

	dispatcher := service.NewDispatcher(storage.NewSMTPMailer(smtp), renderer, domain.NewStaffDirectory(emails), logger)

	reader := config.NewKafkaReader(config.LoadKafka(), events.NotificationsTopic,
		config.GetString("KAFKA_GROUP_ID", "notify-svc"))
	defer reader.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Infow("consuming notifications", "topic", events.NotificationsTopic, "smtp_host", smtp.Host)
	if err := events.Consume(ctx, reader, dispatcher.HandleMessage, logger); err != nil {
		logger.Errorw("consumer stopped", "error", err)
	}
	logger.Info("notify-svc stopped")
}
