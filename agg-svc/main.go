package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"brasserie/agg-svc/internal/service"
	"brasserie/agg-svc/internal/storage"
	"brasserie/config"
	"brasserie/internal/events"
)

func main() {
	_ = config.LoadDotEnv()

	logger := config.NewLogger(config.GetString("ENV", "development"), "agg-svc")
	defer logger.Sync()

	rdb := config.MustInitRedis(config.LoadRedis(), logger)
	defer rdb.Close()

	loc := config.GetLocation("ANALYTICS_TZ", time.UTC)
	consumer := service.NewConsumer(storage.NewStore(rdb, loc), logger)

	reader := config.NewKafkaReader(config.LoadKafka(), events.OrderEventsTopic,
		config.GetString("KAFKA_GROUP_ID", "agg-svc"))
	defer reader.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Infow("consuming order events", "topic", events.OrderEventsTopic, "timezone", loc.String())
	if err := events.Consume(ctx, reader, consumer.Handle, logger); err != nil {
		logger.Errorw("consumer stopped", "error", err)
	}
	logger.Info("agg-svc stopped")
}
