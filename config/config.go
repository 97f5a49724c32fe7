package config

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

type PostgresConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
}

func LoadPostgres() PostgresConfig {
	return PostgresConfig{
		Host:     GetString("DB_HOST", "localhost"),
		Port:     GetString("DB_PORT", "5432"),
		Name:     GetString("DB_NAME", "brasserie"),
		User:     GetString("DB_USER", "postgres"),
		Password: GetString("DB_PASSWORD", ""),
		SSLMode:  GetString("DB_SSL_MODE", "disable"),
	}
}

func (c PostgresConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

func LoadRedis() RedisConfig {
	return RedisConfig{
		Addr:     GetString("REDIS_HOST", "localhost") + ":" + GetString("REDIS_PORT", "6379"),
		Password: GetString("REDIS_PASSWORD", ""),
		DB:       GetInt("REDIS_DB", 0),
	}
}

type KafkaConfig struct {
	Brokers []string
}

func LoadKafka() KafkaConfig {
	return KafkaConfig{Brokers: GetList("KAFKA_BROKERS", []string{GetString("KAFKA_BROKER", "localhost:9092")})}
}

func MustInitPostgres(cfg PostgresConfig, logger *zap.SugaredLogger) *sql.DB {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		logger.Fatalw("failed to open database", "error", err)
	}

	if err = db.Ping(); err != nil {
		logger.Fatalw("failed to ping database", "host", cfg.Host, "db", cfg.Name, "error", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	logger.Infow("connected to postgres", "host", cfg.Host, "db", cfg.Name)
	return db
}

func MustInitRedis(cfg RedisConfig, logger *zap.SugaredLogger) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Fatalw("failed to connect to redis", "addr", cfg.Addr, "error", err)
	}

	logger.Infow("connected to redis", "addr", cfg.Addr)
	return client
}

func NewKafkaReader(cfg KafkaConfig, topic, groupID string) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.Brokers,
		Topic:    topic,
		GroupID:  groupID,
		MinBytes: 1,
		MaxBytes: 10e6,
	})
}

func NewKafkaWriter(cfg KafkaConfig, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Topic:                  topic,
		Balancer:               &kafka.LeastBytes{},
		BatchTimeout:           10 * time.Millisecond,
		AllowAutoTopicCreation: true,
	}
}
