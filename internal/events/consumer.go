package events

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// MessageReader is the part of *kafka.Reader a consumer group member needs.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
}

type HandlerFunc func(ctx context.Context, msg kafka.Message) error

// fetchBackoff is how long Consume waits after a failed fetch.
var fetchBackoff = time.Second

// Consume fetches, handles and commits messages until ctx is done or the
// reader is closed. A message is committed after its handler returns, even
// when the handler failed, so a poison record cannot block the partition.
func Consume(ctx context.Context, reader MessageReader, handle HandlerFunc, logger *zap.SugaredLogger) error {
	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, io.EOF) {
				return nil
			}
			logger.Errorw("failed to fetch message", "error", err)
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(fetchBackoff):
			}
			continue
		}

		if err := handle(ctx, msg); err != nil {
			logger.Errorw("failed to handle message",
				"topic", msg.Topic, "partition", msg.Partition, "offset", msg.Offset, "error", err)
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			logger.Errorw("failed to commit message", "topic", msg.Topic, "offset", msg.Offset, "error", err)
		}
	}
}
