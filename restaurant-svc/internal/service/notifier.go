package service

import (
	"context"
	"sync"
	"time"

	"brasserie/internal/events"

	"go.uber.org/zap"
)

// Notifier publishes notification requests and order events in the
// background. The write that triggered them has already succeeded, so a
// failed publish is logged and dropped.
type Notifier struct {
	pub     EventPublisher
	logger  *zap.SugaredLogger
	timeout time.Duration
	wg      sync.WaitGroup
}

func NewNotifier(pub EventPublisher, logger *zap.SugaredLogger, timeout time.Duration) *Notifier {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Notifier{pub: pub, logger: logger, timeout: timeout}
}

func (n *Notifier) Notify(ntf events.Notification) {
	if ntf.OccurredAt.IsZero() {
		ntf.OccurredAt = time.Now().UTC()
	}
	n.run(func(ctx context.Context) error {
		return n.pub.PublishNotification(ctx, ntf)
	}, "type", ntf.Type, "key", ntf.Key())
}

func (n *Notifier) Record(e events.OrderEvent) {
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now().UTC()
	}
	n.run(func(ctx context.Context) error {
		return n.pub.PublishOrderEvent(ctx, e)
	}, "event", e.Type, "order_id", e.OrderID)
}

func (n *Notifier) run(publish func(ctx context.Context) error, keysAndValues ...interface{}) {
	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), n.timeout)
		defer cancel()
		if err := publish(ctx); err != nil {
			n.logger.Warnw("publish failed", append(keysAndValues, "error", err)...)
		}
	}()
}

// Wait blocks until every publish started so far has finished.
func (n *Notifier) Wait() {
	n.wg.Wait()
}
