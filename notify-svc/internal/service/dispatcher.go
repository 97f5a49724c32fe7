package service

import (
	"context"
	"fmt"

	"brasserie/internal/events"
	"brasserie/notify-svc/internal/domain"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// Dispatcher delivers notification requests by email: customer
// confirmations to the customer, everything else as a staff broadcast.
type Dispatcher struct {
	mailer   Mailer
	renderer *Renderer
	staff    domain.StaffDirectory
	logger   *zap.SugaredLogger
}

func NewDispatcher(mailer Mailer, renderer *Renderer, staff domain.StaffDirectory, logger *zap.SugaredLogger) *Dispatcher {
	return &Dispatcher{
		mailer:   mailer,
		renderer: renderer,
		staff:    staff,
		logger:   logger,
	}
}

// HandleMessage decodes one Kafka record and dispatches it.
func (d *Dispatcher) HandleMessage(ctx context.Context, msg kafka.Message) error {
	n, err := events.DecodeNotification(msg.Value)
	if err != nil {
		return err
	}
	return d.Dispatch(ctx, n)
}

func (d *Dispatcher) Dispatch(ctx context.Context, n events.Notification) error {
	mail, err := d.renderer.Render(n)
	if err != nil {
		return err
	}

	if n.Type == events.ReservationConfirmation {
		if n.Reservation.CustomerEmail == "" {
			d.logger.Warnw("confirmation skipped, customer has no email", "reservation_id", n.Reservation.ID)
			return nil
		}
		mail.To = []string{n.Reservation.CustomerEmail}
	} else {
		mail.Bcc = d.staff.Recipients(n.Type)
		if len(mail.Bcc) == 0 {
			d.logger.Warnw("no recipients configured", "type", n.Type)
			return nil
		}
	}

	if err := d.mailer.Send(ctx, mail); err != nil {
		return fmt.Errorf("send %s: %w", n.Type, err)
	}

	d.logger.Infow("notification sent", "type", n.Type, "recipients", len(mail.To)+len(mail.Bcc))
	return nil
}
