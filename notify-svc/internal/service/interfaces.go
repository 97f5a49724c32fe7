package service

import (
	"context"

	"brasserie/notify-svc/internal/domain"
	"brasserie/notify-svc/internal/storage"
)

type Mailer interface {
	Send(ctx context.Context, m domain.Mail) error
}

var _ Mailer = (*storage.SMTPMailer)(nil)
