// Package mocks holds testify mocks for the notification service.
package mocks

import (
	"context"

	"brasserie/notify-svc/internal/domain"

	"github.com/stretchr/testify/mock"
)

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

type Mailer struct {
	mock.Mock
}

func NewMailer(t testingT) *Mailer {
	m := &Mailer{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *Mailer) Send(ctx context.Context, mail domain.Mail) error {
	args := m.Called(ctx, mail)
	return args.Error(0)
}
