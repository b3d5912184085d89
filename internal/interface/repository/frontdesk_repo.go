package repository

import (
	"context"
	"encoding/base64"
	"fmt"

	"tabletalk-service/internal/domain/entity"
	"tabletalk-service/internal/domain/repository"
	"tabletalk-service/pkg/logger"
	"tabletalk-service/templates"

	"golang.org/x/oauth2"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

// GmailFrontdeskRepository emails the restaurant's front-desk inbox when a
// reservation is created or cancelled
type GmailFrontdeskRepository struct {
	gmailService *gmail.Service
	inbox        string
	logger       logger.Logger
}

// NewGmailFrontdeskRepository creates a new Gmail front-desk repository
func NewGmailFrontdeskRepository(ctx context.Context, tokenSource oauth2.TokenSource, inbox string, logger logger.Logger) (repository.FrontdeskRepository, error) {
	service, err := gmail.NewService(ctx, option.WithTokenSource(tokenSource))
	if err != nil {
		return nil, fmt.Errorf("failed to create gmail service: %w", err)
	}

	return &GmailFrontdeskRepository{
		gmailService: service,
		inbox:        inbox,
		logger:       logger,
	}, nil
}

// NotifyCreated emails the front desk about a new reservation
func (r *GmailFrontdeskRepository) NotifyCreated(ctx context.Context, reservation *entity.Reservation) error {
	return r.send(ctx,
		templates.FrontdeskCreatedSubject(reservation),
		templates.FrontdeskCreatedBody(reservation))
}

// NotifyCancelled emails the front desk about a cancellation
func (r *GmailFrontdeskRepository) NotifyCancelled(ctx context.Context, phone string) error {
	return r.send(ctx,
		templates.FrontdeskCancelledSubject(phone),
		templates.FrontdeskCancelledBody(phone))
}

func (r *GmailFrontdeskRepository) send(ctx context.Context, subject, body string) error {
	raw := fmt.Sprintf("To: %s\r\nSubject: %s\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n%s",
		r.inbox, subject, body)

	message := &gmail.Message{
		Raw: base64.URLEncoding.EncodeToString([]byte(raw)),
	}

	_, err := r.gmailService.Users.Messages.Send("me", message).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to send front desk email: %w", err)
	}

	r.logger.Info("Front desk notified", "subject", subject)
	return nil
}

// NoopFrontdeskRepository is used when no front-desk inbox is configured
type NoopFrontdeskRepository struct {
	logger logger.Logger
}

// NewNoopFrontdeskRepository creates a front-desk repository that only logs
func NewNoopFrontdeskRepository(logger logger.Logger) repository.FrontdeskRepository {
	return &NoopFrontdeskRepository{logger: logger}
}

// NotifyCreated logs the reservation instead of emailing it
func (r *NoopFrontdeskRepository) NotifyCreated(ctx context.Context, reservation *entity.Reservation) error {
	r.logger.Info("Front desk notification skipped (no inbox configured)", "phone", reservation.Phone)
	return nil
}

// NotifyCancelled logs the cancellation instead of emailing it
func (r *NoopFrontdeskRepository) NotifyCancelled(ctx context.Context, phone string) error {
	r.logger.Info("Front desk notification skipped (no inbox configured)", "phone", phone)
	return nil
}
