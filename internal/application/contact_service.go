package application

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/madson-lima/totalfilter-backend/internal/domain"
	"github.com/madson-lima/totalfilter-backend/internal/email"
	"go.uber.org/zap"
)

// ContactService stores contact-form messages and notifies the site owner by
// email. Notification is best effort: a failed send never fails the request.
type ContactService struct {
	repo     domain.ContactRepository
	email    *email.Client
	notifyTo string
	logger   *zap.Logger
}

// NewContactService creates the service. emailClient may be nil, in which
// case notifications are skipped.
func NewContactService(repo domain.ContactRepository, emailClient *email.Client, notifyTo string, logger *zap.Logger) *ContactService {
	return &ContactService{
		repo:     repo,
		email:    emailClient,
		notifyTo: notifyTo,
		logger:   logger,
	}
}

func (s *ContactService) Create(ctx context.Context, name, address, message string) (*domain.ContactMessage, error) {
	name = strings.TrimSpace(name)
	address = strings.TrimSpace(address)
	message = strings.TrimSpace(message)

	if name == "" {
		return nil, domain.ValidationError("name is required")
	}
	if !strings.Contains(address, "@") {
		return nil, domain.ValidationError("a valid email is required")
	}
	if message == "" {
		return nil, domain.ValidationError("message is required")
	}

	msg := &domain.ContactMessage{
		Name:    name,
		Email:   address,
		Message: message,
		Status:  domain.ContactStatusPending,
	}
	if err := s.repo.Create(ctx, msg); err != nil {
		return nil, err
	}

	if s.email != nil && s.notifyTo != "" {
		body := fmt.Sprintf("<p><b>%s</b> (%s) wrote:</p><p>%s</p>",
			html.EscapeString(name), html.EscapeString(address), html.EscapeString(message))
		if err := s.email.SendEmail(s.notifyTo, "New contact message", body); err != nil {
			s.logger.Warn("contact notification failed", zap.Error(err))
		}
	}

	return msg, nil
}

func (s *ContactService) List(ctx context.Context) ([]domain.ContactMessage, error) {
	return s.repo.GetAll(ctx)
}

func (s *ContactService) UpdateStatus(ctx context.Context, id, status string) error {
	if strings.TrimSpace(id) == "" {
		return domain.ValidationError("id is required")
	}
	if status != domain.ContactStatusPending && status != domain.ContactStatusResolved {
		return domain.ValidationError("status must be pending or resolved")
	}
	return s.repo.UpdateStatus(ctx, id, status)
}
