package messages

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/clearflow/clearflow-cms/internal/shared"
)

// Notifier pushes a new-lead notification to the sales inbox. The asynq
// client satisfies this in production; tests use a stub.
type Notifier interface {
	NotifyNewLead(ctx context.Context, message Message) error
}

// Service owns contact-form lead rules.
type Service struct {
	repo     Repository
	notifier Notifier
	logger   *slog.Logger
}

func NewService(repo Repository, notifier Notifier, logger *slog.Logger) *Service {
	return &Service{repo: repo, notifier: notifier, logger: logger}
}

func (s *Service) List(ctx context.Context, params shared.ListParams) ([]Message, int, error) {
	return s.repo.List(ctx, params.Normalize())
}

func (s *Service) Get(ctx context.Context, id int64) (Message, error) {
	if id <= 0 {
		return Message{}, shared.ErrNotFound
	}
	return s.repo.Get(ctx, id)
}

// Submit stores a lead and queues the notification email. A notification
// failure is logged, not returned: the lead is already persisted and the
// visitor should still see success.
func (s *Service) Submit(ctx context.Context, message Message) (Message, error) {
	if strings.TrimSpace(message.Name) == "" {
		return Message{}, fmt.Errorf("%w: name is required", shared.ErrValidation)
	}
	if strings.TrimSpace(message.Content) == "" {
		return Message{}, fmt.Errorf("%w: message content is required", shared.ErrValidation)
	}
	if strings.TrimSpace(message.Phone) == "" && strings.TrimSpace(message.Email) == "" {
		return Message{}, fmt.Errorf("%w: a phone number or email is required", shared.ErrValidation)
	}

	created, err := s.repo.Create(ctx, message)
	if err != nil {
		return Message{}, err
	}
	if s.notifier != nil {
		if err := s.notifier.NotifyNewLead(ctx, created); err != nil && s.logger != nil {
			s.logger.Warn("queue lead notification", slog.Int64("message_id", created.ID), slog.Any("error", err))
		}
	}
	return created, nil
}

func (s *Service) MarkRead(ctx context.Context, id int64) error {
	if id <= 0 {
		return shared.ErrNotFound
	}
	return s.repo.MarkRead(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return shared.ErrNotFound
	}
	return s.repo.Delete(ctx, id)
}
