package jobs

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskTypeLeadEmail notifies the sales inbox about a new contact-form lead.
	TaskTypeLeadEmail = "lead:notify"
	// TaskTypeLeadPurge removes read leads past the retention window.
	TaskTypeLeadPurge = "lead:purge"
)

// LeadEmailPayload describes a new-lead notification email.
type LeadEmailPayload struct {
	MessageID int64     `json:"message_id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	Company   string    `json:"company"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// NewLeadEmailTask constructs the Asynq task for a lead notification.
func NewLeadEmailTask(payload LeadEmailPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTypeLeadEmail, data), nil
}

// HandleLeadEmailTask processes TaskTypeLeadEmail tasks.
func HandleLeadEmailTask(ctx context.Context, t *asynq.Task) error {
	var payload LeadEmailPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	// SMTP delivery lands with the mail integration; until then the
	// notification is only logged.
	slog.Info("lead notification",
		slog.Int64("message_id", payload.MessageID),
		slog.String("name", payload.Name))
	return nil
}

// LeadPurgePayload bounds the retention purge.
type LeadPurgePayload struct {
	RetainDays int `json:"retain_days"`
}

// NewLeadPurgeTask constructs the retention purge task.
func NewLeadPurgeTask(payload LeadPurgePayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTypeLeadPurge, data), nil
}
