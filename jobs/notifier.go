package jobs

import (
	"context"

	"github.com/clearflow/clearflow-cms/internal/messages"
)

// LeadNotifier adapts the queue client to the messages.Notifier interface.
type LeadNotifier struct {
	client *Client
}

// NewLeadNotifier constructs a LeadNotifier.
func NewLeadNotifier(client *Client) *LeadNotifier {
	return &LeadNotifier{client: client}
}

// NotifyNewLead enqueues the notification email for a stored lead.
func (n *LeadNotifier) NotifyNewLead(ctx context.Context, message messages.Message) error {
	_, err := n.client.EnqueueLeadEmail(ctx, LeadEmailPayload{
		MessageID: message.ID,
		Name:      message.Name,
		Phone:     message.Phone,
		Email:     message.Email,
		Company:   message.Company,
		Content:   message.Content,
		CreatedAt: message.CreatedAt,
	})
	return err
}
