package jobs

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLeadEmailTask(t *testing.T) {
	payload := LeadEmailPayload{
		MessageID: 42,
		Name:      "Chen Wei",
		Phone:     "13800000000",
		Content:   "Need a quote",
		CreatedAt: time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC),
	}
	task, err := NewLeadEmailTask(payload)
	require.NoError(t, err)
	assert.Equal(t, TaskTypeLeadEmail, task.Type())

	var decoded LeadEmailPayload
	require.NoError(t, json.Unmarshal(task.Payload(), &decoded))
	assert.Equal(t, payload, decoded)
}

func TestHandleLeadEmailTask(t *testing.T) {
	task, err := NewLeadEmailTask(LeadEmailPayload{MessageID: 7, Name: "Li Na"})
	require.NoError(t, err)
	assert.NoError(t, HandleLeadEmailTask(context.Background(), task))

	// A corrupt payload is dropped, not retried.
	bad := asynq.NewTask(TaskTypeLeadEmail, []byte("{broken"))
	assert.ErrorIs(t, HandleLeadEmailTask(context.Background(), bad), asynq.SkipRetry)
}

func TestNewLeadPurgeTask(t *testing.T) {
	task, err := NewLeadPurgeTask(LeadPurgePayload{RetainDays: 365})
	require.NoError(t, err)
	assert.Equal(t, TaskTypeLeadPurge, task.Type())

	var decoded LeadPurgePayload
	require.NoError(t, json.Unmarshal(task.Payload(), &decoded))
	assert.Equal(t, 365, decoded.RetainDays)
}
