package noop

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"pettag/internal/port"
)

func TestNoopSender_LogsReminder(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	sender := NewNoopSender(zap.New(core))

	err := sender.SendRenewalReminder(context.Background(), "asha@example.com", "Asha", port.RenewalReminder{
		SubscriptionID: 7,
		EndDate:        time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC),
	})

	require.NoError(t, err)
	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "asha@example.com", fields["to"])
	assert.Equal(t, int64(7), fields["subscription_id"])
}
