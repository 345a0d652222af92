package kafka

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/water-health-monitor/internal/domain"
)

func TestSerializeNotification(t *testing.T) {
	createdAt := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	n := domain.Notification{
		ID:        3,
		Title:     "High Turbidity Alert",
		Message:   "Turbidity 6.8 NTU at Test Well C",
		Type:      domain.NotificationWater,
		CreatedAt: createdAt,
	}

	msg, err := serializeNotification(n)
	require.NoError(t, err)

	_, err = uuid.Parse(string(msg.Key))
	assert.NoError(t, err, "key should be an event uuid")

	assert.Contains(t, string(msg.Value), `"title":"High Turbidity Alert"`)
	assert.Contains(t, string(msg.Value), `"type":"water"`)

	require.Len(t, msg.Headers, 2)
	assert.Equal(t, "type", msg.Headers[0].Key)
	assert.Equal(t, []byte("water"), msg.Headers[0].Value)
	assert.Equal(t, "created_at", msg.Headers[1].Key)
	assert.Equal(t, []byte(createdAt.Format(time.RFC3339)), msg.Headers[1].Value)
}

func TestSerializeNotification_UniqueEventIDs(t *testing.T) {
	n := domain.Notification{Title: "x", Type: domain.NotificationSystem}

	first, err := serializeNotification(n)
	require.NoError(t, err)
	second, err := serializeNotification(n)
	require.NoError(t, err)

	assert.NotEqual(t, first.Key, second.Key)
}
