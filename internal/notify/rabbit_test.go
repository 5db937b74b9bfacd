package notify

import (
	"context"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/business-hours/internal/business"
	"github.com/i474232898/business-hours/internal/hours"
)

func TestEncodeChange(t *testing.T) {
	change := business.StatusChange{
		ID:           uuid.New(),
		Location:     "default",
		LocationName: "Example Location",
		From:         hours.ClassOpen,
		To:           hours.ClassClosingSoon,
		Text:         "Open until 3PM",
		At:           time.Date(2024, 5, 15, 14, 0, 0, 0, time.UTC),
	}

	msg, err := encodeChange(change)
	require.NoError(t, err)
	assert.Equal(t, "application/json", msg.ContentType)
	assert.Equal(t, amqp.Persistent, msg.DeliveryMode)
	assert.Equal(t, change.ID.String(), msg.MessageId)

	var decoded map[string]any
	require.NoError(t, sonic.Unmarshal(msg.Body, &decoded))
	assert.Equal(t, "closing-soon", decoded["to"])
	assert.Equal(t, "open", decoded["from"])
	assert.Equal(t, "default", decoded["location"])
}

func TestTopicName(t *testing.T) {
	assert.Equal(t, "businesshours_status_changed", topicName("businesshours", StatusChangedTopic))
}

func TestNopPublisher(t *testing.T) {
	var p business.Publisher = NopPublisher{}
	assert.NoError(t, p.PublishStatusChange(context.Background(), business.StatusChange{}))
}
