package messaging

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-ddd-course-admin/internal/domain/event"
)

type jsonPublisherMock struct {
	mock.Mock
}

func (m *jsonPublisherMock) PublishJSON(ctx context.Context, routingKey string, body any) error {
	args := m.Called(ctx, routingKey, body)
	return args.Error(0)
}

func TestRabbitEventPublisher_UsesEventNameAsRoutingKey(t *testing.T) {
	created := event.New(event.UserCreated, "u1", nil)
	deleted := event.New(event.UserDeleted, "u1", nil)

	pub := new(jsonPublisherMock)
	pub.On("PublishJSON", mock.Anything, "user.created", created).Return(nil).Once()
	pub.On("PublishJSON", mock.Anything, "user.deleted", deleted).Return(nil).Once()

	err := NewRabbitEventPublisher(pub).Publish(context.Background(), []event.Event{created, deleted})

	require.NoError(t, err)
	pub.AssertExpectations(t)
}

func TestRabbitEventPublisher_StopsOnError(t *testing.T) {
	first := event.New(event.UserUpdated, "u1", nil)
	second := event.New(event.UserUpdated, "u1", nil)

	pub := new(jsonPublisherMock)
	pub.On("PublishJSON", mock.Anything, "user.updated", first).Return(errors.New("channel closed")).Once()

	err := NewRabbitEventPublisher(pub).Publish(context.Background(), []event.Event{first, second})

	assert.ErrorContains(t, err, "channel closed")
	pub.AssertNumberOfCalls(t, "PublishJSON", 1)
}

func TestLogEventPublisher(t *testing.T) {
	var buf bytes.Buffer
	logger := logrus.New()
	logger.SetOutput(&buf)
	logger.SetFormatter(&logrus.JSONFormatter{})

	err := NewLogEventPublisher(logger).Publish(context.Background(), []event.Event{event.New(event.UserCreated, "u1", nil)})

	require.NoError(t, err)
	assert.Contains(t, buf.String(), `"event":"user.created"`)
	assert.Contains(t, buf.String(), `"aggregate_id":"u1"`)
}
