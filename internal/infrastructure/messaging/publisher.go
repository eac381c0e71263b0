// Package messaging delivers domain events to RabbitMQ or, when events are
// disabled, to the application log.
package messaging

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-course-admin/internal/domain/event"
)

// JSONPublisher is satisfied by helpers.RabbitPublisher.
type JSONPublisher interface {
	PublishJSON(ctx context.Context, routingKey string, body any) error
}

// RabbitEventPublisher publishes each event to the topic exchange using the
// event name as routing key.
type RabbitEventPublisher struct {
	pub JSONPublisher
}

func NewRabbitEventPublisher(pub JSONPublisher) *RabbitEventPublisher {
	return &RabbitEventPublisher{pub: pub}
}

// Publish stops at the first failure; earlier events stay published.
func (p *RabbitEventPublisher) Publish(ctx context.Context, events []event.Event) error {
	for _, e := range events {
		if err := p.pub.PublishJSON(ctx, string(e.Name), e); err != nil {
			return fmt.Errorf("publish %s: %w", e.Name, err)
		}
	}
	return nil
}

// LogEventPublisher writes events to the log instead of a broker.
type LogEventPublisher struct {
	logger *logrus.Logger
}

func NewLogEventPublisher(logger *logrus.Logger) *LogEventPublisher {
	return &LogEventPublisher{logger: logger}
}

func (p *LogEventPublisher) Publish(_ context.Context, events []event.Event) error {
	if p.logger == nil {
		return nil
	}
	for _, e := range events {
		p.logger.WithFields(logrus.Fields{
			"event_id":     e.ID,
			"event":        e.Name,
			"aggregate_id": e.AggregateID,
		}).Info("domain event")
	}
	return nil
}
