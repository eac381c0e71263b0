package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-ddd-course-admin/config"
	"github.com/oksasatya/go-ddd-course-admin/internal/domain/event"
	"github.com/oksasatya/go-ddd-course-admin/internal/infrastructure/search"
	"github.com/oksasatya/go-ddd-course-admin/pkg/helpers"
)

// applier is satisfied by search.UserIndex.
type applier interface {
	Apply(ctx context.Context, e event.Event) error
}

type outcome int

const (
	ack outcome = iota
	requeue
	drop
)

// handle decodes one delivery and projects it. A message that fails twice is
// dropped so a poison event cannot block the queue.
func handle(ctx context.Context, idx applier, body []byte, redelivered bool, logger *logrus.Logger) outcome {
	var e event.Event
	if err := json.Unmarshal(body, &e); err != nil || e.Name == "" || e.AggregateID == "" {
		logger.WithError(err).Warn("bad event message")
		return drop
	}
	entry := logger.WithFields(logrus.Fields{"event_id": e.ID, "event": e.Name, "aggregate_id": e.AggregateID})
	if err := idx.Apply(ctx, e); err != nil {
		if redelivered {
			entry.WithError(err).Error("projection failed twice; dropping")
			return drop
		}
		entry.WithError(err).Warn("projection failed; requeueing")
		return requeue
	}
	entry.Debug("projected")
	return ack
}

func settle(d amqp.Delivery, o outcome) {
	switch o {
	case ack:
		_ = d.Ack(false)
	case requeue:
		_ = d.Nack(false, true)
	default:
		_ = d.Nack(false, false)
	}
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-event-worker", cfg.Env, cfg.LogLevel)
	if !cfg.EventsEnabled || !cfg.SearchEnabled {
		log.Println("EVENTS_ENABLED and SEARCH_ENABLED must both be true; event worker disabled")
		return
	}

	es, err := helpers.NewESClient(cfg.ESAddrs(), cfg.ElasticsearchUser, cfg.ElasticsearchPass)
	if err != nil {
		log.Fatalf("elasticsearch: %v", err)
	}
	idx := search.NewUserIndex(es, cfg.ESUsersIndex, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := helpers.PingES(ctx, es); err != nil {
		log.Fatalf("%v", err)
	}
	if err := idx.EnsureIndex(ctx); err != nil {
		log.Fatalf("ensure index: %v", err)
	}

	keys := []string{string(event.UserCreated), string(event.UserUpdated), string(event.UserDeleted)}
	consumer, err := helpers.NewRabbitConsumer(cfg.RabbitMQURL, cfg.RabbitMQEventsExchange, cfg.RabbitMQEventsQueue, keys, 16)
	if err != nil {
		log.Fatalf("amqp: %v", err)
	}
	defer consumer.Close()

	msgs, err := consumer.Consume()
	if err != nil {
		log.Fatalf("consume: %v", err)
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	done := make(chan struct{})

	go func() {
		defer close(done)
		for d := range msgs {
			settle(d, handle(ctx, idx, d.Body, d.Redelivered, logger))
		}
	}()

	helpers.LogInfo(logger, "event worker started", logrus.Fields{
		"exchange": cfg.RabbitMQEventsExchange,
		"queue":    cfg.RabbitMQEventsQueue,
		"index":    cfg.ESUsersIndex,
	})
	select {
	case <-stop:
		logger.Info("shutting down event worker")
	case <-done:
		logger.Warn("delivery channel closed")
	}
}
