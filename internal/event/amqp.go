package event

import (
	"context"
	"log/slog"
)

// JSONPublisher is the subset of the RabbitMQ client used here.
type JSONPublisher interface {
	PublishJSON(routingKey string, payload any) error
}

// Broker publishes each event with routing key "catalog.<action>".
type Broker struct {
	client JSONPublisher
	log    *slog.Logger
}

func NewBroker(client JSONPublisher, log *slog.Logger) *Broker {
	if log == nil {
		log = slog.Default()
	}
	return &Broker{client: client, log: log}
}

func (b *Broker) Publish(ctx context.Context, e Event) {
	go func() {
		if err := b.client.PublishJSON("catalog."+e.Action, e); err != nil {
			b.log.Warn("publish catalog event", slog.String("action", e.Action), slog.Any("error", err))
		}
	}()
}
