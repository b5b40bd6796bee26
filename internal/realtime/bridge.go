package realtime

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/nlekkerman/hotelmate-roster/backend/internal/domain"
	amqp "github.com/rabbitmq/amqp091-go"
)

const EventQueue = "roster_events"

// Bridge consumes externally delivered status events and rebroadcasts them
// to the hub. Malformed messages are dropped; there is no redelivery.
type Bridge struct {
	channel *amqp.Channel
	hub     *Hub
}

func NewBridge(ch *amqp.Channel, hub *Hub) *Bridge {
	return &Bridge{
		channel: ch,
		hub:     hub,
	}
}

func (b *Bridge) Run(ctx context.Context) error {
	msgs, err := b.channel.Consume(
		EventQueue,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-msgs:
			if !ok {
				return nil
			}

			var event domain.StatusEvent
			if err := json.Unmarshal(msg.Body, &event); err != nil {
				slog.Error("cannot decode status event", "error", err)
				_ = msg.Nack(false, false)
				continue
			}

			b.hub.Broadcast(msg.Body)
			_ = msg.Ack(false)
		}
	}
}
