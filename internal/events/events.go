// Package events publishes booking lifecycle changes to Kafka and keeps peer
// instances' state in step with them.
package events

//go:generate go run go.uber.org/mock/mockgen -source=./events.go -destination=./mocks/events_mock.go -package=mocks

import (
	"context"
	"time"

	"courtbook/config"
	"courtbook/infras/kafka"
	"courtbook/infras/otel"
	"courtbook/internal/rules"
	"courtbook/shared/constant"
	"courtbook/shared/timezone"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	kafkaGo "github.com/segmentio/kafka-go"
)

const (
	TypeBookingConfirmed = "booking.confirmed"
	TypeBookingCancelled = "booking.cancelled"
	TypeBookingPurged    = "booking.purged"
	TypeEventCreated     = "event.created"
	TypeEventDeleted     = "event.deleted"
	TypeCourtChanged     = "court.changed"
	TypeSettingsChanged  = "settings.changed"
)

type Event struct {
	Type       string    `json:"type"`
	Origin     string    `json:"origin"`
	BookingID  string    `json:"booking_id,omitempty"`
	CourtID    string    `json:"court_id,omitempty"`
	Date       string    `json:"date,omitempty"`
	Start      string    `json:"start,omitempty"`
	End        string    `json:"end,omitempty"`
	Player     string    `json:"player,omitempty"`
	UserEmail  string    `json:"user_email,omitempty"`
	Cost       int       `json:"cost,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// FromBooking describes booking as an event of kind.
func FromBooking(kind string, booking rules.Booking) Event {
	return Event{
		Type:      kind,
		BookingID: booking.ID,
		CourtID:   booking.CourtID,
		Date:      booking.Date,
		Start:     booking.Start,
		End:       booking.End,
		Player:    booking.Player,
		UserEmail: booking.UserEmail,
		Cost:      booking.Cost,
	}
}

type Publisher interface {
	Publish(ctx context.Context, events ...Event)
}

type Refresher interface {
	Refresh(ctx context.Context) error
}

type Bus struct {
	client kafka.Client
	topic  string
	group  string
	origin string
	otel   otel.Otel
}

// New creates a bus identified by a fresh origin so an instance can skip its own events.
func New(client kafka.Client, cfg *config.Config, otel otel.Otel) *Bus {
	origin := uuid.NewString()

	return &Bus{
		client: client,
		topic:  cfg.Kafka.Topic,
		group:  cfg.Kafka.ConsumerGroup + "-" + origin,
		origin: origin,
		otel:   otel,
	}
}

// Publish sends events asynchronously. Delivery failures are logged, never returned.
func (b *Bus) Publish(ctx context.Context, events ...Event) {
	if len(events) == 0 {
		return
	}

	now := timezone.Now()
	messages := make([]kafka.Message, len(events))

	for i, evt := range events {
		evt.Origin = b.origin
		evt.OccurredAt = now
		messages[i] = kafka.Message{Key: evt.CourtID, Value: evt}
	}

	go func() {
		c, scope := b.otel.NewScope(context.WithoutCancel(ctx), constant.OtelKafkaScopeName, constant.OtelKafkaScopeName+".Publish")
		defer scope.End()

		if err := b.client.SendMessages(c, b.topic, messages...); err != nil {
			scope.TraceError(err)
			log.Error().Err(err).Str("type", events[0].Type).Msg("failed to publish lifecycle event")
		}
	}()
}

// Listen refreshes target whenever a peer instance reports a change. It
// blocks until ctx is done.
func (b *Bus) Listen(ctx context.Context, target Refresher) {
	b.client.Consume(ctx, b.group, b.topic, func(msg kafkaGo.Message) {
		b.handle(ctx, target, msg)
	})
}

func (b *Bus) handle(ctx context.Context, target Refresher, msg kafkaGo.Message) {
	evt, err := kafka.Decode[Event](msg)
	if err != nil {
		log.Warn().Err(err).
			Str("topic", msg.Topic).
			Int("partition", msg.Partition).
			Int64("offset", msg.Offset).
			Msg("dropping undecodable lifecycle event")

		return
	}

	if evt.Origin == b.origin {
		return
	}

	if err := target.Refresh(ctx); err != nil {
		log.Error().Err(err).Str("type", evt.Type).Msg("failed to refresh state after peer event")

		return
	}

	log.Debug().Str("type", evt.Type).Str("origin", evt.Origin).Msg("state refreshed after peer event")
}
