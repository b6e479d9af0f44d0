package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

const (
	TypeBookingCreated  = "booking.created"
	TypePaymentSettled  = "payment.settled"
	HeaderEventID       = "event-id"
	HeaderEventType     = "event-type"
	HeaderSchemaVersion = "schema-version"
	HeaderSource        = "source"

	schemaVersion = "1"
)

// Event is a best-effort domain notification. Key selects the partition so
// events for one booking stay ordered.
type Event struct {
	ID      string
	Type    string
	Key     string
	Payload []byte
	Time    time.Time
}

// Publisher delivers domain events. Publish failures must never fail the
// request that produced the event.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// NewEvent builds an event with a fresh ID, JSON-encoding the payload.
func NewEvent(eventType, key string, payload any) (Event, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return Event{}, err
	}
	return Event{
		ID:      uuid.New().String(),
		Type:    eventType,
		Key:     key,
		Payload: data,
		Time:    time.Now(),
	}, nil
}

// BookingCreated is the payload of a booking.created event.
type BookingCreated struct {
	BookingID       string `json:"booking_id"`
	Treatment       string `json:"treatment"`
	AppointmentDate string `json:"appointment_date"`
	Email           string `json:"email"`
	Slot            string `json:"slot"`
}

// PaymentSettled is the payload of a payment.settled event.
type PaymentSettled struct {
	BookingID     string  `json:"booking_id"`
	TransactionID string  `json:"transaction_id"`
	Email         string  `json:"email"`
	Price         float64 `json:"price"`
}

// NoopPublisher discards events. Used when no brokers are configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, Event) error { return nil }
func (NoopPublisher) Close() error                         { return nil }
