package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/MinYonhee/api-urban-valle/internal/constants"
	"github.com/MinYonhee/api-urban-valle/internal/contextkeys"
	"github.com/MinYonhee/api-urban-valle/internal/contracts"
	"github.com/MinYonhee/api-urban-valle/internal/core/domain"
	"github.com/MinYonhee/api-urban-valle/internal/core/port"
)

// ContactCreatedDTO - body of the contact.created event.
type ContactCreatedDTO struct {
	ContactID    int64     `json:"contact_id"`
	Email        string    `json:"email"`
	Message      string    `json:"message"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UserID       *int64    `json:"user_id,omitempty"`
	PropertyID   *int64    `json:"property_id,omitempty"`
	ConsultantID *int64    `json:"consultant_id,omitempty"`
}

// publisher is satisfied by *rabbitmq_producer.Publisher.
type publisher interface {
	Publish(ctx context.Context, routingKey string, msg amqp.Publishing) error
}

// ContactNotifierAdapter publishes ContactCreated events.
type ContactNotifierAdapter struct {
	producer   publisher
	routingKey string
	now        func() time.Time
}

func NewContactNotifierAdapter(producer publisher, routingKey string) (*ContactNotifierAdapter, error) {
	if producer == nil {
		return nil, fmt.Errorf("rabbitmq adapter: producer cannot be nil")
	}
	if routingKey == "" {
		return nil, fmt.Errorf("rabbitmq adapter: routingKey cannot be empty")
	}
	return &ContactNotifierAdapter{
		producer:   producer,
		routingKey: routingKey,
		now:        time.Now,
	}, nil
}

func (a *ContactNotifierAdapter) NotifyContactCreated(ctx context.Context, contact domain.Contact) error {
	adapterLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component":   "ContactNotifierAdapter",
		"routing_key": a.routingKey,
		"contact_id":  contact.ID,
	})

	body, err := json.Marshal(ContactCreatedDTO{
		ContactID:    contact.ID,
		Email:        contact.Email,
		Message:      contact.Message,
		Status:       string(contact.Status),
		CreatedAt:    contact.CreatedAt.UTC(),
		UserID:       contact.UserID,
		PropertyID:   contact.PropertyID,
		ConsultantID: contact.ConsultantID,
	})
	if err != nil {
		return fmt.Errorf("rabbitmq adapter: failed to marshal contact %d: %w", contact.ID, err)
	}
	if err := contracts.ValidateEvent(constants.EventContactCreated, constants.EventContactCreatedVersion, body); err != nil {
		adapterLogger.Error("Event does not match its contract", err, nil)
		return fmt.Errorf("rabbitmq adapter: invalid contact event: %w", err)
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		Body:         body,
		DeliveryMode: amqp.Persistent,
		Timestamp:    a.now(),
		Type:         constants.EventContactCreated,
		Headers: amqp.Table{
			"x-event-type":    constants.EventContactCreated,
			"x-event-version": constants.EventContactCreatedVersion,
		},
	}
	if traceID, ok := contextkeys.TraceIDFromContext(ctx); ok {
		msg.Headers["x-trace-id"] = traceID
	}

	publishCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	adapterLogger.Debug("Publishing contact event", nil)
	if err := a.producer.Publish(publishCtx, a.routingKey, msg); err != nil {
		adapterLogger.Error("Failed to publish contact event", err, nil)
		return fmt.Errorf("rabbitmq adapter: failed to publish contact %d: %w", contact.ID, err)
	}

	adapterLogger.Info("Successfully published contact event", nil)
	return nil
}

// NoopContactNotifier is used when the broker is disabled.
type NoopContactNotifier struct{}

func (NoopContactNotifier) NotifyContactCreated(context.Context, domain.Contact) error { return nil }
