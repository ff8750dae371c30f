package messaging

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
)

// Publish sends one typed event.
type Publish[T any] func(ctx context.Context, event *T) error

// NewPublishFunc returns a Publish that JSON-encodes events onto topic.
func NewPublishFunc[T any](publisher message.Publisher, topic string) Publish[T] {
	return func(ctx context.Context, event *T) error {
		payload, err := json.Marshal(event)
		if err != nil {
			return fmt.Errorf("encode %s event: %w", topic, err)
		}

		msg := message.NewMessage(watermill.NewUUID(), payload)
		msg.SetContext(ctx)
		msg.Metadata.Set("topic", topic)

		return publisher.Publish(topic, msg)
	}
}

// PublisherGroup owns the publisher shared by every typed Publish.
type PublisherGroup struct {
	publisher message.Publisher
}

// NewPublisherGroup wraps publisher.
func NewPublisherGroup(publisher message.Publisher) *PublisherGroup {
	return &PublisherGroup{publisher: publisher}
}

// Publisher returns the underlying publisher.
func (g *PublisherGroup) Publisher() message.Publisher {
	return g.publisher
}

// Shutdown closes the underlying publisher.
func (g *PublisherGroup) Shutdown() error {
	return g.publisher.Close()
}

// DiscardPublisher drops every message. It backs the "none" events backend.
type DiscardPublisher struct{}

func (DiscardPublisher) Publish(_ string, _ ...*message.Message) error { return nil }

func (DiscardPublisher) Close() error { return nil }
