package messaging_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

const testTopic = "score.test"

var errSubscribe = errors.New("subscribe refused")

type sampleEvent struct {
	Player string `json:"player"`
	Score  int64  `json:"score"`
}

func newPubSub(t *testing.T) *gochannel.GoChannel {
	t.Helper()

	ps := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	t.Cleanup(func() { _ = ps.Close() })

	return ps
}

type failingSubscriber struct{}

func (failingSubscriber) Subscribe(_ context.Context, _ string) (<-chan *message.Message, error) {
	return nil, errSubscribe
}

func (failingSubscriber) Close() error { return nil }

func receive[T any](t *testing.T, ch <-chan T) T {
	t.Helper()

	select {
	case v := <-ch:
		return v
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for event")

		var zero T

		return zero
	}
}
