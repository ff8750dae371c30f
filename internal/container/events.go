package container

import (
	"fmt"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-redisstream/pkg/redisstream"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"github.com/serroba/scoreboard/internal/analytics"
	analyticsstore "github.com/serroba/scoreboard/internal/analytics/store"
	"github.com/serroba/scoreboard/internal/handlers"
	"github.com/serroba/scoreboard/internal/health"
	"github.com/serroba/scoreboard/internal/live"
	"github.com/serroba/scoreboard/internal/messaging"
	"go.uber.org/zap"
)

const consumerGroupName = "scoreboard-analytics"

// eventsChecker is the optional health probe for the event broker.
type eventsChecker struct {
	health.Checker
}

func watermillLogger(i *do.Injector) watermill.LoggerAdapter {
	return messaging.NewZapLogger(do.MustInvoke[*zap.Logger](i).Named("watermill"))
}

// PublisherGroupPackage provides the publisher selected by Options.Events and the typed
// score event publisher built on it, which also feeds the live hub. The memory transport
// also exposes its subscriber.
func PublisherGroupPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (*gochannel.GoChannel, error) {
		return gochannel.NewGoChannel(gochannel.Config{OutputChannelBuffer: 64}, watermillLogger(i)), nil
	})

	do.Provide(injector, func(i *do.Injector) (*messaging.PublisherGroup, error) {
		opts := do.MustInvoke[*Options](i)

		switch opts.Events {
		case EventsRedis:
			pub, err := redisstream.NewPublisher(redisstream.PublisherConfig{
				Client: do.MustInvoke[*redis.Client](i),
			}, watermillLogger(i))
			if err != nil {
				return nil, fmt.Errorf("redis stream publisher: %w", err)
			}

			return messaging.NewPublisherGroup(pub), nil
		case EventsMemory:
			return messaging.NewPublisherGroup(do.MustInvoke[*gochannel.GoChannel](i)), nil
		default:
			return messaging.NewPublisherGroup(messaging.DiscardPublisher{}), nil
		}
	})

	do.Provide(injector, func(_ *do.Injector) (*live.Hub, error) {
		return live.NewHub(), nil
	})

	do.Provide(injector, func(i *do.Injector) (handlers.EventPublisher, error) {
		events := analytics.NewPublisher(do.MustInvoke[*messaging.PublisherGroup](i).Publisher())

		return live.NewBroadcaster(do.MustInvoke[*live.Hub](i), events), nil
	})

	do.Provide(injector, func(i *do.Injector) (*eventsChecker, error) {
		if do.MustInvoke[*Options](i).Events != EventsRedis {
			return &eventsChecker{}, nil
		}

		return &eventsChecker{Checker: health.NewRedisChecker(do.MustInvoke[*redis.Client](i))}, nil
	})
}

// ConsumerGroupPackage provides the consumers that record score events.
// With Redis they keep per-player counters; otherwise events are only logged.
func ConsumerGroupPackage(injector *do.Injector) {
	do.Provide(injector, func(i *do.Injector) (message.Subscriber, error) {
		opts := do.MustInvoke[*Options](i)

		switch opts.Events {
		case EventsRedis:
			sub, err := redisstream.NewSubscriber(redisstream.SubscriberConfig{
				Client:        do.MustInvoke[*redis.Client](i),
				ConsumerGroup: consumerGroupName,
			}, watermillLogger(i))
			if err != nil {
				return nil, fmt.Errorf("redis stream subscriber: %w", err)
			}

			return sub, nil
		case EventsMemory:
			return do.MustInvoke[*gochannel.GoChannel](i), nil
		default:
			return nil, fmt.Errorf("events %q cannot be consumed", opts.Events)
		}
	})

	do.Provide(injector, func(i *do.Injector) (analytics.Store, error) {
		opts := do.MustInvoke[*Options](i)
		logStore := analyticsstore.NewLog(do.MustInvoke[*zap.Logger](i))

		if !opts.UsesRedis() {
			return logStore, nil
		}

		counters := analyticsstore.NewRedisCounters(do.MustInvoke[*redis.Client](i), "")

		return analyticsstore.Fanout{logStore, counters}, nil
	})

	do.Provide(injector, func(i *do.Injector) (*messaging.ConsumerGroup, error) {
		sub := do.MustInvoke[message.Subscriber](i)
		logger := do.MustInvoke[*zap.Logger](i)

		group := messaging.NewConsumerGroup(sub, logger)
		for _, c := range analytics.NewConsumers(sub, do.MustInvoke[analytics.Store](i), logger) {
			group.Add(c)
		}

		return group, nil
	})
}
