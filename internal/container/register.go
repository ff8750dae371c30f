package container

import "github.com/samber/do"

// RegisterServer registers everything the HTTP server needs. Providers are lazy, so
// backends that the options do not select are never connected.
func RegisterServer(injector *do.Injector, options *Options) {
	do.ProvideValue(injector, options)
	LoggerPackage(injector)
	RedisPackage(injector)
	PostgresPackage(injector)
	RepositoryPackage(injector)
	LeaderboardPackage(injector)
	RateLimitPackage(injector)
	PublisherGroupPackage(injector)
	ConsumerGroupPackage(injector)
	HTTPPackage(injector)
}

// RegisterConsumer registers what the standalone event consumer needs.
func RegisterConsumer(injector *do.Injector, options *Options) {
	do.ProvideValue(injector, options)
	LoggerPackage(injector)
	RedisPackage(injector)
	PublisherGroupPackage(injector)
	ConsumerGroupPackage(injector)
}
