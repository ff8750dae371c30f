package container_test

import (
	"testing"

	"github.com/serroba/scoreboard/internal/container"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptions_Validate(t *testing.T) {
	t.Parallel()

	require.NoError(t, testOptions().Validate())

	for name, mutate := range map[string]func(*container.Options){
		"env":        func(o *container.Options) { o.Env = "staging" },
		"storage":    func(o *container.Options) { o.Storage = "mongo" },
		"id format":  func(o *container.Options) { o.IDFormat = "sequential" },
		"events":     func(o *container.Options) { o.Events = "kafka" },
		"log format": func(o *container.Options) { o.LogFormat = "xml" },
	} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			opts := testOptions()
			mutate(opts)

			assert.Error(t, opts.Validate())
		})
	}
}

func TestOptions_Flags(t *testing.T) {
	t.Parallel()

	opts := testOptions()
	assert.False(t, opts.Production())
	assert.False(t, opts.UsesRedis())

	opts.Env = container.EnvProduction
	opts.Events = container.EventsRedis
	assert.True(t, opts.Production())
	assert.True(t, opts.UsesRedis())
}

func TestNewIDGenerator(t *testing.T) {
	t.Parallel()

	uuidGen, err := container.NewIDGenerator(container.IDFormatUUID)
	require.NoError(t, err)
	assert.Len(t, uuidGen(), 36)
	assert.NotEqual(t, uuidGen(), uuidGen())

	nanoGen, err := container.NewIDGenerator(container.IDFormatNanoID)
	require.NoError(t, err)
	assert.Len(t, nanoGen(), 21)

	_, err = container.NewIDGenerator("serial")
	require.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	t.Parallel()

	logger, err := container.NewLogger("json", "debug")
	require.NoError(t, err)
	assert.NotNil(t, logger)

	_, err = container.NewLogger("console", "loud")
	require.Error(t, err)
}
