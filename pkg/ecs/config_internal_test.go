package ecs

import (
	"os"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These tests set environment variables and can't run in parallel.

// unsetEnv removes key for the duration of the test.
func unsetEnv(t *testing.T, key string) {
	t.Helper()
	t.Setenv(key, "") // Restores the original value on cleanup
	require.NoError(t, os.Unsetenv(key))
}

func TestLoadWorldConfig(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		want    worldConfig
		wantErr bool
	}{
		{
			name: "defaults",
			env:  map[string]string{},
			want: worldConfig{LogLevel: "info", BagCapacity: 64},
		},
		{
			name: "from environment",
			env:  map[string]string{"ECS_LOG_LEVEL": "debug", "ECS_BAG_CAPACITY": "256"},
			want: worldConfig{LogLevel: "debug", BagCapacity: 256},
		},
		{
			name:    "unknown log level",
			env:     map[string]string{"ECS_LOG_LEVEL": "loud"},
			wantErr: true,
		},
		{
			name:    "non-positive capacity",
			env:     map[string]string{"ECS_BAG_CAPACITY": "0"},
			wantErr: true,
		},
		{
			name:    "capacity not a number",
			env:     map[string]string{"ECS_BAG_CAPACITY": "many"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			unsetEnv(t, "ECS_LOG_LEVEL")
			unsetEnv(t, "ECS_BAG_CAPACITY")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, err := loadWorldConfig()
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg)
		})
	}
}

func TestNewWorld_Options(t *testing.T) {
	t.Setenv("ECS_LOG_LEVEL", "warn")
	unsetEnv(t, "ECS_BAG_CAPACITY")

	w, err := NewWorld(WithLogger(zerolog.Nop()), WithBagCapacity(8))
	require.NoError(t, err)
	assert.Equal(t, 8, w.config.BagCapacity)
	assert.Equal(t, "warn", w.config.LogLevel)
	assert.Equal(t, zerolog.WarnLevel, w.Logger().GetLevel())
	assert.Equal(t, 8, w.added.Capacity())

	w, err = NewWorld(WithLogger(zerolog.Nop()), WithLogLevel("trace"))
	require.NoError(t, err)
	assert.Equal(t, zerolog.TraceLevel, w.Logger().GetLevel(), "options override the environment")

	_, err = NewWorld(WithBagCapacity(-1))
	require.Error(t, err)

	_, err = NewWorld(WithLogLevel("loud"))
	require.Error(t, err)

	t.Setenv("ECS_LOG_LEVEL", "loud")
	_, err = NewWorld(WithLogLevel("info"))
	require.Error(t, err, "the environment is validated before options are applied")
}
