package database

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRedis(t *testing.T) {
	t.Run("connects and pings", func(t *testing.T) {
		mr := miniredis.RunT(t)
		cfg := RedisConfig{Host: mr.Host(), Port: mr.Port()}

		client, err := NewRedis(cfg)
		require.NoError(t, err)
		defer client.Close()
		assert.NotNil(t, client)
	})

	t.Run("unreachable host fails", func(t *testing.T) {
		cfg := RedisConfig{Host: "invalid-redis-host-xyz", Port: "6379"}

		client, err := NewRedis(cfg)
		assert.Error(t, err)
		assert.Nil(t, client)
	})
}
