package database

import (
	"context"
	"edunity_backend/internal/config"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitRedisDisabled(t *testing.T) {
	rdb, err := InitRedis(context.Background(), &config.RedisConfig{Host: "127.0.0.1", Port: 1})
	require.NoError(t, err)
	assert.Nil(t, rdb)

	rdb, err = InitRedis(context.Background(), nil)
	require.NoError(t, err)
	assert.Nil(t, rdb)
}

func TestInitRedisUnreachable(t *testing.T) {
	rdb, err := InitRedis(context.Background(), &config.RedisConfig{Enabled: true, Host: "127.0.0.1", Port: 1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ping redis 127.0.0.1:1")
	assert.Nil(t, rdb)
}
