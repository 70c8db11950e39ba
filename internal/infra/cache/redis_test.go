package cache

import (
	"testing"

	"github.com/alicebob/miniredis/v2"

	"github.com/okr-bot/backend/config"
)

func TestNewRedisClient(t *testing.T) {
	server := miniredis.RunT(t)

	client, err := NewRedisClient(&config.RedisConfig{URL: "redis://" + server.Addr() + "/0", DB: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer client.Close()

	if client.Options().DB != 2 {
		t.Errorf("expected DB override 2, got %d", client.Options().DB)
	}
	if !HealthCheck(client) {
		t.Error("expected healthy redis")
	}

	server.Close()
	if HealthCheck(client) {
		t.Error("expected unhealthy redis after server shutdown")
	}
}

func TestNewRedisClient_InvalidURL(t *testing.T) {
	if _, err := NewRedisClient(&config.RedisConfig{URL: "http://nope"}); err == nil {
		t.Error("expected error for non-redis url")
	}
}
