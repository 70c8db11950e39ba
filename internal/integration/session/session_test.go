package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/okr-bot/backend/internal/application/adapter"
)

type wizardState struct {
	Step   int               `json:"step"`
	Values map[string]string `json:"values"`
}

type manualClock struct {
	now time.Time
}

func (c *manualClock) Now() time.Time {
	return c.now
}

func testStoreRoundTrip(t *testing.T, store adapter.SessionStore) {
	t.Helper()
	ctx := context.Background()

	var missing wizardState
	found, err := store.Get(ctx, "chat:1", &missing)
	if err != nil || found {
		t.Fatalf("expected no session, got found=%v err=%v", found, err)
	}

	state := wizardState{Step: 2, Values: map[string]string{"title": "Grow"}}
	if err := store.Set(ctx, "chat:1", state, time.Minute); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var loaded wizardState
	found, err = store.Get(ctx, "chat:1", &loaded)
	if err != nil || !found {
		t.Fatalf("expected session, got found=%v err=%v", found, err)
	}
	if loaded.Step != 2 || loaded.Values["title"] != "Grow" {
		t.Errorf("unexpected session: %+v", loaded)
	}

	if err := store.Delete(ctx, "chat:1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	found, _ = store.Get(ctx, "chat:1", &loaded)
	if found {
		t.Error("expected session deleted")
	}
}

func TestRedisStore(t *testing.T) {
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	defer client.Close()

	store := NewRedisStore(client)

	t.Run("round trip", func(t *testing.T) {
		testStoreRoundTrip(t, store)
	})

	t.Run("expires after ttl", func(t *testing.T) {
		ctx := context.Background()
		if err := store.Set(ctx, "chat:2", wizardState{Step: 1}, time.Minute); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if ttl := server.TTL(keyPrefix + "chat:2"); ttl != time.Minute {
			t.Errorf("expected ttl of one minute, got %v", ttl)
		}

		server.FastForward(2 * time.Minute)

		var state wizardState
		found, err := store.Get(ctx, "chat:2", &state)
		if err != nil || found {
			t.Errorf("expected expired session, got found=%v err=%v", found, err)
		}
	})
}

func TestMemoryStore(t *testing.T) {
	clock := &manualClock{now: time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)}
	store := NewMemoryStore(clock)

	t.Run("round trip", func(t *testing.T) {
		testStoreRoundTrip(t, store)
	})

	t.Run("expires after ttl", func(t *testing.T) {
		ctx := context.Background()
		if err := store.Set(ctx, "chat:2", wizardState{Step: 1}, time.Minute); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		clock.now = clock.now.Add(30 * time.Second)
		var state wizardState
		if found, _ := store.Get(ctx, "chat:2", &state); !found {
			t.Error("expected session before ttl")
		}

		clock.now = clock.now.Add(time.Minute)
		if found, _ := store.Get(ctx, "chat:2", &state); found {
			t.Error("expected session expired after ttl")
		}
	})
}
