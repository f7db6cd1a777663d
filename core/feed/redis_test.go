package feed

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"musicbridge/model"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPublisher(t *testing.T) (*miniredis.Miniredis, *RedisPublisher) {
	t.Helper()
	mr := miniredis.RunT(t)
	p := NewRedisPublisher(redis.NewClient(&redis.Options{Addr: mr.Addr()}), "musicbridge:player")
	t.Cleanup(func() { p.Close() })
	return mr, p
}

func TestRedisPublishKeepsLastNowPlaying(t *testing.T) {
	mr, p := newTestPublisher(t)
	ctx := context.Background()

	last, err := p.Last(ctx)
	require.NoError(t, err)
	assert.Nil(t, last)

	ev := newEvent(EventNowPlaying)
	ev.NowPlaying = &model.NowPlaying{State: model.PlayerPlaying, Title: "The Beatles - Come Together"}
	require.NoError(t, p.Publish(ctx, ev))

	// Library and error events go out on the channel only.
	lib := newEvent(EventLibrary)
	lib.Path, lib.Op = "/Music/Abbey Road/01.m4a", "create"
	require.NoError(t, p.Publish(ctx, lib))

	last, err = p.Last(ctx)
	require.NoError(t, err)
	var got Event
	require.NoError(t, json.Unmarshal(last, &got))
	assert.Equal(t, EventNowPlaying, got.Type)
	assert.Equal(t, "The Beatles - Come Together", got.NowPlaying.Title)

	assert.Equal(t, lastStateTTL, mr.TTL("musicbridge:player:last"))
}

func TestRedisSubscribe(t *testing.T) {
	_, p := newTestPublisher(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, err := p.Subscribe(ctx)
	require.NoError(t, err)

	ev := newEvent(EventError)
	ev.Error = "Music is not running"
	require.NoError(t, p.Publish(ctx, ev))

	select {
	case payload := <-events:
		var got Event
		require.NoError(t, json.Unmarshal(payload, &got))
		assert.Equal(t, EventError, got.Type)
		assert.Equal(t, "Music is not running", got.Error)
	case <-time.After(2 * time.Second):
		t.Fatal("no event received")
	}

	cancel()
	select {
	case _, ok := <-events:
		assert.False(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("subscription not closed")
	}
}
