package cmd

import (
	"bytes"
	"context"
	"sync"
	"testing"
	"time"

	"musicbridge/core/feed"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestFollowRedis(t *testing.T) {
	const channel = "musicbridge:player"
	mr := miniredis.RunT(t)
	p := feed.NewRedisPublisher(redis.NewClient(&redis.Options{Addr: mr.Addr()}), channel)
	defer p.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	var out syncBuffer
	done := make(chan error, 1)
	go func() { done <- followRedis(ctx, p, &out) }()

	// Delivered only once the subscription is up.
	require.Eventually(t, func() bool {
		return mr.Publish(channel, `{"type":"library","op":"create"}`) > 0
	}, 2*time.Second, 10*time.Millisecond)
	mr.Publish(channel, `{"type":"library","op":"remove"}`)

	assert.Eventually(t, func() bool {
		return bytes.Contains([]byte(out.String()), []byte(`"op":"remove"`))
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("follow did not stop")
	}
	assert.Contains(t, out.String(), `{"type":"library","op":"create"}`+"\n")
}
