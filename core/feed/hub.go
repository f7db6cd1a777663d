package feed

import (
	"context"
	"sync"

	"musicbridge/logger"

	"github.com/google/uuid"
)

// Subscriber is one consumer of the hub, typically a websocket connection.
type Subscriber struct {
	ID   string
	Send chan []byte
}

// Hub fans encoded events out to subscribers. Slow subscribers whose buffer
// is full are dropped.
type Hub struct {
	subscribers map[*Subscriber]bool

	register   chan *Subscriber
	unregister chan *Subscriber
	broadcast  chan []byte

	mu   sync.RWMutex
	done chan struct{}
	once sync.Once
}

// NewHub creates a hub; call Run to start it.
func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[*Subscriber]bool),
		register:    make(chan *Subscriber),
		unregister:  make(chan *Subscriber),
		broadcast:   make(chan []byte, 256),
		done:        make(chan struct{}),
	}
}

// Run is the hub's main loop.
func (h *Hub) Run() {
	for {
		select {
		case sub := <-h.register:
			h.mu.Lock()
			h.subscribers[sub] = true
			h.mu.Unlock()
			logger.Info("feed subscriber registered", logger.String("subscriber", sub.ID))

		case sub := <-h.unregister:
			h.mu.Lock()
			h.remove(sub)
			h.mu.Unlock()

		case msg := <-h.broadcast:
			h.fanOut(msg)

		case <-h.done:
			h.cleanup()
			return
		}
	}
}

// Stop ends Run and closes every subscriber.
func (h *Hub) Stop() {
	h.once.Do(func() { close(h.done) })
}

// remove requires h.mu.
func (h *Hub) remove(sub *Subscriber) {
	if _, ok := h.subscribers[sub]; !ok {
		return
	}
	delete(h.subscribers, sub)
	close(sub.Send)
	logger.Info("feed subscriber unregistered", logger.String("subscriber", sub.ID))
}

func (h *Hub) fanOut(msg []byte) {
	h.mu.RLock()
	subs := make([]*Subscriber, 0, len(h.subscribers))
	for sub := range h.subscribers {
		subs = append(subs, sub)
	}
	h.mu.RUnlock()

	for _, sub := range subs {
		select {
		case sub.Send <- msg:
		default:
			logger.Warn("feed subscriber too slow, dropping", logger.String("subscriber", sub.ID))
			h.mu.Lock()
			h.remove(sub)
			h.mu.Unlock()
		}
	}
}

func (h *Hub) cleanup() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for sub := range h.subscribers {
		close(sub.Send)
	}
	h.subscribers = make(map[*Subscriber]bool)
}

// Subscribe registers a new subscriber with a buffered send channel.
func (h *Hub) Subscribe() *Subscriber {
	sub := &Subscriber{ID: uuid.NewString(), Send: make(chan []byte, 16)}
	select {
	case h.register <- sub:
	case <-h.done:
		close(sub.Send)
	}
	return sub
}

// Unsubscribe removes sub; it is safe to call after the hub dropped it.
func (h *Hub) Unsubscribe(sub *Subscriber) {
	select {
	case h.unregister <- sub:
	case <-h.done:
	}
}

// Count returns the number of live subscribers.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers)
}

// Publish encodes ev and queues it for every subscriber.
func (h *Hub) Publish(ctx context.Context, ev Event) error {
	data, err := ev.Encode()
	if err != nil {
		return err
	}
	select {
	case h.broadcast <- data:
		return nil
	case <-h.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
