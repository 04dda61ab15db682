// Package broadcast fans live updates out to WebSocket subscribers: log
// events classified off the live tail, plus scheduled status and stats
// pushes.
package broadcast

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/PabloHurtadoGonzalo86/minecraft-stats-web/internal/model"
	"github.com/PabloHurtadoGonzalo86/minecraft-stats-web/internal/parser"
)

const (
	subscriberBuffer = 1024
	dedupCapacity    = 100
)

// Hub classifies raw lines from the tailer and broadcasts LiveUpdate values
// to all subscribers. A bounded de-dup set suppresses events that were
// already sent, so a tailer replay doesn't spam subscribers.
type Hub struct {
	classifier  *parser.Classifier
	input       <-chan model.RawLine
	now         func() time.Time
	seen        *Dedup
	mu          sync.RWMutex
	subscribers []chan model.LiveUpdate
	dropped     atomic.Int64
}

// New creates a Hub that reads raw lines from the input channel.
func New(input <-chan model.RawLine) *Hub {
	return &Hub{
		classifier: parser.New(),
		input:      input,
		now:        time.Now,
		seen:       NewDedup(dedupCapacity),
	}
}

// Subscribe returns a buffered channel that will receive live updates.
// Multiple consumers can subscribe; each gets a copy of every update.
func (h *Hub) Subscribe() <-chan model.LiveUpdate {
	ch := make(chan model.LiveUpdate, subscriberBuffer)
	h.mu.Lock()
	h.subscribers = append(h.subscribers, ch)
	h.mu.Unlock()
	return ch
}

// Dropped returns the total number of updates dropped for slow consumers.
func (h *Hub) Dropped() int64 {
	return h.dropped.Load()
}

// Start consumes raw lines, classifies and broadcasts them. Blocks until
// the context is cancelled or the input channel is closed.
func (h *Hub) Start(ctx context.Context) {
	defer h.closeAll()

	for {
		select {
		case <-ctx.Done():
			return
		case raw, ok := <-h.input:
			if !ok {
				return
			}
			h.handleLine(raw)
		}
	}
}

func (h *Hub) handleLine(raw model.RawLine) {
	today := h.now().In(model.ServerZone())
	ev, ok := h.classifier.Classify(raw.Text, today)
	if !ok || ev.Kind == model.KindOther {
		return
	}

	key := ev.Timestamp + "-" + string(ev.Kind) + "-" + ev.PlayerName
	if !h.seen.Add(key) {
		return
	}

	h.Publish(model.LiveUpdate{Type: string(ev.Kind), Data: ev})
}

// Publish sends an update to all subscribers. Updates for a subscriber
// whose buffer is full are dropped.
func (h *Hub) Publish(update model.LiveUpdate) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, ch := range h.subscribers {
		select {
		case ch <- update:
		default:
			n := h.dropped.Add(1)
			log.Debug().Int64("total_dropped", n).Msg("dropped update for slow consumer")
		}
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, ch := range h.subscribers {
		close(ch)
	}
	h.subscribers = nil
}
