package eventbus

import (
	"context"
	"log/slog"
	"sync"
)

// Recorded is one captured publish call.
type Recorded struct {
	Type    string
	Payload any
}

// MemoryPublisher records published events in memory. Used in tests and as a
// stand-in when no broker is configured.
type MemoryPublisher struct {
	mu     sync.Mutex
	events []Recorded
	logger *slog.Logger
}

// NewMemoryPublisher creates a recording in-memory publisher.
func NewMemoryPublisher(logger *slog.Logger) *MemoryPublisher {
	return &MemoryPublisher{logger: logger.With("bus", "memory")}
}

// Publish records the event.
func (p *MemoryPublisher) Publish(_ context.Context, eventType string, payload any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, Recorded{Type: eventType, Payload: payload})
	p.logger.Debug("event recorded", "type", eventType)
	return nil
}

// Published returns a copy of all recorded events.
func (p *MemoryPublisher) Published() []Recorded {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]Recorded, len(p.events))
	copy(out, p.events)
	return out
}

// Clear drops all recorded events.
func (p *MemoryPublisher) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = nil
}

var _ Publisher = (*MemoryPublisher)(nil)
