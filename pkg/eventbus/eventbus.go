// Package eventbus defines the contract for emitting domain events to the
// durable queue, plus an in-memory implementation used in tests.
package eventbus

import "context"

// Publisher emits domain events. Publishing is best-effort and fire-and-forget:
// implementations log and return nil when the underlying channel is not
// established, and callers must never let a publish failure fail the
// operation that produced the event.
type Publisher interface {
	Publish(ctx context.Context, eventType string, payload any) error
}
