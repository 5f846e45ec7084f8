package events

import "context"

// NoopPublisher drops every event. It stands in for NATS when no bus is
// configured, so workflows can publish unconditionally.
type NoopPublisher struct{}

func (NoopPublisher) Publish(ctx context.Context, topic string, event any) error { return nil }

func (NoopPublisher) Close() error { return nil }
