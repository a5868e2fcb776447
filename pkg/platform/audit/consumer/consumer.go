// Package consumer reads the audit topic back and dispatches each event to a
// handler chosen by its category.
package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/twmb/franz-go/pkg/kgo"

	audit "medsim/pkg/platform/audit"
)

// Handler processes one decoded audit event.
type Handler interface {
	Handle(ctx context.Context, event audit.Event) error
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(ctx context.Context, event audit.Event) error

func (f HandlerFunc) Handle(ctx context.Context, event audit.Event) error {
	return f(ctx, event)
}

// Router dispatches events to category handlers.
type Router struct {
	handlers map[audit.EventCategory]Handler
	fallback Handler
	logger   *slog.Logger
}

// NewRouter creates a router. fallback may be nil, in which case events of
// unregistered categories are logged and skipped.
func NewRouter(logger *slog.Logger, fallback Handler) *Router {
	return &Router{
		handlers: make(map[audit.EventCategory]Handler),
		fallback: fallback,
		logger:   logger,
	}
}

func (r *Router) Register(category audit.EventCategory, handler Handler) {
	r.handlers[category] = handler
}

func (r *Router) Handle(ctx context.Context, event audit.Event) error {
	handler, ok := r.handlers[event.Category]
	if !ok {
		if r.fallback != nil {
			return r.fallback.Handle(ctx, event)
		}
		r.logger.WarnContext(ctx, "no handler for audit category, skipping event",
			"category", event.Category,
			"action", event.Action,
		)
		return nil
	}
	return handler.Handle(ctx, event)
}

// LogHandler writes events to a logger at a fixed level.
func LogHandler(logger *slog.Logger, level slog.Level) Handler {
	return HandlerFunc(func(ctx context.Context, e audit.Event) error {
		logger.Log(ctx, level, "audit event",
			"category", e.Category,
			"action", e.Action,
			"outcome", e.Outcome,
			"actor", e.Actor,
			"registry", e.Registry,
			"key", e.Key,
			"reason", e.Reason,
			"request_id", e.RequestID,
			"timestamp", e.Timestamp,
		)
		return nil
	})
}

// Decode reads the JSON event in record. Records produced without a category
// get the one their action implies.
func Decode(record *kgo.Record) (audit.Event, error) {
	var event audit.Event
	if err := json.Unmarshal(record.Value, &event); err != nil {
		return event, fmt.Errorf("decode audit record at offset %d: %w", record.Offset, err)
	}
	if event.Category == "" {
		event.Category = audit.AuditEvent(event.Action).Category()
	}
	return event, nil
}

// Consumer polls the audit topic and feeds the router.
type Consumer struct {
	client *kgo.Client
	router *Router
	logger *slog.Logger
}

// New joins group on topic. An empty group reads the whole topic from the
// start without committing offsets.
func New(brokers []string, topic, group string, router *Router, logger *slog.Logger, opts ...kgo.Opt) (*Consumer, error) {
	if len(brokers) == 0 {
		return nil, errors.New("audit consumer requires at least one broker")
	}
	base := []kgo.Opt{
		kgo.SeedBrokers(brokers...),
		kgo.ConsumeTopics(topic),
		kgo.ConsumeResetOffset(kgo.NewOffset().AtStart()),
	}
	if group != "" {
		base = append(base, kgo.ConsumerGroup(group))
	}
	client, err := kgo.NewClient(append(base, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("create kafka client: %w", err)
	}
	return &Consumer{client: client, router: router, logger: logger}, nil
}

// Run consumes until ctx is done. Undecodable records and handler failures
// are logged and skipped.
func (c *Consumer) Run(ctx context.Context) error {
	for {
		fetches := c.client.PollFetches(ctx)
		if fetches.IsClientClosed() || ctx.Err() != nil {
			return nil
		}
		for _, fe := range fetches.Errors() {
			c.logger.ErrorContext(ctx, "audit fetch failed",
				"topic", fe.Topic,
				"partition", fe.Partition,
				"error", fe.Err,
			)
		}
		fetches.EachRecord(func(record *kgo.Record) {
			event, err := Decode(record)
			if err != nil {
				c.logger.ErrorContext(ctx, "skipping audit record", "error", err)
				return
			}
			if err := c.router.Handle(ctx, event); err != nil {
				c.logger.ErrorContext(ctx, "audit handler failed",
					"action", event.Action,
					"key", event.Key,
					"error", err,
				)
			}
		})
	}
}

func (c *Consumer) Close() {
	c.client.Close()
}
