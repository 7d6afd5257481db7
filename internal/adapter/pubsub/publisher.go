// Package pubsub publishes domain events after their transaction commits.
package pubsub

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	gpubsub "cloud.google.com/go/pubsub"
	"google.golang.org/api/option"

	"github.com/heartmarshall/mikro-backoffice/internal/domain"
)

// Publisher sends events to a Google Cloud Pub/Sub topic.
type Publisher struct {
	client *gpubsub.Client
	topic  *gpubsub.Topic
	log    *slog.Logger
}

// NewPublisher connects to projectID and binds topicID. opts are passed to
// the client (endpoint overrides in tests).
func NewPublisher(ctx context.Context, projectID, topicID string, log *slog.Logger, opts ...option.ClientOption) (*Publisher, error) {
	client, err := gpubsub.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("pubsub: new client: %w", err)
	}

	topic := client.Topic(topicID)
	ok, err := topic.Exists(ctx)
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("pubsub: check topic %s: %w", topicID, err)
	}
	if !ok {
		client.Close()
		return nil, fmt.Errorf("pubsub: topic %s does not exist", topicID)
	}

	return &Publisher{client: client, topic: topic, log: log.With("adapter", "pubsub")}, nil
}

// Publish sends every event and waits for the server acknowledgements.
// All events are attempted, including those after one that fails to encode;
// the returned error joins the failures.
func (p *Publisher) Publish(ctx context.Context, events []domain.Event) error {
	type pending struct {
		event  domain.Event
		result *gpubsub.PublishResult
	}

	var errs []error
	queued := make([]pending, 0, len(events))
	for _, e := range events {
		data, err := json.Marshal(e)
		if err != nil {
			errs = append(errs, fmt.Errorf("pubsub: encode event %s: %w", e.ID, err))
			continue
		}
		queued = append(queued, pending{event: e, result: p.topic.Publish(ctx, &gpubsub.Message{
			Data: data,
			Attributes: map[string]string{
				"type":        string(e.Type),
				"aggregateId": e.AggregateID,
			},
		})})
	}

	for _, q := range queued {
		id, err := q.result.Get(ctx)
		if err != nil {
			errs = append(errs, fmt.Errorf("pubsub: publish %s: %w", q.event.Type, err))
			continue
		}
		p.log.Debug("event published", slog.String("type", string(q.event.Type)), slog.String("message_id", id))
	}
	return errors.Join(errs...)
}

// Close flushes pending messages and closes the client.
func (p *Publisher) Close() error {
	p.topic.Stop()
	return p.client.Close()
}

// LogPublisher writes events to the log. It is used when no Pub/Sub topic
// is configured.
type LogPublisher struct {
	log *slog.Logger
}

// NewLogPublisher creates a publisher that only logs.
func NewLogPublisher(log *slog.Logger) *LogPublisher {
	return &LogPublisher{log: log.With("adapter", "events")}
}

// Publish logs each event at info level.
func (p *LogPublisher) Publish(ctx context.Context, events []domain.Event) error {
	for _, e := range events {
		p.log.InfoContext(ctx, "domain event",
			slog.String("type", string(e.Type)),
			slog.String("aggregate_id", e.AggregateID),
			slog.String("event_id", e.ID.String()),
		)
	}
	return nil
}
