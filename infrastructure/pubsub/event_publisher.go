package pubsub

import (
	"context"
	"encoding/json"
	"time"

	"omnipost/infrastructure/logger"

	gcppubsub "cloud.google.com/go/pubsub"
)

// PostPublishedEvent is emitted after a successful publish on any platform.
type PostPublishedEvent struct {
	UserID      string    `json:"user_id"`
	AccountID   string    `json:"account_id"`
	Platform    string    `json:"platform"`
	ExternalRef string    `json:"external_ref"`
	PublishedAt time.Time `json:"published_at"`
}

// EventPublisher pushes post-published events to a Pub/Sub topic. A nil
// receiver is a valid no-op publisher so callers never need to branch on
// whether eventing is configured.
type EventPublisher struct {
	client *gcppubsub.Client
	topic  *gcppubsub.Topic
}

func NewEventPublisher(ctx context.Context, projectID, topicID string) (*EventPublisher, error) {
	client, err := gcppubsub.NewClient(ctx, projectID)
	if err != nil {
		return nil, err
	}
	topic := client.Topic(topicID)
	exists, err := topic.Exists(ctx)
	if err != nil {
		client.Close()
		return nil, err
	}
	if !exists {
		topic, err = client.CreateTopic(ctx, topicID)
		if err != nil {
			client.Close()
			return nil, err
		}
	}
	return &EventPublisher{client: client, topic: topic}, nil
}

// PostPublished is best effort. Failures are logged, never returned, because
// the post itself already succeeded.
func (p *EventPublisher) PostPublished(ctx context.Context, event PostPublishedEvent) {
	if p == nil {
		return
	}
	payload, err := json.Marshal(event)
	if err != nil {
		logger.GetLogger().WithField("error", err).Error("failed to encode post published event")
		return
	}
	result := p.topic.Publish(ctx, &gcppubsub.Message{
		Data: payload,
		Attributes: map[string]string{
			"platform": event.Platform,
		},
	})
	if _, err = result.Get(ctx); err != nil {
		logger.GetLogger().WithField("error", err).WithField("platform", event.Platform).
			Error("failed to publish post published event")
	}
}

func (p *EventPublisher) Close() {
	if p == nil {
		return
	}
	p.topic.Stop()
	p.client.Close()
}
