// Package events delivers pipeline log lines and step statuses to observers
// over redis pub/sub. Delivery is best-effort: a dropped event never fails
// the pipeline work that produced it.
package events

import (
	"context"
	"encoding/json"
	"log"

	"github.com/redis/go-redis/v9"

	"github.com/mosesab/viralytics/internal/models"
)

// Channel is the pub/sub channel the websocket hub subscribes to.
const Channel = "pipeline:events"

type Publisher struct {
	redis *redis.Client
}

func NewPublisher(redisClient *redis.Client) *Publisher {
	return &Publisher{redis: redisClient}
}

func (p *Publisher) Log(ctx context.Context, message string) {
	log.Println(message)
	p.publish(ctx, models.WSMessage{Type: "log", Message: message})
}

func (p *Publisher) Error(ctx context.Context, message string) {
	log.Println("ERROR:", message)
	p.publish(ctx, models.WSMessage{Type: "error", Message: message})
}

func (p *Publisher) Status(ctx context.Context, step, status string, projectID int64) {
	p.publish(ctx, models.WSMessage{
		Type:      "status_update",
		Step:      step,
		Status:    status,
		ProjectID: projectID,
	})
}

func (p *Publisher) WorkflowComplete(ctx context.Context, projectID int64) {
	p.publish(ctx, models.WSMessage{Type: "workflow_complete", ProjectID: projectID})
}

func (p *Publisher) publish(ctx context.Context, msg models.WSMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}
	if err := p.redis.Publish(ctx, Channel, string(data)).Err(); err != nil {
		log.Printf("failed to publish pipeline event: %v", err)
	}
}
