package task

import (
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

// Task type names carry the provider name so that queues shared between
// deployments pointed at different streaming platforms never cross wires.

func TypeCopyVideo(provider string) string {
	return fmt.Sprintf("stream:%s:copy", provider)
}

func TypeCheckStreamStatus(provider string) string {
	return fmt.Sprintf("stream:%s:check_status", provider)
}

type StreamTaskPayload struct {
	CollectionSlug string `json:"collection_slug"`
	DocumentID     string `json:"document_id"`
}

// NewCopyVideoTask creates an Asynq task for copying a record's file to the
// streaming platform.
func NewCopyVideoTask(provider string, p StreamTaskPayload) (*asynq.Task, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("could not marshal copy-video payload: %w", err)
	}
	return asynq.NewTask(TypeCopyVideo(provider), data), nil
}

// NewCheckStreamStatusTask creates an Asynq task for polling the streaming
// platform about a record's processing status.
func NewCheckStreamStatusTask(provider string, p StreamTaskPayload) (*asynq.Task, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("could not marshal check-stream-status payload: %w", err)
	}
	return asynq.NewTask(TypeCheckStreamStatus(provider), data), nil
}

// ParseStreamTaskPayload parses the payload shared by both stream tasks.
func ParseStreamTaskPayload(t *asynq.Task) (StreamTaskPayload, error) {
	var p StreamTaskPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return StreamTaskPayload{}, fmt.Errorf("could not unmarshal payload: %w", err)
	}
	return p, nil
}
