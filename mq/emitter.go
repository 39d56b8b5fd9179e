package mq

import (
	"context"
	"encoding/json"

	"milonga/rdx"

	log "github.com/sirupsen/logrus"
)

const channel = "lifecycle-events"

// Index describes a lifecycle event emitted when an entity changes.
type Index struct {
	EntityType string `json:"entity_type"`
	Method     string `json:"method"`
	EntityId   string `json:"entity_id"`
	ItemId     string `json:"item_id,omitempty"`
	ItemType   string `json:"item_type,omitempty"`
}

// Emit publishes a lifecycle event to Redis. Failures are logged, never fatal;
// emission is fire-and-forget from the caller's point of view.
func Emit(eventName string, content Index) {
	payload := struct {
		Event string `json:"event"`
		Index
	}{Event: eventName, Index: content}

	data, err := json.Marshal(payload)
	if err != nil {
		log.WithError(err).Warn("mq: failed to marshal event")
		return
	}
	if err := rdx.Conn.Publish(context.Background(), channel, data).Err(); err != nil {
		log.WithError(err).WithField("event", eventName).Warn("mq: publish failed")
	}
}
