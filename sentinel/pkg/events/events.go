// Package events defines the payloads the sentinel service publishes on the message bus.
package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/telhawk-systems/minisentinel/common/messaging"
	"github.com/telhawk-systems/minisentinel/sentinel/pkg/models"
)

// LogCreatedEvent is published on messaging.SubjectLogsCreated.
type LogCreatedEvent struct {
	Log        models.LogRecord `json:"log"`
	BufferSize int              `json:"buffer_size"`
	Evicted    bool             `json:"evicted"`
}

// AlertCreatedEvent is published on messaging.SubjectAlertsCreated.
type AlertCreatedEvent struct {
	Alert models.AlertRecord `json:"alert"`
}

// AlertUpdatedEvent is published on messaging.SubjectAlertsUpdated.
type AlertUpdatedEvent struct {
	AlertID   string             `json:"alert_id"`
	From      models.AlertStatus `json:"from"`
	To        models.AlertStatus `json:"to"`
	UpdatedAt time.Time          `json:"updated_at"`
}

// Decode parses a message into the event type matching its subject.
func Decode(msg *messaging.Message) (any, error) {
	var target any
	switch msg.Subject {
	case messaging.SubjectLogsCreated:
		target = &LogCreatedEvent{}
	case messaging.SubjectAlertsCreated:
		target = &AlertCreatedEvent{}
	case messaging.SubjectAlertsUpdated:
		target = &AlertUpdatedEvent{}
	default:
		return nil, fmt.Errorf("unknown subject %q", msg.Subject)
	}
	if err := json.Unmarshal(msg.Data, target); err != nil {
		return nil, fmt.Errorf("decode %s: %w", msg.Subject, err)
	}
	return target, nil
}
