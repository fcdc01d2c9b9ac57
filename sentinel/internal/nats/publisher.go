// Package nats fans simulator mutations out to the message bus.
package nats

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/telhawk-systems/minisentinel/common/logging"
	"github.com/telhawk-systems/minisentinel/common/messaging"
	"github.com/telhawk-systems/minisentinel/sentinel/pkg/events"
	"github.com/telhawk-systems/minisentinel/sentinel/pkg/models"
	"github.com/telhawk-systems/minisentinel/sentinel/pkg/simulator"
)

// publishTimeout bounds a single publish.
const publishTimeout = 2 * time.Second

// Publisher is a simulator.Sink that publishes events. Failures are logged
// and never reach the simulator.
type Publisher struct {
	simulator.NopSink
	pub    messaging.Publisher
	logger *slog.Logger
	now    func() time.Time
}

// NewPublisher creates a Publisher on top of pub.
func NewPublisher(pub messaging.Publisher, logger *slog.Logger) *Publisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Publisher{pub: pub, logger: logger, now: time.Now}
}

func (p *Publisher) LogAdded(log models.LogRecord, bufferLen int, evicted bool) {
	p.publish(messaging.SubjectLogsCreated, events.LogCreatedEvent{Log: log, BufferSize: bufferLen, Evicted: evicted})
}

func (p *Publisher) AlertAdded(alert models.AlertRecord) {
	p.publish(messaging.SubjectAlertsCreated, events.AlertCreatedEvent{Alert: alert})
}

func (p *Publisher) AlertUpdated(alert models.AlertRecord, from models.AlertStatus) {
	p.publish(messaging.SubjectAlertsUpdated, events.AlertUpdatedEvent{
		AlertID:   alert.ID,
		From:      from,
		To:        alert.Status,
		UpdatedAt: p.now(),
	})
}

func (p *Publisher) publish(subject string, event any) {
	if err := p.publishJSON(subject, event); err != nil {
		p.logger.Warn("failed to publish event", logging.Subject(subject), logging.Error(err))
	}
}

func (p *Publisher) publishJSON(subject string, event any) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()
	return p.pub.PublishMsg(ctx, &messaging.Message{
		Subject:  subject,
		Data:     data,
		Metadata: map[string]string{"Content-Type": "application/json"},
	})
}
