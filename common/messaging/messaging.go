// Package messaging decouples event publishers and subscribers from the broker implementation.
package messaging

import (
	"context"
	"errors"
	"time"
)

// ErrNotConnected is returned by health checks when the broker is unreachable.
var ErrNotConnected = errors.New("not connected to message broker")

// Message represents a message received from or sent to a message broker.
type Message struct {
	Subject string
	Data    []byte

	// Metadata carries message headers.
	Metadata map[string]string

	// Timestamp is when the message was received locally.
	Timestamp time.Time
}

// MessageHandler processes a received message.
type MessageHandler func(ctx context.Context, msg *Message) error

// Subscription represents an active subscription to a subject.
type Subscription interface {
	Unsubscribe() error
	Subject() string
}

// Publisher publishes messages to subjects. Publishing is fire-and-forget.
type Publisher interface {
	Publish(ctx context.Context, subject string, data []byte) error
	PublishMsg(ctx context.Context, msg *Message) error
	Close() error
}

// Subscriber subscribes to messages on subjects.
type Subscriber interface {
	// Subscribe delivers every message on subject to handler. Wildcards
	// follow the broker's syntax.
	Subscribe(subject string, handler MessageHandler) (Subscription, error)
	Close() error
}

// Client combines Publisher and Subscriber.
type Client interface {
	Publisher
	Subscriber

	// Drain gracefully closes the connection, allowing in-flight messages to complete.
	Drain() error
	IsConnected() bool
}

// CheckHealth returns ErrNotConnected unless client is connected.
func CheckHealth(client Client) error {
	if client == nil || !client.IsConnected() {
		return ErrNotConnected
	}
	return nil
}
