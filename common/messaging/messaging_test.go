package messaging

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type stubClient struct {
	connected bool
}

func (s *stubClient) Publish(context.Context, string, []byte) error { return nil }
func (s *stubClient) PublishMsg(context.Context, *Message) error    { return nil }
func (s *stubClient) Subscribe(string, MessageHandler) (Subscription, error) {
	return nil, nil
}
func (s *stubClient) Close() error      { return nil }
func (s *stubClient) Drain() error      { return nil }
func (s *stubClient) IsConnected() bool { return s.connected }

func TestCheckHealth(t *testing.T) {
	assert.NoError(t, CheckHealth(&stubClient{connected: true}))
	assert.ErrorIs(t, CheckHealth(&stubClient{connected: false}), ErrNotConnected)
	assert.ErrorIs(t, CheckHealth(nil), ErrNotConnected)
}

func TestSubjects(t *testing.T) {
	subjects := Subjects()
	assert.Len(t, subjects, 3)
	for _, s := range subjects {
		parts := strings.Split(s, ".")
		assert.Len(t, parts, 3, "subject %s should have three tokens", s)
		assert.Equal(t, "sentinel", parts[0])
		assert.True(t, strings.HasPrefix(s, strings.TrimSuffix(SubjectAll, ">")))
	}
}
