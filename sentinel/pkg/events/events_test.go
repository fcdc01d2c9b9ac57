package events

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/telhawk-systems/minisentinel/common/messaging"
	"github.com/telhawk-systems/minisentinel/sentinel/pkg/models"
)

func TestDecode(t *testing.T) {
	data, err := json.Marshal(AlertUpdatedEvent{AlertID: "alert_1", From: models.StatusActive, To: models.StatusResolved})
	require.NoError(t, err)

	got, err := Decode(&messaging.Message{Subject: messaging.SubjectAlertsUpdated, Data: data})
	require.NoError(t, err)

	ev, ok := got.(*AlertUpdatedEvent)
	require.True(t, ok)
	assert.Equal(t, "alert_1", ev.AlertID)
	assert.Equal(t, models.StatusResolved, ev.To)
}

func TestDecode_Subjects(t *testing.T) {
	tests := []struct {
		subject string
		want    any
	}{
		{messaging.SubjectLogsCreated, &LogCreatedEvent{}},
		{messaging.SubjectAlertsCreated, &AlertCreatedEvent{}},
		{messaging.SubjectAlertsUpdated, &AlertUpdatedEvent{}},
	}
	for _, tt := range tests {
		got, err := Decode(&messaging.Message{Subject: tt.subject, Data: []byte(`{}`)})
		require.NoError(t, err)
		assert.IsType(t, tt.want, got)
	}
}

func TestDecode_Errors(t *testing.T) {
	_, err := Decode(&messaging.Message{Subject: "other.subject", Data: []byte(`{}`)})
	assert.Error(t, err)

	_, err = Decode(&messaging.Message{Subject: messaging.SubjectLogsCreated, Data: []byte(`{`)})
	assert.Error(t, err)
}
