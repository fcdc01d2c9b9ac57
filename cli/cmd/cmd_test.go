package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/telhawk-systems/minisentinel/common/messaging"
	"github.com/telhawk-systems/minisentinel/sentinel/pkg/events"
	"github.com/telhawk-systems/minisentinel/sentinel/pkg/models"
)

func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// executeCommand runs sentinelctl with args against a fresh config dir.
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("SENTINEL_CONFIG_DIR", t.TempDir())
	color.NoColor = true
	resetFlags(rootCmd)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestCommandsRegistered(t *testing.T) {
	expected := map[string]bool{
		"simulate":  false,
		"logs":      false,
		"alerts":    false,
		"rules":     false,
		"patterns":  false,
		"stats":     false,
		"simulator": false,
		"watch":     false,
		"config":    false,
	}
	for _, cmd := range rootCmd.Commands() {
		if _, ok := expected[cmd.Name()]; ok {
			expected[cmd.Name()] = true
		}
	}
	for name, found := range expected {
		if !found {
			t.Errorf("expected command '%s' to be registered with root command", name)
		}
	}
}

func TestAlertsCommandHasSubcommands(t *testing.T) {
	want := []string{"list", "get", "ack", "resolve", "stats"}
	for _, name := range want {
		cmd, _, err := alertsCmd.Find([]string{name})
		if err != nil || cmd == alertsCmd {
			t.Errorf("alerts should have '%s' subcommand", name)
		}
	}
}

func TestGlobalFlags(t *testing.T) {
	for _, name := range []string{"server", "output"} {
		if rootCmd.PersistentFlags().Lookup(name) == nil {
			t.Errorf("expected persistent flag --%s", name)
		}
	}
}

func TestInvalidOutputFormat(t *testing.T) {
	_, err := executeCommand(t, "simulate", "-o", "xml")
	assert.ErrorContains(t, err, "unknown output format")
}

func TestSimulate_JSON(t *testing.T) {
	out, err := executeCommand(t, "simulate", "--seed", "42", "--ticks", "5", "--alerts", "2", "-o", "json")
	require.NoError(t, err)

	var report simulationReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, int64(42), report.Seed)
	assert.Equal(t, 105, report.Stats.TotalLogs)
	assert.Equal(t, 8, report.AlertStats.Total)
	assert.Equal(t, 120, report.Stats.LogsPerMinute)
	assert.Len(t, report.TopAddresses, 10)
}

func TestSimulate_Deterministic(t *testing.T) {
	run := func() []models.AddressStat {
		report, err := runSimulation(simulationOptions{
			seed: 7, ticks: 10, logCount: 50, hoursBack: 1, capacity: 1000, top: 5,
			logOutput: &bytes.Buffer{},
		})
		require.NoError(t, err)
		for i := range report.TopAddresses {
			report.TopAddresses[i].LastSeen = time.Time{}
		}
		return report.TopAddresses
	}
	assert.Equal(t, run(), run())
}

func TestSimulate_Table(t *testing.T) {
	out, err := executeCommand(t, "simulate", "--ticks", "3", "--alerts", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Simulated 3 ticks and 1 alerts")
	assert.Contains(t, out, "Total Logs")
	assert.Contains(t, out, "Threat")
}

func TestSimulate_InvalidInput(t *testing.T) {
	_, err := executeCommand(t, "simulate", "--logs", "-1")
	assert.ErrorContains(t, err, "invalid input")

	_, err = executeCommand(t, "simulate", "--ticks", "-1")
	assert.Error(t, err)
}

// fakeService answers the endpoints the commands below call.
func fakeService(t *testing.T) *httptest.Server {
	t.Helper()
	alert := models.AlertRecord{
		ID:       "alert_1",
		Type:     models.AlertBruteForce,
		Severity: models.SeverityCritical,
		Status:   models.StatusAcknowledged,
		SourceIP: "185.143.223.12",
	}
	write := func(w http.ResponseWriter, data any) {
		w.Header().Set("Content-Type", "application/vnd.api+json")
		_ = json.NewEncoder(w).Encode(map[string]any{"data": data})
	}
	res := func(typ, id string, attrs any) map[string]any {
		return map[string]any{"type": typ, "id": id, "attributes": attrs}
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/alerts":
			write(w, []any{res("alert", alert.ID, alert)})
		case "/api/v1/alerts/alert_1/acknowledge":
			write(w, res("alert", alert.ID, alert))
		case "/api/v1/alerts/alert_missing/resolve":
			w.WriteHeader(http.StatusNoContent)
		case "/api/v1/rules":
			write(w, []any{res("rule", "rule_001", models.Rule{
				ID: "rule_001", Name: "Brute Force Detection", Severity: models.SeverityCritical, Enabled: true, HitCount: 47,
			})})
		case "/api/v1/stats":
			write(w, res("stats", "current", models.DashboardStats{TotalLogs: 100, LogsPerMinute: 120}))
		case "/api/v1/top-addresses":
			write(w, []any{res("address", "45.155.205.33", models.AddressStat{IP: "45.155.205.33", RequestCount: 120, ThreatScore: 91})})
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)
	return server
}

func TestAlertsList(t *testing.T) {
	server := fakeService(t)

	out, err := executeCommand(t, "--server", server.URL, "alerts", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "alert_1")
	assert.Contains(t, out, "brute_force")
	assert.Contains(t, out, "185.143.223.12")
}

func TestAlertsAck(t *testing.T) {
	server := fakeService(t)

	out, err := executeCommand(t, "--server", server.URL, "alerts", "ack", "alert_1")
	require.NoError(t, err)
	assert.Contains(t, out, "Alert alert_1 is now acknowledged")

	out, err = executeCommand(t, "--server", server.URL, "alerts", "resolve", "alert_missing")
	require.NoError(t, err)
	assert.Contains(t, out, "not found, nothing changed")
}

func TestRulesList_YAML(t *testing.T) {
	server := fakeService(t)

	out, err := executeCommand(t, "--server", server.URL, "-o", "yaml", "rules", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "name: Brute Force Detection")
	assert.Contains(t, out, "hit_count: 47")
}

func TestStats(t *testing.T) {
	server := fakeService(t)

	out, err := executeCommand(t, "--server", server.URL, "stats")
	require.NoError(t, err)
	assert.Contains(t, out, "45.155.205.33")
	assert.Contains(t, out, "critical 91")
}

func TestServiceError(t *testing.T) {
	server := fakeService(t)

	_, err := executeCommand(t, "--server", server.URL, "rules", "show", "rule_999")
	assert.ErrorContains(t, err, "404")
}

func TestConfigSetAndShow(t *testing.T) {
	dir := t.TempDir()
	color.NoColor = true

	run := func(args ...string) string {
		t.Setenv("SENTINEL_CONFIG_DIR", dir)
		resetFlags(rootCmd)
		var out bytes.Buffer
		rootCmd.SetOut(&out)
		rootCmd.SetErr(&out)
		rootCmd.SetArgs(args)
		require.NoError(t, rootCmd.Execute())
		return out.String()
	}

	assert.Contains(t, run("config", "set", "server_url", "http://sentinel:9000"), "Set server_url")
	out := run("config", "show", "-o", "yaml")
	assert.Contains(t, out, "server_url: http://sentinel:9000")
}

func TestConfigSet_UnknownKey(t *testing.T) {
	_, err := executeCommand(t, "config", "set", "token", "abc")
	assert.ErrorContains(t, err, "unknown key")
}

type fakeSubscriber struct {
	messages []*messaging.Message
}

type fakeSubscription struct{}

func (fakeSubscription) Unsubscribe() error { return nil }
func (fakeSubscription) Subject() string    { return messaging.SubjectAll }

func (f *fakeSubscriber) Subscribe(_ string, handler messaging.MessageHandler) (messaging.Subscription, error) {
	go func() {
		for _, m := range f.messages {
			_ = handler(context.Background(), m)
		}
	}()
	return fakeSubscription{}, nil
}

func (f *fakeSubscriber) Close() error { return nil }

func TestWatchEvents(t *testing.T) {
	logEvent, _ := json.Marshal(events.LogCreatedEvent{Log: models.LogRecord{ID: "log_1", Level: models.LevelWarn}})
	updateEvent, _ := json.Marshal(events.AlertUpdatedEvent{AlertID: "alert_1", From: models.StatusActive, To: models.StatusResolved})
	sub := &fakeSubscriber{messages: []*messaging.Message{
		{Subject: messaging.SubjectLogsCreated, Data: logEvent},
		{Subject: "sentinel.unknown", Data: []byte(`{}`)},
		{Subject: messaging.SubjectAlertsUpdated, Data: updateEvent},
	}}

	var got []string
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err := watchEvents(ctx, sub, messaging.SubjectAll, 2, func(ev any) error {
		got = append(got, describeEvent(ev))
		return nil
	})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Contains(t, got[0], "log_1")
	assert.True(t, strings.Contains(got[1], "alert_1 active -> resolved"))
}
