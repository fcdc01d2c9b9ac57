// Package simulator maintains rolling buffers of synthetic security logs and
// alerts, produces new records on a jittered schedule and derives dashboard
// aggregates from the buffers.
package simulator

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/telhawk-systems/minisentinel/common/logging"
	"github.com/telhawk-systems/minisentinel/sentinel/pkg/generator"
	"github.com/telhawk-systems/minisentinel/sentinel/pkg/models"
)

// Job names used by the scheduler.
const (
	JobLogTick   = "log-tick"
	JobAlertEmit = "alert-emit"
)

// ErrDisposed is returned when activating a disposed simulator.
var ErrDisposed = errors.New("simulator disposed")

// Simulator owns the log and alert buffers. It is safe for concurrent use;
// every operation completes synchronously.
type Simulator struct {
	mu     sync.RWMutex
	cfg    Config
	gen    *generator.Generator
	scorer ThreatScorer
	logger *slog.Logger
	sinks  []Sink

	logs       *logBuffer
	alerts     []models.AlertRecord // oldest first
	alertIndex map[string]int
	top        []models.AddressStat

	scheduler *Scheduler
	disposed  bool
}

// Option configures a Simulator.
type Option func(*Simulator)

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Simulator) {
		s.logger = logger
	}
}

// WithSink registers a sink for mutation notifications.
func WithSink(sink Sink) Option {
	return func(s *Simulator) {
		s.sinks = append(s.sinks, sink)
	}
}

// WithGenerator replaces the record generator, typically to pin the clock.
func WithGenerator(gen *generator.Generator) Option {
	return func(s *Simulator) {
		s.gen = gen
	}
}

// WithScorer replaces the threat scorer.
func WithScorer(scorer ThreatScorer) Option {
	return func(s *Simulator) {
		s.scorer = scorer
	}
}

// New creates an empty, inactive simulator.
func New(cfg Config, opts ...Option) (*Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &Simulator{
		cfg:        cfg,
		logger:     slog.Default(),
		logs:       newLogBuffer(cfg.Capacity),
		alerts:     make([]models.AlertRecord, 0),
		alertIndex: make(map[string]int),
		top:        []models.AddressStat{},
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.gen == nil {
		s.gen = generator.New(cfg.Seed)
	}
	if s.scorer == nil {
		if cfg.JitterThreatScores {
			s.scorer = JitterScorer{Gen: s.gen}
		} else {
			seed := cfg.Seed
			if seed == 0 {
				seed = time.Now().UnixNano()
			}
			s.scorer = HashScorer{Seed: seed}
		}
	}

	s.scheduler = NewScheduler(s.drawDelay, s.logger,
		Job{Name: JobLogTick, Initial: cfg.LogStartDelay, Interval: cfg.LogInterval, Run: func() { s.Tick() }},
		Job{Name: JobAlertEmit, Initial: cfg.AlertStartDelay, Interval: cfg.AlertInterval, Run: func() { s.EmitAlert() }},
	)
	return s, nil
}

// Initialize replaces both buffers with seed data: seedLogCount logs spread
// over the preceding seedHoursBack hours and, if seedAlerts is set, the
// demonstration alert set. Only the newest Capacity logs are kept.
func (s *Simulator) Initialize(seedLogCount, seedHoursBack int, seedAlerts bool) error {
	logs, err := s.gen.Historical(seedLogCount, seedHoursBack)
	if err != nil {
		return err
	}
	var alerts []models.AlertRecord
	if seedAlerts {
		alerts = s.gen.SampleAlerts()
	}

	s.mu.Lock()
	s.logs.reset()
	for i := len(logs) - 1; i >= 0; i-- {
		s.logs.push(logs[i])
	}
	s.alerts = make([]models.AlertRecord, 0, len(alerts))
	s.alertIndex = make(map[string]int, len(alerts))
	for i := len(alerts) - 1; i >= 0; i-- {
		s.appendAlert(alerts[i])
	}
	s.recomputeLocked()
	logCount, alertCount := s.logs.len(), len(s.alerts)
	s.mu.Unlock()

	s.logger.Info("simulator initialized",
		slog.Int("logs", logCount),
		slog.Int("alerts", alertCount),
		slog.Int("hours_back", seedHoursBack),
	)
	for _, sink := range s.sinks {
		sink.Initialized(logCount, alertCount)
	}
	return nil
}

// Tick produces one log stamped now, makes it the newest record and evicts
// the oldest record when the buffer is over capacity.
func (s *Simulator) Tick() models.LogRecord {
	rec := s.gen.Log()

	s.mu.Lock()
	evicted := s.logs.push(rec)
	s.recomputeLocked()
	size := s.logs.len()
	s.mu.Unlock()

	s.logger.Debug("log generated",
		logging.LogID(rec.ID),
		logging.IP(rec.IP),
		slog.Bool("evicted", evicted),
	)
	for _, sink := range s.sinks {
		sink.LogAdded(rec, size, evicted)
	}
	return rec
}

// EmitAlert produces one active alert and makes it the newest alert.
func (s *Simulator) EmitAlert() models.AlertRecord {
	alert := s.gen.Alert()

	s.mu.Lock()
	s.appendAlert(alert)
	s.mu.Unlock()

	s.logger.Info("alert emitted",
		logging.AlertID(alert.ID),
		slog.String("type", string(alert.Type)),
		slog.String("severity", string(alert.Severity)),
	)
	for _, sink := range s.sinks {
		sink.AlertAdded(alert.Clone())
	}
	return alert.Clone()
}

// Acknowledge moves an active alert to acknowledged. Unknown ids and alerts
// past active are ignored. The result reports whether anything changed.
func (s *Simulator) Acknowledge(alertID string) bool {
	return s.transition(alertID, models.StatusAcknowledged)
}

// Resolve moves an active or acknowledged alert to resolved. Unknown ids and
// resolved alerts are ignored. The result reports whether anything changed.
func (s *Simulator) Resolve(alertID string) bool {
	return s.transition(alertID, models.StatusResolved)
}

func (s *Simulator) transition(alertID string, to models.AlertStatus) bool {
	s.mu.Lock()
	i, ok := s.alertIndex[alertID]
	if !ok || !s.alerts[i].Status.CanTransition(to) {
		s.mu.Unlock()
		return false
	}
	from := s.alerts[i].Status
	s.alerts[i].Status = to
	updated := s.alerts[i].Clone()
	s.mu.Unlock()

	s.logger.Info("alert status changed",
		logging.AlertID(alertID),
		slog.String("from", string(from)),
		slog.String("to", string(to)),
	)
	for _, sink := range s.sinks {
		sink.AlertUpdated(updated.Clone(), from)
	}
	return true
}

// Logs returns the log buffer, newest first.
func (s *Simulator) Logs() []models.LogRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.logs.snapshot()
}

// Alerts returns the alert buffer, newest first.
func (s *Simulator) Alerts() []models.AlertRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.alertsLocked()
}

// Alert looks up a single alert by id.
func (s *Simulator) Alert(alertID string) (models.AlertRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.alertIndex[alertID]
	if !ok {
		return models.AlertRecord{}, false
	}
	return s.alerts[i].Clone(), true
}

// TopAddresses returns the current top-address aggregate, busiest first.
func (s *Simulator) TopAddresses() []models.AddressStat {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.top)
}

// RankAddresses recomputes the address ranking with a caller-chosen limit.
// A limit <= 0 falls back to DefaultTopLimit.
func (s *Simulator) RankAddresses(limit int) []models.AddressStat {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return ComputeTopAddresses(s.logs.snapshot(), limit, s.scorer)
}

// Stats derives the dashboard stats from the current buffers.
func (s *Simulator) Stats() models.DashboardStats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return DeriveStats(s.logs.snapshot(), s.alerts, s.cfg.LogsPerSecond)
}

// AlertStats counts the current alerts by status and severity.
func (s *Simulator) AlertStats() models.AlertStats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return ComputeAlertStats(s.alerts)
}

// Config returns the configuration the simulator was built with.
func (s *Simulator) Config() Config {
	return s.cfg
}

// Activate starts the log and alert schedules. Activating an active
// simulator is a no-op.
func (s *Simulator) Activate(ctx context.Context) error {
	s.mu.RLock()
	disposed := s.disposed
	s.mu.RUnlock()
	if disposed {
		return ErrDisposed
	}
	s.scheduler.Start(ctx)
	return nil
}

// Deactivate cancels both schedules. It is idempotent.
func (s *Simulator) Deactivate() {
	s.scheduler.Stop()
}

// SetActive activates or deactivates the schedules.
func (s *Simulator) SetActive(ctx context.Context, active bool) error {
	if active {
		return s.Activate(ctx)
	}
	s.Deactivate()
	return nil
}

// Active reports whether the schedules are running.
func (s *Simulator) Active() bool {
	return s.scheduler.Running()
}

// Dispose deactivates the simulator for good. Buffers stay readable.
func (s *Simulator) Dispose() {
	s.mu.Lock()
	s.disposed = true
	s.mu.Unlock()
	s.Deactivate()
}

func (s *Simulator) appendAlert(alert models.AlertRecord) {
	s.alertIndex[alert.ID] = len(s.alerts)
	s.alerts = append(s.alerts, alert)
}

func (s *Simulator) alertsLocked() []models.AlertRecord {
	out := make([]models.AlertRecord, len(s.alerts))
	for i, a := range s.alerts {
		out[len(s.alerts)-1-i] = a.Clone()
	}
	return out
}

func (s *Simulator) recomputeLocked() {
	s.top = ComputeTopAddresses(s.logs.snapshot(), s.cfg.TopLimit, s.scorer)
}

func (s *Simulator) drawDelay(r Range) time.Duration {
	return s.gen.Duration(r.Min, r.Max)
}
