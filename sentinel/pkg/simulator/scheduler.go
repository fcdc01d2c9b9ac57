package simulator

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/telhawk-systems/minisentinel/common/logging"
)

// Job is a self-rescheduling task. The first run happens after a delay drawn
// from Initial, every following run after a delay drawn from Interval.
type Job struct {
	Name     string
	Initial  Range
	Interval Range
	Run      func()
}

// Scheduler runs each job on its own timer. Jobs are independent: a slow run
// of one job never delays another.
type Scheduler struct {
	mu       sync.Mutex
	jobs     []Job
	delay    func(Range) time.Duration
	logger   *slog.Logger
	running  bool
	stopChan chan struct{}
	wg       sync.WaitGroup
}

// NewScheduler creates a scheduler. delay draws a concrete duration from a range.
func NewScheduler(delay func(Range) time.Duration, logger *slog.Logger, jobs ...Job) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		jobs:   jobs,
		delay:  delay,
		logger: logger,
	}
}

// Start launches every job. Starting a running scheduler is a no-op.
// Cancelling ctx stops the scheduler as if Stop had been called.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return
	}
	s.running = true
	stop := make(chan struct{})
	s.stopChan = stop

	s.wg.Add(len(s.jobs) + 1)
	for _, job := range s.jobs {
		go s.runJob(job, stop)
	}
	go s.watch(ctx, stop)
	s.logger.Info("scheduler started", slog.Int("jobs", len(s.jobs)))
}

// watch ends the run started with stop once ctx is done.
func (s *Scheduler) watch(ctx context.Context, stop chan struct{}) {
	defer s.wg.Done()

	select {
	case <-stop:
	case <-ctx.Done():
		s.mu.Lock()
		if s.running && s.stopChan == stop {
			s.running = false
			close(stop)
			s.logger.Info("scheduler stopped", slog.String("reason", "context done"))
		}
		s.mu.Unlock()
	}
}

// Stop cancels every pending timer and waits for in-flight runs to finish.
// Stopping a stopped scheduler only waits for runs still finishing. Stop must
// not be called from a job.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	wasRunning := s.running
	if wasRunning {
		s.running = false
		close(s.stopChan)
	}
	s.mu.Unlock()

	s.wg.Wait()
	if wasRunning {
		s.logger.Info("scheduler stopped")
	}
}

// Running reports whether the jobs are scheduled.
func (s *Scheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

func (s *Scheduler) runJob(job Job, stop <-chan struct{}) {
	defer s.wg.Done()

	timer := time.NewTimer(s.delay(job.Initial))
	defer timer.Stop()

	for {
		select {
		case <-stop:
			return
		case <-timer.C:
			// Stop may have raced with the timer.
			select {
			case <-stop:
				return
			default:
			}

			job.Run()
			next := s.delay(job.Interval)
			s.logger.Debug("job rescheduled", logging.Job(job.Name), slog.Duration("delay", next))
			timer.Reset(next)
		}
	}
}
