package gate

import (
	"fmt"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// SchedulerOption configures a Scheduler
type SchedulerOption func(*Scheduler)

// WithSchedulerLogger sets the logger used to report failed firings
func WithSchedulerLogger(logger *slog.Logger) SchedulerOption {
	return func(s *Scheduler) {
		if logger != nil {
			s.logger = logger
		}
	}
}

type schedulerState int

const (
	stateIdle schedulerState = iota
	stateRunning
	stateStopped
)

// Scheduler runs a task immediately on Start and then once per interval on a
// single goroutine, so firings never overlap.
//
// The task must not call Stop on its own scheduler: Stop waits for the
// firing in progress to return.
type Scheduler struct {
	interval time.Duration
	task     func()
	logger   *slog.Logger

	mu       sync.Mutex
	state    schedulerState
	stopChan chan struct{}
	doneChan chan struct{}
	firings  atomic.Uint64
}

// NewScheduler creates a scheduler for task. It does not fire until Start.
func NewScheduler(interval time.Duration, task func(), opts ...SchedulerOption) (*Scheduler, error) {
	if interval <= 0 {
		return nil, NewInvalidIntervalError(interval)
	}
	if task == nil {
		return nil, fmt.Errorf("scheduler task cannot be nil")
	}

	s := &Scheduler{
		interval: interval,
		task:     task,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		stopChan: make(chan struct{}),
		doneChan: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// ResetScheduler returns a scheduler that resets g every interval
func ResetScheduler(g *Gate, interval time.Duration, opts ...SchedulerOption) (*Scheduler, error) {
	return NewScheduler(interval, g.Reset, opts...)
}

// Start fires the task once and then begins the periodic loop.
// Calling Start more than once, or after Stop, does nothing.
func (s *Scheduler) Start() {
	s.mu.Lock()
	if s.state != stateIdle {
		s.mu.Unlock()
		return
	}
	s.state = stateRunning
	s.mu.Unlock()

	// Stop now waits on doneChan, so it cannot return before this firing
	s.fire()

	go func() {
		defer close(s.doneChan)
		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				// a stop racing with a tick wins
				select {
				case <-s.stopChan:
					return
				default:
				}
				s.fire()
			case <-s.stopChan:
				return
			}
		}
	}()
}

// Stop cancels all future firings and waits for the loop to exit, so no
// firing happens after it returns. Callers blocked on the gate are not woken.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	prev := s.state
	if prev != stateStopped {
		s.state = stateStopped
		close(s.stopChan)
	}
	s.mu.Unlock()

	if prev == stateRunning {
		<-s.doneChan
	}
}

// Firings returns how many times the task has completed
func (s *Scheduler) Firings() uint64 {
	return s.firings.Load()
}

func (s *Scheduler) Interval() time.Duration {
	return s.interval
}

// fire runs the task; a panic is logged and swallowed so later firings still happen
func (s *Scheduler) fire() {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("scheduled reset failed", "error", fmt.Errorf("panic: %v", r))
		}
	}()
	s.task()
	s.firings.Add(1)
}
