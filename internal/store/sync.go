package store

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/blackwell-systems/filmshelf/internal/catalog"
)

// SyncStatus reports the health of persistence. Failures here never fail
// a mutation; they only show up in this status.
type SyncStatus struct {
	// RemoteConfigured is true when an authenticated remote is attached.
	RemoteConfigured bool `json:"remote_configured"`
	// Source is where the film list came from at open: "remote" or "local".
	Source      string    `json:"source"`
	Pending     bool      `json:"pending"`
	LastAttempt time.Time `json:"last_attempt,omitempty"`
	LastSuccess time.Time `json:"last_success,omitempty"`
	LastError   string    `json:"last_error,omitempty"`
	// LocalError is the most recent local save failure, cleared by the
	// next successful save.
	LocalError string `json:"local_error,omitempty"`
}

// Healthy reports whether neither backend has an outstanding failure.
func (s SyncStatus) Healthy() bool {
	return s.LastError == "" && s.LocalError == ""
}

// syncer pushes film snapshots to the remote from one goroutine. Only the
// newest snapshot is kept, so a burst of mutations costs one upload.
type syncer struct {
	remote Remote
	logger *slog.Logger
	now    func() time.Time

	mu      sync.Mutex
	pending []catalog.Film
	dirty   bool
	busy    bool
	closed  bool
	status  SyncStatus

	wake    chan struct{}
	done    chan struct{}
	stopped chan struct{}
}

func newSyncer(remote Remote, logger *slog.Logger, now func() time.Time) *syncer {
	y := &syncer{
		remote:  remote,
		logger:  logger,
		now:     now,
		wake:    make(chan struct{}, 1),
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
	go y.run()
	return y
}

// push queues films for upload, replacing any snapshot not yet sent.
func (y *syncer) push(films []catalog.Film) {
	y.mu.Lock()
	if y.closed {
		y.mu.Unlock()
		return
	}
	y.pending = films
	y.dirty = true
	y.mu.Unlock()

	select {
	case y.wake <- struct{}{}:
	default:
	}
}

func (y *syncer) run() {
	defer close(y.stopped)
	for {
		select {
		case <-y.done:
			return
		case <-y.wake:
			y.drain()
		}
	}
}

func (y *syncer) drain() {
	for {
		y.mu.Lock()
		if !y.dirty {
			y.busy = false
			y.mu.Unlock()
			return
		}
		snap := y.pending
		y.pending = nil
		y.dirty = false
		y.busy = true
		y.mu.Unlock()

		start := y.now()
		err := y.remote.SaveAll(snap)

		y.mu.Lock()
		y.status.LastAttempt = start
		if err != nil {
			y.status.LastError = err.Error()
			y.logger.Warn("remote sync failed", "films", len(snap), "error", err)
		} else {
			y.status.LastError = ""
			y.status.LastSuccess = start
			y.logger.Debug("remote sync complete", "films", len(snap))
		}
		y.mu.Unlock()
	}
}

// recordFailure notes a remote failure that happened outside the worker,
// e.g. the initial load.
func (y *syncer) recordFailure(err error) {
	y.mu.Lock()
	y.status.LastAttempt = y.now()
	y.status.LastError = err.Error()
	y.mu.Unlock()
}

func (y *syncer) snapshot() SyncStatus {
	y.mu.Lock()
	defer y.mu.Unlock()
	st := y.status
	st.Pending = y.dirty || y.busy
	return st
}

// flush waits until every queued snapshot has been attempted.
func (y *syncer) flush(ctx context.Context) error {
	ticker := time.NewTicker(5 * time.Millisecond)
	defer ticker.Stop()
	for {
		y.mu.Lock()
		idle := !y.dirty && !y.busy
		y.mu.Unlock()
		if idle {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// close flushes, then stops the worker. Later pushes are dropped.
func (y *syncer) close(ctx context.Context) error {
	err := y.flush(ctx)

	y.mu.Lock()
	if y.closed {
		y.mu.Unlock()
		return err
	}
	y.closed = true
	y.mu.Unlock()

	close(y.done)
	select {
	case <-y.stopped:
	case <-ctx.Done():
		if err == nil {
			err = ctx.Err()
		}
	}
	return err
}
