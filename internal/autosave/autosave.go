// Package autosave coalesces rapid edits into a single delayed write per record.
//
// Each record is identified by a key (a date, a journal date, ...). Scheduling
// a write for a key that already has one pending replaces it and restarts the
// delay, so only the latest write runs once edits go quiet. Writes never run
// concurrently with each other.
package autosave

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/julianstephens/daycompass/internal/logger"
)

// ErrClosed is returned by Schedule after Close.
var ErrClosed = errors.New("autosave queue closed")

// WriteFunc persists one record.
type WriteFunc func() error

// Option configures a Queue.
type Option func(*Queue)

// WithErrorHandler replaces the default handler, which logs failed writes.
func WithErrorHandler(fn func(key string, err error)) Option {
	return func(q *Queue) {
		q.onError = fn
	}
}

type pendingWrite struct {
	fn    WriteFunc
	timer *time.Timer
	gen   uint64
}

// Queue is a keyed write-coalescing queue. It is safe for concurrent use.
type Queue struct {
	delay   time.Duration
	onError func(key string, err error)

	// mu protects pending, gen, closed and inflight
	mu       sync.Mutex
	pending  map[string]*pendingWrite
	gen      uint64
	closed   bool
	inflight int
	idle     *sync.Cond

	// writeMu serializes WriteFunc execution
	writeMu sync.Mutex
}

// New returns a queue that runs each write delay after its last Schedule.
func New(delay time.Duration, opts ...Option) *Queue {
	q := &Queue{
		delay:   delay,
		pending: make(map[string]*pendingWrite),
		onError: func(key string, err error) {
			logger.Error("Autosave failed", "key", key, "error", err)
		},
	}
	q.idle = sync.NewCond(&q.mu)
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// Schedule replaces any pending write for key with fn and restarts its timer.
func (q *Queue) Schedule(key string, fn WriteFunc) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return ErrClosed
	}

	if existing, ok := q.pending[key]; ok {
		existing.timer.Stop()
	}

	q.gen++
	gen := q.gen
	q.pending[key] = &pendingWrite{
		fn:    fn,
		gen:   gen,
		timer: time.AfterFunc(q.delay, func() { q.fire(key, gen) }),
	}
	return nil
}

// fire runs the pending write for key unless it was replaced or flushed meanwhile.
func (q *Queue) fire(key string, gen uint64) {
	q.mu.Lock()
	w, ok := q.pending[key]
	if !ok || w.gen != gen {
		q.mu.Unlock()
		return
	}
	delete(q.pending, key)
	q.inflight++
	q.mu.Unlock()

	defer func() {
		q.mu.Lock()
		q.inflight--
		if q.inflight == 0 {
			q.idle.Broadcast()
		}
		q.mu.Unlock()
	}()

	if err := q.run(w.fn); err != nil {
		q.onError(key, err)
	}
}

func (q *Queue) run(fn WriteFunc) error {
	q.writeMu.Lock()
	defer q.writeMu.Unlock()
	return fn()
}

// Pending reports how many keys have a write waiting.
func (q *Queue) Pending() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// IsPending reports whether key has a write waiting.
func (q *Queue) IsPending(key string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	_, ok := q.pending[key]
	return ok
}

// Do drops any pending write for key and runs fn now, after any write that is
// already running.
func (q *Queue) Do(key string, fn WriteFunc) error {
	q.mu.Lock()
	if w, ok := q.pending[key]; ok {
		w.timer.Stop()
		delete(q.pending, key)
	}
	q.mu.Unlock()
	return q.run(fn)
}

// Flush runs every pending write now, in key order, and returns their joined
// errors. It also waits for timer writes that were already running.
func (q *Queue) Flush() error {
	q.mu.Lock()
	keys := make([]string, 0, len(q.pending))
	writes := make(map[string]*pendingWrite, len(q.pending))
	for key, w := range q.pending {
		w.timer.Stop()
		keys = append(keys, key)
		writes[key] = w
	}
	q.pending = make(map[string]*pendingWrite)
	q.mu.Unlock()

	sort.Strings(keys)

	var errs []error
	for _, key := range keys {
		if err := q.run(writes[key].fn); err != nil {
			q.onError(key, err)
			errs = append(errs, fmt.Errorf("%s: %w", key, err))
		}
	}

	q.mu.Lock()
	for q.inflight > 0 {
		q.idle.Wait()
	}
	q.mu.Unlock()
	return errors.Join(errs...)
}

// Close flushes pending writes and rejects further scheduling.
func (q *Queue) Close() error {
	q.mu.Lock()
	q.closed = true
	q.mu.Unlock()
	return q.Flush()
}
