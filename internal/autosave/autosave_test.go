package autosave

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu     sync.Mutex
	writes []string
}

func (r *recorder) write(v string) WriteFunc {
	return func() error {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.writes = append(r.writes, v)
		return nil
	}
}

func (r *recorder) snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.writes...)
}

func TestSchedule_CoalescesToLatest(t *testing.T) {
	rec := &recorder{}
	q := New(30 * time.Millisecond)

	for _, v := range []string{"a", "ab", "abc", "abcd"} {
		require.NoError(t, q.Schedule("2025-03-10", rec.write(v)))
	}
	assert.Equal(t, 1, q.Pending())

	require.Eventually(t, func() bool { return len(rec.snapshot()) == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, []string{"abcd"}, rec.snapshot())
	assert.Equal(t, 0, q.Pending())

	// no late duplicate write from a replaced timer
	time.Sleep(60 * time.Millisecond)
	assert.Len(t, rec.snapshot(), 1)
}

func TestSchedule_KeysAreIndependent(t *testing.T) {
	rec := &recorder{}
	q := New(20 * time.Millisecond)

	require.NoError(t, q.Schedule("2025-03-10", rec.write("mon")))
	require.NoError(t, q.Schedule("2025-03-11", rec.write("tue")))
	assert.True(t, q.IsPending("2025-03-10"))
	assert.True(t, q.IsPending("2025-03-11"))

	require.Eventually(t, func() bool { return len(rec.snapshot()) == 2 }, time.Second, 5*time.Millisecond)
	assert.ElementsMatch(t, []string{"mon", "tue"}, rec.snapshot())
}

func TestFlush_RunsImmediatelyInKeyOrder(t *testing.T) {
	rec := &recorder{}
	q := New(time.Hour)

	require.NoError(t, q.Schedule("b", rec.write("b1")))
	require.NoError(t, q.Schedule("a", rec.write("a1")))
	require.NoError(t, q.Schedule("b", rec.write("b2")))

	require.NoError(t, q.Flush())
	assert.Equal(t, []string{"a1", "b2"}, rec.snapshot())
	assert.Equal(t, 0, q.Pending())

	require.NoError(t, q.Flush())
	assert.Len(t, rec.snapshot(), 2)
}

func TestClose_FlushesAndRejects(t *testing.T) {
	rec := &recorder{}
	q := New(time.Hour)

	require.NoError(t, q.Schedule("a", rec.write("a")))
	require.NoError(t, q.Close())
	assert.Equal(t, []string{"a"}, rec.snapshot())

	err := q.Schedule("a", rec.write("late"))
	assert.ErrorIs(t, err, ErrClosed)
}

func TestClose_WaitsForRunningWrite(t *testing.T) {
	var started, finished atomic.Bool
	q := New(5 * time.Millisecond)

	require.NoError(t, q.Schedule("2025-03-10", func() error {
		started.Store(true)
		time.Sleep(100 * time.Millisecond)
		finished.Store(true)
		return nil
	}))
	require.Eventually(t, started.Load, time.Second, time.Millisecond)

	require.NoError(t, q.Close())
	assert.True(t, finished.Load(), "Close returned before the running write finished")
}

func TestDo_DropsPendingAndWaitsForRunningWrite(t *testing.T) {
	rec := &recorder{}
	var started atomic.Bool
	release := make(chan struct{})
	q := New(time.Hour)

	require.NoError(t, q.Schedule("a", func() error {
		started.Store(true)
		<-release
		return rec.write("slow")()
	}))
	flushed := make(chan error, 1)
	go func() { flushed <- q.Flush() }()
	require.Eventually(t, started.Load, time.Second, time.Millisecond)

	require.NoError(t, q.Schedule("b", rec.write("dropped")))
	done := make(chan error, 1)
	go func() { done <- q.Do("b", rec.write("now")) }()

	time.Sleep(20 * time.Millisecond)
	close(release)
	require.NoError(t, <-done)
	require.NoError(t, <-flushed)
	require.NoError(t, q.Flush())

	assert.Equal(t, []string{"slow", "now"}, rec.snapshot())
	assert.False(t, q.IsPending("b"))
}

func TestWriteErrorsAreReportedNotRetried(t *testing.T) {
	var calls atomic.Int32
	var reported atomic.Int32
	q := New(10*time.Millisecond, WithErrorHandler(func(key string, err error) {
		assert.Equal(t, "2025-03-10", key)
		reported.Add(1)
	}))

	require.NoError(t, q.Schedule("2025-03-10", func() error {
		calls.Add(1)
		return errors.New("disk full")
	}))

	require.Eventually(t, func() bool { return reported.Load() == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(40 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load())
}

func TestFlush_ReturnsJoinedErrors(t *testing.T) {
	q := New(time.Hour, WithErrorHandler(func(string, error) {}))
	boom := errors.New("boom")

	require.NoError(t, q.Schedule("a", func() error { return boom }))
	require.NoError(t, q.Schedule("b", func() error { return nil }))

	err := q.Flush()
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
}

func TestConcurrentSchedule(t *testing.T) {
	var calls atomic.Int32
	q := New(time.Hour)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = q.Schedule("shared", func() error {
				calls.Add(1)
				return nil
			})
		}()
	}
	wg.Wait()

	require.NoError(t, q.Flush())
	assert.Equal(t, int32(1), calls.Load())
}
