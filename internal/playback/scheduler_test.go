package playback

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManualSchedulerRunsOnce(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	m := NewManualScheduler(start)

	var got []time.Time
	m.RequestFrame(func(now time.Time) { got = append(got, now) })
	assert.Equal(t, 1, m.Pending())

	m.Advance(16 * time.Millisecond)
	m.Advance(16 * time.Millisecond)
	require.Len(t, got, 1)
	assert.Equal(t, start.Add(16*time.Millisecond), got[0])
	assert.Equal(t, start.Add(32*time.Millisecond), m.Now())
}

func TestManualSchedulerCancel(t *testing.T) {
	m := NewManualScheduler(time.Unix(0, 0))
	ran := false
	cancel := m.RequestFrame(func(time.Time) { ran = true })
	cancel()
	cancel()
	m.Advance(time.Second)
	assert.False(t, ran)
	assert.Zero(t, m.Pending())
}

func TestManualSchedulerRequestsFromCallback(t *testing.T) {
	m := NewManualScheduler(time.Unix(0, 0))
	calls := 0
	var frame func(time.Time)
	frame = func(time.Time) {
		calls++
		m.RequestFrame(frame)
	}
	m.RequestFrame(frame)

	m.Advance(time.Millisecond)
	assert.Equal(t, 1, calls)
	m.Step(time.Millisecond, 3)
	assert.Equal(t, 4, calls)
}

func TestTickerSchedulerFires(t *testing.T) {
	s := NewTickerScheduler(200)
	defer s.Stop()

	done := make(chan time.Time, 1)
	s.RequestFrame(func(now time.Time) { done <- now })

	select {
	case now := <-done:
		assert.False(t, now.IsZero())
	case <-time.After(2 * time.Second):
		t.Fatal("frame never ran")
	}
}

func TestTickerSchedulerCancel(t *testing.T) {
	s := NewTickerScheduler(200)
	defer s.Stop()

	var ran atomic.Bool
	cancel := s.RequestFrame(func(time.Time) { ran.Store(true) })
	cancel()

	done := make(chan struct{})
	s.RequestFrame(func(time.Time) { close(done) })
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("frame never ran")
	}
	assert.False(t, ran.Load())
}

func TestTickerSchedulerStopIdempotent(t *testing.T) {
	s := NewTickerScheduler(0)
	s.Stop()
	s.Stop()
}
