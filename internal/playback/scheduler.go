package playback

import (
	"sync"
	"time"
)

// CancelFunc withdraws a frame request. Calling it after the frame ran, or
// more than once, does nothing.
type CancelFunc func()

// FrameScheduler runs one-shot callbacks on the next frame.
// Implementations run callbacks one at a time.
type FrameScheduler interface {
	Now() time.Time
	RequestFrame(fn func(now time.Time)) CancelFunc
}

// frameQueue holds pending one-shot callbacks keyed by request id.
type frameQueue struct {
	mu      sync.Mutex
	nextID  uint64
	pending map[uint64]func(time.Time)
	order   []uint64
}

func (q *frameQueue) add(fn func(time.Time)) CancelFunc {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.pending == nil {
		q.pending = make(map[uint64]func(time.Time))
	}
	q.nextID++
	id := q.nextID
	q.pending[id] = fn
	q.order = append(q.order, id)
	return func() {
		q.mu.Lock()
		defer q.mu.Unlock()
		delete(q.pending, id)
	}
}

// take removes and returns every pending callback in request order.
func (q *frameQueue) take() []func(time.Time) {
	q.mu.Lock()
	defer q.mu.Unlock()
	var fns []func(time.Time)
	for _, id := range q.order {
		if fn, ok := q.pending[id]; ok {
			fns = append(fns, fn)
			delete(q.pending, id)
		}
	}
	q.order = q.order[:0]
	return fns
}

func (q *frameQueue) len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// TickerScheduler fires pending frames from a single goroutine driven by a
// time.Ticker.
type TickerScheduler struct {
	queue    frameQueue
	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewTickerScheduler starts a scheduler at fps frames per second.
func NewTickerScheduler(fps int) *TickerScheduler {
	if fps <= 0 {
		fps = 60
	}
	s := &TickerScheduler{stopChan: make(chan struct{})}
	s.wg.Add(1)
	go s.loop(time.Second / time.Duration(fps))
	return s
}

func (s *TickerScheduler) loop(interval time.Duration) {
	defer s.wg.Done()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case now := <-ticker.C:
			for _, fn := range s.queue.take() {
				fn(now)
			}
		}
	}
}

func (s *TickerScheduler) Now() time.Time { return time.Now() }

func (s *TickerScheduler) RequestFrame(fn func(now time.Time)) CancelFunc {
	return s.queue.add(fn)
}

// Stop halts the loop and waits for a running frame to finish.
// It must not be called from inside a frame callback.
func (s *TickerScheduler) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopChan)
		s.wg.Wait()
	})
}

// ManualScheduler is a FrameScheduler on synthetic time. Frames only run
// when Advance is called.
type ManualScheduler struct {
	mu  sync.RWMutex
	now time.Time

	queue frameQueue
}

func NewManualScheduler(start time.Time) *ManualScheduler {
	return &ManualScheduler{now: start}
}

func (m *ManualScheduler) Now() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.now
}

func (m *ManualScheduler) RequestFrame(fn func(now time.Time)) CancelFunc {
	return m.queue.add(fn)
}

// Advance moves time forward by d and runs the frames pending at that point.
// Frames requested from inside a callback run on the next Advance.
func (m *ManualScheduler) Advance(d time.Duration) {
	m.mu.Lock()
	m.now = m.now.Add(d)
	now := m.now
	m.mu.Unlock()

	for _, fn := range m.queue.take() {
		fn(now)
	}
}

// Step calls Advance n times.
func (m *ManualScheduler) Step(d time.Duration, n int) {
	for i := 0; i < n; i++ {
		m.Advance(d)
	}
}

// Pending returns the number of frames waiting to run.
func (m *ManualScheduler) Pending() int {
	return m.queue.len()
}
