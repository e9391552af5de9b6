package playback

import (
	"math"
	"sync"
	"time"

	"TacticBoard/internal/anim"
	"TacticBoard/internal/state"

	"github.com/sirupsen/logrus"
)

const (
	MinSpeed = 0.1
	MaxSpeed = 3.0
)

// State is the playback state of a Clock.
type State string

const (
	StateStopped State = "stopped"
	StatePlaying State = "playing"
	// StatePaused behaves like stopped but keeps the cursor where it was.
	StatePaused State = "paused"
)

// FrameSink receives computed frames. Writes through it are not undoable.
type FrameSink interface {
	ApplyFrame(players []state.Player, shapes []state.Shape)
}

// Animations is the source of the animation being played.
type Animations interface {
	Active() (anim.Animation, bool)
	Subscribe(fn func(anim.LibraryChange)) (unsubscribe func())
}

// Clock advances a time cursor through the active animation and pushes each
// frame into a FrameSink. At most one frame request is outstanding at a time.
//
// Frames reach the sink through a single queue drained outside every clock
// lock, so sink observers may call back into the clock. A command issued
// from inside ApplyFrame has its frame applied once that call returns.
type Clock struct {
	mu sync.Mutex

	writeMu  sync.Mutex
	writes   []frameWrite
	draining bool

	anims Animations
	sink  FrameSink
	sched FrameScheduler

	state  State
	cursor float64
	speed  float64
	last   time.Time

	cancel CancelFunc
	token  uint64
	closed bool

	unsubscribe func()
	log         logrus.FieldLogger
}

// NewClock creates a stopped clock at time 0 and speed 1. Switching or
// removing the active animation in anims cancels playback.
func NewClock(anims Animations, sink FrameSink, sched FrameScheduler, log logrus.FieldLogger) *Clock {
	c := &Clock{
		anims: anims,
		sink:  sink,
		sched: sched,
		state: StateStopped,
		speed: 1,
		log:   log.WithField("component", "playback"),
	}
	c.unsubscribe = anims.Subscribe(c.onLibraryChange)
	return c
}

// Play starts the frame loop. It returns false when there is no animation,
// when already playing or after Close.
func (c *Clock) Play() bool {
	a, ok := c.anims.Active()

	c.mu.Lock()
	if c.closed || !ok || c.state == StatePlaying {
		st := c.state
		c.mu.Unlock()
		c.log.WithFields(logrus.Fields{"state": st, "animation": ok}).Debug("play ignored")
		return false
	}
	if !a.Loop && c.cursor >= a.EffectiveDuration() {
		c.cursor = 0
	}
	c.state = StatePlaying
	c.last = c.sched.Now()
	c.token++
	c.cancel = c.sched.RequestFrame(c.tickFunc(c.token))
	cursor := c.cursor
	c.mu.Unlock()

	c.log.WithFields(logrus.Fields{"animation": a.ID, "cursor": cursor}).Info("playback started")
	return true
}

// Pause cancels the frame loop and keeps the cursor.
func (c *Clock) Pause() {
	c.mu.Lock()
	if c.state != StatePlaying {
		c.mu.Unlock()
		return
	}
	c.haltLocked(StatePaused)
	cursor := c.cursor
	c.mu.Unlock()

	c.log.WithField("cursor", cursor).Info("playback paused")
}

// Stop cancels the frame loop, rewinds to 0 and applies the first keyframe.
// Without an active animation it does nothing.
func (c *Clock) Stop() {
	a, ok := c.anims.Active()
	if !ok {
		return
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.haltLocked(StateStopped)
	c.cursor = 0
	c.mu.Unlock()

	// first keyframe, or an empty frame when there are none
	c.write(frameWrite{frame: anim.FrameAt(a, math.Inf(-1))})
	c.log.Info("playback stopped")
}

// Scrub moves the cursor to t and applies the frame there. The play state
// is unchanged. Negative times are treated as 0.
func (c *Clock) Scrub(t float64) {
	t = math.Max(0, t)
	a, ok := c.anims.Active()

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.cursor = t
	c.mu.Unlock()

	if !ok {
		return
	}
	c.write(frameWrite{frame: anim.FrameAt(a, t)})
}

// Reset cancels the frame loop and rewinds to 0 without applying a frame.
func (c *Clock) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.haltLocked(StateStopped)
	c.cursor = 0
}

// Seek moves the cursor without applying a frame.
func (c *Clock) Seek(t float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cursor = math.Max(0, t)
}

// SetSpeed sets the playback rate, clamped to [MinSpeed, MaxSpeed].
// A running loop picks it up on the next frame.
func (c *Clock) SetSpeed(speed float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.speed = ClampSpeed(speed)
}

func (c *Clock) Speed() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.speed
}

func (c *Clock) Cursor() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cursor
}

func (c *Clock) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Close cancels any outstanding frame and detaches from the animation
// source. The clock cannot be played again.
func (c *Clock) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.haltLocked(StateStopped)
	unsubscribe := c.unsubscribe
	c.mu.Unlock()

	unsubscribe()
	c.log.Debug("playback closed")
}

// ClampSpeed limits speed to [MinSpeed, MaxSpeed]. NaN becomes 1.
func ClampSpeed(speed float64) float64 {
	if math.IsNaN(speed) {
		return 1
	}
	return math.Min(MaxSpeed, math.Max(MinSpeed, speed))
}

func (c *Clock) onLibraryChange(change anim.LibraryChange) {
	if !change.ActiveChanged() {
		return
	}
	c.mu.Lock()
	wasPlaying := c.state == StatePlaying
	c.haltLocked(StateStopped)
	c.cursor = 0
	c.mu.Unlock()

	if wasPlaying {
		c.log.WithFields(logrus.Fields{
			"from": change.PreviousActiveID,
			"to":   change.ActiveID,
		}).Info("active animation changed, playback cancelled")
	}
}

// haltLocked cancels the outstanding frame and invalidates its token.
func (c *Clock) haltLocked(next State) {
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
	c.token++
	c.state = next
}

func (c *Clock) tickFunc(token uint64) func(time.Time) {
	return func(now time.Time) {
		c.tick(token, now)
	}
}

func (c *Clock) tick(token uint64, now time.Time) {
	a, ok := c.anims.Active()

	c.mu.Lock()
	if token != c.token || c.state != StatePlaying {
		c.mu.Unlock()
		return
	}
	if !ok {
		c.haltLocked(StateStopped)
		c.mu.Unlock()
		c.log.Info("active animation gone, playback stopped")
		return
	}

	delta := math.Max(0, now.Sub(c.last).Seconds())
	c.last = now
	next := c.cursor + delta*c.speed

	ended := false
	if d := a.EffectiveDuration(); next >= d {
		if a.Loop {
			next = 0
		} else {
			next = d
			ended = true
		}
	}
	c.cursor = next

	if ended {
		c.haltLocked(StateStopped)
	} else {
		c.cancel = c.sched.RequestFrame(c.tickFunc(token))
	}
	// the final frame must survive the halt above
	token = c.token
	c.mu.Unlock()

	c.write(frameWrite{frame: anim.FrameAt(a, next), token: token, tick: true})

	if ended {
		c.log.WithField("cursor", next).Info("playback reached the end")
	}
}

// frameWrite is one queued sink write. Tick writes are dropped when the
// clock has been halted or restarted since they were computed.
type frameWrite struct {
	frame anim.Frame
	token uint64
	tick  bool
}

// write queues w and drains the queue unless a drain is already running,
// possibly further up this goroutine's stack.
func (c *Clock) write(w frameWrite) {
	c.writeMu.Lock()
	c.writes = append(c.writes, w)
	if c.draining {
		c.writeMu.Unlock()
		return
	}
	c.draining = true
	c.writeMu.Unlock()

	for {
		c.writeMu.Lock()
		if len(c.writes) == 0 {
			c.writes = nil
			c.draining = false
			c.writeMu.Unlock()
			return
		}
		next := c.writes[0]
		c.writes = c.writes[1:]
		c.writeMu.Unlock()

		if next.tick && !c.current(next.token) {
			continue
		}
		c.sink.ApplyFrame(next.frame.Players, next.frame.Shapes)
	}
}

func (c *Clock) current(token uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return token == c.token
}
