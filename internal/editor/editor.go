package editor

import (
	"math"
	"time"

	"TacticBoard/internal/anim"
	"TacticBoard/internal/config"
	"TacticBoard/internal/exchange"
	"TacticBoard/internal/playback"
	"TacticBoard/internal/state"

	"github.com/sirupsen/logrus"
)

const (
	DefaultAnimationName = "Default Animation"
	DefaultTacticName    = "Default Tactic"
)

// Editor owns one board, its animations and the playback clock driving them.
type Editor struct {
	cfg     config.Config
	board   *state.Board
	library *anim.Library
	clock   *playback.Clock
	now     func() time.Time
	log     logrus.FieldLogger
}

// New wires a board, library and clock together. Frames are scheduled on
// sched.
func New(cfg config.Config, sched playback.FrameScheduler, log logrus.FieldLogger) *Editor {
	cfg.Validate()
	board := state.NewBoard(cfg.History.Limit, log)
	library := anim.NewLibrary(log)
	clock := playback.NewClock(library, board, sched, log)
	clock.SetSpeed(cfg.Playback.Speed)

	return &Editor{
		cfg:     cfg,
		board:   board,
		library: library,
		clock:   clock,
		now:     time.Now,
		log:     log.WithField("component", "editor"),
	}
}

func (e *Editor) Board() *state.Board { return e.board }
func (e *Editor) Library() *anim.Library { return e.library }
func (e *Editor) Clock() *playback.Clock { return e.clock }
func (e *Editor) Config() config.Config { return e.cfg }

// AddKeyframe captures the board's players and shapes at the playback
// cursor into the active animation. With no animation yet, one is created
// around the new keyframe.
func (e *Editor) AddKeyframe() anim.Keyframe {
	k := anim.Keyframe{
		Time:    e.clock.Cursor(),
		Players: e.board.Players(),
		Shapes:  e.board.Shapes(),
	}
	if k.Players == nil {
		k.Players = []state.Player{}
	}
	if k.Shapes == nil {
		k.Shapes = []state.Shape{}
	}

	id := e.library.ActiveID()
	if id == "" || !e.library.Update(id, func(a anim.Animation) anim.Animation {
		return a.WithKeyframe(k)
	}) {
		a := anim.NewAnimation(DefaultAnimationName)
		a.Keyframes = []anim.Keyframe{k.Clone()}
		a.Duration = math.Max(anim.DefaultDuration, k.Time)
		e.library.Add(a)
		id = a.ID
	}

	e.log.WithFields(logrus.Fields{"animation": id, "time": k.Time, "players": len(k.Players)}).Debug("keyframe added")
	return k
}

// ApplyKeyframe moves the cursor to the i-th keyframe and writes it to the
// board as is. It is not undoable.
func (e *Editor) ApplyKeyframe(i int) bool {
	a, ok := e.library.Active()
	if !ok {
		return false
	}
	sorted := a.Sorted()
	if i < 0 || i >= len(sorted) {
		return false
	}
	k := sorted[i]
	e.clock.Seek(k.Time)
	e.board.ApplyFrame(k.Players, k.Shapes)
	return true
}

// UpdateKeyframeTime moves the i-th keyframe of the active animation.
func (e *Editor) UpdateKeyframeTime(i int, t float64) bool {
	return e.editActive(func(a anim.Animation) (anim.Animation, bool) {
		return a.WithKeyframeTime(i, t)
	})
}

// RemoveKeyframe deletes the i-th keyframe of the active animation.
func (e *Editor) RemoveKeyframe(i int) bool {
	return e.editActive(func(a anim.Animation) (anim.Animation, bool) {
		return a.WithoutKeyframe(i)
	})
}

func (e *Editor) editActive(edit func(anim.Animation) (anim.Animation, bool)) bool {
	id := e.library.ActiveID()
	if id == "" {
		return false
	}
	applied := false
	e.library.Update(id, func(a anim.Animation) anim.Animation {
		next, ok := edit(a)
		if !ok {
			return a
		}
		applied = true
		return next
	})
	return applied
}

// CreateAnimation adds an empty default animation when there is none.
func (e *Editor) CreateAnimation() (anim.Animation, bool) {
	if e.library.Len() > 0 {
		return anim.Animation{}, false
	}
	a := anim.NewAnimation(DefaultAnimationName)
	e.library.Add(a)
	return a, true
}

// RotateBoard turns the board and every keyframe of every animation by 90
// degrees. Only the board part is undoable.
func (e *Editor) RotateBoard(clockwise bool) {
	e.board.RotateBoard(clockwise, e.cfg.Board.Width)
	e.library.Rotate(clockwise, e.cfg.Board.Width)
}

// LoadTactic replaces the board and animations with t. A nil tactic clears
// both. Playback is rewound and history, selection and cursor are reset.
func (e *Editor) LoadTactic(t *exchange.Tactic) {
	e.clock.Reset()
	if t == nil {
		e.library.Set(nil)
		e.board.Load(state.Snapshot{})
		e.log.Info("tactic cleared")
		return
	}
	e.library.Set(t.Animations)
	e.board.Load(t.Snapshot())
	e.log.WithFields(logrus.Fields{"tactic": t.ID, "animations": len(t.Animations)}).Info("tactic loaded")
}

// CaptureTactic builds a tactic from the live board and animations. Identity
// and creation time come from fallback when given.
func (e *Editor) CaptureTactic(fallback *exchange.Tactic) exchange.Tactic {
	snap := e.board.Snapshot()
	t := exchange.Tactic{
		ID:         exchange.NewTacticID(),
		Name:       DefaultTacticName,
		Players:    snap.Players,
		Balls:      snap.Balls,
		Shapes:     snap.Shapes,
		Animations: e.library.All(),
		CreatedAt:  e.now().UTC(),
	}
	if fallback != nil {
		t.ID = fallback.ID
		t.Name = fallback.Name
		t.CreatedAt = fallback.CreatedAt
	}
	return t
}

// SeedDemo installs the demo animation and its starting players when the
// board and library are both empty.
func (e *Editor) SeedDemo() bool {
	if e.library.Len() > 0 || len(e.board.Players()) > 0 {
		return false
	}
	demo, players := anim.Demo()
	e.library.Add(demo)
	e.board.Load(state.Snapshot{Players: players, Balls: e.board.Balls()})
	return true
}

// Close stops playback for good.
func (e *Editor) Close() {
	e.clock.Close()
}
