package state

import (
	"sync"

	"github.com/sirupsen/logrus"
)

// Source tells observers where a board change came from.
type Source string

const (
	SourceEdit     Source = "edit"     // history-tracked command
	SourceHistory  Source = "history"  // undo or redo
	SourcePlayback Source = "playback" // animation frame, bypasses history
	SourceLoad     Source = "load"     // tactic switch, resets history
	SourceUI       Source = "ui"       // selection and other untracked changes
)

// Change describes one applied board change.
type Change struct {
	Op       OpType
	Revision uint64
	Source   Source
}

// Selection is derived UI state; it is not part of undo-tracked snapshots.
type Selection struct {
	ObjectID  string
	PlayerIDs []string
}

func (s Selection) clone() Selection {
	if s.PlayerIDs != nil {
		s.PlayerIDs = append([]string(nil), s.PlayerIDs...)
	}
	return s
}

// Mutation edits the live board in place. It runs under the board lock.
type Mutation func(live *Snapshot, sel *Selection)

// Board owns the live players, ball and shapes together with their undo
// history and the current selection.
type Board struct {
	mu        sync.RWMutex
	live      Snapshot
	selection Selection
	history   *History
	clock     Clock

	observers    map[int]func(Change)
	nextObserver int

	log logrus.FieldLogger
}

// NewBoard creates an empty board. historyLimit <= 0 keeps every snapshot.
func NewBoard(historyLimit int, log logrus.FieldLogger) *Board {
	return &Board{
		history:   NewHistory(historyLimit),
		observers: make(map[int]func(Change)),
		log:       log.WithField("component", "board"),
	}
}

// Subscribe registers fn for every applied change and returns a function
// that removes it. Observers run after the board lock is released.
func (b *Board) Subscribe(fn func(Change)) (unsubscribe func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	id := b.nextObserver
	b.nextObserver++
	b.observers[id] = fn
	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.observers, id)
	}
}

// Record snapshots the live state onto the undo stack, clears redo and then
// applies mutate. Every undoable command goes through here.
func (b *Board) Record(op OpType, mutate Mutation) {
	b.mu.Lock()
	b.history.Record(b.live.Clone())
	mutate(&b.live, &b.selection)
	change := b.commitLocked(op, SourceEdit)
	past, _ := b.history.Depth()
	b.mu.Unlock()

	b.log.WithFields(logrus.Fields{"op": op, "revision": change.Revision, "past": past}).Debug("recorded edit")
	b.notify(change)
}

// Undo restores the most recent past snapshot. It returns false when there
// is nothing to undo. Selection is cleared on success.
func (b *Board) Undo() bool {
	return b.travel(OpUndo, b.history.Undo)
}

// Redo restores the most recent future snapshot. It returns false when
// there is nothing to redo. Selection is cleared on success.
func (b *Board) Redo() bool {
	return b.travel(OpRedo, b.history.Redo)
}

func (b *Board) travel(op OpType, step func(Snapshot) (Snapshot, bool)) bool {
	b.mu.Lock()
	restored, ok := step(b.live)
	if !ok {
		b.mu.Unlock()
		b.log.WithField("op", op).Debug("history empty, ignoring")
		return false
	}
	b.live = restored
	b.selection = Selection{}
	change := b.commitLocked(op, SourceHistory)
	past, future := b.history.Depth()
	b.mu.Unlock()

	b.log.WithFields(logrus.Fields{"op": op, "past": past, "future": future}).Debug("history moved")
	b.notify(change)
	return true
}

// ApplyFrame writes an animation frame into the live players and shapes
// without touching history. The ball is left as it is.
func (b *Board) ApplyFrame(players []Player, shapes []Shape) {
	players = ClonePlayers(players)
	shapes = CloneShapes(shapes)

	b.mu.Lock()
	b.live.Players = players
	b.live.Shapes = shapes
	change := b.commitLocked(OpFrame, SourcePlayback)
	b.mu.Unlock()

	b.notify(change)
}

// Load replaces the whole live state, clears the selection and resets
// history. Used when switching session or tactic.
func (b *Board) Load(s Snapshot) {
	s = s.Clone()

	b.mu.Lock()
	b.live = s
	b.selection = Selection{}
	b.history.Reset()
	change := b.commitLocked(OpLoad, SourceLoad)
	b.mu.Unlock()

	b.log.WithFields(logrus.Fields{
		"players": len(s.Players),
		"balls":   len(s.Balls),
		"shapes":  len(s.Shapes),
	}).Info("board loaded")
	b.notify(change)
}

// ResetHistory drops both history stacks and keeps the live state.
func (b *Board) ResetHistory() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.history.Reset()
}

// update applies an untracked change, such as a selection change.
func (b *Board) update(op OpType, mutate Mutation) {
	b.mu.Lock()
	mutate(&b.live, &b.selection)
	change := b.commitLocked(op, SourceUI)
	b.mu.Unlock()

	b.notify(change)
}

func (b *Board) commitLocked(op OpType, src Source) Change {
	return Change{Op: op, Revision: b.clock.Tick(), Source: src}
}

func (b *Board) notify(change Change) {
	b.mu.RLock()
	fns := make([]func(Change), 0, len(b.observers))
	for _, fn := range b.observers {
		fns = append(fns, fn)
	}
	b.mu.RUnlock()

	for _, fn := range fns {
		fn(change)
	}
}

// Snapshot returns a copy of the live state.
func (b *Board) Snapshot() Snapshot {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.live.Clone()
}

// Players returns a copy of the live players.
func (b *Board) Players() []Player {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return ClonePlayers(b.live.Players)
}

// Balls returns a copy of the live balls (zero or one element).
func (b *Board) Balls() []Ball {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return CloneBalls(b.live.Balls)
}

// Shapes returns a copy of the live shapes.
func (b *Board) Shapes() []Shape {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return CloneShapes(b.live.Shapes)
}

// Selection returns a copy of the current selection.
func (b *Board) Selection() Selection {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.selection.clone()
}

// Revision returns the revision of the last applied change.
func (b *Board) Revision() uint64 {
	return b.clock.Current()
}

func (b *Board) CanUndo() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.history.CanUndo()
}

func (b *Board) CanRedo() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.history.CanRedo()
}

// HistoryDepth returns the sizes of the undo and redo stacks.
func (b *Board) HistoryDepth() (past, future int) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.history.Depth()
}
