package anim

import (
	"slices"
	"sync"

	"github.com/sirupsen/logrus"
)

// LibraryEvent names what changed in a Library.
type LibraryEvent string

const (
	EventAdded    LibraryEvent = "added"
	EventUpdated  LibraryEvent = "updated"
	EventRemoved  LibraryEvent = "removed"
	EventActive   LibraryEvent = "active"
	EventReplaced LibraryEvent = "replaced"
)

// LibraryChange is delivered to library observers.
type LibraryChange struct {
	Event LibraryEvent
	// ID is the animation the event is about; empty for EventReplaced.
	ID string
	// ActiveID and PreviousActiveID differ when the active animation moved.
	ActiveID         string
	PreviousActiveID string
}

// ActiveChanged reports whether the change switched the active animation.
func (c LibraryChange) ActiveChanged() bool {
	return c.ActiveID != c.PreviousActiveID
}

// Library is the ordered collection of animations for the current tactic
// together with the active one.
type Library struct {
	mu         sync.RWMutex
	animations []Animation
	activeID   string

	observers    map[int]func(LibraryChange)
	nextObserver int

	log logrus.FieldLogger
}

func NewLibrary(log logrus.FieldLogger) *Library {
	return &Library{
		observers: make(map[int]func(LibraryChange)),
		log:       log.WithField("component", "library"),
	}
}

// Subscribe registers fn for every library change. Observers run after the
// library lock is released.
func (l *Library) Subscribe(fn func(LibraryChange)) (unsubscribe func()) {
	l.mu.Lock()
	defer l.mu.Unlock()
	id := l.nextObserver
	l.nextObserver++
	l.observers[id] = fn
	return func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		delete(l.observers, id)
	}
}

// Add appends a. The first animation added becomes active.
func (l *Library) Add(a Animation) {
	a = a.Clone()
	l.mu.Lock()
	prev := l.activeID
	l.animations = append(l.animations, a)
	if l.activeID == "" {
		l.activeID = a.ID
	}
	change := LibraryChange{Event: EventAdded, ID: a.ID, ActiveID: l.activeID, PreviousActiveID: prev}
	l.mu.Unlock()

	l.log.WithFields(logrus.Fields{"id": a.ID, "keyframes": len(a.Keyframes)}).Debug("animation added")
	l.notify(change)
}

// Update replaces the animation with the given id by fn's result.
// It reports false when no such animation exists.
func (l *Library) Update(id string, fn func(Animation) Animation) bool {
	l.mu.Lock()
	i := l.indexLocked(id)
	if i < 0 {
		l.mu.Unlock()
		return false
	}
	next := fn(l.animations[i].Clone())
	next.ID = id
	l.animations[i] = next
	change := LibraryChange{Event: EventUpdated, ID: id, ActiveID: l.activeID, PreviousActiveID: l.activeID}
	l.mu.Unlock()

	l.notify(change)
	return true
}

// Remove deletes the animation. Removing the active animation makes the
// first remaining one active.
func (l *Library) Remove(id string) bool {
	l.mu.Lock()
	i := l.indexLocked(id)
	if i < 0 {
		l.mu.Unlock()
		return false
	}
	prev := l.activeID
	l.animations = slices.Delete(l.animations, i, i+1)
	if l.activeID == id {
		l.activeID = l.firstIDLocked()
	}
	change := LibraryChange{Event: EventRemoved, ID: id, ActiveID: l.activeID, PreviousActiveID: prev}
	l.mu.Unlock()

	l.log.WithField("id", id).Debug("animation removed")
	l.notify(change)
	return true
}

// SetActive makes id the active animation.
func (l *Library) SetActive(id string) bool {
	l.mu.Lock()
	if l.indexLocked(id) < 0 {
		l.mu.Unlock()
		return false
	}
	prev := l.activeID
	l.activeID = id
	change := LibraryChange{Event: EventActive, ID: id, ActiveID: id, PreviousActiveID: prev}
	l.mu.Unlock()

	l.notify(change)
	return true
}

// Set replaces every animation. The first one becomes active.
func (l *Library) Set(animations []Animation) {
	cloned := make([]Animation, len(animations))
	for i, a := range animations {
		cloned[i] = a.Clone()
	}

	l.mu.Lock()
	prev := l.activeID
	l.animations = cloned
	l.activeID = l.firstIDLocked()
	change := LibraryChange{Event: EventReplaced, ActiveID: l.activeID, PreviousActiveID: prev}
	l.mu.Unlock()

	l.log.WithField("animations", len(cloned)).Debug("library replaced")
	l.notify(change)
}

// Rotate turns the keyframes of every animation by 90 degrees.
func (l *Library) Rotate(clockwise bool, width float64) {
	l.mu.Lock()
	if len(l.animations) == 0 {
		l.mu.Unlock()
		return
	}
	for i, a := range l.animations {
		l.animations[i] = a.Rotate(clockwise, width)
	}
	change := LibraryChange{Event: EventReplaced, ActiveID: l.activeID, PreviousActiveID: l.activeID}
	l.mu.Unlock()

	l.notify(change)
}

// Active returns a copy of the active animation.
func (l *Library) Active() (Animation, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	i := l.indexLocked(l.activeID)
	if i < 0 {
		return Animation{}, false
	}
	return l.animations[i].Clone(), true
}

// ActiveID returns the id of the active animation, or "" when empty.
func (l *Library) ActiveID() string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.activeID
}

// Get returns a copy of the animation with the given id.
func (l *Library) Get(id string) (Animation, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	i := l.indexLocked(id)
	if i < 0 {
		return Animation{}, false
	}
	return l.animations[i].Clone(), true
}

// All returns copies of every animation in order.
func (l *Library) All() []Animation {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]Animation, len(l.animations))
	for i, a := range l.animations {
		out[i] = a.Clone()
	}
	return out
}

func (l *Library) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.animations)
}

func (l *Library) indexLocked(id string) int {
	if id == "" {
		return -1
	}
	return slices.IndexFunc(l.animations, func(a Animation) bool { return a.ID == id })
}

func (l *Library) firstIDLocked() string {
	if len(l.animations) == 0 {
		return ""
	}
	return l.animations[0].ID
}

func (l *Library) notify(change LibraryChange) {
	l.mu.RLock()
	fns := make([]func(LibraryChange), 0, len(l.observers))
	for _, fn := range l.observers {
		fns = append(fns, fn)
	}
	l.mu.RUnlock()

	for _, fn := range fns {
		fn(change)
	}
}
