package anim

import (
	"testing"

	"TacticBoard/internal/logger"
	"TacticBoard/internal/state"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLibraryActiveDefaultsToFirst(t *testing.T) {
	l := NewLibrary(logger.Nop())
	_, ok := l.Active()
	assert.False(t, ok)

	l.Add(Animation{ID: "a"})
	l.Add(Animation{ID: "b"})
	assert.Equal(t, "a", l.ActiveID())

	require.True(t, l.SetActive("b"))
	assert.Equal(t, "b", l.ActiveID())
	assert.False(t, l.SetActive("zzz"))
}

func TestLibraryRemoveActive(t *testing.T) {
	l := NewLibrary(logger.Nop())
	l.Add(Animation{ID: "a"})
	l.Add(Animation{ID: "b"})

	var changes []LibraryChange
	l.Subscribe(func(c LibraryChange) { changes = append(changes, c) })

	require.True(t, l.Remove("a"))
	assert.Equal(t, "b", l.ActiveID())
	require.True(t, l.Remove("b"))
	assert.Empty(t, l.ActiveID())
	assert.False(t, l.Remove("b"))

	require.Len(t, changes, 2)
	assert.True(t, changes[0].ActiveChanged())
	assert.Equal(t, EventRemoved, changes[1].Event)
}

func TestLibraryUpdate(t *testing.T) {
	l := NewLibrary(logger.Nop())
	l.Add(NewAnimation("x"))
	id := l.ActiveID()

	ok := l.Update(id, func(a Animation) Animation {
		a.ID = "renamed"
		return a.WithKeyframe(Keyframe{Time: 12})
	})
	require.True(t, ok)

	a, ok := l.Get(id)
	require.True(t, ok)
	assert.Equal(t, 12.0, a.Duration)
	assert.False(t, l.Update("missing", func(a Animation) Animation { return a }))
}

func TestLibrarySetAndRotate(t *testing.T) {
	l := NewLibrary(logger.Nop())
	l.Add(Animation{ID: "old"})

	var last LibraryChange
	l.Subscribe(func(c LibraryChange) { last = c })

	l.Set([]Animation{
		{ID: "n1", Keyframes: []Keyframe{{Players: []state.Player{{ID: "p", X: 0, Y: 0}}}}},
		{ID: "n2"},
	})
	assert.Equal(t, EventReplaced, last.Event)
	assert.True(t, last.ActiveChanged())
	assert.Equal(t, "n1", l.ActiveID())
	assert.Equal(t, 2, l.Len())

	l.Rotate(true, state.BoardWidth)
	a, _ := l.Get("n1")
	assert.Equal(t, 1050.0, a.Keyframes[0].Players[0].Y)
	assert.False(t, last.ActiveChanged())
}

func TestLibraryReturnsCopies(t *testing.T) {
	l := NewLibrary(logger.Nop())
	l.Add(Animation{ID: "a", Keyframes: []Keyframe{{Time: 1}}})

	all := l.All()
	all[0].Keyframes[0].Time = 5
	a, _ := l.Active()
	assert.Equal(t, 1.0, a.Keyframes[0].Time)
}
