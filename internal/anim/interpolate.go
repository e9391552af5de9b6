package anim

import (
	"math"
	"slices"

	"TacticBoard/internal/state"
)

// minSpan floors the gap between two bracketing keyframes.
const minSpan = 0.001

// Frame is the player and shape state computed for one query time.
type Frame struct {
	Players []state.Player
	Shapes  []state.Shape
}

// FrameAt computes a's frame at time t.
func FrameAt(a Animation, t float64) Frame {
	return FrameAtKeyframes(a.Keyframes, t)
}

// FrameAtKeyframes computes the frame at time t from keyframes in any order.
//
// Times at or before the first keyframe return the first keyframe as is,
// and times at or after the last return the last. In between, players and
// shapes found in both bracketing keyframes are blended linearly; anything
// found on one side only passes through unchanged. The returned slices are
// owned by the caller.
func FrameAtKeyframes(kfs []Keyframe, t float64) Frame {
	sorted := SortKeyframes(kfs)
	if len(sorted) == 0 {
		return Frame{Players: []state.Player{}, Shapes: []state.Shape{}}
	}

	first, last := sorted[0], sorted[len(sorted)-1]
	if t <= first.Time {
		return frameOf(first)
	}
	if t >= last.Time {
		return frameOf(last)
	}

	next := slices.IndexFunc(sorted, func(k Keyframe) bool { return k.Time >= t })
	if next < 0 {
		// NaN compares false against every time.
		return frameOf(first)
	}
	prev := sorted[max(0, next-1)]
	end := sorted[next]

	span := math.Max(minSpan, end.Time-prev.Time)
	u := clamp01((t - prev.Time) / span)

	return Frame{
		Players: blend(prev.Players, end.Players, playerID, func(a, b state.Player) state.Player {
			return lerpPlayer(a, b, u)
		}),
		Shapes: blend(prev.Shapes, end.Shapes, shapeID, func(a, b state.Shape) state.Shape {
			return lerpShape(a, b, u)
		}),
	}
}

func frameOf(k Keyframe) Frame {
	return Frame{
		Players: orEmpty(state.ClonePlayers(k.Players)),
		Shapes:  orEmpty(state.CloneShapes(k.Shapes)),
	}
}

func playerID(p state.Player) string { return p.ID }
func shapeID(s state.Shape) string   { return s.ID }

// blend walks the union of ids from start then end, in first-seen order.
func blend[T interface{ Clone() T }](start, end []T, id func(T) string, mix func(a, b T) T) []T {
	ends := make(map[string]T, len(end))
	for _, e := range end {
		ends[id(e)] = e
	}
	starts := make(map[string]struct{}, len(start))

	out := make([]T, 0, len(start)+len(end))
	for _, s := range start {
		starts[id(s)] = struct{}{}
		if e, ok := ends[id(s)]; ok {
			out = append(out, mix(s, e))
		} else {
			out = append(out, s.Clone())
		}
	}
	for _, e := range end {
		if _, ok := starts[id(e)]; !ok {
			out = append(out, e.Clone())
		}
	}
	return out
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

func lerpPlayer(a, b state.Player, t float64) state.Player {
	p := a.Clone()
	p.X = lerp(a.X, b.X, t)
	p.Y = lerp(a.Y, b.Y, t)
	p.Rotation = state.Ptr(lerp(a.RotationOrZero(), b.RotationOrZero(), t))
	return p
}

// lerpShape blends coordinates when both shapes share a type and arity.
// Otherwise the start shape is returned unchanged.
func lerpShape(a, b state.Shape, t float64) state.Shape {
	s := a.Clone()
	if a.Type != b.Type || len(a.Points) != len(b.Points) {
		return s
	}
	for i := range s.Points {
		s.Points[i] = lerp(a.Points[i], b.Points[i], t)
	}
	return s
}

func clamp01(v float64) float64 {
	return math.Min(1, math.Max(0, v))
}

func orEmpty[T any](v []T) []T {
	if v == nil {
		return []T{}
	}
	return v
}
