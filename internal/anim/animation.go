package anim

import (
	"cmp"
	"math"
	"slices"

	"TacticBoard/internal/state"

	"github.com/google/uuid"
)

const (
	// DefaultDuration is the length of a freshly created animation, in seconds.
	DefaultDuration = 10.0
	// MinDuration floors the duration used for wrap and stop checks.
	MinDuration = 0.1
)

// Keyframe holds the complete player and shape state at one point in
// animation time. The ball is not part of a keyframe.
type Keyframe struct {
	Time    float64        `json:"time"`
	Players []state.Player `json:"players"`
	Shapes  []state.Shape  `json:"shapes"`
}

// Clone returns a deep copy of the keyframe.
func (k Keyframe) Clone() Keyframe {
	return Keyframe{
		Time:    k.Time,
		Players: state.ClonePlayers(k.Players),
		Shapes:  state.CloneShapes(k.Shapes),
	}
}

// Animation is an ordered set of keyframes with a duration and loop policy.
type Animation struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Keyframes []Keyframe `json:"keyframes"`
	Duration  float64    `json:"duration"`
	Loop      bool       `json:"loop"`
}

// NewAnimation returns an empty looping animation with a fresh id.
func NewAnimation(name string) Animation {
	return Animation{
		ID:        "animation-" + uuid.NewString(),
		Name:      name,
		Keyframes: []Keyframe{},
		Duration:  DefaultDuration,
		Loop:      true,
	}
}

// Clone returns a deep copy of the animation.
func (a Animation) Clone() Animation {
	if a.Keyframes != nil {
		kfs := make([]Keyframe, len(a.Keyframes))
		for i, k := range a.Keyframes {
			kfs[i] = k.Clone()
		}
		a.Keyframes = kfs
	}
	return a
}

// Sorted returns the keyframes in ascending time order.
func (a Animation) Sorted() []Keyframe {
	return SortKeyframes(a.Keyframes)
}

// EffectiveDuration is the duration used for the playback boundary.
func (a Animation) EffectiveDuration() float64 {
	return math.Max(MinDuration, a.Duration)
}

// SortKeyframes returns a copy of kfs ordered by time. Keyframes sharing a
// time keep their relative order.
func SortKeyframes(kfs []Keyframe) []Keyframe {
	if kfs == nil {
		return nil
	}
	out := slices.Clone(kfs)
	slices.SortStableFunc(out, func(a, b Keyframe) int {
		return cmp.Compare(a.Time, b.Time)
	})
	return out
}

// Duration returns the larger of fallback and the latest keyframe time.
func Duration(kfs []Keyframe, fallback float64) float64 {
	d := fallback
	for _, k := range kfs {
		d = math.Max(d, k.Time)
	}
	return d
}

// WithKeyframe returns a copy of a with k inserted in time order and the
// duration extended to cover it.
func (a Animation) WithKeyframe(k Keyframe) Animation {
	a = a.Clone()
	a.Keyframes = SortKeyframes(append(a.Keyframes, k.Clone()))
	a.Duration = Duration(a.Keyframes, a.Duration)
	return a
}

// WithKeyframeTime moves the i-th keyframe (in time order) to t and
// re-sorts. It reports false when i is out of range.
func (a Animation) WithKeyframeTime(i int, t float64) (Animation, bool) {
	a = a.Clone()
	sorted := SortKeyframes(a.Keyframes)
	if i < 0 || i >= len(sorted) {
		return a, false
	}
	sorted[i].Time = math.Max(0, t)
	a.Keyframes = SortKeyframes(sorted)
	a.Duration = Duration(a.Keyframes, a.Duration)
	return a, true
}

// WithoutKeyframe drops the i-th keyframe (in time order). The duration is
// never shortened.
func (a Animation) WithoutKeyframe(i int) (Animation, bool) {
	a = a.Clone()
	sorted := SortKeyframes(a.Keyframes)
	if i < 0 || i >= len(sorted) {
		return a, false
	}
	a.Keyframes = slices.Delete(sorted, i, i+1)
	a.Duration = Duration(a.Keyframes, a.Duration)
	return a, true
}

// Rotate turns every keyframe by 90 degrees about a board of the given width.
func (a Animation) Rotate(clockwise bool, width float64) Animation {
	a = a.Clone()
	for i, k := range a.Keyframes {
		a.Keyframes[i].Players = state.RotatePlayers(k.Players, clockwise, width)
		a.Keyframes[i].Shapes = state.RotateShapes(k.Shapes, clockwise, width)
	}
	return a
}
