package editor

import (
	"bytes"
	"testing"
	"time"

	"TacticBoard/internal/anim"
	"TacticBoard/internal/config"
	"TacticBoard/internal/exchange"
	"TacticBoard/internal/logger"
	"TacticBoard/internal/playback"
	"TacticBoard/internal/state"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEditor(t *testing.T) (*Editor, *playback.ManualScheduler) {
	t.Helper()
	sched := playback.NewManualScheduler(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	e := New(config.Default(), sched, logger.Nop())
	t.Cleanup(e.Close)
	return e, sched
}

func TestAddKeyframeCreatesAnimation(t *testing.T) {
	e, _ := newEditor(t)
	e.Board().AddPlayer(state.Player{ID: "p1", X: 10})

	k := e.AddKeyframe()
	assert.Equal(t, 0.0, k.Time)

	a, ok := e.Library().Active()
	require.True(t, ok)
	assert.Equal(t, DefaultAnimationName, a.Name)
	assert.Equal(t, anim.DefaultDuration, a.Duration)
	assert.True(t, a.Loop)
	require.Len(t, a.Keyframes, 1)
	assert.Equal(t, "p1", a.Keyframes[0].Players[0].ID)
}

func TestAddKeyframeAtCursor(t *testing.T) {
	e, _ := newEditor(t)
	e.Board().AddPlayer(state.Player{ID: "p1", X: 0})
	e.AddKeyframe()

	e.Board().UpdatePlayer("p1", state.PlayerPatch{X: state.Ptr(100.0)})
	e.Clock().Seek(14)
	e.AddKeyframe()

	a, _ := e.Library().Active()
	require.Len(t, a.Keyframes, 2)
	assert.Equal(t, 14.0, a.Duration)

	e.Clock().Scrub(7)
	assert.InDelta(t, 50, e.Board().Players()[0].X, 1e-9)
}

func TestKeyframeCaptureIsIsolated(t *testing.T) {
	e, _ := newEditor(t)
	e.Board().AddPlayer(state.Player{ID: "p1", X: 5})
	e.AddKeyframe()
	e.Board().UpdatePlayer("p1", state.PlayerPatch{X: state.Ptr(80.0)})

	a, _ := e.Library().Active()
	assert.Equal(t, 5.0, a.Keyframes[0].Players[0].X)
}

func TestApplyKeyframe(t *testing.T) {
	e, _ := newEditor(t)
	e.Library().Add(anim.Animation{ID: "a", Duration: 10, Keyframes: []anim.Keyframe{
		{Time: 6, Players: []state.Player{{ID: "late"}}},
		{Time: 2, Players: []state.Player{{ID: "early"}}},
	}})
	past, _ := e.Board().HistoryDepth()

	require.True(t, e.ApplyKeyframe(1))
	assert.Equal(t, 6.0, e.Clock().Cursor())
	assert.Equal(t, "late", e.Board().Players()[0].ID)
	after, _ := e.Board().HistoryDepth()
	assert.Equal(t, past, after)

	assert.False(t, e.ApplyKeyframe(5))
}

func TestEditKeyframes(t *testing.T) {
	e, _ := newEditor(t)
	assert.False(t, e.UpdateKeyframeTime(0, 1))
	assert.False(t, e.RemoveKeyframe(0))

	e.Library().Add(anim.Animation{ID: "a", Duration: 8, Keyframes: []anim.Keyframe{{Time: 0}, {Time: 4}, {Time: 8}}})
	require.True(t, e.UpdateKeyframeTime(1, 12))
	a, _ := e.Library().Active()
	assert.Equal(t, 12.0, a.Duration)
	assert.Equal(t, 12.0, a.Keyframes[2].Time)

	require.True(t, e.RemoveKeyframe(0))
	a, _ = e.Library().Active()
	assert.Len(t, a.Keyframes, 2)
	assert.False(t, e.RemoveKeyframe(9))
}

func TestCreateAnimationOnlyOnce(t *testing.T) {
	e, _ := newEditor(t)
	_, ok := e.CreateAnimation()
	require.True(t, ok)
	_, ok = e.CreateAnimation()
	assert.False(t, ok)
	assert.Equal(t, 1, e.Library().Len())
}

func TestRotateBoardRotatesKeyframes(t *testing.T) {
	e, _ := newEditor(t)
	e.Board().AddPlayer(state.Player{ID: "p1", X: 100, Y: 200})
	e.AddKeyframe()

	e.RotateBoard(true)
	assert.Equal(t, 200.0, e.Board().Players()[0].X)
	a, _ := e.Library().Active()
	assert.Equal(t, 200.0, a.Keyframes[0].Players[0].X)
	assert.Equal(t, 950.0, a.Keyframes[0].Players[0].Y)

	require.True(t, e.Board().Undo())
	assert.Equal(t, 100.0, e.Board().Players()[0].X)
}

func TestLoadTactic(t *testing.T) {
	e, sched := newEditor(t)
	e.SeedDemo()
	require.True(t, e.Clock().Play())
	sched.Step(time.Second, 2)
	e.Board().AddShape(state.Shape{ID: "s", Type: state.ShapeLine, Points: []float64{0, 0, 1, 1}})

	other := anim.NewAnimation("Counter")
	e.LoadTactic(&exchange.Tactic{
		ID:         "t1",
		Players:    []state.Player{{ID: "q"}},
		Balls:      []state.Ball{{ID: "ball"}},
		Animations: []anim.Animation{other},
	})

	assert.Equal(t, playback.StateStopped, e.Clock().State())
	assert.Equal(t, 0.0, e.Clock().Cursor())
	assert.Zero(t, sched.Pending())
	assert.False(t, e.Board().CanUndo())
	assert.Equal(t, other.ID, e.Library().ActiveID())
	snap := e.Board().Snapshot()
	assert.Len(t, snap.Players, 1)
	assert.Len(t, snap.Balls, 1)
	assert.Empty(t, snap.Shapes)

	e.LoadTactic(nil)
	assert.Zero(t, e.Library().Len())
	assert.True(t, e.Board().Snapshot().Equal(state.Snapshot{}))
}

func TestCaptureTactic(t *testing.T) {
	e, _ := newEditor(t)
	e.SeedDemo()
	e.Board().AddBall(state.Ball{ID: "ball", X: 1})

	fresh := e.CaptureTactic(nil)
	assert.NotEmpty(t, fresh.ID)
	assert.Equal(t, DefaultTacticName, fresh.Name)
	assert.Len(t, fresh.Players, 2)
	assert.Len(t, fresh.Balls, 1)
	assert.Len(t, fresh.Animations, 1)

	created := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	kept := e.CaptureTactic(&exchange.Tactic{ID: "t9", Name: "Low block", CreatedAt: created})
	assert.Equal(t, "t9", kept.ID)
	assert.Equal(t, "Low block", kept.Name)
	assert.Equal(t, created, kept.CreatedAt)
}

func TestCapturedKeyframesEncodeEmptyArrays(t *testing.T) {
	e, _ := newEditor(t)
	e.Board().AddPlayer(state.Player{ID: "p1", X: 10})
	k := e.AddKeyframe()
	assert.NotNil(t, k.Shapes)

	a, ok := e.Library().Active()
	require.True(t, ok)
	require.Len(t, a.Keyframes, 1)
	assert.NotNil(t, a.Keyframes[0].Shapes)

	var buf bytes.Buffer
	require.NoError(t, exchange.Encode(&buf, exchange.NewTacticPayload(e.CaptureTactic(nil), time.Now())))
	assert.NotContains(t, buf.String(), "null")
	assert.Contains(t, buf.String(), `"shapes": []`)
}

func TestSeedDemo(t *testing.T) {
	e, sched := newEditor(t)
	require.True(t, e.SeedDemo())
	assert.False(t, e.SeedDemo())
	assert.Equal(t, anim.DemoID, e.Library().ActiveID())
	assert.Len(t, e.Board().Players(), 2)

	require.True(t, e.Clock().Play())
	sched.Step(time.Second, 4)
	p := e.Board().Players()
	require.Len(t, p, 2)
	assert.InDelta(t, 620, p[0].X, 1e-9)
	assert.InDelta(t, 300, p[1].X, 1e-9)
}

func TestPlaybackDoesNotPolluteUndo(t *testing.T) {
	e, sched := newEditor(t)
	e.SeedDemo()
	e.Board().AddBall(state.Ball{ID: "ball"})

	require.True(t, e.Clock().Play())
	sched.Step(500*time.Millisecond, 5)
	e.Clock().Pause()

	require.True(t, e.Board().Undo())
	assert.Empty(t, e.Board().Balls())
	assert.False(t, e.Board().Undo())
}
