package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRotatePoint(t *testing.T) {
	p := Point{X: 100, Y: 200}
	assert.Equal(t, Point{X: 200, Y: 950}, RotatePoint(p, true, BoardWidth))
	assert.Equal(t, Point{X: 850, Y: 100}, RotatePoint(p, false, BoardWidth))
}

func TestRotateRectKeepsBoundingBox(t *testing.T) {
	r := RotateRect(Rect{X: 100, Y: 200, Width: 50, Height: 20}, true, BoardWidth)
	assert.Equal(t, Rect{X: 200, Y: 900, Width: 20, Height: 50}, r)
}

func TestRotateShapes(t *testing.T) {
	shapes := []Shape{
		{ID: "r", Type: ShapeRect, Points: []float64{100, 200, 50, 20}},
		{ID: "c", Type: ShapeCircle, Points: []float64{100, 200, 30}},
		{ID: "f", Type: ShapeFreehand, Points: []float64{0, 0, 100, 200}},
		{ID: "odd", Type: ShapeFreehand, Points: []float64{1, 2, 3}},
	}
	got := RotateShapes(shapes, true, BoardWidth)
	require.Len(t, got, 4)
	assert.Equal(t, []float64{200, 900, 20, 50}, got[0].Points)
	assert.Equal(t, []float64{200, 950, 30}, got[1].Points)
	assert.Equal(t, []float64{0, 1050, 200, 950}, got[2].Points)
	assert.Equal(t, []float64{1, 2, 3}, got[3].Points)

	// inputs are not touched
	assert.Equal(t, []float64{100, 200, 50, 20}, shapes[0].Points)
}

func TestRotateFourTimesIsIdentity(t *testing.T) {
	players := []Player{{ID: "p1", X: 320, Y: 240}}
	for i := 0; i < 4; i++ {
		players = RotatePlayers(players, false, BoardWidth)
	}
	assert.Equal(t, 320.0, players[0].X)
	assert.Equal(t, 240.0, players[0].Y)
}

func TestBoardRotateIsUndoable(t *testing.T) {
	b := newTestBoard(t)
	b.AddPlayer(Player{ID: "p1", X: 100, Y: 200})
	b.AddBall(Ball{ID: "ball", X: 0, Y: 0})

	b.RotateBoard(true, BoardWidth)
	s := b.Snapshot()
	assert.Equal(t, 200.0, s.Players[0].X)
	assert.Equal(t, 950.0, s.Players[0].Y)
	assert.Equal(t, 1050.0, s.Balls[0].Y)

	require.True(t, b.Undo())
	assert.Equal(t, 100.0, b.Players()[0].X)
}

func TestBoundingBoxEmpty(t *testing.T) {
	assert.Equal(t, Rect{}, BoundingBox())
}
