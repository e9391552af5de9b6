package export

import (
	"bytes"
	"testing"

	"TacticBoard/internal/anim"
	"TacticBoard/internal/state"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteStoryboard(t *testing.T) {
	a, _ := anim.Demo()
	a = a.WithKeyframe(anim.Keyframe{
		Time:    6,
		Players: a.Keyframes[1].Players,
		Shapes: []state.Shape{
			{ID: "run", Type: state.ShapeArrow, Points: []float64{320, 240, 620, 260}, Color: "#ffd166", StrokeWidth: 3},
			{ID: "zone", Type: state.ShapeRect, Points: []float64{500, 100, 200, 150}, Color: "#fff", StrokeWidth: 2},
			{ID: "press", Type: state.ShapeCircle, Points: []float64{700, 400, 60}, Color: "#ef476f", StrokeWidth: 2},
			{ID: "label", Type: state.ShapeText, Points: []float64{100, 100}, Text: state.Ptr("Überlauf")},
		},
	})

	var buf bytes.Buffer
	require.NoError(t, WriteStoryboard(&buf, a, Options{Step: 0.5}))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
	assert.Greater(t, buf.Len(), 1000)
}

func TestWriteStoryboardEmptyAnimation(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteStoryboard(&buf, anim.Animation{ID: "empty"}, Options{}))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
}

func TestSampleTimes(t *testing.T) {
	assert.Equal(t, []float64{0, 2, 4, 6, 8}, SampleTimes(anim.Animation{Duration: 8}, 2))
	assert.Equal(t, []float64{0, 3, 6, 7}, SampleTimes(anim.Animation{Duration: 7}, 3))
	assert.Equal(t, []float64{0, anim.MinDuration}, SampleTimes(anim.Animation{}, 0))
}

func TestHexColor(t *testing.T) {
	r, g, b := hexColor("#e63946")
	assert.Equal(t, []int{230, 57, 70}, []int{r, g, b})
	r, g, b = hexColor("#fff")
	assert.Equal(t, []int{255, 255, 255}, []int{r, g, b})
	r, g, b = hexColor("teal")
	assert.Equal(t, []int{128, 128, 128}, []int{r, g, b})
}
