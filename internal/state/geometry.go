package state

import "math"

// BoardWidth is the logical width of the pitch in board units.
const BoardWidth = 1050.0

// BoardHeight is the logical height of the pitch in board units.
const BoardHeight = 680.0

// Point is a position in board units.
type Point struct {
	X float64
	Y float64
}

// Rect is an axis-aligned area in board units.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// RotatePoint turns p by 90 degrees about a board of the given width.
func RotatePoint(p Point, clockwise bool, width float64) Point {
	if clockwise {
		return Point{X: p.Y, Y: width - p.X}
	}
	return Point{X: width - p.Y, Y: p.X}
}

// BoundingBox returns the smallest rect holding every point.
func BoundingBox(points ...Point) Rect {
	if len(points) == 0 {
		return Rect{}
	}
	minX, minY := points[0].X, points[0].Y
	maxX, maxY := points[0].X, points[0].Y
	for _, p := range points[1:] {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// RotateRect rotates the four corners of r and returns their bounding box.
func RotateRect(r Rect, clockwise bool, width float64) Rect {
	corners := []Point{
		{X: r.X, Y: r.Y},
		{X: r.X + r.Width, Y: r.Y},
		{X: r.X + r.Width, Y: r.Y + r.Height},
		{X: r.X, Y: r.Y + r.Height},
	}
	for i, c := range corners {
		corners[i] = RotatePoint(c, clockwise, width)
	}
	return BoundingBox(corners...)
}

// RotatePlayers returns rotated copies of players.
func RotatePlayers(players []Player, clockwise bool, width float64) []Player {
	if players == nil {
		return nil
	}
	out := make([]Player, len(players))
	for i, p := range players {
		p = p.Clone()
		r := RotatePoint(Point{X: p.X, Y: p.Y}, clockwise, width)
		p.X, p.Y = r.X, r.Y
		out[i] = p
	}
	return out
}

// RotateBalls returns rotated copies of balls.
func RotateBalls(balls []Ball, clockwise bool, width float64) []Ball {
	if balls == nil {
		return nil
	}
	out := make([]Ball, len(balls))
	for i, b := range balls {
		b = b.Clone()
		r := RotatePoint(Point{X: b.X, Y: b.Y}, clockwise, width)
		b.X, b.Y = r.X, r.Y
		out[i] = b
	}
	return out
}

// RotateShapes returns rotated copies of shapes.
func RotateShapes(shapes []Shape, clockwise bool, width float64) []Shape {
	if shapes == nil {
		return nil
	}
	out := make([]Shape, len(shapes))
	for i, s := range shapes {
		s = s.Clone()
		s.Points = rotateShapePoints(s.Type, s.Points, clockwise, width)
		out[i] = s
	}
	return out
}

// rotateShapePoints rotates a shape's coordinates. Rects keep an
// axis-aligned box, circles keep their radius and odd-length lists that are
// neither are returned unchanged.
func rotateShapePoints(t ShapeType, pts []float64, clockwise bool, width float64) []float64 {
	switch {
	case t == ShapeRect && len(pts) == 4:
		r := RotateRect(Rect{X: pts[0], Y: pts[1], Width: pts[2], Height: pts[3]}, clockwise, width)
		return []float64{r.X, r.Y, r.Width, r.Height}
	case t == ShapeCircle && len(pts) == 3:
		c := RotatePoint(Point{X: pts[0], Y: pts[1]}, clockwise, width)
		return []float64{c.X, c.Y, pts[2]}
	case len(pts)%2 == 0:
		out := make([]float64, len(pts))
		for i := 0; i < len(pts); i += 2 {
			p := RotatePoint(Point{X: pts[i], Y: pts[i+1]}, clockwise, width)
			out[i], out[i+1] = p.X, p.Y
		}
		return out
	default:
		return pts
	}
}
