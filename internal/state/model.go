package state

import "slices"

// Role is the tactical position tag shown on a player marker.
type Role string

const (
	RoleGoalkeeper Role = "GK"
	RoleDefender   Role = "DF"
	RoleMidfielder Role = "MF"
	RoleForward    Role = "FW"
)

// Team identifies which side a player belongs to.
type Team string

const (
	TeamHome Team = "home"
	TeamAway Team = "away"
)

// Player is a positioned player marker in board-space units.
type Player struct {
	ID       string   `json:"id"`
	Number   int      `json:"number"`
	Name     string   `json:"name"`
	Position Role     `json:"position"`
	Team     Team     `json:"team"`
	Color    string   `json:"color"`
	X        float64  `json:"x"`
	Y        float64  `json:"y"`
	Rotation *float64 `json:"rotation,omitempty"`
}

// RotationOrZero returns the rotation in degrees, treating a missing value as 0.
func (p Player) RotationOrZero() float64 {
	if p.Rotation == nil {
		return 0
	}
	return *p.Rotation
}

// Ball is the singleton ball marker.
type Ball struct {
	ID          string  `json:"id"`
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	Radius      float64 `json:"radius"`
	Color       string  `json:"color"`
	StrokeColor *string `json:"strokeColor,omitempty"`
}

// ShapeType tags how a shape's Points are interpreted.
type ShapeType string

const (
	ShapeArrow    ShapeType = "arrow"    // x1, y1, x2, y2
	ShapeLine     ShapeType = "line"     // x1, y1, x2, y2
	ShapeRect     ShapeType = "rect"     // x, y, width, height
	ShapeCircle   ShapeType = "circle"   // x, y, radius
	ShapeText     ShapeType = "text"     // x, y
	ShapeFreehand ShapeType = "freehand" // x1, y1, x2, y2, ...
)

// Shape is an annotation drawn on the board.
type Shape struct {
	ID            string    `json:"id"`
	Type          ShapeType `json:"type"`
	Points        []float64 `json:"points"`
	Color         string    `json:"color"`
	StrokeWidth   float64   `json:"strokeWidth"`
	Dash          []float64 `json:"dash,omitempty"`
	PointerLength *float64  `json:"pointerLength,omitempty"`
	PointerWidth  *float64  `json:"pointerWidth,omitempty"`
	HasArrow      *bool     `json:"hasArrow,omitempty"`
	Fill          *string   `json:"fill,omitempty"`
	Opacity       *float64  `json:"opacity,omitempty"`
	Text          *string   `json:"text,omitempty"`
	FontSize      *float64  `json:"fontSize,omitempty"`
}

// Snapshot is a copy of the board's three collections at one instant.
// Snapshots handed out by this package are never mutated afterwards.
type Snapshot struct {
	Players []Player `json:"players"`
	Balls   []Ball   `json:"balls"`
	Shapes  []Shape  `json:"shapes"`
}

// Clone returns a deep copy of the snapshot.
func (s Snapshot) Clone() Snapshot {
	return Snapshot{
		Players: ClonePlayers(s.Players),
		Balls:   CloneBalls(s.Balls),
		Shapes:  CloneShapes(s.Shapes),
	}
}

// Equal reports whether two snapshots hold the same values, in order.
// Nil and empty collections compare equal.
func (s Snapshot) Equal(other Snapshot) bool {
	return slices.EqualFunc(s.Players, other.Players, Player.Equal) &&
		slices.EqualFunc(s.Balls, other.Balls, Ball.Equal) &&
		slices.EqualFunc(s.Shapes, other.Shapes, Shape.Equal)
}

// Equal reports whether two players hold the same values.
func (p Player) Equal(o Player) bool {
	return p.ID == o.ID && p.Number == o.Number && p.Name == o.Name &&
		p.Position == o.Position && p.Team == o.Team && p.Color == o.Color &&
		p.X == o.X && p.Y == o.Y && ptrEqual(p.Rotation, o.Rotation)
}

// Equal reports whether two balls hold the same values.
func (b Ball) Equal(o Ball) bool {
	return b.ID == o.ID && b.X == o.X && b.Y == o.Y && b.Radius == o.Radius &&
		b.Color == o.Color && ptrEqual(b.StrokeColor, o.StrokeColor)
}

// Equal reports whether two shapes hold the same values.
func (s Shape) Equal(o Shape) bool {
	return s.ID == o.ID && s.Type == o.Type && s.Color == o.Color &&
		s.StrokeWidth == o.StrokeWidth &&
		slices.Equal(s.Points, o.Points) && slices.Equal(s.Dash, o.Dash) &&
		ptrEqual(s.PointerLength, o.PointerLength) &&
		ptrEqual(s.PointerWidth, o.PointerWidth) &&
		ptrEqual(s.HasArrow, o.HasArrow) &&
		ptrEqual(s.Fill, o.Fill) &&
		ptrEqual(s.Opacity, o.Opacity) &&
		ptrEqual(s.Text, o.Text) &&
		ptrEqual(s.FontSize, o.FontSize)
}

func ptrEqual[T comparable](a, b *T) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// Clone returns a deep copy of the player.
func (p Player) Clone() Player {
	p.Rotation = clonePtr(p.Rotation)
	return p
}

// Clone returns a deep copy of the ball.
func (b Ball) Clone() Ball {
	b.StrokeColor = clonePtr(b.StrokeColor)
	return b
}

// Clone returns a deep copy of the shape, including its coordinate list.
func (s Shape) Clone() Shape {
	s.Points = cloneFloats(s.Points)
	s.Dash = cloneFloats(s.Dash)
	s.PointerLength = clonePtr(s.PointerLength)
	s.PointerWidth = clonePtr(s.PointerWidth)
	s.HasArrow = clonePtr(s.HasArrow)
	s.Fill = clonePtr(s.Fill)
	s.Opacity = clonePtr(s.Opacity)
	s.Text = clonePtr(s.Text)
	s.FontSize = clonePtr(s.FontSize)
	return s
}

func ClonePlayers(players []Player) []Player {
	if players == nil {
		return nil
	}
	out := make([]Player, len(players))
	for i, p := range players {
		out[i] = p.Clone()
	}
	return out
}

func CloneBalls(balls []Ball) []Ball {
	if balls == nil {
		return nil
	}
	out := make([]Ball, len(balls))
	for i, b := range balls {
		out[i] = b.Clone()
	}
	return out
}

func CloneShapes(shapes []Shape) []Shape {
	if shapes == nil {
		return nil
	}
	out := make([]Shape, len(shapes))
	for i, s := range shapes {
		out[i] = s.Clone()
	}
	return out
}

func cloneFloats(v []float64) []float64 {
	if v == nil {
		return nil
	}
	out := make([]float64, len(v))
	copy(out, v)
	return out
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// Ptr returns a pointer to v, for filling optional fields.
func Ptr[T any](v T) *T {
	return &v
}

// OpType names a board command for history and change notifications.
type OpType string

const (
	OpAddPlayer    OpType = "add_player"
	OpUpdatePlayer OpType = "update_player"
	OpRemovePlayer OpType = "remove_player"
	OpSetPlayers   OpType = "set_players"
	OpAddBall      OpType = "add_ball"
	OpUpdateBall   OpType = "update_ball"
	OpRemoveBall   OpType = "remove_ball"
	OpAddShape     OpType = "add_shape"
	OpUpdateShape  OpType = "update_shape"
	OpRemoveShape  OpType = "remove_shape"
	OpRemoveObject OpType = "remove_selected"
	OpClearShapes  OpType = "clear_shapes"
	OpClearPlayers OpType = "clear_players"
	OpClearBoard   OpType = "clear_board"
	OpRotateBoard  OpType = "rotate_board"
	OpTeamColor    OpType = "team_color"
	OpUndo         OpType = "undo"
	OpRedo         OpType = "redo"
	OpFrame        OpType = "frame"
	OpLoad         OpType = "load"
	OpSelect       OpType = "select"
)
