package state

// PlayerPatch carries a partial player update; nil fields are left untouched.
type PlayerPatch struct {
	Number   *int
	Name     *string
	Position *Role
	Team     *Team
	Color    *string
	X        *float64
	Y        *float64
	Rotation *float64
}

func (p PlayerPatch) apply(pl Player) Player {
	if p.Number != nil {
		pl.Number = *p.Number
	}
	if p.Name != nil {
		pl.Name = *p.Name
	}
	if p.Position != nil {
		pl.Position = *p.Position
	}
	if p.Team != nil {
		pl.Team = *p.Team
	}
	if p.Color != nil {
		pl.Color = *p.Color
	}
	if p.X != nil {
		pl.X = *p.X
	}
	if p.Y != nil {
		pl.Y = *p.Y
	}
	if p.Rotation != nil {
		pl.Rotation = clonePtr(p.Rotation)
	}
	return pl
}

// BallPatch carries a partial ball update.
type BallPatch struct {
	X           *float64
	Y           *float64
	Radius      *float64
	Color       *string
	StrokeColor *string
}

func (p BallPatch) apply(b Ball) Ball {
	if p.X != nil {
		b.X = *p.X
	}
	if p.Y != nil {
		b.Y = *p.Y
	}
	if p.Radius != nil {
		b.Radius = *p.Radius
	}
	if p.Color != nil {
		b.Color = *p.Color
	}
	if p.StrokeColor != nil {
		b.StrokeColor = clonePtr(p.StrokeColor)
	}
	return b
}

// ShapePatch carries a partial shape update. A non-nil Points or Dash
// replaces the whole list.
type ShapePatch struct {
	Type          *ShapeType
	Points        []float64
	Color         *string
	StrokeWidth   *float64
	Dash          []float64
	PointerLength *float64
	PointerWidth  *float64
	HasArrow      *bool
	Fill          *string
	Opacity       *float64
	Text          *string
	FontSize      *float64
}

func (p ShapePatch) apply(s Shape) Shape {
	if p.Type != nil {
		s.Type = *p.Type
	}
	if p.Points != nil {
		s.Points = cloneFloats(p.Points)
	}
	if p.Color != nil {
		s.Color = *p.Color
	}
	if p.StrokeWidth != nil {
		s.StrokeWidth = *p.StrokeWidth
	}
	if p.Dash != nil {
		s.Dash = cloneFloats(p.Dash)
	}
	if p.PointerLength != nil {
		s.PointerLength = clonePtr(p.PointerLength)
	}
	if p.PointerWidth != nil {
		s.PointerWidth = clonePtr(p.PointerWidth)
	}
	if p.HasArrow != nil {
		s.HasArrow = clonePtr(p.HasArrow)
	}
	if p.Fill != nil {
		s.Fill = clonePtr(p.Fill)
	}
	if p.Opacity != nil {
		s.Opacity = clonePtr(p.Opacity)
	}
	if p.Text != nil {
		s.Text = clonePtr(p.Text)
	}
	if p.FontSize != nil {
		s.FontSize = clonePtr(p.FontSize)
	}
	return s
}
