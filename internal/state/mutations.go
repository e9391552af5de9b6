package state

import (
	"slices"

	"github.com/sirupsen/logrus"
)

// AddPlayer appends a player.
func (b *Board) AddPlayer(p Player) {
	p = p.Clone()
	b.Record(OpAddPlayer, func(live *Snapshot, _ *Selection) {
		live.Players = append(slices.Clip(live.Players), p)
	})
}

// UpdatePlayer applies patch to the player with the given id.
func (b *Board) UpdatePlayer(id string, patch PlayerPatch) {
	b.Record(OpUpdatePlayer, func(live *Snapshot, _ *Selection) {
		live.Players = mapByID(live.Players, id, func(p Player) string { return p.ID }, patch.apply)
	})
}

// RemovePlayer removes the player and drops it from the selection.
func (b *Board) RemovePlayer(id string) {
	b.Record(OpRemovePlayer, func(live *Snapshot, sel *Selection) {
		live.Players = withoutID(live.Players, id, func(p Player) string { return p.ID })
		sel.PlayerIDs = withoutString(sel.PlayerIDs, id)
		if sel.ObjectID == id {
			sel.ObjectID = ""
		}
	})
}

// SetPlayersWithHistory replaces every player as one undoable edit.
func (b *Board) SetPlayersWithHistory(players []Player) {
	players = ClonePlayers(players)
	b.Record(OpSetPlayers, func(live *Snapshot, _ *Selection) {
		live.Players = players
	})
}

// AddBall places the ball, replacing any existing one, and selects it.
func (b *Board) AddBall(ball Ball) {
	ball = ball.Clone()
	b.Record(OpAddBall, func(live *Snapshot, sel *Selection) {
		live.Balls = []Ball{ball}
		sel.ObjectID = ball.ID
	})
}

// UpdateBall applies patch to the ball with the given id.
func (b *Board) UpdateBall(id string, patch BallPatch) {
	b.Record(OpUpdateBall, func(live *Snapshot, _ *Selection) {
		live.Balls = mapByID(live.Balls, id, func(b Ball) string { return b.ID }, patch.apply)
	})
}

// RemoveBall removes the ball with the given id.
func (b *Board) RemoveBall(id string) {
	b.Record(OpRemoveBall, func(live *Snapshot, _ *Selection) {
		live.Balls = withoutID(live.Balls, id, func(b Ball) string { return b.ID })
	})
}

// AddShape appends a shape.
func (b *Board) AddShape(s Shape) {
	s = s.Clone()
	b.Record(OpAddShape, func(live *Snapshot, _ *Selection) {
		live.Shapes = append(slices.Clip(live.Shapes), s)
	})
}

// UpdateShape applies patch to the shape with the given id.
func (b *Board) UpdateShape(id string, patch ShapePatch) {
	b.Record(OpUpdateShape, func(live *Snapshot, _ *Selection) {
		live.Shapes = mapByID(live.Shapes, id, func(s Shape) string { return s.ID }, patch.apply)
	})
}

// RemoveShape removes the shape with the given id.
func (b *Board) RemoveShape(id string) {
	b.Record(OpRemoveShape, func(live *Snapshot, _ *Selection) {
		live.Shapes = withoutID(live.Shapes, id, func(s Shape) string { return s.ID })
	})
}

// RemoveSelectedObject removes the selected object from whichever
// collection holds it. A stale selection (id no longer on the board) is
// cleared without recording history. It reports whether anything was removed.
func (b *Board) RemoveSelectedObject() bool {
	b.mu.Lock()
	id := b.selection.ObjectID
	if id == "" {
		b.mu.Unlock()
		return false
	}

	isPlayer := slices.ContainsFunc(b.live.Players, func(p Player) bool { return p.ID == id })
	isBall := slices.ContainsFunc(b.live.Balls, func(x Ball) bool { return x.ID == id })
	isShape := slices.ContainsFunc(b.live.Shapes, func(s Shape) bool { return s.ID == id })

	if !isPlayer && !isBall && !isShape {
		b.selection.ObjectID = ""
		change := b.commitLocked(OpSelect, SourceUI)
		b.mu.Unlock()
		b.log.WithField("id", id).Debug("stale selection cleared")
		b.notify(change)
		return false
	}

	b.history.Record(b.live.Clone())
	if isPlayer {
		b.live.Players = withoutID(b.live.Players, id, func(p Player) string { return p.ID })
		b.selection.PlayerIDs = withoutString(b.selection.PlayerIDs, id)
	}
	if isBall {
		b.live.Balls = withoutID(b.live.Balls, id, func(x Ball) string { return x.ID })
	}
	if isShape {
		b.live.Shapes = withoutID(b.live.Shapes, id, func(s Shape) string { return s.ID })
	}
	b.selection.ObjectID = ""
	change := b.commitLocked(OpRemoveObject, SourceEdit)
	b.mu.Unlock()

	b.log.WithFields(logrus.Fields{"id": id, "revision": change.Revision}).Debug("removed selected object")
	b.notify(change)
	return true
}

// ClearShapes removes every shape.
func (b *Board) ClearShapes() {
	b.Record(OpClearShapes, func(live *Snapshot, sel *Selection) {
		live.Shapes = nil
		sel.ObjectID = ""
	})
}

// ClearPlayers removes every player.
func (b *Board) ClearPlayers() {
	b.Record(OpClearPlayers, func(live *Snapshot, sel *Selection) {
		live.Players = nil
		*sel = Selection{}
	})
}

// ClearBoard removes every player and shape. The ball stays.
func (b *Board) ClearBoard() {
	b.Record(OpClearBoard, func(live *Snapshot, sel *Selection) {
		live.Players = nil
		live.Shapes = nil
		*sel = Selection{}
	})
}

// RotateBoard turns players, ball and shapes by 90 degrees about a board of
// the given width.
func (b *Board) RotateBoard(clockwise bool, width float64) {
	b.Record(OpRotateBoard, func(live *Snapshot, _ *Selection) {
		live.Players = RotatePlayers(live.Players, clockwise, width)
		live.Balls = RotateBalls(live.Balls, clockwise, width)
		live.Shapes = RotateShapes(live.Shapes, clockwise, width)
	})
}

// SetTeamColor recolours every player of team. This is not undoable.
func (b *Board) SetTeamColor(team Team, color string) {
	b.update(OpTeamColor, func(live *Snapshot, _ *Selection) {
		players := ClonePlayers(live.Players)
		for i := range players {
			if players[i].Team == team {
				players[i].Color = color
			}
		}
		live.Players = players
	})
}

// SetSelectedObject selects a single object by id; "" clears it.
func (b *Board) SetSelectedObject(id string) {
	b.update(OpSelect, func(_ *Snapshot, sel *Selection) {
		sel.ObjectID = id
	})
}

// SetSelectedPlayers replaces the player multi-selection. The last id
// becomes the selected object.
func (b *Board) SetSelectedPlayers(ids []string) {
	ids = append([]string(nil), ids...)
	b.update(OpSelect, func(_ *Snapshot, sel *Selection) {
		sel.PlayerIDs = ids
		sel.ObjectID = lastOrEmpty(ids)
	})
}

// ToggleSelectedPlayer adds or removes id from the player multi-selection.
func (b *Board) ToggleSelectedPlayer(id string) {
	b.update(OpSelect, func(_ *Snapshot, sel *Selection) {
		if slices.Contains(sel.PlayerIDs, id) {
			sel.PlayerIDs = withoutString(sel.PlayerIDs, id)
		} else {
			sel.PlayerIDs = append(slices.Clip(sel.PlayerIDs), id)
		}
		sel.ObjectID = lastOrEmpty(sel.PlayerIDs)
	})
}

// ClearSelection drops both the selected object and the player selection.
func (b *Board) ClearSelection() {
	b.update(OpSelect, func(_ *Snapshot, sel *Selection) {
		*sel = Selection{}
	})
}

func mapByID[T any](items []T, id string, key func(T) string, fn func(T) T) []T {
	out := make([]T, len(items))
	for i, it := range items {
		if key(it) == id {
			it = fn(it)
		}
		out[i] = it
	}
	return out
}

func withoutID[T any](items []T, id string, key func(T) string) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if key(it) != id {
			out = append(out, it)
		}
	}
	return out
}

func withoutString(ids []string, id string) []string {
	if len(ids) == 0 {
		return ids
	}
	return withoutID(ids, id, func(s string) string { return s })
}

func lastOrEmpty(ids []string) string {
	if len(ids) == 0 {
		return ""
	}
	return ids[len(ids)-1]
}
