package anim

import "TacticBoard/internal/state"

// DemoID is the id of the seeded demo animation.
const DemoID = "animation-dev"

// Demo returns a two-player demo animation and the players it starts from.
func Demo() (Animation, []state.Player) {
	base := []state.Player{
		{ID: "player-dev-1", Number: 10, Name: "Demo", Position: state.RoleMidfielder, Team: state.TeamHome, Color: "#e63946", X: 320, Y: 240},
		{ID: "player-dev-2", Number: 7, Name: "Test", Position: state.RoleForward, Team: state.TeamAway, Color: "#457b9d", X: 520, Y: 360},
	}
	moved := func(x1, y1, x2, y2 float64) []state.Player {
		ps := state.ClonePlayers(base)
		ps[0].X, ps[0].Y = x1, y1
		ps[1].X, ps[1].Y = x2, y2
		return ps
	}

	a := Animation{
		ID:   DemoID,
		Name: "Demo Animation",
		Keyframes: []Keyframe{
			{Time: 0, Players: state.ClonePlayers(base), Shapes: []state.Shape{}},
			{Time: 4, Players: moved(620, 260, 300, 420), Shapes: []state.Shape{}},
			{Time: 8, Players: moved(780, 480, 440, 180), Shapes: []state.Shape{}},
		},
		Duration: 8,
		Loop:     true,
	}
	return a, base
}
