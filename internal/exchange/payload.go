package exchange

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"
	"time"

	"TacticBoard/internal/anim"
	"TacticBoard/internal/state"

	"github.com/google/uuid"
)

var (
	// ErrUnknownPayload is returned for a payload type other than session,
	// tactic or backup.
	ErrUnknownPayload = errors.New("unknown payload type")
	// ErrEmptyPayload is returned when the body named by the type is missing.
	ErrEmptyPayload = errors.New("payload has no content")
)

// PayloadType tags what an export file carries.
type PayloadType string

const (
	TypeSession PayloadType = "session"
	TypeTactic  PayloadType = "tactic"
	TypeBackup  PayloadType = "backup"
)

// Tactic is one board setup with its animations.
type Tactic struct {
	ID         string           `json:"id"`
	Name       string           `json:"name"`
	Players    []state.Player   `json:"players"`
	Balls      []state.Ball     `json:"balls"`
	Shapes     []state.Shape    `json:"shapes"`
	Animations []anim.Animation `json:"animations"`
	CreatedAt  time.Time        `json:"createdAt"`
}

// Snapshot returns the tactic's board state.
func (t Tactic) Snapshot() state.Snapshot {
	return state.Snapshot{
		Players: state.ClonePlayers(t.Players),
		Balls:   state.CloneBalls(t.Balls),
		Shapes:  state.CloneShapes(t.Shapes),
	}
}

// Session groups tactics under one name.
type Session struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	Tactics     []Tactic  `json:"tactics"`
	Thumbnail   string    `json:"thumbnail,omitempty"`
}

// Payload is the envelope written to and read from export files.
type Payload struct {
	Type       PayloadType `json:"type"`
	ExportedAt time.Time   `json:"exportedAt"`
	Session    *Session    `json:"session,omitempty"`
	Tactic     *Tactic     `json:"tactic,omitempty"`
	Sessions   []Session   `json:"sessions,omitempty"`
}

func NewSessionPayload(s Session, now time.Time) Payload {
	s = normalizeSession(s)
	return Payload{Type: TypeSession, ExportedAt: now.UTC(), Session: &s}
}

func NewTacticPayload(t Tactic, now time.Time) Payload {
	t = normalizeTactic(t)
	return Payload{Type: TypeTactic, ExportedAt: now.UTC(), Tactic: &t}
}

func NewBackupPayload(sessions []Session, now time.Time) Payload {
	out := make([]Session, len(sessions))
	for i, s := range sessions {
		out[i] = normalizeSession(s)
	}
	return Payload{Type: TypeBackup, ExportedAt: now.UTC(), Sessions: out}
}

// Encode writes p as indented JSON.
func Encode(w io.Writer, p Payload) error {
	if err := p.check(); err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(p); err != nil {
		return fmt.Errorf("encode %s payload: %w", p.Type, err)
	}
	return nil
}

// Decode reads a payload. Missing collections come back empty; no other
// validation is done.
func Decode(r io.Reader) (Payload, error) {
	var p Payload
	if err := json.NewDecoder(r).Decode(&p); err != nil {
		return Payload{}, fmt.Errorf("decode payload: %w", err)
	}
	if err := p.check(); err != nil {
		return Payload{}, err
	}

	switch p.Type {
	case TypeSession:
		s := normalizeSession(*p.Session)
		p.Session = &s
	case TypeTactic:
		t := normalizeTactic(*p.Tactic)
		p.Tactic = &t
	case TypeBackup:
		for i := range p.Sessions {
			p.Sessions[i] = normalizeSession(p.Sessions[i])
		}
	}
	return p, nil
}

func (p Payload) check() error {
	switch p.Type {
	case TypeSession:
		if p.Session == nil {
			return fmt.Errorf("%s: %w", p.Type, ErrEmptyPayload)
		}
	case TypeTactic:
		if p.Tactic == nil {
			return fmt.Errorf("%s: %w", p.Type, ErrEmptyPayload)
		}
	case TypeBackup:
		if len(p.Sessions) == 0 {
			return fmt.Errorf("%s: %w", p.Type, ErrEmptyPayload)
		}
	default:
		return fmt.Errorf("%q: %w", p.Type, ErrUnknownPayload)
	}
	return nil
}

// PrimaryTactic picks the tactic to open after importing p: the tactic
// itself, the session's first tactic, or the first tactic of the most
// recently updated backup session.
func (p Payload) PrimaryTactic() (Tactic, bool) {
	switch p.Type {
	case TypeTactic:
		if p.Tactic != nil {
			return *p.Tactic, true
		}
	case TypeSession:
		if p.Session != nil && len(p.Session.Tactics) > 0 {
			return p.Session.Tactics[0], true
		}
	case TypeBackup:
		if len(p.Sessions) == 0 {
			return Tactic{}, false
		}
		latest := slices.MaxFunc(p.Sessions, func(a, b Session) int {
			return a.UpdatedAt.Compare(b.UpdatedAt)
		})
		if len(latest.Tactics) > 0 {
			return latest.Tactics[0], true
		}
	}
	return Tactic{}, false
}

// NormalizeImported gives s and its tactics fresh ids where they collide
// with sessionIDs or tacticIDs, and records the ids it keeps in both sets.
func NormalizeImported(s Session, sessionIDs, tacticIDs map[string]struct{}) Session {
	s = normalizeSession(s)
	if _, taken := sessionIDs[s.ID]; taken || s.ID == "" {
		s.ID = NewSessionID()
	}
	sessionIDs[s.ID] = struct{}{}

	tactics := make([]Tactic, len(s.Tactics))
	for i, t := range s.Tactics {
		if _, taken := tacticIDs[t.ID]; taken || t.ID == "" {
			t.ID = NewTacticID()
		}
		tacticIDs[t.ID] = struct{}{}
		tactics[i] = t
	}
	s.Tactics = tactics
	return s
}

func NewSessionID() string { return "session-" + uuid.NewString() }
func NewTacticID() string  { return "tactic-" + uuid.NewString() }

func normalizeSession(s Session) Session {
	s.Tactics = slices.Clone(orEmpty(s.Tactics))
	for i := range s.Tactics {
		s.Tactics[i] = normalizeTactic(s.Tactics[i])
	}
	return s
}

func normalizeTactic(t Tactic) Tactic {
	t.Players = orEmpty(t.Players)
	t.Balls = orEmpty(t.Balls)
	t.Shapes = normalizeShapes(t.Shapes)
	t.Animations = slices.Clone(orEmpty(t.Animations))
	for i, a := range t.Animations {
		a.Keyframes = slices.Clone(orEmpty(a.Keyframes))
		for j, k := range a.Keyframes {
			k.Players = orEmpty(k.Players)
			k.Shapes = normalizeShapes(k.Shapes)
			a.Keyframes[j] = k
		}
		t.Animations[i] = a
	}
	return t
}

// normalizeShapes returns a non-nil copy of shapes whose point lists are
// all non-nil.
func normalizeShapes(shapes []state.Shape) []state.Shape {
	out := slices.Clone(orEmpty(shapes))
	for i := range out {
		out[i].Points = orEmpty(out[i].Points)
	}
	return out
}

func orEmpty[T any](v []T) []T {
	if v == nil {
		return []T{}
	}
	return v
}
