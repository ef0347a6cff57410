// Package conduit holds the live puzzle state for one play session and is the
// only place stacks are mutated.
package conduit

import (
	"svw.info/powerline/internal/domain"
	"svw.info/powerline/internal/validator"
)

// State is the mutable puzzle state. It is not safe for concurrent use.
type State struct {
	level    *domain.Level
	conduits []domain.Conduit
	initial  []domain.Conduit
	maxCores int
	history  []domain.Move
	moves    int
}

func New() *State { return &State{} }

// Init replaces the whole state with a fresh copy of the level layout.
func (s *State) Init(level domain.Level) {
	lvl := level.Clone()
	s.level = &lvl
	s.maxCores = lvl.MaxCores
	s.conduits = domain.CloneConduits(lvl.Conduits)
	s.initial = domain.CloneConduits(lvl.Conduits)
	s.history = nil
	s.moves = 0
}

// Level returns a copy of the loaded level.
func (s *State) Level() (domain.Level, bool) {
	if s.level == nil {
		return domain.Level{}, false
	}
	return s.level.Clone(), true
}

// Conduits returns a deep copy of the live stacks.
func (s *State) Conduits() []domain.Conduit {
	return domain.CloneConduits(s.conduits)
}

// InitialLayout returns a deep copy of the layout Restart returns to.
func (s *State) InitialLayout() []domain.Conduit {
	return domain.CloneConduits(s.initial)
}

func (s *State) MaxCores() int { return s.maxCores }

func (s *State) MoveCount() int { return s.moves }

func (s *State) CanUndo() bool { return len(s.history) > 0 }

// History returns the executed moves, oldest first.
func (s *State) History() []domain.Move {
	out := make([]domain.Move, len(s.history))
	copy(out, s.history)
	return out
}

func (s *State) valid(i int) bool { return i >= 0 && i < len(s.conduits) }

// TopCore returns the topmost core of conduit i.
func (s *State) TopCore(i int) (domain.Color, bool) {
	if !s.valid(i) {
		return "", false
	}
	return s.conduits[i].Top()
}

// IsFull, IsEmpty and IsUniform report false for indices outside the layout.
func (s *State) IsFull(i int) bool {
	return s.valid(i) && len(s.conduits[i]) >= s.maxCores
}

func (s *State) IsEmpty(i int) bool {
	return s.valid(i) && len(s.conduits[i]) == 0
}

func (s *State) IsUniform(i int) bool {
	return s.valid(i) && s.conduits[i].Uniform()
}

// CanMove reports whether the top core of from may be moved onto to.
func (s *State) CanMove(from, to int) bool {
	return validator.CanMove(s.conduits, s.maxCores, from, to)
}

// Move transfers one core and records it. Illegal moves change nothing.
func (s *State) Move(from, to int) bool {
	if !s.CanMove(from, to) {
		return false
	}
	src := s.conduits[from]
	core := src[len(src)-1]
	s.conduits[from] = src[:len(src)-1]
	s.conduits[to] = append(s.conduits[to], core)
	s.history = append(s.history, domain.Move{From: from, To: to})
	s.moves++
	return true
}

// Undo reverses the most recent move. The reverse transfer skips the
// legality rules since it restores a position that already existed.
func (s *State) Undo() bool {
	if len(s.history) == 0 {
		return false
	}
	last := s.history[len(s.history)-1]
	dst := s.conduits[last.To]
	if len(dst) == 0 {
		return false
	}
	core := dst[len(dst)-1]
	s.conduits[last.To] = dst[:len(dst)-1]
	s.conduits[last.From] = append(s.conduits[last.From], core)
	s.history = s.history[:len(s.history)-1]
	s.moves--
	return true
}

// Restart returns to the initial layout and clears history.
func (s *State) Restart() {
	s.conduits = domain.CloneConduits(s.initial)
	s.history = nil
	s.moves = 0
}
