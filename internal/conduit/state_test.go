package conduit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"svw.info/powerline/internal/domain"
	"svw.info/powerline/internal/validator"
)

const (
	A = domain.Red
	B = domain.Blue
	C = domain.Green
)

func newState(maxCores int, conduits ...domain.Conduit) *State {
	s := New()
	s.Init(domain.Level{ID: 1, Name: "test", Conduits: conduits, MaxCores: maxCores, Difficulty: domain.Easy})
	return s
}

func TestCapacityScenario(t *testing.T) {
	s := newState(2, domain.Conduit{A, B}, domain.Conduit{B, A}, domain.Conduit{}, domain.Conduit{})

	require.True(t, s.Move(0, 2))
	assert.Equal(t, []domain.Conduit{{A}, {B, A}, {B}, {}}, s.Conduits())
	assert.Equal(t, 1, s.MoveCount())

	require.False(t, s.Move(1, 2), "top A must not land on B")
	require.True(t, s.Move(1, 0))
	assert.Equal(t, []domain.Conduit{{A, A}, {B}, {B}, {}}, s.Conduits())
	// every non-empty conduit is uniform, so this already counts as solved
	assert.True(t, validator.IsComplete(s.Conduits()))

	require.True(t, s.Move(2, 1))
	assert.Equal(t, []domain.Conduit{{A, A}, {B, B}, {}, {}}, s.Conduits())
	assert.True(t, validator.IsComplete(s.Conduits()))
	assert.Equal(t, 3, s.MoveCount())
}

func TestRejectedMoveLeavesStateUntouched(t *testing.T) {
	s := newState(2, domain.Conduit{A, A}, domain.Conduit{B}, domain.Conduit{})
	before := s.Conduits()

	for _, mv := range []domain.Move{{From: 0, To: 0}, {From: 2, To: 0}, {From: 1, To: 0}, {From: 0, To: 1}, {From: 0, To: 2}, {From: -1, To: 0}, {From: 0, To: 9}} {
		assert.False(t, s.Move(mv.From, mv.To), "move %v", mv)
	}
	assert.Equal(t, before, s.Conduits())
	assert.Equal(t, 0, s.MoveCount())
	assert.False(t, s.CanUndo())
	assert.Empty(t, s.History())
}

func TestAntiTrivialMove(t *testing.T) {
	s := newState(3, domain.Conduit{A, A, A}, domain.Conduit{}, domain.Conduit{B})
	assert.False(t, s.CanMove(0, 1))
	assert.False(t, s.Move(0, 1))
	assert.True(t, s.IsFull(0))
	assert.True(t, s.IsUniform(0))
	assert.True(t, s.IsEmpty(1))
}

func TestUndoRoundTrip(t *testing.T) {
	s := newState(3, domain.Conduit{A, B, C}, domain.Conduit{C, A, B}, domain.Conduit{}, domain.Conduit{})

	for from := 0; from < 4; from++ {
		for to := 0; to < 4; to++ {
			if !s.CanMove(from, to) {
				continue
			}
			before := s.Conduits()
			count := s.MoveCount()
			require.True(t, s.Move(from, to))
			require.True(t, s.Undo())
			assert.Equal(t, before, s.Conduits(), "move %d->%d", from, to)
			assert.Equal(t, count, s.MoveCount())
		}
	}
	assert.False(t, s.Undo(), "undo with empty history")
}

func TestUndoBypassesLegality(t *testing.T) {
	// undoing 2->0 moves a core out of a full uniform conduit into an empty one
	s := newState(2, domain.Conduit{A, B}, domain.Conduit{}, domain.Conduit{A})
	require.True(t, s.Move(0, 1))
	require.True(t, s.Move(2, 0))
	require.True(t, s.Undo())
	require.True(t, s.Undo())
	assert.Equal(t, []domain.Conduit{{A, B}, {}, {A}}, s.Conduits())
}

func TestRestart(t *testing.T) {
	s := newState(2, domain.Conduit{A, B}, domain.Conduit{B, A}, domain.Conduit{}, domain.Conduit{})
	initial := s.InitialLayout()

	require.True(t, s.Move(0, 2))
	require.True(t, s.Move(1, 0))
	require.True(t, s.Undo())
	require.True(t, s.Move(1, 3))

	s.Restart()
	assert.Equal(t, initial, s.Conduits())
	assert.Equal(t, 0, s.MoveCount())
	assert.False(t, s.CanUndo())

	s.Restart()
	assert.Equal(t, initial, s.Conduits())
}

func TestCapacityNeverExceeded(t *testing.T) {
	s := newState(3, domain.Conduit{A, B, A}, domain.Conduit{B, A, B}, domain.Conduit{}, domain.Conduit{})
	for i := 0; i < 200; i++ {
		from, to := i%4, (i*7+1)%4
		s.Move(from, to)
		if i%5 == 0 {
			s.Undo()
		}
		for _, c := range s.Conduits() {
			require.LessOrEqual(t, len(c), s.MaxCores())
		}
	}
}

func TestAccessorsReturnCopies(t *testing.T) {
	lvl := domain.Level{ID: 3, Conduits: []domain.Conduit{{A, B}, {}}, MaxCores: 2}
	s := New()
	s.Init(lvl)
	lvl.Conduits[0][0] = C

	got := s.Conduits()
	got[0][0] = C
	got[1] = append(got[1], C)

	assert.Equal(t, []domain.Conduit{{A, B}, {}}, s.Conduits())

	loaded, ok := s.Level()
	require.True(t, ok)
	loaded.Conduits[0][1] = C
	again, _ := s.Level()
	assert.Equal(t, B, again.Conduits[0][1])
}

func TestTopCore(t *testing.T) {
	s := newState(2, domain.Conduit{A, B}, domain.Conduit{})
	top, ok := s.TopCore(0)
	assert.True(t, ok)
	assert.Equal(t, B, top)
	_, ok = s.TopCore(1)
	assert.False(t, ok)
	_, ok = s.TopCore(5)
	assert.False(t, ok)
	assert.True(t, s.IsUniform(1), "empty conduit is uniform")
}
