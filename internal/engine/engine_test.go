package engine

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"svw.info/powerline/internal/catalog"
	"svw.info/powerline/internal/domain"
	"svw.info/powerline/internal/ports"
)

const (
	A = domain.Red
	B = domain.Blue
)

// fixedCatalog serves hand-built levels for tests.
type fixedCatalog []domain.Level

func (c fixedCatalog) Level(id int) (domain.Level, bool) {
	for _, l := range c {
		if l.ID == id {
			return l.Clone(), true
		}
	}
	return domain.Level{}, false
}

func (c fixedCatalog) Total() int { return len(c) }

func (c fixedCatalog) List() []domain.LevelMeta {
	out := make([]domain.LevelMeta, len(c))
	for i, l := range c {
		out[i] = l.Meta()
	}
	return out
}

func testCatalog() fixedCatalog {
	return fixedCatalog{
		{ID: 1, Name: "pairs", Conduits: []domain.Conduit{{A, B}, {B, A}, {}, {}}, MaxCores: 2, Difficulty: domain.Easy},
		{ID: 2, Name: "solved", Conduits: []domain.Conduit{{A, A}, {B, B}, {}, {}}, MaxCores: 2, Difficulty: domain.Easy},
	}
}

func newEngine(t *testing.T) *Engine {
	t.Helper()
	return New(testCatalog(), WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
}

func TestStateBeforeInit(t *testing.T) {
	e := newEngine(t)
	_, err := e.State()
	require.ErrorIs(t, err, ErrNotInitialized)

	_, ok := e.FindBestHintMove(2)
	assert.False(t, ok)
}

func TestLoadUnknownLevelKeepsState(t *testing.T) {
	e := newEngine(t)
	require.True(t, e.Init(1))
	require.True(t, e.Move(0, 2))
	before, err := e.State()
	require.NoError(t, err)

	calls := 0
	e.OnStateChange(func(domain.Snapshot) { calls++ })
	assert.False(t, e.LoadLevel(42))

	after, err := e.State()
	require.NoError(t, err)
	assert.Equal(t, before, after)
	assert.Zero(t, calls)
}

func TestPlayThroughFiresObservers(t *testing.T) {
	e := newEngine(t)
	var snaps []domain.Snapshot
	var done []domain.LevelComplete
	e.OnStateChange(func(s domain.Snapshot) { snaps = append(snaps, s) })
	e.OnLevelComplete(func(d domain.LevelComplete) { done = append(done, d) })

	require.True(t, e.Init(1))
	require.Len(t, snaps, 1)
	assert.Empty(t, done)

	require.True(t, e.Move(0, 2))
	assert.False(t, e.Move(1, 2))
	require.True(t, e.Move(1, 0))
	require.Len(t, done, 1, "[[A,A],[B],[B],[]] is already complete")
	assert.Equal(t, domain.LevelComplete{LevelID: 1, Moves: 2, IsLastLevel: false}, done[0])
	require.True(t, e.Move(2, 1))

	require.Len(t, snaps, 4)
	last := snaps[3]
	assert.True(t, last.IsComplete)
	assert.Equal(t, 3, last.Moves)
	assert.Equal(t, []domain.Conduit{{A, A}, {B, B}, {}, {}}, last.Conduits)
	assert.Equal(t, []bool{true, true, false, false}, last.PoweredConduits)
	assert.Equal(t, 1.0, last.Progress)

	require.Len(t, done, 2)
	assert.Equal(t, domain.LevelComplete{LevelID: 1, Moves: 3, IsLastLevel: false}, done[1])
}

func TestLoadingSolvedLevelCompletesImmediately(t *testing.T) {
	e := newEngine(t)
	var done []domain.LevelComplete
	e.OnLevelComplete(func(d domain.LevelComplete) { done = append(done, d) })

	require.True(t, e.LoadLevel(2))
	require.Len(t, done, 1)
	assert.Equal(t, domain.LevelComplete{LevelID: 2, Moves: 0, IsLastLevel: true}, done[0])
}

func TestObserverReplacedOnReRegistration(t *testing.T) {
	e := newEngine(t)
	first, second := 0, 0
	e.OnStateChange(func(domain.Snapshot) { first++ })
	e.OnStateChange(func(domain.Snapshot) { second++ })
	require.True(t, e.Init(1))
	assert.Zero(t, first)
	assert.Equal(t, 1, second)
}

func TestUndoRestartAndNext(t *testing.T) {
	e := newEngine(t)
	require.True(t, e.Init(1))
	calls := 0
	e.OnStateChange(func(domain.Snapshot) { calls++ })

	assert.False(t, e.Undo())
	assert.Zero(t, calls)

	require.True(t, e.Move(0, 2))
	require.True(t, e.Undo())
	s, err := e.State()
	require.NoError(t, err)
	assert.Equal(t, 0, s.Moves)
	assert.False(t, s.CanUndo)

	require.True(t, e.Move(0, 3))
	e.Restart()
	s, _ = e.State()
	assert.Equal(t, []domain.Conduit{{A, B}, {B, A}, {}, {}}, s.Conduits)
	assert.Equal(t, 0, s.Moves)
	assert.Equal(t, 4, calls)

	require.True(t, e.NextLevel())
	assert.Equal(t, 2, e.LevelID())
	assert.False(t, e.NextLevel())
	assert.Equal(t, 2, e.LevelID())
}

func TestSnapshotIsACopy(t *testing.T) {
	e := newEngine(t)
	require.True(t, e.Init(1))
	s, _ := e.State()
	s.Conduits[0][0] = domain.Cyan
	s.Level.Conduits[1] = nil

	again, _ := e.State()
	assert.Equal(t, A, again.Conduits[0][0])
	assert.Equal(t, domain.Conduit{B, A}, again.Level.Conduits[1])
}

func TestProgress(t *testing.T) {
	cases := []struct {
		name     string
		conduits []domain.Conduit
		want     float64
	}{
		{"nothing filled", []domain.Conduit{{}, {}}, 0},
		{"half powered", []domain.Conduit{{A, A}, {B}, {}}, 0.5},
		{"mixed", []domain.Conduit{{A, B}, {B, A}}, 0},
		{"all powered", []domain.Conduit{{A, A}, {B, B}, {}}, 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Progress(tc.conduits, 2))
		})
	}
}

func TestQueries(t *testing.T) {
	e := newEngine(t)
	require.True(t, e.Init(1))
	top, ok := e.PeekTopCore(1)
	assert.True(t, ok)
	assert.Equal(t, A, top)
	assert.True(t, e.IsValidMove(0, 2))
	assert.False(t, e.IsValidMove(0, 1))
	assert.True(t, e.IsConduitEmpty(3))
	require.True(t, e.Move(0, 2))
	assert.Equal(t, []domain.Move{{From: 0, To: 2}}, e.History())
}

func TestFindBestHintMoveDoesNotTouchState(t *testing.T) {
	e := New(catalog.Default(), WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	require.True(t, e.Init(6))
	before, _ := e.State()

	mv, ok := e.FindBestHintMove(3)
	require.True(t, ok)
	assert.Equal(t, domain.HintMove{From: 0, To: 3, Score: 127}, mv)

	after, _ := e.State()
	assert.Equal(t, before, after)
	assert.True(t, e.Move(mv.From, mv.To))
}

type failingHinter struct{}

func (failingHinter) Hint(ctx context.Context, _ []domain.Conduit, _, _ int) (domain.HintMove, bool, ports.Stats, error) {
	return domain.HintMove{From: 1, To: 2}, true, ports.Stats{}, errors.New("boom")
}

func TestHintErrorDiscardsMove(t *testing.T) {
	e := New(testCatalog(), WithHinter(failingHinter{}), WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	require.True(t, e.Init(1))
	mv, ok, _, err := e.FindBestHintMoveContext(context.Background(), 2)
	require.Error(t, err)
	assert.False(t, ok)
	assert.Equal(t, domain.HintMove{}, mv)

	_, ok = e.FindBestHintMove(2)
	assert.False(t, ok)
}
