// Package engine orchestrates one play session: level loading, moves, undo,
// restart, snapshot derivation, observers and hints.
//
// An Engine is synchronous and holds no locks; callers sharing one across
// goroutines must serialize access themselves.
package engine

import (
	"context"
	"errors"
	"log/slog"

	"svw.info/powerline/internal/conduit"
	"svw.info/powerline/internal/domain"
	"svw.info/powerline/internal/hint"
	"svw.info/powerline/internal/ports"
	"svw.info/powerline/internal/validator"
)

// DefaultHintDepth is the lookahead used by interactive hint requests.
const DefaultHintDepth = 3

// ErrNotInitialized is returned when state is queried before a level is loaded.
var ErrNotInitialized = errors.New("engine: state accessed before a level was loaded")

type Engine struct {
	catalog ports.Catalog
	hinter  ports.Hinter
	logger  *slog.Logger

	state   *conduit.State
	levelID int

	onStateChange   func(domain.Snapshot)
	onLevelComplete func(domain.LevelComplete)
}

type Option func(*Engine)

// WithHinter replaces the default lookahead search.
func WithHinter(h ports.Hinter) Option {
	return func(e *Engine) { e.hinter = h }
}

func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

func New(catalog ports.Catalog, opts ...Option) *Engine {
	e := &Engine{
		catalog: catalog,
		hinter:  hint.NewSearch(),
		logger:  slog.Default(),
		state:   conduit.New(),
		levelID: 1,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// OnStateChange registers the state observer, replacing any previous one.
func (e *Engine) OnStateChange(fn func(domain.Snapshot)) { e.onStateChange = fn }

// OnLevelComplete registers the completion observer, replacing any previous one.
func (e *Engine) OnLevelComplete(fn func(domain.LevelComplete)) { e.onLevelComplete = fn }

// Init loads the first level to play.
func (e *Engine) Init(levelID int) bool { return e.LoadLevel(levelID) }

// LoadLevel replaces the session with a fresh copy of the level. Unknown ids
// leave the session as it was.
func (e *Engine) LoadLevel(levelID int) bool {
	level, ok := e.catalog.Level(levelID)
	if !ok {
		e.logger.Warn("level not found", "level", levelID)
		return false
	}
	e.levelID = levelID
	e.state.Init(level)
	e.logger.Debug("level loaded", "level", levelID, "name", level.Name)
	e.notifyStateChange()
	if e.complete() {
		e.notifyLevelComplete()
	}
	return true
}

// Move transfers the top core of from onto to.
func (e *Engine) Move(from, to int) bool {
	if !e.state.Move(from, to) {
		return false
	}
	e.notifyStateChange()
	if e.complete() {
		e.notifyLevelComplete()
	}
	return true
}

func (e *Engine) Undo() bool {
	if !e.state.Undo() {
		return false
	}
	e.notifyStateChange()
	return true
}

func (e *Engine) Restart() {
	e.state.Restart()
	e.notifyStateChange()
}

// NextLevel loads the level after the current one.
func (e *Engine) NextLevel() bool { return e.LoadLevel(e.levelID + 1) }

// LevelID is the id of the loaded level, or the one Init will default to.
func (e *Engine) LevelID() int { return e.levelID }

func (e *Engine) PeekTopCore(i int) (domain.Color, bool) { return e.state.TopCore(i) }

func (e *Engine) IsValidMove(from, to int) bool { return e.state.CanMove(from, to) }

// IsConduitEmpty reports whether conduit i exists and holds no cores.
func (e *Engine) IsConduitEmpty(i int) bool { return e.state.IsEmpty(i) }

// History returns the moves played since the last load or restart.
func (e *Engine) History() []domain.Move { return e.state.History() }

// FindBestHintMove searches depth moves ahead from the live position.
func (e *Engine) FindBestHintMove(depth int) (domain.HintMove, bool) {
	mv, ok, _, err := e.FindBestHintMoveContext(context.Background(), depth)
	return mv, ok && err == nil
}

// FindBestHintMoveContext is FindBestHintMove with cancellation and search
// stats. On cancellation no move is returned.
func (e *Engine) FindBestHintMoveContext(ctx context.Context, depth int) (domain.HintMove, bool, ports.Stats, error) {
	if _, ok := e.state.Level(); !ok {
		return domain.HintMove{}, false, ports.Stats{}, nil
	}
	mv, ok, st, err := e.hinter.Hint(ctx, e.state.Conduits(), e.state.MaxCores(), depth)
	if err != nil {
		return domain.HintMove{}, false, st, err
	}
	return mv, ok, st, nil
}

// State returns a snapshot of the session.
func (e *Engine) State() (domain.Snapshot, error) {
	level, ok := e.state.Level()
	if !ok {
		return domain.Snapshot{}, ErrNotInitialized
	}
	conduits := e.state.Conduits()
	powered := make([]bool, len(conduits))
	for i, c := range conduits {
		powered[i] = c.Powered(level.MaxCores)
	}
	return domain.Snapshot{
		LevelID:         e.levelID,
		Level:           level,
		Conduits:        conduits,
		Moves:           e.state.MoveCount(),
		CanUndo:         e.state.CanUndo(),
		IsComplete:      validator.IsComplete(conduits),
		Progress:        Progress(conduits, level.MaxCores),
		PoweredConduits: powered,
	}, nil
}

// Progress is the share of non-empty conduits that are powered, in [0, 1].
func Progress(conduits []domain.Conduit, maxCores int) float64 {
	filled, solved := 0, 0
	for _, c := range conduits {
		if len(c) == 0 {
			continue
		}
		filled++
		if c.Powered(maxCores) {
			solved++
		}
	}
	if filled == 0 {
		return 0
	}
	p := float64(solved) / float64(filled)
	return min(1, max(0, p))
}

func (e *Engine) complete() bool {
	return validator.IsComplete(e.state.Conduits())
}

func (e *Engine) notifyStateChange() {
	if e.onStateChange == nil {
		return
	}
	snap, err := e.State()
	if err != nil {
		return
	}
	e.onStateChange(snap)
}

func (e *Engine) notifyLevelComplete() {
	data := domain.LevelComplete{
		LevelID:     e.levelID,
		Moves:       e.state.MoveCount(),
		IsLastLevel: e.levelID >= e.catalog.Total(),
	}
	e.logger.Info("level complete", "level", data.LevelID, "moves", data.Moves, "last", data.IsLastLevel)
	if e.onLevelComplete == nil {
		return
	}
	e.onLevelComplete(data)
}
