package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"svw.info/powerline/internal/domain"
	"svw.info/powerline/internal/engine"
	"svw.info/powerline/internal/metrics"
	"svw.info/powerline/internal/ports"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrUnknownLevel    = errors.New("unknown level")
	ErrTooManySessions = errors.New("session limit reached")

	errNotConfigured = errors.New("usecase dependency not configured")
)

// Service hosts independent play sessions. Engines are not goroutine-safe,
// so every session call runs under that session's lock.
type Service struct {
	Catalog   ports.Catalog
	Hinter    ports.Hinter
	Validator ports.Validator
	Storage   ports.Storage

	logger      *slog.Logger
	maxSessions int
	hintTimeout time.Duration

	mu       sync.Mutex
	sessions map[string]*session
}

type session struct {
	mu        sync.Mutex
	engine    *engine.Engine
	completed *domain.LevelComplete
	// solved is set once the loaded level has been counted as solved.
	solved bool
}

var recordLevelComplete = metrics.RecordLevelComplete

// MoveResult is the outcome of a move. Complete is set when the move solved the level.
type MoveResult struct {
	Moved    bool
	State    domain.Snapshot
	Complete *domain.LevelComplete
}

type Option func(*Service)

func WithLogger(l *slog.Logger) Option { return func(s *Service) { s.logger = l } }

// WithMaxSessions bounds live sessions; zero means unbounded.
func WithMaxSessions(n int) Option { return func(s *Service) { s.maxSessions = n } }

// WithHintTimeout bounds each hint search; zero means no deadline.
func WithHintTimeout(d time.Duration) Option { return func(s *Service) { s.hintTimeout = d } }

func NewService(c ports.Catalog, h ports.Hinter, v ports.Validator, st ports.Storage, opts ...Option) *Service {
	s := &Service{
		Catalog:   c,
		Hinter:    h,
		Validator: v,
		Storage:   st,
		logger:    slog.Default(),
		sessions:  make(map[string]*session),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create starts a session on levelID.
func (u *Service) Create(ctx context.Context, levelID int) (string, domain.Snapshot, error) {
	if u.Catalog == nil {
		return "", domain.Snapshot{}, errNotConfigured
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.maxSessions > 0 && len(u.sessions) >= u.maxSessions {
		return "", domain.Snapshot{}, ErrTooManySessions
	}

	sess := &session{}
	opts := []engine.Option{engine.WithLogger(u.logger)}
	if u.Hinter != nil {
		opts = append(opts, engine.WithHinter(u.Hinter))
	}
	sess.engine = engine.New(u.Catalog, opts...)
	sess.engine.OnLevelComplete(func(d domain.LevelComplete) {
		sess.completed = &d
		// levels loaded already solved, and moves on a solved board, are not solves
		if sess.solved || d.Moves == 0 {
			return
		}
		sess.solved = true
		difficulty := "unknown"
		if lvl, ok := u.Catalog.Level(d.LevelID); ok {
			difficulty = lvl.Difficulty.String()
		}
		recordLevelComplete(difficulty)
	})
	if !sess.engine.Init(levelID) {
		return "", domain.Snapshot{}, fmt.Errorf("%w: %d", ErrUnknownLevel, levelID)
	}
	snap, err := sess.engine.State()
	if err != nil {
		return "", domain.Snapshot{}, err
	}

	id := uuid.NewString()
	u.sessions[id] = sess
	metrics.SessionOpened()
	u.logger.Info("session created", "session", id, "level", levelID)
	return id, snap, nil
}

// Delete ends a session.
func (u *Service) Delete(ctx context.Context, id string) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	if _, ok := u.sessions[id]; !ok {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	delete(u.sessions, id)
	metrics.SessionClosed()
	u.logger.Info("session deleted", "session", id)
	return nil
}

// Sessions is the number of live sessions.
func (u *Service) Sessions() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return len(u.sessions)
}

// with runs fn while holding the session lock.
func (u *Service) with(id string, fn func(s *session) error) error {
	u.mu.Lock()
	sess, ok := u.sessions[id]
	u.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.completed = nil
	return fn(sess)
}

func (u *Service) State(ctx context.Context, id string) (domain.Snapshot, error) {
	var snap domain.Snapshot
	err := u.with(id, func(s *session) error {
		var err error
		snap, err = s.engine.State()
		return err
	})
	return snap, err
}

// Move plays one move. Illegal moves are not errors; they report Moved=false.
func (u *Service) Move(ctx context.Context, id string, from, to int) (MoveResult, error) {
	var res MoveResult
	err := u.with(id, func(s *session) error {
		res.Moved = s.engine.Move(from, to)
		metrics.RecordMove(res.Moved)
		res.Complete = s.completed
		var err error
		res.State, err = s.engine.State()
		return err
	})
	return res, err
}

func (u *Service) Undo(ctx context.Context, id string) (bool, domain.Snapshot, error) {
	var (
		undone bool
		snap   domain.Snapshot
	)
	err := u.with(id, func(s *session) error {
		undone = s.engine.Undo()
		if undone {
			metrics.RecordUndo()
		}
		var err error
		snap, err = s.engine.State()
		return err
	})
	return undone, snap, err
}

func (u *Service) Restart(ctx context.Context, id string) (domain.Snapshot, error) {
	var snap domain.Snapshot
	err := u.with(id, func(s *session) error {
		s.engine.Restart()
		var err error
		snap, err = s.engine.State()
		return err
	})
	return snap, err
}

// Next advances the session to the following level.
func (u *Service) Next(ctx context.Context, id string) (bool, domain.Snapshot, *domain.LevelComplete, error) {
	return u.load(id, func(e *engine.Engine) bool { return e.NextLevel() })
}

// Load switches the session to levelID.
func (u *Service) Load(ctx context.Context, id string, levelID int) (bool, domain.Snapshot, *domain.LevelComplete, error) {
	return u.load(id, func(e *engine.Engine) bool { return e.LoadLevel(levelID) })
}

func (u *Service) load(id string, fn func(*engine.Engine) bool) (bool, domain.Snapshot, *domain.LevelComplete, error) {
	var (
		loaded bool
		snap   domain.Snapshot
		done   *domain.LevelComplete
	)
	err := u.with(id, func(s *session) error {
		prev := s.solved
		s.solved = false
		loaded = fn(s.engine)
		if !loaded {
			s.solved = prev
		}
		done = s.completed
		var err error
		snap, err = s.engine.State()
		return err
	})
	return loaded, snap, done, err
}

// Hint searches depth moves ahead from the session's position.
func (u *Service) Hint(ctx context.Context, id string, depth int) (domain.HintMove, bool, ports.Stats, error) {
	if u.hintTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, u.hintTimeout)
		defer cancel()
	}
	var (
		mv    domain.HintMove
		found bool
		st    ports.Stats
	)
	err := u.with(id, func(s *session) error {
		var err error
		mv, found, st, err = s.engine.FindBestHintMoveContext(ctx, depth)
		metrics.RecordHint(found, st, err)
		return err
	})
	if err != nil {
		u.logger.Warn("hint search failed", "session", id, "depth", depth, "err", err)
		return domain.HintMove{}, false, st, err
	}
	u.logger.Debug("hint", "session", id, "depth", depth, "found", found, "nodes", st.Nodes, "dur", st.Duration)
	return mv, found, st, nil
}

// Levels lists the catalog.
func (u *Service) Levels(ctx context.Context) ([]domain.LevelMeta, error) {
	if u.Catalog == nil {
		return nil, errNotConfigured
	}
	return u.Catalog.List(), nil
}

func (u *Service) Level(ctx context.Context, id int) (domain.Level, error) {
	if u.Catalog == nil {
		return domain.Level{}, errNotConfigured
	}
	lvl, ok := u.Catalog.Level(id)
	if !ok {
		return domain.Level{}, fmt.Errorf("%w: %d", ErrUnknownLevel, id)
	}
	return lvl, nil
}

func (u *Service) Validate(ctx context.Context, conduits []domain.Conduit) (bool, []int, error) {
	if u.Validator == nil {
		return false, nil, errNotConfigured
	}
	return u.Validator.Validate(ctx, conduits)
}

// Export writes every catalog level to storage and returns how many were written.
func (u *Service) Export(ctx context.Context) (int, error) {
	if u.Catalog == nil || u.Storage == nil {
		return 0, errNotConfigured
	}
	n := 0
	for _, meta := range u.Catalog.List() {
		if err := ctx.Err(); err != nil {
			return n, err
		}
		lvl, ok := u.Catalog.Level(meta.ID)
		if !ok {
			continue
		}
		if err := u.Storage.Save(ctx, &lvl); err != nil {
			return n, fmt.Errorf("export level %d: %w", meta.ID, err)
		}
		n++
	}
	return n, nil
}
