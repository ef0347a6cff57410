package ports

import (
	"context"
	"time"

	"svw.info/powerline/internal/domain"
)

// Stats captures performance characteristics of an operation.
type Stats struct {
	Nodes    int
	Duration time.Duration
}

// Catalog resolves level ids to immutable definitions.
type Catalog interface {
	Level(id int) (domain.Level, bool)
	Total() int
	List() []domain.LevelMeta
}

// Generator produces the procedural level for an id.
type Generator interface {
	Generate(id int) domain.Level
}

// Validator checks a layout for completion and reports non-uniform conduits.
type Validator interface {
	Validate(ctx context.Context, conduits []domain.Conduit) (complete bool, mixed []int, err error)
}

// Hinter recommends the next move for a layout by bounded-depth search.
type Hinter interface {
	Hint(ctx context.Context, conduits []domain.Conduit, maxCores, depth int) (domain.HintMove, bool, Stats, error)
}

// Storage exports level definitions.
type Storage interface {
	Save(ctx context.Context, l *domain.Level) error
	List(ctx context.Context) ([]domain.LevelMeta, error)
}
