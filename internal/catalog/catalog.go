// Package catalog is the process-wide level table: the hand-authored levels
// followed by a generated extension. It is built once and never mutated.
package catalog

import (
	"sync"

	"svw.info/powerline/internal/domain"
	"svw.info/powerline/internal/generator"
	"svw.info/powerline/internal/ports"
)

// DefaultGenerated is the number of generated levels in the stock catalog.
const DefaultGenerated = 95

// Catalog resolves level ids. Lookups hand out deep copies.
type Catalog struct {
	levels []domain.Level
	index  map[int]int
}

// New builds a catalog of the base levels followed by generated ones with
// consecutive ids.
func New(gen ports.Generator, generated int) *Catalog {
	if generated < 0 {
		generated = 0
	}
	levels := make([]domain.Level, 0, len(baseLevels)+generated)
	for _, l := range baseLevels {
		levels = append(levels, l.Clone())
	}
	next := len(baseLevels) + 1
	for i := 0; i < generated; i++ {
		levels = append(levels, gen.Generate(next+i))
	}
	index := make(map[int]int, len(levels))
	for i, l := range levels {
		index[l.ID] = i
	}
	return &Catalog{levels: levels, index: index}
}

// Level returns the level with the given id.
func (c *Catalog) Level(id int) (domain.Level, bool) {
	i, ok := c.index[id]
	if !ok {
		return domain.Level{}, false
	}
	return c.levels[i].Clone(), true
}

func (c *Catalog) Total() int { return len(c.levels) }

func (c *Catalog) List() []domain.LevelMeta {
	out := make([]domain.LevelMeta, len(c.levels))
	for i, l := range c.levels {
		out[i] = l.Meta()
	}
	return out
}

// BaseCount is the number of hand-authored levels.
func BaseCount() int { return len(baseLevels) }

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default returns the stock catalog, built on first use.
func Default() *Catalog {
	defaultOnce.Do(func() {
		defaultCatalog = New(generator.NewProceduralGenerator(), DefaultGenerated)
	})
	return defaultCatalog
}
