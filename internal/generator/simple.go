package generator

import (
	"fmt"

	"svw.info/powerline/internal/domain"
)

const maxColors = 6

// ColorCount is the number of colors used by generated level id.
func ColorCount(id int) int {
	n := 3 + id/10
	if n > maxColors {
		n = maxColors
	}
	return n
}

// Capacity is the conduit capacity of generated level id.
func Capacity(id int) int {
	if id < 30 {
		return 4
	}
	return 5
}

// DifficultyFor grades generated level id; non-decreasing in id.
func DifficultyFor(id int) domain.Difficulty {
	switch {
	case id < 25:
		return domain.Medium
	case id < 60:
		return domain.Hard
	default:
		return domain.Expert
	}
}

// Generate builds level id: capacity copies of each color, shuffled and dealt
// into full conduits, followed by the spare empty ones.
func (g *ProceduralGenerator) Generate(id int) domain.Level {
	rng := newMulberry32(uint32(id) * g.SeedMultiplier)
	colors := domain.Palette(ColorCount(id))
	maxCores := Capacity(id)

	pool := make([]domain.Color, 0, len(colors)*maxCores)
	for _, c := range colors {
		for i := 0; i < maxCores; i++ {
			pool = append(pool, c)
		}
	}
	shuffle(pool, rng)

	conduits := make([]domain.Conduit, 0, len(colors)+g.Spare)
	for i := range colors {
		conduits = append(conduits, domain.Conduit(pool[i*maxCores:(i+1)*maxCores]).Clone())
	}
	for len(conduits) < len(colors)+g.Spare {
		conduits = append(conduits, domain.Conduit{})
	}

	return domain.Level{
		ID:         id,
		Name:       fmt.Sprintf("Gridlock %d", id),
		Conduits:   conduits,
		MaxCores:   maxCores,
		Difficulty: DifficultyFor(id),
	}
}

// shuffle is a Fisher-Yates pass from the tail down.
func shuffle(values []domain.Color, rng *mulberry32) {
	for i := len(values) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		values[i], values[j] = values[j], values[i]
	}
}
