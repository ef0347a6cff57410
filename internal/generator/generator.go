package generator

// ProceduralGenerator derives levels from their id alone.
type ProceduralGenerator struct {
	// SeedMultiplier scales the level id into the PRNG seed.
	SeedMultiplier uint32
	// Spare is the number of empty conduits appended after the filled ones.
	Spare int
}

// NewProceduralGenerator returns a generator producing the stock level sequence.
func NewProceduralGenerator() *ProceduralGenerator {
	return &ProceduralGenerator{SeedMultiplier: 1013, Spare: 2}
}

// Note: Generate lives in simple.go, the PRNG in mulberry.go.
