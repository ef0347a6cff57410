package generator

// mulberry32 is a 32-bit PRNG. Its output stream only depends on the seed, so
// a level id always maps to the same layout on every platform.
type mulberry32 struct {
	state uint32
}

func newMulberry32(seed uint32) *mulberry32 { return &mulberry32{state: seed} }

func (m *mulberry32) Uint32() uint32 {
	m.state += 0x6d2b79f5
	v := m.state
	v = (v ^ (v >> 15)) * (v | 1)
	v ^= v + (v^(v>>7))*(v|61)
	return v ^ (v >> 14)
}

// Float64 returns a value in [0, 1) with 32 bits of precision.
func (m *mulberry32) Float64() float64 {
	return float64(m.Uint32()) / 4294967296
}

// Intn returns a value in [0, n).
func (m *mulberry32) Intn(n int) int {
	return int(m.Float64() * float64(n))
}
