package domain

// Conduit is a stack of cores; the last element is the top.
type Conduit []Color

// Top returns the topmost core.
func (c Conduit) Top() (Color, bool) {
	if len(c) == 0 {
		return "", false
	}
	return c[len(c)-1], true
}

// Uniform reports whether every core has the same color. Empty conduits are uniform.
func (c Conduit) Uniform() bool {
	for _, core := range c {
		if core != c[0] {
			return false
		}
	}
	return true
}

// Powered reports whether the conduit is full, uniform and non-empty.
func (c Conduit) Powered(maxCores int) bool {
	return len(c) > 0 && len(c) == maxCores && c.Uniform()
}

func (c Conduit) Clone() Conduit {
	if c == nil {
		return Conduit{}
	}
	out := make(Conduit, len(c))
	copy(out, c)
	return out
}

// CloneConduits deep-copies a layout so the result shares no backing arrays.
func CloneConduits(cs []Conduit) []Conduit {
	out := make([]Conduit, len(cs))
	for i, c := range cs {
		out[i] = c.Clone()
	}
	return out
}

// Level is an immutable level definition.
type Level struct {
	ID         int        `json:"id" yaml:"id"`
	Name       string     `json:"name" yaml:"name"`
	Conduits   []Conduit  `json:"conduits" yaml:"conduits"`
	MaxCores   int        `json:"maxCores" yaml:"maxCores"`
	Difficulty Difficulty `json:"difficulty" yaml:"difficulty"`
}

// Clone returns a deep copy of the level.
func (l Level) Clone() Level {
	l.Conduits = CloneConduits(l.Conduits)
	return l
}

// Meta summarizes the level for listings.
func (l Level) Meta() LevelMeta {
	return LevelMeta{
		ID:         l.ID,
		Name:       l.Name,
		Difficulty: l.Difficulty,
		MaxCores:   l.MaxCores,
		Conduits:   len(l.Conduits),
	}
}

// LevelMeta is a lightweight listing entry.
type LevelMeta struct {
	ID         int        `json:"id" yaml:"id"`
	Name       string     `json:"name,omitempty" yaml:"name,omitempty"`
	Difficulty Difficulty `json:"difficulty" yaml:"difficulty"`
	MaxCores   int        `json:"maxCores" yaml:"maxCores"`
	Conduits   int        `json:"conduits" yaml:"conduits"`
}

// Move transfers the top core of conduit From onto conduit To.
type Move struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// HintMove is a recommended move with its search score.
type HintMove struct {
	From  int     `json:"from"`
	To    int     `json:"to"`
	Score float64 `json:"score"`
}

// Snapshot is the read-only view of a session handed to observers and adapters.
type Snapshot struct {
	LevelID         int       `json:"levelId"`
	Level           Level     `json:"level"`
	Conduits        []Conduit `json:"conduits"`
	Moves           int       `json:"moves"`
	CanUndo         bool      `json:"canUndo"`
	IsComplete      bool      `json:"isComplete"`
	Progress        float64   `json:"progress"`
	PoweredConduits []bool    `json:"poweredConduits"`
}

// LevelComplete is emitted once a move (or a load) leaves the level solved.
type LevelComplete struct {
	LevelID     int  `json:"levelId"`
	Moves       int  `json:"moves"`
	IsLastLevel bool `json:"isLastLevel"`
}
