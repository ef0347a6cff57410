package domain

import (
	"fmt"
	"strings"
)

// Difficulty labels levels in the catalog.
type Difficulty int

const (
	Easy Difficulty = iota
	Medium
	Hard
	Expert
)

func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "easy"
	case Medium:
		return "medium"
	case Hard:
		return "hard"
	case Expert:
		return "expert"
	default:
		return "unknown"
	}
}

// ParseDifficulty maps a case-insensitive label back to a Difficulty.
func ParseDifficulty(s string) (Difficulty, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy":
		return Easy, true
	case "medium":
		return Medium, true
	case "hard":
		return Hard, true
	case "expert":
		return Expert, true
	default:
		return Medium, false
	}
}

func (d Difficulty) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Difficulty) UnmarshalText(b []byte) error {
	v, ok := ParseDifficulty(string(b))
	if !ok {
		return fmt.Errorf("unknown difficulty %q", string(b))
	}
	*d = v
	return nil
}

// Color is a core color. Colors compare by equality only.
type Color string

const (
	Red    Color = "red"
	Blue   Color = "blue"
	Green  Color = "green"
	Yellow Color = "yellow"
	Purple Color = "purple"
	Orange Color = "orange"
	Pink   Color = "pink"
	Cyan   Color = "cyan"
)

var palette = [...]Color{Red, Blue, Green, Yellow, Purple, Orange, Pink, Cyan}

// Palette returns the first n palette colors in their fixed order.
// n is clamped to the palette size.
func Palette(n int) []Color {
	if n < 0 {
		n = 0
	}
	if n > len(palette) {
		n = len(palette)
	}
	out := make([]Color, n)
	copy(out, palette[:n])
	return out
}

// PaletteSize is the number of distinct colors available.
const PaletteSize = len(palette)
