package hint

import (
	"context"
	"math"
	"time"

	"svw.info/powerline/internal/domain"
	"svw.info/powerline/internal/ports"
	"svw.info/powerline/internal/validator"
)

// Scoring constants for the static evaluation.
const (
	EmptyReward    = 4
	RunWeight      = 3
	PoweredBonus   = 100
	DeadEndPenalty = 25
)

// Search implements a Hinter that looks ahead a fixed number of moves and
// maximizes a static evaluation. Cost grows as branching^depth, so depths
// beyond 3 are rarely worth it on real levels.
type Search struct{}

func NewSearch() *Search { return &Search{} }

// Hint returns the legal move whose subtree scores best. Ties go to the move
// enumerated first. A canceled context aborts the search and no move is
// returned.
func (h *Search) Hint(ctx context.Context, conduits []domain.Conduit, maxCores, depth int) (domain.HintMove, bool, ports.Stats, error) {
	start := time.Now()
	board := domain.CloneConduits(conduits)
	nodes := 0

	var best domain.HintMove
	found := false
	for _, mv := range LegalMoves(board, maxCores) {
		score, err := h.score(ctx, Apply(board, mv), maxCores, depth-1, &nodes)
		if err != nil {
			return domain.HintMove{}, false, ports.Stats{Nodes: nodes, Duration: time.Since(start)}, err
		}
		if !found || score > best.Score {
			best = domain.HintMove{From: mv.From, To: mv.To, Score: score}
			found = true
		}
	}
	return best, found, ports.Stats{Nodes: nodes, Duration: time.Since(start)}, nil
}

func (h *Search) score(ctx context.Context, conduits []domain.Conduit, maxCores, depth int, nodes *int) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	*nodes++
	current := Evaluate(conduits, maxCores)
	if depth <= 0 {
		return current, nil
	}
	moves := LegalMoves(conduits, maxCores)
	if len(moves) == 0 {
		return current - DeadEndPenalty, nil
	}
	best := math.Inf(-1)
	for _, mv := range moves {
		s, err := h.score(ctx, Apply(conduits, mv), maxCores, depth-1, nodes)
		if err != nil {
			return 0, err
		}
		if s > best {
			best = s
		}
	}
	return best, nil
}

// LegalMoves lists every legal move, from-major then to-minor.
func LegalMoves(conduits []domain.Conduit, maxCores int) []domain.Move {
	var moves []domain.Move
	for from := range conduits {
		for to := range conduits {
			if validator.CanMove(conduits, maxCores, from, to) {
				moves = append(moves, domain.Move{From: from, To: to})
			}
		}
	}
	return moves
}

// Apply returns a copy of conduits with mv performed. The caller guarantees
// the move is legal.
func Apply(conduits []domain.Conduit, mv domain.Move) []domain.Conduit {
	out := domain.CloneConduits(conduits)
	src := out[mv.From]
	out[mv.To] = append(out[mv.To], src[len(src)-1])
	out[mv.From] = src[:len(src)-1]
	return out
}

// Evaluate is the static score of a position: slack for empty conduits,
// partial runs matching the bottom core, and a bonus per powered conduit.
func Evaluate(conduits []domain.Conduit, maxCores int) float64 {
	score := 0
	for _, c := range conduits {
		if len(c) == 0 {
			score += EmptyReward
			continue
		}
		same := 0
		for _, core := range c {
			if core == c[0] {
				same++
			}
		}
		score += same * RunWeight
		if c.Powered(maxCores) {
			score += PoweredBonus
		}
	}
	return float64(score)
}
