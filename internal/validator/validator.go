package validator

import (
	"context"

	"svw.info/powerline/internal/domain"
)

// IsComplete reports whether every non-empty conduit holds a single color.
func IsComplete(conduits []domain.Conduit) bool {
	for _, c := range conduits {
		if !c.Uniform() {
			return false
		}
	}
	return true
}

// CanMove is the move legality predicate shared by the live state and the
// hint search. Indices outside the layout are never legal.
func CanMove(conduits []domain.Conduit, maxCores, from, to int) bool {
	if from == to {
		return false
	}
	if from < 0 || to < 0 || from >= len(conduits) || to >= len(conduits) {
		return false
	}
	src, dst := conduits[from], conduits[to]
	top, ok := src.Top()
	if !ok {
		return false
	}
	if len(dst) >= maxCores {
		return false
	}
	if dstTop, ok := dst.Top(); ok && dstTop != top {
		return false
	}
	// a solved conduit may not be shuffled into empty space
	if len(dst) == 0 && len(src) == maxCores && src.Uniform() {
		return false
	}
	return true
}

type FastValidator struct{}

func New() *FastValidator { return &FastValidator{} }

// Validate reports completion and the indices of every mixed conduit.
func (v *FastValidator) Validate(ctx context.Context, conduits []domain.Conduit) (bool, []int, error) {
	if err := ctx.Err(); err != nil {
		return false, nil, err
	}
	mixed := make([]int, 0, 4)
	for i, c := range conduits {
		if !c.Uniform() {
			mixed = append(mixed, i)
		}
	}
	return len(mixed) == 0, mixed, nil
}
