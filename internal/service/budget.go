package service

import "fmt"

// CheckTokenBudget fails when a completion used more tokens than the ceiling. A
// completion that hit the ceiling is treated as truncated, so this runs before parsing.
func CheckTokenBudget(totalTokens, ceiling int) error {
	if totalTokens > ceiling {
		return fmt.Errorf("%w: used %d of %d tokens", ErrTokenLimitExceeded, totalTokens, ceiling)
	}
	return nil
}
