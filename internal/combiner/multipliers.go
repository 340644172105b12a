package combiner

import (
	"fmt"

	"github.com/dshills/rxnsmiles-mcp/pkg/types"
)

// GetMultipliers returns how often each item of two lists of lengths a and b
// must be repeated for both to reach the same length: (lcm/a, lcm/b).
// The shorter list gets the multiplier, so GetMultipliers(1, 3) is (3, 1).
//
// One of the multipliers is always 1; lengths that are not multiples of each
// other fail with types.ErrIncompatibleLengths. Two empty lists give (1, 1).
func GetMultipliers(a, b int) (int, int, error) {
	if a < 0 || b < 0 {
		return 0, 0, fmt.Errorf("%w: negative length (%d and %d)", types.ErrIncompatibleLengths, a, b)
	}
	if a == 0 && b == 0 {
		return 1, 1, nil
	}
	if a == 0 || b == 0 {
		return 0, 0, fmt.Errorf("%w: %d and %d", types.ErrIncompatibleLengths, a, b)
	}

	lcm := a / gcd(a, b) * b
	multA, multB := lcm/a, lcm/b
	if multA != 1 && multB != 1 {
		return 0, 0, fmt.Errorf("%w: %d and %d", types.ErrIncompatibleLengths, a, b)
	}
	return multA, multB, nil
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
