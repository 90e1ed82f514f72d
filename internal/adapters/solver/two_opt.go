package solver

import "vrp-route-plotter/internal/domain"

// improveTwoOpt reverses inner segments of an open path while that lowers its
// cost. The first and last positions (start and end depot) never move.
// The full path is re-costed on every candidate, so asymmetric matrices are fine.
func improveTwoOpt(costs *domain.CostMatrix, locs []string, order []int, passes int) []int {
	n := len(order)
	if passes <= 0 || n < 4 {
		return order
	}

	best := append([]int(nil), order...)
	bestCost, err := pathCost(costs, locs, best)
	if err != nil {
		return order
	}

	for it := 0; it < passes; it++ {
		improved := false
		for i := 1; i < n-2; i++ {
			for k := i + 1; k < n-1; k++ {
				candidate := twoOptSwap(best, i, k)
				c, err := pathCost(costs, locs, candidate)
				if err != nil {
					return best
				}
				if c+1e-9 < bestCost {
					best, bestCost = candidate, c
					improved = true
				}
			}
		}
		if !improved {
			break
		}
	}
	return best
}

func twoOptSwap(ord []int, i, k int) []int {
	out := make([]int, len(ord))
	copy(out, ord[:i])
	pos := i
	for j := k; j >= i; j-- {
		out[pos] = ord[j]
		pos++
	}
	copy(out[pos:], ord[k+1:])
	return out
}
