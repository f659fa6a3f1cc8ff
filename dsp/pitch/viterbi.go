package pitch

import "math"

// candidate is one pitch hypothesis for a frame; frequency 0 is unvoiced.
type candidate struct {
	frequency float64
	strength  float64
}

// bestPath returns, per frame, the index of the candidate on the path that
// maximizes total strength minus transition costs.
func bestPath(lattice [][]candidate, cfg Config) []int {
	n := len(lattice)
	path := make([]int, n)
	if n == 0 {
		return path
	}

	// Costs are specified for 10 ms frames.
	correction := 0.01 / cfg.TimeStep

	score := make([][]float64, n)
	back := make([][]int, n)

	score[0] = make([]float64, len(lattice[0]))
	back[0] = make([]int, len(lattice[0]))
	for j, c := range lattice[0] {
		score[0][j] = c.strength
	}

	for i := 1; i < n; i++ {
		prev := lattice[i-1]
		cur := lattice[i]
		score[i] = make([]float64, len(cur))
		back[i] = make([]int, len(cur))
		for j, c := range cur {
			best := math.Inf(-1)
			bestK := 0
			for k, p := range prev {
				s := score[i-1][k] - transitionCost(p, c, cfg)*correction
				if s > best {
					best = s
					bestK = k
				}
			}
			score[i][j] = best + c.strength
			back[i][j] = bestK
		}
	}

	last := n - 1
	bestJ := 0
	for j := range score[last] {
		if score[last][j] > score[last][bestJ] {
			bestJ = j
		}
	}
	path[last] = bestJ
	for i := last; i > 0; i-- {
		path[i-1] = back[i][path[i]]
	}

	return path
}

func transitionCost(from, to candidate, cfg Config) float64 {
	fromVoiced := from.frequency > 0
	toVoiced := to.frequency > 0
	switch {
	case !fromVoiced && !toVoiced:
		return 0
	case fromVoiced != toVoiced:
		return cfg.VoicedUnvoicedCost
	default:
		return cfg.OctaveJumpCost * math.Abs(math.Log2(from.frequency/to.frequency))
	}
}
