package recognizer

import (
	"sort"

	"github.com/agnivade/levenshtein"
)

// similarityFloor is the minimum normalized similarity for a fuzzy
// correction to be accepted.
const similarityFloor = 0.6

// Similarity returns 1 - distance/maxLen, so identical strings score 1.0
// and fully disjoint strings score 0.
func Similarity(a, b string) float64 {
	if a == b {
		return 1.0
	}
	longest := len(a)
	if len(b) > longest {
		longest = len(b)
	}
	if longest == 0 {
		return 1.0
	}
	d := levenshtein.ComputeDistance(a, b)
	return 1.0 - float64(d)/float64(longest)
}

// Correct finds the vocabulary word closest to token. Ties break on smaller
// edit distance first, then alphabetically, so results are deterministic
// regardless of vocabulary order.
func Correct(token string, vocab []string) (string, float64, bool) {
	var (
		best     string
		bestSim  float64
		bestDist = -1
	)
	for _, candidate := range vocab {
		d := levenshtein.ComputeDistance(token, candidate)
		sim := Similarity(token, candidate)
		switch {
		case sim > bestSim:
		case sim == bestSim && bestDist >= 0 && d < bestDist:
		case sim == bestSim && d == bestDist && candidate < best:
		default:
			continue
		}
		best, bestSim, bestDist = candidate, sim, d
	}
	if bestSim < similarityFloor {
		return "", 0, false
	}
	return best, bestSim, true
}

// Rank returns up to n vocabulary words ordered by similarity to token,
// filtered to the acceptance floor. Used for "did you mean" suggestions.
func Rank(token string, vocab []string, n int) []string {
	type scored struct {
		word string
		sim  float64
	}
	candidates := make([]scored, 0, len(vocab))
	for _, candidate := range vocab {
		if sim := Similarity(token, candidate); sim >= similarityFloor {
			candidates = append(candidates, scored{candidate, sim})
		}
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].sim != candidates[j].sim {
			return candidates[i].sim > candidates[j].sim
		}
		return candidates[i].word < candidates[j].word
	})
	if n > 0 && len(candidates) > n {
		candidates = candidates[:n]
	}
	out := make([]string, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, c.word)
	}
	return out
}
