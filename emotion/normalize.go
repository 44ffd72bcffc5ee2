package emotion

// Normalize rescales confidences so they sum to 100, preserving input
// order. Empty input and input summing to zero are returned unchanged: a
// zero sum is degenerate data, not an error.
func Normalize(scores []Score) []Score {
	if len(scores) == 0 {
		return scores
	}
	var sum float64
	for _, s := range scores {
		sum += s.Confidence
	}
	if sum == 0 {
		return scores
	}
	normalized := make([]Score, len(scores))
	for i, s := range scores {
		normalized[i] = Score{Label: s.Label, Confidence: s.Confidence / sum * 100}
	}
	return normalized
}
