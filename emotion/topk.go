package emotion

// TopK returns the k highest-confidence entries of a copy of scores. The
// copy is re-sorted descending first, so TopK is safe on unsorted input
// and idempotent on sorted input. k <= 0 yields an empty list; k larger
// than the input returns everything.
func TopK(scores []Score, k int) []Score {
	if k <= 0 {
		return []Score{}
	}
	top := make([]Score, len(scores))
	copy(top, scores)
	SortScores(top)
	if len(top) > k {
		top = top[:k]
	}
	return top
}
