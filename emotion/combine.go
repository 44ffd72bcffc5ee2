package emotion

import "fmt"

// Weights maps a modality name ("text", "audio", "visual", ...) to its
// relative vote weight. Weights need not sum to 1: fusion divides by the
// weight of the modalities that actually voted for each label.
type Weights map[string]float64

// DefaultWeights returns the standard modality weighting.
func DefaultWeights() Weights {
	return Weights{
		"text":   0.4,
		"audio":  0.3,
		"visual": 0.3,
	}
}

// Combine merges per-modality emotion distributions into one ranked list
// using a weighted mean restricted to voters: for each label, only the
// modalities that scored it above zero contribute to the numerator and the
// denominator, so a label recognized by a single source is not diluted by
// the silence of the others. A modality with an empty or missing list
// abstains entirely; a modality with weight zero never affects the result.
//
// Passing a nil weight map uses DefaultWeights. The result is sorted by
// confidence descending (ties broken by label ascending) and is not
// renormalized; apply Normalize separately if a 100-sum is wanted.
//
// An empty source map yields an empty list. The only error condition is a
// structurally invalid score (blank label, non-finite confidence).
func Combine(sources map[string][]Score, weights Weights) ([]Score, error) {
	if weights == nil {
		weights = DefaultWeights()
	}

	active := make([]string, 0, len(sources))
	for name, scores := range sources {
		if len(scores) > 0 {
			active = append(active, name)
		}
	}
	if len(active) == 0 {
		return []Score{}, nil
	}

	// First occurrence wins when a source repeats a label.
	perSource := make(map[string]map[string]float64, len(active))
	var labels []string
	seen := map[string]bool{}
	for _, name := range active {
		bySource := make(map[string]float64, len(sources[name]))
		for i, s := range sources[name] {
			if err := s.Validate(); err != nil {
				return nil, fmt.Errorf("source %q, entry %d: %w", name, i, err)
			}
			label := canonical(s.Label)
			if _, dup := bySource[label]; !dup {
				bySource[label] = s.Confidence
			}
			if !seen[label] {
				seen[label] = true
				labels = append(labels, label)
			}
		}
		perSource[name] = bySource
	}

	combined := make([]Score, 0, len(labels))
	for _, label := range labels {
		var weightedSum, totalWeight float64
		for name, bySource := range perSource {
			if score := bySource[label]; score > 0 {
				weightedSum += score * weights[name]
				totalWeight += weights[name]
			}
		}
		if totalWeight > 0 {
			combined = append(combined, Score{Label: label, Confidence: weightedSum / totalWeight})
		}
	}

	SortScores(combined)
	return combined, nil
}
