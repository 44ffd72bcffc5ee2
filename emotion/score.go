// Package emotion is the fusion core: it reconciles the ranked
// emotion/confidence lists produced by independent modality analyzers into
// one combined, sorted distribution, with normalization and top-K
// filtering as separate post-processing steps. Everything here is pure and
// safe for concurrent use.
package emotion

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Score is a single emotion label with a confidence on a percentage scale.
// Confidence is only guaranteed to be in [0,100] after Normalize; upstream
// analyzers may emit values outside that range.
type Score struct {
	Label      string  `json:"emotion" yaml:"emotion" validate:"required"`
	Confidence float64 `json:"confidence" yaml:"confidence"`
}

var validate = validator.New()

// Validate reports structurally invalid scores: a blank label or a
// non-finite confidence. A confidence of zero is valid input.
func (s Score) Validate() error {
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("emotion score: %w", err)
	}
	if canonical(s.Label) == "" {
		return fmt.Errorf("emotion score: blank label")
	}
	if math.IsNaN(s.Confidence) || math.IsInf(s.Confidence, 0) {
		return fmt.Errorf("emotion score %q: confidence must be finite", s.Label)
	}
	return nil
}

// canonical is the case-insensitive form labels are matched and emitted in.
func canonical(label string) string {
	return strings.ToLower(strings.TrimSpace(label))
}

// SortScores orders by confidence descending. Equal confidences are broken
// by label ascending so output order is deterministic.
func SortScores(scores []Score) {
	sort.SliceStable(scores, func(i, j int) bool {
		if scores[i].Confidence != scores[j].Confidence {
			return scores[i].Confidence > scores[j].Confidence
		}
		return scores[i].Label < scores[j].Label
	})
}
