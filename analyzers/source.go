// Package analyzers provides the per-modality emotion sources. Each source
// is an opaque collaborator: it either delegates to a remote analyzer
// service or falls back to local heuristics, and it may legitimately
// abstain by returning no scores.
package analyzers

import (
	"context"

	"github.com/Keerthi292/Emotion-Recognition-system/emotion"
)

// Origins of a modality result.
const (
	OriginModel     = "model"
	OriginHeuristic = "heuristic"
	OriginFallback  = "fallback"
)

// Input carries the raw material for one analysis request. A zero field
// means that modality was not supplied.
type Input struct {
	Text      string
	AudioPath string
	ImagePath string
}

// Result is one modality's contribution to a request. Empty Scores means
// the source abstained.
type Result struct {
	Scores []emotion.Score
	Origin string
}

// Source is one modality's analyzer. An error means the source failed and
// should be treated as an abstention by the caller; it never aborts the
// request.
type Source interface {
	Name() string
	// Mode reports how this source is configured to score: model,
	// heuristic or fallback. Individual results may differ (a remote
	// failure can degrade to a fallback).
	Mode() string
	Ready() bool
	Analyze(ctx context.Context, in Input) (Result, error)
}
