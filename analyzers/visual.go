package analyzers

import (
	"context"

	"github.com/Keerthi292/Emotion-Recognition-system/clients"
	"github.com/Keerthi292/Emotion-Recognition-system/emotion"
)

// Visual scores facial imagery through a remote analyzer service. When the
// service is unconfigured or fails, it returns the documented default
// distribution instead of aborting: a face was supplied, so the modality
// still votes, just with low-information priors.
type Visual struct {
	url  string
	http *clients.HTTP
}

func NewVisual(url string, h *clients.HTTP) *Visual {
	return &Visual{url: url, http: h}
}

func (v *Visual) Name() string { return "visual" }
func (v *Visual) Ready() bool  { return true }

func (v *Visual) Mode() string {
	if v.url != "" {
		return OriginModel
	}
	return OriginFallback
}

func (v *Visual) Analyze(ctx context.Context, in Input) (Result, error) {
	if in.ImagePath == "" {
		return Result{}, nil
	}
	if v.url != "" {
		scores, err := v.http.DetectFile(ctx, v.url, in.ImagePath)
		if err == nil {
			return Result{Scores: scores, Origin: OriginModel}, nil
		}
	}
	return Result{Scores: DefaultDistribution(), Origin: OriginFallback}, nil
}

// DefaultDistribution is the facial-emotion prior used when detection is
// unavailable.
func DefaultDistribution() []emotion.Score {
	return []emotion.Score{
		{Label: "neutral", Confidence: 40},
		{Label: "happy", Confidence: 25},
		{Label: "surprise", Confidence: 15},
		{Label: "fear", Confidence: 10},
		{Label: "sad", Confidence: 5},
		{Label: "angry", Confidence: 3},
		{Label: "disgust", Confidence: 2},
	}
}
