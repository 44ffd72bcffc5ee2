package orchestrator

import (
	"time"

	"github.com/Keerthi292/Emotion-Recognition-system/emotion"
)

// Analysis is the assembled result of one request: the surviving
// per-modality distributions plus the fused view.
type Analysis struct {
	ID             string          `json:"analysis_id" yaml:"analysis_id"`
	Version        string          `json:"version" yaml:"version"`
	Timestamp      time.Time       `json:"timestamp" yaml:"timestamp"`
	TextEmotions   []emotion.Score `json:"text_emotions,omitempty" yaml:"text_emotions,omitempty"`
	AudioEmotions  []emotion.Score `json:"audio_emotions,omitempty" yaml:"audio_emotions,omitempty"`
	VisualEmotions []emotion.Score `json:"visual_emotions,omitempty" yaml:"visual_emotions,omitempty"`
	// Origins records how each contributing modality produced its scores
	// (model, heuristic or fallback), so callers can tell real detections
	// from substituted priors.
	Origins          map[string]string `json:"origins,omitempty" yaml:"origins,omitempty"`
	CombinedEmotions []emotion.Score   `json:"combined_emotions" yaml:"combined_emotions"`
	ProcessingTime   string            `json:"processing_time" yaml:"processing_time"`
}

// SourceStatus describes one modality analyzer for health reporting.
type SourceStatus struct {
	Name  string `json:"name"`
	Mode  string `json:"mode"`
	Ready bool   `json:"ready"`
}
