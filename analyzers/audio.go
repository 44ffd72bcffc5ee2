package analyzers

import (
	"context"
	"math"
	"math/rand"
	"sync"

	"github.com/Keerthi292/Emotion-Recognition-system/clients"
	"github.com/Keerthi292/Emotion-Recognition-system/emotion"
)

// Audio scores speech audio. With a service configured it uploads the clip
// to a remote classifier; otherwise it runs a local heuristic over coarse
// signal statistics. The heuristic is intentionally noisy, so the random
// source is injected for testability; rand.Rand is not safe for concurrent
// use, so draws are serialized behind mu.
type Audio struct {
	url  string
	http *clients.HTTP

	mu  sync.Mutex
	rng *rand.Rand
}

func NewAudio(url string, h *clients.HTTP, rng *rand.Rand) *Audio {
	return &Audio{url: url, http: h, rng: rng}
}

func (a *Audio) Name() string { return "audio" }
func (a *Audio) Ready() bool  { return true }

func (a *Audio) Mode() string {
	if a.url != "" {
		return OriginModel
	}
	return OriginHeuristic
}

func (a *Audio) Analyze(ctx context.Context, in Input) (Result, error) {
	if in.AudioPath == "" {
		return Result{}, nil
	}
	if a.url != "" {
		scores, err := a.http.DetectFile(ctx, a.url, in.AudioPath)
		if err != nil {
			return Result{}, err
		}
		return Result{Scores: scores, Origin: OriginModel}, nil
	}
	feats, err := wavStats(in.AudioPath)
	if err != nil {
		return Result{}, err
	}
	a.mu.Lock()
	scores := Classify(feats, a.rng)
	a.mu.Unlock()
	return Result{Scores: scores, Origin: OriginHeuristic}, nil
}

// Features are the coarse signal statistics the heuristic classifier
// operates on.
type Features struct {
	// Energy is loudness on a dB scale anchored at a nominal speech
	// level: zero at -30 dBFS, negative for quieter audio, positive for
	// louder.
	Energy   float64
	Centroid float64 // spectral centroid estimate, Hz
	ZCR      float64 // zero crossing rate
}

var heuristicLabels = []string{"happy", "sad", "angry", "neutral", "fear", "surprise"}

// branchScore is one rule-selected emotion: a base confidence plus the
// spread of the noise applied around it.
type branchScore struct {
	label string
	base  float64
	sigma float64
}

// branch picks the dominant emotion pair for the given features. Bright,
// loud signals lean happy; quiet signals lean sad; high zero crossing
// rates lean angry.
func branch(f Features) []branchScore {
	switch {
	case f.Energy > 0.5 && f.Centroid > 2000:
		return []branchScore{{"happy", 60, 10}, {"surprise", 25, 8}}
	case f.Energy < -0.5:
		return []branchScore{{"sad", 55, 12}, {"neutral", 30, 8}}
	case f.ZCR > 0.1:
		return []branchScore{{"angry", 50, 10}, {"fear", 35, 8}}
	default:
		return []branchScore{{"neutral", 45, 10}, {"happy", 30, 8}}
	}
}

// Classify maps coarse audio features to an emotion distribution. The
// rule-selected pair gets noisy high scores, labels the rules did not
// touch get a small floor score, and the whole distribution is rescaled
// to sum to 100.
func Classify(f Features, rng *rand.Rand) []emotion.Score {
	raw := map[string]float64{}
	for _, b := range branch(f) {
		raw[b.label] = b.base + rng.NormFloat64()*b.sigma
	}

	for _, label := range heuristicLabels {
		if _, ok := raw[label]; !ok {
			raw[label] = math.Max(5, 20+rng.NormFloat64()*5)
		}
	}

	var total float64
	for _, v := range raw {
		total += v
	}

	scores := make([]emotion.Score, 0, len(raw))
	for label, v := range raw {
		c := math.Max(0, v/total*100)
		scores = append(scores, emotion.Score{Label: label, Confidence: math.Round(c*100) / 100})
	}
	emotion.SortScores(scores)
	return scores
}
