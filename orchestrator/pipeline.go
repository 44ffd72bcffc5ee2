package orchestrator

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/Keerthi292/Emotion-Recognition-system/analyzers"
	"github.com/Keerthi292/Emotion-Recognition-system/clients"
	cfg "github.com/Keerthi292/Emotion-Recognition-system/config"
	"github.com/Keerthi292/Emotion-Recognition-system/emotion"
)

// Pipeline fans a request out to the modality sources, collects whatever
// they return, and fuses the survivors into one combined distribution. The
// fusion itself is pure; all I/O lives in the sources.
type Pipeline struct {
	cfg     *cfg.Root
	sources []analyzers.Source
	log     *logrus.Logger
}

// New builds a pipeline over explicit sources. Tests inject stubs here.
func New(c *cfg.Root, log *logrus.Logger, sources ...analyzers.Source) *Pipeline {
	return &Pipeline{cfg: c, sources: sources, log: log}
}

// NewDefault wires the standard text/audio/visual sources from config.
func NewDefault(c *cfg.Root, log *logrus.Logger) *Pipeline {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	return New(c, log,
		analyzers.NewText(c.Analyzers.Text.URL, clients.NewHTTP(c.Analyzers.Text.Timeout())),
		analyzers.NewAudio(c.Analyzers.Audio.URL, clients.NewHTTP(c.Analyzers.Audio.Timeout()), rng),
		analyzers.NewVisual(c.Analyzers.Visual.URL, clients.NewHTTP(c.Analyzers.Visual.Timeout())),
	)
}

// Analyze runs the present modalities concurrently and fuses their
// results. A failing or empty source abstains; it never fails the request.
func (p *Pipeline) Analyze(ctx context.Context, in analyzers.Input) (*Analysis, error) {
	start := time.Now()

	var mu sync.Mutex
	var wg sync.WaitGroup
	results := make(map[string]analyzers.Result, len(p.sources))

	for _, src := range p.sources {
		wg.Add(1)
		go func(s analyzers.Source) {
			defer wg.Done()
			res, err := s.Analyze(ctx, in)
			if err != nil {
				p.log.WithField("module", s.Name()).WithError(err).Warn("analyzer failed, abstaining")
				return
			}
			if len(res.Scores) == 0 {
				return
			}
			mu.Lock()
			results[s.Name()] = res
			mu.Unlock()
		}(src)
	}
	wg.Wait()

	perModality := make(map[string][]emotion.Score, len(results))
	for name, r := range results {
		perModality[name] = r.Scores
	}
	combined, err := emotion.Combine(perModality, emotion.Weights(p.cfg.Fusion.Weights))
	if err != nil {
		return nil, err
	}
	if p.cfg.Fusion.Normalize {
		combined = emotion.Normalize(combined)
	}
	if k := p.cfg.Fusion.TopK; k > 0 && len(combined) > k {
		combined = emotion.TopK(combined, k)
	}

	a := &Analysis{
		ID:               "analysis_" + uuid.NewString(),
		Version:          p.cfg.Pipeline.Version,
		Timestamp:        start.UTC(),
		CombinedEmotions: combined,
		ProcessingTime:   fmt.Sprintf("%.2fs", time.Since(start).Seconds()),
	}
	if len(results) > 0 {
		a.Origins = make(map[string]string, len(results))
	}
	for name, r := range results {
		a.Origins[name] = r.Origin
		switch name {
		case "text":
			a.TextEmotions = r.Scores
		case "audio":
			a.AudioEmotions = r.Scores
		case "visual":
			a.VisualEmotions = r.Scores
		}
	}

	p.log.WithField("module", "orchestrator").
		Infof("combined emotions from %d sources in %s", len(results), a.ProcessingTime)

	if p.cfg.Paths.Outputs != "" {
		if err := p.persist(a); err != nil {
			p.log.WithField("module", "orchestrator").WithError(err).Warn("persist failed")
		}
	}
	return a, nil
}

// Status reports each source for the health endpoints.
func (p *Pipeline) Status() []SourceStatus {
	out := make([]SourceStatus, 0, len(p.sources))
	for _, s := range p.sources {
		out = append(out, SourceStatus{Name: s.Name(), Mode: s.Mode(), Ready: s.Ready()})
	}
	return out
}
