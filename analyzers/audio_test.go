package analyzers

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"
	"math"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Keerthi292/Emotion-Recognition-system/clients"
	"github.com/Keerthi292/Emotion-Recognition-system/emotion"
)

// writeWav builds a minimal 16-bit PCM mono WAV around the given samples.
func writeWav(t *testing.T, samples []int16, sampleRate uint32) string {
	t.Helper()

	pcm := make([]byte, 2*len(samples))
	for i, s := range samples {
		binary.LittleEndian.PutUint16(pcm[2*i:], uint16(s))
	}

	var buf []byte
	put32 := func(v uint32) {
		b := make([]byte, 4)
		binary.LittleEndian.PutUint32(b, v)
		buf = append(buf, b...)
	}
	put16 := func(v uint16) {
		b := make([]byte, 2)
		binary.LittleEndian.PutUint16(b, v)
		buf = append(buf, b...)
	}

	buf = append(buf, "RIFF"...)
	put32(uint32(36 + len(pcm)))
	buf = append(buf, "WAVE"...)
	buf = append(buf, "fmt "...)
	put32(16)
	put16(1) // PCM
	put16(1) // mono
	put32(sampleRate)
	put32(sampleRate * 2)
	put16(2)
	put16(16)
	buf = append(buf, "data"...)
	put32(uint32(len(pcm)))
	buf = append(buf, pcm...)

	path := filepath.Join(t.TempDir(), "clip.wav")
	require.NoError(t, os.WriteFile(path, buf, 0o644))
	return path
}

func TestWavStats(t *testing.T) {
	// alternating full-scale samples: max energy, max crossing rate
	samples := make([]int16, 1000)
	for i := range samples {
		if i%2 == 0 {
			samples[i] = 16384
		} else {
			samples[i] = -16384
		}
	}
	path := writeWav(t, samples, 16000)

	f, err := wavStats(path)
	require.NoError(t, err)
	// half scale is ~ -6 dBFS, 24 dB above the -30 dBFS anchor
	assert.InDelta(t, 1.2, f.Energy, 0.01)
	assert.Greater(t, f.ZCR, 0.9)
	assert.Greater(t, f.Centroid, 2000.0)
}

func TestWavStatsQuietAudioNegativeEnergy(t *testing.T) {
	// ~20/32768 of full scale is around -64 dBFS, far below nominal
	samples := make([]int16, 1000)
	for i := range samples {
		samples[i] = 20
	}
	path := writeWav(t, samples, 16000)

	f, err := wavStats(path)
	require.NoError(t, err)
	assert.Less(t, f.Energy, -0.5)
}

func TestQuietWavLeansSad(t *testing.T) {
	samples := make([]int16, 1000)
	for i := range samples {
		samples[i] = 20
	}
	path := writeWav(t, samples, 16000)

	f, err := wavStats(path)
	require.NoError(t, err)
	require.Equal(t, "sad", branch(f)[0].label)

	// sad carries the highest base score, so it should dominate for the
	// vast majority of noise draws
	sadTop := 0
	for seed := int64(0); seed < 20; seed++ {
		if Classify(f, rand.New(rand.NewSource(seed)))[0].Label == "sad" {
			sadTop++
		}
	}
	assert.GreaterOrEqual(t, sadTop, 15)

	a := NewAudio("", nil, rand.New(rand.NewSource(11)))
	res, err := a.Analyze(context.Background(), Input{AudioPath: path})
	require.NoError(t, err)
	assert.Equal(t, OriginHeuristic, res.Origin)
	labels := map[string]float64{}
	for _, s := range res.Scores {
		labels[s.Label] = s.Confidence
	}
	assert.Greater(t, labels["sad"], 0.0)
}

func TestLoudBrightWavLeansHappy(t *testing.T) {
	samples := make([]int16, 1000)
	for i := range samples {
		if i%2 == 0 {
			samples[i] = 16384
		} else {
			samples[i] = -16384
		}
	}
	path := writeWav(t, samples, 16000)

	f, err := wavStats(path)
	require.NoError(t, err)
	assert.Equal(t, "happy", branch(f)[0].label)
}

func TestWavStatsRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "junk.wav")
	require.NoError(t, os.WriteFile(path, []byte("not a wav at all"), 0o644))
	_, err := wavStats(path)
	assert.Error(t, err)
}

func TestClassifyDistribution(t *testing.T) {
	cases := []Features{
		{Energy: 0.8, Centroid: 3000, ZCR: 0.4}, // happy branch
		{Energy: -0.8},                          // sad branch
		{Energy: 0.1, ZCR: 0.3},                 // angry branch
		{},                                      // neutral branch
	}
	for _, f := range cases {
		scores := Classify(f, rand.New(rand.NewSource(7)))
		require.Len(t, scores, len(heuristicLabels))

		var sum float64
		for _, s := range scores {
			assert.GreaterOrEqual(t, s.Confidence, 0.0)
			sum += s.Confidence
		}
		// rounding to 2 decimals keeps the sum near 100
		assert.InDelta(t, 100, sum, 0.1)

		for i := 1; i < len(scores); i++ {
			assert.GreaterOrEqual(t, scores[i-1].Confidence, scores[i].Confidence)
		}
	}
}

func TestClassifyDeterministicWithFixedSeed(t *testing.T) {
	f := Features{Energy: 0.8, Centroid: 3000, ZCR: 0.4}
	a := Classify(f, rand.New(rand.NewSource(42)))
	b := Classify(f, rand.New(rand.NewSource(42)))
	assert.Equal(t, a, b)
	assert.Equal(t, "happy", a[0].Label)
}

func TestAudioAbstainsWithoutInput(t *testing.T) {
	a := NewAudio("", nil, rand.New(rand.NewSource(1)))
	res, err := a.Analyze(context.Background(), Input{})
	require.NoError(t, err)
	assert.Empty(t, res.Scores)
}

func TestAudioHeuristicMode(t *testing.T) {
	samples := make([]int16, 400) // digital silence, far below nominal level
	path := writeWav(t, samples, 16000)

	a := NewAudio("", nil, rand.New(rand.NewSource(3)))
	assert.Equal(t, OriginHeuristic, a.Mode())

	res, err := a.Analyze(context.Background(), Input{AudioPath: path})
	require.NoError(t, err)
	assert.Equal(t, OriginHeuristic, res.Origin)
	require.Len(t, res.Scores, len(heuristicLabels))
	labels := map[string]bool{}
	for _, s := range res.Scores {
		labels[s.Label] = true
	}
	assert.True(t, labels["sad"])
	assert.True(t, labels["neutral"])
}

func TestAudioConcurrentAnalyze(t *testing.T) {
	path := writeWav(t, make([]int16, 400), 16000)
	a := NewAudio("", nil, rand.New(rand.NewSource(1)))

	var wg sync.WaitGroup
	errs := make(chan error, 8*25)
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 25; i++ {
				res, err := a.Analyze(context.Background(), Input{AudioPath: path})
				if err == nil && len(res.Scores) != len(heuristicLabels) {
					err = errors.New("short score list")
				}
				if err != nil {
					errs <- err
				}
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		assert.NoError(t, err)
	}
}

func TestAudioRemoteMode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(clients.DetectResp{Emotions: []emotion.Score{
			{Label: "fear", Confidence: 77},
		}})
	}))
	defer srv.Close()

	path := writeWav(t, make([]int16, 10), 16000)
	a := NewAudio(srv.URL, clients.NewHTTP(5*time.Second), rand.New(rand.NewSource(1)))
	assert.Equal(t, OriginModel, a.Mode())

	res, err := a.Analyze(context.Background(), Input{AudioPath: path})
	require.NoError(t, err)
	assert.Equal(t, OriginModel, res.Origin)
	require.Len(t, res.Scores, 1)
	assert.Equal(t, "fear", res.Scores[0].Label)
}

func TestAudioRemoteFailureAbstains(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	path := writeWav(t, make([]int16, 10), 16000)
	a := NewAudio(srv.URL, clients.NewHTTP(5*time.Second), rand.New(rand.NewSource(1)))
	_, err := a.Analyze(context.Background(), Input{AudioPath: path})
	assert.Error(t, err)
}

func TestClassifyNeverNegative(t *testing.T) {
	for seed := int64(0); seed < 50; seed++ {
		for _, s := range Classify(Features{Energy: -0.8}, rand.New(rand.NewSource(seed))) {
			assert.False(t, math.Signbit(s.Confidence) && s.Confidence != 0)
		}
	}
}
