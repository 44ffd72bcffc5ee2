package analyzers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Keerthi292/Emotion-Recognition-system/clients"
	"github.com/Keerthi292/Emotion-Recognition-system/emotion"
)

func TestPreprocess(t *testing.T) {
	assert.Equal(t, "hello world", Preprocess("  hello \n\t world  "))
	assert.Equal(t, "", Preprocess("   \n  "))

	long := strings.Repeat("a", 600)
	assert.Len(t, Preprocess(long), maxTextLen)
}

func TestPreprocessTruncatesOnRuneBoundary(t *testing.T) {
	long := strings.Repeat("é", maxTextLen+100)
	got := Preprocess(long)
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, maxTextLen, utf8.RuneCountInString(got))
}

func TestTextAbstainsOnEmptyInput(t *testing.T) {
	a := NewText("http://localhost:1", nil)
	res, err := a.Analyze(context.Background(), Input{Text: "   "})
	require.NoError(t, err)
	assert.Empty(t, res.Scores)
}

func TestTextAbstainsWithoutService(t *testing.T) {
	a := NewText("", nil)
	assert.False(t, a.Ready())

	res, err := a.Analyze(context.Background(), Input{Text: "hello"})
	require.NoError(t, err)
	assert.Empty(t, res.Scores)
}

func TestTextRemote(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req clients.DetectReq
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "so happy today", req.Text)
		json.NewEncoder(w).Encode(clients.DetectResp{Emotions: []emotion.Score{
			{Label: "joy", Confidence: 92.1},
			{Label: "neutral", Confidence: 7.9},
		}})
	}))
	defer srv.Close()

	a := NewText(srv.URL, clients.NewHTTP(5*time.Second))
	assert.True(t, a.Ready())

	res, err := a.Analyze(context.Background(), Input{Text: " so  happy today "})
	require.NoError(t, err)
	assert.Equal(t, OriginModel, res.Origin)
	require.Len(t, res.Scores, 2)
	assert.Equal(t, "joy", res.Scores[0].Label)
}

func TestTextRemoteFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusBadGateway)
	}))
	defer srv.Close()

	a := NewText(srv.URL, clients.NewHTTP(time.Second))
	_, err := a.Analyze(context.Background(), Input{Text: "hello"})
	assert.Error(t, err)
}
