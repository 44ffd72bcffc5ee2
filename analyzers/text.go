package analyzers

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/Keerthi292/Emotion-Recognition-system/clients"
)

// maxTextLen is the analyzer's input window; longer text is truncated
// before dispatch.
const maxTextLen = 500

// Text scores written language through a remote classifier service. With
// no service configured it abstains.
type Text struct {
	url  string
	http *clients.HTTP
}

func NewText(url string, h *clients.HTTP) *Text {
	return &Text{url: url, http: h}
}

func (t *Text) Name() string { return "text" }
func (t *Text) Mode() string { return OriginModel }
func (t *Text) Ready() bool  { return t.url != "" }

func (t *Text) Analyze(ctx context.Context, in Input) (Result, error) {
	text := Preprocess(in.Text)
	if text == "" || t.url == "" {
		return Result{}, nil
	}
	scores, err := t.http.DetectText(ctx, t.url, text)
	if err != nil {
		return Result{}, err
	}
	return Result{Scores: scores, Origin: OriginModel}, nil
}

// Preprocess collapses whitespace and truncates to the classifier's input
// window. The window is counted in runes so multi-byte characters are
// never split.
func Preprocess(text string) string {
	text = strings.Join(strings.Fields(text), " ")
	if utf8.RuneCountInString(text) > maxTextLen {
		text = string([]rune(text)[:maxTextLen])
	}
	return text
}
