package engine

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iWorld-y/cred_radar/app/credibility/pkg/config"
	"github.com/iWorld-y/cred_radar/app/credibility/pkg/extractor"
	dm "github.com/iWorld-y/cred_radar/app/credibility/pkg/model"
)

type stubExtractor struct {
	content *dm.ExtractedContent
	err     error
	calls   int
}

func (s *stubExtractor) Extract(context.Context, string) (*dm.ExtractedContent, error) {
	s.calls++
	return s.content, s.err
}

type stubScorer struct {
	err       error
	gotText   string
	gotURL    string
	callCount int
}

func (s *stubScorer) Score(_ context.Context, content, url string) (*dm.Assessment, error) {
	s.callCount++
	s.gotText, s.gotURL = content, url
	if s.err != nil {
		return nil, s.err
	}
	return &dm.Assessment{Score: 77, Breakdown: dm.Breakdown{Recommendation: dm.RecommendationTrustworthy}}, nil
}

var article = strings.Repeat("A sufficiently long sentence about verified events. ", 3)

func TestEvaluateText(t *testing.T) {
	ext, sc := &stubExtractor{}, &stubScorer{}

	got, err := NewEngineWith(ext, sc).Evaluate(context.Background(), dm.Input{Text: article})
	require.NoError(t, err)

	assert.Equal(t, UserInputTitle, got.Title)
	assert.Equal(t, article, got.Content)
	assert.Equal(t, "", got.URL)
	assert.Equal(t, 77, got.Assessment.Score)
	assert.Equal(t, 0, ext.calls)
	assert.Equal(t, "", sc.gotURL)
}

func TestEvaluateURL(t *testing.T) {
	ext := &stubExtractor{content: &dm.ExtractedContent{Title: "Mars", Content: article}}
	sc := &stubScorer{}

	got, err := NewEngineWith(ext, sc).Evaluate(context.Background(), dm.Input{URL: "https://example.com/mars"})
	require.NoError(t, err)

	assert.Equal(t, "Mars", got.Title)
	assert.Equal(t, "https://example.com/mars", got.URL)
	assert.Equal(t, "https://example.com/mars", sc.gotURL)
	assert.Equal(t, article, sc.gotText)
}

func TestEvaluateTextWinsOverURL(t *testing.T) {
	ext, sc := &stubExtractor{}, &stubScorer{}

	got, err := NewEngineWith(ext, sc).Evaluate(context.Background(), dm.Input{URL: "https://example.com", Text: article})
	require.NoError(t, err)

	assert.Equal(t, 0, ext.calls)
	assert.Equal(t, "https://example.com", got.URL)
	assert.Equal(t, UserInputTitle, got.Title)
}

func TestEvaluateExtractionFailure(t *testing.T) {
	fetchErr := &extractor.FetchError{URL: "https://example.com", StatusCode: 403}
	sc := &stubScorer{}

	_, err := NewEngineWith(&stubExtractor{err: fetchErr}, sc).Evaluate(context.Background(), dm.Input{URL: "https://example.com"})
	require.Error(t, err)

	assert.ErrorIs(t, err, ErrExtraction)
	var fe *extractor.FetchError
	assert.ErrorAs(t, err, &fe)
	assert.Equal(t, 0, sc.callCount)
}

func TestEvaluateContentTooShort(t *testing.T) {
	ext := &stubExtractor{content: &dm.ExtractedContent{Title: "Tiny", Content: "short"}}
	sc := &stubScorer{}

	_, err := NewEngineWith(ext, sc).Evaluate(context.Background(), dm.Input{URL: "https://example.com"})
	assert.ErrorIs(t, err, ErrContentTooShort)
	assert.Equal(t, 0, sc.callCount)

	// 按字符而不是字节计数
	_, err = NewEngineWith(ext, sc).Evaluate(context.Background(), dm.Input{Text: strings.Repeat("字", 49)})
	assert.ErrorIs(t, err, ErrContentTooShort)

	_, err = NewEngineWith(ext, sc).Evaluate(context.Background(), dm.Input{Text: strings.Repeat("字", 50)})
	assert.NoError(t, err)
}

func TestEvaluateEmptyInput(t *testing.T) {
	_, err := NewEngineWith(&stubExtractor{}, &stubScorer{}).Evaluate(context.Background(), dm.Input{})
	assert.Error(t, err)
}

func TestEvaluateScoringFailure(t *testing.T) {
	sc := &stubScorer{err: errors.New("llm down")}

	_, err := NewEngineWith(&stubExtractor{}, sc).Evaluate(context.Background(), dm.Input{Text: article})
	assert.ErrorIs(t, err, ErrScoring)
	assert.Contains(t, err.Error(), "llm down")
}

func TestNewEngine(t *testing.T) {
	cfg := &config.Config{LLM: config.LLMConfig{APIKey: "sk-test", BaseURL: "http://127.0.0.1:1/v1"}}
	cfg.ApplyDefaults()

	e, err := NewEngine(cfg)
	require.NoError(t, err)
	assert.NotNil(t, e)
}
