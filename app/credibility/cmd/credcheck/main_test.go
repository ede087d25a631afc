package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iWorld-y/cred_radar/app/credibility/internal/data"
	"github.com/iWorld-y/cred_radar/app/credibility/internal/domain"
	"github.com/iWorld-y/cred_radar/app/credibility/pkg/config"
	"github.com/iWorld-y/cred_radar/app/credibility/pkg/model"
)

type stubEvaluator struct {
	calls int
}

func (s *stubEvaluator) Evaluate(_ context.Context, in model.Input) (*model.Evaluation, error) {
	s.calls++
	return &model.Evaluation{
		URL:     in.URL,
		Title:   "User Input Text",
		Content: in.Text,
		Assessment: model.Assessment{
			Score: 42,
			Breakdown: model.Breakdown{
				RedFlags:        []string{},
				PositiveSignals: []string{},
				Recommendation:  model.RecommendationVerifyCarefully,
			},
		},
	}, nil
}

var article = strings.Repeat("Plain text pasted from a newsletter. ", 4)

func TestBuildRequest(t *testing.T) {
	req, err := buildRequest("", "", "")
	require.NoError(t, err)
	assert.Nil(t, req.URL)
	assert.Nil(t, req.Text)

	path := filepath.Join(t.TempDir(), "article.txt")
	require.NoError(t, os.WriteFile(path, []byte(article), 0o644))

	req, err = buildRequest("https://example.com", "ignored", path)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com", *req.URL)
	assert.Equal(t, article, *req.Text)

	_, err = buildRequest("", "", filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}

func TestAnalyzeWithoutDatabase(t *testing.T) {
	ev := &stubEvaluator{}
	req, _ := buildRequest("", article, "")

	res, err := analyze(context.Background(), &config.Config{}, ev, req)
	require.NoError(t, err)
	assert.Equal(t, int64(0), res.ID)
	assert.Equal(t, 42, res.CredibilityScore)

	var buf bytes.Buffer
	require.NoError(t, printResult(&buf, res))
	var out map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	assert.Equal(t, float64(42), out["credibilityScore"])
}

func TestAnalyzeRejectsInvalidInput(t *testing.T) {
	ev := &stubEvaluator{}
	req, _ := buildRequest("", "too short", "")

	_, err := analyze(context.Background(), &config.Config{}, ev, req)
	require.Error(t, err)
	assert.Equal(t, 0, ev.calls)
}

func TestAnalyzePersistsWhenDatabaseConfigured(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "credcheck.db")
	cfg := &config.Config{DB: config.DBConfig{Driver: "sqlite", Name: dbPath}}
	req, _ := buildRequest("", article, "")

	res, err := analyze(context.Background(), cfg, &stubEvaluator{}, req)
	require.NoError(t, err)
	assert.Positive(t, res.ID)

	d, err := data.Open(data.DriverSQLite, dbPath)
	require.NoError(t, err)
	defer d.Close()

	got, err := data.NewAnalysisRepo(d, log.DefaultLogger).Get(context.Background(), res.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.Snippet(article), got.ContentSnippet)
}
