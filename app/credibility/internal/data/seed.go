package data

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/go-kratos/kratos/v2/log"
	"gopkg.in/yaml.v3"

	"github.com/iWorld-y/cred_radar/app/credibility/internal/domain"
	"github.com/iWorld-y/cred_radar/app/credibility/pkg/model"
)

//go:embed seed.yaml
var seedYAML []byte

type seedAnalysis struct {
	Title            string `yaml:"title"`
	ContentSnippet   string `yaml:"content_snippet"`
	CredibilityScore int    `yaml:"credibility_score"`
	Breakdown        struct {
		RedFlags               []string `yaml:"red_flags"`
		PositiveSignals        []string `yaml:"positive_signals"`
		Recommendation         string   `yaml:"recommendation"`
		EmotionalLanguageScore int      `yaml:"emotional_language_score"`
		CitationQualityScore   int      `yaml:"citation_quality_score"`
		DomainReputation       string   `yaml:"domain_reputation"`
		WritingStyleSummary    string   `yaml:"writing_style_summary"`
	} `yaml:"breakdown"`
}

func loadSeed() ([]*domain.AnalysisDraft, error) {
	var items []seedAnalysis
	if err := yaml.Unmarshal(seedYAML, &items); err != nil {
		return nil, fmt.Errorf("parse seed.yaml: %w", err)
	}

	drafts := make([]*domain.AnalysisDraft, 0, len(items))
	for _, it := range items {
		title := it.Title
		drafts = append(drafts, &domain.AnalysisDraft{
			Title:            &title,
			ContentSnippet:   it.ContentSnippet,
			CredibilityScore: it.CredibilityScore,
			Breakdown: model.Breakdown{
				RedFlags:               it.Breakdown.RedFlags,
				PositiveSignals:        it.Breakdown.PositiveSignals,
				Recommendation:         model.Recommendation(it.Breakdown.Recommendation),
				EmotionalLanguageScore: it.Breakdown.EmotionalLanguageScore,
				CitationQualityScore:   it.Breakdown.CitationQualityScore,
				DomainReputation:       model.DomainReputation(it.Breakdown.DomainReputation),
				WritingStyleSummary:    it.Breakdown.WritingStyleSummary,
			},
		})
	}
	return drafts, nil
}

// seed 表为空时写入示例数据
func (d *Data) seed(ctx context.Context, helper *log.Helper) error {
	r := &analysisRepo{data: d, log: helper}

	n, err := r.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	drafts, err := loadSeed()
	if err != nil {
		return err
	}
	for _, draft := range drafts {
		if _, err := r.Create(ctx, draft); err != nil {
			return err
		}
	}
	helper.Infof("seeded %d sample analyses", len(drafts))
	return nil
}
