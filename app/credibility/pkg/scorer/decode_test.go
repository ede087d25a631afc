package scorer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	dm "github.com/iWorld-y/cred_radar/app/credibility/pkg/model"
)

func TestDecodeScore(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want int
	}{
		{name: "integer", in: float64(73), want: 73},
		{name: "zero is kept", in: float64(0), want: 0},
		{name: "rounded", in: 64.5, want: 65},
		{name: "clamped high", in: float64(140), want: 100},
		{name: "clamped low", in: float64(-3), want: 0},
		{name: "numeric string", in: " 42 ", want: 42},
		{name: "non numeric string", in: "high", want: DefaultScore},
		{name: "missing", in: nil, want: DefaultScore},
		{name: "wrong type", in: []any{1}, want: DefaultScore},
		{name: "bool", in: true, want: DefaultScore},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, decodeScore(tt.in))
		})
	}
}

func TestDecodeEnums(t *testing.T) {
	assert.Equal(t, dm.RecommendationLikelyPropaganda,
		decodeEnum[dm.Recommendation]("likely PROPAGANDA", dm.Recommendations, DefaultRecommendation))
	assert.Equal(t, DefaultRecommendation,
		decodeEnum[dm.Recommendation]("Probably fine", dm.Recommendations, DefaultRecommendation))
	assert.Equal(t, DefaultRecommendation,
		decodeEnum[dm.Recommendation](float64(1), dm.Recommendations, DefaultRecommendation))

	assert.Equal(t, dm.DomainReputationSuspicious,
		decodeEnum[dm.DomainReputation](" suspicious ", dm.DomainReputations, DefaultDomainReputation))
	assert.Equal(t, DefaultDomainReputation,
		decodeEnum[dm.DomainReputation](nil, dm.DomainReputations, DefaultDomainReputation))
}

func TestDecodeStrings(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, decodeStrings([]any{"a", float64(3), "", " b "}))
	assert.Equal(t, []string{}, decodeStrings("a single string"))
	assert.Equal(t, []string{}, decodeStrings(nil))
}

func TestDecodePartialReply(t *testing.T) {
	fields, ok := parseReply(`{"credibilityScore": "80", "recommendation": "trustworthy", "redFlags": "none"}`)
	assert.True(t, ok)

	got := Decode(fields)
	assert.Equal(t, 80, got.Score)
	assert.Equal(t, dm.RecommendationTrustworthy, got.Breakdown.Recommendation)
	assert.Equal(t, []string{}, got.Breakdown.RedFlags)
	assert.Equal(t, DefaultScore, got.Breakdown.CitationQualityScore)
	assert.Equal(t, DefaultWritingStyleSummary, got.Breakdown.WritingStyleSummary)
}

func TestParseReply(t *testing.T) {
	fields, ok := parseReply("```\n{\"a\": 1}\n```")
	assert.True(t, ok)
	assert.Equal(t, float64(1), fields["a"])

	fields, ok = parseReply("{broken")
	assert.False(t, ok)
	assert.NotNil(t, fields)
	assert.Empty(t, fields)
}
