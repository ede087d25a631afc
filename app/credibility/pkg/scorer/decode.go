package scorer

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	dm "github.com/iWorld-y/cred_radar/app/credibility/pkg/model"
)

// 字段缺失或类型不符时的默认值
const (
	DefaultScore               = 50
	DefaultRecommendation      = dm.RecommendationVerifyCarefully
	DefaultDomainReputation    = dm.DomainReputationUnknown
	DefaultWritingStyleSummary = "Analysis unavailable"
)

// parseReply 去掉代码块标记后解析为 map，失败时返回空 map
func parseReply(raw string) (map[string]any, bool) {
	clean := strings.TrimSpace(raw)
	clean = strings.TrimPrefix(clean, "```json")
	clean = strings.TrimPrefix(clean, "```")
	clean = strings.TrimSuffix(clean, "```")
	clean = strings.TrimSpace(clean)

	var fields map[string]any
	if err := json.Unmarshal([]byte(clean), &fields); err != nil || fields == nil {
		return map[string]any{}, false
	}
	return fields, true
}

// Decode 把松散的 LLM 回复映射为完整评估，每个字段独立回退到默认值
func Decode(fields map[string]any) *dm.Assessment {
	return &dm.Assessment{
		Score: decodeScore(fields["credibilityScore"]),
		Breakdown: dm.Breakdown{
			RedFlags:               decodeStrings(fields["redFlags"]),
			PositiveSignals:        decodeStrings(fields["positiveSignals"]),
			Recommendation:         decodeEnum(fields["recommendation"], dm.Recommendations, DefaultRecommendation),
			EmotionalLanguageScore: decodeScore(fields["emotionalLanguageScore"]),
			CitationQualityScore:   decodeScore(fields["citationQualityScore"]),
			DomainReputation:       decodeEnum(fields["domainReputation"], dm.DomainReputations, DefaultDomainReputation),
			WritingStyleSummary:    decodeSummary(fields["writingStyleSummary"]),
		},
	}
}

// decodeScore 接受数字或数字字符串，四舍五入并限制在 [0,100]
func decodeScore(v any) int {
	var f float64
	switch x := v.(type) {
	case float64:
		f = x
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return DefaultScore
		}
		f = parsed
	default:
		return DefaultScore
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return DefaultScore
	}
	return int(math.Max(0, math.Min(100, math.Round(f))))
}

// decodeStrings 只保留非空字符串元素；不是数组时返回空切片
func decodeStrings(v any) []string {
	items, ok := v.([]any)
	out := make([]string, 0, len(items))
	if !ok {
		return out
	}
	for _, item := range items {
		if s, ok := item.(string); ok {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
	}
	return out
}

func decodeEnum[T ~string](v any, allowed []T, def T) T {
	s, ok := v.(string)
	if !ok {
		return def
	}
	s = strings.TrimSpace(s)
	for _, a := range allowed {
		if strings.EqualFold(s, string(a)) {
			return a
		}
	}
	return def
}

func decodeSummary(v any) string {
	if s, ok := v.(string); ok {
		if s = strings.TrimSpace(s); s != "" {
			return s
		}
	}
	return DefaultWritingStyleSummary
}
