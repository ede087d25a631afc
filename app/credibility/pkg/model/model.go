package model

// Recommendation 可信度结论
type Recommendation string

const (
	RecommendationTrustworthy      Recommendation = "Trustworthy"
	RecommendationVerifyCarefully  Recommendation = "Verify carefully"
	RecommendationLikelyPropaganda Recommendation = "Likely propaganda"
)

// Recommendations 全部合法结论，顺序即提示词中的顺序
var Recommendations = []Recommendation{
	RecommendationTrustworthy,
	RecommendationVerifyCarefully,
	RecommendationLikelyPropaganda,
}

// DomainReputation 来源域名信誉
type DomainReputation string

const (
	DomainReputationSafe       DomainReputation = "Safe"
	DomainReputationSuspicious DomainReputation = "Suspicious"
	DomainReputationUnknown    DomainReputation = "Unknown"
)

// DomainReputations 全部合法信誉取值
var DomainReputations = []DomainReputation{
	DomainReputationSafe,
	DomainReputationSuspicious,
	DomainReputationUnknown,
}

// ExtractedContent 从网页中抽取出的文章
type ExtractedContent struct {
	Title   string
	Content string
}

// Breakdown 可信度分项评估，整体以 JSON 存储
type Breakdown struct {
	RedFlags               []string         `json:"redFlags"`
	PositiveSignals        []string         `json:"positiveSignals"`
	Recommendation         Recommendation   `json:"recommendation"`
	EmotionalLanguageScore int              `json:"emotionalLanguageScore"` // 0 中立，100 极度煽动
	CitationQualityScore   int              `json:"citationQualityScore"`   // 0 无引用，100 一手/学术来源
	DomainReputation       DomainReputation `json:"domainReputation"`
	WritingStyleSummary    string           `json:"writingStyleSummary"`
}

// Assessment 打分结果：总分 + 分项
type Assessment struct {
	Score     int
	Breakdown Breakdown
}

// Input 一次评估的输入，URL 与 Text 至少一个非空
type Input struct {
	URL  string
	Text string
}

// Evaluation 完整评估（尚未持久化）
type Evaluation struct {
	URL        string
	Title      string
	Content    string
	Assessment Assessment
}
