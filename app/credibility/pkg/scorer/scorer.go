package scorer

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"golang.org/x/time/rate"

	"github.com/iWorld-y/cred_radar/app/credibility/pkg/logger"
	dm "github.com/iWorld-y/cred_radar/app/credibility/pkg/model"
)

// MaxContentRunes 发送给 LLM 的正文上限（字符数）
const MaxContentRunes = 5000

const systemPrompt = "You are an expert media literacy analyst. Your goal is to help users identify misinformation, propaganda, and low-quality content. Be objective and educational."

const promptTpl = `Analyze the credibility of the following article content%s.

Content:
"%s"
(Content truncated to first %d chars if longer)

Provide a JSON response with the following fields:
- redFlags: array of strings (specific issues found like "Sensationalist headline", "Lack of citations", "Logical fallacies")
- positiveSignals: array of strings (e.g., "Cites reputable sources", "Balanced tone", "Clear authorship")
- recommendation: one of %s
- emotionalLanguageScore: number 0-100 (0 = neutral, 100 = highly emotional/manipulative)
- citationQualityScore: number 0-100 (0 = no citations/bad sources, 100 = excellent academic/primary sources)
- domainReputation: one of %s (if URL provided, check domain; if text, mark Unknown unless obvious)
- writingStyleSummary: string (brief description of tone and style)
- credibilityScore: number 0-100 (overall score, 100 is most credible)

Ensure the response is valid JSON.`

// Scorer 调用 LLM 对正文做可信度评估
type Scorer struct {
	chat    model.BaseChatModel
	limiter *rate.Limiter
}

// Option 配置 Scorer
type Option func(*Scorer)

// WithLimiter 设置 LLM 调用限流器
func WithLimiter(l *rate.Limiter) Option {
	return func(s *Scorer) {
		if l != nil {
			s.limiter = l
		}
	}
}

// NewLimiter 按每分钟请求数与突发数创建限流器，rpm <= 0 时不限流
func NewLimiter(rpm, burst int) *rate.Limiter {
	if rpm <= 0 {
		return rate.NewLimiter(rate.Inf, 0)
	}
	if burst <= 0 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(float64(rpm)/60.0), burst)
}

// New 创建 Scorer
func New(chat model.BaseChatModel, opts ...Option) *Scorer {
	s := &Scorer{
		chat:    chat,
		limiter: NewLimiter(0, 0),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Score 对 content 打分。调用失败返回错误；回复无法解析时各字段取默认值
func (s *Scorer) Score(ctx context.Context, content, url string) (*dm.Assessment, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	messages := []*schema.Message{
		{Role: schema.System, Content: systemPrompt},
		{Role: schema.User, Content: BuildPrompt(content, url)},
	}

	resp, err := s.chat.Generate(ctx, messages)
	if err != nil {
		return nil, fmt.Errorf("llm generate: %w", err)
	}

	raw := ""
	if resp != nil {
		raw = resp.Content
	}
	fields, ok := parseReply(raw)
	if !ok {
		logger.Log.Warnf("LLM 回复不是合法 JSON，使用默认评估: %.200q", raw)
	}

	assessment := Decode(fields)
	logger.Log.Debugf("评估完成 score=%d recommendation=%s", assessment.Score, assessment.Breakdown.Recommendation)
	return assessment, nil
}

// BuildPrompt 生成用户提示词，正文截断到 MaxContentRunes
func BuildPrompt(content, url string) string {
	source := ""
	if url != "" {
		source = fmt.Sprintf(" (from URL: %s)", url)
	}
	return fmt.Sprintf(promptTpl, source, Truncate(content, MaxContentRunes), MaxContentRunes,
		quoteAll(dm.Recommendations), quoteAll(dm.DomainReputations))
}

// Truncate 按字符截断
func Truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

func quoteAll[T ~string](values []T) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprintf("%q", string(v))
	}
	return strings.Join(parts, ", ")
}
