package engine

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/cloudwego/eino-ext/components/model/openai"

	"github.com/iWorld-y/cred_radar/app/credibility/pkg/config"
	"github.com/iWorld-y/cred_radar/app/credibility/pkg/extractor"
	"github.com/iWorld-y/cred_radar/app/credibility/pkg/logger"
	dm "github.com/iWorld-y/cred_radar/app/credibility/pkg/model"
	"github.com/iWorld-y/cred_radar/app/credibility/pkg/scorer"
)

const (
	// MinContentRunes 可分析正文的最小字符数
	MinContentRunes = 50
	// UserInputTitle 直接粘贴文本时的标题
	UserInputTitle = "User Input Text"
)

var (
	ErrExtraction      = errors.New("extraction failed")
	ErrContentTooShort = errors.New("content too short")
	ErrScoring         = errors.New("scoring failed")
)

// ContentExtractor 网页正文抽取
type ContentExtractor interface {
	Extract(ctx context.Context, url string) (*dm.ExtractedContent, error)
}

// ContentScorer 正文可信度打分
type ContentScorer interface {
	Score(ctx context.Context, content, url string) (*dm.Assessment, error)
}

// Engine 评估流水线：抽取 → 长度校验 → 打分
type Engine struct {
	extractor ContentExtractor
	scorer    ContentScorer
}

// NewEngine 根据配置创建引擎实例
func NewEngine(cfg *config.Config) (*Engine, error) {
	ctx := context.Background()

	// 初始化 LLM
	chatModel, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
		BaseURL: cfg.LLM.BaseURL,
		APIKey:  cfg.LLM.APIKey,
		Model:   cfg.LLM.Model,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("LLM 初始化失败: %w", err)
	}

	sc := scorer.New(chatModel,
		scorer.WithLimiter(scorer.NewLimiter(cfg.Concurrency.RPM, cfg.Concurrency.QPS)))

	ext := extractor.New(
		extractor.WithTimeout(cfg.Extractor.Timeout),
		extractor.WithUserAgent(cfg.Extractor.UserAgent),
		extractor.WithReadabilityFallback(cfg.Extractor.ReadabilityFallback),
	)

	return NewEngineWith(ext, sc), nil
}

// NewEngineWith 使用给定的抽取器和打分器创建引擎
func NewEngineWith(ext ContentExtractor, sc ContentScorer) *Engine {
	return &Engine{extractor: ext, scorer: sc}
}

// Evaluate 执行一次完整评估。同时给出 URL 和文本时分析文本，URL 仅作记录
func (e *Engine) Evaluate(ctx context.Context, in dm.Input) (*dm.Evaluation, error) {
	eval := &dm.Evaluation{URL: in.URL}

	switch {
	case in.Text != "":
		eval.Title = UserInputTitle
		eval.Content = in.Text
	case in.URL != "":
		logger.Log.Infof("开始抓取 [%s]", in.URL)
		extracted, err := e.extractor.Extract(ctx, in.URL)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrExtraction, err)
		}
		eval.Title = extracted.Title
		eval.Content = extracted.Content
	default:
		return nil, fmt.Errorf("%w: no url or text", ErrContentTooShort)
	}

	if n := utf8.RuneCountInString(eval.Content); n < MinContentRunes {
		return nil, fmt.Errorf("%w: %d characters", ErrContentTooShort, n)
	}

	assessment, err := e.scorer.Score(ctx, eval.Content, in.URL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScoring, err)
	}
	eval.Assessment = *assessment

	logger.Log.Infof("评估完成 [%s] score=%d", eval.Title, assessment.Score)
	return eval, nil
}
