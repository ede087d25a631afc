package domain

import (
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-kratos/kratos/v2/errors"

	"github.com/iWorld-y/cred_radar/app/credibility/pkg/engine"
	"github.com/iWorld-y/cred_radar/app/credibility/pkg/model"
)

// SnippetRunes 摘要长度（字符数）
const SnippetRunes = 200

const (
	ReasonInvalidRequest = "INVALID_REQUEST"

	MsgMissingInput   = "Either URL or text must be provided"
	MsgInvalidURL     = "Invalid url"
	MsgTextTooShort   = "Text must be at least 50 characters long"
	MsgInvalidBody    = "Invalid request body"
	MsgScrapeFailed   = "Failed to scrape URL. Please try pasting the text instead."
	MsgContentShort   = "Content is too short to analyze."
	MsgAnalyzeFailed  = "Failed to analyze content."
	MsgListFailed     = "Failed to list history."
	MsgNotFound       = "Analysis not found"
	MsgGetFailed      = "Failed to get analysis."
	MsgInternalServer = "Internal server error"
)

// AnalyzeRequest 分析请求，空字符串视为未提供
type AnalyzeRequest struct {
	URL  *string `json:"url,omitempty"`
	Text *string `json:"text,omitempty"`
}

// Validate 校验请求，失败时返回 400
func (r *AnalyzeRequest) Validate() error {
	u, t := r.url(), r.text()
	if u != "" && !validURL(u) {
		return errors.BadRequest(ReasonInvalidRequest, MsgInvalidURL)
	}
	if t != "" && utf8.RuneCountInString(t) < engine.MinContentRunes {
		return errors.BadRequest(ReasonInvalidRequest, MsgTextTooShort)
	}
	if u == "" && t == "" {
		return errors.BadRequest(ReasonInvalidRequest, MsgMissingInput)
	}
	return nil
}

// Input 转换为流水线输入
func (r *AnalyzeRequest) Input() model.Input {
	return model.Input{URL: r.url(), Text: r.text()}
}

func (r *AnalyzeRequest) url() string {
	if r.URL == nil {
		return ""
	}
	return strings.TrimSpace(*r.URL)
}

func (r *AnalyzeRequest) text() string {
	if r.Text == nil {
		return ""
	}
	return *r.Text
}

func validURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// AnalysisDraft 待持久化的分析结果
type AnalysisDraft struct {
	URL              *string
	Title            *string
	ContentSnippet   string
	CredibilityScore int
	Breakdown        model.Breakdown
}

// AnalysisResult 已持久化的分析结果
type AnalysisResult struct {
	ID               int64           `json:"id"`
	URL              *string         `json:"url"`
	Title            *string         `json:"title"`
	ContentSnippet   string          `json:"contentSnippet"`
	CredibilityScore int             `json:"credibilityScore"`
	Breakdown        model.Breakdown `json:"breakdown"`
	CreatedAt        time.Time       `json:"createdAt"`
}

// NewDraft 从一次评估生成待持久化记录
func NewDraft(e *model.Evaluation) *AnalysisDraft {
	d := &AnalysisDraft{
		ContentSnippet:   Snippet(e.Content),
		CredibilityScore: e.Assessment.Score,
		Breakdown:        e.Assessment.Breakdown,
	}
	if e.URL != "" {
		u := e.URL
		d.URL = &u
	}
	if e.Title != "" {
		title := e.Title
		d.Title = &title
	}
	return d
}

// Snippet 取正文前 SnippetRunes 个字符
func Snippet(content string) string {
	i := 0
	for pos := range content {
		if i == SnippetRunes {
			return content[:pos]
		}
		i++
	}
	return content
}
