package extractor

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"golang.org/x/net/html/charset"

	"github.com/iWorld-y/cred_radar/app/credibility/pkg/logger"
	"github.com/iWorld-y/cred_radar/app/credibility/pkg/model"
)

const (
	// DefaultTimeout 单次抓取的总时长
	DefaultTimeout = 10 * time.Second
	// DefaultUserAgent 部分站点会拒绝非浏览器 UA
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
	// UntitledArticle 找不到标题时的占位
	UntitledArticle = "Untitled Article"

	noiseSelector = "script, style, nav, footer, iframe, header, aside"
)

// FetchError 抓取失败：网络错误、超时或非 2xx 状态码
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("fetch %s: unexpected status %d", e.URL, e.StatusCode)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Extractor 抓取网页并抽取文章标题与正文
type Extractor struct {
	client      *resty.Client
	readability bool
}

// Option 配置 Extractor
type Option func(*Extractor)

// WithTimeout 设置抓取超时
func WithTimeout(d time.Duration) Option {
	return func(e *Extractor) {
		if d > 0 {
			e.client.SetTimeout(d)
		}
	}
}

// WithUserAgent 覆盖默认 User-Agent
func WithUserAgent(ua string) Option {
	return func(e *Extractor) {
		if ua != "" {
			e.client.SetHeader("User-Agent", ua)
		}
	}
}

// WithReadabilityFallback 在段落兜底之前尝试 readability 抽取
func WithReadabilityFallback(enabled bool) Option {
	return func(e *Extractor) {
		e.readability = enabled
	}
}

// New 创建 Extractor
func New(opts ...Option) *Extractor {
	e := &Extractor{
		client: resty.New().
			SetTimeout(DefaultTimeout).
			SetHeader("User-Agent", DefaultUserAgent).
			SetHeader("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract 抓取 rawURL 并抽取正文，不做重试
func (e *Extractor) Extract(ctx context.Context, rawURL string) (*model.ExtractedContent, error) {
	body, contentType, err := e.fetch(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	pageURL, _ := url.Parse(rawURL)
	content, err := Parse(body, contentType, pageURL, e.readability)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", rawURL, err)
	}
	return content, nil
}

func (e *Extractor) fetch(ctx context.Context, rawURL string) ([]byte, string, error) {
	resp, err := e.client.R().
		SetContext(ctx).
		Get(rawURL)
	if err != nil {
		return nil, "", &FetchError{URL: rawURL, Err: err}
	}
	if !resp.IsSuccess() {
		return nil, "", &FetchError{URL: rawURL, StatusCode: resp.StatusCode()}
	}
	return resp.Body(), resp.Header().Get("Content-Type"), nil
}

// Parse 从 HTML 中解析标题与正文。pageURL 仅供 readability 使用，可为 nil
func Parse(body []byte, contentType string, pageURL *url.URL, withReadability bool) (*model.ExtractedContent, error) {
	r, err := charset.NewReader(bytes.NewReader(body), contentType)
	if err != nil {
		return nil, fmt.Errorf("decode charset: %w", err)
	}
	utf8Body, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("decode charset: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(utf8Body))
	if err != nil {
		return nil, err
	}

	// 噪声元素无论位置一律先移除
	doc.Find(noiseSelector).Remove()

	strategies := defaultChain
	if withReadability && pageURL != nil {
		strategies = withReadabilityCandidate(pageURL)
	}

	content, picked := strategies.run(doc)
	logger.Log.Debugf("正文抽取使用策略 [%s]，长度 %d", picked, len([]rune(content)))

	return &model.ExtractedContent{
		Title:   resolveTitle(doc),
		Content: content,
	}, nil
}

func resolveTitle(doc *goquery.Document) string {
	if title := strings.TrimSpace(doc.Find("title").Text()); title != "" {
		return title
	}
	if h1 := strings.TrimSpace(doc.Find("h1").First().Text()); h1 != "" {
		return h1
	}
	return UntitledArticle
}
