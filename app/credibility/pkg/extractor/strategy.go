package extractor

import (
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-shiori/go-readability"

	"github.com/iWorld-y/cred_radar/app/credibility/pkg/logger"
)

// minCandidateLen 候选正文（去除首尾空白后）的最小字符数
const minCandidateLen = 100

// candidate 一种正文选取策略
type candidate struct {
	name string
	pick func(doc *goquery.Document) string
}

// chain 依次尝试 gated 中的候选，均不满足长度要求时使用 fallback
type chain struct {
	gated    []candidate
	fallback candidate
}

func (c chain) run(doc *goquery.Document) (string, string) {
	for _, cand := range c.gated {
		text := strings.TrimSpace(cand.pick(doc))
		if utf8.RuneCountInString(text) >= minCandidateLen {
			return text, cand.name
		}
	}
	return strings.TrimSpace(c.fallback.pick(doc)), c.fallback.name
}

var (
	articleCandidate = candidate{
		name: "article",
		pick: func(doc *goquery.Document) string {
			return doc.Find("article").Text()
		},
	}

	mainCandidate = candidate{
		name: "main",
		pick: func(doc *goquery.Document) string {
			return doc.Find("main").Text()
		},
	}

	paragraphCandidate = candidate{
		name: "paragraphs",
		pick: func(doc *goquery.Document) string {
			parts := doc.Find("p").Map(func(_ int, s *goquery.Selection) string {
				return s.Text()
			})
			return strings.Join(parts, "\n\n")
		},
	}

	defaultChain = chain{
		gated:    []candidate{articleCandidate, mainCandidate},
		fallback: paragraphCandidate,
	}
)

func withReadabilityCandidate(pageURL *url.URL) chain {
	readable := candidate{
		name: "readability",
		pick: func(doc *goquery.Document) string {
			html, err := doc.Html()
			if err != nil {
				return ""
			}
			article, err := readability.FromReader(strings.NewReader(html), pageURL)
			if err != nil {
				logger.Log.Debugf("readability 抽取失败 [%s]: %v", pageURL, err)
				return ""
			}
			return article.TextContent
		},
	}
	return chain{
		gated:    []candidate{articleCandidate, mainCandidate, readable},
		fallback: paragraphCandidate,
	}
}
