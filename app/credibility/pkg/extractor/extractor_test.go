package extractor

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var longSentence = strings.Repeat("Researchers published detailed findings with cited sources. ", 4)

func serveHTML(t *testing.T, contentType string, body []byte) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", contentType)
		_, _ = w.Write(body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestExtractPrefersArticle(t *testing.T) {
	page := `<html><head><title> Mars Update </title></head><body>
<nav>Home | About</nav>
<main>main text that should not win</main>
<article><script>var tracking = 1;</script>` + longSentence + `</article>
<footer>Copyright</footer>
</body></html>`
	srv := serveHTML(t, "text/html; charset=utf-8", []byte(page))

	got, err := New().Extract(context.Background(), srv.URL)
	require.NoError(t, err)

	assert.Equal(t, "Mars Update", got.Title)
	assert.Equal(t, strings.TrimSpace(longSentence), got.Content)
	assert.NotContains(t, got.Content, "tracking")
}

func TestExtractFallsThroughShortCandidates(t *testing.T) {
	page := `<html><body><h1>Headline</h1>
<article>too short</article>
<main>` + longSentence + `</main>
</body></html>`

	got, err := Parse([]byte(page), "text/html; charset=utf-8", nil, false)
	require.NoError(t, err)

	assert.Equal(t, "Headline", got.Title)
	assert.Equal(t, strings.TrimSpace(longSentence), got.Content)
}

func TestExtractParagraphFallback(t *testing.T) {
	page := `<html><body>
<article>short</article>
<p>First paragraph.</p>
<aside><p>Sidebar ad</p></aside>
<p>Second paragraph.</p>
</body></html>`

	got, err := Parse([]byte(page), "text/html; charset=utf-8", nil, false)
	require.NoError(t, err)

	// 段落兜底不受长度门槛限制
	assert.Equal(t, "First paragraph.\n\nSecond paragraph.", got.Content)
	assert.Equal(t, UntitledArticle, got.Title)
}

func TestExtractEmptyContent(t *testing.T) {
	page := `<html><body><header><h1>Only header</h1></header><div>no paragraphs</div></body></html>`

	got, err := Parse([]byte(page), "text/html; charset=utf-8", nil, false)
	require.NoError(t, err)

	assert.Equal(t, "", got.Content)
	assert.Equal(t, UntitledArticle, got.Title)
}

func TestExtractDecodesCharset(t *testing.T) {
	page := []byte("<html><head><title>Caf\xe9</title></head><body><p>Cr\xe8me br\xfbl\xe9e</p></body></html>")
	srv := serveHTML(t, "text/html; charset=iso-8859-1", page)

	got, err := New().Extract(context.Background(), srv.URL)
	require.NoError(t, err)

	assert.Equal(t, "Café", got.Title)
	assert.Equal(t, "Crème brûlée", got.Content)
}

func TestExtractSendsUserAgent(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte("<html><body><p>ok</p></body></html>"))
	}))
	defer srv.Close()

	_, err := New().Extract(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, DefaultUserAgent, gotUA)

	_, err = New(WithUserAgent("radar-test")).Extract(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "radar-test", gotUA)
}

func TestExtractNonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := New().Extract(context.Background(), srv.URL)
	require.Error(t, err)

	var fe *FetchError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, http.StatusNotFound, fe.StatusCode)
	assert.Contains(t, fe.Error(), "404")
}

func TestExtractTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	_, err := New(WithTimeout(50 * time.Millisecond)).Extract(context.Background(), srv.URL)
	require.Error(t, err)

	var fe *FetchError
	require.True(t, errors.As(err, &fe))
	assert.NotNil(t, fe.Err)
}

func TestExtractUnreachableHost(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	addr := srv.URL
	srv.Close()

	_, err := New().Extract(context.Background(), addr)
	var fe *FetchError
	require.True(t, errors.As(err, &fe))
}

func TestParseReadabilityCandidate(t *testing.T) {
	body := strings.Repeat("The committee reviewed the evidence, compared several independent reports, and documented each step of the process carefully. ", 8)
	page := `<html><head><title>Report</title></head><body>
<div class="content"><div class="article-body">` + body + `</div></div>
</body></html>`
	pageURL, err := url.Parse("https://news.example.com/report")
	require.NoError(t, err)

	plain, err := Parse([]byte(page), "text/html; charset=utf-8", pageURL, false)
	require.NoError(t, err)
	assert.Empty(t, plain.Content)

	readable, err := Parse([]byte(page), "text/html; charset=utf-8", pageURL, true)
	require.NoError(t, err)
	assert.Contains(t, readable.Content, "The committee reviewed the evidence")
}
