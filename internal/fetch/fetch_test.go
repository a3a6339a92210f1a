package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchContent_ExtractsArticleText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html><body>
			<nav>Navigation junk</nav>
			<article><p>Research findings about caching.</p><p>Second paragraph.</p></article>
			<footer>Footer junk</footer>
		</body></html>`))
	}))
	defer srv.Close()

	f := NewContentFetcher(Config{Timeout: 5 * time.Second})
	text, err := f.FetchContent(context.Background(), srv.URL)
	require.NoError(t, err)

	assert.Contains(t, text, "Research findings about caching.")
	assert.Contains(t, text, "Second paragraph.")
	assert.NotContains(t, text, "Navigation junk")
	assert.NotContains(t, text, "Footer junk")
}

func TestFetchContent_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	f := NewContentFetcher(Config{})
	_, err := f.FetchContent(context.Background(), srv.URL)

	var fetchErr *Error
	require.ErrorAs(t, err, &fetchErr)
	assert.Contains(t, fetchErr.Message, "403")
}

func TestFetchContent_InvalidURL(t *testing.T) {
	f := NewContentFetcher(Config{})
	_, err := f.FetchContent(context.Background(), "not-a-url")

	var fetchErr *Error
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, "invalid URL", fetchErr.Message)
}

func TestFetchContent_ContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		_, _ = w.Write([]byte("<html><body><p>late</p></body></html>"))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	f := NewContentFetcher(Config{})
	_, err := f.FetchContent(ctx, srv.URL)

	var fetchErr *Error
	require.ErrorAs(t, err, &fetchErr)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestExtractMainText_FallsBackToBody(t *testing.T) {
	text, err := ExtractMainText(`<html><body><div><p>Plain body text</p></div></body></html>`, ResearchPageSelectors())
	require.NoError(t, err)
	assert.Contains(t, text, "Plain body text")
}

func TestShouldUseBrowser(t *testing.T) {
	assert.True(t, ShouldUseBrowser("tiny"))
	long := make([]byte, MinContentLength)
	for i := range long {
		long[i] = 'a'
	}
	assert.False(t, ShouldUseBrowser(string(long)))
}
