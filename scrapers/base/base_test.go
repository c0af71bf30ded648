package base

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestPortManager(t *testing.T) {
	pm := NewPortManager(5000, 2)
	ctx := context.Background()

	a, err := pm.Acquire(ctx)
	require.NoError(t, err)
	b, err := pm.Acquire(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int{5000, 5001}, []int{a, b})

	short, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
	defer cancel()
	_, err = pm.Acquire(short)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	pm.Release(9999)
	pm.Release(a)
	again, err := pm.Acquire(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5000, again)
}

func TestFetchDocumentHTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.Header.Get("User-Agent"), "Mozilla")
		if r.URL.Path == "/gone" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(`<html><head><title>Shirt</title></head><body><h1>Linen Shirt</h1></body></html>`))
	}))
	defer srv.Close()

	b := NewBaseScraper(Options{}, zap.NewNop())

	doc, err := b.FetchDocumentHTTP(context.Background(), srv.URL+"/p")
	require.NoError(t, err)
	assert.Equal(t, "Linen Shirt", doc.Find("h1").Text())

	_, err = b.FetchDocumentHTTP(context.Background(), srv.URL+"/gone")
	assert.ErrorContains(t, err, "404")
}

func TestFetchDocumentWithoutBrowserFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body>tiny</body></html>`))
	}))
	defer srv.Close()

	b := NewBaseScraper(Options{BrowserFallback: false}, zap.NewNop())
	hasH1 := func(doc *goquery.Document) bool { return doc.Find("h1").Length() > 0 }

	_, err := b.FetchDocument(context.Background(), srv.URL, hasH1)
	assert.ErrorContains(t, err, "could not fetch a usable page")
}

func TestIsValidDocument(t *testing.T) {
	parse := func(html string) *goquery.Document {
		doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
		require.NoError(t, err)
		return doc
	}
	long := strings.Repeat("cotton ", 50)

	assert.True(t, IsValidDocument(parse("<title>Shirt</title><body>"+long+"</body>")))
	assert.False(t, IsValidDocument(parse("<title>Robot Check</title><body>"+long+"</body>")))
	assert.False(t, IsValidDocument(parse("<title>Shirt</title><body>short</body>")))
}
