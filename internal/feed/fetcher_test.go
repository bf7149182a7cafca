package feed_test

import (
	"compress/gzip"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/marketfeed/trendyol-sync/internal/feed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchFile(t *testing.T) {
	t.Parallel()

	body := "<Urunler><Urun><StokKodu>A1</StokKodu></Urun></Urunler>"
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-agent", r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "application/xml")
		_, _ = w.Write([]byte(body))
	}))
	defer server.Close()

	fetcher := feed.NewFetcher(server.Client(), "test-agent")

	file, err := fetcher.FetchFile(context.Background(), server.URL)
	require.NoError(t, err)
	defer file.Close()

	fetched, err := io.ReadAll(file)
	require.NoError(t, err)
	assert.Equal(t, body, string(fetched))
}

func TestFetchFileGzip(t *testing.T) {
	t.Parallel()

	body := "<rss><channel><item><title>x</title></item></channel></rss>"
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/xml")
		w.Header().Set("Content-Encoding", "gzip")
		gz := gzip.NewWriter(w)
		_, _ = gz.Write([]byte(body))
		_ = gz.Close()
	}))
	defer server.Close()

	// The default transport would decompress transparently; an explicit
	// client without it exercises the manual gzip path.
	fetcher := feed.NewFetcher(&http.Client{Transport: &http.Transport{DisableCompression: true}}, "test-agent")

	file, err := fetcher.FetchFile(context.Background(), server.URL)
	require.NoError(t, err)
	defer file.Close()

	fetched, err := io.ReadAll(file)
	require.NoError(t, err)
	assert.Equal(t, body, string(fetched))
}

func TestFetchFileStatusNotOK(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	fetcher := feed.NewFetcher(server.Client(), "test-agent")

	_, err := fetcher.FetchFile(context.Background(), server.URL)

	assert.ErrorIs(t, err, feed.ErrStatusNotOK)
}
