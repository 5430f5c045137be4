package search

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, ts *httptest.Server, timeout time.Duration) *Client {
	t.Helper()
	c, err := NewClient(Options{Endpoint: ts.URL, Timeout: timeout, UserAgent: "seekterm-test", HTTPClient: ts.Client()})
	require.NoError(t, err)
	return c
}

func TestNewClientRejectsBadEndpoints(t *testing.T) {
	for _, ep := range []string{"", "   ", "ftp://example.com", "::nope"} {
		_, err := NewClient(Options{Endpoint: ep})
		assert.Error(t, err, "endpoint %q", ep)
	}
}

func TestSearchURLKeepsBasePath(t *testing.T) {
	c, err := NewClient(Options{Endpoint: "http://example.com/api/"})
	require.NoError(t, err)
	assert.Equal(t, "http://example.com/api/search?q=a+b", c.SearchURL("a b"))
}

func TestFetchEncodesQueryAndIssuesOneRequest(t *testing.T) {
	queries := []string{
		"interstellar 2014",
		"rock & roll",
		"c# in depth",
		"amélie 東京 ☃",
		"100% a+b=c?",
	}

	for _, q := range queries {
		t.Run(q, func(t *testing.T) {
			var calls int32
			var got, path, ua string
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				atomic.AddInt32(&calls, 1)
				got = r.URL.Query().Get("q")
				path = r.URL.Path
				ua = r.UserAgent()
				w.Write([]byte(`[]`))
			}))
			defer ts.Close()

			body, err := newTestClient(t, ts, time.Second).Fetch(context.Background(), q)
			require.NoError(t, err)
			assert.Equal(t, "[]", string(body))
			assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
			assert.Equal(t, q, got)
			assert.Equal(t, "/search", path)
			assert.Equal(t, "seekterm-test", ua)
		})
	}
}

func TestFetchNon2xxIsRequestFailure(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
		http.Error(w, `{"error": "Search failed"}`, http.StatusInternalServerError)
	}))
	defer ts.Close()

	_, err := newTestClient(t, ts, time.Second).Fetch(context.Background(), "x")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRequestFailure)

	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusInternalServerError, se.Code)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "no retries")
}

func TestFetchConnectionResetIsRequestFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hj, ok := w.(http.Hijacker)
		if !ok {
			t.Error("hijacking unsupported")
			return
		}
		conn, _, err := hj.Hijack()
		if err == nil {
			conn.Close()
		}
	}))
	defer ts.Close()

	_, err := newTestClient(t, ts, time.Second).Fetch(context.Background(), "x")
	assert.ErrorIs(t, err, ErrRequestFailure)
}

func TestFetchTimeoutIsRequestFailure(t *testing.T) {
	release := make(chan struct{})
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer ts.Close()
	defer close(release)

	start := time.Now()
	_, err := newTestClient(t, ts, 50*time.Millisecond).Fetch(context.Background(), "x")
	assert.ErrorIs(t, err, ErrRequestFailure)
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestDecodeRecords(t *testing.T) {
	payload := []byte(`[
		{"Name":"Alpha","Size":1.5,"Resolution":"1080P","Seeders":12,"Leechers":3,
		 "Source":"WEB","SiteName":"rarbg","MagnetLink":"magnet:?xt=urn:btih:a","Score":71.25},
		{"Name":null,"Seeders":0},
		{}
	]`)

	records, err := DecodeRecords(payload)
	require.NoError(t, err)
	require.Len(t, records, 3)

	a := records[0]
	require.NotNil(t, a.Title)
	assert.Equal(t, "Alpha", *a.Title)
	assert.Equal(t, 1.5, *a.Size)
	assert.Equal(t, "1080P", *a.Resolution)
	assert.Equal(t, 12, *a.Seeders)
	assert.Equal(t, 3, *a.Leechers)
	assert.Equal(t, "WEB", *a.Source)
	assert.Equal(t, "rarbg", *a.Origin)
	assert.Equal(t, "magnet:?xt=urn:btih:a", a.CopyableIdentifier())
	assert.Equal(t, 71.25, a.Score)

	b := records[1]
	assert.Nil(t, b.Title)
	require.NotNil(t, b.Seeders)
	assert.Equal(t, 0, *b.Seeders)

	c := records[2]
	assert.Nil(t, c.Identifier)
	assert.Equal(t, "", c.CopyableIdentifier())
	assert.Zero(t, c.Score)
}

func TestDecodeRecordsNullAndEmpty(t *testing.T) {
	records, err := DecodeRecords([]byte(" null\n"))
	require.NoError(t, err)
	assert.Nil(t, records)

	records, err = DecodeRecords([]byte(`[]`))
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestDecodeRecordsMalformed(t *testing.T) {
	for _, p := range []string{"", "   ", "{", `{"error":"x"}`, "<html></html>", `[{"Seeders":"many"}]`} {
		_, err := DecodeRecords([]byte(p))
		assert.ErrorIs(t, err, ErrMalformedResponse, "payload %q", p)
	}
}

func TestHealth(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"healthy","site":"rarbg","mirror":"https://mirror.example/"}`))
	}))
	defer ts.Close()

	h, err := newTestClient(t, ts, time.Second).Health(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "healthy", h.Status)
	assert.Equal(t, "rarbg", h.Site)
	assert.Equal(t, "https://mirror.example/", h.Mirror)
}

func TestHealthFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer ts.Close()

	_, err := newTestClient(t, ts, time.Second).Health(context.Background())
	assert.ErrorIs(t, err, ErrRequestFailure)
}
