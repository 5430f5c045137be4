//go:build e2e && unix

package main

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
)

const resultsPayload = `[
 {"Name":"Night of the Test Suite 1080p","Size":1.5,"Resolution":"1080P","Seeders":42,"Leechers":7,"Source":"WEB","SiteName":"rarbg","MagnetLink":"magnet:?xt=urn:btih:e2e0001","Score":88.5},
 {"Name":"Night of the Test Suite 720p","Size":0.7,"Resolution":"720P","Seeders":0,"SiteName":"1337x","MagnetLink":"magnet:?xt=urn:btih:e2e0002","Score":51}
]`

// searchEndpoint is a stand-in for the remote search service
type searchEndpoint struct {
	*httptest.Server
	searches atomic.Int32
	lastQ    atomic.Value
}

// newSearchEndpoint answers /search with body and status. "empty" as the
// query always yields an empty list.
func (tf *TUITestFramework) newSearchEndpoint(status int, body string) *searchEndpoint {
	se := &searchEndpoint{}
	se.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/search":
			se.searches.Add(1)
			q := r.URL.Query().Get("q")
			se.lastQ.Store(q)
			if q == "empty" {
				w.Write([]byte(`[]`))
				return
			}
			w.WriteHeader(status)
			w.Write([]byte(body))
		case "/health":
			w.Write([]byte(`{"status":"healthy","site":"e2e-site","mirror":"e2e-mirror"}`))
		default:
			http.NotFound(w, r)
		}
	}))
	tf.t.Cleanup(se.Close)
	tf.SetEnv("SEEKTERM_ENDPOINT=" + se.URL)
	return se
}

// LastQuery returns the q parameter of the most recent search request
func (se *searchEndpoint) LastQuery() string {
	q, _ := se.lastQ.Load().(string)
	return q
}
