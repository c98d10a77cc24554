package testsupport

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// Catalog is an in-memory VNDB stand-in served over HTTP. Each map holds the
// raw JSON "results" array returned for a key: the search query for VNs and
// tags, the id exactly as sent for releases. Missing keys return no results.
type Catalog struct {
	VNs      map[string]string
	Releases map[string]string
	Tags     map[string]string

	mu       sync.Mutex
	requests []CatalogRequest
}

// CatalogRequest records one request the server received.
type CatalogRequest struct {
	Path string
	Key  string
}

// NewCatalogServer starts an httptest server for catalog and returns its URL.
func NewCatalogServer(t testing.TB, catalog *Catalog) string {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(catalog.serve))
	t.Cleanup(server.Close)
	return server.URL
}

// Requests returns a copy of the requests seen so far.
func (c *Catalog) Requests() []CatalogRequest {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]CatalogRequest(nil), c.requests...)
}

func (c *Catalog) serve(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Filters []any `json:"filters"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "bad request body", http.StatusBadRequest)
		return
	}

	key := filterKey(body.Filters)
	c.mu.Lock()
	c.requests = append(c.requests, CatalogRequest{Path: r.URL.Path, Key: key})
	c.mu.Unlock()

	var source map[string]string
	switch r.URL.Path {
	case "/vn":
		source = c.VNs
	case "/release":
		source = c.Releases
	case "/tag":
		source = c.Tags
	default:
		http.NotFound(w, r)
		return
	}

	results, ok := source[key]
	if !ok {
		results = "[]"
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = fmt.Fprintf(w, `{"results":%s,"more":false}`, results)
}

// filterKey extracts the compared value from ["search","=",q] or
// ["vn","=",["id","=",id]].
func filterKey(filters []any) string {
	if len(filters) != 3 {
		return ""
	}
	switch value := filters[2].(type) {
	case string:
		return value
	case []any:
		return filterKey(value)
	default:
		return ""
	}
}
