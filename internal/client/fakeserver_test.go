package client

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"sync"
	"testing"

	"github.com/gorilla/mux"
)

const (
	testUser   = "ci-bot"
	testSecret = "s3cr3t"
)

var testCreds = StaticCredentials{Username: testUser, Password: testSecret}

// fakeNexus serves the subset of the REST API the client uses. Search pages
// are keyed by the continuation token that requests them ("" = first page).
type fakeNexus struct {
	t      *testing.T
	server *httptest.Server

	mu            sync.Mutex
	pages         map[string]SearchPage
	rawSearch     string
	repositories  interface{}
	assets        map[string][]byte
	assetStatus   map[string]int
	assetLength   map[string]int
	searchQueries []url.Values
	requests      int
}

func newFakeNexus(t *testing.T) *fakeNexus {
	t.Helper()

	f := &fakeNexus{
		t:           t,
		pages:       make(map[string]SearchPage),
		assets:      make(map[string][]byte),
		assetStatus: make(map[string]int),
		assetLength: make(map[string]int),
	}

	r := mux.NewRouter()
	r.Use(f.countAndAuthenticate)
	api := r.PathPrefix("/service/rest/v1").Subrouter()
	api.HandleFunc("/search", f.handleSearch).Methods("GET")
	api.HandleFunc("/repositories", f.handleRepositories).Methods("GET")
	api.HandleFunc("/status", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods("GET")
	r.HandleFunc("/repository/{path:.*}", f.handleAsset).Methods("GET")

	f.server = httptest.NewServer(r)
	t.Cleanup(f.server.Close)
	return f
}

func (f *fakeNexus) countAndAuthenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.requests++
		f.mu.Unlock()

		user, pass, ok := r.BasicAuth()
		if !ok || user != testUser || pass != testSecret {
			w.Header().Set("Content-Type", "text/html")
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte("<html><body><h1>Unauthorized</h1></body></html>"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (f *fakeNexus) handleSearch(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.searchQueries = append(f.searchQueries, r.URL.Query())

	if f.rawSearch != "" {
		w.Write([]byte(f.rawSearch))
		return
	}

	token := r.URL.Query().Get("continuationToken")
	page, ok := f.pages[token]
	if !ok {
		http.Error(w, "unknown continuation token", http.StatusNotFound)
		return
	}
	writeTestJSON(w, page)
}

func (f *fakeNexus) handleRepositories(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	writeTestJSON(w, f.repositories)
}

func (f *fakeNexus) handleAsset(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	path := mux.Vars(r)["path"]
	if status, ok := f.assetStatus[path]; ok {
		http.Error(w, http.StatusText(status), status)
		return
	}
	content, ok := f.assets[path]
	if !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "application/octet-stream")
	if length, ok := f.assetLength[path]; ok {
		// Announce more than is sent; the server drops the connection.
		w.Header().Set("Content-Length", strconv.Itoa(length))
	}
	w.Write(content)
}

// addPage registers the page returned for token; next is the continuation
// token it hands out ("" = last page).
func (f *fakeNexus) addPage(token, next string, items ...SearchItem) {
	f.mu.Lock()
	defer f.mu.Unlock()

	page := SearchPage{Items: items}
	if next != "" {
		page.ContinuationToken = &next
	}
	f.pages[token] = page
}

// asset registers downloadable content and returns the matching Asset
func (f *fakeNexus) asset(path string, content []byte) Asset {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.assets[path] = content
	return Asset{
		DownloadURL: f.server.URL + "/repository/" + path,
		Path:        path,
		Format:      "pypi",
	}
}

// failAsset makes downloads of path answer with status
func (f *fakeNexus) failAsset(path string, status int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.assetStatus[path] = status
}

// truncateAsset makes downloads of path announce length bytes but end
// after the registered content
func (f *fakeNexus) truncateAsset(path string, length int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.assetLength[path] = length
}

// setRawSearch makes every search answer with body verbatim
func (f *fakeNexus) setRawSearch(body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rawSearch = body
}

// setRepositories sets the repository listing response
func (f *fakeNexus) setRepositories(v interface{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.repositories = v
}

func (f *fakeNexus) requestCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.requests
}

func (f *fakeNexus) queries() []url.Values {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]url.Values(nil), f.searchQueries...)
}

func (f *fakeNexus) client(t *testing.T, creds CredentialSource) *Client {
	t.Helper()
	c, err := NewClient(Options{
		BaseURL:     f.server.URL,
		Credentials: creds,
	})
	if err != nil {
		t.Fatalf("NewClient() returned error: %v", err)
	}
	return c
}

func writeTestJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func testItem(id, name, version string, assets ...Asset) SearchItem {
	return SearchItem{
		ID:         id,
		Repository: "pypi-internal",
		Format:     "pypi",
		Name:       name,
		Version:    version,
		Assets:     assets,
		Tags:       []string{},
	}
}
