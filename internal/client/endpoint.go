package client

import (
	"net/url"
	"strings"
)

// Default REST layout of the server
const (
	DefaultPath       = "/service/rest"
	DefaultAPIVersion = "/v1"
)

// Endpoint locates the REST API. It is fixed when the client is built.
type Endpoint struct {
	BaseURL    string
	Path       string
	APIVersion string
}

// NewEndpoint returns an endpoint with defaults applied for empty path and
// API version.
func NewEndpoint(baseURL, path, apiVersion string) Endpoint {
	if path == "" {
		path = DefaultPath
	}
	if apiVersion == "" {
		apiVersion = DefaultAPIVersion
	}
	return Endpoint{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		Path:       path,
		APIVersion: apiVersion,
	}
}

func (e Endpoint) root() string {
	return e.BaseURL + e.Path + e.APIVersion
}

// Search builds the search URL for q. An empty token requests the first page.
// Parameters are always emitted in the order repository, name, version,
// continuationToken.
func (e Endpoint) Search(q Query, token string) string {
	var b strings.Builder
	b.WriteString(e.root())
	b.WriteString("/search?repository=")
	b.WriteString(url.QueryEscape(q.Repository))
	b.WriteString("&name=")
	b.WriteString(url.QueryEscape(q.Name))
	b.WriteString("&version=")
	b.WriteString(url.QueryEscape(q.Version))
	if token != "" {
		b.WriteString("&continuationToken=")
		b.WriteString(url.QueryEscape(token))
	}
	return b.String()
}

// Repositories builds the repository listing URL
func (e Endpoint) Repositories() string {
	return e.root() + "/repositories"
}

// Status builds the server status URL
func (e Endpoint) Status() string {
	return e.root() + "/status"
}
