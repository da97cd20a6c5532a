package client

import "fmt"

// Query selects package versions within a repository. Empty Name or
// Version match everything.
type Query struct {
	Repository string `json:"repository" yaml:"repository"`
	Name       string `json:"name,omitempty" yaml:"name,omitempty"`
	Version    string `json:"version,omitempty" yaml:"version,omitempty"`
}

func (q Query) String() string {
	s := q.Repository
	if q.Name != "" {
		s += "/" + q.Name
	}
	if q.Version != "" {
		s += "@" + q.Version
	}
	return s
}

// Checksum holds the hashes published for an asset. An empty field means
// the service did not publish that hash.
type Checksum struct {
	SHA1   string `json:"sha1,omitempty" yaml:"sha1,omitempty"`
	SHA256 string `json:"sha256,omitempty" yaml:"sha256,omitempty"`
	SHA512 string `json:"sha512,omitempty" yaml:"sha512,omitempty"`
	MD5    string `json:"md5,omitempty" yaml:"md5,omitempty"`
}

// Asset is one downloadable file of a package version
type Asset struct {
	DownloadURL  string   `json:"downloadUrl" yaml:"downloadUrl"`
	Path         string   `json:"path" yaml:"path"`
	Format       string   `json:"format" yaml:"format"`
	Checksum     Checksum `json:"checksum" yaml:"checksum"`
	ContentType  string   `json:"contentType" yaml:"contentType"`
	LastModified string   `json:"lastModified" yaml:"lastModified"`
}

// SearchItem is one package version returned by a search
type SearchItem struct {
	ID         string   `json:"id" yaml:"id"`
	Repository string   `json:"repository" yaml:"repository"`
	Format     string   `json:"format" yaml:"format"`
	Group      *string  `json:"group" yaml:"group,omitempty"`
	Name       string   `json:"name" yaml:"name"`
	Version    string   `json:"version" yaml:"version"`
	Assets     []Asset  `json:"assets" yaml:"assets"`
	Tags       []string `json:"tags" yaml:"tags"`
}

// Coordinates returns name@version, prefixed by the group when present.
func (i SearchItem) Coordinates() string {
	if i.Group != nil && *i.Group != "" {
		return fmt.Sprintf("%s:%s@%s", *i.Group, i.Name, i.Version)
	}
	return fmt.Sprintf("%s@%s", i.Name, i.Version)
}

// SearchPage is a single page of search results. A nil or empty
// ContinuationToken marks the last page.
type SearchPage struct {
	Items             []SearchItem `json:"items"`
	ContinuationToken *string      `json:"continuationToken"`
}

// HasMore reports whether another page follows this one
func (p *SearchPage) HasMore() bool {
	return p.ContinuationToken != nil && *p.ContinuationToken != ""
}

// Repository describes a repository configured on the server
type Repository struct {
	Name       string                 `json:"name" yaml:"name"`
	Format     string                 `json:"format" yaml:"format"`
	Type       string                 `json:"type,omitempty" yaml:"type,omitempty"`
	URL        string                 `json:"url" yaml:"url"`
	Attributes map[string]interface{} `json:"attributes,omitempty" yaml:"attributes,omitempty"`
}
