package client

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"
)

// DefaultMaxPages bounds how many search pages a single search may fetch
const DefaultMaxPages = 1000

// Options configures a Client
type Options struct {
	BaseURL    string
	Path       string
	APIVersion string

	// Credentials defaults to EnvCredentials with the standard variable names.
	Credentials CredentialSource

	// HTTPClient overrides the transport; Timeout is ignored when set.
	HTTPClient *http.Client
	Timeout    time.Duration

	// MaxPages caps pagination. Zero uses DefaultMaxPages, negative disables the cap.
	MaxPages int

	Logger *slog.Logger
}

// Client talks to the repository manager's REST API
type Client struct {
	endpoint   Endpoint
	creds      CredentialSource
	httpClient *http.Client
	maxPages   int
	logger     *slog.Logger
}

// Ensure Client implements Registry
var _ Registry = (*Client)(nil)

// NewClient creates a new registry client
func NewClient(opts Options) (*Client, error) {
	if opts.BaseURL == "" {
		return nil, NewRegistryError(ErrInvalidConfig, "base URL is required")
	}
	u, err := url.Parse(opts.BaseURL)
	if err != nil {
		return nil, wrapError(ErrInvalidConfig, "base URL "+opts.BaseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, NewRegistryError(ErrInvalidConfig,
			fmt.Sprintf("base URL %q must use http or https", opts.BaseURL))
	}

	creds := opts.Credentials
	if creds == nil {
		creds = EnvCredentials{}
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	maxPages := opts.MaxPages
	if maxPages == 0 {
		maxPages = DefaultMaxPages
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Client{
		endpoint:   NewEndpoint(opts.BaseURL, opts.Path, opts.APIVersion),
		creds:      creds,
		httpClient: httpClient,
		maxPages:   maxPages,
		logger:     logger,
	}, nil
}

// Endpoint returns the endpoint the client was built with
func (c *Client) Endpoint() Endpoint {
	return c.endpoint
}
