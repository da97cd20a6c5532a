package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Environment variables read by Load
const (
	EnvURL         = "NEXUS_URL"
	EnvURLPath     = "NEXUS_URL_PATH"
	EnvAPIVersion  = "NEXUS_API_VERSION"
	EnvTimeout     = "NEXUS_TIMEOUT"
	EnvMaxPages    = "NEXUS_MAX_PAGES"
	EnvUsername    = "NEXUS_TOKEN_NAME"
	EnvPassword    = "NEXUS_TOKEN_SECRET"
	DefaultURLPath = "/service/rest"
	DefaultAPIVer  = "/v1"
)

// Config is the resolved connection configuration for one server
type Config struct {
	URL         string
	URLPath     string
	APIVersion  string
	Timeout     time.Duration
	MaxPages    int
	UsernameEnv string
	PasswordEnv string
}

// Load reads the configuration from the environment. The URL is not
// required here because a server profile may supply it; call Validate once
// every source has been merged.
func Load() (Config, error) {
	cfg := Config{
		URL:         os.Getenv(EnvURL),
		URLPath:     getEnv(EnvURLPath, DefaultURLPath),
		APIVersion:  getEnv(EnvAPIVersion, DefaultAPIVer),
		UsernameEnv: EnvUsername,
		PasswordEnv: EnvPassword,
	}

	if v := os.Getenv(EnvTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s %q: %w", EnvTimeout, v, err)
		}
		cfg.Timeout = d
	}

	if v := os.Getenv(EnvMaxPages); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s %q: %w", EnvMaxPages, v, err)
		}
		cfg.MaxPages = n
	}

	return cfg, nil
}

// Validate checks that required fields are present
func (c Config) Validate() error {
	if c.URL == "" {
		return fmt.Errorf("no server URL configured: set %s, pass --url, or add a server with 'nexusctl server add'", EnvURL)
	}
	return nil
}

// Resolve merges a server profile under the environment. Values set in the
// environment win over the profile; the profile wins over defaults.
func Resolve(env Config, server *Server) (Config, error) {
	cfg := env
	if server == nil {
		return cfg, nil
	}

	if os.Getenv(EnvURL) == "" && server.URL != "" {
		cfg.URL = server.URL
	}
	if os.Getenv(EnvURLPath) == "" && server.Path != "" {
		cfg.URLPath = server.Path
	}
	if os.Getenv(EnvAPIVersion) == "" && server.APIVersion != "" {
		cfg.APIVersion = server.APIVersion
	}
	if os.Getenv(EnvTimeout) == "" && server.Timeout != "" {
		d, err := time.ParseDuration(server.Timeout)
		if err != nil {
			return Config{}, fmt.Errorf("invalid timeout %q in server profile: %w", server.Timeout, err)
		}
		cfg.Timeout = d
	}
	if os.Getenv(EnvMaxPages) == "" && server.MaxPages != 0 {
		cfg.MaxPages = server.MaxPages
	}
	if server.UsernameEnv != "" {
		cfg.UsernameEnv = server.UsernameEnv
	}
	if server.PasswordEnv != "" {
		cfg.PasswordEnv = server.PasswordEnv
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
