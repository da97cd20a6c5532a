package client

import (
	"fmt"
	"log/slog"

	"nexusctl/internal/config"
)

// NewClientFromConfig creates a client for a resolved configuration. When
// creds is nil the credentials are read from the environment variables the
// configuration names.
func NewClientFromConfig(cfg config.Config, creds CredentialSource, logger *slog.Logger) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, NewRegistryError(ErrInvalidConfig, err.Error())
	}

	if creds == nil {
		creds = EnvCredentials{
			UsernameVar: cfg.UsernameEnv,
			PasswordVar: cfg.PasswordEnv,
		}
	}

	c, err := NewClient(Options{
		BaseURL:     cfg.URL,
		Path:        cfg.URLPath,
		APIVersion:  cfg.APIVersion,
		Credentials: creds,
		Timeout:     cfg.Timeout,
		MaxPages:    cfg.MaxPages,
		Logger:      logger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}
	return c, nil
}

// GetClient resolves the environment and the named (or current) server
// profile into a client. A non-empty urlOverride replaces the resolved URL.
func GetClient(cliCfg config.CLIConfig, serverName, urlOverride string, creds CredentialSource, logger *slog.Logger) (*Client, error) {
	env, err := config.Load()
	if err != nil {
		return nil, err
	}

	server, err := cliCfg.Lookup(serverName)
	if err != nil {
		return nil, err
	}

	cfg, err := config.Resolve(env, server)
	if err != nil {
		return nil, err
	}
	if urlOverride != "" {
		cfg.URL = urlOverride
	}

	return NewClientFromConfig(cfg, creds, logger)
}
