package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Server is a named connection profile
type Server struct {
	URL         string `toml:"url"`
	Path        string `toml:"path,omitempty"`
	APIVersion  string `toml:"api_version,omitempty"`
	Timeout     string `toml:"timeout,omitempty"` // Go duration, e.g. "45s"
	MaxPages    int    `toml:"max_pages,omitempty"`
	UsernameEnv string `toml:"username_env,omitempty"` // Variable holding the identity for this server
	PasswordEnv string `toml:"password_env,omitempty"` // Variable holding the secret for this server
}

type CLIConfig struct {
	Current string            `toml:"current"`
	Servers map[string]Server `toml:"servers"`
}

// ConfigDir returns the CLI config directory path
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".nexusctl"), nil
}

// ConfigPath returns the full path to config.toml
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// LoadCLI loads CLI configuration from ~/.nexusctl/config.toml
func LoadCLI() (CLIConfig, error) {
	configPath, err := ConfigPath()
	if err != nil {
		return CLIConfig{}, err
	}

	data, err := os.ReadFile(configPath)
	if os.IsNotExist(err) {
		// Return empty config if file doesn't exist
		return CLIConfig{
			Servers: make(map[string]Server),
		}, nil
	}
	if err != nil {
		return CLIConfig{}, err
	}

	var config CLIConfig
	if err := toml.Unmarshal(data, &config); err != nil {
		return CLIConfig{}, fmt.Errorf("failed to parse %s: %w", configPath, err)
	}

	if config.Servers == nil {
		config.Servers = make(map[string]Server)
	}

	return config, nil
}

// SaveCLI saves CLI configuration to ~/.nexusctl/config.toml
func SaveCLI(config CLIConfig) error {
	configPath, err := ConfigPath()
	if err != nil {
		return err
	}

	// Ensure config directory exists
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return err
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0o600)
}

// Lookup returns the named server profile. An empty name selects the
// current profile; no profile at all is not an error.
func (c CLIConfig) Lookup(name string) (*Server, error) {
	if name == "" {
		name = c.Current
	}
	if name == "" {
		return nil, nil
	}

	server, exists := c.Servers[name]
	if !exists {
		return nil, fmt.Errorf("server '%s' not found. Use 'nexusctl server list' to see configured servers", name)
	}
	return &server, nil
}
