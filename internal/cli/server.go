package cli

import (
	"fmt"
	"io"
	"net/url"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"nexusctl/internal/config"
)

var serverAddOpts config.Server

// serverCmd represents the server command
var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Manage server profiles",
	Long: `Manage named server profiles stored in ~/.nexusctl/config.toml.

A profile holds the server URL, REST path, API version and limits. Secrets
are never stored: a profile names the environment variables to read them from.`,
}

// serverAddCmd adds a new server profile
var serverAddCmd = &cobra.Command{
	Use:   "add <name> <url>",
	Short: "Add a server profile",
	Long: `Add a server profile. The first profile added becomes the active one.

Examples:
  nexusctl server add prod https://nexus.example.com
  nexusctl server add legacy https://old.example.com --path /nexus/service/rest --timeout 2m
  nexusctl server add ci https://nexus.example.com --username-env CI_NEXUS_USER --password-env CI_NEXUS_PASS`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		server := serverAddOpts
		server.URL = args[1]
		return runServerAdd(cmd.OutOrStdout(), args[0], server)
	},
}

// serverListCmd lists configured server profiles
var serverListCmd = &cobra.Command{
	Use:   "list",
	Short: "List server profiles",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServerList(cmd.OutOrStdout())
	},
}

// serverUseCmd sets the active server profile
var serverUseCmd = &cobra.Command{
	Use:   "use <name>",
	Short: "Set the active server profile",
	Long: `Set the active server profile.

The active profile is used when no --server flag is specified.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServerUse(cmd.OutOrStdout(), args[0])
	},
}

// serverRemoveCmd removes a server profile
var serverRemoveCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Remove a server profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServerRemove(cmd.OutOrStdout(), args[0])
	},
}

func runServerAdd(out io.Writer, name string, server config.Server) error {
	u, err := url.Parse(server.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid server URL %q: expected http(s)://host", server.URL)
	}
	if server.Timeout != "" {
		if _, err := time.ParseDuration(server.Timeout); err != nil {
			return fmt.Errorf("invalid timeout %q: %w", server.Timeout, err)
		}
	}

	cfg, err := config.LoadCLI()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	cfg.Servers[name] = server

	// Set as current if it's the first one
	if cfg.Current == "" {
		cfg.Current = name
	}

	if err := config.SaveCLI(cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Fprintf(out, "✅ Added server '%s'\n", name)
	fmt.Fprintf(out, "🌐 URL: %s\n", server.URL)

	if cfg.Current == name {
		fmt.Fprintf(out, "⭐ Set as active server\n")
	}

	return nil
}

func runServerList(out io.Writer) error {
	cfg, err := config.LoadCLI()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if len(cfg.Servers) == 0 {
		fmt.Fprintf(out, "No servers configured.\n")
		fmt.Fprintf(out, "Add a server with: nexusctl server add <name> <url>\n")
		return nil
	}

	names := make([]string, 0, len(cfg.Servers))
	for name := range cfg.Servers {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintf(out, "📋 Configured servers:\n\n")
	for _, name := range names {
		server := cfg.Servers[name]
		marker := "  "
		if cfg.Current == name {
			marker = "* "
		}

		fmt.Fprintf(out, "%s%s\n", marker, name)
		fmt.Fprintf(out, "    URL: %s\n", server.URL)
		if server.Path != "" || server.APIVersion != "" {
			fmt.Fprintf(out, "    API: %s%s\n", orDefault(server.Path, config.DefaultURLPath),
				orDefault(server.APIVersion, config.DefaultAPIVer))
		}
		if server.UsernameEnv != "" || server.PasswordEnv != "" {
			fmt.Fprintf(out, "    Credentials: $%s / $%s\n", orDefault(server.UsernameEnv, config.EnvUsername),
				orDefault(server.PasswordEnv, config.EnvPassword))
		}

		fmt.Fprintf(out, "\n")
	}

	if cfg.Current != "" {
		fmt.Fprintf(out, "* = active server\n")
	}

	return nil
}

func runServerUse(out io.Writer, name string) error {
	cfg, err := config.LoadCLI()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if _, exists := cfg.Servers[name]; !exists {
		return fmt.Errorf("server '%s' not found. Use 'nexusctl server list' to see configured servers", name)
	}

	cfg.Current = name

	if err := config.SaveCLI(cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Fprintf(out, "✅ Set '%s' as active server\n", name)
	fmt.Fprintf(out, "🌐 URL: %s\n", cfg.Servers[name].URL)

	return nil
}

func runServerRemove(out io.Writer, name string) error {
	cfg, err := config.LoadCLI()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	server, exists := cfg.Servers[name]
	if !exists {
		return fmt.Errorf("server '%s' not found. Use 'nexusctl server list' to see configured servers", name)
	}

	delete(cfg.Servers, name)

	// If this was the current server, clear the current setting
	if cfg.Current == name {
		cfg.Current = ""
		fmt.Fprintf(out, "⚠️  Removed active server. Use 'nexusctl server use' to set a new active server.\n")
	}

	if err := config.SaveCLI(cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Fprintf(out, "✅ Removed server '%s'\n", name)
	fmt.Fprintf(out, "🌐 URL was: %s\n", server.URL)

	return nil
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

func init() {
	serverAddCmd.Flags().StringVar(&serverAddOpts.Path, "path", "", "REST path prefix (default /service/rest)")
	serverAddCmd.Flags().StringVar(&serverAddOpts.APIVersion, "api-version", "", "API version segment (default /v1)")
	serverAddCmd.Flags().StringVar(&serverAddOpts.Timeout, "timeout", "", "per-request timeout, e.g. 45s")
	serverAddCmd.Flags().IntVar(&serverAddOpts.MaxPages, "max-pages", 0, "maximum search pages per query (negative = unlimited)")
	serverAddCmd.Flags().StringVar(&serverAddOpts.UsernameEnv, "username-env", "", "environment variable holding the username")
	serverAddCmd.Flags().StringVar(&serverAddOpts.PasswordEnv, "password-env", "", "environment variable holding the secret")

	serverCmd.AddCommand(serverAddCmd)
	serverCmd.AddCommand(serverListCmd)
	serverCmd.AddCommand(serverUseCmd)
	serverCmd.AddCommand(serverRemoveCmd)
}
