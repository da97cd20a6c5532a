package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"nexusctl/internal/client"
	"nexusctl/internal/config"
)

// newRegistry builds the client used by the commands. Tests replace it.
var newRegistry = func() (client.Registry, error) {
	cliCfg, err := config.LoadCLI()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	var creds client.CredentialSource
	if askSecret {
		creds, err = promptCredentials()
		if err != nil {
			return nil, err
		}
	}

	c, err := client.GetClient(cliCfg, serverName, serverURL, creds, newLogger())
	if err != nil {
		return nil, err
	}
	return c, nil
}

// newLogger returns a debug logger on stderr in verbose mode, otherwise nil
// so the client discards its diagnostics.
func newLogger() *slog.Logger {
	if !verbose {
		return nil
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
}

// commandContext applies the --deadline flag to the command context
func commandContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return client.WithCustomTimeout(ctx, deadline)
}

// promptCredentials reads the secret from the terminal without echo. The
// identity still comes from NEXUS_TOKEN_NAME when set.
func promptCredentials() (client.CredentialSource, error) {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return nil, fmt.Errorf("--ask-secret requires an interactive terminal")
	}

	username := os.Getenv(config.EnvUsername)
	if username == "" {
		fmt.Fprint(os.Stderr, "Username: ")
		var line string
		if _, err := fmt.Fscanln(os.Stdin, &line); err != nil {
			return nil, fmt.Errorf("failed to read username: %w", err)
		}
		username = strings.TrimSpace(line)
	}

	fmt.Fprint(os.Stderr, "Secret: ")
	secret, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return nil, fmt.Errorf("failed to read secret: %w", err)
	}

	return client.StaticCredentials{Username: username, Password: string(secret)}, nil
}

func validateOutputFormat(format string) error {
	switch format {
	case "text", "json", "yaml":
		return nil
	default:
		return fmt.Errorf("unsupported output format %q (use text, json or yaml)", format)
	}
}

// writeStructured renders v as JSON or YAML. It reports false for text
// output so the caller prints its own format.
func writeStructured(w io.Writer, format string, v interface{}) (bool, error) {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return true, enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		defer enc.Close()
		return true, enc.Encode(v)
	default:
		return false, nil
	}
}

// queryFromArgs maps <repository> [package] [version] onto a query
func queryFromArgs(args []string) client.Query {
	q := client.Query{Repository: args[0]}
	if len(args) > 1 {
		q.Name = args[1]
	}
	if len(args) > 2 {
		q.Version = args[2]
	}
	return q
}
