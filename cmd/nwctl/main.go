package main

import (
	"fmt"
	"os"
	"path/filepath"

	"nationwide/internal/client"
	"nationwide/pkg/logger"

	"golang.org/x/term"
)

func main() {
	log, err := logger.New(envOr("NWCTL_LOG_LEVEL", "warn"), "console")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	cli := &commandLine{
		api:       client.New(envOr("NWCTL_SERVER", "http://localhost:8080"), nil, log),
		in:        os.Stdin,
		out:       os.Stdout,
		tokenFile: tokenPath(),
		color:     term.IsTerminal(int(os.Stdout.Fd())),
		logger:    log,
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			fmt.Fprintf(os.Stderr, "error: %s\n", err)
		}
		os.Exit(1)
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// tokenPath is where login keeps the admin access token.
func tokenPath() string {
	if p := os.Getenv("NWCTL_TOKEN_FILE"); p != "" {
		return p
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".nwctl-token"
	}
	return filepath.Join(dir, "nwctl", "token")
}
