package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"nationwide/internal/client"

	"go.uber.org/zap"
	"golang.org/x/term"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	api       *client.Client
	in        io.Reader
	out       io.Writer
	tokenFile string
	color     bool
	logger    *zap.Logger
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  chat [-message TEXT]                         - talk to the assistant, interactive without -message")
	fmt.Fprintln(cli.out, "  login -username USERNAME                     - sign in as admin, the password is prompted next")
	fmt.Fprintln(cli.out, "  achievements list [-page N] [-limit N] [-name TEXT]")
	fmt.Fprintln(cli.out, "  achievements create -title T -description D -student S -date YYYY-MM-DD [-photo FILE]")
	fmt.Fprintln(cli.out, "  achievements update -id ID [-title T] [-description D] [-student S] [-date YYYY-MM-DD] [-photo FILE]")
	fmt.Fprintln(cli.out, "  achievements delete -id ID")
	fmt.Fprintln(cli.out, "  videos list")
	fmt.Fprintln(cli.out, "  videos upload -file FILE -title T -course C [-description D]")
	fmt.Fprintln(cli.out, "  videos update -id ID [-title T] [-course C] [-description D] [-order N] [-active true|false] [-file FILE]")
	fmt.Fprintln(cli.out, "  videos delete -id ID")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}
	ctx := context.Background()

	switch args[1] {
	case "chat":
		return cli.chat(ctx, args[2:])
	case "login":
		return cli.login(ctx, args[2:])
	case "achievements":
		if err := cli.loadToken(); err != nil {
			return err
		}
		return cli.achievements(ctx, args[2:])
	case "videos":
		if err := cli.loadToken(); err != nil {
			return err
		}
		return cli.videos(ctx, args[2:])
	default:
		cli.printUsage()
		return errHelp
	}
}

func (cli *commandLine) login(ctx context.Context, args []string) error {
	loginCmd := flag.NewFlagSet("login", flag.ContinueOnError)
	loginCmd.SetOutput(cli.out)
	username := loginCmd.String("username", "admin", "The admin username. The password will be prompted next.")
	if err := loginCmd.Parse(args); err != nil {
		return errHelp
	}

	fmt.Fprint(cli.out, "Enter password:")
	pwd, err := readPasswordFunc(int(syscall.Stdin))
	fmt.Fprintln(cli.out)
	if err != nil {
		return err
	}
	if len(pwd) == 0 {
		loginCmd.Usage()
		return errHelp
	}

	res, err := cli.api.Login(ctx, *username, string(pwd))
	if err != nil {
		return err
	}
	if err := cli.saveToken(res.AccessToken); err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "Logged in as %s, token valid for %ds\n", *username, res.ExpiresIn)
	return nil
}

func (cli *commandLine) saveToken(token string) error {
	if err := os.MkdirAll(filepath.Dir(cli.tokenFile), 0o700); err != nil {
		return fmt.Errorf("failed to create token directory: %w", err)
	}
	if err := os.WriteFile(cli.tokenFile, []byte(token), 0o600); err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}
	return nil
}

func (cli *commandLine) loadToken() error {
	data, err := os.ReadFile(cli.tokenFile)
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w, run: nwctl login", client.ErrNotAuthenticated)
	}
	if err != nil {
		return fmt.Errorf("failed to read token: %w", err)
	}
	cli.api.SetToken(strings.TrimSpace(string(data)))
	return nil
}

// openOptional opens path when it is set. The returned closer is nil otherwise.
func openOptional(path string) (*client.File, io.Closer, error) {
	if path == "" {
		return nil, nil, nil
	}
	return client.OpenFile(path)
}

func closeQuietly(cl io.Closer) {
	if cl != nil {
		_ = cl.Close()
	}
}

// progress prints upload progress every 10%.
func (cli *commandLine) progress(name string) client.ProgressFunc {
	last := -10
	return func(pct int) {
		if pct-last >= 10 || pct == 100 {
			last = pct
			fmt.Fprintf(cli.out, "\rUploading %s: %3d%%", name, pct)
			if pct == 100 {
				fmt.Fprintln(cli.out)
			}
		}
	}
}
