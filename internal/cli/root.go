package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"

	"teampulse/internal/app"
	"teampulse/internal/platform/config"
	"teampulse/internal/router"
	"teampulse/internal/stores"
)

// ErrLoginRequired is returned when the guard sends a page command back to
// the login page.
var ErrLoginRequired = errors.New("login required")

// Env is what commands read from and write to.
type Env struct {
	Stdout io.Writer
	Stderr io.Writer
	Getenv func(string) string
	// Open builds the client. Defaults to app.New logging to Stderr.
	Open func(ctx context.Context, cfg config.Client) (*app.App, error)
}

// DefaultEnv uses the process streams and environment.
func DefaultEnv() *Env {
	return &Env{Stdout: os.Stdout, Stderr: os.Stderr, Getenv: os.Getenv}
}

// ExitError marks a failure that has already been reported to the user.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string { return e.Err.Error() }
func (e *ExitError) Unwrap() error { return e.Err }
func (e *ExitError) ExitCode() int { return e.Code }

// Root builds the pulse command tree.
func Root(env *Env) *Command {
	return &Command{
		Name:    "pulse",
		Summary: "Team wellness check-ins from the terminal.",
		Help:    env.Stderr,
		Subcommands: []*Command{
			loginCommand(env),
			logoutCommand(env),
			refreshCommand(env),
			signupCommand(env),
			whoamiCommand(env),
			homeCommand(env),
			teamsCommand(env),
			usersCommand(env),
			entriesCommand(env),
			teamEntriesCommand(env),
		},
	}
}

// clientFlags are accepted by every command that talks to the backend.
type clientFlags struct {
	configPath string
	endpoint   string
}

func (f *clientFlags) bind(fs *pflag.FlagSet) {
	fs.StringVar(&f.configPath, "config", "", "config file (default $PULSE_CONFIG)")
	fs.StringVar(&f.endpoint, "endpoint", "", "API endpoint, overrides the config file")
}

// newFlags returns a flag set carrying the client flags.
func newFlags(name string, cf *clientFlags) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	cf.bind(fs)
	return fs
}

// session is one command invocation with an open client.
type session struct {
	env *Env
	app *app.App
	out *printer
	err *printer
}

func (e *Env) getenv(key string) string {
	if e.Getenv == nil {
		return ""
	}
	return e.Getenv(key)
}

func (e *Env) open(ctx context.Context, cf *clientFlags) (*session, error) {
	cfg, err := config.LoadClient(cf.configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if cf.endpoint != "" {
		cfg.APIEndpoint = cf.endpoint
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}

	open := e.Open
	if open == nil {
		open = func(ctx context.Context, cfg config.Client) (*app.App, error) {
			return app.New(ctx, cfg, app.WithLogWriter(e.Stderr))
		}
	}
	a, err := open(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &session{env: e, app: a, out: newPrinter(e.Stdout), err: newPrinter(e.Stderr)}, nil
}

// run opens a session around fn and closes it afterwards.
func (e *Env) run(ctx context.Context, cf *clientFlags, fn func(s *session) error) error {
	s, err := e.open(ctx, cf)
	if err != nil {
		return err
	}
	defer s.app.Close()
	return fn(s)
}

// enter navigates to path through the guard.
func (s *session) enter(ctx context.Context, path string) error {
	d := s.app.Guard.Navigate(ctx, path)
	if d.Path == path {
		return nil
	}
	if d.Path == router.PathRoot {
		return fmt.Errorf("%w: run 'pulse login --redirect %s'", ErrLoginRequired, path)
	}
	return fmt.Errorf("navigation to %s ended at %s", path, d)
}

// notify records message in the notification store and prints it.
func (s *session) notify(message string, color stores.Color) {
	s.app.Notifications.Add(message, color)
	p := s.out
	if color == stores.ColorError {
		p = s.err
	}
	p.notification(s.app.Notifications.State())
}

// failed reports a store error and returns an already-reported error.
func (s *session) failed(storeError string, err error) error {
	msg := storeError
	if msg == "" {
		msg = err.Error()
	}
	s.notify(msg, stores.ColorError)
	return &ExitError{Code: 1, Err: err}
}
