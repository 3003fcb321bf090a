package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/pflag"

	"teampulse/internal/models"
	"teampulse/internal/router"
	"teampulse/internal/stores"
)

// PasswordEnv is read when --password is not given.
const PasswordEnv = "PULSE_PASSWORD"

func loginCommand(env *Env) *Command {
	var (
		cf       clientFlags
		email    string
		password string
		redirect string
	)
	return &Command{
		Name:    "login",
		Summary: "Log in and store the session",
		Examples: []Example{
			{Description: "Log in and continue to the teams page", Command: "PULSE_PASSWORD=secret pulse login --email admin@acme.test --redirect /teams"},
		},
		Flags: func() *pflag.FlagSet {
			fs := newFlags("login", &cf)
			fs.StringVarP(&email, "email", "e", "", "account email")
			fs.StringVarP(&password, "password", "p", "", "password (default $"+PasswordEnv+")")
			fs.StringVar(&redirect, "redirect", "", "page to open after login")
			return fs
		},
		Run: func(ctx context.Context, _ []string) error {
			if password == "" {
				password = env.getenv(PasswordEnv)
			}
			form := models.LoginForm{Email: strings.TrimSpace(email), Password: password}
			if err := form.Validate(); err != nil {
				return err
			}
			return env.run(ctx, &cf, func(s *session) error {
				user, err := s.app.Session.Login(ctx, form)
				if err != nil {
					return s.failed("", fmt.Errorf("login failed: %w", err))
				}
				target := redirect
				if target == "" {
					target = router.PathRoot
				}
				d := s.app.Guard.Navigate(ctx, target)
				s.notify(fmt.Sprintf("Logged in as %s (%s)", user.Name, user.Role.Title()), stores.ColorSuccess)
				s.out.note("-> %s", d)
				return nil
			})
		},
	}
}

func logoutCommand(env *Env) *Command {
	var cf clientFlags
	return &Command{
		Name:    "logout",
		Summary: "End the session and drop the stored cookies",
		Flags:   func() *pflag.FlagSet { return newFlags("logout", &cf) },
		Run: func(ctx context.Context, _ []string) error {
			return env.run(ctx, &cf, func(s *session) error {
				s.app.Session.Logout(ctx)
				s.notify("Logged out", stores.ColorInfo)
				return nil
			})
		},
	}
}

func refreshCommand(env *Env) *Command {
	var cf clientFlags
	return &Command{
		Name:    "refresh",
		Summary: "Rotate the session cookies",
		Flags:   func() *pflag.FlagSet { return newFlags("refresh", &cf) },
		Run: func(ctx context.Context, _ []string) error {
			return env.run(ctx, &cf, func(s *session) error {
				user, err := s.app.Session.RefreshToken(ctx)
				if err != nil {
					return s.failed("", fmt.Errorf("refresh failed: %w", err))
				}
				s.notify(fmt.Sprintf("Session refreshed for %s", user.Email), stores.ColorSuccess)
				return nil
			})
		},
	}
}

func signupCommand(env *Env) *Command {
	var (
		cf   clientFlags
		form models.TenantRequestForm
	)
	return &Command{
		Name:    "signup",
		Summary: "Request a new tenant",
		Flags: func() *pflag.FlagSet {
			fs := newFlags("signup", &cf)
			fs.StringVar(&form.TenantName, "tenant", "", "tenant name")
			fs.StringVar(&form.Name, "name", "", "your name")
			fs.StringVar(&form.Email, "email", "", "your email")
			fs.StringVar(&form.Domain, "domain", "", "company domain, e.g. acme.com")
			return fs
		},
		Run: func(ctx context.Context, _ []string) error {
			if err := form.Validate(); err != nil {
				return err
			}
			return env.run(ctx, &cf, func(s *session) error {
				result, err := s.app.Session.TenantRequest(ctx, form)
				if err != nil {
					return s.failed("", fmt.Errorf("tenant request failed: %w", err))
				}
				s.notify(result.Message, stores.ColorSuccess)
				s.out.note("request #%d", result.Request.ID)
				return nil
			})
		},
	}
}

func whoamiCommand(env *Env) *Command {
	var cf clientFlags
	return &Command{
		Name:    "whoami",
		Summary: "Show the logged in user",
		Flags:   func() *pflag.FlagSet { return newFlags("whoami", &cf) },
		Run: func(ctx context.Context, _ []string) error {
			return env.run(ctx, &cf, func(s *session) error {
				if err := s.enter(ctx, router.PathHome); err != nil {
					return err
				}
				user := s.app.Session.User()
				if user == nil {
					return fmt.Errorf("%w: no user in the session", ErrLoginRequired)
				}
				s.out.line("%s <%s>", user.Name, user.Email)
				s.out.line("role:   %s", user.Role.Title())
				if tenantID, ok := user.TenantID(); ok {
					s.out.line("tenant: %d", tenantID)
				} else {
					s.out.line("tenant: none")
				}
				return nil
			})
		},
	}
}
