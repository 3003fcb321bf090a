// Package router guards navigation between the client's pages. Every
// navigation re-verifies the session before the page is allowed to load.
package router

//go:generate mockgen -source=router.go -destination=mocks/mocks.go -package=mocks Session

import (
	"context"
	"log/slog"
	"net/url"
	"strings"
)

const (
	PathRoot        = "/"
	PathHome        = "/home"
	PathTeams       = "/teams"
	PathUsers       = "/users"
	PathEntries     = "/entries"
	PathTeamEntries = "/team-entries"

	// RedirectParam carries the originally requested path to the login page.
	RedirectParam = "redirect"
)

// Route is one page of the client.
type Route struct {
	Path   string
	Title  string
	Public bool
}

// Routes lists the pages in menu order.
var Routes = []Route{
	{Path: PathRoot, Title: "Login", Public: true},
	{Path: PathHome, Title: "Home"},
	{Path: PathTeams, Title: "Teams"},
	{Path: PathUsers, Title: "Users"},
	{Path: PathEntries, Title: "Entries"},
	{Path: PathTeamEntries, Title: "Team entries"},
}

// Lookup finds the route for path, ignoring any query string.
func Lookup(path string) (Route, bool) {
	p := path
	if i := strings.IndexByte(p, '?'); i >= 0 {
		p = p[:i]
	}
	for _, r := range Routes {
		if r.Path == p {
			return r, true
		}
	}
	return Route{}, false
}

// Session is what the guard needs from the session store.
type Session interface {
	VerifyToken(ctx context.Context) error
	IsLoggedIn() bool
	Reset(ctx context.Context)
}

// Decision is where a navigation ends up.
type Decision struct {
	Path       string
	Query      url.Values
	Redirected bool
}

// String renders the location, e.g. /?redirect=%2Fhome.
func (d Decision) String() string {
	if len(d.Query) == 0 {
		return d.Path
	}
	return d.Path + "?" + d.Query.Encode()
}

// RedirectTarget returns the path the login page should continue to.
func (d Decision) RedirectTarget() string {
	if d.Query == nil {
		return ""
	}
	return d.Query.Get(RedirectParam)
}

type Guard struct {
	session Session
	logger  *slog.Logger
}

type Option func(*Guard)

func WithLogger(logger *slog.Logger) Option {
	return func(g *Guard) {
		g.logger = logger
	}
}

func NewGuard(session Session, opts ...Option) *Guard {
	g := &Guard{session: session, logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Navigate decides where a request for target lands. target is the full
// path including any query string.
func (g *Guard) Navigate(ctx context.Context, target string) Decision {
	path := target
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	if path == "" {
		path = PathRoot
	}

	if err := g.session.VerifyToken(ctx); err != nil {
		g.logger.DebugContext(ctx, "session verification failed", "target", target, "error", err)
		g.session.Reset(ctx)
		if path != PathRoot {
			return Decision{
				Path:       PathRoot,
				Query:      url.Values{RedirectParam: []string{target}},
				Redirected: true,
			}
		}
		return Decision{Path: PathRoot}
	}

	if path == PathRoot && g.session.IsLoggedIn() {
		return Decision{Path: PathHome, Redirected: true}
	}
	return decisionFor(target, path)
}

func decisionFor(target, path string) Decision {
	d := Decision{Path: path}
	if i := strings.IndexByte(target, '?'); i >= 0 {
		if q, err := url.ParseQuery(target[i+1:]); err == nil && len(q) > 0 {
			d.Query = q
		}
	}
	return d
}
