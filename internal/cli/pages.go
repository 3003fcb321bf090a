package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"

	"teampulse/internal/models"
	"teampulse/internal/router"
	"teampulse/internal/stores"
)

const dateLayout = "2006-01-02"

func homeCommand(env *Env) *Command {
	var cf clientFlags
	return &Command{
		Name:    "home",
		Summary: "Load teams, users and team entries in parallel",
		Flags:   func() *pflag.FlagSet { return newFlags("home", &cf) },
		Run: func(ctx context.Context, _ []string) error {
			return env.run(ctx, &cf, func(s *session) error {
				if err := s.enter(ctx, router.PathHome); err != nil {
					return err
				}
				a := s.app

				var mu sync.Mutex
				progress := func(name string) func(bool) {
					return func(loading bool) {
						if !loading {
							return
						}
						mu.Lock()
						s.err.note("loading %s", name)
						mu.Unlock()
					}
				}
				defer a.Teams.Subscribe(func(st stores.State[models.TeamDetail]) { progress("teams")(st.IsLoading) })()
				defer a.Users.Subscribe(func(st stores.State[models.UserDetail]) { progress("users")(st.IsLoading) })()
				defer a.TeamEntries.Subscribe(func(st stores.State[models.TeamEntry]) { progress("team entries")(st.IsLoading) })()

				g, gctx := errgroup.WithContext(ctx)
				g.Go(func() error { return a.Teams.FetchTeams(gctx) })
				g.Go(func() error { return a.Users.FetchUsers(gctx) })
				g.Go(func() error { return a.TeamEntries.FetchTeamEntries(gctx) })
				if err := g.Wait(); err != nil {
					for _, msg := range []string{a.Teams.State().Error, a.Users.State().Error, a.TeamEntries.State().Error} {
						if msg != "" {
							return s.failed(msg, err)
						}
					}
					return s.failed("", err)
				}

				user := a.Session.User()
				if user != nil {
					s.out.heading("Welcome, " + user.Name)
				}
				checkIns := 0
				for _, team := range a.TeamEntries.State().Items {
					for _, u := range team.Users {
						checkIns += len(u.Entries.Labels)
					}
				}
				s.out.line("teams:     %d", len(a.Teams.State().Items))
				s.out.line("users:     %d", len(a.Users.State().Items))
				s.out.line("check-ins: %d", checkIns)
				return nil
			})
		},
	}
}

func teamsCommand(env *Env) *Command {
	var cf clientFlags
	return &Command{
		Name:    "teams",
		Summary: "List and manage teams",
		Flags:   func() *pflag.FlagSet { return newFlags("teams", &cf) },
		Run: func(ctx context.Context, _ []string) error {
			return env.run(ctx, &cf, func(s *session) error {
				if err := s.enter(ctx, router.PathTeams); err != nil {
					return err
				}
				if err := s.app.Teams.FetchTeams(ctx); err != nil {
					return s.failed(s.app.Teams.State().Error, err)
				}
				s.out.heading("Teams")
				rows := [][]string{}
				for _, t := range s.app.Teams.State().Items {
					managers := make([]string, 0, len(t.Managers))
					for _, m := range t.Managers {
						managers = append(managers, m.Name)
					}
					rows = append(rows, []string{
						strconv.Itoa(t.ID),
						t.Name,
						orDash(strings.Join(managers, ", ")),
						orDash(strings.Join(t.Questions.Keys(), ", ")),
					})
				}
				s.out.table("No teams yet.", []string{"ID", "NAME", "MANAGERS", "QUESTIONS"}, rows)
				return nil
			})
		},
		Subcommands: []*Command{
			teamFormCommand(env, "add", "Create a team"),
			teamFormCommand(env, "update", "Update a team"),
			deleteCommand(env, "Delete a team and its entries", router.PathTeams, func(ctx context.Context, s *session, id int) error {
				if err := s.app.Teams.DeleteTeam(ctx, id); err != nil {
					return s.failed(s.app.Teams.State().Error, err)
				}
				s.notify("Team deleted", stores.ColorSuccess)
				return nil
			}),
		},
	}
}

func teamFormCommand(env *Env, name, summary string) *Command {
	var (
		cf        clientFlags
		form      models.TeamForm
		questions []string
	)
	usage := "pulse teams add --name NAME [--question key[:type]=text]... [--manager ID]..."
	if name == "update" {
		usage = "pulse teams update ID --name NAME [--question key[:type]=text]... [--manager ID]..."
	}
	return &Command{
		Name:    name,
		Summary: summary,
		Usage:   usage,
		Flags: func() *pflag.FlagSet {
			fs := newFlags(name, &cf)
			fs.StringVar(&form.Name, "name", "", "team name")
			fs.StringArrayVar(&questions, "question", nil, "question as key=text or key:scale=text")
			fs.IntSliceVar(&form.Managers, "manager", nil, "manager user id")
			return fs
		},
		Run: func(ctx context.Context, args []string) error {
			qs, err := parseQuestions(questions)
			if err != nil {
				return err
			}
			form.Questions = qs
			if err := form.Validate(); err != nil {
				return err
			}
			var teamID int
			if name == "update" {
				if teamID, err = oneID(args); err != nil {
					return err
				}
			}
			return env.run(ctx, &cf, func(s *session) error {
				if err := s.enter(ctx, router.PathTeams); err != nil {
					return err
				}
				var team *models.Team
				if name == "update" {
					team, err = s.app.Teams.UpdateTeam(ctx, teamID, form)
				} else {
					team, err = s.app.Teams.AddTeam(ctx, form)
				}
				if err != nil {
					return s.failed(s.app.Teams.State().Error, err)
				}
				s.notify(fmt.Sprintf("Team %q saved (#%d)", team.Name, team.ID), stores.ColorSuccess)
				return nil
			})
		},
	}
}

func usersCommand(env *Env) *Command {
	var cf clientFlags
	return &Command{
		Name:    "users",
		Summary: "List and manage users",
		Flags:   func() *pflag.FlagSet { return newFlags("users", &cf) },
		Run: func(ctx context.Context, _ []string) error {
			return env.run(ctx, &cf, func(s *session) error {
				if err := s.enter(ctx, router.PathUsers); err != nil {
					return err
				}
				if err := s.app.Users.FetchUsers(ctx); err != nil {
					return s.failed(s.app.Users.State().Error, err)
				}
				s.out.heading("Users")
				rows := [][]string{}
				for _, u := range s.app.Users.State().Items {
					teams := make([]string, 0, len(u.Teams))
					for _, t := range u.Teams {
						teams = append(teams, t.Name)
					}
					rows = append(rows, []string{
						strconv.Itoa(u.ID),
						u.Name,
						u.Email,
						u.Role.Title(),
						orDash(strings.Join(teams, ", ")),
					})
				}
				s.out.table("No users yet.", []string{"ID", "NAME", "EMAIL", "ROLE", "TEAMS"}, rows)
				return nil
			})
		},
		Subcommands: []*Command{
			userFormCommand(env, "add", "Create a user"),
			userFormCommand(env, "update", "Update a user"),
			deleteCommand(env, "Delete a user and their entries", router.PathUsers, func(ctx context.Context, s *session, id int) error {
				if err := s.app.Users.DeleteUser(ctx, id); err != nil {
					return s.failed(s.app.Users.State().Error, err)
				}
				s.notify("User deleted", stores.ColorSuccess)
				return nil
			}),
		},
	}
}

func userFormCommand(env *Env, name, summary string) *Command {
	var (
		cf   clientFlags
		form models.UserForm
		role string
	)
	usage := "pulse users add --name NAME --email EMAIL --role ROLE --team ID... [--password PW]"
	if name == "update" {
		usage = "pulse users update ID --name NAME --email EMAIL --role ROLE --team ID... [--password PW]"
	}
	return &Command{
		Name:    name,
		Summary: summary,
		Usage:   usage,
		Flags: func() *pflag.FlagSet {
			fs := newFlags(name, &cf)
			fs.StringVar(&form.Name, "name", "", "full name")
			fs.StringVar(&form.Email, "email", "", "email address")
			fs.StringVar(&role, "role", "user", "superuser, admin, manager or user")
			fs.IntSliceVar(&form.Teams, "team", nil, "team id")
			fs.StringVar(&form.Password, "password", "", "initial password")
			return fs
		},
		Run: func(ctx context.Context, args []string) error {
			r, err := models.ParseRole(role)
			if err != nil {
				return err
			}
			form.Role = r
			if err := form.Validate(); err != nil {
				return err
			}
			var userID int
			if name == "update" {
				if userID, err = oneID(args); err != nil {
					return err
				}
			}
			return env.run(ctx, &cf, func(s *session) error {
				if err := s.enter(ctx, router.PathUsers); err != nil {
					return err
				}
				var user *models.User
				if name == "update" {
					user, err = s.app.Users.UpdateUser(ctx, userID, form)
				} else {
					user, err = s.app.Users.AddUser(ctx, form)
				}
				if err != nil {
					return s.failed(s.app.Users.State().Error, err)
				}
				s.notify(fmt.Sprintf("User %s saved (#%d)", user.Email, user.ID), stores.ColorSuccess)
				return nil
			})
		},
	}
}

func entriesCommand(env *Env) *Command {
	var cf clientFlags
	return &Command{
		Name:    "entries",
		Summary: "List your check-ins or add one",
		Flags:   func() *pflag.FlagSet { return newFlags("entries", &cf) },
		Run: func(ctx context.Context, _ []string) error {
			return env.run(ctx, &cf, func(s *session) error {
				if err := s.enter(ctx, router.PathEntries); err != nil {
					return err
				}
				if err := s.app.Entries.FetchEntries(ctx); err != nil {
					return s.failed(s.app.Entries.State().Error, err)
				}
				s.out.heading("Entries")
				rows := [][]string{}
				for _, e := range s.app.Entries.State().Items {
					rows = append(rows, []string{
						e.ReportedAt,
						e.Team.Name,
						score(e.StressScore),
						score(e.MotivationScore),
						orDash(e.Comment),
					})
				}
				s.out.table("No entries yet.", []string{"DATE", "TEAM", "STRESS", "MOTIVATION", "COMMENT"}, rows)
				return nil
			})
		},
		Subcommands: []*Command{entryAddCommand(env)},
	}
}

func entryAddCommand(env *Env) *Command {
	var (
		cf      clientFlags
		form    models.EntryForm
		date    string
		answers []string
	)
	return &Command{
		Name:    "add",
		Summary: "Check in for a team",
		Usage:   "pulse entries add --team ID [--date YYYY-MM-DD] --answer key=value...",
		Examples: []Example{
			{Description: "Answer the team's questions for today", Command: "pulse entries add --team 1 --answer stress=3 --answer motivation=4"},
		},
		Flags: func() *pflag.FlagSet {
			fs := newFlags("add", &cf)
			fs.IntVar(&form.Team, "team", 0, "team id")
			fs.StringVar(&date, "date", "", "reported date, default today")
			fs.StringArrayVar(&answers, "answer", nil, "answer as key=value")
			fs.StringVar(&form.Comment, "comment", "", "free text comment")
			return fs
		},
		Run: func(ctx context.Context, _ []string) error {
			form.ReportedAt = time.Now()
			if date != "" {
				t, err := time.ParseInLocation(dateLayout, date, time.Local)
				if err != nil {
					return fmt.Errorf("--date must be YYYY-MM-DD: %w", err)
				}
				form.ReportedAt = t
			}
			set, err := parseAnswers(answers)
			if err != nil {
				return err
			}
			form.Answers = set
			if err := form.Validate(); err != nil {
				return err
			}
			return env.run(ctx, &cf, func(s *session) error {
				if err := s.enter(ctx, router.PathEntries); err != nil {
					return err
				}
				entry, err := s.app.Entries.AddEntry(ctx, form)
				if err != nil {
					return s.failed(s.app.Entries.State().Error, err)
				}
				s.notify(fmt.Sprintf("Entry saved for %s", stores.DisplayDate(entry.ReportedAt)), stores.ColorSuccess)
				s.out.line("stress %s  motivation %s", score(entry.StressScore), score(entry.MotivationScore))
				return nil
			})
		},
	}
}

func teamEntriesCommand(env *Env) *Command {
	var cf clientFlags
	return &Command{
		Name:    "team-entries",
		Summary: "Chart the last 90 days per team and user",
		Flags:   func() *pflag.FlagSet { return newFlags("team-entries", &cf) },
		Run: func(ctx context.Context, _ []string) error {
			return env.run(ctx, &cf, func(s *session) error {
				if err := s.enter(ctx, router.PathTeamEntries); err != nil {
					return err
				}
				if err := s.app.TeamEntries.FetchTeamEntries(ctx); err != nil {
					return s.failed(s.app.TeamEntries.State().Error, err)
				}
				teams := s.app.TeamEntries.State().Items
				if len(teams) == 0 {
					s.out.note("No entries in the last 90 days.")
					return nil
				}
				for _, team := range teams {
					s.out.heading(team.Name)
					for _, u := range team.Users {
						s.out.line("  %s", u.Name)
						series := u.Entries
						for i, label := range series.Labels {
							s.out.line("    %s  stress %s %3d  motivation %s %3d",
								label,
								s.out.bar(s.out.stress, series.StressValues[i]), series.StressValues[i],
								s.out.bar(s.out.motive, series.MotivationValues[i]), series.MotivationValues[i],
							)
						}
					}
				}
				return nil
			})
		},
	}
}

func deleteCommand(env *Env, summary, page string, del func(ctx context.Context, s *session, id int) error) *Command {
	var cf clientFlags
	return &Command{
		Name:    "delete",
		Summary: summary,
		Usage:   "pulse " + strings.TrimPrefix(page, "/") + " delete ID",
		Flags:   func() *pflag.FlagSet { return newFlags("delete", &cf) },
		Run: func(ctx context.Context, args []string) error {
			id, err := oneID(args)
			if err != nil {
				return err
			}
			return env.run(ctx, &cf, func(s *session) error {
				if err := s.enter(ctx, page); err != nil {
					return err
				}
				return del(ctx, s, id)
			})
		},
	}
}

func oneID(args []string) (int, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("expected exactly one id, got %d arguments", len(args))
	}
	id, err := strconv.Atoi(args[0])
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", args[0])
	}
	return id, nil
}

// parseQuestions reads key=text or key:type=text pairs.
func parseQuestions(raw []string) (models.QuestionSet, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	qs := models.QuestionSet{}
	for _, item := range raw {
		key, text, ok := strings.Cut(item, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" || strings.TrimSpace(text) == "" {
			return nil, fmt.Errorf("question %q must be key=text", item)
		}
		key, kind, typed := strings.Cut(key, ":")
		if !typed {
			qs[key] = models.Label(text)
			continue
		}
		switch t := models.QuestionType(kind); t {
		case models.QuestionText, models.QuestionNumber, models.QuestionScale, models.QuestionBoolean:
			qs[key] = models.Structured(models.Question{Text: text, Type: t})
		default:
			return nil, fmt.Errorf("question %q has unknown type %q", item, kind)
		}
	}
	return qs, nil
}

// parseAnswers reads key=value pairs, inferring numbers and booleans.
func parseAnswers(raw []string) (models.AnswerSet, error) {
	set := models.AnswerSet{}
	for _, item := range raw {
		key, value, ok := strings.Cut(item, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("answer %q must be key=value", item)
		}
		set[key] = models.ParseAnswer(value)
	}
	return set, nil
}

func score(v *int) string {
	if v == nil {
		return "-"
	}
	return strconv.Itoa(*v)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
