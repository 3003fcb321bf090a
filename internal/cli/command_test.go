package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecuteDispatchesNestedSubcommands(t *testing.T) {
	var called string
	var received []string
	root := &Command{
		Name: "pulse",
		Subcommands: []*Command{
			{
				Name: "teams",
				Run:  func(context.Context, []string) error { called = "teams"; return nil },
				Subcommands: []*Command{
					{Name: "delete", Run: func(_ context.Context, args []string) error {
						called = "teams delete"
						received = args
						return nil
					}},
				},
			},
		},
	}

	require.NoError(t, root.Execute(context.Background(), []string{"teams", "delete", "4"}))
	assert.Equal(t, "teams delete", called)
	assert.Equal(t, []string{"4"}, received)

	require.NoError(t, root.Execute(context.Background(), []string{"teams"}))
	assert.Equal(t, "teams", called)
}

func TestExecuteParsesFlags(t *testing.T) {
	var team int
	var answers []string
	cmd := &Command{
		Name: "add",
		Flags: func() *pflag.FlagSet {
			fs := pflag.NewFlagSet("add", pflag.ContinueOnError)
			fs.IntVar(&team, "team", 0, "team id")
			fs.StringArrayVar(&answers, "answer", nil, "answer")
			return fs
		},
		Run: func(context.Context, []string) error { return nil },
	}

	require.NoError(t, cmd.Execute(context.Background(), []string{"--team", "3", "--answer", "a=1", "--answer", "b=x,y"}))
	assert.Equal(t, 3, team)
	assert.Equal(t, []string{"a=1", "b=x,y"}, answers)
}

func TestExecuteSuggestions(t *testing.T) {
	root := &Command{
		Name: "pulse",
		Subcommands: []*Command{
			{Name: "teams"},
			{Name: "users"},
			{Name: "entries", Flags: func() *pflag.FlagSet {
				fs := pflag.NewFlagSet("entries", pflag.ContinueOnError)
				fs.String("config", "", "config")
				return fs
			}, Run: func(context.Context, []string) error { return nil }},
		},
	}

	err := root.Execute(context.Background(), []string{"tems"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `did you mean "teams"`)

	err = root.Execute(context.Background(), []string{"zzzzzzzz"})
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "did you mean")

	err = root.Execute(context.Background(), []string{"entries", "--confg", "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "did you mean --config")
	assert.Contains(t, err.Error(), "pulse entries --help")
}

func TestExecuteHelp(t *testing.T) {
	var help bytes.Buffer
	root := &Command{
		Name: "pulse",
		Help: &help,
		Subcommands: []*Command{
			{Name: "login", Summary: "Log in and store the session"},
		},
	}

	for _, arg := range []string{"-h", "--help", "help"} {
		help.Reset()
		require.NoError(t, root.Execute(context.Background(), []string{arg}))
		assert.Contains(t, help.String(), "login")
		assert.Contains(t, help.String(), "Log in and store the session")
	}

	help.Reset()
	err := root.Execute(context.Background(), nil)
	require.EqualError(t, err, "subcommand required")
	assert.Contains(t, help.String(), "Usage:\n  pulse <command> [flags]")
}

func TestParseQuestions(t *testing.T) {
	qs, err := parseQuestions([]string{"mood=How is it going?", "stress:scale=How stressed are you?"})
	require.NoError(t, err)
	assert.Equal(t, "How is it going?", qs["mood"].Label)
	require.NotNil(t, qs["stress"].Question)
	assert.Equal(t, "scale", string(qs["stress"].Kind()))

	_, err = parseQuestions([]string{"stress:slider=x"})
	assert.ErrorContains(t, err, "unknown type")

	_, err = parseQuestions([]string{"nokey"})
	assert.Error(t, err)
}

func TestParseAnswers(t *testing.T) {
	set, err := parseAnswers([]string{"stress=4", "remote=yes", "notes=busy week"})
	require.NoError(t, err)

	n, ok := set["stress"].AsNumber()
	assert.True(t, ok)
	assert.InDelta(t, 4, n, 0)
	b, ok := set["remote"].AsBool()
	assert.True(t, ok)
	assert.True(t, b)
	s, ok := set["notes"].AsString()
	assert.True(t, ok)
	assert.Equal(t, "busy week", s)

	_, err = parseAnswers([]string{"=4"})
	assert.Error(t, err)
}

func TestLevenshtein(t *testing.T) {
	assert.Equal(t, 0, levenshtein("teams", "teams"))
	assert.Equal(t, 1, levenshtein("tems", "teams"))
	assert.Equal(t, 5, levenshtein("", "users"))
}
