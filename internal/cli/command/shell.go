package command

import (
	"context"
	"errors"

	"github.com/urfave/cli/v2"

	"github.com/dioritemc/diorite-go/internal/cli/config"
	"github.com/dioritemc/diorite-go/internal/cli/repl"
)

// ShellCommand starts an interactive shell. Global flags given to the
// shell apply to every line.
func ShellCommand() *cli.Command {
	return &cli.Command{
		Name:  "shell",
		Usage: "Start an interactive shell",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "history", Usage: "History file (default ~/.diorite/history)"},
		},
		Action: shellAction,
	}
}

func shellAction(c *cli.Context) error {
	path := c.String("history")
	if path == "" {
		path = config.DefaultHistoryPath()
	}
	history := repl.NewHistory(path)
	log := Logger(c)
	if err := history.Load(); err != nil {
		log.Warn("load history", "file", path, "error", err)
	}

	inherited := inheritedFlags(c)
	exec := func(ctx context.Context, args []string) error {
		if args[0] == "shell" {
			return errors.New("already in a shell")
		}
		app := App()
		app.Writer = c.App.Writer
		app.ErrWriter = c.App.ErrWriter
		app.ExitErrHandler = func(*cli.Context, error) {}
		argv := append([]string{c.App.Name}, inherited...)
		return app.RunContext(ctx, append(argv, args...))
	}

	r := repl.New(exec,
		repl.WithIO(c.App.Reader, c.App.Writer),
		repl.WithHistory(history),
		repl.WithCompleter(repl.NewCompleter(commandWords(c.App.Commands))),
	)
	err := r.Run(c.Context)
	if serr := history.Save(); serr != nil {
		log.Warn("save history", "file", path, "error", serr)
	}
	return err
}

// inheritedFlags rebuilds the global flags that were set on the shell.
func inheritedFlags(c *cli.Context) []string {
	var out []string
	for _, name := range []string{"config", "server", "ca-file", "output"} {
		if c.IsSet(name) {
			out = append(out, "--"+name, c.String(name))
		}
	}
	for _, name := range []string{"wide", "verbose"} {
		if c.Bool(name) {
			out = append(out, "--"+name)
		}
	}
	return out
}

func commandWords(cmds []*cli.Command) []string {
	var words []string
	for _, cmd := range cmds {
		if cmd.Name == "shell" {
			continue
		}
		words = append(words, cmd.Names()...)
		for _, sub := range cmd.Subcommands {
			words = append(words, cmd.Name+" "+sub.Name)
		}
	}
	return words
}
