package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/kevinlitchfield/check-for-extra-migrations/pkg/config"
	"github.com/kevinlitchfield/check-for-extra-migrations/pkg/consts"
	"github.com/kevinlitchfield/check-for-extra-migrations/pkg/database"
	"github.com/kevinlitchfield/check-for-extra-migrations/pkg/drift"
	"github.com/kevinlitchfield/check-for-extra-migrations/pkg/git"
	"github.com/kevinlitchfield/check-for-extra-migrations/pkg/ignorelist"
	"github.com/kevinlitchfield/check-for-extra-migrations/pkg/project"
	"github.com/kevinlitchfield/check-for-extra-migrations/pkg/provenance"
	"github.com/kevinlitchfield/check-for-extra-migrations/pkg/shell"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v3"
	"go.uber.org/fx"
)

const calibrateArg = "calibrate"

var (
	envSource      = cli.EnvVars("CHECK_FOR_EXTRA_MIGRATIONS_ENV", "RAILS_ENV")
	logLevelSource = cli.EnvVars("CHECK_FOR_EXTRA_MIGRATIONS_LOG_LEVEL")
)

type (
	Params struct {
		fx.In

		Args       []string
		Ctx        context.Context
		Lifecycle  fx.Lifecycle
		Shutdowner fx.Shutdowner
		Version    *Version
		Runner     shell.Runner
		Git        *git.Repository
		Reporter   *provenance.Reporter
		Streams    *Streams `optional:"true"`
	}

	Version struct {
		Version   string
		Commit    string
		Timestamp string
	}

	// Streams overrides where the application writes. Nil fields fall back to
	// os.Stdout and os.Stderr.
	Streams struct {
		Out io.Writer
		Err io.Writer
	}

	// AppParams holds everything the CLI application needs to run.
	AppParams struct {
		Version  *Version
		Runner   shell.Runner
		Git      *git.Repository
		Reporter *provenance.Reporter
	}
)

// Run registers a start hook that executes the CLI with the process
// arguments and then shuts the fx application down. A failed run prints
// "check_for_extra_migrations: <message>" to stderr and exits 1; everything
// else, including a report of drifted migrations, exits 0.
func Run(p Params) {
	stdout, stderr := p.Streams.writers()

	app := NewApp(AppParams{
		Version:  p.Version,
		Runner:   p.Runner,
		Git:      p.Git,
		Reporter: p.Reporter,
	})
	app.Writer = stdout
	app.ErrWriter = stderr

	p.Lifecycle.Append(fx.StartHook(func() {
		if err := app.Run(p.Ctx, p.Args); err != nil {
			slog.Debug("Command failed", "err", fmt.Sprintf("%+v", err))
			fmt.Fprintf(stderr, "%s: %s\n", consts.ToolName, err)
			_ = p.Shutdowner.Shutdown(fx.ExitCode(1))
			return
		}

		_ = p.Shutdowner.Shutdown(fx.ExitCode(0))
	}))
}

// NewApp builds the root command. Its Before hook moves the process to the
// enclosing Rails project and configures logging; its Action reports drift,
// or calibrates the ignore-list when the first argument is "calibrate". The
// command takes no flags: every argument is positional and anything other
// than "calibrate" reports. The database.yml environment and the log level
// come from the environment only.
//
// Example:
//
//	app := cmd.NewApp(cmd.AppParams{
//		Version:  &cmd.Version{Version: "dev"},
//		Runner:   runner,
//		Git:      git.New(runner, ""),
//		Reporter: provenance.New(git.New(runner, "")),
//	})
//	err := app.Run(ctx, []string{"check_for_extra_migrations", "calibrate"})
func NewApp(p AppParams) *cli.Command {
	var proj *project.Project

	return &cli.Command{
		Name:      consts.ToolName,
		Usage:     "Find migrations that have run against your database but are missing from this branch",
		ArgsUsage: "[calibrate]",
		Description: `check_for_extra_migrations compares the schema_migrations table of the
development database with the files in db/migrate and reports every migration
that has been run but is not present in the current branch, along with the
commit that introduced it and the branches containing that commit.

Run "check_for_extra_migrations calibrate" to record the current extra
migrations in .extra_migrations so that they are ignored from then on.`,
		Version:         p.Version.Version,
		SkipFlagParsing: true,
		HideHelp:        true,
		HideHelpCommand: true,
		HideVersion:     true,
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			if err := setupLogging(cmd.ErrWriter, setting(logLevelSource, "warn")); err != nil {
				return ctx, err
			}

			slog.Debug("Starting", "version", p.Version.Version, "commit", p.Version.Commit, "args", cmd.Args().Slice())

			pwd, err := os.Getwd()
			if err != nil {
				return ctx, errors.Wrap(err, "failed to get current working directory")
			}

			proj, err = project.Open(pwd)
			if err != nil {
				return ctx, err
			}

			slog.Debug("Resolved project root", "root", proj.Root(), "found", proj.Found())
			return ctx, proj.Chdir()
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			session, err := newSession(proj, setting(envSource, consts.DefaultEnvironment), p.Runner)
			if err != nil {
				return err
			}

			if cmd.Args().First() == calibrateArg {
				return calibrate(ctx, cmd.Writer, session)
			}

			return report(ctx, cmd.Writer, session, p.Git, p.Reporter)
		},
	}
}

func newSession(proj *project.Project, env string, runner shell.Runner) (*drift.Session, error) {
	dbConfig, err := config.LoadConfigFile(proj.DatabaseConfigPath(), env)
	if err != nil {
		return nil, err
	}

	source, err := database.Open(dbConfig, database.Options{
		Runner:  runner,
		Timeout: consts.DefaultCommandTimeout,
	})
	if err != nil {
		return nil, err
	}

	return drift.NewSession(drift.SessionParams{
		Source:     source,
		Migrations: proj.MigrationsFS(),
		IgnoreList: ignorelist.New(proj.StatePath()),
	}), nil
}

// setting returns the first non-blank value found in src, or def.
func setting(src cli.ValueSourceChain, def string) string {
	if v, ok := src.Lookup(); ok {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}

	return def
}

func setupLogging(w io.Writer, level string) error {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return errors.Errorf("invalid log level %q", level)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})))
	return nil
}

func (s *Streams) writers() (io.Writer, io.Writer) {
	var out, errOut io.Writer = os.Stdout, os.Stderr
	if s == nil {
		return out, errOut
	}

	if s.Out != nil {
		out = s.Out
	}

	if s.Err != nil {
		errOut = s.Err
	}

	return out, errOut
}
