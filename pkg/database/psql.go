package database

import (
	"context"
	"log/slog"

	"github.com/kevinlitchfield/check-for-extra-migrations/pkg/config"
	"github.com/kevinlitchfield/check-for-extra-migrations/pkg/migrator"
	"github.com/kevinlitchfield/check-for-extra-migrations/pkg/shell"
	"github.com/pkg/errors"
)

// PsqlSource queries schema_migrations through the psql client.
type PsqlSource struct {
	cfg    *config.Database
	runner shell.Runner
}

// NewPsqlSource creates a PsqlSource. The adapter in cfg is not checked; use
// Open for that.
func NewPsqlSource(cfg *config.Database, runner shell.Runner) *PsqlSource {
	return &PsqlSource{cfg: cfg, runner: runner}
}

// RecordedMigrations runs Query through psql and parses the identifiers from
// its output.
func (s *PsqlSource) RecordedMigrations(ctx context.Context) (*migrator.Set, error) {
	res, err := s.runner.Run(ctx, s.Command())
	if err != nil {
		if errors.Is(err, shell.ErrTimeout) {
			return nil, err
		}

		// The wrapped error carries psql's stderr which may name the host and
		// user, so it only goes to the debug log.
		slog.Debug("psql failed", "err", err)
		return nil, ErrConnection
	}

	return parseVersions(shell.Lines(res.Stdout)), nil
}

// Command builds the psql invocation. The password travels in PGPASSWORD so
// it never appears in the process list, and --no-password stops psql from
// prompting when none is configured.
func (s *PsqlSource) Command() shell.Cmd {
	args := []string{
		"--no-psqlrc",
		"--no-password",
		"--tuples-only",
		"--no-align",
		"--dbname", s.cfg.Database,
	}

	if s.cfg.Username != "" {
		args = append(args, "--username", s.cfg.Username)
	}
	if s.cfg.Host != "" {
		args = append(args, "--host", s.cfg.Host)
	}
	if s.cfg.Port != "" {
		args = append(args, "--port", s.cfg.Port)
	}

	args = append(args, "--command", Query)

	var env []string
	if s.cfg.Password != "" {
		env = append(env, "PGPASSWORD="+s.cfg.Password)
	}

	return shell.Cmd{Name: psqlBinary, Args: args, Env: env}
}
