package database

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/kevinlitchfield/check-for-extra-migrations/pkg/config"
	"github.com/kevinlitchfield/check-for-extra-migrations/pkg/migrator"
	"github.com/kevinlitchfield/check-for-extra-migrations/pkg/shell"
	"github.com/pkg/errors"
)

// PgxSource queries schema_migrations over a native pgx connection.
type PgxSource struct {
	cfg     *config.Database
	timeout time.Duration
}

// NewPgxSource creates a PgxSource whose connect and query are bounded by
// timeout.
func NewPgxSource(cfg *config.Database, timeout time.Duration) *PgxSource {
	return &PgxSource{cfg: cfg, timeout: timeout}
}

// RecordedMigrations connects, runs Query and returns the identifiers in row
// order.
func (s *PgxSource) RecordedMigrations(ctx context.Context) (*migrator.Set, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	connConfig, err := s.ConnConfig()
	if err != nil {
		slog.Debug("Invalid connection settings", "err", err)
		return nil, ErrConnection
	}

	conn, err := pgx.ConnectConfig(ctx, connConfig)
	if err != nil {
		slog.Debug("Failed to connect", "err", err)
		return nil, s.failure(ctx)
	}
	defer func() { _ = conn.Close(context.Background()) }()

	rows, err := conn.Query(ctx, Query)
	if err != nil {
		slog.Debug("Failed to query schema_migrations", "err", err)
		return nil, s.failure(ctx)
	}

	versions, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		slog.Debug("Failed to read schema_migrations", "err", err)
		return nil, s.failure(ctx)
	}

	return parseVersions(versions), nil
}

func (s *PgxSource) failure(ctx context.Context) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return errors.Wrapf(shell.ErrTimeout, "PostgreSQL did not respond within %s", s.timeout)
	}

	return ErrConnection
}

// ConnConfig builds the pgx connection config. Settings absent from
// database.yml fall back to libpq defaults and PG* environment variables.
func (s *PgxSource) ConnConfig() (*pgx.ConnConfig, error) {
	cc, err := pgx.ParseConfig("")
	if err != nil {
		return nil, errors.Wrap(err, "failed to build default connection config")
	}

	cc.Database = s.cfg.Database
	if s.cfg.Username != "" {
		cc.User = s.cfg.Username
	}
	if s.cfg.Password != "" {
		cc.Password = s.cfg.Password
	}
	if s.cfg.Host != "" {
		cc.Host = s.cfg.Host
		cc.Fallbacks = nil
	}
	if s.cfg.Port != "" {
		port, err := strconv.ParseUint(s.cfg.Port, 10, 16)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid port: %s", s.cfg.Port)
		}
		cc.Port = uint16(port)
	}

	return cc, nil
}
