package database

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/kevinlitchfield/check-for-extra-migrations/pkg/config"
	"github.com/kevinlitchfield/check-for-extra-migrations/pkg/consts"
	"github.com/kevinlitchfield/check-for-extra-migrations/pkg/migrator"
	"github.com/kevinlitchfield/check-for-extra-migrations/pkg/shell"
	"github.com/pkg/errors"
)

// Query lists the applied migration versions.
const Query = "select version from schema_migrations;"

// psqlBinary is the PostgreSQL interactive client.
const psqlBinary = "psql"

// ErrConnection is returned when the database cannot be queried. Its message
// never includes hosts, users or passwords.
var ErrConnection = errors.New("error connecting to PostgreSQL")

// supportedAdapters lists the Rails adapters that speak the PostgreSQL protocol.
var supportedAdapters = []string{"postgresql", "postgis"}

type (
	// Source provides the migrations recorded as applied in a database.
	Source interface {
		RecordedMigrations(context.Context) (*migrator.Set, error)
	}

	// Options configures Open.
	Options struct {
		// Runner executes psql. Required.
		Runner shell.Runner

		// Timeout bounds native connections. Zero means consts.DefaultCommandTimeout.
		Timeout time.Duration
	}

	// UnsupportedAdapterError is returned by Open for non-PostgreSQL adapters.
	UnsupportedAdapterError struct {
		Adapter string
	}
)

func (e *UnsupportedAdapterError) Error() string {
	return fmt.Sprintf("Sorry, %s is not supported yet", e.Adapter)
}

// IsSupported reports whether adapter is a PostgreSQL-family adapter.
func IsSupported(adapter string) bool {
	return slices.Contains(supportedAdapters, adapter)
}

// Open validates the adapter in cfg and returns a Source for it. psql is
// preferred when it is installed; otherwise the database is reached directly.
//
// Example:
//
//	src, err := database.Open(&config.Database{Adapter: "mysql2"}, opts)
//	var unsupported *database.UnsupportedAdapterError
//	if errors.As(err, &unsupported) {
//		fmt.Println(unsupported.Adapter) // mysql2
//	}
func Open(cfg *config.Database, opts Options) (Source, error) {
	if cfg == nil {
		return nil, errors.New("database config is required")
	}

	if !IsSupported(cfg.Adapter) {
		return nil, &UnsupportedAdapterError{Adapter: cfg.Adapter}
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = consts.DefaultCommandTimeout
	}

	if opts.Runner != nil {
		if path, err := opts.Runner.LookPath(psqlBinary); err == nil {
			slog.Debug("Using psql client", "path", path)
			return NewPsqlSource(cfg, opts.Runner), nil
		}
	}

	slog.Debug("psql not found on PATH, connecting natively")
	return NewPgxSource(cfg, timeout), nil
}

// parseVersions collects one identifier from every line of psql output that
// contains one, in output order.
func parseVersions(lines []string) *migrator.Set {
	set := migrator.NewSet()
	for _, line := range lines {
		if id, ok := migrator.ExtractID(line); ok {
			set.Add(id)
		}
	}

	return set
}
