package database_test

import (
	"testing"

	"github.com/kevinlitchfield/check-for-extra-migrations/pkg/cmd/testutil"
	"github.com/kevinlitchfield/check-for-extra-migrations/pkg/config"
	. "github.com/kevinlitchfield/check-for-extra-migrations/pkg/database"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func devConfig() *config.Database {
	return &config.Database{
		Adapter:  "postgresql",
		Database: "app_development",
		Username: "app",
		Password: "s3cret",
		Host:     "localhost",
		Port:     "5432",
	}
}

func TestOpen(t *testing.T) {
	t.Run("unsupported adapter", func(t *testing.T) {
		runner := testutil.NewFakeRunner()
		cfg := devConfig()
		cfg.Adapter = "mysql"

		src, err := Open(cfg, Options{Runner: runner})
		require.Nil(t, src)

		var unsupported *UnsupportedAdapterError
		require.True(t, errors.As(err, &unsupported))
		require.Equal(t, "mysql", unsupported.Adapter)
		require.Equal(t, "Sorry, mysql is not supported yet", err.Error())
		require.Empty(t, runner.Calls)
	})

	t.Run("empty adapter", func(t *testing.T) {
		cfg := devConfig()
		cfg.Adapter = ""

		_, err := Open(cfg, Options{Runner: testutil.NewFakeRunner()})
		var unsupported *UnsupportedAdapterError
		require.True(t, errors.As(err, &unsupported))
	})

	t.Run("nil config", func(t *testing.T) {
		_, err := Open(nil, Options{})
		require.Error(t, err)
	})

	t.Run("prefers psql", func(t *testing.T) {
		src, err := Open(devConfig(), Options{Runner: testutil.NewFakeRunner()})
		require.NoError(t, err)
		require.IsType(t, &PsqlSource{}, src)
	})

	t.Run("postgis is postgres", func(t *testing.T) {
		cfg := devConfig()
		cfg.Adapter = "postgis"

		src, err := Open(cfg, Options{Runner: testutil.NewFakeRunner()})
		require.NoError(t, err)
		require.IsType(t, &PsqlSource{}, src)
	})

	t.Run("falls back to pgx without psql", func(t *testing.T) {
		src, err := Open(devConfig(), Options{Runner: testutil.NewFakeRunner().Missing("psql")})
		require.NoError(t, err)
		require.IsType(t, &PgxSource{}, src)
	})
}

func TestIsSupported(t *testing.T) {
	require.True(t, IsSupported("postgresql"))
	require.True(t, IsSupported("postgis"))
	require.False(t, IsSupported("mysql2"))
	require.False(t, IsSupported("sqlite3"))
	require.False(t, IsSupported("PostgreSQL"))
}
