package cmd

import (
	"bytes"
	"context"
	"testing"

	"github.com/kevinlitchfield/check-for-extra-migrations/pkg/cmd/testutil"
	"github.com/kevinlitchfield/check-for-extra-migrations/pkg/git"
	"github.com/kevinlitchfield/check-for-extra-migrations/pkg/provenance"
	"github.com/kevinlitchfield/check-for-extra-migrations/pkg/shell"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"
	"gotest.tools/v3/golden"
)

func runApp(t *testing.T, runner *testutil.FakeRunner, args ...string) (int, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	app := fxtest.New(t,
		fx.NopLogger,
		fx.Supply(
			append([]string{"check_for_extra_migrations"}, args...),
			&Version{Version: "test"},
			&Streams{Out: &stdout, Err: &stderr},
		),
		fx.Provide(fx.Annotate(
			func() *testutil.FakeRunner { return runner },
			fx.As(new(shell.Runner)),
		)),
		fx.Provide(context.Background),
		git.Module,
		provenance.Module,
		Module,
	)

	app.RequireStart()
	sig := <-app.Wait()
	app.RequireStop()

	return sig.ExitCode, &stdout, &stderr
}

func TestRun(t *testing.T) {
	t.Run("drift exits zero", func(t *testing.T) {
		fixture := testutil.TestProject(t).
			WithMigrations("20230101000000_create_users.rb")
		t.Chdir(fixture.Dir)

		code, stdout, stderr := runApp(t, driftedRunner())
		require.Equal(t, 0, code)
		require.Contains(t, stdout.String(), "Migrations have been run that are not present in this branch ('main')")
		require.Empty(t, stderr.String())
	})

	t.Run("errors exit one", func(t *testing.T) {
		fixture := testutil.TestProject(t).
			WithDatabaseYAML("development:\n  adapter: sqlite3\n  database: db/development.sqlite3\n")
		t.Chdir(fixture.Dir)

		code, stdout, stderr := runApp(t, testutil.NewFakeRunner())
		require.Equal(t, 1, code)
		require.Empty(t, stdout.String())
		require.Equal(t, "check_for_extra_migrations: Sorry, sqlite3 is not supported yet\n", stderr.String())
	})

	for _, arg := range []string{"--bogus", "-h", "--help", "-v", "--version", "help"} {
		t.Run(arg+" reports", func(t *testing.T) {
			fixture := testutil.TestProject(t).
				WithMigrations("20230101000000_create_users.rb")
			t.Chdir(fixture.Dir)

			code, stdout, stderr := runApp(t, driftedRunner(), arg)
			require.Equal(t, 0, code)
			golden.Assert(t, stdout.String(), goldenFile("report.golden"))
			require.Empty(t, stderr.String())
		})
	}

	t.Run("flags before calibrate still report", func(t *testing.T) {
		fixture := testutil.TestProject(t).
			WithMigrations("20230101000000_create_users.rb")
		t.Chdir(fixture.Dir)

		code, stdout, _ := runApp(t, driftedRunner(), "--bogus", "calibrate")
		require.Equal(t, 0, code)
		golden.Assert(t, stdout.String(), goldenFile("report.golden"))
		testutil.RequireNoFile(t, fixture.StatePath())
	})

	t.Run("missing database config exits one", func(t *testing.T) {
		fixture := testutil.TestProject(t).WithoutDatabaseYAML()
		t.Chdir(fixture.Dir)

		runner := testutil.NewFakeRunner()
		code, stdout, stderr := runApp(t, runner, "calibrate")
		require.Equal(t, 1, code)
		require.Empty(t, stdout.String())
		require.Contains(t, stderr.String(), "check_for_extra_migrations: ")
		require.Contains(t, stderr.String(), "you do not appear to be in a Rails project")
		require.Empty(t, runner.Calls)
		testutil.RequireNoFile(t, fixture.StatePath())
	})
}
