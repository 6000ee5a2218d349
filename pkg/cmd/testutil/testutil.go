package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/kevinlitchfield/check-for-extra-migrations/pkg/consts"
	"github.com/stretchr/testify/require"
)

// DefaultDatabaseYAML is a minimal PostgreSQL database.yml.
const DefaultDatabaseYAML = `default: &default
  adapter: postgresql
  encoding: unicode

development:
  <<: *default
  database: app_development
  username: app
  password: s3cret
  host: localhost
  port: 5432
`

// ProjectFixture is a temporary Rails project layout: a Gemfile, a
// config/database.yml and a db/migrate directory.
type ProjectFixture struct {
	Dir string
	t   *testing.T
}

// TestProject creates an isolated temp directory laid out like a Rails
// project using DefaultDatabaseYAML.
func TestProject(t *testing.T) *ProjectFixture {
	t.Helper()

	// Resolve symlinks (e.g. /tmp on macOS) so paths compare equal to os.Getwd.
	dir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)

	p := &ProjectFixture{Dir: dir, t: t}

	require.NoError(t, os.WriteFile(filepath.Join(dir, consts.ProjectMarker), []byte("source \"https://rubygems.org\"\n"), consts.ModeFile))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, consts.MigrationsDir), consts.ModeDir))

	return p.WithDatabaseYAML(DefaultDatabaseYAML)
}

// WithDatabaseYAML replaces config/database.yml.
func (p *ProjectFixture) WithDatabaseYAML(content string) *ProjectFixture {
	p.t.Helper()

	path := filepath.Join(p.Dir, consts.DatabaseConfigPath)
	require.NoError(p.t, os.MkdirAll(filepath.Dir(path), consts.ModeDir))
	require.NoError(p.t, os.WriteFile(path, []byte(content), consts.ModeFile))

	return p
}

// WithoutDatabaseYAML removes config/database.yml.
func (p *ProjectFixture) WithoutDatabaseYAML() *ProjectFixture {
	p.t.Helper()

	require.NoError(p.t, os.Remove(filepath.Join(p.Dir, consts.DatabaseConfigPath)))
	return p
}

// WithMigrations adds empty migration files with the given names to db/migrate.
func (p *ProjectFixture) WithMigrations(names ...string) *ProjectFixture {
	p.t.Helper()

	for _, name := range names {
		path := filepath.Join(p.MigrationsDir(), name)
		require.NoError(p.t, os.WriteFile(path, []byte("# "+name+"\n"), consts.ModeFile), "Failed to write migration file: %s", name)
	}

	return p
}

// WithStateFile writes raw bytes to the ignore-list file.
func (p *ProjectFixture) WithStateFile(data []byte) *ProjectFixture {
	p.t.Helper()

	require.NoError(p.t, os.WriteFile(p.StatePath(), data, consts.ModeFile))
	return p
}

// Subdir creates and returns a nested directory inside the project.
func (p *ProjectFixture) Subdir(parts ...string) string {
	p.t.Helper()

	dir := filepath.Join(append([]string{p.Dir}, parts...)...)
	require.NoError(p.t, os.MkdirAll(dir, consts.ModeDir))

	return dir
}

// MigrationsDir returns the path to db/migrate.
func (p *ProjectFixture) MigrationsDir() string {
	return filepath.Join(p.Dir, consts.MigrationsDir)
}

// StatePath returns the path to the ignore-list file.
func (p *ProjectFixture) StatePath() string {
	return filepath.Join(p.Dir, consts.StateFile)
}
