package consts

import (
	"os"
	"time"
)

const (
	// ToolName prefixes every fatal message printed to stderr.
	ToolName = "check_for_extra_migrations"

	// ModeDir is the standard file mode for creating directories
	ModeDir = os.FileMode(0o755)

	// ModeFile is the standard file mode for creating files
	ModeFile = os.FileMode(0o644)

	// ProjectMarker identifies the root of a Rails project.
	ProjectMarker = "Gemfile"

	// DatabaseConfigPath is the database config file, relative to the project root.
	DatabaseConfigPath = "config/database.yml"

	// MigrationsDir holds the migration files, relative to the project root.
	MigrationsDir = "db/migrate"

	// StateFile is the persisted ignore-list, relative to the project root.
	StateFile = ".extra_migrations"

	// DefaultEnvironment is the database.yml section used when none is given.
	DefaultEnvironment = "development"

	// DefaultCommandTimeout bounds every psql and git invocation.
	DefaultCommandTimeout = 30 * time.Second
)
