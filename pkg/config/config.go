package config

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

var (
	// ErrConfigNotFound is returned when the database config file is missing.
	ErrConfigNotFound = errors.New("you do not appear to be in a Rails project")

	// ErrConfigUnreadable is returned when the database config file exists but
	// cannot be read or parsed.
	ErrConfigUnreadable = errors.New("database config could not be read, you do not appear to be in a Rails project")

	// ErrEnvironmentNotFound is returned when the config has no section for the
	// requested environment.
	ErrEnvironmentNotFound = errors.New("environment not found in database config")
)

// Database holds the connection settings of one database.yml environment.
// Empty fields were not given in the file and are omitted when connecting.
type Database struct {
	// Adapter names the Rails database adapter, e.g. "postgresql"
	Adapter string `yaml:"adapter"`

	// Database is the database name
	Database string `yaml:"database"`

	Username string `yaml:"username,omitempty"`
	Password string `yaml:"password,omitempty"`
	Host     string `yaml:"host,omitempty"`

	// Port accepts both quoted and bare numbers
	Port string `yaml:"port,omitempty"`
}

// LoadConfig parses a Rails database.yml document from r and returns the
// settings of the named environment.
//
// YAML anchors and merge keys are honoured, so the common layout works:
//
//	default: &default
//	  adapter: postgresql
//	  host: localhost
//
//	development:
//	  <<: *default
//	  database: app_development
//
// Example:
//
//	db, err := config.LoadConfig(strings.NewReader(yamlData), "development")
//	if err != nil {
//		panic(err)
//	}
//
//	fmt.Printf("Adapter: %s, database: %s\n", db.Adapter, db.Database)
func LoadConfig(r io.Reader, env string) (*Database, error) {
	var envs map[string]*Database
	if err := yaml.NewDecoder(r).Decode(&envs); err != nil {
		return nil, errors.Wrapf(ErrConfigUnreadable, "failed to unmarshal database config: %s", err)
	}

	db, ok := envs[env]
	if !ok || db == nil {
		return nil, errors.Wrapf(ErrEnvironmentNotFound, "no %q section", env)
	}

	return db, nil
}

// LoadConfigFile loads the named environment from the file at path.
// This is a convenience function that opens the file and calls LoadConfig.
//
// Example:
//
//	db, err := config.LoadConfigFile("config/database.yml", "development")
//	if err != nil {
//		log.Fatal("Failed to load config:", err)
//	}
func LoadConfigFile(path, env string) (*Database, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(ErrConfigNotFound, "%s not found", path)
		}

		return nil, errors.Wrapf(ErrConfigUnreadable, "failed to open file: %s", path)
	}
	defer func() { _ = f.Close() }()

	return LoadConfig(f, env)
}
