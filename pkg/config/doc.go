// Package config reads the database connection settings of a Rails project
// from config/database.yml.
//
// Only the fields needed to reach the database are decoded (adapter,
// database, username, password, host, port); everything else in the file is
// ignored. Settings are selected by environment name, "development" unless
// another is requested.
package config
