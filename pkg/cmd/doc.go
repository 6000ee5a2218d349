// Package cmd provides the check_for_extra_migrations command line.
//
// The application has a single root command. Before it acts, it walks up from
// the working directory to the nearest directory containing a Gemfile and
// makes that the working directory, so the tool can be run from anywhere
// inside a Rails project.
//
// # Modes
//
// Without arguments the command reports drift: every migration recorded in
// the schema_migrations table that has no file in db/migrate and is not in
// the ignore-list. For each one it prints the commit that first introduced
// the migration and the branches that contain it:
//
//	$ check_for_extra_migrations
//	Migrations have been run that are not present in this branch ('main'): 20230102000000.
//	* The migration 20230102000000 first appeared in commit 4f1c..., which is on these branches: 'feature'.
//
// With the "calibrate" argument it stores the current drift in
// .extra_migrations so those migrations are ignored by later reports:
//
//	$ check_for_extra_migrations calibrate
//	Wrote to /src/app/.extra_migrations.
//
// # Environment
//
//   - CHECK_FOR_EXTRA_MIGRATIONS_ENV, RAILS_ENV: database.yml section (default development)
//   - CHECK_FOR_EXTRA_MIGRATIONS_LOG_LEVEL: debug, info, warn or error (default warn)
//
// Errors are printed as "check_for_extra_migrations: <message>" and exit with
// status 1. Finding drift is not an error.
package cmd
