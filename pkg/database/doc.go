// Package database reads the migration versions a PostgreSQL database has
// recorded in its schema_migrations table.
//
// Two sources are available behind the Source interface. PsqlSource shells
// out to the psql client, which is what developers normally have installed
// alongside a Rails app. When psql is not on PATH, Open falls back to
// PgxSource, which connects natively using pgx. Both run the same query and
// return identifiers in the order the server produced them.
//
// Only PostgreSQL-family adapters are supported. Any other adapter yields an
// *UnsupportedAdapterError before a connection is attempted.
//
// Example usage:
//
//	db, err := config.LoadConfigFile("config/database.yml", "development")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	src, err := database.Open(db, database.Options{Runner: shell.New(shell.Options{})})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	recorded, err := src.RecordedMigrations(ctx)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	fmt.Println(recorded)
package database
