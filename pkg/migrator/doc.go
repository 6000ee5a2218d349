// Package migrator models Rails migration identifiers and the drift between
// the migrations a database has recorded and the files in a checkout.
//
// A migration is identified by the 14-digit timestamp that prefixes its file
// name (for example 20230101000000_create_users.rb) and is stored verbatim in
// the schema_migrations table once applied. Nothing else about the identifier
// is interpreted.
//
// The package provides:
//   - ID and ExtractID for pulling identifiers out of arbitrary text
//   - Set, an insertion-ordered set of identifiers
//   - LoadMigrationDir for reading identifiers from a migrations directory
//   - Drift, the set difference recorded - present - ignored
//
// Example usage:
//
//	present, err := migrator.LoadMigrationDir(os.DirFS("db/migrate"))
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	recorded := migrator.NewSet("20230101000000", "20230102000000")
//	extra := migrator.Drift(recorded, present, migrator.NewSet())
//	fmt.Println(extra) // 20230102000000
package migrator
