package migrator

import (
	"io/fs"
	"regexp"

	"github.com/pkg/errors"
)

// Pattern matches a migration identifier anywhere in a string.
var Pattern = regexp.MustCompile(`\d{14}`)

// ID is a migration identifier. Identity is by exact string value.
type ID string

// ExtractID returns the first migration identifier found in s.
//
// Example:
//
//	id, ok := migrator.ExtractID("20230101000000_old.bak~")
//	// id == "20230101000000", ok == true
func ExtractID(s string) (ID, bool) {
	match := Pattern.FindString(s)
	if match == "" {
		return "", false
	}

	return ID(match), true
}

// LoadMigrationDir returns the identifiers of the immediate entries of the
// root of dir, in lexical order. Entries whose names carry no identifier are
// skipped. A missing directory yields an empty set, since a checkout without
// any migrations is valid.
//
// Example usage:
//
//	present, err := migrator.LoadMigrationDir(os.DirFS("db/migrate"))
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	fmt.Printf("%d migrations in this branch\n", present.Len())
func LoadMigrationDir(dir fs.FS) (*Set, error) {
	// NB: ReadDir returns entries sorted by filename.
	entries, err := fs.ReadDir(dir, ".")
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return NewSet(), nil
		}

		return nil, errors.Wrap(err, "failed to read migrations directory")
	}

	set := NewSet()
	for _, entry := range entries {
		if id, ok := ExtractID(entry.Name()); ok {
			set.Add(id)
		}
	}

	return set, nil
}
