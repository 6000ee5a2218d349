// Package ignorelist persists the set of migrations whose drift has been
// acknowledged, so they are left out of later reports.
//
// The list lives in a single opaque file at the project root. It is absent
// until the first calibration, fully replaced by every calibration and only
// read otherwise.
package ignorelist

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/kevinlitchfield/check-for-extra-migrations/pkg/consts"
	"github.com/kevinlitchfield/check-for-extra-migrations/pkg/migrator"
	"github.com/pkg/errors"
	"github.com/vmihailenco/msgpack/v5"
)

// formatVersion is written into every state file.
const formatVersion = 1

// ErrCorrupt is returned when the state file exists but cannot be decoded.
var ErrCorrupt = errors.New("ignore-list file is corrupt")

type (
	// Store reads and writes the ignore-list file at a fixed path.
	Store struct {
		path string
	}

	state struct {
		Version    int      `msgpack:"version"`
		Migrations []string `msgpack:"migrations"`
	}
)

// New creates a Store for the file at path.
func New(path string) *Store {
	return &Store{path: path}
}

// Path returns the location of the state file.
func (s *Store) Path() string {
	return s.path
}

// Load returns the stored ignore-list. A missing file is an empty list; a file
// that does not decode is ErrCorrupt.
//
// Example:
//
//	ignored, err := ignorelist.New(".extra_migrations").Load()
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	fmt.Printf("%d migrations ignored\n", ignored.Len())
func (s *Store) Load() (*migrator.Set, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return migrator.NewSet(), nil
		}

		return nil, errors.Wrapf(err, "failed to read %s", s.path)
	}

	var st state
	rd := bytes.NewReader(data)
	dec := msgpack.NewDecoder(rd)
	dec.DisallowUnknownFields(true)
	if err := dec.Decode(&st); err != nil {
		return nil, errors.Wrapf(ErrCorrupt, "%s: %s", s.path, err)
	}

	if rd.Len() != 0 {
		return nil, errors.Wrapf(ErrCorrupt, "%s: trailing data", s.path)
	}

	if st.Version != formatVersion {
		return nil, errors.Wrapf(ErrCorrupt, "%s: unsupported format version %d", s.path, st.Version)
	}

	set := migrator.NewSet()
	for _, raw := range st.Migrations {
		id, ok := migrator.ExtractID(raw)
		if !ok || string(id) != raw {
			return nil, errors.Wrapf(ErrCorrupt, "%s: invalid migration %q", s.path, raw)
		}

		set.Add(id)
	}

	return set, nil
}

// Save replaces the stored ignore-list with set. The data is written to a
// temporary file in the same directory and renamed into place, so a crash
// leaves either the old or the new list behind.
func (s *Store) Save(set *migrator.Set) error {
	data, err := msgpack.Marshal(&state{
		Version:    formatVersion,
		Migrations: set.Strings(),
	})
	if err != nil {
		return errors.Wrap(err, "failed to encode ignore-list")
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return errors.Wrapf(err, "failed to create temp file in %s", dir)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return errors.Wrapf(err, "failed to write %s", tmp.Name())
	}

	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return errors.Wrapf(err, "failed to sync %s", tmp.Name())
	}

	if err := tmp.Close(); err != nil {
		return errors.Wrapf(err, "failed to close %s", tmp.Name())
	}

	if err := os.Chmod(tmp.Name(), consts.ModeFile); err != nil {
		return errors.Wrapf(err, "failed to chmod %s", tmp.Name())
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return errors.Wrapf(err, "failed to replace %s", s.path)
	}

	return nil
}
