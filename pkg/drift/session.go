// Package drift computes, once per invocation, which migrations a database
// has run that the current checkout does not contain.
package drift

import (
	"context"
	"io/fs"
	"log/slog"

	"github.com/kevinlitchfield/check-for-extra-migrations/pkg/database"
	"github.com/kevinlitchfield/check-for-extra-migrations/pkg/ignorelist"
	"github.com/kevinlitchfield/check-for-extra-migrations/pkg/migrator"
	"github.com/pkg/errors"
)

type (
	// SessionParams holds the collaborators of a Session.
	SessionParams struct {
		// Source provides the migrations recorded in the database
		Source database.Source

		// Migrations is the migrations directory of the checkout
		Migrations fs.FS

		// IgnoreList holds acknowledged drift
		IgnoreList *ignorelist.Store
	}

	// Session memoizes the inputs and result of the drift computation for the
	// lifetime of one command, so the database and filesystem are read at
	// most once. It is not safe for concurrent use.
	Session struct {
		params SessionParams

		recorded *migrator.Set
		present  *migrator.Set
		extra    *migrator.Set
	}
)

// NewSession creates a Session. Nothing is read until a method needs it.
func NewSession(p SessionParams) *Session {
	return &Session{params: p}
}

// Recorded returns the migrations the database has applied. Failure to reach
// the database is returned as-is; it is never treated as an empty set.
func (s *Session) Recorded(ctx context.Context) (*migrator.Set, error) {
	if s.recorded != nil {
		return s.recorded, nil
	}

	recorded, err := s.params.Source.RecordedMigrations(ctx)
	if err != nil {
		return nil, err
	}

	slog.Debug("Loaded recorded migrations", "count", recorded.Len())
	s.recorded = recorded
	return recorded, nil
}

// Present returns the migrations found in the migrations directory.
func (s *Session) Present() (*migrator.Set, error) {
	if s.present != nil {
		return s.present, nil
	}

	present, err := migrator.LoadMigrationDir(s.params.Migrations)
	if err != nil {
		return nil, err
	}

	slog.Debug("Loaded migration files", "count", present.Len())
	s.present = present
	return present, nil
}

// Raw returns recorded - present, ignoring the ignore-list.
func (s *Session) Raw(ctx context.Context) (*migrator.Set, error) {
	recorded, err := s.Recorded(ctx)
	if err != nil {
		return nil, err
	}

	present, err := s.Present()
	if err != nil {
		return nil, err
	}

	return migrator.Drift(recorded, present, nil), nil
}

// Extra returns recorded - present - ignored. The ignore-list is loaded
// before the database is queried so a corrupt state file fails fast.
//
// Example:
//
//	extra, err := session.Extra(ctx)
//	if err != nil {
//		return err
//	}
//
//	for _, id := range extra.IDs() {
//		fmt.Println(id)
//	}
func (s *Session) Extra(ctx context.Context) (*migrator.Set, error) {
	if s.extra != nil {
		return s.extra, nil
	}

	ignored, err := s.params.IgnoreList.Load()
	if err != nil {
		return nil, err
	}

	recorded, err := s.Recorded(ctx)
	if err != nil {
		return nil, err
	}

	present, err := s.Present()
	if err != nil {
		return nil, err
	}

	s.extra = migrator.Drift(recorded, present, ignored)
	slog.Debug("Computed drift", "extra", s.extra.Len(), "ignored", ignored.Len())
	return s.extra, nil
}

// Calibrate stores the current raw drift as the new ignore-list, replacing
// whatever was stored before, and returns the path written. An existing
// ignore-list must still be readable so a damaged file is noticed rather than
// silently replaced.
func (s *Session) Calibrate(ctx context.Context) (string, error) {
	if _, err := s.params.IgnoreList.Load(); err != nil {
		return "", err
	}

	raw, err := s.Raw(ctx)
	if err != nil {
		return "", err
	}

	if err := s.params.IgnoreList.Save(raw); err != nil {
		return "", errors.Wrap(err, "failed to save ignore-list")
	}

	// The stored list changed, so any memoized result is stale.
	s.extra = nil

	slog.Info("Calibrated ignore-list", "path", s.params.IgnoreList.Path(), "count", raw.Len())
	return s.params.IgnoreList.Path(), nil
}
