package cmd

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/kevinlitchfield/check-for-extra-migrations/pkg/drift"
	"github.com/kevinlitchfield/check-for-extra-migrations/pkg/git"
	"github.com/kevinlitchfield/check-for-extra-migrations/pkg/migrator"
	"github.com/kevinlitchfield/check-for-extra-migrations/pkg/provenance"
	"github.com/pkg/errors"
)

// report writes nothing when there is no drift. Otherwise it renders a
// summary naming the current branch followed by one line per extra
// migration, and writes it only once every line has been rendered.
func report(ctx context.Context, w io.Writer, session *drift.Session, repo *git.Repository, reporter *provenance.Reporter) error {
	extra, err := session.Extra(ctx)
	if err != nil {
		return err
	}

	if extra.IsEmpty() {
		slog.Debug("No extra migrations")
		return nil
	}

	branch, err := repo.CurrentBranch(ctx)
	if err != nil {
		return err
	}

	out, err := renderReport(ctx, branch, extra, reporter)
	if err != nil {
		return err
	}

	if _, err := w.Write(out); err != nil {
		return errors.Wrap(err, "failed to write report")
	}

	return nil
}

func renderReport(ctx context.Context, branch string, extra *migrator.Set, reporter *provenance.Reporter) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "Migrations have been run that are not present in this branch ('%s'): %s.\n", branch, extra)

	for _, id := range extra.IDs() {
		rec, err := reporter.Report(ctx, id)
		switch {
		case errors.Is(err, provenance.ErrNotFound):
			slog.Warn("Migration not found in history", "migration", id)
			fmt.Fprintf(&buf, "* The migration %s could not be found in the history of any branch.\n", id)
		case err != nil:
			return nil, err
		default:
			fmt.Fprintf(&buf, "* %s\n", rec)
		}
	}

	return buf.Bytes(), nil
}
