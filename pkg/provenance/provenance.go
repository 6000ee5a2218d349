// Package provenance explains where a drifted migration came from by finding
// the first commit that introduced its identifier and the branches that
// contain that commit.
package provenance

import (
	"context"
	"fmt"
	"strings"

	"github.com/kevinlitchfield/check-for-extra-migrations/pkg/git"
	"github.com/kevinlitchfield/check-for-extra-migrations/pkg/migrator"
	"github.com/pkg/errors"
)

// ErrNotFound is returned when no commit in the repository introduces the
// migration identifier, e.g. because it was made on a branch that was never
// fetched.
var ErrNotFound = errors.New("migration not found in the history of any branch")

type (
	// VCS is the version-control interface the Reporter relies on. It is
	// satisfied by *git.Repository.
	VCS interface {
		FirstCommitContaining(context.Context, string) (string, error)
		BranchesContaining(context.Context, string) ([]string, error)
	}

	// Record describes where a migration originated.
	Record struct {
		MigrationID migrator.ID
		Commit      string
		Branches    []string
	}

	// Reporter builds Records.
	Reporter struct {
		vcs VCS
	}
)

// New creates a Reporter backed by vcs.
func New(vcs VCS) *Reporter {
	return &Reporter{vcs: vcs}
}

// Report finds the commit that first introduced id and the branches
// containing it. When no commit introduces id the error matches ErrNotFound;
// a Record is never returned with an empty commit.
//
// Example:
//
//	rec, err := reporter.Report(ctx, "20230102000000")
//	if errors.Is(err, provenance.ErrNotFound) {
//		fmt.Println("origin unknown")
//	} else if err == nil {
//		fmt.Println(rec)
//	}
func (r *Reporter) Report(ctx context.Context, id migrator.ID) (*Record, error) {
	commit, err := r.vcs.FirstCommitContaining(ctx, string(id))
	if err != nil {
		if errors.Is(err, git.ErrNoCommit) {
			return nil, errors.Wrapf(ErrNotFound, "%s", id)
		}

		return nil, err
	}

	branches, err := r.vcs.BranchesContaining(ctx, commit)
	if err != nil {
		return nil, err
	}

	return &Record{MigrationID: id, Commit: commit, Branches: branches}, nil
}

// String renders the record as a sentence, quoting each branch name. A commit
// no branch contains (e.g. one only reachable from a tag) is said so.
func (r *Record) String() string {
	if len(r.Branches) == 0 {
		return fmt.Sprintf(
			"The migration %s first appeared in commit %s, which is not on any branch.",
			r.MigrationID, r.Commit,
		)
	}

	quoted := make([]string, len(r.Branches))
	for i, b := range r.Branches {
		quoted[i] = "'" + b + "'"
	}

	return fmt.Sprintf(
		"The migration %s first appeared in commit %s, which is on these branches: %s.",
		r.MigrationID, r.Commit, strings.Join(quoted, ", "),
	)
}
