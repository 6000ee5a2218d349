// Package git answers the version-control questions needed to explain where
// a migration came from: which commit first introduced its identifier, and
// which branches contain that commit.
package git

import (
	"context"
	"strings"

	"github.com/kevinlitchfield/check-for-extra-migrations/pkg/shell"
	"github.com/pkg/errors"
)

const gitBinary = "git"

// branchFormat prints one short branch name per line and an empty line for
// symbolic refs.
const branchFormat = "--format=%(if)%(symref)%(then)%(else)%(refname:short)%(end)"

// ErrNoCommit is returned when no commit in any branch introduces the
// searched string.
var ErrNoCommit = errors.New("no commit found")

// Repository runs read-only git queries against a working tree.
type Repository struct {
	runner shell.Runner
	dir    string
}

// New creates a Repository for the working tree at dir. An empty dir means
// the current directory.
func New(runner shell.Runner, dir string) *Repository {
	return &Repository{runner: runner, dir: dir}
}

// FirstCommitContaining returns the hash of the oldest commit, across all
// branches, whose diff adds or removes an occurrence of s.
//
// Example:
//
//	hash, err := repo.FirstCommitContaining(ctx, "20230102000000")
//	if errors.Is(err, git.ErrNoCommit) {
//		fmt.Println("never committed on any local branch")
//	}
func (r *Repository) FirstCommitContaining(ctx context.Context, s string) (string, error) {
	lines, err := r.run(ctx, "log", "--all", "--reverse", "--format=%H", "-S"+s)
	if err != nil {
		return "", errors.Wrapf(err, "failed to search history for %s", s)
	}

	if len(lines) == 0 {
		return "", errors.Wrapf(ErrNoCommit, "searching for %s", s)
	}

	return lines[0], nil
}

// BranchesContaining lists the local and remote-tracking branches whose
// history includes commit, in the order git prints them. Symbolic refs such
// as origin/HEAD and the detached HEAD entry are left out.
func (r *Repository) BranchesContaining(ctx context.Context, commit string) ([]string, error) {
	lines, err := r.run(ctx, "branch", "--all", "--contains", commit, branchFormat)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list branches containing %s", commit)
	}

	branches := make([]string, 0, len(lines))
	for _, line := range lines {
		if strings.HasPrefix(line, "(") {
			continue
		}

		branches = append(branches, line)
	}

	return branches, nil
}

// CurrentBranch returns the abbreviated name of HEAD ("HEAD" when detached).
func (r *Repository) CurrentBranch(ctx context.Context) (string, error) {
	lines, err := r.run(ctx, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", errors.Wrap(err, "failed to determine current branch")
	}

	if len(lines) == 0 {
		return "", errors.New("git printed no branch name")
	}

	return lines[0], nil
}

func (r *Repository) run(ctx context.Context, args ...string) ([]string, error) {
	res, err := r.runner.Run(ctx, shell.Cmd{Name: gitBinary, Args: args, Dir: r.dir})
	if err != nil {
		return nil, err
	}

	return shell.Lines(res.Stdout), nil
}
