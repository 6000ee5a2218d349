package provenance_test

import (
	"context"
	"testing"

	"github.com/kevinlitchfield/check-for-extra-migrations/pkg/git"
	"github.com/kevinlitchfield/check-for-extra-migrations/pkg/migrator"
	. "github.com/kevinlitchfield/check-for-extra-migrations/pkg/provenance"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

type fakeVCS struct {
	commits     map[string]string
	branches    map[string][]string
	commitErr   error
	branchesErr error
	searched    []string
}

func (f *fakeVCS) FirstCommitContaining(_ context.Context, s string) (string, error) {
	f.searched = append(f.searched, s)
	if f.commitErr != nil {
		return "", f.commitErr
	}

	commit, ok := f.commits[s]
	if !ok {
		return "", errors.Wrapf(git.ErrNoCommit, "searching for %s", s)
	}

	return commit, nil
}

func (f *fakeVCS) BranchesContaining(_ context.Context, commit string) ([]string, error) {
	if f.branchesErr != nil {
		return nil, f.branchesErr
	}

	return f.branches[commit], nil
}

func TestReporter_Report(t *testing.T) {
	ctx := context.Background()
	vcs := &fakeVCS{
		commits:  map[string]string{"20230102000000": "abc123"},
		branches: map[string][]string{"abc123": {"feature/email", "staging"}},
	}

	t.Run("found", func(t *testing.T) {
		rec, err := New(vcs).Report(ctx, "20230102000000")
		require.NoError(t, err)
		require.Equal(t, &Record{
			MigrationID: "20230102000000",
			Commit:      "abc123",
			Branches:    []string{"feature/email", "staging"},
		}, rec)
	})

	t.Run("not found", func(t *testing.T) {
		rec, err := New(vcs).Report(ctx, "20990101000000")
		require.Nil(t, rec)
		require.True(t, errors.Is(err, ErrNotFound))
		require.Contains(t, err.Error(), "20990101000000")
	})

	t.Run("git failure is not a missing commit", func(t *testing.T) {
		failing := &fakeVCS{commitErr: errors.New("git failed: not a git repository")}

		_, err := New(failing).Report(ctx, "20230102000000")
		require.Error(t, err)
		require.False(t, errors.Is(err, ErrNotFound))
	})

	t.Run("branch lookup failure", func(t *testing.T) {
		failing := &fakeVCS{
			commits:     map[string]string{"20230102000000": "abc123"},
			branchesErr: errors.New("git failed"),
		}

		_, err := New(failing).Report(ctx, "20230102000000")
		require.Error(t, err)
	})
}

func TestRecord_String(t *testing.T) {
	tests := []struct {
		name   string
		record Record
		want   string
	}{
		{
			name:   "several branches",
			record: Record{MigrationID: "20230102000000", Commit: "abc123", Branches: []string{"feature/email", "staging"}},
			want:   "The migration 20230102000000 first appeared in commit abc123, which is on these branches: 'feature/email', 'staging'.",
		},
		{
			name:   "single branch",
			record: Record{MigrationID: migrator.ID("20230102000000"), Commit: "abc123", Branches: []string{"main"}},
			want:   "The migration 20230102000000 first appeared in commit abc123, which is on these branches: 'main'.",
		},
		{
			name:   "no branches",
			record: Record{MigrationID: "20230102000000", Commit: "abc123"},
			want:   "The migration 20230102000000 first appeared in commit abc123, which is not on any branch.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.record.String())
		})
	}
}
