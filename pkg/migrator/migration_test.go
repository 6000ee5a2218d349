package migrator_test

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/kevinlitchfield/check-for-extra-migrations/pkg/consts"
	. "github.com/kevinlitchfield/check-for-extra-migrations/pkg/migrator"
	"github.com/stretchr/testify/require"
)

func TestExtractID(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  ID
		ok    bool
	}{
		{name: "rails migration file", input: "20230101000000_create_users.rb", want: "20230101000000", ok: true},
		{name: "bare identifier", input: "20230102000000", want: "20230102000000", ok: true},
		{name: "surrounding whitespace", input: "   20230102000000  ", want: "20230102000000", ok: true},
		{name: "backup file", input: "20230101000000_old.bak~", want: "20230101000000", ok: true},
		{name: "first of two runs", input: "20230101000000_20230202000000.rb", want: "20230101000000", ok: true},
		{name: "too short", input: "2023010100000_x.rb", ok: false},
		{name: "no digits", input: "README.md", ok: false},
		{name: "empty", input: "", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractID(tt.input)
			require.Equal(t, tt.ok, ok)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestLoadMigrationDir(t *testing.T) {
	t.Run("extracts identifiers in lexical order", func(t *testing.T) {
		fsys := fstest.MapFS{
			"20230102000000_add_email.rb":    {Data: []byte("class AddEmail; end")},
			"20230101000000_create_users.rb": {Data: []byte("class CreateUsers; end")},
			"20230101000000_old.bak~":        {Data: []byte("stale copy")},
			".keep":                          {Data: []byte{}},
		}

		set, err := LoadMigrationDir(fsys)
		require.NoError(t, err)
		require.Equal(t, []ID{"20230101000000", "20230102000000"}, set.IDs())
	})

	t.Run("only immediate entries", func(t *testing.T) {
		fsys := fstest.MapFS{
			"20230101000000_create_users.rb":         {Data: []byte("")},
			"archive/20220101000000_create_posts.rb": {Data: []byte("")},
		}

		set, err := LoadMigrationDir(fsys)
		require.NoError(t, err)
		require.Equal(t, []ID{"20230101000000"}, set.IDs())
	})

	t.Run("empty directory", func(t *testing.T) {
		dir := t.TempDir()

		set, err := LoadMigrationDir(os.DirFS(dir))
		require.NoError(t, err)
		require.True(t, set.IsEmpty())
	})

	t.Run("missing directory", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "db", "migrate")

		set, err := LoadMigrationDir(os.DirFS(dir))
		require.NoError(t, err)
		require.True(t, set.IsEmpty())
	})

	t.Run("real directory", func(t *testing.T) {
		dir := t.TempDir()
		for _, name := range []string{"20230101000000_create_users.rb", "20230103000000_add_index.rb"} {
			require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("# migration"), consts.ModeFile))
		}

		set, err := LoadMigrationDir(os.DirFS(dir))
		require.NoError(t, err)
		require.Equal(t, []string{"20230101000000", "20230103000000"}, set.Strings())
	})
}
