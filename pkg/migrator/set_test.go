package migrator_test

import (
	"testing"

	. "github.com/kevinlitchfield/check-for-extra-migrations/pkg/migrator"
	"github.com/stretchr/testify/require"
)

func TestSet(t *testing.T) {
	t.Run("keeps insertion order and drops duplicates", func(t *testing.T) {
		set := NewSet("20230103000000", "20230101000000", "20230103000000")
		set.Add("20230102000000")
		set.Add("20230101000000")

		require.Equal(t, []ID{"20230103000000", "20230101000000", "20230102000000"}, set.IDs())
		require.Equal(t, 3, set.Len())
		require.True(t, set.Contains("20230101000000"))
		require.False(t, set.Contains("20230104000000"))
		require.Equal(t, "20230103000000, 20230101000000, 20230102000000", set.String())
	})

	t.Run("nil set reads as empty", func(t *testing.T) {
		var set *Set

		require.True(t, set.IsEmpty())
		require.Equal(t, 0, set.Len())
		require.False(t, set.Contains("20230101000000"))
		require.Empty(t, set.IDs())
		require.Empty(t, set.String())
		require.True(t, set.Equal(NewSet()))
	})

	t.Run("zero value accepts additions", func(t *testing.T) {
		var set Set
		set.Add("20230101000000")

		require.True(t, set.Contains("20230101000000"))
	})

	t.Run("IDs returns a copy", func(t *testing.T) {
		set := NewSet("20230101000000")
		ids := set.IDs()
		ids[0] = "20990101000000"

		require.Equal(t, []ID{"20230101000000"}, set.IDs())
	})

	t.Run("union", func(t *testing.T) {
		a := NewSet("20230101000000", "20230102000000")
		b := NewSet("20230102000000", "20230103000000")

		require.Equal(t, []ID{"20230101000000", "20230102000000", "20230103000000"}, a.Union(b).IDs())
		require.True(t, a.Union(a).Equal(a))
	})

	t.Run("difference", func(t *testing.T) {
		a := NewSet("20230103000000", "20230101000000", "20230102000000")
		b := NewSet("20230101000000")
		c := NewSet("20230103000000")

		require.Equal(t, []ID{"20230102000000"}, a.Difference(b, c).IDs())
		require.Equal(t, a.IDs(), a.Difference().IDs())
		require.Equal(t, a.IDs(), a.Difference(nil).IDs())
	})

	t.Run("equal ignores order", func(t *testing.T) {
		require.True(t, NewSet("20230101000000", "20230102000000").Equal(NewSet("20230102000000", "20230101000000")))
		require.False(t, NewSet("20230101000000").Equal(NewSet("20230102000000")))
		require.False(t, NewSet("20230101000000").Equal(NewSet()))
	})
}
