package migrator

// Drift returns the migrations in recorded that are neither present in the
// working tree nor ignored, in recorded order. Any argument may be nil or
// empty.
//
// Example:
//
//	recorded := migrator.NewSet("20230101000000", "20230102000000")
//	present := migrator.NewSet("20230101000000")
//	extra := migrator.Drift(recorded, present, nil)
//	// extra contains only 20230102000000
func Drift(recorded, present, ignored *Set) *Set {
	return recorded.Difference(present, ignored)
}
