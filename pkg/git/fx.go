package git

import (
	"github.com/kevinlitchfield/check-for-extra-migrations/pkg/shell"
	"go.uber.org/fx"
)

// Module provides a Repository for the current directory. The CLI changes to
// the project root before any query runs.
var Module = fx.Module("git", fx.Provide(
	func(runner shell.Runner) *Repository {
		return New(runner, "")
	},
))
