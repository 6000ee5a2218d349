package provenance

import (
	"github.com/kevinlitchfield/check-for-extra-migrations/pkg/git"
	"go.uber.org/fx"
)

var Module = fx.Module("provenance", fx.Provide(
	func(repo *git.Repository) *Reporter {
		return New(repo)
	},
))
