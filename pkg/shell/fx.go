package shell

import (
	"github.com/kevinlitchfield/check-for-extra-migrations/pkg/consts"
	"go.uber.org/fx"
)

var Module = fx.Module("shell", fx.Provide(
	fx.Annotate(
		func() *ExecRunner {
			return New(Options{Timeout: consts.DefaultCommandTimeout})
		},
		fx.As(new(Runner)),
	),
))
