package cmd

import "go.uber.org/fx"

var Module = fx.Module("cli",
	fx.Invoke(Run),
)
