package main

import (
	"context"
	"os"
	"time"

	"github.com/kevinlitchfield/check-for-extra-migrations/pkg/cmd"
	"github.com/kevinlitchfield/check-for-extra-migrations/pkg/git"
	"github.com/kevinlitchfield/check-for-extra-migrations/pkg/provenance"
	"github.com/kevinlitchfield/check-for-extra-migrations/pkg/shell"
	"go.uber.org/fx"
)

// NB: These are set by GoReleaser during a build.
var (
	version string
	commit  string
	date    string
)

// The whole run happens in a start hook; each subprocess has its own timeout.
const runTimeout = time.Hour

func main() {
	fx.New(
		fx.NopLogger,
		fx.StartTimeout(runTimeout),
		fx.Supply(
			os.Args,
			&cmd.Version{
				Version:   version,
				Commit:    commit,
				Timestamp: date,
			},
		),
		fx.Provide(context.Background),
		shell.Module,
		git.Module,
		provenance.Module,
		cmd.Module,
	).Run()
}
