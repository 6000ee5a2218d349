package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/kevinlitchfield/check-for-extra-migrations/pkg/drift"
)

// calibrate replaces the ignore-list with the current drift.
func calibrate(ctx context.Context, w io.Writer, session *drift.Session) error {
	path, err := session.Calibrate(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Wrote to %s.\n", path)
	return nil
}
