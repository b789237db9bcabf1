package commands

import (
	"fmt"
	"runtime"

	"github.com/thoreinstein/sheaf/cmd"
)

func (a *App) runVersion() error {
	fmt.Fprintf(a.Out, "sheaf version %s\n", cmd.Version)
	fmt.Fprintf(a.Out, "  commit:    %s\n", cmd.Commit)
	fmt.Fprintf(a.Out, "  built:     %s\n", cmd.Date)
	fmt.Fprintf(a.Out, "  go:        %s\n", runtime.Version())
	return nil
}
