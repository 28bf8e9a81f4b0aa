package cli

import (
	"github.com/spf13/cobra"

	"github.com/toad-frogski/visits/internal/notify"
	"github.com/toad-frogski/visits/internal/service"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Sessions   service.SessionService
	Statistics service.StatisticsService
	Events     *notify.Broker

	// IsInteractive reports whether stdin is a terminal; interactive
	// commands fall back to flags when it returns false.
	IsInteractive func() bool
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "visits" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "visits",
		Short: "Work session tracker",
	}

	root.AddCommand(
		newEnterCmd(app),
		newExitCmd(app),
		newLeaveCmd(app),
		newStatusCmd(app),
		newTodayCmd(app),
		newReportCmd(app),
		newEntryCmd(app),
		newWatchCmd(app),
		newServeCmd(app),
	)

	return root
}
