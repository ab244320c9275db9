package cli

import (
	"os"

	"github.com/avinashkumarr/studiobook/internal/cache"
	"github.com/avinashkumarr/studiobook/internal/pricing"
	"github.com/avinashkumarr/studiobook/internal/service"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

// App holds references to the service interfaces and session wiring used by
// CLI commands.
type App struct {
	Drafts       service.DraftService
	Coordinators service.CoordinatorService

	// Cache is the per-machine local draft tier.
	Cache *cache.FileCache

	Rates pricing.Rates

	// IsInteractive reports whether stdin is a terminal; the wizard refuses
	// to run without one.
	IsInteractive func() bool
}

// NewRootCmd creates the top-level "studiobook" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	if app.IsInteractive == nil {
		app.IsInteractive = func() bool {
			return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
		}
	}

	root := &cobra.Command{
		Use:   "studiobook",
		Short: "Photography studio project booking",
	}

	root.AddCommand(
		newProjectCmd(app),
		newCoordinatorCmd(app),
	)

	return root
}
