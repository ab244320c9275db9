package cli

import (
	"fmt"

	"github.com/avinashkumarr/studiobook/internal/cli/formatter"
	"github.com/avinashkumarr/studiobook/internal/domain"
	"github.com/spf13/cobra"
)

func newCoordinatorCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "coordinator",
		Short: "Coordinator directory",
	}
	cmd.AddCommand(newCoordinatorListCmd(app))
	return cmd
}

func newCoordinatorListCmd(app *App) *cobra.Command {
	var role string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List coordinators by role",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			coordinators, err := app.Coordinators.Directory(cmd.Context(), domain.CoordinatorRole(role))
			if err != nil {
				return err
			}
			fmt.Print(formatter.FormatCoordinatorList(coordinators))
			return nil
		},
	}
	cmd.Flags().StringVar(&role, "role", string(domain.RoleEventCoordinator), "event or production")
	return cmd
}
