package cli

import (
	"context"
	"fmt"

	"github.com/avinashkumarr/studiobook/internal/cli/formatter"
	"github.com/avinashkumarr/studiobook/internal/domain"
	"github.com/avinashkumarr/studiobook/internal/draft"
	"github.com/avinashkumarr/studiobook/internal/service"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newProjectCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Create and manage bookings",
	}
	cmd.AddCommand(
		newProjectNewCmd(app),
		newProjectResumeCmd(app),
		newProjectListCmd(app),
	)
	return cmd
}

func newProjectNewCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "new",
		Short: "Start the booking wizard",
		Long: `Walk through the three-page booking wizard: project details, event
packages, and review. Progress is cached locally on every edit and
autosaved to the studio database; quitting mid-way never loses work.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWizard(app, draft.EntryPoint{})
		},
	}
}

func newProjectResumeCmd(app *App) *cobra.Command {
	var draftID, name string
	cmd := &cobra.Command{
		Use:   "resume",
		Short: "Resume a saved draft",
		Long: `Reopen a draft in the wizard. With --id or --name the draft is loaded
from the studio database; otherwise the local cache from the last
session is used. When both flags are given the id wins.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWizard(app, draft.EntryPoint{DraftID: draftID, Name: name})
		},
	}
	cmd.Flags().StringVar(&draftID, "id", "", "draft id to resume")
	cmd.Flags().StringVar(&name, "name", "", "project name to resume (most recent match)")
	return cmd
}

func newProjectListCmd(app *App) *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List draft projects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			projects, err := app.Drafts.List(cmd.Context(), all)
			if err != nil {
				return err
			}
			fmt.Print(formatter.FormatProjectList(projects))
			return nil
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "include confirmed projects")
	return cmd
}

func runWizard(app *App, entry draft.EntryPoint) error {
	if !app.IsInteractive() {
		return fmt.Errorf("the wizard needs an interactive terminal")
	}

	ctx := context.Background()
	ctrl := draft.NewController(
		app.Cache,
		service.NewRemoteDraftTier(app.Drafts),
		app.Drafts,
		app.Rates,
		draft.ReconcilerOptions{},
	)
	defer ctrl.Close()

	stopSpinner := formatter.StartSpinner("Loading draft...")
	src, err := ctrl.Hydrate(ctx, entry)
	if err != nil {
		stopSpinner()
		return fmt.Errorf("loading draft: %w", err)
	}

	eventCoords, err := app.Coordinators.Directory(ctx, domain.RoleEventCoordinator)
	if err != nil {
		stopSpinner()
		return fmt.Errorf("loading coordinators: %w", err)
	}
	prodCoords, err := app.Coordinators.Directory(ctx, domain.RoleProductionCoordinator)
	if err != nil {
		stopSpinner()
		return fmt.Errorf("loading coordinators: %w", err)
	}
	stopSpinner()

	switch src {
	case draft.SourceRemoteByID, draft.SourceRemoteByName:
		fmt.Println(formatter.Dim("Resumed draft from the studio database."))
	case draft.SourceCache:
		fmt.Println(formatter.Dim("Resumed unsaved draft from this machine."))
	}

	model := newWizardModel(ctx, ctrl, append(eventCoords, prodCoords...))
	_, err = tea.NewProgram(model).Run()
	return err
}
