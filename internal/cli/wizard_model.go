package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/avinashkumarr/studiobook/internal/cli/formatter"
	"github.com/avinashkumarr/studiobook/internal/domain"
	"github.com/avinashkumarr/studiobook/internal/draft"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
)

type wizardPhase int

const (
	phaseRoot wizardPhase = iota
	phaseEventMenu
	phaseEventForm
	phaseReviewMenu
	phaseOverrideForm
	phaseSubmitting
	phaseDone
)

type wizardKeyMap struct {
	Quit   key.Binding
	Cancel key.Binding
}

var wizardKeys = wizardKeyMap{
	Quit:   key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "save and quit")),
	Cancel: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
}

type submitDoneMsg struct{ err error }

// wizardModel drives the three-page booking wizard. Each page is a huh form
// or menu pushed onto the same model; the controller owns all state.
type wizardModel struct {
	ctx  context.Context
	ctrl *draft.Controller

	coordNames     map[string]string
	eventCoordOpts []huh.Option[string]
	prodCoordOpts  []huh.Option[string]

	phase     wizardPhase
	form      *huh.Form
	rootVals  *rootFormValues
	eventVals *eventFormValues
	editingID string
	overVals  *overrideFormValues

	menuChoice string
	overridden bool

	spin      spinner.Model
	status    string
	finalView string
}

func newWizardModel(ctx context.Context, ctrl *draft.Controller, coordinators []*domain.Coordinator) *wizardModel {
	m := &wizardModel{
		ctx:        ctx,
		ctrl:       ctrl,
		coordNames: make(map[string]string, len(coordinators)),
	}
	m.eventCoordOpts = append(m.eventCoordOpts, huh.NewOption("(none)", ""))
	m.prodCoordOpts = append(m.prodCoordOpts, huh.NewOption("(none)", ""))
	for _, c := range coordinators {
		m.coordNames[c.ID] = c.Name
		switch c.Role {
		case domain.RoleEventCoordinator:
			m.eventCoordOpts = append(m.eventCoordOpts, huh.NewOption(c.Name, c.ID))
		case domain.RoleProductionCoordinator:
			m.prodCoordOpts = append(m.prodCoordOpts, huh.NewOption(c.Name, c.ID))
		}
	}

	m.spin = spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(formatter.StylePurple),
	)

	switch ctrl.CurrentPage() {
	case 2:
		m.enterEventMenu()
	case 3:
		m.enterReviewMenu()
	default:
		m.enterRootForm()
	}
	return m
}

func (m *wizardModel) Init() tea.Cmd {
	if m.form != nil {
		return m.form.Init()
	}
	return nil
}

func (m *wizardModel) enterRootForm() {
	m.phase = phaseRoot
	m.rootVals = rootValuesFromDraft(m.ctrl.Store().Root())
	m.form = buildRootForm(m.rootVals)
}

func (m *wizardModel) enterEventMenu() {
	m.phase = phaseEventMenu
	m.menuChoice = ""
	m.form = m.buildEventMenu()
}

func (m *wizardModel) enterReviewMenu() {
	m.phase = phaseReviewMenu
	m.menuChoice = ""
	m.form = m.buildReviewMenu()
}

func (m *wizardModel) buildEventMenu() *huh.Form {
	events := m.ctrl.Store().Events()
	dirty := m.ctrl.DirtyMap()

	var opts []huh.Option[string]
	for i, e := range events {
		opts = append(opts, huh.NewOption(fmt.Sprintf("Edit package %d", i+1), "edit:"+e.LocalID))
	}
	for i, e := range events {
		if dirty[e.LocalID] && e.RequiredFieldsSet() {
			opts = append(opts, huh.NewOption(fmt.Sprintf("Save package %d", i+1), "save:"+e.LocalID))
		}
	}
	opts = append(opts, huh.NewOption("Add another package", "add"))
	if len(events) > 1 {
		for i, e := range events {
			opts = append(opts, huh.NewOption(fmt.Sprintf("Remove package %d", i+1), "remove:"+e.LocalID))
		}
	}
	opts = append(opts,
		huh.NewOption("Revert unsaved changes", "revert"),
		huh.NewOption("Back to project details", "back"),
		huh.NewOption("Continue to review", "next"),
		huh.NewOption("Save and quit", "quit"),
	)

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Event packages").
				Options(opts...).
				Value(&m.menuChoice),
		),
	).WithTheme(studioHuhTheme()).WithShowHelp(false)
}

func (m *wizardModel) buildReviewMenu() *huh.Form {
	opts := []huh.Option[string]{
		huh.NewOption("Confirm booking", "submit"),
		huh.NewOption("Set manual base price", "override"),
	}
	if m.overridden {
		opts = append(opts, huh.NewOption("Return to computed price", "clear-override"))
	}
	opts = append(opts,
		huh.NewOption("Back to event packages", "back"),
		huh.NewOption("Save and quit", "quit"),
	)

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Review").
				Options(opts...).
				Value(&m.menuChoice),
		),
	).WithTheme(studioHuhTheme()).WithShowHelp(false)
}

func (m *wizardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, wizardKeys.Quit) {
			return m.quit()
		}
		if key.Matches(msg, wizardKeys.Cancel) {
			return m.cancel()
		}

	case submitDoneMsg:
		if msg.err != nil {
			m.status = msg.err.Error()
			m.enterReviewMenu()
			return m, m.form.Init()
		}
		m.phase = phaseDone
		m.finalView = formatter.FormatSubmitted(m.ctrl.Store().Root(), m.ctrl.Summary())
		return m, tea.Quit

	case spinner.TickMsg:
		if m.phase == phaseSubmitting {
			var cmd tea.Cmd
			m.spin, cmd = m.spin.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	if m.form == nil {
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}
	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	switch m.phase {
	case phaseRoot:
		return m.completeRootForm(cmd)
	case phaseEventForm:
		return m.completeEventForm(cmd)
	case phaseEventMenu:
		return m.dispatchEventMenu()
	case phaseReviewMenu:
		return m.dispatchReviewMenu()
	case phaseOverrideForm:
		return m.completeOverrideForm()
	}
	return m, cmd
}

func (m *wizardModel) completeRootForm(cmd tea.Cmd) (tea.Model, tea.Cmd) {
	p, err := m.rootVals.rootPatch()
	if err == nil {
		err = m.ctrl.UpdateRoot(m.ctx, p)
	}
	if err == nil {
		err = m.ctrl.Advance(m.ctx)
	}
	if err != nil {
		m.status = err.Error()
		m.enterRootForm()
		return m, m.form.Init()
	}
	m.status = ""
	m.enterEventMenu()
	return m, tea.Batch(cmd, m.form.Init())
}

func (m *wizardModel) completeEventForm(cmd tea.Cmd) (tea.Model, tea.Cmd) {
	p, err := m.eventVals.eventPatch()
	if err == nil {
		err = m.ctrl.UpdateEvent(m.ctx, m.editingID, p)
	}
	if err != nil {
		m.status = err.Error()
	} else {
		m.status = ""
	}
	m.enterEventMenu()
	return m, tea.Batch(cmd, m.form.Init())
}

func (m *wizardModel) dispatchEventMenu() (tea.Model, tea.Cmd) {
	choice := m.menuChoice
	m.status = ""

	switch {
	case strings.HasPrefix(choice, "edit:"):
		id := strings.TrimPrefix(choice, "edit:")
		e, ok := m.ctrl.Store().Event(id)
		if !ok {
			m.status = "that package no longer exists"
			break
		}
		m.phase = phaseEventForm
		m.editingID = id
		m.eventVals = eventValuesFromPackage(e)
		m.form = buildEventForm(m.eventVals, m.eventCoordOpts, m.prodCoordOpts)
		return m, m.form.Init()

	case strings.HasPrefix(choice, "save:"):
		if err := m.ctrl.SaveEvent(m.ctx, strings.TrimPrefix(choice, "save:")); err != nil {
			m.status = err.Error()
		}

	case strings.HasPrefix(choice, "remove:"):
		if err := m.ctrl.RemoveEvent(m.ctx, strings.TrimPrefix(choice, "remove:")); err != nil {
			m.status = err.Error()
		}

	case choice == "add":
		if _, err := m.ctrl.AddEvent(m.ctx); err != nil {
			m.status = err.Error()
		}

	case choice == "revert":
		m.ctrl.RevertAllEvents(m.ctx)

	case choice == "back":
		if err := m.ctrl.GoBack(m.ctx); err != nil {
			m.status = err.Error()
			break
		}
		m.enterRootForm()
		return m, m.form.Init()

	case choice == "next":
		if err := m.ctrl.Advance(m.ctx); err != nil {
			if errors.Is(err, draft.ErrUnsavedEvents) {
				m.status = "save or revert the highlighted packages before reviewing"
			} else {
				m.status = err.Error()
			}
			break
		}
		m.enterReviewMenu()
		return m, m.form.Init()

	case choice == "quit":
		return m.quit()
	}

	m.enterEventMenu()
	return m, m.form.Init()
}

func (m *wizardModel) dispatchReviewMenu() (tea.Model, tea.Cmd) {
	m.status = ""

	switch m.menuChoice {
	case "submit":
		m.phase = phaseSubmitting
		m.form = nil
		return m, tea.Batch(m.spin.Tick, func() tea.Msg {
			return submitDoneMsg{err: m.ctrl.Submit(m.ctx)}
		})

	case "override":
		m.phase = phaseOverrideForm
		m.overVals = &overrideFormValues{}
		m.form = buildOverrideForm(m.overVals)
		return m, m.form.Init()

	case "clear-override":
		m.ctrl.SetBaseOverride(m.ctx, nil)
		m.overridden = false

	case "back":
		if err := m.ctrl.GoBack(m.ctx); err != nil {
			m.status = err.Error()
			break
		}
		m.enterEventMenu()
		return m, m.form.Init()

	case "quit":
		return m.quit()
	}

	m.enterReviewMenu()
	return m, m.form.Init()
}

func (m *wizardModel) completeOverrideForm() (tea.Model, tea.Cmd) {
	if s := strings.TrimSpace(m.overVals.Amount); s == "" {
		m.ctrl.SetBaseOverride(m.ctx, nil)
		m.overridden = false
	} else {
		paise, err := parseRupees(s)
		if err != nil {
			m.status = err.Error()
		} else {
			m.ctrl.SetBaseOverride(m.ctx, &paise)
			m.overridden = true
		}
	}
	m.enterReviewMenu()
	return m, m.form.Init()
}

// cancel handles escape: forms fall back to their menu, menus save and quit.
func (m *wizardModel) cancel() (tea.Model, tea.Cmd) {
	switch m.phase {
	case phaseEventForm:
		m.enterEventMenu()
		return m, m.form.Init()
	case phaseOverrideForm:
		m.enterReviewMenu()
		return m, m.form.Init()
	case phaseRoot, phaseEventMenu, phaseReviewMenu:
		return m.quit()
	}
	return m, nil
}

func (m *wizardModel) quit() (tea.Model, tea.Cmd) {
	if err := m.ctrl.Flush(m.ctx); err != nil {
		m.status = err.Error()
	}
	m.finalView = formatter.Dim("Draft saved. Resume with: studiobook project resume") + "\n"
	m.phase = phaseDone
	return m, tea.Quit
}

func (m *wizardModel) View() string {
	if m.phase == phaseDone {
		return m.finalView
	}

	var b strings.Builder
	b.WriteString(formatter.Header(fmt.Sprintf("New Project · Page %d/3", m.ctrl.CurrentPage())))
	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(formatter.StyleRed.Render("  " + m.status))
		b.WriteString("\n\n")
	}

	switch m.phase {
	case phaseRoot:
		b.WriteString(m.form.View())

	case phaseEventMenu:
		dirty := m.ctrl.DirtyMap()
		for i, e := range m.ctrl.Store().Events() {
			b.WriteString(formatter.FormatEventCard(i, e, dirty[e.LocalID]))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(formatter.FormatCostSummary(m.ctrl.Summary(), m.overridden))
		b.WriteString("\n")
		b.WriteString(m.form.View())

	case phaseEventForm, phaseOverrideForm:
		b.WriteString(m.form.View())
		b.WriteString("\n")
		b.WriteString(formatter.FormatCostSummary(m.ctrl.Summary(), m.overridden))

	case phaseReviewMenu:
		s := m.ctrl.Store()
		b.WriteString(formatter.FormatReview(s.Root(), s.Events(), m.ctrl.DirtyMap(),
			m.ctrl.Summary(), m.overridden, m.coordNames))
		b.WriteString("\n")
		b.WriteString(m.form.View())

	case phaseSubmitting:
		b.WriteString(fmt.Sprintf("  %s %s\n", m.spin.View(), formatter.Dim("Confirming booking...")))
	}

	b.WriteString("\n")
	b.WriteString(formatter.Dim(fmt.Sprintf("  %s · %s",
		wizardKeys.Quit.Help().Key+" "+wizardKeys.Quit.Help().Desc,
		wizardKeys.Cancel.Help().Key+" "+wizardKeys.Cancel.Help().Desc)))
	return b.String()
}
