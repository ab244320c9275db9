package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/avinashkumarr/studiobook/internal/domain"
	"github.com/avinashkumarr/studiobook/internal/pricing"
)

// FormatProjectList renders the project table for "project list".
func FormatProjectList(projects []*domain.ProjectDraft) string {
	if len(projects) == 0 {
		return Dim("No projects yet. Start one with: studiobook project new") + "\n"
	}

	headers := []string{"NAME", "TYPE", "CLIENT", "START", "STATUS"}
	rows := make([][]string, 0, len(projects))
	for _, p := range projects {
		rows = append(rows, []string{
			Bold(p.Name),
			string(p.Type),
			p.ClientName,
			formatDatePtr(p.StartAt),
			StatusIndicator(p.Status),
		})
	}

	var b strings.Builder
	b.WriteString(Header("Projects"))
	b.WriteString("\n")
	b.WriteString(RenderTable(headers, rows))
	return b.String()
}

// FormatCoordinatorList renders the coordinator directory table.
func FormatCoordinatorList(coordinators []*domain.Coordinator) string {
	if len(coordinators) == 0 {
		return Dim("No coordinators on file.") + "\n"
	}
	rows := make([][]string, 0, len(coordinators))
	for _, c := range coordinators {
		rows = append(rows, []string{c.ID, Bold(c.Name), string(c.Role)})
	}
	return RenderTable([]string{"ID", "NAME", "ROLE"}, rows)
}

// FormatCostSummary renders the live price block shown on every wizard page.
func FormatCostSummary(s pricing.Summary, overridden bool) string {
	var b strings.Builder
	b.WriteString(Header("Estimated Cost"))
	b.WriteString("\n")
	base := "Base"
	if overridden {
		base = "Base " + StylePurple.Render("(manual)")
	}
	b.WriteString(fmt.Sprintf("  %-22s %s\n", base, Rupees(s.Base)))
	b.WriteString(fmt.Sprintf("  %-22s %s\n", "Tax (18%)", Rupees(s.Tax)))
	b.WriteString(fmt.Sprintf("  %-22s %s\n", "Subtotal", Rupees(s.Subtotal)))
	b.WriteString(fmt.Sprintf("  %-22s %s\n", Bold("Total"), StyleGreen.Render(Rupees(s.Total))))
	return b.String()
}

// FormatEventCard renders one event package line for the page 2 card list.
func FormatEventCard(idx int, e *domain.EventPackage, dirty bool) string {
	label := string(e.Type)
	if e.Type == domain.EventOther && e.TypeOther != "" {
		label = e.TypeOther
	}
	if label == "" {
		label = Dim("(not set)")
	}
	crew := fmt.Sprintf("%dp/%dv x %dd", e.Photographers, e.Videographers, e.Days)
	return fmt.Sprintf("  %d. %-14s %-12s %-14s %s",
		idx+1, Bold(label), formatDatePtr(e.StartAt), crew, DirtyBadge(dirty))
}

// FormatReview renders the page 3 review block. coordNames maps coordinator
// ids to display names; unknown ids fall back to the raw id.
func FormatReview(root *domain.ProjectDraft, events []*domain.EventPackage,
	dirty map[string]bool, summary pricing.Summary, overridden bool,
	coordNames map[string]string) string {

	var b strings.Builder
	b.WriteString(Header("Review"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  %-14s %s (%s)\n", "Project", Bold(root.Name), root.Type))
	if root.ClientName != "" {
		b.WriteString(fmt.Sprintf("  %-14s %s\n", "Client", root.ClientName))
	}
	if root.ClientEmail != "" {
		b.WriteString(fmt.Sprintf("  %-14s %s\n", "Email", root.ClientEmail))
	}
	if root.ClientPhone != "" {
		b.WriteString(fmt.Sprintf("  %-14s %s\n", "Phone", root.ClientPhone))
	}
	b.WriteString(fmt.Sprintf("  %-14s %s%s\n", "Start", formatDatePtr(root.StartAt), confirmedTag(root.StartConfirmed)))
	if root.EndAt != nil {
		b.WriteString(fmt.Sprintf("  %-14s %s%s\n", "End", formatDatePtr(root.EndAt), confirmedTag(root.EndConfirmed)))
	}

	b.WriteString("\n")
	b.WriteString(Header("Event Packages"))
	b.WriteString("\n")
	populated := 0
	for i, e := range events {
		if !e.RequiredFieldsSet() {
			continue
		}
		populated++
		b.WriteString(FormatEventCard(i, e, dirty[e.LocalID]))
		b.WriteString("\n")
		if e.EventCoordinatorID != nil {
			b.WriteString(fmt.Sprintf("     %s %s\n", Dim("event coord:"), coordName(coordNames, *e.EventCoordinatorID)))
		}
		if e.ProductionCoordinatorID != nil {
			b.WriteString(fmt.Sprintf("     %s %s\n", Dim("prod coord:"), coordName(coordNames, *e.ProductionCoordinatorID)))
		}
		if e.Notes != "" {
			b.WriteString(fmt.Sprintf("     %s %s\n", Dim("notes:"), e.Notes))
		}
	}
	if populated == 0 {
		b.WriteString(Dim("  (no event packages)") + "\n")
	}

	b.WriteString("\n")
	b.WriteString(FormatCostSummary(summary, overridden))
	return b.String()
}

// FormatSubmitted renders the terminal confirmation after a submit.
func FormatSubmitted(root *domain.ProjectDraft, summary pricing.Summary) string {
	var b strings.Builder
	b.WriteString(StyleGreen.Render("✓ Project confirmed") + "\n\n")
	b.WriteString(fmt.Sprintf("  %s (%s)\n", Bold(root.Name), root.Type))
	b.WriteString(fmt.Sprintf("  Total %s\n", StyleGreen.Render(Rupees(summary.Total))))
	return b.String()
}

func coordName(names map[string]string, id string) string {
	if n, ok := names[id]; ok {
		return n
	}
	return id
}

func confirmedTag(confirmed bool) string {
	if confirmed {
		return " " + StyleGreen.Render("(confirmed)")
	}
	return " " + Dim("(tentative)")
}

func formatDatePtr(t *time.Time) string {
	if t == nil {
		return Dim("-")
	}
	return t.Format("2006-01-02")
}
