package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/avinashkumarr/studiobook/internal/domain"
	"github.com/avinashkumarr/studiobook/internal/draft"
	"github.com/charmbracelet/huh"
)

const dateLayout = "2006-01-02"

func validateRequired(label string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", label)
		}
		return nil
	}
}

func validateOptionalDate(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	if _, err := time.Parse(dateLayout, strings.TrimSpace(s)); err != nil {
		return fmt.Errorf("use YYYY-MM-DD")
	}
	return nil
}

func validateRequiredDate(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("a date is required")
	}
	return validateOptionalDate(s)
}

func validateOptionalCount(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return fmt.Errorf("enter a non-negative number")
	}
	return nil
}

func validateOptionalMoney(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	if _, err := parseRupees(s); err != nil {
		return err
	}
	return nil
}

// parseRupees converts "12345" or "12345.50" to paise.
func parseRupees(s string) (int64, error) {
	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "₹"))
	s = strings.ReplaceAll(s, ",", "")
	whole, frac := s, "0"
	if i := strings.IndexByte(s, '.'); i >= 0 {
		whole, frac = s[:i], s[i+1:]
		if len(frac) > 2 {
			return 0, fmt.Errorf("amount %q has more than two decimal places", s)
		}
		for len(frac) < 2 {
			frac += "0"
		}
	} else {
		frac = "00"
	}
	w, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("amount %q is not a number", s)
	}
	f, err := strconv.ParseInt(frac, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("amount %q is not a number", s)
	}
	return w*100 + f, nil
}

// rootFormValues backs the page 1 form inputs.
type rootFormValues struct {
	Name        string
	Type        string
	ClientName  string
	ClientEmail string
	ClientPhone string
	StartDate   string
	StartFirm   bool
	EndDate     string
	EndFirm     bool
}

func rootValuesFromDraft(r *domain.ProjectDraft) *rootFormValues {
	v := &rootFormValues{
		Name:        r.Name,
		Type:        string(r.Type),
		ClientName:  r.ClientName,
		ClientEmail: r.ClientEmail,
		ClientPhone: r.ClientPhone,
		StartFirm:   r.StartConfirmed,
		EndFirm:     r.EndConfirmed,
	}
	if r.StartAt != nil {
		v.StartDate = r.StartAt.Format(dateLayout)
	}
	if r.EndAt != nil {
		v.EndDate = r.EndAt.Format(dateLayout)
	}
	if v.Type == "" {
		v.Type = string(domain.ProjectWedding)
	}
	return v
}

func buildRootForm(v *rootFormValues) *huh.Form {
	typeOptions := []huh.Option[string]{
		huh.NewOption("Wedding", string(domain.ProjectWedding)),
		huh.NewOption("Portrait", string(domain.ProjectPortrait)),
		huh.NewOption("Commercial", string(domain.ProjectCommercial)),
		huh.NewOption("Event", string(domain.ProjectEvent)),
		huh.NewOption("Other", string(domain.ProjectOther)),
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Project name").
				Placeholder("Sharma Wedding 2026").
				Value(&v.Name).
				Validate(validateRequired("project name")),
			huh.NewSelect[string]().
				Title("Project type").
				Options(typeOptions...).
				Value(&v.Type),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Client name").
				Value(&v.ClientName),
			huh.NewInput().
				Title("Client email").
				Placeholder("client@example.com").
				Value(&v.ClientEmail).
				Validate(domain.ValidateEmail),
			huh.NewInput().
				Title("Client phone").
				Placeholder("+91 98765 43210").
				Value(&v.ClientPhone).
				Validate(domain.ValidatePhone),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Start date (YYYY-MM-DD, blank for none)").
				Placeholder("2026-02-14").
				Value(&v.StartDate).
				Validate(validateOptionalDate),
			huh.NewConfirm().
				Title("Start date confirmed with client?").
				Value(&v.StartFirm),
			huh.NewInput().
				Title("End date (YYYY-MM-DD, blank for none)").
				Value(&v.EndDate).
				Validate(validateOptionalDate),
			huh.NewConfirm().
				Title("End date confirmed with client?").
				Value(&v.EndFirm),
		),
	).WithTheme(studioHuhTheme()).WithShowHelp(false)
}

// rootPatch converts form values back into a patch. Blank dates clear.
func (v *rootFormValues) rootPatch() (draft.RootPatch, error) {
	typ := domain.ProjectType(v.Type)
	name := strings.TrimSpace(v.Name)
	p := draft.RootPatch{
		Name:           &name,
		Type:           &typ,
		ClientName:     &v.ClientName,
		ClientEmail:    &v.ClientEmail,
		ClientPhone:    &v.ClientPhone,
		StartConfirmed: &v.StartFirm,
		EndConfirmed:   &v.EndFirm,
	}
	if s := strings.TrimSpace(v.StartDate); s != "" {
		t, err := time.Parse(dateLayout, s)
		if err != nil {
			return p, err
		}
		p.StartAt = &t
	} else {
		p.ClearStart = true
	}
	if s := strings.TrimSpace(v.EndDate); s != "" {
		t, err := time.Parse(dateLayout, s)
		if err != nil {
			return p, err
		}
		p.EndAt = &t
	} else {
		p.ClearEnd = true
	}
	return p, nil
}

// eventFormValues backs the page 2 card form inputs.
type eventFormValues struct {
	Type          string
	TypeOther     string
	Photographers string
	Videographers string
	Days          string
	StartDate     string
	EventCoord    string
	ProdCoord     string
	Notes         string
}

func eventValuesFromPackage(e *domain.EventPackage) *eventFormValues {
	v := &eventFormValues{
		Type:          string(e.Type),
		TypeOther:     e.TypeOther,
		Photographers: strconv.Itoa(e.Photographers),
		Videographers: strconv.Itoa(e.Videographers),
		Days:          strconv.Itoa(e.Days),
		Notes:         e.NotesDraft,
	}
	if e.StartAt != nil {
		v.StartDate = e.StartAt.Format(dateLayout)
	}
	if e.EventCoordinatorID != nil {
		v.EventCoord = *e.EventCoordinatorID
	}
	if e.ProductionCoordinatorID != nil {
		v.ProdCoord = *e.ProductionCoordinatorID
	}
	if v.Type == "" {
		v.Type = string(domain.EventWedding)
	}
	return v
}

func buildEventForm(v *eventFormValues, eventCoords, prodCoords []huh.Option[string]) *huh.Form {
	typeOptions := []huh.Option[string]{
		huh.NewOption("Wedding", string(domain.EventWedding)),
		huh.NewOption("Engagement", string(domain.EventEngagement)),
		huh.NewOption("Portrait", string(domain.EventPortrait)),
		huh.NewOption("Birthday", string(domain.EventBirthday)),
		huh.NewOption("Corporate", string(domain.EventCorporate)),
		huh.NewOption("Other", string(domain.EventOther)),
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Event type").
				Options(typeOptions...).
				Value(&v.Type),
			huh.NewInput().
				Title("Describe the event (only for type \"other\")").
				Value(&v.TypeOther),
			huh.NewInput().
				Title("Event date (YYYY-MM-DD)").
				Value(&v.StartDate).
				Validate(validateRequiredDate),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Photographers").
				Placeholder("1").
				Value(&v.Photographers).
				Validate(validateOptionalCount),
			huh.NewInput().
				Title("Videographers").
				Placeholder("0").
				Value(&v.Videographers).
				Validate(validateOptionalCount),
			huh.NewInput().
				Title("Days of coverage").
				Placeholder("1").
				Value(&v.Days).
				Validate(validateOptionalCount),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Event coordinator").
				Options(eventCoords...).
				Value(&v.EventCoord),
			huh.NewSelect[string]().
				Title("Production coordinator").
				Options(prodCoords...).
				Value(&v.ProdCoord),
			huh.NewText().
				Title("Notes").
				Value(&v.Notes),
		),
	).WithTheme(studioHuhTheme()).WithShowHelp(false)
}

// eventPatch converts form values into a patch. The notes text commits on
// form completion.
func (v *eventFormValues) eventPatch() (draft.EventPatch, error) {
	typ := domain.EventType(v.Type)
	p := draft.EventPatch{
		Type:        &typ,
		TypeOther:   &v.TypeOther,
		NotesDraft:  &v.Notes,
		CommitNotes: true,
	}
	for _, f := range []struct {
		raw string
		dst **int
	}{
		{v.Photographers, &p.Photographers},
		{v.Videographers, &p.Videographers},
		{v.Days, &p.Days},
	} {
		if s := strings.TrimSpace(f.raw); s != "" {
			n, err := strconv.Atoi(s)
			if err != nil {
				return p, fmt.Errorf("%q is not a number", f.raw)
			}
			*f.dst = &n
		}
	}
	if s := strings.TrimSpace(v.StartDate); s != "" {
		t, err := time.Parse(dateLayout, s)
		if err != nil {
			return p, err
		}
		p.StartAt = &t
	} else {
		p.ClearStart = true
	}
	if v.EventCoord != "" {
		p.EventCoordinatorID = &v.EventCoord
	} else {
		p.ClearEventCoordinator = true
	}
	if v.ProdCoord != "" {
		p.ProductionCoordinatorID = &v.ProdCoord
	} else {
		p.ClearProductionCoordinator = true
	}
	return p, nil
}

// overrideFormValues backs the review page's manual price form.
type overrideFormValues struct {
	Amount string
}

func buildOverrideForm(v *overrideFormValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Base price in rupees (blank to return to computed)").
				Placeholder("150000").
				Value(&v.Amount).
				Validate(validateOptionalMoney),
		),
	).WithTheme(studioHuhTheme()).WithShowHelp(false)
}
