package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/jxmullins/projectboard/internal/project"
)

// FormMode distinguishes the two ways the project modal is opened.
type FormMode int

const (
	FormCreate FormMode = iota
	FormEdit
)

// ProjectForm is the single shared add/edit modal. The huh form binds
// directly to the exported fields, so a failed save can rebuild the form
// without losing what was typed.
type ProjectForm struct {
	Name          string
	Description   string
	Status        string
	MapLink       string
	ResourcesLink string
	ProposalLink  string

	mode      FormMode
	editingID project.ID
	width     int
	form      *huh.Form
	saving    bool
}

// NewCreateForm returns a blank form in create mode.
func NewCreateForm(width int) *ProjectForm {
	f := &ProjectForm{
		Status: project.StatusActive.String(),
		mode:   FormCreate,
		width:  width,
	}
	f.build()
	return f
}

// NewEditForm returns a form populated from p in edit mode.
func NewEditForm(p project.Project, width int) *ProjectForm {
	f := &ProjectForm{
		Name:          p.Name,
		Description:   p.Description,
		Status:        p.Bucket().String(),
		MapLink:       p.MapLink,
		ResourcesLink: p.ResourcesLink,
		ProposalLink:  p.ProposalBriefingLink,
		mode:          FormEdit,
		editingID:     p.ID,
		width:         width,
	}
	f.build()
	return f
}

// Title is the modal heading.
func (f *ProjectForm) Title() string {
	if f.mode == FormEdit {
		return "Edit Project"
	}
	return "Add Project"
}

// Mode returns whether the form creates or edits.
func (f *ProjectForm) Mode() FormMode { return f.mode }

// EditingID is the id being edited, zero in create mode.
func (f *ProjectForm) EditingID() project.ID { return f.editingID }

// Payload returns the trimmed request body.
func (f *ProjectForm) Payload() project.Payload {
	return project.Payload{
		Name:                 f.Name,
		Description:          f.Description,
		Status:               f.Status,
		MapLink:              f.MapLink,
		ResourcesLink:        f.ResourcesLink,
		ProposalBriefingLink: f.ProposalLink,
	}.Trimmed()
}

// build (re)creates the huh form bound to the fields. It is also used to
// reopen a form that already completed, keeping what was typed.
func (f *ProjectForm) build() {
	statusOptions := make([]huh.Option[string], 0, len(project.Statuses))
	for _, s := range project.Statuses {
		statusOptions = append(statusOptions, huh.NewOption(s.String(), s.String()))
	}

	width := f.width - 8
	if width < 40 {
		width = 40
	}

	f.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Project Name").
				Placeholder("Enter project name...").
				Value(&f.Name),

			huh.NewText().
				Title("Description").
				Placeholder("What is this project about?").
				CharLimit(2000).
				Lines(4).
				Value(&f.Description),

			huh.NewSelect[string]().
				Title("Status").
				Options(statusOptions...).
				Value(&f.Status),
		).Title("Details"),

		huh.NewGroup(
			huh.NewInput().
				Title("Map Link").
				Placeholder("https://...").
				Value(&f.MapLink),

			huh.NewInput().
				Title("Resources Link").
				Placeholder("https://...").
				Value(&f.ResourcesLink),

			huh.NewInput().
				Title("Proposal Briefing Link").
				Placeholder("https://...").
				Value(&f.ProposalLink),
		).Title("Links").Description("Optional"),
	).
		WithTheme(boardTheme()).
		WithKeyMap(formKeyMap()).
		WithWidth(width).
		WithShowHelp(true)
}

// formKeyMap lets esc close the modal as well as ctrl+c.
func formKeyMap() *huh.KeyMap {
	km := huh.NewDefaultKeyMap()
	km.Quit = key.NewBinding(
		key.WithKeys("esc", "ctrl+c"),
		key.WithHelp("esc", "close"),
	)
	return km
}

// boardTheme returns a custom Huh theme for the board.
func boardTheme() *huh.Theme {
	t := huh.ThemeDracula()

	t.Focused.Title = t.Focused.Title.Foreground(lipgloss.Color("#7C3AED"))
	t.Focused.Description = t.Focused.Description.Foreground(lipgloss.Color("#9CA3AF"))
	t.Focused.SelectedOption = t.Focused.SelectedOption.Foreground(lipgloss.Color("#10B981"))
	t.Focused.SelectSelector = t.Focused.SelectSelector.Foreground(lipgloss.Color("#7C3AED"))

	return t
}

// ConfirmImport asks whether a scanned folder should become a project.
// It runs standalone, outside the board program.
func ConfirmImport(name, summary string) (bool, error) {
	ok := true
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Import " + name + "?").
				Description(summary).
				Affirmative("Import").
				Negative("Skip").
				Value(&ok),
		),
	).WithTheme(boardTheme()).Run()
	return ok, err
}
