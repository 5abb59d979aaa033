// Package tui provides the Bubble Tea board for projectboard.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/jxmullins/projectboard/internal/board"
	"github.com/jxmullins/projectboard/internal/project"
	"go.uber.org/zap"
)

// DefaultSearchDebounce is how long the search box must be idle before a
// reload is issued.
const DefaultSearchDebounce = 300 * time.Millisecond

// API is the project backend as seen by the board. *apiclient.Client
// satisfies it.
type API interface {
	List(ctx context.Context, search string) ([]project.Project, error)
	Get(ctx context.Context, id project.ID) (*project.Project, error)
	Create(ctx context.Context, payload project.Payload) (*project.Project, error)
	Update(ctx context.Context, id project.ID, payload project.Payload) (*project.Project, error)
	Delete(ctx context.Context, id project.ID) error
}

// User-facing failure categories.
const (
	msgLoadProjectsFailed  = "Failed to load projects"
	msgLoadProjectFailed   = "Failed to load project"
	msgSaveProjectFailed   = "Failed to save project"
	msgDeleteProjectFailed = "Failed to delete project"
	msgNameRequired        = "Project name is required"
)

// Model is the Bubble Tea model for the project board. All controller
// state lives here and is only changed from Update.
type Model struct {
	// Configuration
	ctx         context.Context
	api         API
	logger      *zap.Logger
	styles      Styles
	debounce    time.Duration
	showHelpBar bool

	// Board
	projects    []project.Project
	view        board.View
	selectedCol project.Status
	selectedRow int
	loading     bool
	loaded      bool

	// Search
	search    textinput.Model
	searching bool
	searchSeq int
	query     string

	// Modal
	form     *ProjectForm
	fetchSeq int

	// Overlays
	confirmDelete *board.Card
	alert         *alertState
	showPopup     bool
	popupID       project.ID
	popupScroll   int
	showHelp      bool

	// UI
	width   int
	height  int
	ready   bool
	spinner spinner.Model
	status  string

	// Debug log
	showDebugLog bool
	debugLog     []DebugLogEntry
	debugScroll  int

	quitting bool
}

type alertState struct {
	Title  string
	Detail string
}

// DebugLogEntry represents a single debug log entry.
type DebugLogEntry struct {
	Timestamp time.Time
	Type      string // "cmd", "response", "error", "ui"
	Message   string
}

// Messages produced by commands.
type (
	projectsLoadedMsg struct {
		search   string
		projects []project.Project
	}
	projectLoadedMsg struct {
		seq     int
		project *project.Project
	}
	projectSavedMsg struct {
		form    *ProjectForm
		project *project.Project
		created bool
	}
	projectDeletedMsg struct {
		id project.ID
	}
	searchDebounceMsg struct {
		seq int
	}
	apiErrorMsg struct {
		title string
		err   error
		// form is set when a save failed; it is the form that sent it.
		form *ProjectForm
	}
)

// NewModel creates a board model. The first load is issued by Init.
func NewModel(ctx context.Context, api API, opts Options) Model {
	if ctx == nil {
		ctx = context.Background()
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	debounce := opts.SearchDebounce
	if debounce <= 0 {
		debounce = DefaultSearchDebounce
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(colorSecondary)

	ti := textinput.New()
	ti.Placeholder = "Search projects..."
	ti.Prompt = "/ "
	ti.CharLimit = 200
	ti.Cursor.SetMode(cursor.CursorStatic)
	ti.SetValue(opts.Search)

	return Model{
		ctx:         ctx,
		api:         api,
		logger:      logger,
		styles:      DefaultStyles(),
		debounce:    debounce,
		showHelpBar: !opts.HideHelpBar,
		view:        board.Build(nil),
		selectedCol: project.StatusPlanning,
		loading:     true,
		search:      ti,
		query:       strings.TrimSpace(opts.Search),
		spinner:     s,
		debugLog:    make([]DebugLogEntry, 0),
	}
}

// addDebugLog adds an entry to the debug log.
func (m *Model) addDebugLog(logType, message string) {
	m.debugLog = append(m.debugLog, DebugLogEntry{
		Timestamp: time.Now(),
		Type:      logType,
		Message:   message,
	})
	// Keep only last 100 entries
	if len(m.debugLog) > 100 {
		m.debugLog = m.debugLog[len(m.debugLog)-100:]
	}
}

// Init starts the spinner and the first load.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		m.fetchProjects(m.query),
	)
}

// reload refetches the whole list with the current search term.
func (m *Model) reload() tea.Cmd {
	m.loading = true
	m.addDebugLog("cmd", fmt.Sprintf("GET /api/projects search=%q", m.query))
	return m.fetchProjects(m.query)
}

func (m Model) fetchProjects(term string) tea.Cmd {
	ctx, api := m.ctx, m.api
	return func() tea.Msg {
		projects, err := api.List(ctx, term)
		if err != nil {
			return apiErrorMsg{title: msgLoadProjectsFailed, err: err}
		}
		return projectsLoadedMsg{search: term, projects: projects}
	}
}

// fetchProject loads a record for the edit form. Only the latest fetch may
// open a form.
func (m *Model) fetchProject(id project.ID) tea.Cmd {
	m.fetchSeq++
	ctx, api, seq := m.ctx, m.api, m.fetchSeq
	return func() tea.Msg {
		p, err := api.Get(ctx, id)
		if err != nil {
			return apiErrorMsg{title: msgLoadProjectFailed, err: err}
		}
		return projectLoadedMsg{seq: seq, project: p}
	}
}

func (m Model) saveProject(form *ProjectForm, id project.ID, payload project.Payload) tea.Cmd {
	ctx, api := m.ctx, m.api
	return func() tea.Msg {
		var (
			p   *project.Project
			err error
		)
		if id.IsZero() {
			p, err = api.Create(ctx, payload)
		} else {
			p, err = api.Update(ctx, id, payload)
		}
		if err != nil {
			return apiErrorMsg{title: msgSaveProjectFailed, err: err, form: form}
		}
		return projectSavedMsg{form: form, project: p, created: id.IsZero()}
	}
}

func (m Model) deleteProject(id project.ID) tea.Cmd {
	ctx, api := m.ctx, m.api
	return func() tea.Msg {
		if err := api.Delete(ctx, id); err != nil {
			return apiErrorMsg{title: msgDeleteProjectFailed, err: err}
		}
		return projectDeletedMsg{id: id}
	}
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.search.Width = max(10, msg.Width/3)
		cmds = append(cmds, tea.ClearScreen)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case projectsLoadedMsg:
		m.loading = false
		m.loaded = true
		m.projects = msg.projects
		m.view = board.Build(msg.projects)
		m.clampSelection()
		m.addDebugLog("response", fmt.Sprintf("%d projects (search=%q)", len(msg.projects), msg.search))
		return m, nil

	case projectLoadedMsg:
		if msg.seq != m.fetchSeq || m.form != nil {
			m.addDebugLog("response", fmt.Sprintf("ignored stale project %s", msg.project.ID))
			return m, nil
		}
		m.addDebugLog("response", fmt.Sprintf("loaded project %s", msg.project.ID))
		m.form = NewEditForm(*msg.project, m.width)
		return m, m.form.form.Init()

	case projectSavedMsg:
		verb := "Updated"
		if msg.created {
			verb = "Created"
		}
		m.status = fmt.Sprintf("%s %s", verb, board.SanitizeLine(msg.project.Name))
		m.logger.Info("project saved", zap.String("id", msg.project.ID.String()), zap.Bool("created", msg.created))
		m.addDebugLog("response", m.status)
		if m.form == msg.form {
			m.closeForm()
		}
		cmd := m.reload()
		return m, cmd

	case projectDeletedMsg:
		m.status = fmt.Sprintf("Deleted project %s", msg.id)
		m.logger.Info("project deleted", zap.String("id", msg.id.String()))
		m.addDebugLog("response", m.status)
		cmd := m.reload()
		return m, cmd

	case searchDebounceMsg:
		if msg.seq != m.searchSeq {
			return m, nil
		}
		m.query = strings.TrimSpace(m.search.Value())
		cmd := m.reload()
		return m, cmd

	case apiErrorMsg:
		m.handleAPIError(msg)
		if msg.form != nil && m.form == msg.form && m.form.form.State != huh.StateNormal {
			m.form.build()
			return m, m.form.form.Init()
		}
		return m, nil
	}

	if m.form != nil {
		return m.updateForm(msg)
	}
	if m.searching {
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) handleAPIError(msg apiErrorMsg) {
	m.loading = false
	if msg.form != nil {
		msg.form.saving = false
	}
	m.logger.Error(msg.title, zap.Error(msg.err))
	m.addDebugLog("error", fmt.Sprintf("%s: %v", msg.title, msg.err))
	m.alert = &alertState{Title: msg.title, Detail: errorDetail(msg.err)}
}

// errorDetail is the single-line text shown under an alert title.
func errorDetail(err error) string {
	if err == nil {
		return ""
	}
	return board.SanitizeLine(err.Error())
}

func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case m.alert != nil:
		// Any key dismisses the alert.
		m.alert = nil
		return m, nil
	case m.confirmDelete != nil:
		return m.handleConfirmKey(msg)
	case m.form != nil:
		return m.updateForm(msg)
	case m.searching:
		return m.handleSearchKey(msg)
	case m.showPopup:
		return m.handlePopupKey(msg)
	case m.showHelp:
		m.showHelp = false
		return m, nil
	case m.showDebugLog:
		return m.handleDebugLogKey(msg)
	}
	return m.handleKey(msg)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.quitting = true
		return m, tea.Quit

	case "?":
		m.showHelp = true

	case "`", "~":
		m.showDebugLog = true
		m.debugScroll = len(m.debugLog) - 1

	case "/":
		m.searching = true
		cmd := m.search.Focus()
		return m, cmd

	case "r":
		cmd := m.reload()
		return m, cmd

	case "a", "n":
		m.fetchSeq++
		m.form = NewCreateForm(m.width)
		m.addDebugLog("ui", "open form: create")
		return m, m.form.form.Init()

	case "e", "enter":
		if card, ok := m.selectedCard(); ok {
			m.addDebugLog("cmd", fmt.Sprintf("GET /api/projects/%s", card.ID))
			cmd := m.fetchProject(card.ID)
			return m, cmd
		}

	case "d", "x":
		if card, ok := m.selectedCard(); ok {
			m.confirmDelete = &card
		}

	case " ", "v":
		if card, ok := m.selectedCard(); ok {
			m.showPopup = true
			m.popupID = card.ID
			m.popupScroll = 0
		}

	case "h", "left":
		if m.selectedCol > project.StatusPlanning {
			m.selectedCol--
			m.selectedRow = 0
		}

	case "l", "right":
		if m.selectedCol < project.StatusCompleted {
			m.selectedCol++
			m.selectedRow = 0
		}

	case "j", "down":
		if m.selectedRow < len(m.view.Column(m.selectedCol).Cards)-1 {
			m.selectedRow++
		}

	case "k", "up":
		if m.selectedRow > 0 {
			m.selectedRow--
		}
	}

	return m, nil
}

func (m Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	card := *m.confirmDelete
	m.confirmDelete = nil
	switch msg.String() {
	case "y", "Y":
		m.addDebugLog("cmd", fmt.Sprintf("DELETE /api/projects/%s", card.ID))
		return m, m.deleteProject(card.ID)
	}
	m.addDebugLog("ui", "delete cancelled")
	return m, nil
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case "esc", "enter", "tab":
		m.searching = false
		m.search.Blur()
		return m, nil
	}

	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() == before {
		return m, cmd
	}

	m.searchSeq++
	seq := m.searchSeq
	tick := tea.Tick(m.debounce, func(time.Time) tea.Msg {
		return searchDebounceMsg{seq: seq}
	})
	return m, tea.Batch(cmd, tick)
}

// updateForm forwards input to the modal and reacts to it finishing.
func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "esc":
			m.closeForm()
			return m, nil
		case "ctrl+s":
			return m.submitForm()
		}
	}
	if m.form.saving {
		return m, nil
	}

	model, cmd := m.form.form.Update(msg)
	if f, ok := model.(*huh.Form); ok {
		m.form.form = f
	}

	switch m.form.form.State {
	case huh.StateCompleted:
		return m.submitForm()
	case huh.StateAborted:
		m.closeForm()
		return m, nil
	}
	return m, cmd
}

// submitForm validates and dispatches to create or update. The modal stays
// open until the save succeeds.
func (m Model) submitForm() (tea.Model, tea.Cmd) {
	f := m.form
	if f == nil || f.saving {
		return m, nil
	}

	payload := f.Payload()
	if err := payload.Validate(); err != nil {
		m.alert = &alertState{Title: msgNameRequired}
		m.addDebugLog("ui", msgNameRequired)
		if f.form.State != huh.StateNormal {
			f.build()
			return m, f.form.Init()
		}
		return m, nil
	}

	f.saving = true
	method := "POST /api/projects"
	if !f.editingID.IsZero() {
		method = fmt.Sprintf("PUT /api/projects/%s", f.editingID)
	}
	m.addDebugLog("cmd", method)
	return m, m.saveProject(f, f.editingID, payload)
}

// closeForm hides the modal. Dropping the form also drops its fields and
// the editing id.
func (m *Model) closeForm() {
	if m.form != nil {
		m.addDebugLog("ui", "close form")
	}
	m.form = nil
}

func (m Model) handlePopupKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q", " ", "v":
		m.showPopup = false
	case "j", "down":
		m.popupScroll++
	case "k", "up":
		if m.popupScroll > 0 {
			m.popupScroll--
		}
	case "e", "enter":
		m.showPopup = false
		cmd := m.fetchProject(m.popupID)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleDebugLogKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q", "`", "~":
		m.showDebugLog = false
	case "j", "down":
		if m.debugScroll < len(m.debugLog)-1 {
			m.debugScroll++
		}
	case "k", "up":
		if m.debugScroll > 0 {
			m.debugScroll--
		}
	case "g":
		m.debugScroll = 0
	case "G":
		m.debugScroll = len(m.debugLog) - 1
	}
	return m, nil
}

func (m *Model) clampSelection() {
	n := len(m.view.Column(m.selectedCol).Cards)
	if m.selectedRow >= n {
		m.selectedRow = n - 1
	}
	if m.selectedRow < 0 {
		m.selectedRow = 0
	}
}

func (m Model) selectedCard() (board.Card, bool) {
	cards := m.view.Column(m.selectedCol).Cards
	if m.selectedRow >= 0 && m.selectedRow < len(cards) {
		return cards[m.selectedRow], true
	}
	return board.Card{}, false
}

func (m Model) findCard(id project.ID) (board.Card, bool) {
	for _, col := range m.view.Columns {
		for _, c := range col.Cards {
			if c.ID == id {
				return c, true
			}
		}
	}
	return board.Card{}, false
}
