package tui

import (
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/jxmullins/projectboard/internal/board"
)

const helpMarkdown = `# Keyboard controls

## Board

| Key | Action |
| --- | --- |
| h/l or ←/→ | Move between columns |
| j/k or ↑/↓ | Move between cards |
| space, v | Card details |
| r | Reload |
| q | Quit |

## Projects

| Key | Action |
| --- | --- |
| a, n | Add project |
| e, enter | Edit selected project |
| d, x | Delete selected project |
| ctrl+s | Save the open form |
| esc | Close the form |

## Search

Press **/** and type. The board reloads once typing pauses.
**esc** or **enter** leaves the search box.

Press any key to close.
`

var rendererCache sync.Map // map[int]*glamour.TermRenderer

// renderMarkdown renders md for the terminal, falling back to the raw text.
func renderMarkdown(md string, width int) string {
	var r *glamour.TermRenderer
	if cached, ok := rendererCache.Load(width); ok {
		r = cached.(*glamour.TermRenderer)
	} else {
		var err error
		r, err = glamour.NewTermRenderer(
			glamour.WithStandardStyle("dark"),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return md
		}
		rendererCache.Store(width, r)
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return out
}

// View renders the model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	if m.quitting {
		return "Goodbye!\n"
	}

	// Handle too-small window
	if m.width < 60 || m.height < 15 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.styles.Warning.Render("Window too small\nMinimum: 60x15"))
	}

	switch {
	case m.alert != nil:
		return m.renderAlert()
	case m.confirmDelete != nil:
		return m.renderConfirm()
	case m.form != nil:
		return m.renderForm()
	case m.showPopup:
		return m.renderPopup()
	case m.showHelp:
		return m.renderHelp()
	case m.showDebugLog:
		return m.renderDebugLog()
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	contentHeight := m.height - 9
	if contentHeight < 6 {
		contentHeight = 6
	}
	if m.view.Empty {
		b.WriteString(m.renderEmptyState(m.width, contentHeight))
	} else {
		b.WriteString(m.renderBoard(m.width, contentHeight))
	}

	b.WriteString("\n")
	b.WriteString(m.renderStatusBar())
	if m.showHelpBar {
		b.WriteString("\n")
		b.WriteString(m.renderHelpBar())
	}

	return b.String()
}

func (m Model) renderHeader() string {
	title := m.styles.Title.Render("PROJECT BOARD")

	var status string
	if m.loading {
		status = m.spinner.View() + " Loading"
	} else {
		status = m.styles.Success.Render(fmt.Sprintf("%d projects", m.view.Total))
	}

	searchBox := m.styles.Search.BorderForeground(colorBorder)
	if m.searching {
		searchBox = searchBox.BorderForeground(colorPrimary)
	}
	search := searchBox.Render(m.search.View())

	spacer := max(1, m.width-lipgloss.Width(title)-lipgloss.Width(search)-lipgloss.Width(status)-8)
	header := lipgloss.JoinHorizontal(lipgloss.Center,
		title,
		"  ",
		search,
		strings.Repeat(" ", spacer),
		status,
	)

	return m.styles.Header.Width(m.width).Render(header)
}

func (m Model) renderBoard(width, height int) string {
	colWidth := width / len(m.view.Columns)
	if colWidth < 14 {
		colWidth = 14
	}

	columns := make([]string, 0, len(m.view.Columns))
	for _, col := range m.view.Columns {
		columns = append(columns, m.renderColumn(col, colWidth, height))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, columns...)
}

func (m Model) renderColumn(col board.Column, width, height int) string {
	selectedCol := col.Status == m.selectedCol
	headerText := fmt.Sprintf("%s (%d)", col.Status, col.Count)
	header := m.styles.ColumnHeader(col.Status, selectedCol).Width(width - 4).Render(headerText)

	cardHeight := 7
	maxCards := (height - 4) / cardHeight
	if maxCards < 1 {
		maxCards = 1
	}

	// Scroll so the selected card stays visible.
	start := 0
	if selectedCol && m.selectedRow >= maxCards {
		start = m.selectedRow - maxCards + 1
	}

	var cardViews []string
	if start > 0 {
		cardViews = append(cardViews, m.styles.Muted.Render(fmt.Sprintf("↑ %d more", start)))
	}
	end := min(len(col.Cards), start+maxCards)
	for i := start; i < end; i++ {
		selected := selectedCol && i == m.selectedRow
		cardViews = append(cardViews, renderCard(col.Cards[i], m.styles, selected, width-2, cardHeight-2))
	}
	if remaining := len(col.Cards) - end; remaining > 0 {
		cardViews = append(cardViews, m.styles.Muted.Render(fmt.Sprintf("+%d more", remaining)))
	}

	var content string
	if len(cardViews) > 0 {
		content = lipgloss.JoinVertical(lipgloss.Left, cardViews...)
	} else {
		content = m.styles.Muted.Render("No projects")
	}

	colStyle := m.styles.PanelStyle(selectedCol).Width(width - 2).Height(height)
	return colStyle.Render(lipgloss.JoinVertical(lipgloss.Left, header, content))
}

func (m Model) renderEmptyState(width, height int) string {
	hint := "Press [a] to add your first project"
	if m.query != "" {
		hint = fmt.Sprintf("Nothing matches %q. Press [/] to change the search", board.SanitizeLine(m.query))
	}
	content := lipgloss.JoinVertical(lipgloss.Center,
		m.styles.Title.Render("No projects found"),
		"",
		m.styles.Muted.Render(hint),
	)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (m Model) renderStatusBar() string {
	left := m.status
	if left == "" && m.query != "" {
		left = fmt.Sprintf("Search: %s", board.SanitizeLine(m.query))
	}
	right := ""
	if card, ok := m.selectedCard(); ok {
		right = truncateString(card.Name, m.width/3)
	}
	gap := max(1, m.width-lipgloss.Width(left)-lipgloss.Width(right)-2)
	return m.styles.StatusBar.Width(m.width).Render(left + strings.Repeat(" ", gap) + right)
}

func (m Model) renderHelpBar() string {
	var help string
	if m.searching {
		help = "[type] Search  [Esc/Enter] Done  [Ctrl+C] Quit"
	} else {
		help = "[←→↑↓] Navigate  [a] Add  [e] Edit  [d] Delete  [/] Search  [Space] Details  [`] Log  [?] Help  [q] Quit"
	}
	return m.styles.HelpBar.Width(m.width).Render(help)
}

func (m Model) renderAlert() string {
	content := m.styles.Error.Bold(true).Render(m.alert.Title)
	if m.alert.Detail != "" {
		detail := lipgloss.NewStyle().Width(min(60, m.width-12)).Render(m.alert.Detail)
		content = lipgloss.JoinVertical(lipgloss.Left, content, "", m.styles.Muted.Render(detail))
	}
	content = lipgloss.JoinVertical(lipgloss.Left, content, "", m.styles.HelpBar.Render("Press any key to continue"))
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
		m.styles.Alert.Render(content))
}

func (m Model) renderConfirm() string {
	name := truncateString(m.confirmDelete.Name, 50)
	content := lipgloss.JoinVertical(lipgloss.Left,
		m.styles.Warning.Bold(true).Render("Delete project?"),
		"",
		fmt.Sprintf("Are you sure you want to delete %q?", name),
		"",
		m.styles.HelpBar.Render("[y] Delete   [any other key] Cancel"),
	)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
		m.styles.Confirm.Render(content))
}

func (m Model) renderForm() string {
	title := m.styles.Title.Render(m.form.Title())
	body := m.form.form.View()
	if m.form.saving {
		body = lipgloss.JoinVertical(lipgloss.Left, body, "", m.spinner.View()+" Saving...")
	}
	hint := m.styles.HelpBar.Render("[Ctrl+S] Save   [Esc] Close")

	popupWidth := min(m.width-6, 90)
	popup := m.styles.PanelFocused.Width(popupWidth).Render(
		lipgloss.JoinVertical(lipgloss.Left, title, "", body))

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Left, popup, hint))
}

func (m Model) renderPopup() string {
	card, ok := m.findCard(m.popupID)
	if !ok {
		return m.styles.Muted.Render("Project not found")
	}

	popupWidth := m.width - 10
	if popupWidth < 40 {
		popupWidth = 40
	}
	popupHeight := m.height - 6
	if popupHeight < 12 {
		popupHeight = 12
	}

	title := m.styles.Title.Render(truncateString(card.Name, popupWidth-8))
	meta := lipgloss.JoinHorizontal(lipgloss.Left,
		m.styles.Label.Render("Status: "),
		lipgloss.NewStyle().Foreground(StatusColor(card.Status)).Render(card.Status.String()),
		"    ",
		m.styles.Label.Render("Created: "), m.styles.Value.Render(card.Created),
		"    ",
		m.styles.Label.Render("Updated: "), m.styles.Value.Render(card.Updated),
	)

	var links []string
	for _, l := range card.Links {
		value := m.styles.LinkDisabled.Render("not set")
		if l.Active {
			value = m.styles.Link.Render(l.URL)
		}
		links = append(links, fmt.Sprintf("%s %s", m.styles.Label.Render(fmt.Sprintf("%-10s", l.Label+":")), value))
	}

	description := m.styles.Value.Width(popupWidth - 4).Render(card.Description)
	if card.Description == "" {
		description = m.styles.Muted.Render("(no description)")
	}
	descLines := strings.Split(description, "\n")
	scroll := min(m.popupScroll, max(0, len(descLines)-1))
	descLines = descLines[scroll:]

	divider := m.styles.Muted.Render(strings.Repeat("─", popupWidth-4))
	content := lipgloss.JoinVertical(lipgloss.Left,
		title,
		divider,
		meta,
		strings.Join(links, "\n"),
		divider,
		m.styles.Label.Render("Description:"),
		strings.Join(descLines, "\n"),
	)

	popup := m.styles.PanelFocused.
		Width(popupWidth).
		MaxHeight(popupHeight).
		Render(content)
	helpBar := m.styles.HelpBar.Render("[Esc] Close   [j/k] Scroll   [e] Edit")

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Left, popup, helpBar))
}

func (m Model) renderHelp() string {
	width := min(70, m.width-8)
	help := renderMarkdown(helpMarkdown, width-4)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
		m.styles.Panel.Width(width).Render(help))
}

func (m Model) renderDebugLog() string {
	var b strings.Builder

	title := m.styles.Title.Render("Debug Log")
	hint := m.styles.Muted.Render("Press ` or ~ to close | j/k to scroll")

	b.WriteString(title)
	b.WriteString("  ")
	b.WriteString(hint)
	b.WriteString("\n")
	b.WriteString(m.styles.Muted.Render(strings.Repeat("─", m.width-8)))
	b.WriteString("\n\n")

	if len(m.debugLog) == 0 {
		b.WriteString(m.styles.Muted.Render("No activity yet..."))
	} else {
		maxVisible := m.height - 10
		if maxVisible < 5 {
			maxVisible = 5
		}

		start := 0
		if len(m.debugLog) > maxVisible {
			start = len(m.debugLog) - maxVisible
			if m.debugScroll >= 0 && m.debugScroll < len(m.debugLog)-maxVisible {
				start = m.debugScroll
			}
		}
		end := min(len(m.debugLog), start+maxVisible)

		for i := start; i < end; i++ {
			entry := m.debugLog[i]

			var typeStyle lipgloss.Style
			switch entry.Type {
			case "cmd":
				typeStyle = m.styles.Subtitle
			case "response":
				typeStyle = m.styles.Success
			case "error":
				typeStyle = m.styles.Error
			default:
				typeStyle = m.styles.Muted
			}

			fmt.Fprintf(&b, "[%s] %s %s\n",
				m.styles.Muted.Render(entry.Timestamp.Format("15:04:05")),
				typeStyle.Render(fmt.Sprintf("%-8s", entry.Type)),
				entry.Message,
			)
		}

		if len(m.debugLog) > maxVisible {
			b.WriteString(m.styles.Muted.Render(fmt.Sprintf("\n[%d-%d of %d entries]", start+1, end, len(m.debugLog))))
		}
	}

	logStyle := m.styles.Panel.
		Width(m.width - 4).
		Height(m.height - 4).
		Padding(1)

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
		logStyle.Render(b.String()))
}
