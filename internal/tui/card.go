package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/jxmullins/projectboard/internal/board"
)

// cardStyle returns the border style for a card.
func cardStyle(c board.Card, styles Styles, selected bool, width int) lipgloss.Style {
	style := styles.Panel.Width(width - 2)
	if selected {
		return style.BorderForeground(colorBorderActive)
	}
	return style.BorderForeground(StatusColor(c.Status))
}

// renderCard renders a project card. Text on board.Card is already
// stripped of escape sequences.
func renderCard(c board.Card, styles Styles, selected bool, width, maxLines int) string {
	inner := width - 4
	if inner < 4 {
		inner = 4
	}

	var content strings.Builder
	content.WriteString(styles.CardName.Render(truncateString(c.Name, inner)))

	descLines := maxLines - 3 // name, links, dates
	if c.Description != "" && descLines > 0 {
		content.WriteString("\n")
		content.WriteString(styles.Muted.Render(previewLines(c.Description, inner, descLines)))
	}

	content.WriteString("\n")
	content.WriteString(renderLinks(c.Links, styles))
	content.WriteString("\n")
	content.WriteString(styles.Label.Render(truncateString("Updated "+c.Updated, inner)))

	return cardStyle(c, styles, selected, width).Render(content.String())
}

// renderLinks renders every link. Missing links show as disabled
// placeholders so the three slots always line up.
func renderLinks(links []board.Link, styles Styles) string {
	parts := make([]string, 0, len(links))
	for _, l := range links {
		if l.Active {
			parts = append(parts, styles.Link.Render(l.Label))
		} else {
			parts = append(parts, styles.LinkDisabled.Render(l.Label))
		}
	}
	return strings.Join(parts, " ")
}

// previewLines wraps s to width and keeps at most n lines.
func previewLines(s string, width, n int) string {
	lines := strings.Split(ansi.Wordwrap(s, width, ""), "\n")
	if len(lines) > n {
		lines = lines[:n]
		lines[n-1] = truncateString(lines[n-1]+"...", width)
	}
	return truncateLines(strings.Join(lines, "\n"), width)
}

func truncateString(s string, maxLen int) string {
	if ansi.StringWidth(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return ansi.Truncate(s, maxLen, "")
	}
	return ansi.Truncate(s, maxLen, "...")
}

func truncateLines(s string, maxWidth int) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = truncateString(line, maxWidth)
	}
	return strings.Join(lines, "\n")
}
