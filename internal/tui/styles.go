package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/jxmullins/projectboard/internal/project"
)

// Color palette
var (
	// Primary colors
	colorPrimary   = lipgloss.Color("#7C3AED") // Purple
	colorSecondary = lipgloss.Color("#06B6D4") // Cyan
	colorAccent    = lipgloss.Color("#F59E0B") // Amber

	// Status colors
	colorPlanning  = lipgloss.Color("#3B82F6") // Blue
	colorActive    = lipgloss.Color("#10B981") // Green
	colorOnHold    = lipgloss.Color("#F59E0B") // Amber
	colorCompleted = lipgloss.Color("#6B7280") // Gray

	// UI colors
	colorBorder       = lipgloss.Color("#4B5563")
	colorBorderActive = lipgloss.Color("#7C3AED")
	colorText         = lipgloss.Color("#F3F4F6")
	colorTextMuted    = lipgloss.Color("#9CA3AF")
	colorSuccess      = lipgloss.Color("#10B981")
	colorWarning      = lipgloss.Color("#F59E0B")
	colorError        = lipgloss.Color("#EF4444")
)

// StatusColor returns the accent color for a status column.
func StatusColor(s project.Status) lipgloss.Color {
	switch s {
	case project.StatusPlanning:
		return colorPlanning
	case project.StatusActive:
		return colorActive
	case project.StatusOnHold:
		return colorOnHold
	case project.StatusCompleted:
		return colorCompleted
	default:
		return colorTextMuted
	}
}

// Styles holds all the application styles.
type Styles struct {
	// App-level styles
	Header    lipgloss.Style
	StatusBar lipgloss.Style
	HelpBar   lipgloss.Style
	Search    lipgloss.Style

	// Panel styles
	Panel        lipgloss.Style
	PanelActive  lipgloss.Style
	PanelHeader  lipgloss.Style
	PanelFocused lipgloss.Style

	// Overlays
	Alert   lipgloss.Style
	Confirm lipgloss.Style

	// Text styles
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Label    lipgloss.Style
	Value    lipgloss.Style
	Muted    lipgloss.Style
	Error    lipgloss.Style
	Success  lipgloss.Style
	Warning  lipgloss.Style

	// Card content
	CardName     lipgloss.Style
	Link         lipgloss.Style
	LinkDisabled lipgloss.Style
	Spinner      lipgloss.Style
}

// DefaultStyles returns the default style configuration.
func DefaultStyles() Styles {
	return Styles{
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary).
			BorderStyle(lipgloss.DoubleBorder()).
			BorderBottom(true).
			BorderForeground(colorBorder).
			Padding(0, 1),

		StatusBar: lipgloss.NewStyle().
			Foreground(colorText).
			Background(lipgloss.Color("#374151")).
			Padding(0, 1),

		HelpBar: lipgloss.NewStyle().
			Foreground(colorTextMuted).
			Padding(0, 1),

		Search: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1),

		Panel: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1),

		PanelActive: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(colorBorderActive).
			Padding(0, 1),

		PanelHeader: lipgloss.NewStyle().
			Bold(true).
			Foreground(colorText).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(colorBorder).
			MarginBottom(1),

		PanelFocused: lipgloss.NewStyle().
			BorderStyle(lipgloss.ThickBorder()).
			BorderForeground(colorPrimary).
			Padding(0, 1),

		Alert: lipgloss.NewStyle().
			BorderStyle(lipgloss.ThickBorder()).
			BorderForeground(colorError).
			Padding(1, 2),

		Confirm: lipgloss.NewStyle().
			BorderStyle(lipgloss.ThickBorder()).
			BorderForeground(colorWarning).
			Padding(1, 2),

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary),

		Subtitle: lipgloss.NewStyle().
			Foreground(colorSecondary),

		Label: lipgloss.NewStyle().
			Foreground(colorTextMuted),

		Value: lipgloss.NewStyle().
			Foreground(colorText),

		Muted: lipgloss.NewStyle().
			Foreground(colorTextMuted),

		Error: lipgloss.NewStyle().
			Foreground(colorError),

		Success: lipgloss.NewStyle().
			Foreground(colorSuccess),

		Warning: lipgloss.NewStyle().
			Foreground(colorWarning),

		CardName: lipgloss.NewStyle().
			Bold(true).
			Foreground(colorText),

		Link: lipgloss.NewStyle().
			Foreground(colorSecondary).
			Underline(true),

		LinkDisabled: lipgloss.NewStyle().
			Foreground(colorBorder).
			Strikethrough(true),

		Spinner: lipgloss.NewStyle().
			Foreground(colorAccent),
	}
}

// ColumnHeader returns the header style for a status column.
func (s Styles) ColumnHeader(status project.Status, selected bool) lipgloss.Style {
	st := s.PanelHeader.Foreground(StatusColor(status))
	if selected {
		st = st.Underline(true)
	}
	return st
}

// PanelStyle returns the appropriate panel style based on active state.
func (s Styles) PanelStyle(active bool) lipgloss.Style {
	if active {
		return s.PanelActive
	}
	return s.Panel
}
