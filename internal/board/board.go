// Package board groups projects into status columns and builds the view
// model both renderers draw from.
package board

import (
	"strings"
	"unicode"

	"github.com/charmbracelet/x/ansi"
	"github.com/jxmullins/projectboard/internal/project"
)

// Buckets maps each status to its projects in input order.
type Buckets map[project.Status][]project.Project

// Classify groups projects by status. Every project lands in exactly one
// bucket; missing or unknown statuses go to Active.
func Classify(projects []project.Project) Buckets {
	// Pre-initialize all columns so empty ones still render.
	buckets := make(Buckets, len(project.Statuses))
	for _, s := range project.Statuses {
		buckets[s] = make([]project.Project, 0)
	}

	for _, p := range projects {
		s := p.Bucket()
		buckets[s] = append(buckets[s], p)
	}
	return buckets
}

// Total returns the number of projects across all buckets.
func (b Buckets) Total() int {
	n := 0
	for _, ps := range b {
		n += len(ps)
	}
	return n
}

// Link is one of a card's three optional links. Inactive links still
// render, as a disabled placeholder.
type Link struct {
	Label  string
	URL    string
	Active bool
}

// Card is the sanitized, display-ready form of a project.
type Card struct {
	ID          project.ID
	Name        string
	Description string
	Status      project.Status
	Links       []Link
	Created     string
	Updated     string
}

// Column is one status column with its cards and count.
type Column struct {
	Status project.Status
	Count  int
	Cards  []Card
}

// View is the whole board. When Empty is set the board is replaced by the
// empty-state placeholder.
type View struct {
	Columns []Column
	Total   int
	Empty   bool
}

// Render builds the view for b. It is a pure function of its input.
func Render(b Buckets) View {
	v := View{Columns: make([]Column, 0, len(project.Statuses))}
	for _, s := range project.Statuses {
		col := Column{Status: s, Count: len(b[s]), Cards: make([]Card, 0, len(b[s]))}
		for _, p := range b[s] {
			col.Cards = append(col.Cards, NewCard(p))
		}
		v.Total += col.Count
		v.Columns = append(v.Columns, col)
	}
	v.Empty = v.Total == 0
	return v
}

// Build classifies and renders in one step.
func Build(projects []project.Project) View {
	return Render(Classify(projects))
}

// Column returns the column for s.
func (v View) Column(s project.Status) Column {
	for _, c := range v.Columns {
		if c.Status == s {
			return c
		}
	}
	return Column{Status: s}
}

// NewCard converts p for display.
func NewCard(p project.Project) Card {
	return Card{
		ID:          p.ID,
		Name:        SanitizeLine(p.Name),
		Description: Sanitize(p.Description),
		Status:      p.Bucket(),
		Links: []Link{
			newLink("Map", p.MapLink),
			newLink("Resources", p.ResourcesLink),
			newLink("Proposal", p.ProposalBriefingLink),
		},
		Created: project.FormatDate(p.CreatedDate),
		Updated: project.FormatDate(p.UpdatedDate),
	}
}

func newLink(label, raw string) Link {
	u := SanitizeLine(raw)
	return Link{Label: label, URL: u, Active: u != ""}
}

// Sanitize removes terminal escape sequences and control characters from
// user-supplied text. Newlines and tabs survive.
func Sanitize(s string) string {
	s = ansi.Strip(s)
	return strings.Map(func(r rune) rune {
		switch {
		case r == '\n' || r == '\t':
			return r
		case unicode.IsControl(r):
			return -1
		}
		return r
	}, s)
}

// SanitizeLine is Sanitize for single-line fields: whitespace runs,
// including newlines, collapse to one space.
func SanitizeLine(s string) string {
	return strings.Join(strings.Fields(Sanitize(s)), " ")
}
