package board

import (
	"fmt"
	"html/template"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/jxmullins/projectboard/internal/project"
)

// linkSchemes are the URL schemes an exported link may point at. The
// importer produces file:// links, which html/template would otherwise
// replace.
var linkSchemes = map[string]bool{
	"http":   true,
	"https":  true,
	"mailto": true,
	"file":   true,
}

var pageTemplate = template.Must(template.New("board").Funcs(template.FuncMap{
	"columnClass": columnClass,
	"safeURL":     safeURL,
}).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: sans-serif; background: #1F2937; color: #F3F4F6; }
.kanban-board { display: flex; gap: 1rem; }
.kanban-column { flex: 1; background: #374151; border-radius: 8px; padding: .5rem; }
.project-card { background: #111827; border-radius: 6px; padding: .5rem; margin-bottom: .5rem; }
.link-btn { margin-right: .5rem; color: #06B6D4; }
.link-disabled { color: #6B7280; }
.empty-state { text-align: center; color: #9CA3AF; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<p class="generated">Generated {{.Generated}}</p>
{{- if .View.Empty}}
<div id="emptyState" class="empty-state">
  <h2>No projects found</h2>
  <p>Add a project to get started.</p>
</div>
{{- else}}
<div id="kanbanBoard" class="kanban-board">
{{- range .View.Columns}}
  <section class="kanban-column" id="column-{{columnClass .Status}}">
    <h2>{{.Status}} <span class="count" id="count-{{columnClass .Status}}">{{.Count}}</span></h2>
    {{- range .Cards}}
    <div class="project-card" data-id="{{.ID}}">
      <h3 class="project-name">{{.Name}}</h3>
      {{- if .Description}}
      <p class="project-description">{{.Description}}</p>
      {{- end}}
      <div class="card-links">
        {{- range .Links}}
        {{- if .Active}}
        <a href="{{safeURL .URL}}" target="_blank" rel="noopener" class="link-btn">{{.Label}}</a>
        {{- else}}
        <span class="link-btn link-disabled">{{.Label}}</span>
        {{- end}}
        {{- end}}
      </div>
      <div class="card-dates">
        <small>Created: {{.Created}}</small>
        <small>Updated: {{.Updated}}</small>
      </div>
    </div>
    {{- end}}
  </section>
{{- end}}
</div>
{{- end}}
</body>
</html>
`))

// HTMLOptions configures WriteHTML.
type HTMLOptions struct {
	Title     string
	Generated time.Time
}

// WriteHTML writes v as a standalone HTML page. All user text is escaped by
// html/template.
func WriteHTML(w io.Writer, v View, opts HTMLOptions) error {
	title := opts.Title
	if title == "" {
		title = "Project Board"
	}
	generated := opts.Generated
	if generated.IsZero() {
		generated = time.Now()
	}

	data := struct {
		Title     string
		Generated string
		View      View
	}{
		Title:     title,
		Generated: generated.Format(project.DateLayout + " 15:04"),
		View:      v,
	}
	if err := pageTemplate.Execute(w, data); err != nil {
		return fmt.Errorf("rendering board page: %w", err)
	}
	return nil
}

// columnClass returns the element id suffix for a column, e.g. "onhold".
func columnClass(s project.Status) string {
	return strings.ToLower(strings.ReplaceAll(s.String(), " ", ""))
}

// safeURL passes through links with an allowed scheme and neutralizes the
// rest. Links without a scheme stay relative, as a browser would treat them.
func safeURL(raw string) template.URL {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return template.URL("#")
	}
	if u.Scheme != "" && !linkSchemes[strings.ToLower(u.Scheme)] {
		return template.URL("#")
	}
	return template.URL(u.String())
}
