package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/jxmullins/projectboard/internal/apiclient"
	"github.com/jxmullins/projectboard/internal/board"
	"github.com/jxmullins/projectboard/internal/importer"
	"github.com/jxmullins/projectboard/internal/project"
	"github.com/jxmullins/projectboard/internal/tui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	listSearch string
	listStatus string
	listJSON   bool

	exportOut    string
	exportSearch string
	exportTitle  string

	seedCount   int
	seedWorkers int

	importStatus string
	importYes    bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List projects grouped by status",
	Long: `List projects from the API, grouped into the four board columns.

Example:
  projectboard list
  projectboard list --search harbor --status Active
  projectboard list --json`,
	Args: cobra.NoArgs,
	RunE: runList,
}

var showCmd = &cobra.Command{
	Use:   "show [id]",
	Short: "Show a single project",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the board as a standalone HTML page",
	Long: `Write the current board as an HTML page with the same four columns.

All project text is HTML-escaped. Links with unsupported schemes are
replaced by "#".

Example:
  projectboard export --out board.html`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create the sample projects",
	Args:  cobra.NoArgs,
	RunE:  runSeed,
}

var importCmd = &cobra.Command{
	Use:   "import [dir]",
	Short: "Create projects from a folder of project directories",
	Long: `Every sub-folder of dir becomes a project named after the folder.

Inside each folder:
- the first file with "map" in its name becomes the map link
- the first file with "proposal" or "briefing" in its name becomes the
  proposal briefing link
- a child folder with "resource" in its name becomes the resources link

Links are file:// URLs. Each project is confirmed before it is created
unless --yes is given.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	listCmd.Flags().StringVarP(&listSearch, "search", "s", "", "search term (name or description)")
	listCmd.Flags().StringVar(&listStatus, "status", "", "only this status: Planning, Active, On Hold, Completed")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "print JSON instead of a table")

	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output file (default: stdout)")
	exportCmd.Flags().StringVarP(&exportSearch, "search", "s", "", "search term")
	exportCmd.Flags().StringVar(&exportTitle, "title", "Project Board", "page title")

	seedCmd.Flags().IntVarP(&seedCount, "count", "n", 0, "number of sample projects (default: all)")
	seedCmd.Flags().IntVar(&seedWorkers, "workers", importer.DefaultWorkers, "concurrent requests")

	importCmd.Flags().StringVar(&importStatus, "status", project.StatusActive.String(), "status for imported projects")
	importCmd.Flags().BoolVarP(&importYes, "yes", "y", false, "import without asking")
}

func runList(cmd *cobra.Command, args []string) error {
	if listStatus != "" {
		if _, ok := project.ParseStatus(listStatus); !ok {
			return fmt.Errorf("unknown status %q", listStatus)
		}
	}

	projects, err := newClient().ListWith(cmd.Context(), apiclient.ListOptions{
		Search: listSearch,
		Status: listStatus,
	})
	if err != nil {
		return fmt.Errorf("failed to load projects: %w", err)
	}

	out := cmd.OutOrStdout()
	if listJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(projects)
	}

	writeProjectTable(out, board.Build(projects))
	return nil
}

// writeProjectTable prints one row per project in board order.
func writeProjectTable(w io.Writer, v board.View) {
	if v.Empty {
		fmt.Fprintln(w, "No projects found")
		return
	}

	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED")).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("#4B5563"))).
		Headers("ID", "STATUS", "NAME", "LINKS", "UPDATED").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	for _, col := range v.Columns {
		for _, c := range col.Cards {
			t.Row(c.ID.String(), col.Status.String(), truncate(c.Name, 40), linkSummary(c.Links), c.Updated)
		}
	}

	fmt.Fprintln(w, t.Render())
	counts := make([]string, 0, len(v.Columns))
	for _, col := range v.Columns {
		counts = append(counts, fmt.Sprintf("%s: %d", col.Status, col.Count))
	}
	fmt.Fprintf(w, "%d projects (%s)\n", v.Total, strings.Join(counts, ", "))
}

// linkSummary shows which of the three links are set, e.g. "Map, Proposal".
func linkSummary(links []board.Link) string {
	var set []string
	for _, l := range links {
		if l.Active {
			set = append(set, l.Label)
		}
	}
	if len(set) == 0 {
		return "-"
	}
	return strings.Join(set, ", ")
}

func runShow(cmd *cobra.Command, args []string) error {
	p, err := newClient().Get(cmd.Context(), project.ID(args[0]))
	if err != nil {
		return fmt.Errorf("failed to load project: %w", err)
	}

	c := board.NewCard(*p)
	label := lipgloss.NewStyle().Foreground(lipgloss.Color("#9CA3AF")).Width(12)
	title := lipgloss.NewStyle().Bold(true).Foreground(tui.StatusColor(c.Status))

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, title.Render(c.Name))
	fmt.Fprintln(out, label.Render("ID")+c.ID.String())
	fmt.Fprintln(out, label.Render("Status")+c.Status.String())
	fmt.Fprintln(out, label.Render("Created")+c.Created)
	fmt.Fprintln(out, label.Render("Updated")+c.Updated)
	for _, l := range c.Links {
		value := "-"
		if l.Active {
			value = l.URL
		}
		fmt.Fprintln(out, label.Render(l.Label)+value)
	}
	if c.Description != "" {
		fmt.Fprintln(out)
		fmt.Fprintln(out, c.Description)
	}
	return nil
}

func runExport(cmd *cobra.Command, args []string) error {
	projects, err := newClient().List(cmd.Context(), exportSearch)
	if err != nil {
		return fmt.Errorf("failed to load projects: %w", err)
	}

	var w io.Writer = cmd.OutOrStdout()
	if exportOut != "" {
		f, err := os.Create(exportOut)
		if err != nil {
			return fmt.Errorf("creating %s: %w", exportOut, err)
		}
		defer f.Close()
		w = f
	}

	opts := board.HTMLOptions{Title: exportTitle, Generated: time.Now()}
	if err := board.WriteHTML(w, board.Build(projects), opts); err != nil {
		return fmt.Errorf("writing export: %w", err)
	}
	if exportOut != "" {
		logger.Info("exported board", zap.String("file", exportOut), zap.Int("projects", len(projects)))
		fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %d projects to %s\n", len(projects), exportOut)
	}
	return nil
}

func runSeed(cmd *cobra.Command, args []string) error {
	payloads := importer.SamplePayloads(seedCount)
	res, err := importer.CreateAll(cmd.Context(), newClient(), payloads, seedWorkers, logger.Named("seed"))
	printResult(cmd.OutOrStdout(), res)
	return err
}

func runImport(cmd *cobra.Command, args []string) error {
	status, ok := project.ParseStatus(importStatus)
	if !ok {
		return fmt.Errorf("unknown status %q", importStatus)
	}

	candidates, err := importer.Scan(args[0], status)
	if err != nil {
		return err
	}
	if len(candidates) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No project folders found")
		return nil
	}

	payloads := make([]project.Payload, 0, len(candidates))
	skipped := 0
	for _, c := range candidates {
		if !importYes {
			confirmed, err := tui.ConfirmImport(c.Payload.Name, candidateSummary(c))
			if err != nil {
				return fmt.Errorf("confirmation cancelled: %w", err)
			}
			if !confirmed {
				skipped++
				continue
			}
		}
		payloads = append(payloads, c.Payload)
	}

	res, err := importer.CreateAll(cmd.Context(), newClient(), payloads, importer.DefaultWorkers, logger.Named("import"))
	res.Skipped = skipped
	printResult(cmd.OutOrStdout(), res)
	return err
}

func candidateSummary(c importer.Candidate) string {
	line := func(label, v string) string {
		if v == "" {
			v = "(none)"
		}
		return fmt.Sprintf("%-10s %s", label+":", v)
	}
	return strings.Join([]string{
		line("Map", c.Payload.MapLink),
		line("Resources", c.Payload.ResourcesLink),
		line("Proposal", c.Payload.ProposalBriefingLink),
	}, "\n")
}

func printResult(w io.Writer, res importer.Result) {
	for _, p := range res.Created {
		fmt.Fprintf(w, "✓ %s (%s) [%s]\n", board.SanitizeLine(p.Name), board.SanitizeLine(p.ID.String()), p.Bucket())
	}
	for _, f := range res.Failed {
		fmt.Fprintf(w, "✗ %s: %s\n", board.SanitizeLine(f.Payload.Name), board.SanitizeLine(f.Err.Error()))
	}
	fmt.Fprintf(w, "Created %d of %d projects", len(res.Created), res.Total())
	if res.Skipped > 0 {
		fmt.Fprintf(w, ", skipped %d", res.Skipped)
	}
	if len(res.Failed) > 0 {
		fmt.Fprintf(w, ", %d failed", len(res.Failed))
	}
	fmt.Fprintln(w)
}

// truncate shortens a string to maxLen with ellipsis.
func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen < 4 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}
