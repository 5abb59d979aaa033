package importer

import (
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jxmullins/projectboard/internal/project"
)

// Candidate is one project folder found by Scan.
type Candidate struct {
	Folder        string
	MapFiles      []string
	ProposalFiles []string
	ResourceDirs  []string
	Payload       project.Payload
}

// Scan treats every sub-folder of dir as a project. The folder name becomes
// the project name; the first file whose name contains "map" becomes the
// map link, the first containing "proposal" or "briefing" the proposal
// link, and the first child folder containing "resource" the resources
// link. Links are absolute file:// URLs.
func Scan(dir string, status project.Status) ([]Candidate, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", dir, err)
	}
	entries, err := os.ReadDir(abs)
	if err != nil {
		return nil, fmt.Errorf("reading import directory: %w", err)
	}

	var out []Candidate
	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		c, err := scanFolder(filepath.Join(abs, entry.Name()), status)
		if err != nil {
			return nil, fmt.Errorf("scanning %s: %w", entry.Name(), err)
		}
		out = append(out, c)
	}
	return out, nil
}

func scanFolder(folder string, status project.Status) (Candidate, error) {
	c := Candidate{Folder: folder}

	err := filepath.WalkDir(folder, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		name := strings.ToLower(d.Name())
		if d.IsDir() {
			if filepath.Dir(path) == folder && strings.Contains(name, "resource") {
				c.ResourceDirs = append(c.ResourceDirs, path)
			}
			return nil
		}
		if strings.Contains(name, "map") {
			c.MapFiles = append(c.MapFiles, path)
		}
		if strings.Contains(name, "proposal") || strings.Contains(name, "briefing") {
			c.ProposalFiles = append(c.ProposalFiles, path)
		}
		return nil
	})
	if err != nil {
		return c, err
	}

	sort.Strings(c.MapFiles)
	sort.Strings(c.ProposalFiles)
	sort.Strings(c.ResourceDirs)

	c.Payload = project.Payload{
		Name:                 filepath.Base(folder),
		Status:               status.String(),
		MapLink:              fileURL(first(c.MapFiles)),
		ResourcesLink:        fileURL(first(c.ResourceDirs)),
		ProposalBriefingLink: fileURL(first(c.ProposalFiles)),
	}
	return c, nil
}

func first(paths []string) string {
	if len(paths) == 0 {
		return ""
	}
	return paths[0]
}

// fileURL converts an absolute path to a file:// URL.
func fileURL(path string) string {
	if path == "" {
		return ""
	}
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(path)}
	return u.String()
}
