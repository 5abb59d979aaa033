// Package testutil provides an in-memory project API for tests.
package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/jxmullins/projectboard/internal/project"
)

// Call records one request received by the Backend.
type Call struct {
	Method string
	Path   string
	Query  string
}

// Backend is a fake of the project REST API backed by a slice. It follows
// the reference server: list ordered by last update, 404 envelopes for
// unknown ids, 400 when a create has no name.
type Backend struct {
	Server *httptest.Server

	mu       sync.Mutex
	projects []project.Project
	nextID   int
	calls    []Call
	now      func() time.Time

	// FailWith, when non-zero, makes every request answer with this status
	// and an error envelope.
	FailWith int
}

// NewBackend starts a fake API seeded with projects. Projects without an id
// are assigned one. The server is closed via t.Cleanup.
func NewBackend(t *testing.T, seed ...project.Project) *Backend {
	t.Helper()

	b := &Backend{nextID: 1, now: time.Now}
	for _, p := range seed {
		if p.ID.IsZero() {
			p.ID = project.ID(strconv.Itoa(b.nextID))
		}
		if n, err := strconv.Atoi(p.ID.String()); err == nil && n >= b.nextID {
			b.nextID = n + 1
		}
		b.projects = append(b.projects, p)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/projects", b.handleList)
	mux.HandleFunc("POST /api/projects", b.handleCreate)
	mux.HandleFunc("GET /api/projects/{id}", b.handleGet)
	mux.HandleFunc("PUT /api/projects/{id}", b.handleUpdate)
	mux.HandleFunc("DELETE /api/projects/{id}", b.handleDelete)

	b.Server = httptest.NewServer(b.record(mux))
	t.Cleanup(b.Server.Close)
	return b
}

// URL returns the base URL of the fake API.
func (b *Backend) URL() string {
	return b.Server.URL
}

// Calls returns a copy of every request received so far.
func (b *Backend) Calls() []Call {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]Call(nil), b.calls...)
}

// CountCalls returns how many requests used method.
func (b *Backend) CountCalls(method string) int {
	n := 0
	for _, c := range b.Calls() {
		if c.Method == method {
			n++
		}
	}
	return n
}

// Projects returns a copy of the stored projects.
func (b *Backend) Projects() []project.Project {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]project.Project(nil), b.projects...)
}

func (b *Backend) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		b.calls = append(b.calls, Call{Method: r.Method, Path: r.URL.Path, Query: r.URL.RawQuery})
		fail := b.FailWith
		b.mu.Unlock()

		if fail != 0 {
			writeJSON(w, fail, map[string]string{"error": http.StatusText(fail)})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (b *Backend) handleList(w http.ResponseWriter, r *http.Request) {
	search := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("search")))
	status := strings.TrimSpace(r.URL.Query().Get("status"))

	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]project.Project, 0, len(b.projects))
	for i := len(b.projects) - 1; i >= 0; i-- {
		p := b.projects[i]
		if search != "" &&
			!strings.Contains(strings.ToLower(p.Name), search) &&
			!strings.Contains(strings.ToLower(p.Description), search) {
			continue
		}
		if status != "" && p.Status != status {
			continue
		}
		out = append(out, p)
	}
	writeJSON(w, http.StatusOK, out)
}

func (b *Backend) handleGet(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	i := b.indexOf(r.PathValue("id"))
	if i < 0 {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Project not found"})
		return
	}
	writeJSON(w, http.StatusOK, b.projects[i])
}

func (b *Backend) handleCreate(w http.ResponseWriter, r *http.Request) {
	var in project.Payload
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil || in.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Project name is required"})
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	stamp := b.now().Format("2006-01-02T15:04:05.000000")
	p := fromPayload(in)
	p.ID = project.ID(strconv.Itoa(b.nextID))
	p.CreatedDate = stamp
	p.UpdatedDate = stamp
	b.nextID++
	b.projects = append(b.projects, p)
	writeJSON(w, http.StatusCreated, p)
}

func (b *Backend) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var in project.Payload
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "No data provided"})
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	i := b.indexOf(r.PathValue("id"))
	if i < 0 {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Project not found"})
		return
	}
	p := fromPayload(in)
	p.ID = b.projects[i].ID
	p.CreatedDate = b.projects[i].CreatedDate
	p.UpdatedDate = b.now().Format("2006-01-02T15:04:05.000000")
	b.projects = append(append(b.projects[:i:i], b.projects[i+1:]...), p)
	writeJSON(w, http.StatusOK, p)
}

func (b *Backend) handleDelete(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()

	i := b.indexOf(r.PathValue("id"))
	if i < 0 {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Project not found"})
		return
	}
	b.projects = append(b.projects[:i:i], b.projects[i+1:]...)
	writeJSON(w, http.StatusOK, map[string]string{"message": "Project deleted successfully"})
}

func (b *Backend) indexOf(id string) int {
	for i, p := range b.projects {
		if p.ID.String() == id {
			return i
		}
	}
	return -1
}

func fromPayload(in project.Payload) project.Project {
	return project.Project{
		Name:                 in.Name,
		Description:          in.Description,
		Status:               in.Status,
		MapLink:              in.MapLink,
		ResourcesLink:        in.ResourcesLink,
		ProposalBriefingLink: in.ProposalBriefingLink,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
