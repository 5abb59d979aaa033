package importer

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jxmullins/projectboard/internal/project"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeCreator struct {
	mu       sync.Mutex
	names    []string
	fail     map[string]bool
	inFlight atomic.Int32
	peak     atomic.Int32
	delay    time.Duration
}

func (f *fakeCreator) Create(ctx context.Context, p project.Payload) (*project.Project, error) {
	n := f.inFlight.Add(1)
	defer f.inFlight.Add(-1)
	for {
		old := f.peak.Load()
		if n <= old || f.peak.CompareAndSwap(old, n) {
			break
		}
	}
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail[p.Name] {
		return nil, errors.New("backend said no")
	}
	f.names = append(f.names, p.Name)
	return &project.Project{ID: project.ID(p.Name), Name: p.Name, Status: p.Status}, nil
}

func TestCreateAllSamples(t *testing.T) {
	creator := &fakeCreator{delay: time.Millisecond}
	payloads := SamplePayloads(0)

	res, err := CreateAll(context.Background(), creator, payloads, 3, nil)
	if err != nil {
		t.Fatalf("CreateAll() error = %v", err)
	}
	if len(res.Created) != 15 {
		t.Fatalf("Created = %d, want 15", len(res.Created))
	}
	for i, p := range res.Created {
		if p.Name != payloads[i].Name {
			t.Errorf("Created[%d] = %s, want input order %s", i, p.Name, payloads[i].Name)
		}
	}
	if peak := creator.peak.Load(); peak > 3 {
		t.Errorf("peak in-flight = %d, want <= 3", peak)
	}
}

func TestCreateAllCollectsFailures(t *testing.T) {
	creator := &fakeCreator{fail: map[string]bool{"Beta": true}}
	payloads := []project.Payload{
		{Name: "Alpha"},
		{Name: "Beta"},
		{Name: "   "},
		{Name: "Gamma", Status: "Completed"},
	}

	res, err := CreateAll(context.Background(), creator, payloads, 0, nil)
	if err != nil {
		t.Fatalf("CreateAll() error = %v", err)
	}
	if len(res.Created) != 2 || len(res.Failed) != 2 {
		t.Fatalf("Created/Failed = %d/%d, want 2/2", len(res.Created), len(res.Failed))
	}
	if res.Created[0].Status != "Active" {
		t.Errorf("default status = %q, want Active", res.Created[0].Status)
	}
	if res.Total() != 4 {
		t.Errorf("Total() = %d, want 4", res.Total())
	}

	var sawValidation bool
	for _, f := range res.Failed {
		if errors.Is(f.Err, project.ErrNameRequired) {
			sawValidation = true
		}
	}
	if !sawValidation {
		t.Error("blank name should fail validation without reaching the backend")
	}
	for _, n := range creator.names {
		if strings.TrimSpace(n) == "" {
			t.Error("blank name reached the backend")
		}
	}
}

func TestCreateAllCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	creator := &fakeCreator{}
	_, err := CreateAll(ctx, creator, SamplePayloads(5), 2, nil)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("CreateAll() error = %v, want context.Canceled", err)
	}
}

func TestSamplePayloads(t *testing.T) {
	if got := len(SamplePayloads(3)); got != 3 {
		t.Errorf("SamplePayloads(3) = %d, want 3", got)
	}
	p := SamplePayloads(1)[0]
	if p.ProposalBriefingLink != "https://proposals.example.com/urban-green-space-briefing" {
		t.Errorf("ProposalBriefingLink = %s", p.ProposalBriefingLink)
	}
}

func TestScan(t *testing.T) {
	root := t.TempDir()
	mustWrite := func(rel string) {
		t.Helper()
		path := filepath.Join(root, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	mustWrite("Harbor/site_map.pdf")
	mustWrite("Harbor/Proposal_v2.docx")
	mustWrite("Harbor/resources/data.csv")
	mustWrite("Rail/notes.txt")
	mustWrite("stray-file.txt")
	if err := os.MkdirAll(filepath.Join(root, ".git"), 0o755); err != nil {
		t.Fatal(err)
	}

	candidates, err := Scan(root, project.StatusPlanning)
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if len(candidates) != 2 {
		t.Fatalf("Scan() = %d candidates, want 2", len(candidates))
	}

	harbor := candidates[0].Payload
	if harbor.Name != "Harbor" || harbor.Status != "Planning" {
		t.Errorf("Harbor payload = %+v", harbor)
	}
	if !strings.HasPrefix(harbor.MapLink, "file:///") || !strings.HasSuffix(harbor.MapLink, "site_map.pdf") {
		t.Errorf("MapLink = %s", harbor.MapLink)
	}
	if !strings.HasSuffix(harbor.ProposalBriefingLink, "Proposal_v2.docx") {
		t.Errorf("ProposalBriefingLink = %s", harbor.ProposalBriefingLink)
	}
	if !strings.HasSuffix(harbor.ResourcesLink, "/Harbor/resources") {
		t.Errorf("ResourcesLink = %s", harbor.ResourcesLink)
	}

	rail := candidates[1].Payload
	if rail.MapLink != "" || rail.ResourcesLink != "" || rail.ProposalBriefingLink != "" {
		t.Errorf("Rail payload should have no links: %+v", rail)
	}
}

func TestScanMissingDir(t *testing.T) {
	if _, err := Scan(filepath.Join(t.TempDir(), "missing"), project.StatusActive); err == nil {
		t.Error("Scan() of missing dir should fail")
	}
}
