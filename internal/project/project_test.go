package project

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestNormalizeStatus(t *testing.T) {
	tests := []struct {
		label string
		want  Status
	}{
		{"Planning", StatusPlanning},
		{"Active", StatusActive},
		{"On Hold", StatusOnHold},
		{"Completed", StatusCompleted},
		{"", StatusActive},
		{"Weird", StatusActive},
		{"completed", StatusActive},
	}

	for _, tt := range tests {
		if got := NormalizeStatus(tt.label); got != tt.want {
			t.Errorf("NormalizeStatus(%q) = %s, want %s", tt.label, got, tt.want)
		}
	}
}

func TestIDUnmarshal(t *testing.T) {
	var p Project
	if err := json.Unmarshal([]byte(`{"id": 42, "name": "X"}`), &p); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if p.ID != "42" {
		t.Errorf("ID = %q, want 42", p.ID)
	}

	if err := json.Unmarshal([]byte(`{"id": "abc-1", "name": "X"}`), &p); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if p.ID != "abc-1" {
		t.Errorf("ID = %q, want abc-1", p.ID)
	}

	var missing Project
	if err := json.Unmarshal([]byte(`{"name": "X"}`), &missing); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if !missing.ID.IsZero() {
		t.Errorf("ID = %q, want zero", missing.ID)
	}
}

func TestIDMarshalKeepsNumbers(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`{"id":7}`, `{"id":7}`},
		{`{"id":"7"}`, `{"id":7}`},
		{`{"id":"007"}`, `{"id":"007"}`},
		{`{"id":"+5"}`, `{"id":"+5"}`},
		{`{"id":"-0"}`, `{"id":"-0"}`},
		{`{"id":"-3"}`, `{"id":-3}`},
		{`{"id":"abc-1"}`, `{"id":"abc-1"}`},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var v struct {
				ID ID `json:"id"`
			}
			if err := json.Unmarshal([]byte(tt.in), &v); err != nil {
				t.Fatalf("Unmarshal() error = %v", err)
			}
			data, err := json.Marshal(v)
			if err != nil {
				t.Fatalf("Marshal() error = %v", err)
			}
			if string(data) != tt.want {
				t.Errorf("Marshal() = %s, want %s", data, tt.want)
			}
		})
	}
}

func TestPayloadTrimmedAndValidate(t *testing.T) {
	p := Payload{
		Name:        "  Harbor  ",
		Description: "\tdredging\n",
		Status:      "On Hold",
		MapLink:     " https://maps.example.com/h ",
	}.Trimmed()

	if p.Name != "Harbor" {
		t.Errorf("Name = %q, want Harbor", p.Name)
	}
	if p.Description != "dredging" {
		t.Errorf("Description = %q, want dredging", p.Description)
	}
	if p.MapLink != "https://maps.example.com/h" {
		t.Errorf("MapLink = %q", p.MapLink)
	}
	if err := p.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}

	blank := Payload{Name: "   "}
	if err := blank.Validate(); !errors.Is(err, ErrNameRequired) {
		t.Errorf("Validate() error = %v, want ErrNameRequired", err)
	}
}

func TestProjectPayloadNormalizesStatus(t *testing.T) {
	p := Project{ID: "1", Name: "X", Status: "Archived"}
	if got := p.Payload().Status; got != "Active" {
		t.Errorf("Payload().Status = %q, want Active", got)
	}
}

func TestFormatDate(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"", "N/A"},
		{"2024-01-05T10:30:00", "Jan 5, 2024"},
		{"2024-01-05T10:30:00.123456", "Jan 5, 2024"},
		{"2024-03-15T08:00:00Z", "Mar 15, 2024"},
		{"2024-12-31", "Dec 31, 2024"},
		{"last tuesday", "last tuesday"},
	}

	for _, tt := range tests {
		if got := FormatDate(tt.raw); got != tt.want {
			t.Errorf("FormatDate(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}
