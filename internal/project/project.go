// Package project defines the Project record exchanged with the board API.
package project

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"
)

// ErrNameRequired is returned when a payload has a blank name.
var ErrNameRequired = errors.New("project name is required")

// Status is one of the four fixed board buckets.
type Status int

const (
	StatusPlanning Status = iota
	StatusActive
	StatusOnHold
	StatusCompleted
)

// Statuses lists the buckets in board order.
var Statuses = []Status{StatusPlanning, StatusActive, StatusOnHold, StatusCompleted}

func (s Status) String() string {
	switch s {
	case StatusPlanning:
		return "Planning"
	case StatusActive:
		return "Active"
	case StatusOnHold:
		return "On Hold"
	case StatusCompleted:
		return "Completed"
	default:
		return "Unknown"
	}
}

// ParseStatus maps a wire label to a Status. Labels are case sensitive,
// matching what the API stores.
func ParseStatus(label string) (Status, bool) {
	for _, s := range Statuses {
		if s.String() == label {
			return s, true
		}
	}
	return StatusActive, false
}

// NormalizeStatus returns the bucket for a raw label. Missing or
// unrecognized labels fall back to Active.
func NormalizeStatus(label string) Status {
	s, _ := ParseStatus(label)
	return s
}

// ID is the backend-assigned project identifier. It is opaque to the
// client; the decoder accepts both JSON numbers and strings.
type ID string

// IsZero reports whether no id has been assigned.
func (id ID) IsZero() bool { return id == "" }

func (id ID) String() string { return string(id) }

// UnmarshalJSON implements json.Unmarshaler.
func (id *ID) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = ID(n.String())
	return nil
}

// MarshalJSON writes canonical integer ids as numbers so the backend sees
// the same shape it produced. Anything else, "007" included, stays a string.
func (id ID) MarshalJSON() ([]byte, error) {
	if n, err := strconv.ParseInt(string(id), 10, 64); err == nil && strconv.FormatInt(n, 10) == string(id) {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

// Project is a single tracked initiative as returned by the API.
type Project struct {
	ID                   ID     `json:"id"`
	Name                 string `json:"name"`
	Description          string `json:"description"`
	Status               string `json:"status"`
	MapLink              string `json:"map_link"`
	ResourcesLink        string `json:"resources_link"`
	ProposalBriefingLink string `json:"proposal_briefing_link"`
	CreatedDate          string `json:"created_date"`
	UpdatedDate          string `json:"updated_date"`
}

// Bucket returns the board column this project belongs to.
func (p Project) Bucket() Status {
	return NormalizeStatus(p.Status)
}

// Payload returns the editable fields of p as a request body.
func (p Project) Payload() Payload {
	return Payload{
		Name:                 p.Name,
		Description:          p.Description,
		Status:               p.Bucket().String(),
		MapLink:              p.MapLink,
		ResourcesLink:        p.ResourcesLink,
		ProposalBriefingLink: p.ProposalBriefingLink,
	}
}

// Payload is the body of create and update requests.
type Payload struct {
	Name                 string `json:"name"`
	Description          string `json:"description"`
	Status               string `json:"status"`
	MapLink              string `json:"map_link"`
	ResourcesLink        string `json:"resources_link"`
	ProposalBriefingLink string `json:"proposal_briefing_link"`
}

// Trimmed returns a copy with surrounding whitespace removed from every
// free-text field. Status is chosen from a fixed list and left as is.
func (p Payload) Trimmed() Payload {
	p.Name = strings.TrimSpace(p.Name)
	p.Description = strings.TrimSpace(p.Description)
	p.MapLink = strings.TrimSpace(p.MapLink)
	p.ResourcesLink = strings.TrimSpace(p.ResourcesLink)
	p.ProposalBriefingLink = strings.TrimSpace(p.ProposalBriefingLink)
	return p
}

// Validate checks the one required field.
func (p Payload) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrNameRequired
	}
	return nil
}

// dateLayouts are tried in order when parsing server timestamps. The
// reference backend writes ISO 8601 timestamps without a zone.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// DateLayout is the display format for card dates, e.g. "Jan 5, 2024".
const DateLayout = "Jan 2, 2006"

// FormatDate renders a server timestamp for display. Empty input yields
// "N/A"; input that does not parse is returned unchanged.
func FormatDate(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "N/A"
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format(DateLayout)
		}
	}
	return raw
}
