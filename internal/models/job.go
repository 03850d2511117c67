package models

import "time"

// WorkType is the normalized work arrangement of a listing.
type WorkType string

const (
	WorkRemote WorkType = "Remote"
	WorkOnsite WorkType = "Onsite"
	WorkHybrid WorkType = "Hybrid"
)

// WorkTypes lists the variants in display order.
var WorkTypes = []WorkType{WorkRemote, WorkOnsite, WorkHybrid}

// Status is the hiring state of a listing.
type Status string

const (
	StatusOpen   Status = "Open"
	StatusClosed Status = "Closed"
)

// Placeholder is shown for text fields the source did not provide.
const Placeholder = "—"

// Listing is the display-ready vacancy derived from one RawJobRecord.
type Listing struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Company      string    `json:"company"`
	LogoURL      string    `json:"logo_url"`
	Location     string    `json:"location"`
	WorkType     WorkType  `json:"type"`
	Status       Status    `json:"status"`
	Salary       string    `json:"salary"`
	Description  string    `json:"description"`
	Requirements []string  `json:"requirements"`
	Posted       string    `json:"posted"`
	PostedAt     time.Time `json:"posted_at,omitzero"`
}
