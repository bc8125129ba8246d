package domain

import (
	"time"
)

type SaleStatus string

const (
	StatusWon  SaleStatus = "won"
	StatusLost SaleStatus = "lost"
	StatusOpen SaleStatus = "open"
)

// Sentinel values used when the source leaves a field blank.
const (
	UnassignedAgent = "Unassigned"
	UnknownClient   = "Unknown"
	UnknownValue    = "unknown"
)

// SaleRecord is one normalized lead/sale row. Records are immutable
// once constructed; a snapshot is replaced wholesale, never patched.
type SaleRecord struct {
	ID               string     `json:"id"`
	Agent            string     `json:"agent"`
	ClientName       string     `json:"client_name"`
	Phone            string     `json:"phone"`
	Status           SaleStatus `json:"status"`
	Stage            string     `json:"stage"`
	Revenue          float64    `json:"revenue"`
	RegistrationDate time.Time  `json:"registration_date"`
	ResolutionDate   *time.Time `json:"resolution_date,omitempty"`
	DaysToClose      *float64   `json:"days_to_close,omitempty"`

	Attribution string `json:"attribution"`
	Location    string `json:"location"`
	Solution    string `json:"solution"`
	LossReason  string `json:"loss_reason"`

	CallsOutgoing       int     `json:"calls_outgoing"`
	CallsIncomingFailed int     `json:"calls_incoming_failed"`
	WhatsappAnswered    int     `json:"whatsapp_answered"`
	CallDuration        float64 `json:"call_duration"`
}

func (r SaleRecord) IsWon() bool {
	return r.Status == StatusWon
}

func (r SaleRecord) IsLost() bool {
	return r.Status == StatusLost
}

// true while the record has not been resolved either way
func (r SaleRecord) IsOpen() bool {
	return r.Status == StatusOpen
}

// RawRow is one CSV row keyed by header label, before normalization.
type RawRow map[string]string

// Snapshot is the full set of normalized records as of the most
// recent successful fetch, plus the fetch timestamp.
type Snapshot struct {
	Records   []SaleRecord `json:"records"`
	FetchedAt time.Time    `json:"fetched_at"`
}
