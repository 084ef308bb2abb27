package scanner

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/consigcody94/golden-ratio-compendium/services/levels"
	"github.com/consigcody94/golden-ratio-compendium/services/market"
)

// JobStatus tracks a scan job through its lifecycle
type JobStatus int

const (
	JobPending   JobStatus = iota // queued, no worker has started it
	JobRunning                    // workers are scanning symbols
	JobCompleted                  // all symbols processed
	JobFailed                     // every symbol failed
)

func (s JobStatus) String() string {
	switch s {
	case JobPending:
		return "PENDING"
	case JobRunning:
		return "RUNNING"
	case JobCompleted:
		return "COMPLETED"
	case JobFailed:
		return "FAILED"
	default:
		return "UNKNOWN"
	}
}

// MarshalJSON renders the status as its string form.
func (s JobStatus) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

// ScanRequest asks for level analysis across a set of symbols. Lookback
// overrides the service default swing window when at least 2.
type ScanRequest struct {
	Symbols  []string `json:"symbols"`
	Lookback int      `json:"lookback"`
}

// SymbolResult is the per-symbol outcome of a scan. Error is set and the
// remaining fields are zero when the symbol could not be analyzed.
type SymbolResult struct {
	Symbol          string          `json:"symbol"`
	Swing           market.Swing    `json:"swing"`
	Analysis        levels.Analysis `json:"analysis"`
	LastClose       decimal.Decimal `json:"last_close"`
	NearestLabel    string          `json:"nearest_label"`
	NearestDistance decimal.Decimal `json:"nearest_distance"`
	InGoldenPocket  bool            `json:"in_golden_pocket"`
	Error           string          `json:"error,omitempty"`
}

// Job tracks one submitted scan.
type Job struct {
	ID        string         `json:"id"`
	Status    JobStatus      `json:"status"`
	Submitted time.Time      `json:"submitted"`
	Started   time.Time      `json:"started,omitempty"`
	Completed time.Time      `json:"completed,omitempty"`
	Results   []SymbolResult `json:"results,omitempty"`
	Error     string         `json:"error,omitempty"`
}

// Stats summarizes the job table by status.
type Stats struct {
	Pending   int `json:"pending"`
	Running   int `json:"running"`
	Completed int `json:"completed"`
	Failed    int `json:"failed"`
}
