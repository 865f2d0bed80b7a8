package entities

import (
	"time"
)

type ImportStatus string

const (
	ImportStatusRunning   ImportStatus = "running"
	ImportStatusCompleted ImportStatus = "completed"
	ImportStatusDegraded  ImportStatus = "degraded"
	ImportStatusFailed    ImportStatus = "failed"
)

// ImportRun records the progress and outcome of one archetype import. The
// counters mirror importers.Result: Parsed is what the providers produced
// (the live progress count), Imported is what was stored.
type ImportRun struct {
	ID            uint         `gorm:"primaryKey" json:"id"`
	Status        ImportStatus `gorm:"size:20;index" json:"status"`
	Trigger       string       `gorm:"size:50" json:"trigger"`
	Found         int          `json:"found"`
	Parsed        int          `json:"parsed"`
	Unique        int          `json:"unique"`
	Imported      int          `json:"imported"`
	Deleted       int          `json:"deleted"`
	FailedSources string       `gorm:"type:text" json:"failed_sources,omitempty"`
	Error         string       `gorm:"type:text" json:"error,omitempty"`
	StartedAt     time.Time    `json:"started_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
	CompletedAt   *time.Time   `json:"completed_at,omitempty"`
}

func (ImportRun) TableName() string {
	return "import_runs"
}
