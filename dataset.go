package rpametrics

import (
	"context"
	"time"
)

// Loader loads a Dataset from its source.
type Loader interface {
	Load(ctx context.Context) (*Dataset, error)
}

// Dataset is the loaded, read-only content of the data files.
type Dataset struct {
	Runs     []Run              `json:"-"`
	Savings  *FunctionalSavings `json:"savings,omitempty"`
	Source   string             `json:"source"`
	LoadedAt time.Time          `json:"loaded_at"`
	Warnings []string           `json:"warnings,omitempty"`
}

// NewDataset normalizes the runs and wraps them in a Dataset.
func NewDataset(source string, runs []Run) *Dataset {
	for i := range runs {
		runs[i].Normalize()
	}
	return &Dataset{Runs: runs, Source: source, LoadedAt: time.Now()}
}

// Len returns the number of runs.
func (d *Dataset) Len() int { return len(d.Runs) }
