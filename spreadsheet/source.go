package spreadsheet

import (
	"context"
	"fmt"

	"github.com/etnz/rpametrics"
	"github.com/rs/zerolog"
)

// Source loads the dataset from the run file and the optional functional
// savings file.
type Source struct {
	DataFile    string
	SavingsFile string // optional
	Sheet       string // optional, first sheet when empty
}

// Load reads both files. A missing run file is ErrNotFound, a run file
// without the expected columns is a *MissingColumnsError.
func (s Source) Load(ctx context.Context) (*rpametrics.Dataset, error) {
	log := zerolog.Ctx(ctx)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	runs, issues, err := ReadRuns(s.DataFile, s.Sheet)
	if err != nil {
		return nil, err
	}
	ds := rpametrics.NewDataset(s.DataFile, runs)
	for _, issue := range issues {
		ds.Warnings = append(ds.Warnings, issue.String())
	}
	log.Info().Str("file", s.DataFile).Int("runs", len(runs)).Int("issues", len(issues)).Msg("runs loaded")

	if s.SavingsFile != "" {
		fs, err := ReadSavings(s.SavingsFile, "")
		if err != nil {
			return nil, fmt.Errorf("functional savings: %w", err)
		}
		ds.Savings = fs
		log.Info().Str("file", s.SavingsFile).Int("categories", len(fs.Rows)).Int("fiscal_years", len(fs.Years)).Msg("functional savings loaded")
	}
	return ds, nil
}

var _ rpametrics.Loader = Source{}
