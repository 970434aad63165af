// Package phenosheet orchestrates the conversion pipeline: header
// normalization, sheet classification, row validation against an ontology
// index, and phenopacket construction, with per-row and per-sheet
// diagnostics collected along the way.
package phenosheet

import (
	"time"

	"go.uber.org/zap"
)

// Options configures a pipeline run.
type Options struct {
	// StrictVariants treats raw-vs-HGVS coordinate mismatches as errors
	// instead of warnings.
	StrictVariants bool
	// Synonyms extends the built-in header synonym table
	// (raw header → canonical field).
	Synonyms map[string]string
	// Logger receives per-sheet progress; nil means no logging.
	Logger *zap.Logger
	// Now supplies the metadata creation timestamp. Injectable so runs
	// over unchanged inputs are byte-identical in tests.
	Now func() time.Time
}

// DefaultOptions returns default pipeline options.
func DefaultOptions() Options {
	return Options{}
}

func (o Options) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}

func (o Options) now() time.Time {
	if o.Now == nil {
		return time.Now().UTC()
	}
	return o.Now()
}
