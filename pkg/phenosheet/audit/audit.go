// Package audit produces a lightweight per-sheet summary of header
// coverage, classification outcome, and required-column gaps, without
// running row-level validation. It never fails on malformed content;
// malformed content is itself a finding.
package audit

import (
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"github.com/phenokit/phenosheet/pkg/phenosheet/classify"
	"github.com/phenokit/phenosheet/pkg/phenosheet/header"
	"github.com/phenokit/phenosheet/pkg/phenosheet/models"
)

// SheetSummary is the audit result for one sheet.
type SheetSummary struct {
	SheetName        string                     `json:"sheetName"`
	RecognizedCols   int                        `json:"recognizedColumns"`
	UnknownCols      int                        `json:"unknownColumns"`
	DuplicateHeaders []string                   `json:"duplicateHeaders,omitempty"`
	Classification   models.SheetClassification `json:"classification"`
	// VariantColumnGap flags a genotype-looking sheet (base columns
	// present) that carries neither full raw coordinates nor any HGVS
	// column.
	VariantColumnGap bool `json:"variantColumnGap,omitempty"`
}

// Report is the audit over a whole workbook.
type Report struct {
	WorkbookName string         `json:"workbookName"`
	Sheets       []SheetSummary `json:"sheets"`
}

// Run audits every sheet of the workbook, including ones that classify as
// unknown.
func Run(wb *models.Workbook, norm *header.Normalizer) Report {
	report := Report{WorkbookName: wb.Name}
	for _, sheet := range wb.Sheets {
		nh := norm.Normalize(sheet.HeaderRow())
		present := nh.FieldSet()

		s := SheetSummary{
			SheetName:      sheet.Name,
			Classification: classify.Classify(sheet.Name, nh),
		}
		for _, f := range nh.Fields {
			if f == models.FieldUnknown {
				s.UnknownCols++
			} else {
				s.RecognizedCols++
			}
		}
		for f := range nh.Duplicates {
			s.DuplicateHeaders = append(s.DuplicateHeaders, f)
		}
		sort.Strings(s.DuplicateHeaders)

		if classify.ContainsAll(classify.GenotypeBase, present) &&
			!classify.ContainsAll(classify.RawVariantColumns, present) &&
			!classify.ContainsAny(classify.HGVSVariantColumns, present) {
			s.VariantColumnGap = true
		}

		report.Sheets = append(report.Sheets, s)
	}
	return report
}

// WriteTable renders the report as an aligned text table.
func (r Report) WriteTable(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SHEET\tCATEGORY\tRECOGNIZED\tUNKNOWN\tMISSING REQUIRED\tFLAGS")
	for _, s := range r.Sheets {
		flags := ""
		if len(s.DuplicateHeaders) > 0 {
			flags += "duplicate-headers "
		}
		if s.VariantColumnGap {
			flags += "missing-variant-columns"
		}
		missing := "-"
		if len(s.Classification.MissingRequiredFields) > 0 {
			missing = fmt.Sprintf("%v", s.Classification.MissingRequiredFields)
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%s\t%s\n",
			s.SheetName, s.Classification.Category, s.RecognizedCols, s.UnknownCols, missing, flags)
	}
	return tw.Flush()
}
