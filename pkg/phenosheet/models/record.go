package models

// Severity grades a diagnostic finding.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// RowIssue describes a single field-level finding while validating a row.
type RowIssue struct {
	Field    string   `json:"field"`
	RawValue string   `json:"rawValue"`
	Reason   string   `json:"reason"`
	Severity Severity `json:"severity"`
}

// RowRecord is one data row after normalization: canonical field → coerced
// value, plus the issues found along the way. A row with issues is not
// discarded; admissibility is decided per field by the mapper.
type RowRecord struct {
	SheetName string `json:"sheetName"`
	// Row is the 1-based data row number (header row excluded).
	Row    int               `json:"row"`
	Fields map[string]string `json:"fields"`
	Issues []RowIssue        `json:"issues,omitempty"`
	// Excluded is set when a required field is absent or unresolvable;
	// the row is kept for diagnostics but produces no output record.
	Excluded bool `json:"excluded"`
}

// AddIssue appends a finding to the row.
func (r *RowRecord) AddIssue(field, raw, reason string, sev Severity) {
	r.Issues = append(r.Issues, RowIssue{Field: field, RawValue: raw, Reason: reason, Severity: sev})
}

// SheetIssue is a sheet-level finding (duplicate headers, unknown
// classification, variant-column gaps).
type SheetIssue struct {
	SheetName string   `json:"sheetName"`
	Reason    string   `json:"reason"`
	Severity  Severity `json:"severity"`
}
