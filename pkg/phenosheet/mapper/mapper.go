// Package mapper turns classified sheet rows into validated row records and
// phenopacket output records. Rows are processed independently: a bad row
// accumulates issues and is possibly excluded, but never disturbs its
// siblings.
package mapper

import (
	"regexp"
	"strings"

	"github.com/phenokit/phenosheet/pkg/phenosheet/models"
	"github.com/phenokit/phenosheet/pkg/phenosheet/ontology"
)

var validIDRe = regexp.MustCompile(`^[A-Za-z0-9]+$`)

// Issue reasons referenced from tests and diagnostics output.
const (
	ReasonMissingRequired    = "missing required field"
	ReasonUnresolvableOntoID = "unresolvable ontology id"
	ReasonObsoleteOntoID     = "obsolete ontology id"
	ReasonLabelMismatch      = "label does not match ontology term"
	ReasonUnparseableDate    = "unparseable date"
	ReasonInvalidPatientID   = "invalid patient id"
)

// Mapper validates rows of a classified sheet against the ontology index
// and builds one phenopacket per admissible row.
type Mapper struct {
	index          *ontology.Index
	strictVariants bool
}

// New returns a Mapper over the given read-only ontology index.
// strictVariants escalates raw-vs-HGVS coordinate mismatches from warnings
// to errors.
func New(index *ontology.Index, strictVariants bool) *Mapper {
	return &Mapper{index: index, strictVariants: strictVariants}
}

// SheetResult is the outcome of mapping one sheet.
type SheetResult struct {
	Records []models.RowRecord
	Packets []models.Phenopacket
}

// MapSheet walks every data row of a classified sheet. Unknown sheets map
// to an empty result.
func (m *Mapper) MapSheet(sheet models.Sheet, nh models.NormalizedHeader, category models.Category) SheetResult {
	var out SheetResult
	for i, row := range sheet.DataRows() {
		raw := extractRow(nh, row)
		rec := models.RowRecord{
			SheetName: sheet.Name,
			Row:       i + 1,
			Fields:    make(map[string]string),
		}

		switch category {
		case models.CategoryPhenotype:
			m.parsePhenotypeRow(&rec, raw)
		case models.CategoryGenotype:
			m.parseGenotypeRow(&rec, raw)
		default:
			continue
		}

		if !rec.Excluded {
			out.Packets = append(out.Packets, m.build(rec, category))
		}
		out.Records = append(out.Records, rec)
	}
	return out
}

// extractRow pulls raw cell values into a canonical-field map. Under the
// later-column-wins policy a field duplicated across columns takes the
// rightmost value. Unknown columns are skipped; row alignment is positional.
func extractRow(nh models.NormalizedHeader, row []string) map[string]string {
	raw := make(map[string]string)
	for i, field := range nh.Fields {
		if field == models.FieldUnknown || i >= len(row) {
			continue
		}
		raw[field] = strings.TrimSpace(row[i])
	}
	return raw
}

// requirePatientID validates and normalizes the subject identifier. The
// same raw identifier always yields the same canonical id, so downstream
// merge by id is stable.
func requirePatientID(rec *models.RowRecord, raw map[string]string) bool {
	id := strings.TrimSpace(raw[models.FieldPatientID])
	if id == "" {
		rec.AddIssue(models.FieldPatientID, "", ReasonMissingRequired, models.SeverityError)
		rec.Excluded = true
		return false
	}
	if !validIDRe.MatchString(id) {
		rec.AddIssue(models.FieldPatientID, id, ReasonInvalidPatientID, models.SeverityError)
		rec.Excluded = true
		return false
	}
	rec.Fields[models.FieldPatientID] = id
	return true
}

// parseBool interprets the permissive boolean vocabulary found in clinical
// spreadsheets.
func parseBool(s string) (value, ok bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "yes", "y", "1", "observed", "present":
		return true, true
	case "false", "no", "n", "0", "excluded", "absent":
		return false, true
	}
	return false, false
}
