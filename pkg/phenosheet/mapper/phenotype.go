package mapper

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/phenokit/phenosheet/pkg/phenosheet/models"
)

// hpoCellRe parses phenotype cells of the forms "HP:0000252", "0000252",
// "252", and "Microcephaly (HP:0000252)": an optional label followed by
// digits with an optional HP prefix and parentheses.
var hpoCellRe = regexp.MustCompile(`(?i)^\s*(.*?)\s*\(?(?:HP:?)?(\d+)\)?\s*$`)

// visitRe matches visit timestamps such as "T0", "T3".
var visitRe = regexp.MustCompile(`(?i)^T(\d+)$`)

// dateFormats are tried in order; first match wins.
var dateFormats = []string{"2006-01-02", "2006/01/02", "02.01.2006"}

// Derived fields the builder reads alongside the canonical ones.
const (
	fieldHPOLabel       = "hpo_label"
	fieldFrequencyID    = "frequency_id"
	fieldFrequencyLabel = "frequency_label"
)

// parsePhenotypeRow validates and coerces one phenotype row in place.
func (m *Mapper) parsePhenotypeRow(rec *models.RowRecord, raw map[string]string) {
	if !requirePatientID(rec, raw) {
		return
	}

	m.resolveHPOCell(rec, raw[models.FieldHPOID])

	date, ok := NormalizeObservationDate(raw[models.FieldDateOfObservation])
	if !ok {
		rec.AddIssue(models.FieldDateOfObservation, raw[models.FieldDateOfObservation],
			ReasonUnparseableDate, models.SeverityError)
		rec.Excluded = true
	} else {
		rec.Fields[models.FieldDateOfObservation] = date
	}

	// status defaults to observed; a malformed value nulls the field and
	// keeps the row
	if s, present := raw[models.FieldStatus]; present && s != "" {
		if v, ok := parseBool(s); ok {
			rec.Fields[models.FieldStatus] = strconv.FormatBool(v)
		} else {
			rec.AddIssue(models.FieldStatus, s, "unrecognized status value", models.SeverityWarning)
		}
	}

	if f, present := raw[models.FieldFrequency]; present && f != "" {
		if oc, ok := FrequencyModifier(f); ok {
			rec.Fields[fieldFrequencyID] = oc.ID
			rec.Fields[fieldFrequencyLabel] = oc.Label
		} else {
			rec.AddIssue(models.FieldFrequency, f, "unknown frequency modifier", models.SeverityWarning)
		}
	}
}

// resolveHPOCell parses the HPO cell and resolves it against the index:
// exact id, then label/synonym. Obsolete ids substitute their replacement
// with a recorded issue; unresolvable ids exclude the row.
func (m *Mapper) resolveHPOCell(rec *models.RowRecord, cell string) {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		rec.AddIssue(models.FieldHPOID, "", ReasonMissingRequired, models.SeverityError)
		rec.Excluded = true
		return
	}

	ref := cell
	label := ""
	if mtch := hpoCellRe.FindStringSubmatch(cell); mtch != nil {
		if n, err := strconv.Atoi(mtch[2]); err == nil {
			label = strings.TrimSpace(mtch[1])
			ref = fmt.Sprintf("HP:%07d", n)
		}
	}

	res := m.index.Resolve(ref)
	if res.Term == nil && label != "" {
		// a label alone may still resolve when the digits were bogus
		res = m.index.Resolve(label)
	}
	if res.Term == nil {
		rec.AddIssue(models.FieldHPOID, cell, ReasonUnresolvableOntoID, models.SeverityError)
		rec.Excluded = true
		return
	}
	if res.Substituted {
		rec.AddIssue(models.FieldHPOID, res.ObsoleteID,
			fmt.Sprintf("%s; replaced by %s", ReasonObsoleteOntoID, res.Term.ID),
			models.SeverityWarning)
	}
	if label != "" && !strings.EqualFold(label, res.Term.Label) {
		rec.AddIssue(models.FieldHPOID, label, ReasonLabelMismatch, models.SeverityWarning)
	}

	rec.Fields[models.FieldHPOID] = res.Term.ID
	rec.Fields[fieldHPOLabel] = res.Term.Label
}

// NormalizeObservationDate coerces an observation date: ISO-style formats
// first (emitted canonically as YYYY-MM-DD), then visit timestamps ("T3";
// a bare integer becomes "T<n>").
func NormalizeObservationDate(raw string) (string, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", false
	}
	for _, layout := range dateFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("2006-01-02"), true
		}
	}
	if mtch := visitRe.FindStringSubmatch(s); mtch != nil {
		n, _ := strconv.Atoi(mtch[1])
		return fmt.Sprintf("T%d", n), true
	}
	if n, err := strconv.Atoi(s); err == nil && n >= 0 {
		return fmt.Sprintf("T%d", n), true
	}
	return "", false
}
