// Package header canonicalizes raw spreadsheet column headers: cleaning
// (case, whitespace, punctuation) followed by a many-to-one synonym lookup
// into the controlled vocabulary of canonical fields.
package header

import (
	"regexp"
	"strings"

	"github.com/phenokit/phenosheet/pkg/phenosheet/models"
)

var (
	parenRe = regexp.MustCompile(`\s*\(.*?\)`)
	sepRe   = regexp.MustCompile(`[\s\-./:,]+`)
)

// Clean normalizes a raw header string: trim, drop any parenthesized
// suffix, lowercase, collapse whitespace/punctuation runs to a single
// underscore.
func Clean(raw string) string {
	s := strings.TrimSpace(raw)
	s = parenRe.ReplaceAllString(s, "")
	s = strings.ToLower(s)
	s = sepRe.ReplaceAllString(s, "_")
	return strings.Trim(s, "_")
}

// defaultSynonyms maps cleaned header strings to canonical fields. Cleaned
// strings that already equal a canonical field need no entry.
var defaultSynonyms = map[string]string{
	// subject identifier
	"patient":       models.FieldPatientID,
	"patient_no":    models.FieldPatientID,
	"subject_id":    models.FieldPatientID,
	"individual_id": models.FieldPatientID,
	"sample_id":     models.FieldPatientID,
	"id":            models.FieldPatientID,

	// phenotype sheet
	"hpo":              models.FieldHPOID,
	"hpo_term":         models.FieldHPOID,
	"hpo_code":         models.FieldHPOID,
	"phenotype_term":   models.FieldHPOID,
	"timestamp":        models.FieldDateOfObservation,
	"onset":            models.FieldDateOfObservation,
	"onset_date":       models.FieldDateOfObservation,
	"observation_date": models.FieldDateOfObservation,
	"observed":         models.FieldStatus,
	"present":          models.FieldStatus,

	// genotype sheet
	"chrom":               models.FieldChromosome,
	"chr":                 models.FieldChromosome,
	"start":               models.FieldStartPosition,
	"start_pos":           models.FieldStartPosition,
	"pos":                 models.FieldStartPosition,
	"end":                 models.FieldEndPosition,
	"end_pos":             models.FieldEndPosition,
	"ref":                 models.FieldReference,
	"reference_allele":    models.FieldReference,
	"alt":                 models.FieldAlternate,
	"alternate_allele":    models.FieldAlternate,
	"gene":                models.FieldGeneSymbol,
	"symbol":              models.FieldGeneSymbol,
	"hgvs_g":              models.FieldHGVSg,
	"hgvs_c":              models.FieldHGVSc,
	"hgvs_p":              models.FieldHGVSp,
	"mode_of_inheritance": models.FieldInheritance,
	"email":               models.FieldContactEmail,
	"contact":             models.FieldContactEmail,
}

// canonical is the set of field names a cleaned header may map to directly.
var canonical = map[string]struct{}{
	models.FieldPatientID:         {},
	models.FieldHPOID:             {},
	models.FieldDateOfObservation: {},
	models.FieldStatus:            {},
	models.FieldFrequency:         {},
	models.FieldContactEmail:      {},
	models.FieldPhasing:           {},
	models.FieldChromosome:        {},
	models.FieldStartPosition:     {},
	models.FieldEndPosition:       {},
	models.FieldReference:         {},
	models.FieldAlternate:         {},
	models.FieldGeneSymbol:        {},
	models.FieldHGVSg:             {},
	models.FieldHGVSc:             {},
	models.FieldHGVSp:             {},
	models.FieldZygosity:          {},
	models.FieldInheritance:       {},
}

// Normalizer resolves raw headers against the built-in synonym table plus
// any overlay loaded from configuration.
type Normalizer struct {
	synonyms map[string]string
}

// NewNormalizer returns a Normalizer using the built-in synonym table,
// extended (and overridden) by the given overlay of cleaned-header →
// canonical-field entries. A nil overlay is fine.
func NewNormalizer(overlay map[string]string) *Normalizer {
	syn := make(map[string]string, len(defaultSynonyms)+len(overlay))
	for k, v := range defaultSynonyms {
		syn[k] = v
	}
	for k, v := range overlay {
		syn[Clean(k)] = v
	}
	return &Normalizer{synonyms: syn}
}

// Resolve maps a single raw header to a canonical field, or FieldUnknown.
func (n *Normalizer) Resolve(raw string) string {
	cleaned := Clean(raw)
	if cleaned == "" {
		return models.FieldUnknown
	}
	if target, ok := n.synonyms[cleaned]; ok {
		return target
	}
	if _, ok := canonical[cleaned]; ok {
		return cleaned
	}
	return models.FieldUnknown
}

// Normalize maps a raw header row to a NormalizedHeader. Unrecognized
// headers stay positional as FieldUnknown. When two raw headers resolve to
// the same canonical field, the later column wins and the earlier position
// is recorded in Duplicates.
func (n *Normalizer) Normalize(raw []string) models.NormalizedHeader {
	nh := models.NormalizedHeader{
		Fields:     make([]string, len(raw)),
		Duplicates: make(map[string]int),
	}
	seen := make(map[string]int)
	for i, h := range raw {
		field := n.Resolve(h)
		nh.Fields[i] = field
		if field == models.FieldUnknown {
			continue
		}
		if prev, ok := seen[field]; ok {
			nh.Duplicates[field] = prev
		}
		seen[field] = i
	}
	return nh
}
