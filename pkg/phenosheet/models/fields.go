package models

// Canonical field names. Raw spreadsheet headers are mapped onto these by
// the header normalizer; everything downstream works in terms of them.
const (
	FieldPatientID         = "patient_id"
	FieldHPOID             = "hpo_id"
	FieldDateOfObservation = "date_of_observation"
	FieldStatus            = "status"
	FieldFrequency         = "frequency"

	FieldContactEmail  = "contact_email"
	FieldPhasing       = "phasing"
	FieldChromosome    = "chromosome"
	FieldStartPosition = "start_position"
	FieldEndPosition   = "end_position"
	FieldReference     = "reference"
	FieldAlternate     = "alternate"
	FieldGeneSymbol    = "gene_symbol"
	FieldHGVSg         = "hgvsg"
	FieldHGVSc         = "hgvsc"
	FieldHGVSp         = "hgvsp"
	FieldZygosity      = "zygosity"
	FieldInheritance   = "inheritance"

	// FieldUnknown marks a column whose header did not map to any
	// canonical field. The column is kept positionally so row data stays
	// aligned.
	FieldUnknown = "unknown"
)

// Category is the classification assigned to a sheet.
type Category string

const (
	CategoryGenotype  Category = "genotype"
	CategoryPhenotype Category = "phenotype"
	CategoryUnknown   Category = "unknown"
)

// NormalizedHeader maps raw column position to canonical field name.
// Unmapped columns hold FieldUnknown.
type NormalizedHeader struct {
	// Fields is indexed by column position.
	Fields []string
	// Duplicates records earlier occurrences that lost a
	// later-column-wins collision, keyed by canonical field.
	Duplicates map[string]int
}

// Index returns the column position of the given canonical field, or -1.
// Under the later-column-wins policy the winning (rightmost) column is
// returned.
func (h NormalizedHeader) Index(field string) int {
	for i := len(h.Fields) - 1; i >= 0; i-- {
		if h.Fields[i] == field {
			return i
		}
	}
	return -1
}

// FieldSet returns the set of recognized canonical fields present.
func (h NormalizedHeader) FieldSet() map[string]struct{} {
	set := make(map[string]struct{}, len(h.Fields))
	for _, f := range h.Fields {
		if f != FieldUnknown {
			set[f] = struct{}{}
		}
	}
	return set
}

// SheetClassification is the classifier's verdict for one sheet.
type SheetClassification struct {
	SheetName string   `json:"sheetName"`
	Category  Category `json:"category"`
	// MatchedRequiredFields and MissingRequiredFields describe the
	// required set of the assigned category; for unknown sheets they
	// describe the closer candidate.
	MatchedRequiredFields []string `json:"matchedRequiredFields"`
	MissingRequiredFields []string `json:"missingRequiredFields"`
	// GenotypeScore and PhenotypeScore are the matched proportions of
	// each candidate's required set, recorded for the audit.
	GenotypeScore  float64 `json:"genotypeScore"`
	PhenotypeScore float64 `json:"phenotypeScore"`
}
