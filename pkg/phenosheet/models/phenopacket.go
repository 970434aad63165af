package models

// The types below cover the subset of the GA4GH Phenopacket v2 schema this
// pipeline emits. JSON field names follow the proto JSON form so the output
// interoperates with phenopacket tooling.

// OntologyClass is an ontology term reference (id CURIE plus label).
type OntologyClass struct {
	ID    string `json:"id"`
	Label string `json:"label,omitempty"`
}

// TimeElement holds either an ISO timestamp or an opaque visit label such
// as "T3".
type TimeElement struct {
	Timestamp string `json:"timestamp,omitempty"`
	// OntologyClass carries non-timestamp onsets (visit labels).
	OntologyClass *OntologyClass `json:"ontologyClass,omitempty"`
}

// PhenotypicFeature is one observed (or explicitly excluded) phenotype.
type PhenotypicFeature struct {
	Type      OntologyClass   `json:"type"`
	Excluded  bool            `json:"excluded,omitempty"`
	Onset     *TimeElement    `json:"onset,omitempty"`
	Modifiers []OntologyClass `json:"modifiers,omitempty"`
}

// Individual identifies the subject of a packet.
type Individual struct {
	ID string `json:"id"`
}

// Expression is an HGVS (or similar) expression on a variation descriptor.
type Expression struct {
	Syntax string `json:"syntax,omitempty"`
	Value  string `json:"value"`
}

// GeneDescriptor names the gene context of a variant.
type GeneDescriptor struct {
	ValueID string `json:"valueId,omitempty"`
	Symbol  string `json:"symbol,omitempty"`
}

// VcfRecord carries the raw genomic coordinates of a variant.
type VcfRecord struct {
	GenomeAssembly string `json:"genomeAssembly,omitempty"`
	Chrom          string `json:"chrom"`
	Pos            int    `json:"pos"`
	Ref            string `json:"ref"`
	Alt            string `json:"alt"`
}

// VariationDescriptor describes one variant call.
type VariationDescriptor struct {
	ID           string          `json:"id,omitempty"`
	GeneContext  *GeneDescriptor `json:"geneContext,omitempty"`
	Expressions  []Expression    `json:"expressions,omitempty"`
	VcfRecord    *VcfRecord      `json:"vcfRecord,omitempty"`
	AllelicState *OntologyClass  `json:"allelicState,omitempty"`
}

// VariantInterpretation wraps a variation descriptor.
type VariantInterpretation struct {
	VariationDescriptor VariationDescriptor `json:"variationDescriptor"`
}

// GenomicInterpretation ties a variant interpretation to a subject.
type GenomicInterpretation struct {
	SubjectOrBiosampleID  string                `json:"subjectOrBiosampleId"`
	InterpretationStatus  string                `json:"interpretationStatus"`
	VariantInterpretation VariantInterpretation `json:"variantInterpretation"`
}

// Diagnosis groups genomic interpretations.
type Diagnosis struct {
	GenomicInterpretations []GenomicInterpretation `json:"genomicInterpretations,omitempty"`
}

// Interpretation is one interpretation entry on a packet.
type Interpretation struct {
	ID             string    `json:"id"`
	ProgressStatus string    `json:"progressStatus"`
	Diagnosis      Diagnosis `json:"diagnosis"`
}

// Resource identifies an ontology release used by a packet.
type Resource struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	URL       string `json:"url,omitempty"`
	Version   string `json:"version,omitempty"`
	Namespace string `json:"namespacePrefix,omitempty"`
}

// MetaData records provenance for a packet.
type MetaData struct {
	Created   string     `json:"created,omitempty"`
	CreatedBy string     `json:"createdBy,omitempty"`
	Resources []Resource `json:"resources,omitempty"`
}

// Phenopacket is the assembled output record: one per admissible row, or
// one per subject after merging by subject id.
type Phenopacket struct {
	ID                 string              `json:"id"`
	Subject            Individual          `json:"subject"`
	PhenotypicFeatures []PhenotypicFeature `json:"phenotypicFeatures,omitempty"`
	Interpretations    []Interpretation    `json:"interpretations,omitempty"`
	MetaData           MetaData            `json:"metaData"`
}
