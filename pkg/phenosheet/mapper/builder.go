package mapper

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/phenokit/phenosheet/pkg/phenosheet/models"
)

var isoDateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// build assembles one phenopacket from an admissible row record. The packet
// id is the canonical subject id, so packets from genotype and phenotype
// sheets merge by id downstream.
func (m *Mapper) build(rec models.RowRecord, category models.Category) models.Phenopacket {
	patientID := rec.Fields[models.FieldPatientID]
	pkt := models.Phenopacket{
		ID:      patientID,
		Subject: models.Individual{ID: patientID},
	}

	switch category {
	case models.CategoryPhenotype:
		pkt.PhenotypicFeatures = append(pkt.PhenotypicFeatures, m.buildFeature(rec))
	case models.CategoryGenotype:
		pkt.Interpretations = m.buildInterpretations(rec, patientID)
	}
	return pkt
}

// buildFeature constructs the phenotypic-feature entry for a phenotype row.
func (m *Mapper) buildFeature(rec models.RowRecord) models.PhenotypicFeature {
	feat := models.PhenotypicFeature{
		Type: models.OntologyClass{
			ID:    rec.Fields[models.FieldHPOID],
			Label: rec.Fields[fieldHPOLabel],
		},
	}
	if rec.Fields[models.FieldStatus] == "false" {
		feat.Excluded = true
	}
	if onset := rec.Fields[models.FieldDateOfObservation]; onset != "" {
		feat.Onset = onsetElement(onset)
	}
	if fid := rec.Fields[fieldFrequencyID]; fid != "" {
		feat.Modifiers = append(feat.Modifiers, models.OntologyClass{
			ID:    fid,
			Label: rec.Fields[fieldFrequencyLabel],
		})
	}
	return feat
}

// onsetElement wraps a normalized observation date: calendar dates become
// timestamps, visit labels (T0, T1, …) ride along as an ontology class.
func onsetElement(onset string) *models.TimeElement {
	if isoDateRe.MatchString(onset) {
		return &models.TimeElement{Timestamp: onset}
	}
	return &models.TimeElement{OntologyClass: &models.OntologyClass{ID: onset, Label: onset}}
}

// buildInterpretations constructs one interpretation per zygosity/
// inheritance pair of a genotype row.
func (m *Mapper) buildInterpretations(rec models.RowRecord, patientID string) []models.Interpretation {
	var out []models.Interpretation
	for i, pair := range strings.Split(rec.Fields[fieldZygosityPairs], ",") {
		zyg, _, _ := strings.Cut(pair, "|")
		vd := m.buildDescriptor(rec, zyg)
		out = append(out, models.Interpretation{
			ID:             fmt.Sprintf("%s-interpretation-%d", patientID, i),
			ProgressStatus: "COMPLETED",
			Diagnosis: models.Diagnosis{
				GenomicInterpretations: []models.GenomicInterpretation{{
					SubjectOrBiosampleID:  patientID,
					InterpretationStatus:  "CONTRIBUTORY",
					VariantInterpretation: models.VariantInterpretation{VariationDescriptor: vd},
				}},
			},
		})
	}
	return out
}

// buildDescriptor constructs the variation descriptor for one variant call:
// gene context, normalized g. expression, raw coordinates as a VCF record,
// and the GENO allelic state for the zygosity.
func (m *Mapper) buildDescriptor(rec models.RowRecord, zygosity string) models.VariationDescriptor {
	vd := models.VariationDescriptor{}

	if gene := rec.Fields[models.FieldGeneSymbol]; gene != "" {
		vd.GeneContext = &models.GeneDescriptor{Symbol: gene}
	}

	gExpr := rec.Fields[fieldGExpression]
	if gExpr == "" {
		gExpr = strings.TrimPrefix(rec.Fields[models.FieldHGVSg], "chr")
	}
	if gExpr != "" {
		vd.Expressions = append(vd.Expressions, models.Expression{Syntax: "hgvs", Value: gExpr})
	}
	if hgvsc := rec.Fields[models.FieldHGVSc]; hgvsc != "" {
		vd.Expressions = append(vd.Expressions, models.Expression{Syntax: "hgvs.c", Value: hgvsc})
	}
	if hgvsp := rec.Fields[models.FieldHGVSp]; hgvsp != "" {
		vd.Expressions = append(vd.Expressions, models.Expression{Syntax: "hgvs.p", Value: hgvsp})
	}

	if pos, err := strconv.Atoi(rec.Fields[models.FieldStartPosition]); err == nil {
		vd.VcfRecord = &models.VcfRecord{
			GenomeAssembly: "GRCh38",
			Chrom:          rec.Fields[models.FieldChromosome],
			Pos:            pos,
			Ref:            rec.Fields[models.FieldReference],
			Alt:            rec.Fields[models.FieldAlternate],
		}
	}

	if code, ok := genoAllelicState[zygosity]; ok {
		vd.AllelicState = &models.OntologyClass{ID: "GENO:" + code, Label: zygosity}
	}
	return vd
}
