package mapper

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/phenokit/phenosheet/pkg/phenosheet/models"
)

// ZygosityMap expands sheet abbreviations to the controlled zygosity
// vocabulary.
var ZygosityMap = map[string]string{
	"het":     "heterozygous",
	"hom":     "homozygous",
	"comphet": "compound_heterozygosity",
	"hemi":    "hemizygous",
	"mosaic":  "mosaic",
}

// InheritanceMap expands sheet abbreviations to the controlled inheritance
// vocabulary.
var InheritanceMap = map[string]string{
	"unknown":   "unknown",
	"inherited": "inherited",
	"denovo":    "de_novo_mutation",
}

// genoAllelicState maps zygosity to the GENO allelic-state code suffix.
var genoAllelicState = map[string]string{
	"heterozygous":            "0000135",
	"homozygous":              "0000134",
	"compound_heterozygosity": "0000191",
	"hemizygous":              "0000136",
	"mosaic":                  "0000150",
}

// allowedChromEncodings are accepted chromosome naming schemes besides
// chr-prefixed and bare chromosome names.
var allowedChromEncodings = map[string]struct{}{
	"hgvs": {}, "ucsc": {}, "refseq": {}, "ensembl": {}, "ncbi": {}, "ega": {},
}

var (
	bareChromRe = regexp.MustCompile(`(?i)^([0-9]{1,2}|X|Y|M|MT)$`)
	emailRe     = regexp.MustCompile(`^[\w.+\-]+@[\w.\-]+\.[A-Za-z]+$`)

	// hgvsGSNVRe matches simple genomic SNV notation with an optional
	// chr prefix, e.g. chr16:g.100A>G.
	hgvsGSNVRe = regexp.MustCompile(`(?i)^\s*(?:chr)?([0-9XYM]+):g\.(\d+)([ACGT]+)>([ACGT]+)\s*$`)
)

// Derived fields the builder reads for genotype rows.
const (
	fieldZygosityPairs = "zygosity_pairs"
	fieldGExpression   = "g_expression"
)

const fallbackContactEmail = "unknown@example.com"

// parseGenotypeRow validates and coerces one genotype row in place.
func (m *Mapper) parseGenotypeRow(rec *models.RowRecord, raw map[string]string) {
	if !requirePatientID(rec, raw) {
		return
	}

	m.parseVariantCoordinates(rec, raw)
	m.parseZygosityInheritance(rec, raw)

	if gene := raw[models.FieldGeneSymbol]; gene != "" {
		rec.Fields[models.FieldGeneSymbol] = gene
	}

	// optional email: empty gets the documented fallback, malformed is
	// nulled with an issue
	switch email := raw[models.FieldContactEmail]; {
	case email == "":
		rec.Fields[models.FieldContactEmail] = fallbackContactEmail
	case emailRe.MatchString(email):
		rec.Fields[models.FieldContactEmail] = email
	default:
		rec.AddIssue(models.FieldContactEmail, email, "invalid contact email", models.SeverityWarning)
	}

	if p, present := raw[models.FieldPhasing]; present && p != "" {
		if v, ok := parseBool(p); ok {
			rec.Fields[models.FieldPhasing] = strconv.FormatBool(v)
		} else {
			rec.AddIssue(models.FieldPhasing, p, "unrecognized phasing value", models.SeverityWarning)
		}
	}

	for _, f := range []string{models.FieldHGVSg, models.FieldHGVSc, models.FieldHGVSp} {
		if v := raw[f]; v != "" {
			rec.Fields[f] = v
		}
	}

	if hgvsg := raw[models.FieldHGVSg]; hgvsg != "" {
		m.checkHGVSConsistency(rec, hgvsg)
	}
}

// parseVariantCoordinates validates the required raw coordinate fields.
func (m *Mapper) parseVariantCoordinates(rec *models.RowRecord, raw map[string]string) {
	chrom := raw[models.FieldChromosome]
	chromLower := strings.ToLower(chrom)
	_, knownEncoding := allowedChromEncodings[chromLower]
	switch {
	case chrom == "":
		rec.AddIssue(models.FieldChromosome, "", ReasonMissingRequired, models.SeverityError)
		rec.Excluded = true
	case knownEncoding, strings.HasPrefix(chromLower, "chr"), bareChromRe.MatchString(chrom):
		rec.Fields[models.FieldChromosome] = chrom
	default:
		rec.AddIssue(models.FieldChromosome, chrom, "unrecognized chromosome", models.SeverityError)
		rec.Excluded = true
	}

	for _, f := range []string{models.FieldStartPosition, models.FieldEndPosition} {
		v := raw[f]
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			rec.AddIssue(f, v, "position must be a non-negative integer", models.SeverityError)
			rec.Excluded = true
			continue
		}
		rec.Fields[f] = strconv.Itoa(n)
	}

	for _, f := range []string{models.FieldReference, models.FieldAlternate} {
		v := strings.ToUpper(raw[f])
		if v == "" {
			rec.AddIssue(f, "", ReasonMissingRequired, models.SeverityError)
			rec.Excluded = true
			continue
		}
		rec.Fields[f] = v
	}
}

// parseZygosityInheritance handles slash-separated zygosity/inheritance
// pairs ("het/hom" with "denovo/inherited"), zipped pairwise. The result is
// stored as "zygosity|inheritance" pairs joined by commas.
func (m *Mapper) parseZygosityInheritance(rec *models.RowRecord, raw map[string]string) {
	zygs := splitSlash(raw[models.FieldZygosity])
	inhs := splitSlash(raw[models.FieldInheritance])

	if len(zygs) == 0 {
		rec.AddIssue(models.FieldZygosity, "", ReasonMissingRequired, models.SeverityError)
		rec.Excluded = true
		return
	}

	var pairs []string
	for i, z := range zygs {
		zyg, ok := ZygosityMap[z]
		if !ok {
			rec.AddIssue(models.FieldZygosity, z, "unrecognized zygosity code", models.SeverityError)
			rec.Excluded = true
			continue
		}
		inh := "unknown"
		if i < len(inhs) {
			mapped, ok := InheritanceMap[inhs[i]]
			if !ok {
				// inheritance is optional; an unknown code nulls
				// the value but keeps the row
				rec.AddIssue(models.FieldInheritance, inhs[i], "unrecognized inheritance code", models.SeverityWarning)
			} else {
				inh = mapped
			}
		}
		pairs = append(pairs, zyg+"|"+inh)
	}
	if len(pairs) > 0 {
		rec.Fields[fieldZygosityPairs] = strings.Join(pairs, ",")
	}
}

// checkHGVSConsistency cross-checks the g. notation against the raw
// coordinate fields when both are present. A malformed g. notation is
// always an error; a disagreement is a warning unless strict-variants is
// on.
func (m *Mapper) checkHGVSConsistency(rec *models.RowRecord, hgvsg string) {
	mtch := hgvsGSNVRe.FindStringSubmatch(hgvsg)
	if mtch == nil {
		rec.AddIssue(models.FieldHGVSg, hgvsg, "malformed HGVS g. notation", models.SeverityError)
		delete(rec.Fields, models.FieldHGVSg)
		return
	}
	rec.Fields[fieldGExpression] = fmt.Sprintf("%s:g.%s%s>%s",
		mtch[1], mtch[2], strings.ToUpper(mtch[3]), strings.ToUpper(mtch[4]))

	chrom := strings.TrimPrefix(strings.ToLower(rec.Fields[models.FieldChromosome]), "chr")
	if chrom == "" {
		return
	}
	pos := mtch[2]
	agrees := strings.EqualFold(chrom, mtch[1]) &&
		rec.Fields[models.FieldStartPosition] == pos &&
		rec.Fields[models.FieldEndPosition] == pos &&
		strings.EqualFold(rec.Fields[models.FieldReference], mtch[3]) &&
		strings.EqualFold(rec.Fields[models.FieldAlternate], mtch[4])
	if !agrees {
		sev := models.SeverityWarning
		if m.strictVariants {
			sev = models.SeverityError
		}
		rec.AddIssue(models.FieldHGVSg, hgvsg, "HGVS disagrees with raw coordinates", sev)
	}
}

func splitSlash(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, "/")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		out = append(out, strings.ToLower(strings.TrimSpace(p)))
	}
	return out
}
