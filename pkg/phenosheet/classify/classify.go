// Package classify decides what kind of data a sheet holds by checking its
// normalized headers against the required-field set of each category, with
// the sheet name as a weak hint for exact ties.
package classify

import (
	"sort"
	"strings"

	"github.com/phenokit/phenosheet/pkg/phenosheet/models"
)

// GenotypeRequired and PhenotypeRequired are the disjoint required-field
// sets. A sheet qualifies for a category only when all of its required
// fields are present.
var (
	GenotypeRequired = []string{
		models.FieldChromosome,
		models.FieldStartPosition,
		models.FieldEndPosition,
		models.FieldReference,
		models.FieldAlternate,
		models.FieldZygosity,
	}
	PhenotypeRequired = []string{
		models.FieldHPOID,
		models.FieldDateOfObservation,
	}
)

// GenotypeBase and variant column groups used by the audit's
// variant-column check: a genotype-looking sheet must carry either the full
// raw coordinates or at least one HGVS notation.
var (
	GenotypeBase       = []string{models.FieldContactEmail, models.FieldPhasing}
	RawVariantColumns  = []string{models.FieldChromosome, models.FieldStartPosition, models.FieldEndPosition, models.FieldReference, models.FieldAlternate}
	HGVSVariantColumns = []string{models.FieldHGVSg, models.FieldHGVSc, models.FieldHGVSp}
)

// sheetNameHints maps lowercased sheet-name tokens to a category, checked
// in order so hint resolution is deterministic.
var sheetNameHints = []struct {
	token    string
	category models.Category
}{
	{"genotype", models.CategoryGenotype},
	{"variants", models.CategoryGenotype},
	{"variant", models.CategoryGenotype},
	{"geno", models.CategoryGenotype},
	{"phenotype", models.CategoryPhenotype},
	{"hpo", models.CategoryPhenotype},
	{"pheno", models.CategoryPhenotype},
}

// Classify assigns a category to a sheet from its normalized headers.
func Classify(sheetName string, nh models.NormalizedHeader) models.SheetClassification {
	present := nh.FieldSet()

	genMatched, genMissing := split(GenotypeRequired, present)
	pheMatched, pheMissing := split(PhenotypeRequired, present)
	genScore := float64(len(genMatched)) / float64(len(GenotypeRequired))
	pheScore := float64(len(pheMatched)) / float64(len(PhenotypeRequired))

	sc := models.SheetClassification{
		SheetName:      sheetName,
		GenotypeScore:  genScore,
		PhenotypeScore: pheScore,
	}

	genFull := len(genMissing) == 0
	pheFull := len(pheMissing) == 0
	switch {
	case genFull && pheFull:
		switch {
		case genScore > pheScore:
			sc.Category = models.CategoryGenotype
		case pheScore > genScore:
			sc.Category = models.CategoryPhenotype
		default:
			sc.Category = nameHint(sheetName)
		}
	case genFull:
		sc.Category = models.CategoryGenotype
	case pheFull:
		sc.Category = models.CategoryPhenotype
	default:
		sc.Category = models.CategoryUnknown
	}

	switch sc.Category {
	case models.CategoryGenotype:
		sc.MatchedRequiredFields = genMatched
		sc.MissingRequiredFields = genMissing
	case models.CategoryPhenotype:
		sc.MatchedRequiredFields = pheMatched
		sc.MissingRequiredFields = pheMissing
	default:
		// report the closer candidate so the audit shows the
		// smallest gap
		if genScore >= pheScore {
			sc.MatchedRequiredFields = genMatched
			sc.MissingRequiredFields = genMissing
		} else {
			sc.MatchedRequiredFields = pheMatched
			sc.MissingRequiredFields = pheMissing
		}
	}
	return sc
}

// nameHint resolves an exact-tie between fully qualifying categories using
// the sheet name. An uninformative name leaves the sheet unknown, with both
// candidate scores already recorded on the classification.
func nameHint(sheetName string) models.Category {
	key := strings.TrimSpace(strings.ToLower(sheetName))
	for _, h := range sheetNameHints {
		if strings.Contains(key, h.token) {
			return h.category
		}
	}
	return models.CategoryUnknown
}

func split(required []string, present map[string]struct{}) (matched, missing []string) {
	for _, f := range required {
		if _, ok := present[f]; ok {
			matched = append(matched, f)
		} else {
			missing = append(missing, f)
		}
	}
	sort.Strings(matched)
	sort.Strings(missing)
	return matched, missing
}

// ContainsAll reports whether every field in want is present.
func ContainsAll(want []string, present map[string]struct{}) bool {
	for _, f := range want {
		if _, ok := present[f]; !ok {
			return false
		}
	}
	return true
}

// ContainsAny reports whether at least one field in want is present.
func ContainsAny(want []string, present map[string]struct{}) bool {
	for _, f := range want {
		if _, ok := present[f]; ok {
			return true
		}
	}
	return false
}
