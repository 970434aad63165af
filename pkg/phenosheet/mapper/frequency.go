package mapper

import (
	"strings"

	"github.com/phenokit/phenosheet/pkg/phenosheet/models"
)

// Frequency modifiers under HPO's Frequency class (HP:0040280–HP:0040285),
// used as phenotypic-feature modifiers for cohort-level occurrence rates.
var frequencyModifiers = map[string]models.OntologyClass{
	"obligate":      {ID: "HP:0040280", Label: "Obligate"},
	"very_frequent": {ID: "HP:0040281", Label: "Very frequent"},
	"frequent":      {ID: "HP:0040282", Label: "Frequent"},
	"occasional":    {ID: "HP:0040283", Label: "Occasional"},
	"very_rare":     {ID: "HP:0040284", Label: "Very rare"},
	"excluded":      {ID: "HP:0040285", Label: "Excluded"},
}

// FrequencyModifier converts a human-readable frequency label into its HPO
// modifier term. Spacing, casing, and stray parentheses are normalized
// away.
func FrequencyModifier(label string) (models.OntologyClass, bool) {
	key := strings.ToLower(strings.TrimSpace(label))
	key = strings.NewReplacer(" ", "_", "(", "", ")", "").Replace(key)
	oc, ok := frequencyModifiers[key]
	return oc, ok
}
