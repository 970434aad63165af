package header

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phenokit/phenosheet/pkg/phenosheet/models"
)

func TestClean(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Patient ID", "patient_id"},
		{"  HPO Term  ", "hpo_term"},
		{"Start (bp)", "start"},
		{"Onset Date", "onset_date"},
		{"GENE-SYMBOL", "gene_symbol"},
		{"chrom:", "chrom"},
		{"date.of.observation", "date_of_observation"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, Clean(tt.input), "Clean(%q)", tt.input)
	}
}

func TestResolve(t *testing.T) {
	n := NewNormalizer(nil)

	tests := []struct {
		input    string
		expected string
	}{
		{"Patient ID", models.FieldPatientID},
		{"patient", models.FieldPatientID},
		{"HPO Term", models.FieldHPOID},
		{"hpo_id", models.FieldHPOID},
		{"Onset Date", models.FieldDateOfObservation},
		{"Timestamp", models.FieldDateOfObservation},
		{"Ref", models.FieldReference},
		{"ALT", models.FieldAlternate},
		{"Gene", models.FieldGeneSymbol},
		{"Start (bp)", models.FieldStartPosition},
		{"zygosity", models.FieldZygosity},
		{"favorite color", models.FieldUnknown},
		{"", models.FieldUnknown},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, n.Resolve(tt.input), "Resolve(%q)", tt.input)
	}
}

// Headers that differ only in case/whitespace/punctuation must resolve
// identically.
func TestResolveDeterminism(t *testing.T) {
	n := NewNormalizer(nil)
	variants := []string{"Patient ID", "patient id", "PATIENT-ID", "patient_id", "  Patient  ID  "}
	for _, v := range variants {
		assert.Equal(t, models.FieldPatientID, n.Resolve(v), "variant %q", v)
	}
}

func TestNormalizeKeepsUnknownPositional(t *testing.T) {
	n := NewNormalizer(nil)
	nh := n.Normalize([]string{"Patient ID", "Comment", "HPO Term"})

	require.Len(t, nh.Fields, 3)
	assert.Equal(t, models.FieldPatientID, nh.Fields[0])
	assert.Equal(t, models.FieldUnknown, nh.Fields[1])
	assert.Equal(t, models.FieldHPOID, nh.Fields[2])
}

func TestNormalizeDuplicateLaterColumnWins(t *testing.T) {
	n := NewNormalizer(nil)
	nh := n.Normalize([]string{"Ref", "Alt", "Reference"})

	assert.Equal(t, 2, nh.Index(models.FieldReference), "later column wins")
	assert.Equal(t, map[string]int{models.FieldReference: 0}, nh.Duplicates)
}

func TestNewNormalizerOverlay(t *testing.T) {
	n := NewNormalizer(map[string]string{"Proband ID": models.FieldPatientID})
	assert.Equal(t, models.FieldPatientID, n.Resolve("proband id"))
}

func TestLoadSynonyms(t *testing.T) {
	path := filepath.Join(t.TempDir(), "synonyms.yaml")
	content := "synonyms:\n  \"Proband ID\": patient_id\n  \"HPO code\": hpo_id\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	syn, err := LoadSynonyms(path)
	require.NoError(t, err)
	assert.Equal(t, models.FieldPatientID, syn["Proband ID"])

	n := NewNormalizer(syn)
	assert.Equal(t, models.FieldHPOID, n.Resolve("HPO Code"))
}

func TestLoadSynonymsRejectsUnknownTarget(t *testing.T) {
	path := filepath.Join(t.TempDir(), "synonyms.yaml")
	require.NoError(t, os.WriteFile(path, []byte("synonyms:\n  foo: not_a_field\n"), 0644))

	_, err := LoadSynonyms(path)
	assert.Error(t, err)
}
