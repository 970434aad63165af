package mapper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phenokit/phenosheet/pkg/phenosheet/header"
	"github.com/phenokit/phenosheet/pkg/phenosheet/models"
	"github.com/phenokit/phenosheet/pkg/phenosheet/ontology"
)

func testOntology() *ontology.Index {
	return ontology.NewIndex("v2025-03-03", []ontology.Term{
		{ID: "HP:0000252", Label: "Microcephaly", Synonyms: []string{"Small head"}},
		{ID: "HP:0001250", Label: "Seizure"},
		{ID: "HP:0006815", Label: "Old term", Obsolete: true, ReplacedBy: "HP:0000252"},
	})
}

func mapSheet(t *testing.T, strict bool, sheet models.Sheet) SheetResult {
	t.Helper()
	nh := header.NewNormalizer(nil).Normalize(sheet.HeaderRow())
	m := New(testOntology(), strict)
	cat := models.CategoryPhenotype
	if nh.Index(models.FieldChromosome) >= 0 {
		cat = models.CategoryGenotype
	}
	return m.MapSheet(sheet, nh, cat)
}

func phenotypeSheet(rows ...[]string) models.Sheet {
	grid := [][]string{{"Patient ID", "HPO Term", "Onset Date", "Status"}}
	grid = append(grid, rows...)
	return models.Sheet{Name: "Phenotype Data", Grid: grid}
}

func TestMapPhenotypeRowHappyPath(t *testing.T) {
	res := mapSheet(t, false, phenotypeSheet([]string{"P001", "HP:0000252", "2020-01-15", "yes"}))

	require.Len(t, res.Records, 1)
	rec := res.Records[0]
	assert.Empty(t, rec.Issues)
	assert.False(t, rec.Excluded)
	assert.Equal(t, "HP:0000252", rec.Fields[models.FieldHPOID])
	assert.Equal(t, "2020-01-15", rec.Fields[models.FieldDateOfObservation])

	require.Len(t, res.Packets, 1)
	pkt := res.Packets[0]
	assert.Equal(t, "P001", pkt.Subject.ID)
	require.Len(t, pkt.PhenotypicFeatures, 1)
	feat := pkt.PhenotypicFeatures[0]
	assert.Equal(t, "HP:0000252", feat.Type.ID)
	assert.Equal(t, "Microcephaly", feat.Type.Label)
	assert.False(t, feat.Excluded)
	require.NotNil(t, feat.Onset)
	assert.Equal(t, "2020-01-15", feat.Onset.Timestamp)
}

func TestMapPhenotypeRowUnresolvableID(t *testing.T) {
	res := mapSheet(t, false, phenotypeSheet([]string{"P001", "HP:9999999", "2020-01-15", "yes"}))

	require.Len(t, res.Records, 1)
	rec := res.Records[0]
	assert.True(t, rec.Excluded)
	require.Len(t, rec.Issues, 1)
	assert.Equal(t, ReasonUnresolvableOntoID, rec.Issues[0].Reason)
	assert.Empty(t, res.Packets)
}

func TestMapPhenotypeRowObsoleteSubstitution(t *testing.T) {
	res := mapSheet(t, false, phenotypeSheet([]string{"P001", "HP:0006815", "T3", "yes"}))

	require.Len(t, res.Records, 1)
	rec := res.Records[0]
	assert.False(t, rec.Excluded)
	assert.Equal(t, "HP:0000252", rec.Fields[models.FieldHPOID])
	require.Len(t, rec.Issues, 1)
	assert.Contains(t, rec.Issues[0].Reason, ReasonObsoleteOntoID)
	assert.Equal(t, models.SeverityWarning, rec.Issues[0].Severity)
}

func TestMapPhenotypeRowLabelForms(t *testing.T) {
	tests := []struct {
		cell string
		want string
	}{
		{"HP:0000252", "HP:0000252"},
		{"0000252", "HP:0000252"},
		{"252", "HP:0000252"},
		{"Microcephaly (HP:0000252)", "HP:0000252"},
		{"Microcephaly", "HP:0000252"},
		{"Small head", "HP:0000252"},
	}
	for _, tt := range tests {
		res := mapSheet(t, false, phenotypeSheet([]string{"P001", tt.cell, "T0", ""}))
		require.Len(t, res.Records, 1, "cell %q", tt.cell)
		assert.Equal(t, tt.want, res.Records[0].Fields[models.FieldHPOID], "cell %q", tt.cell)
		assert.False(t, res.Records[0].Excluded, "cell %q", tt.cell)
	}
}

func TestMapPhenotypeRowLabelMismatch(t *testing.T) {
	res := mapSheet(t, false, phenotypeSheet([]string{"P001", "Seizure (HP:0000252)", "T0", ""}))

	rec := res.Records[0]
	assert.False(t, rec.Excluded)
	require.Len(t, rec.Issues, 1)
	assert.Equal(t, ReasonLabelMismatch, rec.Issues[0].Reason)
}

func TestMapPhenotypeStatusExcludedFeature(t *testing.T) {
	res := mapSheet(t, false, phenotypeSheet([]string{"P001", "HP:0000252", "T1", "no"}))

	require.Len(t, res.Packets, 1)
	assert.True(t, res.Packets[0].PhenotypicFeatures[0].Excluded)
}

func TestMapPhenotypeBadDateExcludesRow(t *testing.T) {
	res := mapSheet(t, false, phenotypeSheet([]string{"P001", "HP:0000252", "soon", ""}))

	rec := res.Records[0]
	assert.True(t, rec.Excluded)
	require.Len(t, rec.Issues, 1)
	assert.Equal(t, ReasonUnparseableDate, rec.Issues[0].Reason)
}

func TestMapPhenotypeInvalidPatientID(t *testing.T) {
	res := mapSheet(t, false, phenotypeSheet([]string{"P 001", "HP:0000252", "T0", ""}))

	rec := res.Records[0]
	assert.True(t, rec.Excluded)
	assert.Equal(t, ReasonInvalidPatientID, rec.Issues[0].Reason)
}

// Corrupting one row must not change the outcome of its siblings.
func TestRowIndependence(t *testing.T) {
	good := []string{"P001", "HP:0000252", "2020-01-15", "yes"}
	clean := mapSheet(t, false, phenotypeSheet(good))
	mixed := mapSheet(t, false, phenotypeSheet(good, []string{"P002", "garbage", "also garbage", "??"}))

	require.Len(t, mixed.Records, 2)
	assert.Equal(t, clean.Records[0], mixed.Records[0])
	require.Len(t, mixed.Packets, 1)
	assert.Equal(t, clean.Packets[0], mixed.Packets[0])
}

func TestNormalizeObservationDate(t *testing.T) {
	tests := []struct {
		input string
		want  string
		ok    bool
	}{
		{"2020-01-15", "2020-01-15", true},
		{"2020/01/15", "2020-01-15", true},
		{"15.01.2020", "2020-01-15", true},
		{"T3", "T3", true},
		{"t03", "T3", true},
		{"3", "T3", true},
		{"", "", false},
		{"someday", "", false},
	}
	for _, tt := range tests {
		got, ok := NormalizeObservationDate(tt.input)
		assert.Equal(t, tt.ok, ok, "input %q", tt.input)
		assert.Equal(t, tt.want, got, "input %q", tt.input)
	}
}

func TestFrequencyModifier(t *testing.T) {
	oc, ok := FrequencyModifier("Very frequent")
	require.True(t, ok)
	assert.Equal(t, "HP:0040281", oc.ID)

	oc, ok = FrequencyModifier("very_rare")
	require.True(t, ok)
	assert.Equal(t, "HP:0040284", oc.ID)

	_, ok = FrequencyModifier("sometimes")
	assert.False(t, ok)
}
