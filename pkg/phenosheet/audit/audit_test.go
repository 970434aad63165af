package audit

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phenokit/phenosheet/pkg/phenosheet/header"
	"github.com/phenokit/phenosheet/pkg/phenosheet/models"
)

func TestRunAuditsEverySheet(t *testing.T) {
	wb := &models.Workbook{
		Name: "cohort.xlsx",
		Sheets: []models.Sheet{
			{Name: "Phenotype Data", Grid: [][]string{
				{"Patient ID", "HPO Term", "Onset Date", "Comment"},
				{"P001", "HP:0000252", "2020-01-15", "checked"},
			}},
			{Name: "Notes", Grid: [][]string{
				{"Author", "Text"},
				{"a", "b"},
			}},
		},
	}

	report := Run(wb, header.NewNormalizer(nil))
	require.Len(t, report.Sheets, 2)

	pheno := report.Sheets[0]
	assert.Equal(t, models.CategoryPhenotype, pheno.Classification.Category)
	assert.Equal(t, 3, pheno.RecognizedCols)
	assert.Equal(t, 1, pheno.UnknownCols)

	notes := report.Sheets[1]
	assert.Equal(t, models.CategoryUnknown, notes.Classification.Category)
	assert.NotEmpty(t, notes.Classification.MissingRequiredFields,
		"unknown sheets still report their required-field gap")
}

func TestRunFlagsDuplicateHeaders(t *testing.T) {
	wb := &models.Workbook{Sheets: []models.Sheet{
		{Name: "s", Grid: [][]string{{"Ref", "Alt", "Reference"}}},
	}}
	report := Run(wb, header.NewNormalizer(nil))
	assert.Equal(t, []string{models.FieldReference}, report.Sheets[0].DuplicateHeaders)
}

func TestRunFlagsVariantColumnGap(t *testing.T) {
	wb := &models.Workbook{Sheets: []models.Sheet{
		{Name: "geno", Grid: [][]string{{"Contact Email", "Phasing", "Zygosity"}}},
	}}
	report := Run(wb, header.NewNormalizer(nil))
	assert.True(t, report.Sheets[0].VariantColumnGap)
}

func TestRunToleratesEmptySheet(t *testing.T) {
	wb := &models.Workbook{Sheets: []models.Sheet{{Name: "Empty"}}}
	report := Run(wb, header.NewNormalizer(nil))
	require.Len(t, report.Sheets, 1)
	assert.Equal(t, models.CategoryUnknown, report.Sheets[0].Classification.Category)
}

func TestWriteTable(t *testing.T) {
	wb := &models.Workbook{Sheets: []models.Sheet{
		{Name: "Phenotype Data", Grid: [][]string{{"Patient ID", "HPO Term", "Onset Date"}}},
	}}
	report := Run(wb, header.NewNormalizer(nil))

	var buf bytes.Buffer
	require.NoError(t, report.WriteTable(&buf))
	out := buf.String()
	assert.Contains(t, out, "Phenotype Data")
	assert.Contains(t, out, "phenotype")
}
