package output

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phenokit/phenosheet/pkg/phenosheet/models"
)

func samplePacket() models.Phenopacket {
	return models.Phenopacket{
		ID:      "P001",
		Subject: models.Individual{ID: "P001"},
		PhenotypicFeatures: []models.PhenotypicFeature{{
			Type:  models.OntologyClass{ID: "HP:0000252", Label: "Microcephaly"},
			Onset: &models.TimeElement{Timestamp: "2020-01-15"},
		}},
	}
}

func TestToJSONUsesProtoFieldNames(t *testing.T) {
	p := samplePacket()
	data, err := ToJSON(&p, false)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Contains(t, decoded, "phenotypicFeatures")
	assert.Contains(t, decoded, "subject")
}

func TestWritePackets(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	require.NoError(t, WritePackets(dir, []models.Phenopacket{samplePacket()}, true))

	data, err := os.ReadFile(filepath.Join(dir, "P001.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "HP:0000252")
}

func TestOutputDirLayout(t *testing.T) {
	now := time.Date(2025, 7, 15, 14, 23, 0, 0, time.UTC)
	dir := OutputDir("base", now)
	assert.Equal(t, filepath.Join("base", "2025-07-15_14-23-00", "phenopackets"), dir)
}
