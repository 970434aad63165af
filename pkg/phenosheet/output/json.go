// Package output serializes phenopackets to JSON and writes one file per
// patient.
package output

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/phenokit/phenosheet/pkg/phenosheet/models"
)

// ToJSON serializes one phenopacket.
func ToJSON(p *models.Phenopacket, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(p, "", "  ")
	}
	return json.Marshal(p)
}

// OutputDir returns the timestamped output directory layout,
// <base>/<YYYY-MM-DD_HH-MM-SS>/phenopackets, without creating it.
func OutputDir(base string, now time.Time) string {
	return filepath.Join(base, now.Format("2006-01-02_15-04-05"), "phenopackets")
}

// WritePackets writes one <patient>.json file per packet into dir, creating
// it as needed.
func WritePackets(dir string, packets []models.Phenopacket, pretty bool) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	for i := range packets {
		data, err := ToJSON(&packets[i], pretty)
		if err != nil {
			return fmt.Errorf("serializing packet %s: %w", packets[i].ID, err)
		}
		path := filepath.Join(dir, packets[i].ID+".json")
		if err := os.WriteFile(path, data, 0644); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
	}
	return nil
}
