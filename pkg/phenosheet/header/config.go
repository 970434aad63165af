package header

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// synonymFile is the on-disk shape of a synonym overlay:
//
//	synonyms:
//	  "Proband ID": patient_id
//	  "HPO code": hpo_id
type synonymFile struct {
	Synonyms map[string]string `yaml:"synonyms"`
}

// LoadSynonyms reads a YAML synonym overlay file. Values must be canonical
// field names.
func LoadSynonyms(path string) (map[string]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var sf synonymFile
	if err := yaml.Unmarshal(data, &sf); err != nil {
		return nil, fmt.Errorf("parsing synonym file %s: %w", path, err)
	}
	for raw, target := range sf.Synonyms {
		if _, ok := canonical[target]; !ok {
			return nil, fmt.Errorf("synonym file %s: %q maps to unknown field %q", path, raw, target)
		}
	}
	return sf.Synonyms, nil
}
