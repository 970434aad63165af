package ontology

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// hp.json is an OBO-graphs document. Only the node fields the index needs
// are decoded here.

const replacedByPred = "http://purl.obolibrary.org/obo/IAO_0100001"

type oboDocument struct {
	Graphs []oboGraph `json:"graphs"`
}

type oboGraph struct {
	Nodes []oboNode `json:"nodes"`
	Meta  *oboMeta  `json:"meta"`
}

type oboNode struct {
	ID   string   `json:"id"`
	Lbl  string   `json:"lbl"`
	Type string   `json:"type"`
	Meta *oboMeta `json:"meta"`
}

type oboMeta struct {
	Deprecated          bool         `json:"deprecated"`
	Synonyms            []oboSynonym `json:"synonyms"`
	BasicPropertyValues []oboBasicPV `json:"basicPropertyValues"`
	Version             string       `json:"version"`
}

type oboSynonym struct {
	Val string `json:"val"`
}

type oboBasicPV struct {
	Pred string `json:"pred"`
	Val  string `json:"val"`
}

// LoadJSON reads an OBO-graphs ontology snapshot (hp.json) and builds the
// lookup index. Nodes outside the HP namespace are skipped.
func LoadJSON(path string) (*Index, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading ontology file: %w", err)
	}
	return Parse(data)
}

// Parse builds an index from raw OBO-graphs JSON.
func Parse(data []byte) (*Index, error) {
	var doc oboDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing ontology JSON: %w", err)
	}
	if len(doc.Graphs) == 0 {
		return nil, fmt.Errorf("ontology JSON contains no graphs")
	}

	graph := doc.Graphs[0]
	version := ""
	if graph.Meta != nil {
		version = graph.Meta.Version
	}

	var terms []Term
	for _, node := range graph.Nodes {
		curie, ok := purlToCURIE(node.ID)
		if !ok {
			continue
		}
		t := Term{ID: curie, Label: node.Lbl}
		if node.Meta != nil {
			t.Obsolete = node.Meta.Deprecated
			for _, s := range node.Meta.Synonyms {
				if s.Val != "" {
					t.Synonyms = append(t.Synonyms, s.Val)
				}
			}
			for _, pv := range node.Meta.BasicPropertyValues {
				if pv.Pred == replacedByPred {
					if rep, ok := purlToCURIE(pv.Val); ok {
						t.ReplacedBy = rep
					} else {
						t.ReplacedBy = pv.Val
					}
				}
			}
		}
		// obsolete labels carry an "obsolete " prefix in releases
		t.Label = strings.TrimPrefix(t.Label, "obsolete ")
		terms = append(terms, t)
	}
	if len(terms) == 0 {
		return nil, fmt.Errorf("ontology JSON contains no HP terms")
	}
	return NewIndex(version, terms), nil
}

// purlToCURIE converts an OBO purl such as
// http://purl.obolibrary.org/obo/HP_0000252 into HP:0000252. Inputs that
// are already CURIEs pass through.
func purlToCURIE(id string) (string, bool) {
	if strings.HasPrefix(id, "HP:") {
		return id, true
	}
	const prefix = "http://purl.obolibrary.org/obo/"
	if !strings.HasPrefix(id, prefix) {
		return "", false
	}
	rest := strings.TrimPrefix(id, prefix)
	if !strings.HasPrefix(rest, "HP_") {
		return "", false
	}
	return "HP:" + strings.TrimPrefix(rest, "HP_"), true
}
