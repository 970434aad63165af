// Package ontology loads an HPO release snapshot into a read-only lookup
// index and provides term resolution by id, label, or synonym, including
// obsolete-term replacement.
package ontology

import "strings"

// Term is one ontology concept node.
type Term struct {
	ID       string
	Label    string
	Synonyms []string
	Obsolete bool
	// ReplacedBy is the replacement term id for obsolete terms, if the
	// release records one.
	ReplacedBy string
}

// Index is an immutable id/label/synonym lookup over one ontology release.
// Build it once per run; it is safe to share read-only across sheets.
type Index struct {
	version string
	byID    map[string]*Term
	byLabel map[string]*Term
}

// NewIndex builds an Index from a term list. Label and synonym lookups are
// case-insensitive; on label collisions the first term wins.
func NewIndex(version string, terms []Term) *Index {
	idx := &Index{
		version: version,
		byID:    make(map[string]*Term, len(terms)),
		byLabel: make(map[string]*Term, len(terms)),
	}
	for i := range terms {
		t := &terms[i]
		idx.byID[t.ID] = t
		if t.Obsolete {
			continue
		}
		addLabel(idx.byLabel, t.Label, t)
		for _, s := range t.Synonyms {
			addLabel(idx.byLabel, s, t)
		}
	}
	return idx
}

func addLabel(m map[string]*Term, label string, t *Term) {
	key := strings.ToLower(strings.TrimSpace(label))
	if key == "" {
		return
	}
	if _, exists := m[key]; !exists {
		m[key] = t
	}
}

// Version returns the release tag the index was built from.
func (idx *Index) Version() string { return idx.version }

// Len returns the number of indexed terms.
func (idx *Index) Len() int { return len(idx.byID) }

// Term looks up a term by exact id.
func (idx *Index) Term(id string) (*Term, bool) {
	t, ok := idx.byID[id]
	return t, ok
}

// ByLabel looks up a non-obsolete term by label or synonym,
// case-insensitively.
func (idx *Index) ByLabel(label string) (*Term, bool) {
	t, ok := idx.byLabel[strings.ToLower(strings.TrimSpace(label))]
	return t, ok
}

// Resolution is the outcome of resolving a raw ontology reference.
type Resolution struct {
	// Term is the resolved, non-obsolete term; nil when unresolvable.
	Term *Term
	// Substituted is set when the input named an obsolete term and Term
	// is its replacement.
	Substituted bool
	// ObsoleteID is the original obsolete id when Substituted.
	ObsoleteID string
}

// Resolve maps an id (or, failing that, a label/synonym) to a non-obsolete
// term. Obsolete ids resolve through their replacement pointer when one
// exists; chains are followed a bounded number of steps.
func (idx *Index) Resolve(ref string) Resolution {
	ref = strings.TrimSpace(ref)
	if t, ok := idx.byID[ref]; ok {
		if !t.Obsolete {
			return Resolution{Term: t}
		}
		cur := t
		for hops := 0; hops < 5 && cur.Obsolete && cur.ReplacedBy != ""; hops++ {
			next, ok := idx.byID[cur.ReplacedBy]
			if !ok {
				break
			}
			cur = next
		}
		if !cur.Obsolete {
			return Resolution{Term: cur, Substituted: true, ObsoleteID: t.ID}
		}
		return Resolution{}
	}
	if t, ok := idx.ByLabel(ref); ok {
		return Resolution{Term: t}
	}
	return Resolution{}
}
