package phenosheet

import (
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/phenokit/phenosheet/pkg/phenosheet/classify"
	"github.com/phenokit/phenosheet/pkg/phenosheet/header"
	"github.com/phenokit/phenosheet/pkg/phenosheet/mapper"
	"github.com/phenokit/phenosheet/pkg/phenosheet/models"
	"github.com/phenokit/phenosheet/pkg/phenosheet/ontology"
)

// Result is the outcome of one pipeline run: one packet per admissible row,
// plus the full diagnostic set. Row exclusions are diagnostics, not
// failures.
type Result struct {
	// Packets holds one phenopacket per admissible row, in sheet/row
	// order. Use MergeBySubject to combine them per patient.
	Packets []models.Phenopacket
	// Classifications holds one entry per sheet, unknown sheets
	// included.
	Classifications []models.SheetClassification
	// Records holds every processed row with its issues, excluded rows
	// included.
	Records []models.RowRecord
	// SheetIssues holds sheet-level findings (duplicate headers, skipped
	// sheets).
	SheetIssues []models.SheetIssue
}

// UsableSheets counts sheets that classified as genotype or phenotype.
func (r *Result) UsableSheets() int {
	n := 0
	for _, c := range r.Classifications {
		if c.Category != models.CategoryUnknown {
			n++
		}
	}
	return n
}

// Run processes every sheet of the workbook against the read-only ontology
// index. Sheets and rows are processed sequentially and independently; no
// row's outcome depends on another's. Only unusable inputs are fatal.
func Run(wb *models.Workbook, index *ontology.Index, opts Options) (*Result, error) {
	if wb == nil {
		return nil, ErrNilWorkbook
	}
	if index == nil {
		return nil, ErrNilOntology
	}

	log := opts.logger()
	norm := header.NewNormalizer(opts.Synonyms)
	m := mapper.New(index, opts.StrictVariants)

	res := &Result{}
	for _, sheet := range wb.Sheets {
		nh := norm.Normalize(sheet.HeaderRow())
		dupFields := make([]string, 0, len(nh.Duplicates))
		for field := range nh.Duplicates {
			dupFields = append(dupFields, field)
		}
		sort.Strings(dupFields)
		for _, field := range dupFields {
			res.SheetIssues = append(res.SheetIssues, models.SheetIssue{
				SheetName: sheet.Name,
				Reason:    fmt.Sprintf("duplicate header for %q at column %d; later column wins", field, nh.Duplicates[field]+1),
				Severity:  models.SeverityWarning,
			})
		}

		sc := classify.Classify(sheet.Name, nh)
		res.Classifications = append(res.Classifications, sc)
		log.Debug("classified sheet",
			zap.String("sheet", sheet.Name),
			zap.String("category", string(sc.Category)))

		if sc.Category == models.CategoryUnknown {
			res.SheetIssues = append(res.SheetIssues, models.SheetIssue{
				SheetName: sheet.Name,
				Reason:    fmt.Sprintf("sheet skipped: missing required fields %v", sc.MissingRequiredFields),
				Severity:  models.SeverityWarning,
			})
			continue
		}

		sr := m.MapSheet(sheet, nh, sc.Category)
		res.Records = append(res.Records, sr.Records...)
		res.Packets = append(res.Packets, sr.Packets...)
		log.Debug("mapped sheet",
			zap.String("sheet", sheet.Name),
			zap.Int("rows", len(sr.Records)),
			zap.Int("packets", len(sr.Packets)))
	}
	return res, nil
}

// MergeBySubject combines per-row packets that share a subject id into one
// packet per patient, sorted by id. Interpretation ids are renumbered
// sequentially so merged packets are deterministic regardless of source
// sheet layout.
func MergeBySubject(packets []models.Phenopacket, index *ontology.Index, opts Options) []models.Phenopacket {
	byID := make(map[string]*models.Phenopacket)
	var order []string
	for _, p := range packets {
		merged, ok := byID[p.ID]
		if !ok {
			cp := models.Phenopacket{ID: p.ID, Subject: p.Subject}
			byID[p.ID] = &cp
			merged = &cp
			order = append(order, p.ID)
		}
		merged.PhenotypicFeatures = append(merged.PhenotypicFeatures, p.PhenotypicFeatures...)
		merged.Interpretations = append(merged.Interpretations, p.Interpretations...)
	}
	sort.Strings(order)

	meta := models.MetaData{
		Created:   opts.now().Format("2006-01-02T15:04:05Z"),
		CreatedBy: "phenosheet",
	}
	if index != nil {
		meta.Resources = []models.Resource{{
			ID:        "hp",
			Name:      "human phenotype ontology",
			URL:       "http://purl.obolibrary.org/obo/hp.owl",
			Version:   index.Version(),
			Namespace: "HP",
		}}
	}

	out := make([]models.Phenopacket, 0, len(order))
	for _, id := range order {
		p := byID[id]
		for i := range p.Interpretations {
			p.Interpretations[i].ID = fmt.Sprintf("%s-interpretation-%d", id, i)
		}
		p.MetaData = meta
		out = append(out, *p)
	}
	return out
}
