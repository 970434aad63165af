package phenosheet

import (
	"errors"
	"fmt"
)

// ErrNilWorkbook indicates Run was handed no workbook.
var ErrNilWorkbook = errors.New("nil workbook")

// ErrNilOntology indicates Run was handed no ontology index.
var ErrNilOntology = errors.New("nil ontology index")

// ErrNoUsableSheets indicates no sheet classified as genotype or phenotype.
var ErrNoUsableSheets = errors.New("no sheet classified as genotype or phenotype")

// SheetError wraps an error with the sheet and pipeline stage it occurred
// in.
type SheetError struct {
	SheetName string
	Stage     string // "headers", "classify", "rows", "build"
	Err       error
}

func (e *SheetError) Error() string {
	return fmt.Sprintf("sheet %q (%s): %v", e.SheetName, e.Stage, e.Err)
}

func (e *SheetError) Unwrap() error {
	return e.Err
}
