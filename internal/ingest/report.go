package ingest

import "fmt"

// Report summarises one ingestion run.
type Report struct {
	Categories int      `json:"categories"`
	Products   int      `json:"products"`
	Inventory  int      `json:"inventory"`
	Errors     []string `json:"errors"`
}

func NewReport() *Report {
	return &Report{Errors: []string{}}
}

// Add folds one row outcome into the report.
func (r *Report) Add(res RowResult) {
	if res.Err != nil {
		r.Errors = append(r.Errors, fmt.Sprintf("Row %d: %s", res.Row, res.Reason()))
		return
	}
	if res.Effect.CategoryCreated {
		r.Categories++
	}
	if res.Effect.ProductCreated {
		r.Products++
	}
	if res.Effect.InventoryCreated {
		r.Inventory++
	}
}

// Failed is the number of rows that were skipped.
func (r *Report) Failed() int {
	return len(r.Errors)
}
