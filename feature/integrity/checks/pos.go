package checks

import (
	"context"

	"catalog-sync/core/reconcile"
)

// POSReport is the result of the POS connectivity check.
type POSReport struct {
	Reachable  bool     `json:"reachable"`
	Categories int      `json:"categories"`
	Families   []string `json:"families_with_categories"`
	Error      string   `json:"error,omitempty"`
}

// CheckPOS lists the POS categories and reports which families own at
// least one of them.
func CheckPOS(ctx context.Context, client reconcile.DownstreamClient, adapters []reconcile.Adapter) *POSReport {
	report := &POSReport{Families: []string{}}

	categories, err := client.ListCategories(ctx)
	if err != nil {
		report.Error = err.Error()
		return report
	}
	report.Reachable = true
	report.Categories = len(categories)

	for _, a := range adapters {
		for _, c := range categories {
			if a.OwnsCategory(c.Name) {
				report.Families = append(report.Families, a.Name())
				break
			}
		}
	}
	return report
}
