// Package analytics derives the dashboard views from a fetched set of yield
// records. Every function is pure: it reads the slice it is given, never
// mutates it and never talks to the store, so all views computed from the
// same slice agree with each other.
package analytics

import "yieldboard/models"

// TotalProduction sums production over the records where it is numeric.
// It fails with a *ValidationError when the first record has no production
// field at all, which means the records do not come from a yield collection.
func TotalProduction(records []models.YieldRecord) (float64, error) {
	if len(records) == 0 {
		return 0, nil
	}
	if records[0].Production.State() == models.Missing {
		return 0, &ValidationError{Field: "production"}
	}

	var total float64
	for _, r := range records {
		if v, ok := r.Production.Float(); ok {
			total += v
		}
	}
	return total, nil
}
