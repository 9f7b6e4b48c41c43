package shift

import "github.com/opsdesk/shiftdesk/internal/models"

// Totals is the derived aggregation view over one shift table.
type Totals struct {
	RowTotals  map[int]int    `json:"row_totals"`
	ColTotals  map[string]int `json:"col_totals"`
	GrandTotal int            `json:"grand_total"`
}

// TableTotals sums the table's counters per member, per bucket, and overall.
// Sparse or missing count entries contribute zero.
func TableTotals(table *models.ShiftTable) Totals {
	totals := Totals{
		RowTotals: make(map[int]int),
		ColTotals: make(map[string]int),
	}
	if table == nil {
		return totals
	}
	for memberID, byBucket := range table.Counts {
		for bucketID, n := range byBucket {
			totals.RowTotals[memberID] += n
			totals.ColTotals[bucketID] += n
			totals.GrandTotal += n
		}
	}
	return totals
}
