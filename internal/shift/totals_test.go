package shift

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/opsdesk/shiftdesk/internal/models"
)

func TestTableTotals(t *testing.T) {
	table := &models.ShiftTable{
		Counts: map[int]map[string]int{
			1: {"b1": 2, "b2": 1},
			2: {"b2": 3},
			3: nil, // sparse entry must not panic
		},
	}
	totals := TableTotals(table)

	assert.Equal(t, 3, totals.RowTotals[1])
	assert.Equal(t, 3, totals.RowTotals[2])
	assert.Equal(t, 0, totals.RowTotals[3])
	assert.Equal(t, 2, totals.ColTotals["b1"])
	assert.Equal(t, 4, totals.ColTotals["b2"])
	assert.Equal(t, 6, totals.GrandTotal)

	rowSum, colSum := 0, 0
	for _, n := range totals.RowTotals {
		rowSum += n
	}
	for _, n := range totals.ColTotals {
		colSum += n
	}
	assert.Equal(t, totals.GrandTotal, rowSum)
	assert.Equal(t, totals.GrandTotal, colSum)
}

func TestTableTotals_EmptyAndNil(t *testing.T) {
	totals := TableTotals(nil)
	assert.Equal(t, 0, totals.GrandTotal)
	assert.NotNil(t, totals.RowTotals)
	assert.NotNil(t, totals.ColTotals)

	totals = TableTotals(&models.ShiftTable{})
	assert.Equal(t, 0, totals.GrandTotal)
}
