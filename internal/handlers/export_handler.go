// handlers/export_handler.go
package handlers

import (
	"fmt"
	"log"
	"net/http"

	"github.com/xuri/excelize/v2"

	"github.com/opsdesk/shiftdesk/config"
	"github.com/opsdesk/shiftdesk/internal/pkg/response"
	"github.com/opsdesk/shiftdesk/internal/services"
	"github.com/opsdesk/shiftdesk/internal/shift"
)

// ExportShiftTable streams the current shift table as an XLSX workbook:
// one row per member, one column per bucket, plus row/column/grand totals.
func ExportShiftTable(resolver *services.Resolver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, _ := r.Context().Value(config.UserIDKey).(int)
		state, err := resolver.Resolve(r.Context(), userID)
		if err != nil {
			log.Printf("shift resolution failed: %v", err)
			response.RespondWithError(w, http.StatusInternalServerError, "Failed to resolve shift")
			return
		}
		table := state.Table
		totals := shift.TableTotals(table)

		f := excelize.NewFile()
		defer f.Close()
		sheet := f.GetSheetName(0)

		header := []interface{}{"Member", "Role"}
		for _, b := range table.Buckets {
			header = append(header, fmt.Sprintf("%s (%02d:%02d-%02d:%02d)",
				b.ID, b.StartMinute/60, b.StartMinute%60, b.EndMinute/60, b.EndMinute%60))
		}
		header = append(header, "Total")
		if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
			response.RespondWithError(w, http.StatusInternalServerError, "Failed to build export")
			return
		}

		row := 2
		for _, m := range table.Members {
			cells := []interface{}{m.Name, m.Role}
			for _, b := range table.Buckets {
				cells = append(cells, table.Counts[m.ID][b.ID])
			}
			cells = append(cells, totals.RowTotals[m.ID])
			cell, _ := excelize.CoordinatesToCellName(1, row)
			if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
				response.RespondWithError(w, http.StatusInternalServerError, "Failed to build export")
				return
			}
			row++
		}

		footer := []interface{}{"Total", ""}
		for _, b := range table.Buckets {
			footer = append(footer, totals.ColTotals[b.ID])
		}
		footer = append(footer, totals.GrandTotal)
		cell, _ := excelize.CoordinatesToCellName(1, row)
		if err := f.SetSheetRow(sheet, cell, &footer); err != nil {
			response.RespondWithError(w, http.StatusInternalServerError, "Failed to build export")
			return
		}

		filename := fmt.Sprintf("shift_%s.xlsx", table.Meta.ShiftKey)
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		if err := f.Write(w); err != nil {
			log.Printf("export write failed: %v", err)
		}
	}
}
