// handlers/audit_handler.go
package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/opsdesk/shiftdesk/internal/models"
	"github.com/opsdesk/shiftdesk/internal/pkg/response"
	"github.com/opsdesk/shiftdesk/internal/repositories"
)

// GetAuditLogHandler returns the newest audit entries for a team.
func GetAuditLogHandler(repo *repositories.AuditRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		teamID := r.URL.Query().Get("team")
		if teamID == "" {
			response.RespondWithError(w, http.StatusBadRequest, "team is required")
			return
		}
		limit := 50
		if raw := r.URL.Query().Get("limit"); raw != "" {
			if v, err := strconv.Atoi(raw); err == nil && v > 0 && v <= 500 {
				limit = v
			}
		}

		entries, err := repo.RecentByTeam(r.Context(), teamID, limit)
		if err != nil {
			log.Printf("DB error fetching audit log for team %s: %v", teamID, err)
			response.RespondWithError(w, http.StatusInternalServerError, "Database error")
			return
		}
		if entries == nil {
			entries = []models.AuditEntry{}
		}
		response.RespondWithJSON(w, http.StatusOK, entries)
	}
}
