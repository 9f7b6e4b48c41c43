// handlers/shift_handler.go
package handlers

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/opsdesk/shiftdesk/config"
	"github.com/opsdesk/shiftdesk/internal/clock"
	"github.com/opsdesk/shiftdesk/internal/pkg/response"
	"github.com/opsdesk/shiftdesk/internal/services"
	"github.com/opsdesk/shiftdesk/internal/shift"
)

type ShiftHandler struct {
	db       *sql.DB
	resolver *services.Resolver
	tables   *services.TableService
	ledger   *services.LedgerService
	clock    *clock.Clock
}

func NewShiftHandler(db *sql.DB, resolver *services.Resolver, tables *services.TableService, ledger *services.LedgerService, clk *clock.Clock) *ShiftHandler {
	return &ShiftHandler{db: db, resolver: resolver, tables: tables, ledger: ledger, clock: clk}
}

// GetCurrentShift resolves the active duty window and returns the full state:
// window, seconds left, active bucket, table, and totals.
func (h *ShiftHandler) GetCurrentShift(w http.ResponseWriter, r *http.Request) {
	userID, _ := r.Context().Value(config.UserIDKey).(int)
	state, err := h.resolver.Resolve(r.Context(), userID)
	if err != nil {
		log.Printf("shift resolution failed: %v", err)
		response.RespondWithError(w, http.StatusInternalServerError, "Failed to resolve shift")
		return
	}
	response.RespondWithJSON(w, http.StatusOK, state)
}

// GetPreviousShift returns the one retained prior shift's table, read-only.
func (h *ShiftHandler) GetPreviousShift(w http.ResponseWriter, r *http.Request) {
	table, err := h.tables.PreviousTable(r.Context())
	if err != nil {
		log.Printf("previous shift load failed: %v", err)
		response.RespondWithError(w, http.StatusInternalServerError, "Failed to load previous shift")
		return
	}
	if table == nil {
		response.RespondWithJSON(w, http.StatusOK, nil)
		return
	}
	response.RespondWithJSON(w, http.StatusOK, map[string]interface{}{
		"table":  table,
		"totals": shift.TableTotals(table),
	})
}

type assignRequest struct {
	MemberID int    `json:"member_id"`
	BucketID string `json:"bucket_id"`
	CaseNo   string `json:"case_no"`
	Desc     string `json:"desc"`
}

func (h *ShiftHandler) AssignCase(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(config.UserIDKey).(int)
	if !ok {
		response.RespondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var req assignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.RespondWithError(w, http.StatusBadRequest, "Invalid request data")
		return
	}

	state, err := h.resolver.Resolve(r.Context(), userID)
	if err != nil {
		log.Printf("shift resolution failed: %v", err)
		response.RespondWithError(w, http.StatusInternalServerError, "Failed to resolve shift")
		return
	}
	now := time.UnixMilli(state.NowMS).In(h.clock.Location())

	actor := services.Actor{ID: userID, Name: h.lookupName(userID)}
	assignment, err := h.ledger.Assign(r.Context(), now, state.Table, req.MemberID, req.BucketID, req.CaseNo, req.Desc, actor)
	if err != nil {
		respondLedgerError(w, err)
		return
	}
	response.RespondWithJSON(w, http.StatusCreated, assignment)
}

type confirmRequest struct {
	AssignmentID string `json:"assignment_id"`
}

func (h *ShiftHandler) ConfirmAssignment(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(config.UserIDKey).(int)
	if !ok {
		response.RespondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var req confirmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.AssignmentID == "" {
		response.RespondWithError(w, http.StatusBadRequest, "Invalid request data")
		return
	}

	state, err := h.resolver.Resolve(r.Context(), userID)
	if err != nil {
		log.Printf("shift resolution failed: %v", err)
		response.RespondWithError(w, http.StatusInternalServerError, "Failed to resolve shift")
		return
	}
	now := time.UnixMilli(state.NowMS).In(h.clock.Location())

	assignment, err := h.ledger.Confirm(r.Context(), now, state.Table, req.AssignmentID, userID)
	if err != nil {
		respondLedgerError(w, err)
		return
	}
	response.RespondWithJSON(w, http.StatusOK, assignment)
}

// respondLedgerError maps each ledger error kind to its own status so the
// client can tell validation, duplicates, and workflow violations apart.
func respondLedgerError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrEmptyCaseNo),
		errors.Is(err, services.ErrUnknownBucket),
		errors.Is(err, services.ErrUnknownMember):
		response.RespondWithError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrDuplicateCase):
		response.RespondWithError(w, http.StatusConflict, err.Error())
	case errors.Is(err, services.ErrAssignmentNotFound):
		response.RespondWithError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrNotAssignee):
		response.RespondWithError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, services.ErrAlreadyConfirmed):
		response.RespondWithError(w, http.StatusConflict, err.Error())
	default:
		log.Printf("ledger operation failed: %v", err)
		response.RespondWithError(w, http.StatusInternalServerError, "Operation failed")
	}
}

func (h *ShiftHandler) lookupName(userID int) string {
	var name string
	if err := h.db.QueryRow("SELECT name FROM users WHERE id = $1", userID).Scan(&name); err != nil {
		return ""
	}
	return name
}
