// handlers/override_handler.go
package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/opsdesk/shiftdesk/config"
	"github.com/opsdesk/shiftdesk/internal/clock"
	"github.com/opsdesk/shiftdesk/internal/models"
	"github.com/opsdesk/shiftdesk/internal/pkg/response"
	"github.com/opsdesk/shiftdesk/internal/store"
)

// OverrideHandler exposes the virtual-clock override and the operator bucket
// configuration to admins.
type OverrideHandler struct {
	docs *store.Documents
}

func NewOverrideHandler(docs *store.Documents) *OverrideHandler {
	return &OverrideHandler{docs: docs}
}

func (h *OverrideHandler) GetOverride(w http.ResponseWriter, r *http.Request) {
	ov, err := h.docs.LoadOverride(r.Context())
	if err != nil {
		log.Printf("override load failed: %v", err)
		response.RespondWithError(w, http.StatusInternalServerError, "Failed to load override")
		return
	}
	if ov == nil {
		ov = &models.ClockOverride{}
	}
	response.RespondWithJSON(w, http.StatusOK, ov)
}

type overrideRequest struct {
	Enabled bool   `json:"enabled"`
	BaseMS  int64  `json:"base_ms"`
	Freeze  bool   `json:"freeze"`
	Scope   string `json:"scope"`
}

func (h *OverrideHandler) SetOverride(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(config.UserIDKey).(int)
	if !ok {
		response.RespondWithError(w, http.StatusUnauthorized, "User not authenticated")
		return
	}

	var req overrideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.RespondWithError(w, http.StatusBadRequest, "Invalid request data")
		return
	}
	if req.Scope != models.ScopeActor && req.Scope != models.ScopeGlobal {
		req.Scope = models.ScopeActor
	}

	prev, err := h.docs.LoadOverride(r.Context())
	if err != nil {
		log.Printf("override load failed: %v", err)
		response.RespondWithError(w, http.StatusInternalServerError, "Failed to load override")
		return
	}

	next := clock.ApplyOverrideUpdate(prev, &models.ClockOverride{
		Enabled: req.Enabled,
		BaseMS:  req.BaseMS,
		Freeze:  req.Freeze,
		Scope:   req.Scope,
		ActorID: userID,
	}, time.Now().UnixMilli())

	if err := h.docs.SaveOverride(r.Context(), next); err != nil {
		log.Printf("override save failed: %v", err)
		response.RespondWithError(w, http.StatusInternalServerError, "Failed to save override")
		return
	}
	response.RespondWithJSON(w, http.StatusOK, next)
}

func (h *OverrideHandler) ClearOverride(w http.ResponseWriter, r *http.Request) {
	if err := h.docs.SaveOverride(r.Context(), &models.ClockOverride{}); err != nil {
		log.Printf("override clear failed: %v", err)
		response.RespondWithError(w, http.StatusInternalServerError, "Failed to clear override")
		return
	}
	response.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Override cleared"})
}

type bucketConfigRequest struct {
	TeamID  string              `json:"team_id"`
	Buckets []models.TimeBucket `json:"buckets"`
}

// SetBucketConfig stores operator-defined buckets for a team. Configured
// buckets are used verbatim and trusted to tile the duty window.
func (h *OverrideHandler) SetBucketConfig(w http.ResponseWriter, r *http.Request) {
	var req bucketConfigRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.TeamID == "" {
		response.RespondWithError(w, http.StatusBadRequest, "Invalid request data")
		return
	}
	for _, b := range req.Buckets {
		if b.ID == "" || b.StartMinute < 0 || b.StartMinute > 1439 || b.EndMinute < 0 || b.EndMinute > 1439 {
			response.RespondWithError(w, http.StatusBadRequest, "Invalid bucket definition: "+b.ID)
			return
		}
	}
	if err := h.docs.SaveBucketConfig(r.Context(), req.TeamID, req.Buckets); err != nil {
		log.Printf("bucket config save failed: %v", err)
		response.RespondWithError(w, http.StatusInternalServerError, "Failed to save bucket configuration")
		return
	}
	response.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Bucket configuration saved"})
}
