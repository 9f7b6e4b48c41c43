package services

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/opsdesk/shiftdesk/internal/clock"
	"github.com/opsdesk/shiftdesk/internal/models"
	"github.com/opsdesk/shiftdesk/internal/shift"
)

// ShiftState is one fully resolved view of the active shift, produced on
// every tick and on demand for the HTTP API.
type ShiftState struct {
	Now          string             `json:"now"`
	NowMS        int64              `json:"now_ms"`
	Team         models.Team        `json:"team"`
	NextTeam     models.Team        `json:"next_team"`
	SecondsLeft  int                `json:"seconds_left"`
	ShiftKey     string             `json:"shift_key"`
	ActiveBucket models.TimeBucket  `json:"active_bucket"`
	Table        *models.ShiftTable `json:"table"`
	Totals       shift.Totals       `json:"totals"`
	Rotated      bool               `json:"rotated"`
}

// Resolver drives the per-tick resolution pipeline:
// clock -> duty window -> shift key / rotation -> table -> totals.
type Resolver struct {
	clock  *clock.Clock
	teams  []models.Team
	tables *TableService
	hub    *Hub
	logger *zap.Logger
}

func NewResolver(clk *clock.Clock, teams []models.Team, tables *TableService, hub *Hub, logger *zap.Logger) *Resolver {
	return &Resolver{clock: clk, teams: teams, tables: tables, hub: hub, logger: logger}
}

// Resolve runs one resolution pass as actorID (0 for the system tick).
func (r *Resolver) Resolve(ctx context.Context, actorID int) (*ShiftState, error) {
	now := r.clock.Now(ctx, actorID)
	res, err := shift.Resolve(now, r.teams)
	if err != nil {
		return nil, err
	}
	table, rotated, err := r.tables.EnsureTable(ctx, now, res.Current)
	if err != nil {
		return nil, err
	}
	return &ShiftState{
		Now:          now.Format(time.RFC3339),
		NowMS:        now.UnixMilli(),
		Team:         res.Current,
		NextTeam:     res.Next,
		SecondsLeft:  res.SecondsLeft,
		ShiftKey:     table.Meta.ShiftKey,
		ActiveBucket: shift.ActiveBucket(shift.MinuteOfDay(now), table.Buckets),
		Table:        table,
		Totals:       shift.TableTotals(table),
		Rotated:      rotated,
	}, nil
}

// Run re-resolves on every tick and broadcasts the state to connected
// sessions until ctx is done.
func (r *Resolver) Run(ctx context.Context, interval time.Duration) {
	r.logger.Info("resolution loop started", zap.Duration("interval", interval))
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("resolution loop stopped")
			return
		case <-ticker.C:
			state, err := r.Resolve(ctx, 0)
			if err != nil {
				r.logger.Warn("resolution tick failed", zap.Error(err))
				continue
			}
			data, err := json.Marshal(map[string]interface{}{
				"type":  "shift_state",
				"state": state,
			})
			if err != nil {
				continue
			}
			r.hub.Broadcast(data)
		}
	}
}
