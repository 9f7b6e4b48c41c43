// repositories/audit_repository.go

package repositories

import (
	"context"
	"database/sql"
	"time"

	"github.com/opsdesk/shiftdesk/internal/models"
)

type AuditRepository struct {
	db *sql.DB
}

func NewAuditRepository(db *sql.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

func (r *AuditRepository) Insert(ctx context.Context, e *models.AuditEntry) error {
	query := `
		INSERT INTO audit_log (ts, team_id, actor_id, actor_name, action, target_id, target_name, msg, detail)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.db.ExecContext(ctx, query,
		time.UnixMilli(e.TS),
		e.TeamID,
		e.ActorID,
		e.ActorName,
		e.Action,
		e.TargetID,
		e.TargetName,
		e.Msg,
		e.Detail,
	)
	return err
}

// RecentByTeam returns the newest audit entries for one team.
func (r *AuditRepository) RecentByTeam(ctx context.Context, teamID string, limit int) ([]models.AuditEntry, error) {
	query := `
		SELECT ts, team_id, actor_id, actor_name, action, target_id, target_name, msg, detail
		FROM audit_log
		WHERE team_id = $1
		ORDER BY ts DESC
		LIMIT $2
	`
	rows, err := r.db.QueryContext(ctx, query, teamID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.AuditEntry
	for rows.Next() {
		var e models.AuditEntry
		var ts time.Time
		if err := rows.Scan(&ts, &e.TeamID, &e.ActorID, &e.ActorName, &e.Action, &e.TargetID, &e.TargetName, &e.Msg, &e.Detail); err != nil {
			return nil, err
		}
		e.TS = ts.UnixMilli()
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
