// repositories/roster_repository.go

package repositories

import (
	"context"
	"database/sql"

	"github.com/opsdesk/shiftdesk/internal/models"
)

type RosterRepository struct {
	db *sql.DB
}

func NewRosterRepository(db *sql.DB) *RosterRepository {
	return &RosterRepository{db: db}
}

// ActiveMembersOfTeam returns the team's active members, leads first, then by name.
func (r *RosterRepository) ActiveMembersOfTeam(ctx context.Context, teamID string) ([]models.RosterMember, error) {
	query := `
		SELECT u.id, u.name, u.username, u.role
		FROM users u
		JOIN team_members tm ON tm.user_id = u.id
		WHERE tm.team_id = $1 AND u.is_active = TRUE
		ORDER BY CASE WHEN u.role IN ('lead', 'admin') THEN 0 ELSE 1 END, u.name
	`
	rows, err := r.db.QueryContext(ctx, query, teamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []models.RosterMember
	for rows.Next() {
		var m models.RosterMember
		if err := rows.Scan(&m.ID, &m.Name, &m.Username, &m.Role); err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}
