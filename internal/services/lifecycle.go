package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/opsdesk/shiftdesk/internal/models"
	"github.com/opsdesk/shiftdesk/internal/shift"
	"github.com/opsdesk/shiftdesk/internal/store"
)

// Roster is the roster-directory contract the lifecycle reads from.
type Roster interface {
	ActiveMembersOfTeam(ctx context.Context, teamID string) ([]models.RosterMember, error)
}

// TableService owns the shift table lifecycle: rotation bookkeeping, lazy
// table creation, and non-destructive roster synchronization.
type TableService struct {
	docs   *store.Documents
	roster Roster
	audit  *AuditService
	logger *zap.Logger
}

func NewTableService(docs *store.Documents, roster Roster, audit *AuditService, logger *zap.Logger) *TableService {
	return &TableService{docs: docs, roster: roster, audit: audit, logger: logger}
}

// EnsureTable resolves the shift key for team at now, records a rotation when
// the key changed, and returns the (possibly freshly seeded) table. The
// returned bool reports that a rotation happened on this call.
func (s *TableService) EnsureTable(ctx context.Context, now time.Time, team models.Team) (*models.ShiftTable, bool, error) {
	key := shift.ShiftKeyFor(now, team)

	pointer, err := s.docs.LoadPointer(ctx)
	if err != nil {
		return nil, false, fmt.Errorf("load shift pointer: %w", err)
	}
	rotated, next := shift.CheckRotation(pointer, key, now.UnixMilli())
	if rotated {
		// Audit first, then persist the pointer and build the table.
		s.audit.Record(models.AuditEntry{
			TS:        now.UnixMilli(),
			TeamID:    team.ID,
			ActorID:   0,
			ActorName: "system",
			Action:    "shift_rotation",
			TargetID:  key,
			Msg:       "shift rotated",
			Detail:    fmt.Sprintf("%s -> %s", pointer.CurrentKey, key),
		})
		if err := s.docs.SavePointer(ctx, next); err != nil {
			return nil, false, fmt.Errorf("save shift pointer: %w", err)
		}
	}

	table, err := s.docs.LoadTable(ctx, key)
	if errors.Is(err, store.ErrNotFound) {
		table, err = s.seedTable(ctx, now, key, team)
		if err != nil {
			return nil, rotated, err
		}
		return table, rotated, nil
	}
	if err != nil {
		return nil, rotated, fmt.Errorf("load shift table: %w", err)
	}

	if err := s.syncRoster(ctx, table); err != nil {
		// A roster hiccup on refresh keeps the existing member list.
		s.logger.Warn("roster sync skipped", zap.String("shift_key", key), zap.Error(err))
	}
	return table, rotated, nil
}

func (s *TableService) seedTable(ctx context.Context, now time.Time, key string, team models.Team) (*models.ShiftTable, error) {
	buckets, err := s.docs.LoadBucketConfig(ctx, team.ID)
	if err != nil {
		return nil, fmt.Errorf("load bucket config: %w", err)
	}
	if len(buckets) == 0 {
		buckets = shift.DefaultBuckets(team)
	}

	members, err := s.roster.ActiveMembersOfTeam(ctx, team.ID)
	if err != nil {
		return nil, fmt.Errorf("snapshot roster: %w", err)
	}
	if members == nil {
		members = []models.RosterMember{}
	}

	table := &models.ShiftTable{
		Meta: models.ShiftMeta{
			ShiftKey:       key,
			TeamID:         team.ID,
			TeamLabel:      team.Label,
			DutyStart:      team.StartMinute,
			DutyEnd:        team.EndMinute,
			BucketManagers: make(map[string]models.BucketManager),
			CreatedAt:      now.UnixMilli(),
		},
		Buckets:     buckets,
		Members:     members,
		Counts:      make(map[int]map[string]int),
		Assignments: []models.Assignment{},
	}
	if err := s.docs.SaveTable(ctx, table); err != nil {
		return nil, fmt.Errorf("persist shift table: %w", err)
	}
	return table, nil
}

// syncRoster replaces the displayed member list with the current roster
// snapshot, in roster order. Counts and assignments of members no longer on
// the roster stay in the table and remain queryable by id. The merge is
// idempotent: an unchanged roster writes nothing.
func (s *TableService) syncRoster(ctx context.Context, table *models.ShiftTable) error {
	fresh, err := s.roster.ActiveMembersOfTeam(ctx, table.Meta.TeamID)
	if err != nil {
		return err
	}
	if fresh == nil {
		fresh = []models.RosterMember{}
	}
	if membersEqual(table.Members, fresh) {
		return nil
	}
	table.Members = fresh
	return s.docs.SaveTable(ctx, table)
}

func membersEqual(a, b []models.RosterMember) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// PreviousTable returns the one retained prior shift's table, or nil when
// there is none.
func (s *TableService) PreviousTable(ctx context.Context) (*models.ShiftTable, error) {
	pointer, err := s.docs.LoadPointer(ctx)
	if err != nil {
		return nil, err
	}
	if pointer.PreviousKey == "" {
		return nil, nil
	}
	table, err := s.docs.LoadTable(ctx, pointer.PreviousKey)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	return table, err
}
