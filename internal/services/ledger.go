package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/opsdesk/shiftdesk/internal/models"
	"github.com/opsdesk/shiftdesk/internal/store"
)

// Notifier is the notification-dispatch contract, fire-and-forget.
type Notifier interface {
	Notify(n models.Notification)
}

// Actor identifies the user performing a ledger mutation.
type Actor struct {
	ID   int
	Name string
}

// LedgerService creates and confirms assignments on the active shift table.
type LedgerService struct {
	docs     *store.Documents
	tables   *TableService
	audit    *AuditService
	notifier Notifier
	logger   *zap.Logger
}

func NewLedgerService(docs *store.Documents, tables *TableService, audit *AuditService, notifier Notifier, logger *zap.Logger) *LedgerService {
	return &LedgerService{docs: docs, tables: tables, audit: audit, notifier: notifier, logger: logger}
}

// Assign hands caseNo to memberID in bucketID on table. The case number must
// be unique, case-insensitively, across the current and the retained previous
// shift. The acting user becomes the bucket's manager of record.
func (s *LedgerService) Assign(ctx context.Context, now time.Time, table *models.ShiftTable, memberID int, bucketID, caseNo, desc string, actor Actor) (*models.Assignment, error) {
	caseNo = strings.TrimSpace(caseNo)
	if caseNo == "" {
		return nil, ErrEmptyCaseNo
	}
	if !bucketExists(table.Buckets, bucketID) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownBucket, bucketID)
	}
	if !memberOnRoster(table.Members, memberID) {
		return nil, fmt.Errorf("%w: %d", ErrUnknownMember, memberID)
	}

	previous, err := s.tables.PreviousTable(ctx)
	if err != nil {
		return nil, fmt.Errorf("load previous shift: %w", err)
	}
	for _, t := range []*models.ShiftTable{table, previous} {
		if t == nil {
			continue
		}
		for _, a := range t.Assignments {
			if strings.EqualFold(a.CaseNo, caseNo) {
				return nil, &DuplicateCaseError{CaseNo: caseNo, ShiftKey: t.Meta.ShiftKey}
			}
		}
	}

	nowMS := now.UnixMilli()
	if table.Counts[memberID] == nil {
		table.Counts[memberID] = make(map[string]int)
	}
	table.Counts[memberID][bucketID]++

	assignment := models.Assignment{
		ID:         uuid.NewString(),
		CaseNo:     caseNo,
		Desc:       desc,
		AssigneeID: memberID,
		BucketID:   bucketID,
		AssignedAt: nowMS,
		ActorID:    actor.ID,
		ActorName:  actor.Name,
	}
	table.Assignments = append(table.Assignments, assignment)

	// Last assigner in a bucket is its manager of record.
	table.Meta.BucketManagers[bucketID] = models.BucketManager{
		ActorID: actor.ID,
		Name:    actor.Name,
		At:      nowMS,
	}

	if err := s.docs.SaveTable(ctx, table); err != nil {
		return nil, fmt.Errorf("persist shift table: %w", err)
	}

	s.audit.Record(models.AuditEntry{
		TS:        nowMS,
		TeamID:    table.Meta.TeamID,
		ActorID:   actor.ID,
		ActorName: actor.Name,
		Action:    "case_assigned",
		TargetID:  assignment.ID,
		Msg:       fmt.Sprintf("case %s assigned", caseNo),
		Detail:    fmt.Sprintf("member=%d bucket=%s", memberID, bucketID),
	})
	s.notifier.Notify(models.Notification{
		TS:         nowMS,
		Type:       "case_assigned",
		TeamID:     table.Meta.TeamID,
		FromID:     actor.ID,
		FromName:   actor.Name,
		Title:      "New case assigned",
		Body:       fmt.Sprintf("Case %s: %s", caseNo, desc),
		Recipients: []int{memberID},
	})

	return &assignment, nil
}

// Confirm marks an assignment as acknowledged by its assignee. ConfirmedAt is
// written exactly once; repeats surface ErrAlreadyConfirmed without touching it.
func (s *LedgerService) Confirm(ctx context.Context, now time.Time, table *models.ShiftTable, assignmentID string, actorID int) (*models.Assignment, error) {
	idx := -1
	for i := range table.Assignments {
		if table.Assignments[i].ID == assignmentID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, ErrAssignmentNotFound
	}

	assignment := &table.Assignments[idx]
	if assignment.AssigneeID != actorID {
		return nil, ErrNotAssignee
	}
	if assignment.ConfirmedAt != nil {
		return nil, ErrAlreadyConfirmed
	}

	nowMS := now.UnixMilli()
	assignment.ConfirmedAt = &nowMS
	assignment.ConfirmedByID = actorID

	if err := s.docs.SaveTable(ctx, table); err != nil {
		return nil, fmt.Errorf("persist shift table: %w", err)
	}

	s.audit.Record(models.AuditEntry{
		TS:       nowMS,
		TeamID:   table.Meta.TeamID,
		ActorID:  actorID,
		Action:   "case_confirmed",
		TargetID: assignment.ID,
		Msg:      fmt.Sprintf("case %s confirmed", assignment.CaseNo),
	})

	return assignment, nil
}

func bucketExists(buckets []models.TimeBucket, id string) bool {
	for _, b := range buckets {
		if b.ID == id {
			return true
		}
	}
	return false
}

func memberOnRoster(members []models.RosterMember, id int) bool {
	for _, m := range members {
		if m.ID == id {
			return true
		}
	}
	return false
}
