package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/opsdesk/shiftdesk/internal/models"
	"github.com/opsdesk/shiftdesk/internal/store"
)

type fakeRoster struct {
	mu      sync.Mutex
	members []models.RosterMember
	err     error
}

func (f *fakeRoster) ActiveMembersOfTeam(_ context.Context, _ string) ([]models.RosterMember, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	out := make([]models.RosterMember, len(f.members))
	copy(out, f.members)
	return out, nil
}

func (f *fakeRoster) set(members []models.RosterMember) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.members = members
}

// recordingAudit hands inserted entries to a channel so tests can wait for
// the fire-and-forget goroutine instead of sleeping.
type recordingAudit struct {
	entries chan models.AuditEntry
}

func newRecordingAudit() *recordingAudit {
	return &recordingAudit{entries: make(chan models.AuditEntry, 16)}
}

func (r *recordingAudit) Insert(_ context.Context, e *models.AuditEntry) error {
	r.entries <- *e
	return nil
}

func (r *recordingAudit) waitFor(t *testing.T, action string) models.AuditEntry {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case e := <-r.entries:
			if e.Action == action {
				return e
			}
		case <-deadline:
			t.Fatalf("no %q audit entry recorded", action)
		}
	}
}

type fakeNotifier struct {
	mu            sync.Mutex
	notifications []models.Notification
}

func (f *fakeNotifier) Notify(n models.Notification) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.notifications = append(f.notifications, n)
}

func (f *fakeNotifier) all() []models.Notification {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.Notification, len(f.notifications))
	copy(out, f.notifications)
	return out
}

// countingStore counts Set calls so tests can assert a no-op merge writes nothing.
type countingStore struct {
	*store.MemoryStore
	mu   sync.Mutex
	sets int
}

func newCountingStore() *countingStore {
	return &countingStore{MemoryStore: store.NewMemoryStore()}
}

func (c *countingStore) Set(ctx context.Context, key string, doc []byte) error {
	c.mu.Lock()
	c.sets++
	c.mu.Unlock()
	return c.MemoryStore.Set(ctx, key, doc)
}

func (c *countingStore) setCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sets
}

type fixture struct {
	docs     *store.Documents
	kv       *countingStore
	roster   *fakeRoster
	audit    *recordingAudit
	notifier *fakeNotifier
	tables   *TableService
	ledger   *LedgerService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	kv := newCountingStore()
	docs := store.NewDocuments(kv)
	roster := &fakeRoster{members: []models.RosterMember{
		{ID: 1, Name: "Alice Reyes", Username: "alice", Role: "lead"},
		{ID: 2, Name: "Ben Cruz", Username: "ben", Role: "member"},
	}}
	audit := newRecordingAudit()
	notifier := &fakeNotifier{}
	logger := zap.NewNop()

	tables := NewTableService(docs, roster, NewAuditService(audit, logger), logger)
	ledger := NewLedgerService(docs, tables, NewAuditService(audit, logger), notifier, logger)
	return &fixture{docs: docs, kv: kv, roster: roster, audit: audit, notifier: notifier, tables: tables, ledger: ledger}
}

func dayTeam() models.Team {
	return models.Team{ID: "day", Label: "Day", StartMinute: 9 * 60, EndMinute: 18 * 60}
}

func swingTeam() models.Team {
	return models.Team{ID: "swing", Label: "Swing", StartMinute: 18 * 60, EndMinute: 22 * 60}
}

func at(hour, min int) time.Time {
	return time.Date(2026, 3, 14, hour, min, 0, 0, time.UTC)
}

func mustEnsure(t *testing.T, f *fixture, now time.Time, team models.Team) *models.ShiftTable {
	t.Helper()
	table, _, err := f.tables.EnsureTable(context.Background(), now, team)
	require.NoError(t, err)
	return table
}
