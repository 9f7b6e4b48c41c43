// Package store is the shared document layer. Documents are whole JSON blobs
// under prefixed keys with plain get/set semantics: no partial updates, no
// transactions, no concurrency token. Two writers racing on the same key are
// last-write-wins; the assignment ledger accepts that window (rotation is rare
// and idempotent, assignments validate against the in-memory copy before the
// replace).
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/opsdesk/shiftdesk/internal/models"
)

// ErrNotFound is returned when a key holds no document.
var ErrNotFound = errors.New("document not found")

// DocumentStore is the whole-document KV contract.
type DocumentStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, doc []byte) error
}

const (
	keyPointer  = "shiftdesk:pointer"
	keyOverride = "shiftdesk:clock_override"
	prefixTable = "shiftdesk:table:"
	prefixBuck  = "shiftdesk:buckets:"
)

// Documents wraps a DocumentStore with typed accessors. Optional fields are
// normalized once here, at the read boundary, so readers never see nil maps.
type Documents struct {
	kv DocumentStore
}

func NewDocuments(kv DocumentStore) *Documents {
	return &Documents{kv: kv}
}

func (d *Documents) LoadTable(ctx context.Context, shiftKey string) (*models.ShiftTable, error) {
	raw, err := d.kv.Get(ctx, prefixTable+shiftKey)
	if err != nil {
		return nil, err
	}
	var table models.ShiftTable
	if err := json.Unmarshal(raw, &table); err != nil {
		return nil, fmt.Errorf("decode shift table %s: %w", shiftKey, err)
	}
	normalizeTable(&table)
	return &table, nil
}

func (d *Documents) SaveTable(ctx context.Context, table *models.ShiftTable) error {
	raw, err := json.Marshal(table)
	if err != nil {
		return fmt.Errorf("encode shift table %s: %w", table.Meta.ShiftKey, err)
	}
	return d.kv.Set(ctx, prefixTable+table.Meta.ShiftKey, raw)
}

// LoadPointer returns the zero state when no pointer document exists yet.
func (d *Documents) LoadPointer(ctx context.Context) (models.ShiftPointerState, error) {
	var state models.ShiftPointerState
	raw, err := d.kv.Get(ctx, keyPointer)
	if errors.Is(err, ErrNotFound) {
		return state, nil
	}
	if err != nil {
		return state, err
	}
	if err := json.Unmarshal(raw, &state); err != nil {
		return models.ShiftPointerState{}, fmt.Errorf("decode shift pointer: %w", err)
	}
	return state, nil
}

func (d *Documents) SavePointer(ctx context.Context, state models.ShiftPointerState) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return err
	}
	return d.kv.Set(ctx, keyPointer, raw)
}

// LoadOverride returns nil when no override document exists.
func (d *Documents) LoadOverride(ctx context.Context) (*models.ClockOverride, error) {
	raw, err := d.kv.Get(ctx, keyOverride)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var ov models.ClockOverride
	if err := json.Unmarshal(raw, &ov); err != nil {
		// A corrupt override is a disabled override, never an error.
		return nil, nil
	}
	return &ov, nil
}

func (d *Documents) SaveOverride(ctx context.Context, ov *models.ClockOverride) error {
	raw, err := json.Marshal(ov)
	if err != nil {
		return err
	}
	return d.kv.Set(ctx, keyOverride, raw)
}

// LoadBucketConfig returns the operator-configured buckets for a team, or nil
// when the team uses the default split.
func (d *Documents) LoadBucketConfig(ctx context.Context, teamID string) ([]models.TimeBucket, error) {
	raw, err := d.kv.Get(ctx, prefixBuck+teamID)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var buckets []models.TimeBucket
	if err := json.Unmarshal(raw, &buckets); err != nil {
		return nil, fmt.Errorf("decode bucket config %s: %w", teamID, err)
	}
	return buckets, nil
}

func (d *Documents) SaveBucketConfig(ctx context.Context, teamID string, buckets []models.TimeBucket) error {
	raw, err := json.Marshal(buckets)
	if err != nil {
		return err
	}
	return d.kv.Set(ctx, prefixBuck+teamID, raw)
}

func normalizeTable(t *models.ShiftTable) {
	if t.Meta.BucketManagers == nil {
		t.Meta.BucketManagers = make(map[string]models.BucketManager)
	}
	if t.Counts == nil {
		t.Counts = make(map[int]map[string]int)
	}
	if t.Members == nil {
		t.Members = []models.RosterMember{}
	}
	if t.Assignments == nil {
		t.Assignments = []models.Assignment{}
	}
}
