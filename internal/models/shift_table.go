package models

// ShiftPointerState tracks the active shift key and exactly one retained
// predecessor. It is written only on rotation.
type ShiftPointerState struct {
	CurrentKey   string `json:"current_key"`
	PreviousKey  string `json:"previous_key"`
	LastChangeAt int64  `json:"last_change_at"`
}

// TimeBucket is a sub-interval of a duty window, same wrap semantics as the window.
type TimeBucket struct {
	ID          string `json:"id"`
	StartMinute int    `json:"start_minute"`
	EndMinute   int    `json:"end_minute"`
}

// BucketManager records the last assigner in a bucket.
type BucketManager struct {
	ActorID int    `json:"actor_id"`
	Name    string `json:"name"`
	At      int64  `json:"at"`
}

type ShiftMeta struct {
	ShiftKey       string                   `json:"shift_key"`
	TeamID         string                   `json:"team_id"`
	TeamLabel      string                   `json:"team_label"`
	DutyStart      int                      `json:"duty_start"`
	DutyEnd        int                      `json:"duty_end"`
	BucketManagers map[string]BucketManager `json:"bucket_managers"`
	CreatedAt      int64                    `json:"created_at"`
}

// ShiftTable is the aggregate root for one shift instance. Counts and
// assignments only ever grow while the shift is current; once the key is
// superseded the table is read-only.
type ShiftTable struct {
	Meta        ShiftMeta              `json:"meta"`
	Buckets     []TimeBucket           `json:"buckets"`
	Members     []RosterMember         `json:"members"`
	Counts      map[int]map[string]int `json:"counts"`
	Assignments []Assignment           `json:"assignments"`
}

// Assignment is one case handed to one member in one bucket.
// ConfirmedAt transitions once from nil to a timestamp.
type Assignment struct {
	ID            string `json:"id"`
	CaseNo        string `json:"case_no"`
	Desc          string `json:"desc"`
	AssigneeID    int    `json:"assignee_id"`
	BucketID      string `json:"bucket_id"`
	AssignedAt    int64  `json:"assigned_at"`
	ActorID       int    `json:"actor_id"`
	ActorName     string `json:"actor_name"`
	ConfirmedAt   *int64 `json:"confirmed_at"`
	ConfirmedByID int    `json:"confirmed_by_id,omitempty"`
}
