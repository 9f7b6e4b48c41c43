package models

// AuditEntry is one fire-and-forget audit record.
type AuditEntry struct {
	TS         int64  `json:"ts"`
	TeamID     string `json:"team_id"`
	ActorID    int    `json:"actor_id"`
	ActorName  string `json:"actor_name"`
	Action     string `json:"action"`
	TargetID   string `json:"target_id"`
	TargetName string `json:"target_name"`
	Msg        string `json:"msg"`
	Detail     string `json:"detail"`
}

// Notification is fanned out to its recipients at most once; no ack expected.
type Notification struct {
	TS         int64  `json:"ts"`
	Type       string `json:"type"`
	TeamID     string `json:"team_id"`
	FromID     int    `json:"from_id"`
	FromName   string `json:"from_name"`
	Title      string `json:"title"`
	Body       string `json:"body"`
	Recipients []int  `json:"recipients"`
}
