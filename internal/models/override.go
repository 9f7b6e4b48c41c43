package models

// Clock override scopes.
const (
	ScopeActor  = "actor"  // override applies only to the actor that set it
	ScopeGlobal = "global" // override applies to every caller
)

// ClockOverride substitutes the wall clock for testing and demos.
// When Freeze is set time stands still at BaseMS; otherwise time runs
// forward from BaseMS, measured against AnchorMS in real time.
type ClockOverride struct {
	Enabled  bool   `json:"enabled"`
	BaseMS   int64  `json:"base_ms"`
	Freeze   bool   `json:"freeze"`
	AnchorMS int64  `json:"anchor_ms"`
	Scope    string `json:"scope"`
	ActorID  int    `json:"actor_id"`
}
