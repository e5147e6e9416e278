package domain

import "time"

// AuditEvent records a single mutating operation for the audit trail.
type AuditEvent struct {
	Actor     string    // user id of the caller, or "anonymous"
	Action    string    // e.g. "user.create", "user.delete", "auth.login"
	TargetID  string    // affected record id, if any
	Outcome   string    // "ok" or "error"
	Timestamp time.Time
}
