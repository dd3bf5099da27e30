package models

import "time"

// Activity action constants recorded in the audit trail.
const (
	ActivityActionLogin  = "login"
	ActivityActionLogout = "logout"
	ActivityActionUpload = "upload"
)

// ActivityLog is an append-only audit record. Rows are inserted on login,
// logout and upload and are never updated or deleted.
type ActivityLog struct {
	ID        string    `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"user_id"`
	Action    string    `db:"action" json:"action"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
