package models

import (
	"time"
)

// Interaction records a single handled agent request
type Interaction struct {
	ID           string      `db:"id"            json:"id"`
	CommandKind  CommandKind `db:"command_kind"  json:"command_kind"`
	Message      string      `db:"message"       json:"message"`
	ResponseText string      `db:"response_text" json:"response_text"`
	IsError      bool        `db:"is_error"      json:"is_error"`
	DurationMS   int64       `db:"duration_ms"   json:"duration_ms"`
	CreatedAt    time.Time   `db:"created_at"    json:"created_at"`
}
