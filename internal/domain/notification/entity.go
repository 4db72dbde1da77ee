package notification

import "time"

type Type string

const (
	TypeTask   Type = "TASK"
	TypeLeave  Type = "LEAVE"
	TypeSystem Type = "SYSTEM"
)

type Notification struct {
	ID        string
	UserID    string
	Title     string
	Message   string
	Type      Type
	Link      *string
	Read      bool
	CreatedAt time.Time
}
