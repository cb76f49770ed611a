package model

import "time"

const (
	ListKey  = "notifications"
	MaxItems = 50

	TypeSuccess = "success"
	TypeInfo    = "info"
	TypeWarning = "warning"
	TypeError   = "error"
)

type Notification struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	Type      string    `json:"type"`
	Timestamp time.Time `json:"ts"`
}
