package project

import "time"

// Status marks whether a project still accepts sessions.
type Status string

const (
	StatusActive   Status = "active"
	StatusArchived Status = "archived"
)

// Project is a container sessions are timed against.
type Project struct {
	ID           string    `json:"id"`
	OwnerID      string    `json:"owner_id"`
	Title        string    `json:"title"`
	Status       Status    `json:"status"`
	CreatedAtUTC time.Time `json:"created_at_utc"`
}

// ListItem is a lightweight representation for project pickers.
type ListItem struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}
