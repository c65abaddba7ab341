package domain

import "time"

// WorkspaceRecord is the stored form of a workspace query.
type WorkspaceRecord struct {
	ID        string    `json:"id"`
	Query     string    `json:"query"`
	UpdatedAt time.Time `json:"updated_at"`
}
