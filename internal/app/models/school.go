package models

import "time"

// School represents one directory entry. Image is nil when no image was
// persisted for the record; clients render a placeholder in that case.
type School struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	City      string    `json:"city"`
	State     string    `json:"state"`
	Contact   int64     `json:"contact"`
	Image     *string   `json:"image"`
	EmailID   string    `json:"email_id"`
	CreatedAt time.Time `json:"created_at"`
}
