package domain

import "time"

// Employee is a staff record. Email is unique across all employees.
// Facility assignments are many-to-many with replace semantics, mirroring
// the facility/tag relationship.
type Employee struct {
	ID         int64       `json:"id"`
	Name       string      `json:"name"`
	Address    string      `json:"address,omitempty"`
	Phone      string      `json:"phone,omitempty"`
	Email      string      `json:"email"`
	Facilities []*Facility `json:"facilities"`
	CreatedAt  time.Time   `json:"created_at"`
}
