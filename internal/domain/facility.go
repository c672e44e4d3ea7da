package domain

import "time"

// Facility is a bookable catering venue: a name, exactly one location, and a
// set of tags. Location and Tags are populated on reads; writes go through
// LocationID and the tag association table.
type Facility struct {
	ID           int64          `json:"id"`
	Name         string         `json:"name"`
	LocationID   int64          `json:"location_id"`
	Location     *Location      `json:"location,omitempty"`
	Tags         []*Tag         `json:"tags"`
	Metadata     map[string]any `json:"metadata,omitempty"`
	CreationDate time.Time      `json:"creation_date"`
}
