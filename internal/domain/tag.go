package domain

// Tag is a named label used to categorize facilities (e.g. "Wedding").
// Names are unique with exact, case-sensitive matching: "Wedding" and
// "wedding" are distinct tags.
type Tag struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// FacilityTag is the many-to-many relationship between facilities and tags.
// A facility's tag set never contains duplicates.
type FacilityTag struct {
	FacilityID int64 `json:"facility_id"`
	TagID      int64 `json:"tag_id"`
}
