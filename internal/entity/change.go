package entity

import "time"

// Tables that emit change events.
const (
	TableAnnouncements     = "announcements"
	TableInstitutionImages = "institution_images"
	TableProfiles          = "profiles"
)

type ChangeKind string

const (
	ChangeInsert ChangeKind = "INSERT"
	ChangeUpdate ChangeKind = "UPDATE"
	ChangeDelete ChangeKind = "DELETE"
)

// ChangeEvent is emitted after a committed mutation of a table row.
type ChangeEvent struct {
	Table    string     `json:"table"`
	Kind     ChangeKind `json:"kind"`
	RecordId string     `json:"record_id"`
	At       time.Time  `json:"at"`
}
