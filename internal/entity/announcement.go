package entity

import (
	"database/sql"
	"time"
)

// Announcement represents the announcement table
type Announcement struct {
	Id        string    `db:"id"`
	CreatedAt time.Time `db:"created_at"`
	AnnouncementInsert
}

// AnnouncementInsert holds the author supplied part of an announcement.
// Image fields are filled from the stored object when an image was uploaded.
type AnnouncementInsert struct {
	Title         string         `db:"title"`
	Content       string         `db:"content"`
	AuthorId      string         `db:"author_id"`
	ImageURL      sql.NullString `db:"image_url"`
	ImageBlurHash sql.NullString `db:"image_blurhash"`
	ImageWidth    sql.NullInt32  `db:"image_width"`
	ImageHeight   sql.NullInt32  `db:"image_height"`
}

// WithImage attaches a stored object to the insert.
func (ai *AnnouncementInsert) WithImage(obj *StoredObject) {
	if obj == nil {
		return
	}
	ai.ImageURL = sql.NullString{String: obj.URL, Valid: obj.URL != ""}
	ai.ImageBlurHash = sql.NullString{String: obj.BlurHash, Valid: obj.BlurHash != ""}
	ai.ImageWidth = sql.NullInt32{Int32: int32(obj.Width), Valid: obj.Width > 0}
	ai.ImageHeight = sql.NullInt32{Int32: int32(obj.Height), Valid: obj.Height > 0}
}
