package entity

import (
	"database/sql"
	"time"
)

type ImageType string

const (
	ImageTypeHero     ImageType = "hero"
	ImageTypeGallery  ImageType = "gallery"
	ImageTypeActivity ImageType = "activity"
	ImageTypeFacility ImageType = "facility"
)

var ImageTypes = []ImageType{
	ImageTypeHero,
	ImageTypeGallery,
	ImageTypeActivity,
	ImageTypeFacility,
}

func (it ImageType) Valid() bool {
	for _, t := range ImageTypes {
		if t == it {
			return true
		}
	}
	return false
}

// InstitutionImage represents the institution_image table
type InstitutionImage struct {
	Id        string    `db:"id"`
	CreatedAt time.Time `db:"created_at"`
	InstitutionImageInsert
}

type InstitutionImageInsert struct {
	Title        string         `db:"title"`
	Description  sql.NullString `db:"description"`
	ImageURL     string         `db:"image_url"`
	ObjectKey    string         `db:"object_key"`
	ImageType    ImageType      `db:"image_type"`
	DisplayOrder int            `db:"display_order"`
	IsActive     bool           `db:"is_active"`
	UploadedBy   string         `db:"uploaded_by"`
	BlurHash     sql.NullString `db:"blurhash"`
	Width        int            `db:"width"`
	Height       int            `db:"height"`
}
