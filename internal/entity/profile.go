package entity

import (
	"database/sql"
	"time"
)

// TrainingField is one of the institution's training poles.
type TrainingField string

const (
	FieldSante           TrainingField = "sante"
	FieldArtisanat       TrainingField = "artisanat"
	FieldTourisme        TrainingField = "tourisme"
	FieldAgriculture     TrainingField = "agriculture"
	FieldDigital         TrainingField = "digital"
	FieldIndustrie       TrainingField = "industrie"
	FieldAgroIndustrie   TrainingField = "agro-industrie"
	FieldGestionCommerce TrainingField = "gestion-commerce"
	FieldArtGraphique    TrainingField = "art-graphique"
	FieldBTP             TrainingField = "btp"
	FieldPeche           TrainingField = "peche"
)

var TrainingFields = []TrainingField{
	FieldSante,
	FieldArtisanat,
	FieldTourisme,
	FieldAgriculture,
	FieldDigital,
	FieldIndustrie,
	FieldAgroIndustrie,
	FieldGestionCommerce,
	FieldArtGraphique,
	FieldBTP,
	FieldPeche,
}

func (tf TrainingField) Valid() bool {
	for _, f := range TrainingFields {
		if f == tf {
			return true
		}
	}
	return false
}

// Profile represents the profile table
type Profile struct {
	UserId    string    `db:"user_id"`
	UpdatedAt time.Time `db:"updated_at"`
	ProfileUpsert
}

type ProfileUpsert struct {
	FullName        string         `db:"full_name"`
	TrainingField   sql.NullString `db:"training_field"`
	PreferredLocale sql.NullString `db:"preferred_locale"`
}
