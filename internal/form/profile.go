package form

import (
	v "github.com/go-ozzo/ozzo-validation/v4"
	gerr "github.com/jekabolt/edupath/internal/errors"
)

type UpdateProfileRequest struct {
	FullName      string `json:"full_name"`
	TrainingField string `json:"training_field"`
}

func (f *UpdateProfileRequest) Validate() error {
	if f == nil {
		return gerr.ErrValidation
	}
	return ValidateStruct(f,
		v.Field(&f.FullName, v.Required, notBlank, v.RuneLength(1, 255)),
		v.Field(&f.TrainingField, v.By(validTrainingField)),
	)
}

type SetLocaleRequest struct {
	Locale string `json:"locale"`
}

func (f *SetLocaleRequest) Validate() error {
	if f == nil {
		return gerr.ErrValidation
	}
	return ValidateStruct(f,
		v.Field(&f.Locale, v.Required),
	)
}
