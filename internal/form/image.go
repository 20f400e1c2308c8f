package form

import (
	v "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/jekabolt/edupath/internal/entity"
	gerr "github.com/jekabolt/edupath/internal/errors"
)

type UploadInstitutionImageRequest struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	ImageType    string `json:"image_type"`
	DisplayOrder int    `json:"display_order"`
	HasFile      bool   `json:"-"`
}

func (f *UploadInstitutionImageRequest) Validate() error {
	if f == nil {
		return gerr.ErrValidation
	}
	return ValidateStruct(f,
		v.Field(&f.Title, v.Required, notBlank, v.RuneLength(1, 255)),
		v.Field(&f.ImageType, v.Required, v.By(func(value interface{}) error {
			if !entity.ImageType(value.(string)).Valid() {
				return v.NewError("validation_image_type", "must be one of hero, gallery, activity, facility")
			}
			return nil
		})),
		v.Field(&f.DisplayOrder, v.Min(0)),
		v.Field(&f.HasFile, v.Required.Error("an image file is required")),
	)
}

type ImageIdRequest struct {
	Id string `json:"id"`
}

func (f *ImageIdRequest) Validate() error {
	if f == nil {
		return gerr.ErrValidation
	}
	return ValidateStruct(f,
		v.Field(&f.Id, v.Required, isUUID),
	)
}
