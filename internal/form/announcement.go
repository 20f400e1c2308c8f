package form

import (
	v "github.com/go-ozzo/ozzo-validation/v4"
	gerr "github.com/jekabolt/edupath/internal/errors"
)

type PublishAnnouncementRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

func (f *PublishAnnouncementRequest) Validate() error {
	if f == nil {
		return gerr.ErrValidation
	}
	return ValidateStruct(f,
		v.Field(&f.Title, v.Required, notBlank, v.RuneLength(1, 255)),
		v.Field(&f.Content, v.Required, notBlank),
	)
}
