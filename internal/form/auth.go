package form

import (
	v "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/jekabolt/edupath/internal/entity"
	gerr "github.com/jekabolt/edupath/internal/errors"
)

type SignupRequest struct {
	Email         string `json:"email"`
	Password      string `json:"password"`
	FullName      string `json:"full_name"`
	TrainingField string `json:"training_field"`
}

func (f *SignupRequest) Validate() error {
	if f == nil {
		return gerr.ErrValidation
	}
	return ValidateStruct(f,
		v.Field(&f.Email, v.Required, isEmail),
		v.Field(&f.Password, v.Required, v.RuneLength(8, 128)),
		v.Field(&f.FullName, v.Required, notBlank, v.RuneLength(1, 255)),
		v.Field(&f.TrainingField, v.By(validTrainingField)),
	)
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (f *LoginRequest) Validate() error {
	if f == nil {
		return gerr.ErrValidation
	}
	return ValidateStruct(f,
		v.Field(&f.Email, v.Required, isEmail),
		v.Field(&f.Password, v.Required),
	)
}

// AddUserRequest bootstraps staff and admin accounts from the CLI.
type AddUserRequest struct {
	Email    string
	Password string
	Role     string
}

func (f *AddUserRequest) Validate() error {
	if f == nil {
		return gerr.ErrValidation
	}
	return ValidateStruct(f,
		v.Field(&f.Email, v.Required, isEmail),
		v.Field(&f.Password, v.Required, v.RuneLength(8, 128)),
		v.Field(&f.Role, v.Required, v.In(string(entity.RoleTrainee), string(entity.RoleStaff), string(entity.RoleAdmin))),
	)
}

func validTrainingField(value interface{}) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	if !entity.TrainingField(s).Valid() {
		return v.NewError("validation_training_field", "must be a known training field")
	}
	return nil
}
