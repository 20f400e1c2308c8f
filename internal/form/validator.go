package form

import (
	"errors"
	"strings"
	"unicode"

	"github.com/asaskevich/govalidator"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	gerr "github.com/jekabolt/edupath/internal/errors"
)

// ValidateStruct runs ozzo field rules and folds their errors into a
// *gerr.ValidationError keyed by field name.
func ValidateStruct(structPtr interface{}, rules ...*validation.FieldRules) error {
	fields := map[string]string{}
	for _, rule := range rules {
		err := validation.ValidateStruct(structPtr, rule)
		if err == nil {
			continue
		}
		var ve validation.Errors
		if !errors.As(err, &ve) {
			// internal errors are programming mistakes, not user input
			return err
		}
		for k, e := range ve {
			fields[k] = formatErrMsg(e.Error())
		}
	}
	if len(fields) == 0 {
		return nil
	}
	return &gerr.ValidationError{Fields: fields}
}

func formatErrMsg(s string) string {
	return ucfirst(strings.Trim(s, " .")) + "."
}

func ucfirst(str string) string {
	for i, v := range str {
		return string(unicode.ToUpper(v)) + str[i+1:]
	}
	return ""
}

// notBlank rejects strings made of whitespace only.
var notBlank = validation.NewStringRuleWithError(
	func(s string) bool { return strings.TrimSpace(s) != "" },
	validation.ErrRequired,
)

var isUUID = validation.NewStringRuleWithError(
	govalidator.IsUUID,
	validation.ErrInInvalid.SetMessage("must be a valid id"),
)

var isEmail = validation.NewStringRuleWithError(
	govalidator.IsEmail,
	validation.ErrInInvalid.SetMessage("must be a valid email address"),
)
