package gerr

import (
	"database/sql"
	"errors"
	"net/http"
	"sort"
	"strings"
)

var (
	ErrValidation        = errors.New("validation failed")
	ErrNotFound          = errors.New("not found")
	ErrUnauthenticated   = errors.New("unauthenticated")
	ErrForbidden         = errors.New("forbidden")
	ErrUnsupportedLocale = errors.New("unsupported locale")
	ErrUploadFailed      = errors.New("upload failed")
	ErrStorage           = errors.New("storage failed")
	ErrRateLimited       = errors.New("rate limited")
	ErrAlreadyExists     = errors.New("already exists")
	ErrInvalidCredential = errors.New("invalid credentials")
)

// ValidationError carries per field messages. It matches ErrValidation.
type ValidationError struct {
	Fields map[string]string
}

func (ve *ValidationError) Error() string {
	if len(ve.Fields) == 0 {
		return ErrValidation.Error()
	}
	keys := make([]string, 0, len(ve.Fields))
	for k := range ve.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+ve.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (ve *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// HTTPStatus maps an error chain to a response status.
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrValidation), errors.Is(err, ErrUnsupportedLocale):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound), errors.Is(err, sql.ErrNoRows):
		return http.StatusNotFound
	case errors.Is(err, ErrUnauthenticated), errors.Is(err, ErrInvalidCredential):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, ErrRateLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, ErrUploadFailed), errors.Is(err, ErrStorage):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

// NoticeKey returns the catalog key of the user facing message for err.
func NoticeKey(err error) string {
	switch {
	case errors.Is(err, ErrValidation):
		return "notice.validation"
	case errors.Is(err, ErrUnsupportedLocale):
		return "notice.unsupportedLocale"
	case errors.Is(err, ErrNotFound), errors.Is(err, sql.ErrNoRows):
		return "notice.notFound"
	case errors.Is(err, ErrUnauthenticated):
		return "notice.unauthenticated"
	case errors.Is(err, ErrInvalidCredential):
		return "notice.invalidCredentials"
	case errors.Is(err, ErrForbidden):
		return "notice.forbidden"
	case errors.Is(err, ErrAlreadyExists):
		return "notice.alreadyExists"
	case errors.Is(err, ErrRateLimited):
		return "notice.rateLimited"
	case errors.Is(err, ErrUploadFailed):
		return "notice.uploadFailed"
	}
	return "notice.error"
}
