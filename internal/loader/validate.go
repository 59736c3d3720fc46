package loader

import (
	"errors"
	"fmt"

	"github.com/svg-loader/backend/internal/models"
)

// FieldError reports one out-of-range setting.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// Validate is the opt-in strict check of resolved settings. Resolve and New
// never call it. All violations are returned joined.
func Validate(s models.Settings) error {
	var errs []error
	check := func(ok bool, field, reason string) {
		if !ok {
			errs = append(errs, &FieldError{Field: field, Reason: reason})
		}
	}

	check(s.ContainerID != "", "containerId", "must not be empty")
	check(s.SVGID != "", "svgId", "must not be empty")
	check(s.Fill != "", "fill", "must not be empty")
	check(s.Size > 0, "size", "must be greater than 0")
	check(s.Radius >= 0, "radius", "must not be negative")
	check(s.Duration > 0, "duration", "must be greater than 0")
	check(s.MaxOpacity >= 0 && s.MaxOpacity <= 1, "maxOpacity", "must be within [0, 1]")
	check(s.MinOpacity >= 0 && s.MinOpacity <= 1, "minOpacity", "must be within [0, 1]")
	check(s.MaxOpacity >= s.MinOpacity, "maxOpacity", "must not be below minOpacity")
	check(s.Margin >= 0, "margin", "must not be negative")
	check(s.NbRects >= 1, "nbRects", "must be at least 1")

	return errors.Join(errs...)
}

// FieldErrors extracts every FieldError from an error returned by Validate.
func FieldErrors(err error) []*FieldError {
	if err == nil {
		return nil
	}
	var out []*FieldError
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		for _, e := range joined.Unwrap() {
			out = append(out, FieldErrors(e)...)
		}
		return out
	}
	var fe *FieldError
	if errors.As(err, &fe) {
		out = append(out, fe)
	}
	return out
}
