// Package validator adapts go-playground/validator to echo's Validator interface.
package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	playground "github.com/go-playground/validator/v10"

	"github.com/octobees/llm-maps/api/internal/apperr"
)

// Validator validates request DTOs using struct tags.
type Validator struct {
	v *playground.Validate
}

// New creates a validator with the domain tags registered.
func New() *Validator {
	v := playground.New(playground.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("latlng", validateLatLng)
	return &Validator{v: v}
}

// Validate implements echo.Validator. Failures are validation errors whose message
// is already caller-facing.
func (val *Validator) Validate(i any) error {
	if err := val.v.Struct(i); err != nil {
		return apperr.Wrap(apperr.KindValidation, Message(err), err)
	}
	return nil
}

// Message turns a validation error into one caller-facing sentence.
func Message(err error) string {
	var verrs playground.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return err.Error()
	}

	fe := verrs[0]
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s%s parameter is required", strings.ToUpper(field[:1]), field[1:])
	case "latlng":
		return fmt.Sprintf("%s must be formatted as \"lat,lng\"", field)
	case "min", "gte":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max", "lte":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

// validateLatLng accepts "lat,lng" with lat in [-90,90] and lng in [-180,180].
func validateLatLng(fl playground.FieldLevel) bool {
	value := strings.TrimSpace(fl.Field().String())
	if value == "" {
		return true
	}
	parts := strings.Split(value, ",")
	if len(parts) != 2 {
		return false
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil || lat < -90 || lat > 90 {
		return false
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil || lng < -180 || lng > 180 {
		return false
	}
	return true
}
