package features

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/nekruzvatanshoev/carprice/pkg/carprice/dal"
	"github.com/nekruzvatanshoev/carprice/pkg/carprice/errs"
	"github.com/pkg/errors"
)

// validate is safe for concurrent use and caches struct metadata
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// Validate checks the numeric ranges and enumerations of a prediction input.
// Brand and model are checked by Resolve against the specs table.
func Validate(in dal.PredictionInput) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return errs.New(errs.ErrorTypeBadRequest, err.Error())
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "min":
			msgs = append(msgs, fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param()))
		case "max":
			msgs = append(msgs, fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param()))
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s must be one of: %s", fe.Field(), strings.ReplaceAll(fe.Param(), " ", ", ")))
		default:
			msgs = append(msgs, fmt.Sprintf("%s is invalid", fe.Field()))
		}
	}
	return errs.New(errs.ErrorTypeBadRequest, strings.Join(msgs, "; "))
}

// Canonical returns the choice matching value case-insensitively, or value trimmed when none does
func Canonical(value string, choices ...string) string {
	value = strings.TrimSpace(value)
	for _, c := range choices {
		if strings.EqualFold(value, c) {
			return c
		}
	}
	return value
}

// CanonicalFuel spells a fuel type the way the form lists it
func CanonicalFuel(fuel string) string {
	return Canonical(fuel, dal.FuelPetrol, dal.FuelDiesel, dal.FuelCNG, dal.FuelLPG, dal.FuelElectric)
}

// CanonicalTransmission spells a transmission the way the form lists it
func CanonicalTransmission(transmission string) string {
	return Canonical(transmission, dal.TransmissionManual, dal.TransmissionAutomatic)
}
