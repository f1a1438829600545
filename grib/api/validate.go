package api

import (
	"github.com/go-playground/validator/v10"
)

var structValidator = validator.New()

// ValidateRange checks the static shape of a Range (First >= 0, Last >=
// First, Stride >= 1) via struct tags. It does not -- and cannot --
// check the range against an axis length, since that bound is only known
// once the target variable's coordinate sequences are in hand; that
// dynamic check is hand-written in grib/plan.
func ValidateRange(r Range) error {
	if err := structValidator.Struct(r); err != nil {
		return NewError(KindInvalidRequest, err)
	}
	return nil
}

// ValidateRanges validates each range independently.
func ValidateRanges(ranges []Range) error {
	for _, r := range ranges {
		if err := ValidateRange(r); err != nil {
			return err
		}
	}
	return nil
}
