package binder

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var languageRE = regexp.MustCompile(`^[a-z]{2}(-[A-Z]{2})?$`)

// languageValidator ensures the value looks like a two-letter language code,
// optionally with a region suffix ("en", "ru", "pt-BR"). The empty string is
// allowed so the validator can be combined with required when the field is
// mandatory.
func languageValidator(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return languageRE.MatchString(value)
}
