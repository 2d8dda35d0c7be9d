package dto

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// accountCodeRe matches chart-of-accounts codes like "1-1200" or "4-1110".
var accountCodeRe = regexp.MustCompile(`^\d-\d{4}$`)

// validAccountCode implements the "accountcode" binding tag.
func validAccountCode(fl validator.FieldLevel) bool {
	return accountCodeRe.MatchString(fl.Field().String())
}

// RegisterCustomValidators installs the custom binding validators on gin's
// validator engine. Call once during startup, before routes are served.
func RegisterCustomValidators() error {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		return v.RegisterValidation("accountcode", validAccountCode)
	}
	return nil
}
