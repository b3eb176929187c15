package validation

import (
	"fmt"
	"regexp"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// clockPattern accepts 24-hour HH:MM with an optional leading zero on the hour.
var clockPattern = regexp.MustCompile(`^([0-1]?[0-9]|2[0-3]):[0-5][0-9]$`)

var (
	registerOnce sync.Once
	registerErr  error
)

// Register installs the custom tags used by request DTOs on gin's validator.
// It is safe to call more than once.
func Register() error {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			registerErr = fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
			return
		}
		if err := v.RegisterValidation("clock", validateClock); err != nil {
			registerErr = fmt.Errorf("register 'clock' validator: %w", err)
		}
	})
	return registerErr
}

// IsClock reports whether s is a valid HH:MM time of day.
func IsClock(s string) bool {
	return clockPattern.MatchString(s)
}

func validateClock(fl validator.FieldLevel) bool {
	return IsClock(fl.Field().String())
}
