package domain

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks a user record against its struct rules
func Validate(u User) error {
	err := validate.Struct(u)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field())
	}
	return &ValidationError{Fields: fields}
}

// SplitFullName splits "Ali Can Veli" into first "Ali Can" and last "Veli".
// The name must be at least 2 characters and hold at least two words.
func SplitFullName(name string) (first, last string, err error) {
	name = strings.TrimSpace(name)
	parts := strings.Fields(name)
	if len(name) < 2 || len(parts) < 2 {
		return "", "", &ValidationError{Fields: []string{"FullName"}}
	}
	last = parts[len(parts)-1]
	first = strings.Join(parts[:len(parts)-1], " ")
	return first, last, nil
}
