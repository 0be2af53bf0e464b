package validator

import (
	"errors"
	"reflect"
	"strings"

	playground "github.com/go-playground/validator/v10"

	"filevault-api/internal/interface/api/rest/dto/auth"
)

var validate *playground.Validate

func init() {
	validate = playground.New(playground.WithRequiredStructEnabled())
	// report fields by their json names
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
}

func ValidateRegister(r auth.RegisterRequest) map[string]string {
	r.Username = strings.TrimSpace(r.Username)
	r.Email = strings.TrimSpace(r.Email)

	return validateStruct(r)
}

func ValidateLogin(r auth.LoginRequest) map[string]string {
	r.Username = strings.TrimSpace(r.Username)
	// password is not trimmed, but blank is as good as missing
	if strings.TrimSpace(r.Password) == "" {
		r.Password = ""
	}

	return validateStruct(r)
}

func validateStruct(v any) map[string]string {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs playground.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"request": err.Error()}
	}

	errs := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		if _, seen := errs[fe.Field()]; seen {
			continue
		}
		errs[fe.Field()] = message(fe)
	}

	return errs
}

func message(fe playground.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " should be valid"
	case "min", "max":
		return field + " length must be " + lengthBounds(field)
	default:
		return field + " is invalid"
	}
}

func lengthBounds(field string) string {
	switch field {
	case "username":
		return "3-50 characters"
	case "email":
		return "at most 100 characters"
	case "password":
		return "6-100 characters"
	}
	return "within bounds"
}
