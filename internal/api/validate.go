package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldViolation is one entry of the `details` list on 400 responses.
type FieldViolation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report violations under the wire name, not the Go field name.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// checkStruct validates a bound request and maps every violation to a
// field-level message. Invalid fields are rejected, never coerced or
// dropped.
func checkStruct(req interface{}) []FieldViolation {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []FieldViolation{{Field: "body", Message: err.Error()}}
	}

	details := make([]FieldViolation, 0, len(verrs))
	for _, fe := range verrs {
		details = append(details, FieldViolation{
			Field:   fe.Field(),
			Message: violationMessage(fe),
		})
	}
	return details
}

func violationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "campo obbligatorio"
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("non può superare i %s caratteri", fe.Param())
		}
		return fmt.Sprintf("può contenere al massimo %s elementi", fe.Param())
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("deve contenere almeno %s caratteri", fe.Param())
		}
		return fmt.Sprintf("deve essere almeno %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("deve essere uno tra: %s", fe.Param())
	case "email":
		return "indirizzo email non valido"
	default:
		return fmt.Sprintf("valore non valido (%s)", fe.Tag())
	}
}

// decodeViolations turns a JSON decoding error into field-level details
// where possible (type mismatches carry the offending field name).
func decodeViolations(err error) []FieldViolation {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return []FieldViolation{{
			Field:   typeErr.Field,
			Message: fmt.Sprintf("tipo non valido: atteso %s", typeErr.Type.String()),
		}}
	}
	return []FieldViolation{{Field: "body", Message: "JSON non valido"}}
}
