package service

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/pollwise/survey-intake-api/internal/models"
)

// NewValidator builds the validator used for submission payloads, reporting
// fields by their json names.
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ValidateSubmission type-checks the untyped payload against the submission
// schema. It returns either a validated submission or the complete set of
// field errors; never both, never a partial value. Every failing field is
// reported, not just the first.
func ValidateSubmission(v *validator.Validate, raw map[string]any) (*models.SurveySubmission, []models.FieldError) {
	sub := &models.SurveySubmission{}
	var fieldErrs []models.FieldError
	badType := make(map[string]bool)

	collect := func(field string, ferr *models.FieldError) {
		if ferr != nil {
			fieldErrs = append(fieldErrs, *ferr)
			badType[field] = true
		}
	}

	var ferr *models.FieldError
	sub.Name, ferr = takeString(raw, "name")
	collect("name", ferr)
	sub.Email, ferr = takeString(raw, "email")
	collect("email", ferr)
	sub.Age, ferr = takeInt(raw, "age")
	collect("age", ferr)
	sub.Consent, ferr = takeBool(raw, "consent")
	collect("consent", ferr)
	sub.Rating, ferr = takeInt(raw, "rating")
	collect("rating", ferr)
	sub.Comments, ferr = takeString(raw, "comments")
	collect("comments", ferr)
	sub.UserAgent, ferr = takeString(raw, "user_agent")
	collect("user_agent", ferr)
	sub.SubmissionID, ferr = takeString(raw, "submission_id")
	collect("submission_id", ferr)

	if err := v.Struct(sub); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				// A field already reported as mistyped holds its zero
				// value; constraint failures on it would be noise.
				if badType[fe.Field()] {
					continue
				}
				fieldErrs = append(fieldErrs, models.FieldError{
					Field:      fe.Field(),
					Constraint: fe.Tag(),
					Message:    constraintMessage(fe),
				})
			}
		} else {
			fieldErrs = append(fieldErrs, models.FieldError{
				Field:      "",
				Constraint: "schema",
				Message:    err.Error(),
			})
		}
	}

	if len(fieldErrs) > 0 {
		return nil, fieldErrs
	}
	return sub, nil
}

func takeString(raw map[string]any, field string) (string, *models.FieldError) {
	value, present := raw[field]
	if !present || value == nil {
		return "", nil
	}
	s, ok := value.(string)
	if !ok {
		return "", typeError(field, "string", value)
	}
	return s, nil
}

func takeInt(raw map[string]any, field string) (*int, *models.FieldError) {
	value, present := raw[field]
	if !present || value == nil {
		return nil, nil
	}
	f, ok := value.(float64)
	if !ok {
		return nil, typeError(field, "integer", value)
	}
	if f != math.Trunc(f) {
		return nil, &models.FieldError{
			Field:      field,
			Constraint: "type",
			Message:    fmt.Sprintf("must be an integer, got fractional number %v", f),
		}
	}
	n := int(f)
	return &n, nil
}

func takeBool(raw map[string]any, field string) (*bool, *models.FieldError) {
	value, present := raw[field]
	if !present || value == nil {
		return nil, nil
	}
	b, ok := value.(bool)
	if !ok {
		return nil, typeError(field, "boolean", value)
	}
	return &b, nil
}

func typeError(field, want string, got any) *models.FieldError {
	return &models.FieldError{
		Field:      field,
		Constraint: "type",
		Message:    fmt.Sprintf("must be %s, got %s", want, jsonTypeName(got)),
	}
}

func jsonTypeName(value any) string {
	switch value.(type) {
	case string:
		return "string"
	case bool:
		return "boolean"
	case float64:
		return "number"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	case nil:
		return "null"
	default:
		return fmt.Sprintf("%T", value)
	}
}

func constraintMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "eq":
		return fmt.Sprintf("must be %s", fe.Param())
	case "gte":
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "lte":
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	default:
		return fmt.Sprintf("failed constraint %s", fe.Tag())
	}
}
