package validators

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/MKhiriev/go-tours/internal/app"
	"github.com/MKhiriev/go-tours/models"
	"github.com/go-playground/validator/v10"
)

// StructValidator checks the `validate` tags of documents and requests.
// Failures are reported with the JSON names of the offending fields.
type StructValidator struct {
	validate *validator.Validate
}

func NewValidator() Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})

	// references are validated by their id
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		return field.FieldByName("ID").String()
	},
		models.Ref[models.UserSummary]{},
		models.Ref[models.TourSummary]{},
	)

	// free text arrives with angle brackets escaped; its length is
	// measured on what the user typed
	_ = v.RegisterValidation("textmin", textLength(func(n, bound int) bool { return n >= bound }))
	_ = v.RegisterValidation("textmax", textLength(func(n, bound int) bool { return n <= bound }))

	return &StructValidator{validate: v}
}

var textUnescaper = strings.NewReplacer("&lt;", "<", "&gt;", ">")

func textLength(ok func(n, bound int) bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		bound, err := strconv.Atoi(fl.Param())
		if err != nil {
			return false
		}
		return ok(utf8.RuneCountInString(textUnescaper.Replace(fl.Field().String())), bound)
	}
}

// Validate checks obj, which must be a struct or a pointer to one. When
// fields are given only those fields are checked, named by their Go
// struct path (e.g. "Name", "StartLocation.Coordinates").
func (v *StructValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	var err error
	if len(fields) > 0 {
		err = v.validate.StructPartialCtx(ctx, obj, fields...)
	} else {
		err = v.validate.StructCtx(ctx, obj)
	}
	if err == nil {
		return nil
	}

	var invalid *validator.InvalidValidationError
	if errors.As(err, &invalid) {
		return fmt.Errorf("%w: %T", ErrUnsupportedType, obj)
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	messages := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msg := message(fe)
		if !strings.HasSuffix(msg, "!") {
			msg += "."
		}
		messages = append(messages, msg)
	}

	return app.Wrapf(ErrInvalidInput, app.MsgInvalidInput, strings.Join(messages, " "))
}

func message(fe validator.FieldError) string {
	field := fe.Field()

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("Please provide %s", field)
	case "email":
		return "Please provide a valid email"
	case "uuid":
		return fmt.Sprintf("%s must be a valid id", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "eqfield":
		if fe.StructField() == "PasswordConfirm" {
			return "Passwords are not the same!"
		}
		return fmt.Sprintf("%s must equal %s", field, fe.Param())
	case "ltfield":
		return fmt.Sprintf("%s (%v) should be below %s", field, fe.Value(), lowerFirst(fe.Param()))
	case "min", "max", "len", "textmin", "textmax":
		return lengthMessage(fe)
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "lt":
		return fmt.Sprintf("%s must be less than %s", field, fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	}

	return fmt.Sprintf("%s is invalid", field)
}

func lengthMessage(fe validator.FieldError) string {
	unit := "characters"
	switch fe.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		unit = "items"
	case reflect.String:
	default:
		unit = ""
	}

	bound := map[string]string{
		"min": "at least", "max": "at most", "len": "exactly",
		"textmin": "at least", "textmax": "at most",
	}[fe.Tag()]
	if unit == "" {
		return fmt.Sprintf("%s must be %s %s", fe.Field(), bound, fe.Param())
	}

	return fmt.Sprintf("%s must have %s %s %s", fe.Field(), bound, fe.Param(), unit)
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}

	return strings.ToLower(s[:1]) + s[1:]
}
