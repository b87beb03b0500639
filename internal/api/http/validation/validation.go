// Package validation decodes and validates JSON request bodies and renders
// field errors as {"message": ..., "errors": {field: [...]}}.
package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

// ErrMalformedBody is returned by Bind when the body is not a JSON object.
var ErrMalformedBody = errors.New("malformed JSON body")

// Errors is a set of field-level validation failures.
type Errors struct {
	Message string              `json:"message"`
	Errors  map[string][]string `json:"errors"`

	order []string
}

func (e *Errors) Error() string {
	return e.Message
}

// Add records msg for field and refreshes the summary message.
func (e *Errors) Add(field, msg string) {
	if e.Errors == nil {
		e.Errors = make(map[string][]string)
	}
	if _, ok := e.Errors[field]; !ok {
		e.order = append(e.order, field)
	}
	e.Errors[field] = append(e.Errors[field], msg)
	e.summarize()
}

// Empty reports whether no field errors were recorded.
func (e *Errors) Empty() bool {
	return e == nil || len(e.Errors) == 0
}

func (e *Errors) summarize() {
	total := 0
	for _, msgs := range e.Errors {
		total += len(msgs)
	}
	first := e.Errors[e.order[0]][0]
	switch rest := total - 1; rest {
	case 0:
		e.Message = first
	case 1:
		e.Message = first + " (and 1 more error)"
	default:
		e.Message = fmt.Sprintf("%s (and %d more errors)", first, rest)
	}
}

// Validator wraps a validator configured to report json field names.
type Validator struct {
	v *validator.Validate
}

func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("notblank", validators.NotBlank)
	return &Validator{v: v}
}

// Struct validates s and returns nil or *Errors.
func (v *Validator) Struct(s any) error {
	err := v.v.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := &Errors{}
	for _, fe := range verrs {
		out.Add(fe.Field(), message(fe))
	}
	return out
}

// Normalizer is implemented by request types that tidy their decoded
// fields (trimming, dropping empty optionals) before validation runs.
type Normalizer interface {
	Normalize()
}

// Bind decodes the request body into dst and validates it. An empty body
// is treated as an empty object. The body must hold exactly one JSON value.
func (v *Validator) Bind(c *gin.Context, dst any) error {
	if c.Request.Body != nil {
		dec := json.NewDecoder(c.Request.Body)
		err := dec.Decode(dst)
		if err != nil && !errors.Is(err, io.EOF) {
			var typeErr *json.UnmarshalTypeError
			if errors.As(err, &typeErr) && typeErr.Field != "" {
				out := &Errors{}
				out.Add(typeErr.Field, typeMessage(typeErr))
				return out
			}
			return ErrMalformedBody
		}
		if err == nil {
			var extra json.RawMessage
			if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
				return ErrMalformedBody
			}
		}
	}
	if n, ok := dst.(Normalizer); ok {
		n.Normalize()
	}
	return v.Struct(dst)
}

// Respond writes err from Bind or Struct as a 422 or 400 response.
func Respond(c *gin.Context, err error) {
	var verrs *Errors
	if errors.As(err, &verrs) {
		c.JSON(http.StatusUnprocessableEntity, verrs)
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"message": "The request body must be a JSON object."})
}

func attribute(field string) string {
	return strings.ReplaceAll(field, "_", " ")
}

func message(fe validator.FieldError) string {
	attr := attribute(fe.Field())
	switch fe.Tag() {
	case "required", "notblank":
		return fmt.Sprintf("The %s field is required.", attr)
	case "max":
		return fmt.Sprintf("The %s field must not be greater than %s characters.", attr, fe.Param())
	case "datetime":
		return fmt.Sprintf("The %s field must be a valid date.", attr)
	case "oneof":
		return fmt.Sprintf("The selected %s is invalid.", attr)
	case "email":
		return fmt.Sprintf("The %s field must be a valid email address.", attr)
	default:
		return fmt.Sprintf("The %s field is invalid.", attr)
	}
}

func typeMessage(err *json.UnmarshalTypeError) string {
	attr := attribute(err.Field)
	t := err.Type
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() == reflect.String {
		return fmt.Sprintf("The %s field must be a string.", attr)
	}
	return fmt.Sprintf("The %s field is invalid.", attr)
}
