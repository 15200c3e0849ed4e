// Package form binds and validates the HTML form submissions of the site.
package form

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"unicode"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

// NonField collects errors that belong to the form as a whole.
const NonField = "__all__"

// Errors maps a field name to its validation messages.
type Errors map[string][]string

func (e Errors) Add(field, message string) {
	e[field] = append(e[field], message)
}

func (e Errors) Any() bool {
	return len(e) > 0
}

// Widget describes how a renderer should draw a field.
type Widget struct {
	Type        string `json:"type"`
	Placeholder string `json:"placeholder,omitempty"`
	Class       string `json:"class"`
	Rows        int    `json:"rows,omitempty"`
	Accept      string `json:"accept,omitempty"`
}

// Checkbox accepts the values browsers send for a ticked box ("on") as well as
// plain booleans.
type Checkbox bool

func (c *Checkbox) UnmarshalParam(param string) error {
	switch strings.ToLower(strings.TrimSpace(param)) {
	case "on", "true", "1", "yes":
		*c = true
	default:
		*c = false
	}
	return nil
}

func init() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	_ = v.RegisterValidation("notblank", validators.NotBlank)
	_ = v.RegisterValidation("notnumeric", notNumeric)
	_ = v.RegisterValidation("username", validUsername)
}

// Bind fills dst from the request body (form, multipart or JSON) and returns the
// validation messages keyed by form field name.
func Bind(c *gin.Context, dst interface{}) Errors {
	errs := Errors{}
	err := c.ShouldBind(dst)
	if err == nil {
		return errs
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		errs.Add(NonField, "Invalid form submission.")
		return errs
	}
	for _, fe := range verrs {
		errs.Add(fe.Field(), message(fe))
	}
	return errs
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return "This field is required."
	case "max":
		return fmt.Sprintf("Ensure this value has at most %s characters.", fe.Param())
	case "min":
		return fmt.Sprintf("Ensure this value has at least %s characters.", fe.Param())
	case "email":
		return "Enter a valid email address."
	case "url":
		return "Enter a valid URL."
	case "uuid":
		return "Select a valid choice."
	case "eqfield":
		return "The two password fields didn't match."
	case "notnumeric":
		return "This password is entirely numeric."
	case "username":
		return "Enter a valid username. This value may contain only letters, numbers, and @/./+/-/_ characters."
	default:
		return "Enter a valid value."
	}
}

func notNumeric(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return true
		}
	}
	return s == ""
}

func validUsername(fl validator.FieldLevel) bool {
	for _, r := range fl.Field().String() {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || strings.ContainsRune("@.+-_", r) {
			continue
		}
		return false
	}
	return true
}
