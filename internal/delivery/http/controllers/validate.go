package controllers

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"EduPortal/internal/app_errors"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	}
}

// bindJSON decodes and validates a request body, reshaping validator
// failures into the field-keyed form the 400 responses use.
func bindJSON(c *gin.Context, obj any) *app_errors.ValidationError {
	err := c.ShouldBindJSON(obj)
	if err == nil {
		return nil
	}

	var ferrs validator.ValidationErrors
	if errors.As(err, &ferrs) {
		verr := &app_errors.ValidationError{}
		for _, fe := range ferrs {
			verr.Add(fe.Field(), messageFor(fe))
		}
		return verr
	}
	return app_errors.NewValidationError("non_field_errors", "Invalid request body.")
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Enter a valid email address."
	case "max":
		return fmt.Sprintf("Ensure this field has no more than %s characters.", fe.Param())
	case "min":
		return fmt.Sprintf("Ensure this field has at least %s characters.", fe.Param())
	default:
		return "This field is invalid."
	}
}
