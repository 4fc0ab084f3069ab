package v1

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type messageResponse struct {
	Message string `json:"message"`
} // @name MessageResponse

type fieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type validationErrorResponse struct {
	Message string       `json:"message"`
	Errors  []fieldError `json:"errors"`
} // @name ValidationErrorResponse

func newErrorResponse(c *gin.Context, statusCode int, message string) {
	c.AbortWithStatusJSON(statusCode, messageResponse{Message: message})
}

// bindingErrorResponse turns validator failures into field-level messages;
// any other binding problem becomes a generic 400.
func bindingErrorResponse(c *gin.Context, err error) {
	var verr validator.ValidationErrors
	if !errors.As(err, &verr) {
		newErrorResponse(c, http.StatusBadRequest, "Malformed request body")
		return
	}

	out := make([]fieldError, len(verr))
	for i, ferr := range verr {
		out[i] = fieldError{Field: ferr.Field(), Message: msgForTag(ferr.Tag(), ferr.Param())}
	}

	c.AbortWithStatusJSON(http.StatusBadRequest, validationErrorResponse{
		Message: "Validation error",
		Errors:  out,
	})
}

func msgForTag(tag string, value string) string {
	switch tag {
	case "required":
		return "This field is required"
	case "email":
		return "Please provide a valid email address"
	case "url":
		return "Please provide a valid URL"
	case "min":
		return fmt.Sprintf("Must be at least %v characters", value)
	case "max":
		return fmt.Sprintf("Must be at most %v characters", value)
	case "oneof":
		return fmt.Sprintf("Must be one of: %v", value)
	case "phone10":
		return "Please provide a valid 10-digit contact number"
	case "batchyear":
		return "Not a valid batch year (1956 - 2028)"
	}
	return tag
}
