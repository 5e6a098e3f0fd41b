package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

type FieldError struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Param   string `json:"param,omitempty"`
	Message string `json:"message,omitempty"`
}

func init() {
	// report fields by their json names instead of the Go struct names
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(jsonTagName)
	}
}

// BindJSON decodes and validates the body into out. On failure it writes the
// error response and returns false.
func BindJSON(ctx *gin.Context, out interface{}) bool {
	err := ctx.ShouldBindJSON(out)

	if err == nil {
		return true
	}

	var tooLarge *http.MaxBytesError

	if errors.As(err, &tooLarge) {
		RespondError(ctx, http.StatusRequestEntityTooLarge, "body_too_large",
			fmt.Sprintf("Request body must not exceed %d bytes", tooLarge.Limit), nil)
		return false
	}

	RespondBadRequest(ctx, "Invalid request body", parseBindError(err))

	return false
}

func parseBindError(err error) interface{} {
	var validatorError validator.ValidationErrors

	if errors.As(err, &validatorError) {
		fields := make([]FieldError, 0, len(validatorError))

		for _, fieldError := range validatorError {
			rule := fieldError.Tag()
			param := fieldError.Param()

			fields = append(fields, FieldError{
				Field:   fieldPath(fieldError),
				Rule:    rule,
				Param:   param,
				Message: validationMessage(rule, param),
			})
		}
		return gin.H{"fields": fields}
	}

	if errors.Is(err, io.EOF) {
		return gin.H{"json": "empty_body"}
	}

	var syntaxError *json.SyntaxError

	if errors.As(err, &syntaxError) || errors.Is(err, io.ErrUnexpectedEOF) {
		return gin.H{"json": "invalid_json_syntax"}
	}

	var typeError *json.UnmarshalTypeError

	if errors.As(err, &typeError) {
		// encoding/json already reports the path with json names
		field := strings.TrimSpace(typeError.Field)

		return gin.H{
			"json":  "invalid_json_type",
			"field": field,
			"fields": []FieldError{
				{
					Field:   field,
					Rule:    "type",
					Message: fmt.Sprintf("must be of type %s", typeError.Type.String()),
				},
			},
		}
	}

	return gin.H{"reason": err.Error()}
}

// fieldPath drops the root struct name from the namespace,
// "CreateCategoryRequest.display_name" -> "display_name".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()

	if _, rest, ok := strings.Cut(ns, "."); ok && rest != "" {
		return rest
	}

	return fe.Field()
}

func jsonTagName(sf reflect.StructField) string {
	name, _, _ := strings.Cut(sf.Tag.Get("json"), ",")

	switch name {
	case "-":
		return ""
	case "":
		return sf.Name
	default:
		return name
	}
}

func validationMessage(rule, param string) string {
	switch rule {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "min":
		return "must be at least " + param
	case "max":
		return "must be at most " + param
	default:
		if param != "" {
			return fmt.Sprintf("failed %s validation (%s)", rule, param)
		}
		return "failed " + rule + " validation"
	}
}
