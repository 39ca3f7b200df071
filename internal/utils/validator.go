// internal/utils/validator.go
package utils

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

var tokenIDPattern = regexp.MustCompile(`^[0-9]+$`)

func init() {
	validate = validator.New()
	validate.RegisterValidation("token_id", validateTokenID)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

// NFT token ids are decimal strings; the protocol gateway converts them to
// uint256, so leading signs or hex are rejected here.
func validateTokenID(fl validator.FieldLevel) bool {
	return tokenIDPattern.MatchString(fl.Field().String())
}

// Validation tags for common fields
type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

func GetValidationErrors(err error) []ValidationError {
	var validationErrors []ValidationError

	if validationErrs, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrs {
			validationErrors = append(validationErrors, ValidationError{
				Field:   strings.ToLower(e.Field()),
				Tag:     e.Tag(),
				Message: getValidationMessage(e),
			})
		}
	}

	return validationErrors
}

func getValidationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "eth_addr":
		return e.Field() + " must be a valid 0x-prefixed address"
	case "token_id":
		return e.Field() + " must be a decimal token id"
	case "min":
		return e.Field() + " must be at least " + e.Param()
	case "max":
		return e.Field() + " must be at most " + e.Param()
	case "oneof":
		return e.Field() + " must be one of: " + e.Param()
	default:
		return e.Field() + " is invalid"
	}
}
