package domain

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/go-playground/validator/v10"
)

var unitNameRe = regexp.MustCompile(`^[a-z][a-z0-9-]{0,31}$`)

// SpawnRequest asks the arena for a new unit
//
// swagger:model
type SpawnRequest struct {
	// The name of the unit: lowercase letters, digits and hyphens
	//
	// required: true
	// pattern: ^[a-z][a-z0-9-]{0,31}$
	// example: bob
	Name string `json:"name" yaml:"name" validate:"required,unitname"`

	// The kind of the unit
	//
	// required: true
	// enum: human,zombie
	Kind string `json:"kind" yaml:"kind" validate:"required,oneof=human zombie"`
}

// WalkRequest asks a unit to walk a number of steps
//
// swagger:model
type WalkRequest struct {
	// Number of steps to walk
	//
	// required: true
	// min: 1
	// max: 100
	Steps int `json:"steps" validate:"required,min=1,max=100"`
}

type Validation struct {
	validator *validator.Validate
}

func NewValidation() *Validation {
	v := validator.New()
	v.RegisterValidation("unitname", validateUnitName)
	return &Validation{validator: v}
}

func validateUnitName(fl validator.FieldLevel) bool {
	return unitNameRe.MatchString(fl.Field().String())
}

// ValidationError wraps the validator's FieldError
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error implements the error interface
func (v ValidationError) Error() string {
	return fmt.Sprintf("Field '%s': %s", v.Field, v.Message)
}

// ValidationErrors is a slice of ValidationError
type ValidationErrors []ValidationError

// Error implements the error interface
func (v ValidationErrors) Error() string {
	switch len(v) {
	case 0:
		return "validation failed"
	case 1:
		return "validation failed: " + v[0].Error()
	}
	return fmt.Sprintf("validation failed: %s (and %d more)", v[0].Error(), len(v)-1)
}

// Validate checks i against its validate tags. An empty result means i is valid.
func (v *Validation) Validate(i interface{}) ValidationErrors {
	var errs ValidationErrors

	err := v.validator.Struct(i)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return ValidationErrors{{Message: err.Error()}}
	}

	for _, ve := range validationErrors {
		errs = append(errs, ValidationError{
			Field:   ve.Namespace(),
			Message: fmt.Sprintf("failed on the '%s' tag", ve.Tag()),
		})
	}

	return errs
}
