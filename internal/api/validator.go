package api

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/rowolff/bb-character-sheet/internal/game/gear"
	"github.com/rowolff/bb-character-sheet/internal/game/ruleset"
)

// Validator checks request structs. Besides the built-in tags it knows
// rarity, weapon, manufacturer, class and archetype, which accept any
// spelling the terminal accepts.
type Validator struct {
	validate *validator.Validate
}

// NewValidator registers the catalog-aware tags against tables and rules.
//
// Precondition: tables and rules are non-nil.
func NewValidator(tables *gear.Tables, rules *ruleset.Registry) *Validator {
	v := validator.New()

	_ = v.RegisterValidation("rarity", func(fl validator.FieldLevel) bool {
		_, err := gear.ParseRarity(fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("weapon", func(fl validator.FieldLevel) bool {
		_, err := tables.ParseWeapon(fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("manufacturer", func(fl validator.FieldLevel) bool {
		_, err := tables.ParseManufacturer(fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("class", func(fl validator.FieldLevel) bool {
		_, ok := rules.Class(fl.Field().String())
		return ok
	})
	_ = v.RegisterValidation("archetype", func(fl validator.FieldLevel) bool {
		_, ok := rules.Archetype(fl.Field().String())
		return ok
	})

	// Report query parameter names instead of Go field names.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("query"), ",")
		if name == "" || name == "-" {
			return strings.ToLower(f.Name)
		}
		return name
	})

	return &Validator{validate: v}
}

// ValidateStruct validates s using its tags.
func (v *Validator) ValidateStruct(s any) error {
	return v.validate.Struct(s)
}

// FormatValidationError maps each failing field to a user-facing message.
func FormatValidationError(err error) map[string]string {
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"error": ErrMsgInvalidRequest}
	}

	fields := make(map[string]string, len(verrs))
	for _, e := range verrs {
		field := e.Field()
		switch e.Tag() {
		case "required":
			fields[field] = "This field is required"
		case "min":
			fields[field] = fmt.Sprintf("Must be at least %s", e.Param())
		case "max":
			fields[field] = fmt.Sprintf("Must be at most %s", e.Param())
		case "rarity":
			fields[field] = "Unknown rarity"
		case "weapon":
			fields[field] = "Unknown weapon type"
		case "manufacturer":
			fields[field] = "Unknown manufacturer"
		case "class":
			fields[field] = "Unknown class"
		case "archetype":
			fields[field] = "Unknown archetype"
		default:
			fields[field] = "Invalid value"
		}
	}
	return fields
}
