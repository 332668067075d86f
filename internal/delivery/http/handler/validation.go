package handler

import (
	"fmt"
	"slices"

	"github.com/gdugdh24/roommate-backend/internal/domain"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterValidations adds the preference validators to gin's binding engine.
func RegisterValidations() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
	}
	if err := v.RegisterValidation("cooking_style", validateCookingStyle); err != nil {
		return err
	}
	return v.RegisterValidation("gender_preference", validateGenderPreference)
}

func validateCookingStyle(fl validator.FieldLevel) bool {
	return slices.Contains(domain.CookingStyles, fl.Field().String())
}

func validateGenderPreference(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case domain.GenderNoPreference, domain.SexMale, domain.SexFemale:
		return true
	}
	return false
}
