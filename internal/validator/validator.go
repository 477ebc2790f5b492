// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("card_game", validateCardGame)
		_ = v.RegisterValidation("card_condition", validateCardCondition)
		_ = v.RegisterValidation("grading_company", validateGradingCompany)
		_ = v.RegisterValidation("submission_status", validateSubmissionStatus)
		_ = v.RegisterValidation("cost_basis_method", validateCostBasisMethod)
		_ = v.RegisterValidation("period_type", validatePeriodType)
	}
}

func validateCardGame(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "pokemon", "magic", "yugioh", "sports", "other":
		return true
	}
	return false
}

func validateCardCondition(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "mint", "near_mint", "lightly_played", "moderately_played", "heavily_played", "damaged", "graded":
		return true
	}
	return false
}

func validateGradingCompany(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "PSA", "BGS", "CGC", "SGC", "TAG":
		return true
	}
	return false
}

func validateSubmissionStatus(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "preparing", "shipped", "received", "grading", "graded", "shipped_back", "returned":
		return true
	}
	return false
}

func validateCostBasisMethod(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "fifo", "lifo":
		return true
	}
	return false
}

func validatePeriodType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "month", "quarter", "year":
		return true
	}
	return false
}
