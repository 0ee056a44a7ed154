package models

import "github.com/go-playground/validator/v10"

// Request DTOs mirror the backend's validation rules so bad input is refused
// before a network write is attempted.

type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,password"`
	Phone    string `json:"phone" validate:"required,ruphone"`
	Address  string `json:"address" validate:"required"`
}

type UpdateProfileRequest struct {
	Name    string `json:"name" validate:"required"`
	Phone   string `json:"phone" validate:"required,ruphone"`
	Address string `json:"address" validate:"required"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=6,password"`
}

// NewValidator returns a validator with the backend's custom rules
// registered: "ruphone" (11 digits, leading 7) and "password" (at least one
// letter and one digit).
func NewValidator() *validator.Validate {
	v := validator.New()

	// Registration errors only happen for invalid tags; both are literals.
	_ = v.RegisterValidation("ruphone", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		if len(s) != 11 || s[0] != '7' {
			return false
		}
		for _, r := range s {
			if r < '0' || r > '9' {
				return false
			}
		}
		return true
	})
	_ = v.RegisterValidation("password", func(fl validator.FieldLevel) bool {
		var hasLetter, hasDigit bool
		for _, r := range fl.Field().String() {
			switch {
			case r >= '0' && r <= '9':
				hasDigit = true
			case (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'):
				hasLetter = true
			}
		}
		return hasLetter && hasDigit
	})

	return v
}
