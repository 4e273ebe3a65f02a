// Package validation validates decoded request bodies using struct tags
// (go-playground/validator) and reports failures as *errors.AppError.
//
//	type SignUpRequest struct {
//	    Email    string `json:"email" validate:"required"`
//	    Password string `json:"password" validate:"required"`
//	}
//	if err := validation.Validate(req); err != nil { ... }
package validation
