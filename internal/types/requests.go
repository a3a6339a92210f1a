package types

import "github.com/go-playground/validator/v10"

// ResearchRequest represents an API request to start a research run.
type ResearchRequest struct {
	Topic string `json:"topic" validate:"required,min=1"`
	Depth string `json:"depth,omitempty" validate:"omitempty,oneof=shallow medium deep"`
}

// Validate validates the ResearchRequest using the validator.
func (r *ResearchRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
