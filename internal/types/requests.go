package types

import (
	"github.com/go-playground/validator/v10"
)

// AddContactRequest represents the request to add a contact to a tracked job.
// The store itself silently ignores empty inputs; this request type gives
// outer surfaces (CLI, future API handlers) a way to surface the problem
// to the user instead.
type AddContactRequest struct {
	JobID            string `json:"job_id" validate:"required"`
	FirstName        string `json:"first_name" validate:"required,min=1"`
	LastName         string `json:"last_name" validate:"required,min=1"`
	CompanyNameOrURL string `json:"company_name_or_url" validate:"required,min=1"`
}

// UpdateContactRequest represents a partial contact update keyed by contact id.
type UpdateContactRequest struct {
	ContactID string        `json:"contact_id" validate:"required"`
	Fields    ContactUpdate `json:"fields"`
}

// SetDraftRequest represents a wholesale draft replacement for a contact.
type SetDraftRequest struct {
	ContactID string `json:"contact_id" validate:"required"`
	Subject   string `json:"subject"`
	Body      string `json:"body" validate:"required"`
}

// Validate validates the AddContactRequest using the validator.
func (r *AddContactRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the UpdateContactRequest using the validator.
func (r *UpdateContactRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the SetDraftRequest using the validator.
func (r *SetDraftRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
