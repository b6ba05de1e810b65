package dto

import (
	"github.com/ekinura/schoolboard/internal/app/models"
	"github.com/ekinura/schoolboard/internal/pkg/schema"
)

// SubmitResponse is the response body for POST /api/schools. On success
// only ID is set; on validation failure Errors lists every failed rule.
type SubmitResponse struct {
	Success bool                `json:"success"`
	ID      int64               `json:"id,omitempty"`
	Message string              `json:"message,omitempty"`
	Errors  []schema.FieldError `json:"errors,omitempty"`
}

// ListResponse is the success body for GET /api/schools. Schools is always
// present, even when empty.
type ListResponse struct {
	Success bool             `json:"success"`
	Schools []*models.School `json:"schools"`
}

// FailureResponse is the generic failure body shared by both endpoints.
type FailureResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// NewSubmitSuccess builds the success response carrying the assigned id.
func NewSubmitSuccess(id int64) SubmitResponse {
	return SubmitResponse{Success: true, ID: id, Message: "School added successfully"}
}

// NewValidationFailure builds the response listing every failed field rule.
func NewValidationFailure(errs []schema.FieldError) SubmitResponse {
	return SubmitResponse{Success: false, Message: "Validation failed", Errors: errs}
}

// NewListSuccess builds the listing response. A nil slice is normalized so
// an empty table serializes as an empty array, not null.
func NewListSuccess(schools []*models.School) ListResponse {
	if schools == nil {
		schools = []*models.School{}
	}
	return ListResponse{Success: true, Schools: schools}
}

// NewFailure builds an opaque failure response.
func NewFailure(message string) FailureResponse {
	return FailureResponse{Success: false, Message: message}
}
