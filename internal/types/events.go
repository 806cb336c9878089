package types

import (
	"github.com/go-playground/validator/v10"
)

// Posting event actions published by the posting service.
const (
	PostingCreated     = "created"
	PostingUpdated     = "updated"
	PostingDeactivated = "deactivated"
)

var validate = validator.New()

// PostingEvent is the change notification emitted when a posting is created, updated or deactivated.
type PostingEvent struct {
	Action  string     `json:"action" validate:"required,oneof=created updated deactivated"`
	Posting JobPosting `json:"posting"`
}

// Validate validates the PostingEvent, including the embedded posting.
func (e *PostingEvent) Validate() error {
	return validate.Struct(e)
}
