package domain

import (
	"strings"
)

// FieldError ties a validation message to the form field it belongs to.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// PostInput carries the user-submitted fields of the post create and edit
// forms. GroupID is nil when no group was selected.
type PostInput struct {
	Text    string `json:"text"`
	GroupID *int   `json:"group_id"`
}

// Validate checks the input without touching any storage. It returns one
// error per offending field, or nil when the input is acceptable.
func (in *PostInput) Validate() []FieldError {
	var errors []FieldError
	if strings.TrimSpace(in.Text) == "" {
		errors = append(errors, FieldError{Field: "text", Message: "Post text must not be empty."})
	}
	return errors
}

// PasswordChangeInput carries the user-submitted fields of the password
// change form. The fields never appear in responses.
type PasswordChangeInput struct {
	OldPassword string `json:"-"`
	NewPassword string `json:"-"`
}

// Validate checks the input without touching any storage. The minimum length
// of the new password is enforced by the user service.
func (in *PasswordChangeInput) Validate() []FieldError {
	var errors []FieldError
	if in.OldPassword == "" {
		errors = append(errors, FieldError{Field: "old_password", Message: "The current password is required."})
	}
	if in.NewPassword == "" {
		errors = append(errors, FieldError{Field: "new_password", Message: "A new password is required."})
	}
	return errors
}

// CommentInput carries the user-submitted fields of the comment form.
type CommentInput struct {
	Text string `json:"text"`
}

// Validate checks the input without touching any storage.
func (in *CommentInput) Validate() []FieldError {
	var errors []FieldError
	if strings.TrimSpace(in.Text) == "" {
		errors = append(errors, FieldError{Field: "text", Message: "Comment text must not be empty."})
	}
	return errors
}
