// Package requests holds the validated shapes the convert controller
// extracts from the multipart form before handing off to the dispatcher.
package requests

// TypeHintRequest wraps the optional client-supplied `type` field so it
// can be validated with go-playground/validator before being compared
// against the sniffed/declared type.
type TypeHintRequest struct {
	Type string `validate:"omitempty,alpha"`
}
