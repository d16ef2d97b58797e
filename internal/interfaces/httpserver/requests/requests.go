// Package requests contains HTTP request DTOs for the call-api.
// Call-specific request types are in the call subpackage.
package requests

// RegisterWebhookRequest represents the request body for registering a
// webhook subscription.
type RegisterWebhookRequest struct {
	URL    string   `json:"url" binding:"required"`
	Events []string `json:"events" binding:"required,min=1"`
	Secret string   `json:"secret,omitempty"`
}
