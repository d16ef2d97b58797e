// Package responses contains HTTP response DTOs for the call-api.
// Call-specific response types are in the call subpackage.
package responses

import "time"

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error *ErrorDetail `json:"error"`
}

// ErrorDetail contains error details.
type ErrorDetail struct {
	Message string `json:"message"`
	Type    string `json:"type"`
	Code    string `json:"code,omitempty"`
}

// WebhookResponse represents a webhook subscription in API responses.
type WebhookResponse struct {
	ID        string    `json:"id"`
	Object    string    `json:"object"`
	URL       string    `json:"url"`
	Events    []string  `json:"events"`
	CreatedAt time.Time `json:"created_at"`
}

// ListWebhooksResponse represents the response for listing webhooks.
type ListWebhooksResponse struct {
	Object string             `json:"object"`
	Data   []*WebhookResponse `json:"data"`
}

// DeleteWebhookResponse represents the response for deleting a webhook.
type DeleteWebhookResponse struct {
	ID      string `json:"id"`
	Object  string `json:"object"`
	Deleted bool   `json:"deleted"`
}
