package models

// ErrorResponse is the standard error envelope returned by every handler.
type ErrorResponse struct {
	Status        int               `json:"status"`
	Message       string            `json:"message"`
	Errors        map[string]string `json:"errors,omitempty"`        // per-field validation messages
	CorrelationID string            `json:"correlationId,omitempty"` // support lookup id for 5xx
}
