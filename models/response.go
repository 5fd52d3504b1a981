// models/response.go
package models

// Response is the standard API envelope: success responses carry data
// and an optional message, failures carry a message and optional
// field-level errors.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Errors  interface{} `json:"errors,omitempty"`
}
