package errors

// ErrorDetails carries the machine readable cause of an error response.
type ErrorDetails struct {
	Cause string         `json:"cause"`
	Raw   map[string]any `json:"raw,omitempty"`
}

// ErrorResponse defines the structure for error responses
type ErrorResponse struct {
	Code    string       `json:"code"`
	Details ErrorDetails `json:"details"`
	Error   bool         `json:"error,omitempty"`
}

// NewErrorResponse renders an AppError into the response envelope.
func NewErrorResponse(e *AppError) *ErrorResponse {
	return &ErrorResponse{
		Code: e.ErrorCode(),
		Details: ErrorDetails{
			Cause: e.Cause(),
			Raw:   e.Raw(),
		},
		Error: e.ClientFlag(),
	}
}
