package common

type ErrorResponse struct {
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

func NewErrorResponse(message string) *ErrorResponse {
	return &ErrorResponse{
		Message: message,
	}
}

// NewErrorResponseWithDetails attaches data the caller can act on, e.g. rejected rows.
func NewErrorResponseWithDetails(message string, details interface{}) *ErrorResponse {
	return &ErrorResponse{
		Message: message,
		Details: details,
	}
}
