package errors

// ErrorInfo contains detailed error information
type ErrorInfo struct {
	Code    string `json:"code"`              // Business error code, e.g., "USER_NOT_FOUND"
	Message string `json:"message"`           // Error message from the backend
	Details any    `json:"details,omitempty"` // Detailed error information (optional)
}

// ErrorResponse is the error envelope the backend may answer with.
// Some endpoints send a flat {"code","message"} body instead, so both shapes are kept.
type ErrorResponse struct {
	Error   *ErrorInfo `json:"error"`
	Code    string     `json:"code"`
	Message string     `json:"message"`
}

// Info flattens either envelope into code and message
func (r *ErrorResponse) Info() (code, message string) {
	if r == nil {
		return "", ""
	}
	if r.Error != nil {
		return r.Error.Code, r.Error.Message
	}

	return r.Code, r.Message
}
