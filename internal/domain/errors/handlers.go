package errors

// ErrorInfo is the error payload of an API response.
type ErrorInfo struct {
	Code    string `json:"code"`              // business error code, e.g. "PROPERTY_NOT_FOUND"
	Message string `json:"message"`           // user-facing description
	Details any    `json:"details,omitempty"` // optional extra context
}

// MetaInfo carries response metadata.
type MetaInfo struct {
	RequestID string `json:"request_id"`
}

// SuccessResponse is the envelope for successful responses.
type SuccessResponse struct {
	Data any       `json:"data"`
	Meta *MetaInfo `json:"meta"`
}

// ErrorResponse is the envelope for failed responses.
type ErrorResponse struct {
	Error *ErrorInfo `json:"error"`
	Meta  *MetaInfo  `json:"meta"`
}
