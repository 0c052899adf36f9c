package dto

// APIResponse provides the standard response envelope for all endpoints
type APIResponse struct {
	Data  interface{}  `json:"data,omitempty"`
	Error *ErrorDetail `json:"error,omitempty"`
}

// NewSuccessResponse creates a success envelope around a payload
func NewSuccessResponse(data interface{}) APIResponse {
	return APIResponse{Data: data}
}
