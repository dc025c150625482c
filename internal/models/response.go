package models

// Error describes a single API error
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// ErrorResponse is the envelope for failed API calls
type ErrorResponse struct {
	Success bool  `json:"success"`
	Error   Error `json:"error"`
}

// SuccessResponse is the envelope for successful API calls
type SuccessResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}
