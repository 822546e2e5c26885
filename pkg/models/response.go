package models

// ErrorResponse is the JSON error envelope rendered by the HTTP layer
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}
