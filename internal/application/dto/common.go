package dto

// ErrorResponse is the error envelope returned by the HTTP layer.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
