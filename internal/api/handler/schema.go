package handler

// errorResponse documents the error envelope rendered by the API error handler.
type errorResponse struct {
	Error  string `json:"error"`
	Code   string `json:"code"`
	Detail string `json:"detail,omitempty"`
}
