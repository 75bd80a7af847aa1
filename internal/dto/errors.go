package dto

// ErrorBody is the error envelope used by every failure response:
// {"error": {"status": 400, "message": "...", "details": "..."}}.
type ErrorBody struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
	Stack   string `json:"stack,omitempty"`
}

type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

func NewError(status int, message, details string) ErrorResponse {
	return ErrorResponse{Error: ErrorBody{Status: status, Message: message, Details: details}}
}

// Pagination is included by every list endpoint.
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

func NewPagination(page, limit int, total int64) Pagination {
	pages := int((total + int64(limit) - 1) / int64(limit))
	return Pagination{Page: page, Limit: limit, Total: total, Pages: pages}
}
