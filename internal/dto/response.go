package dto

import "time"

type BasicResponse struct {
	Ok        bool      `json:"ok"`
	Details   string    `json:"details"`
	Timestamp time.Time `json:"timestamp"`
}

func NewBasicResponse(ok bool, details string) BasicResponse {
	return BasicResponse{
		Ok:        ok,
		Details:   details,
		Timestamp: time.Now(),
	}
}

// ErrorResponse carries a stable machine-readable code (e.g. POST_NOT_FOUND)
// alongside the human-readable details.
type ErrorResponse struct {
	Ok        bool      `json:"ok"`
	Code      string    `json:"code"`
	Details   string    `json:"details"`
	Timestamp time.Time `json:"timestamp"`
}

func NewErrorResponse(code string, details string) ErrorResponse {
	return ErrorResponse{
		Ok:        false,
		Code:      code,
		Details:   details,
		Timestamp: time.Now(),
	}
}
