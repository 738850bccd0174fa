package models

// ErrorResponse is the body returned for any failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse is the body of informational endpoints.
type MessageResponse struct {
	Message string `json:"message"`
}

// QueryStatsResponse lists how often each endpoint has been queried.
type QueryStatsResponse struct {
	Queries map[string]int64 `json:"queries"`
}
