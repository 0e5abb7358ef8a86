package dto

// ErrorResponse is the standardized error body. AppException names the
// error category; Context carries the structured details for that category.
type ErrorResponse struct {
	AppException string         `json:"app_exception"`
	Context      map[string]any `json:"context"`
}
