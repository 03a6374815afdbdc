// Package apierror defines the single JSON shape every 4xx/5xx answer of the
// cashdesk API uses. The register frontend keys on the "detail" field, and
// routing all failures through here keeps storage errors and stack traces
// out of responses.
package apierror

// APIError carries one human-readable message.
type APIError struct {
	Detail string `json:"detail"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// ValidationError adds the per-field tag map produced by DTO validation.
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "Error de validacion", Fields: fields}
}
