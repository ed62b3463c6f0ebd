package chi

// ErrorCode is a machine-readable error code returned in ErrorResponse.
type ErrorCode string

// Error codes.
const (
	ErrorCodeBadRequest       ErrorCode = "bad_request"
	ErrorCodeValidationFailed ErrorCode = "validation_failed"
	ErrorCodeDegenerateVector ErrorCode = "degenerate_vector"
	ErrorCodeUnauthorized     ErrorCode = "unauthorized"
	ErrorCodeRateLimited      ErrorCode = "rate_limited"
	ErrorCodeInternalError    ErrorCode = "internal_error"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// CompareParams holds the query parameters of POST /v1/compare.
type CompareParams struct {
	// Mode overrides the body mode. "Dynamic" selects relative tolerance, anything else fixed.
	Mode *string `json:"mode,omitempty"`
	// Detail adds the per-pair list to the response.
	Detail *bool `json:"detail,omitempty"`
}

// CompareRequest is the body of POST /v1/compare. Object keys are decimal ids.
type CompareRequest struct {
	Mode    *string                 `json:"mode,omitempty"`
	Objects map[string]ObjectRecord `json:"objects"`
}

// ObjectRecord is one plane or surface.
type ObjectRecord struct {
	Kind         string    `json:"kind"`
	Coefficients []float64 `json:"coefficients"`
}

// CompareResponse maps each matched id to partner_id * code.
type CompareResponse struct {
	Matches map[int64]int64 `json:"matches"`
	Pairs   *[]PairItem     `json:"pairs,omitempty"`
}

// PairItem is one non-Different pair outcome, in merge order.
type PairItem struct {
	ID             int64  `json:"id"`
	Partner        int64  `json:"partner"`
	Category       string `json:"category"`
	Classification string `json:"classification"`
	Value          int64  `json:"value"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}
