package server

// SortRequest is the body of POST /v1/sort.
type SortRequest struct {
	// Values holds the player strengths.
	Values []float64 `json:"values" binding:"required"`
	// Teams is the number of equal-size teams.
	Teams int `json:"teams"`
	// Workers overrides the configured search goroutines.
	Workers int `json:"workers,omitempty" binding:"omitempty,min=1,max=64"`
}

// SortResponse is the body of a successful POST /v1/sort.
type SortResponse struct {
	Values    []float64   `json:"values"`
	Groups    [][]float64 `json:"groups"`
	Sums      []float64   `json:"sums"`
	Amplitude float64     `json:"amplitude"`
	Bound     float64     `json:"bound"`
	Nodes     int64       `json:"nodes"`
}

// ErrorResponse is returned for every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HealthResponse is the body of GET /v1/health.
type HealthResponse struct {
	Status   string `json:"status"`
	InFlight int64  `json:"in_flight"`
}

// StatusClientClosedRequest is returned when the client goes away before
// the solve finishes.
const StatusClientClosedRequest = 499

// Error codes.
const (
	CodeBadRequest       = "bad_request"
	CodeInvalidTeamCount = "invalid_team_count"
	CodeSizeMismatch     = "size_mismatch"
	CodeInvalidValue     = "invalid_value"
	CodeNoSolution       = "no_solution"
	CodeBodyTooLarge     = "body_too_large"
	CodeRateLimited      = "rate_limited"
	CodeBusy             = "busy"
	CodeCanceled         = "canceled"
	CodeTimeout          = "timeout"
	CodeInternal         = "internal"
)
