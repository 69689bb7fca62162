package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hupe1980/collesort"
	"github.com/hupe1980/collesort/resource"
)

// handleSort partitions the request values.
//
// Responses:
//
//	200: SortResponse
//	400: malformed body or invalid teams/values
//	413: body larger than MaxBodyBytes
//	422: no complete partition exists
//	429: admission rate exceeded
//	499: the client went away
//	503: every solve slot is busy (no solve timeout configured)
//	504: the search exceeded the solve timeout
func (s *Server) handleSort(c *gin.Context) {
	if err := s.admit(c.Request.Context()); err != nil {
		s.writeError(c, err)
		return
	}

	if s.cfg.MaxBodyBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.cfg.MaxBodyBytes)
	}

	var req SortRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, ErrorResponse{
				Error: err.Error(),
				Code:  CodeBodyTooLarge,
			})
			return
		}
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: err.Error(),
			Code:  CodeBadRequest,
		})
		return
	}

	ctx := c.Request.Context()
	if s.cfg.SolveTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.SolveTimeout)
		defer cancel()
	}

	if err := s.acquireSolve(ctx); err != nil {
		s.writeError(c, err)
		return
	}
	defer s.controller.ReleaseSolve()

	workers := s.cfg.Workers
	if req.Workers > 0 {
		workers = req.Workers
	}

	res, err := collesort.Solve(ctx, req.Values, req.Teams,
		collesort.WithLogger(s.logger),
		collesort.WithMetricsCollector(s.metrics),
		collesort.WithWorkers(workers),
	)
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, SortResponse{
		Values:    res.Values,
		Groups:    res.Groups,
		Sums:      res.Sums,
		Amplitude: res.Amplitude,
		Bound:     res.Bound,
		Nodes:     res.Stats.Nodes,
	})
}

// admit applies the rate limit, waiting up to AdmissionWait for a token.
func (s *Server) admit(ctx context.Context) error {
	if s.cfg.AdmissionWait <= 0 {
		return s.controller.Admit()
	}
	ctx, cancel := context.WithTimeout(ctx, s.cfg.AdmissionWait)
	defer cancel()
	return s.controller.WaitAdmit(ctx)
}

// acquireSolve reserves a solve slot. Without a solve timeout there is no
// bound on the wait, so it fails fast instead.
func (s *Server) acquireSolve(ctx context.Context) error {
	if s.cfg.SolveTimeout > 0 {
		return s.controller.AcquireSolve(ctx)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if !s.controller.TryAcquireSolve() {
		return resource.ErrBusy
	}
	return nil
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:   "healthy",
		InFlight: s.controller.InFlight(),
	})
}

func (s *Server) writeError(c *gin.Context, err error) {
	status, code := errorStatus(err)
	switch {
	case status == StatusClientClosedRequest:
		s.logger.DebugContext(c.Request.Context(), "sort canceled by client", "error", err)
	case status >= http.StatusInternalServerError && status != http.StatusServiceUnavailable:
		s.logger.ErrorContext(c.Request.Context(), "sort failed", "error", err)
	}
	c.JSON(status, ErrorResponse{
		Error: err.Error(),
		Code:  code,
	})
}

func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, collesort.ErrInvalidTeamCount):
		return http.StatusBadRequest, CodeInvalidTeamCount
	case errors.Is(err, collesort.ErrSizeMismatch):
		return http.StatusBadRequest, CodeSizeMismatch
	case errors.Is(err, collesort.ErrInvalidValue):
		return http.StatusBadRequest, CodeInvalidValue
	case errors.Is(err, collesort.ErrNoSolution):
		return http.StatusUnprocessableEntity, CodeNoSolution
	case errors.Is(err, resource.ErrRateLimited):
		return http.StatusTooManyRequests, CodeRateLimited
	case errors.Is(err, resource.ErrBusy):
		return http.StatusServiceUnavailable, CodeBusy
	case errors.Is(err, context.Canceled):
		return StatusClientClosedRequest, CodeCanceled
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, CodeTimeout
	default:
		return http.StatusInternalServerError, CodeInternal
	}
}

func isValidation(err error) bool {
	status, _ := errorStatus(err)
	return status == http.StatusBadRequest
}
