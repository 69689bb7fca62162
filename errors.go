package collesort

import (
	"errors"
	"fmt"

	"github.com/hupe1980/collesort/internal/normalize"
)

var (
	// ErrInvalidTeamCount is returned when the team count is zero or outside
	// [MinTeams, MaxTeams].
	ErrInvalidTeamCount = errors.New("invalid team count")

	// ErrSizeMismatch is returned when the number of values is not divisible
	// by the team count or lies outside [MinSize, MaxSize].
	ErrSizeMismatch = errors.New("size mismatch")

	// ErrNoSolution is returned when the search space holds no complete
	// assignment within the bound.
	ErrNoSolution = errors.New("no solution found")

	// ErrInvalidValue is returned for NaN or infinite values.
	ErrInvalidValue = errors.New("invalid value")
)

// TeamCountError reports an unsupported team count.
//
// errors.Is(err, ErrInvalidTeamCount) holds for every TeamCountError.
type TeamCountError struct {
	Teams int
	cause error
}

func (e *TeamCountError) Error() string {
	if e.Teams <= 0 {
		return "number of teams must be greater than 0"
	}
	return fmt.Sprintf("invalid team count: %d (supported: %d-%d)", e.Teams, MinTeams, MaxTeams)
}

func (e *TeamCountError) Is(target error) bool { return target == ErrInvalidTeamCount }

func (e *TeamCountError) Unwrap() error { return e.cause }

// SizeError reports an input length the solver cannot partition.
//
// errors.Is(err, ErrSizeMismatch) holds for every SizeError. The original
// underlying error (if any) can be accessed via errors.Unwrap.
type SizeError struct {
	Size  int
	Teams int
	cause error
}

func (e *SizeError) Error() string {
	switch {
	case e.cause != nil:
		return fmt.Sprintf("size mismatch: %v", e.cause)
	case e.Teams > 0 && e.Size%e.Teams != 0:
		return fmt.Sprintf("size %d is not divisible by %d teams", e.Size, e.Teams)
	default:
		return fmt.Sprintf("size %d out of range (supported: %d-%d)", e.Size, MinSize, MaxSize)
	}
}

func (e *SizeError) Is(target error) bool { return target == ErrSizeMismatch }

func (e *SizeError) Unwrap() error { return e.cause }

func translateError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, normalize.ErrSizeMismatch) {
		return &SizeError{cause: err}
	}
	if errors.Is(err, normalize.ErrInvalidValue) {
		return fmt.Errorf("%w: %w", ErrInvalidValue, err)
	}

	return err
}
