package analysis

import (
	"errors"

	"github.com/KaramelBytes/cohort-cli/internal/student"
)

var (
	// ErrEmptyInput means a statistic was requested over zero records.
	ErrEmptyInput = errors.New("no data")
	// ErrZeroVariance means a correlation input is constant, so the
	// coefficient is undefined.
	ErrZeroVariance = errors.New("undefined correlation: zero variance")
	// ErrNonFinite means a correlation input or result is NaN or infinite.
	ErrNonFinite = errors.New("undefined correlation: non-finite value")
	// ErrLengthMismatch means paired samples have different lengths.
	ErrLengthMismatch = errors.New("paired samples differ in length")

	ErrUnknownDimension = student.ErrUnknownDimension
	ErrUnknownField     = student.ErrUnknownField
)
