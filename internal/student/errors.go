package student

import "errors"

// ErrUnknownDimension is returned when a caller names a grouping dimension
// outside the closed set returned by Dimensions.
var ErrUnknownDimension = errors.New("unknown dimension")

// ErrUnknownField is returned when a caller names a numeric field outside the
// closed set returned by Fields.
var ErrUnknownField = errors.New("unknown field")

// ErrUnknownCategory is returned when a label does not name a category of the
// requested dimension.
var ErrUnknownCategory = errors.New("unknown category")
