package failure

import "errors"

// Report is a flat, serializable description of a failure.
// Optional fields are nil when they do not apply to the failure kind.
type Report struct {
	Kind     string  `json:"kind"`
	Message  string  `json:"message"`
	Index    *int    `json:"index,omitempty"`
	Input    *string `json:"input,omitempty"`
	Char     string  `json:"char,omitempty"`
	Position *int    `json:"position,omitempty"`
	Size     *int    `json:"size,omitempty"`
	Limit    *int    `json:"limit,omitempty"`
}

// Describe builds a Report for err. It returns a zero Report for a nil error.
func Describe(err error) Report {
	if err == nil {
		return Report{}
	}

	r := Report{
		Kind:    KindOf(err).String(),
		Message: err.Error(),
	}

	var elemErr *ElementError
	if errors.As(err, &elemErr) {
		idx := elemErr.Index
		input := elemErr.Input
		r.Index = &idx
		r.Input = &input
	}

	var charErr *InvalidCharacterError
	if errors.As(err, &charErr) {
		pos := charErr.Position
		r.Char = charErr.symbol(false)
		r.Position = &pos
	}

	var sizeErr *BatchTooLargeError
	if errors.As(err, &sizeErr) {
		size, limit := sizeErr.Size, sizeErr.Limit
		r.Size = &size
		r.Limit = &limit
	}

	return r
}
