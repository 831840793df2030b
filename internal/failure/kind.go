package failure

import (
	"context"
	"errors"
)

// Kind classifies a failure into the codec/batch taxonomy.
type Kind int

// Failure kinds. KindNone is the classification of a nil error.
const (
	KindNone Kind = iota
	KindEmptyInput
	KindInvalidCharacter
	KindNumericOverflow
	KindBatchTooLarge
	KindCanceled
	KindUnknown
)

//nolint:gochecknoglobals // Lookup table for Kind.String.
var kindNames = map[Kind]string{
	KindNone:             "None",
	KindEmptyInput:       "EmptyInput",
	KindInvalidCharacter: "InvalidCharacter",
	KindNumericOverflow:  "NumericOverflow",
	KindBatchTooLarge:    "BatchTooLarge",
	KindCanceled:         "Canceled",
	KindUnknown:          "Unknown",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return kindNames[KindUnknown]
}

// IsElementContent reports whether the kind describes bad element content,
// as opposed to admission control or cancellation.
func (k Kind) IsElementContent() bool {
	switch k {
	case KindEmptyInput, KindInvalidCharacter, KindNumericOverflow:
		return true
	default:
		return false
	}
}

// KindOf classifies err. Wrapped errors, including *ElementError, are unwrapped.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrEmptyInput):
		return KindEmptyInput
	case errors.Is(err, ErrInvalidCharacter):
		return KindInvalidCharacter
	case errors.Is(err, ErrNumericOverflow):
		return KindNumericOverflow
	case errors.Is(err, ErrBatchTooLarge):
		return KindBatchTooLarge
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return KindCanceled
	default:
		return KindUnknown
	}
}
