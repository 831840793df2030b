// Package failure defines the error taxonomy shared by the Base62 codec and
// the batch engine.
//
// Every failure surfaced by the module belongs to one of four kinds:
//   - EmptyInput: decode called on a zero-length string
//   - InvalidCharacter: a symbol outside the alphabet, with its position
//   - NumericOverflow: the decoded value does not fit in 64 bits
//   - BatchTooLarge: a batch exceeded the admission limit, with size and limit
//
// Batch decode failures are wrapped in an ElementError that carries the
// original index of the failing element. All failures are terminal.
package failure
