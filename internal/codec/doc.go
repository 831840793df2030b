// Package codec converts between uint64 values and their Base62 representation.
//
// The alphabet is fixed: '0'-'9' carry values 0-9, 'A'-'Z' carry 10-35 and
// 'a'-'z' carry 36-61. Encoding is infallible and canonical (no leading zero
// symbols except "0" itself). Decoding rejects the empty string, any symbol
// outside the alphabet, and any value that does not fit in 64 bits; overflow
// is detected with checked arithmetic at the symbol where it occurs, never by
// a length precheck.
//
// The functions are pure and safe for concurrent use.
package codec
