package batch

// firstFailure returns the lowest index holding a non-nil error, or -1.
// It must only be called after every element outcome has been recorded.
func firstFailure(errs []error) int {
	for i, err := range errs {
		if err != nil {
			return i
		}
	}
	return -1
}
