package domain

// Result is the outcome of a read that degrades instead of failing.
// A degraded result carries zero-valued Data and the Cause that prevented the read.
type Result[T any] struct {
	Data  T
	Cause error
}

// Ok wraps data read successfully
func Ok[T any](data T) Result[T] {
	return Result[T]{Data: data}
}

// Degraded wraps the fallback data returned when the read failed with cause
func Degraded[T any](fallback T, cause error) Result[T] {
	return Result[T]{Data: fallback, Cause: cause}
}

// IsDegraded reports whether the data is a fallback rather than what was stored
func (r Result[T]) IsDegraded() bool {
	return r.Cause != nil
}
