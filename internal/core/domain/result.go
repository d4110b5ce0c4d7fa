package domain

// Result wraps the value returned by an operation that may have been
// synthesized on the client instead of served by the backend.
type Result[T any] struct {
	Value T
	// Simulated is true when no network call was made and Value was
	// built locally to keep the screen working.
	Simulated bool
}

// Simulate tags v as a locally synthesized value.
func Simulate[T any](v T) Result[T] {
	return Result[T]{Value: v, Simulated: true}
}
