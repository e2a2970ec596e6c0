package domain

// State is the lifecycle state of a fetched view.
type State int

const (
	StateLoading State = iota
	StateSuccess
	StateFailure
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateSuccess:
		return "success"
	case StateFailure:
		return "failure"
	default:
		return "unknown"
	}
}

// Result is the Loading | Success(T) | Failure(error) sum type every view
// renders from. The zero value is Loading.
type Result[T any] struct {
	state State
	value T
	err   error
}

// Loading returns a result that has not completed yet.
func Loading[T any]() Result[T] {
	return Result[T]{state: StateLoading}
}

// Success returns a completed result holding v.
func Success[T any](v T) Result[T] {
	return Result[T]{state: StateSuccess, value: v}
}

// Failure returns a failed result. A nil err is still a failure.
func Failure[T any](err error) Result[T] {
	return Result[T]{state: StateFailure, err: err}
}

// State returns the result state.
func (r Result[T]) State() State {
	return r.state
}

// Value returns the success value, or the zero value otherwise.
func (r Result[T]) Value() T {
	return r.value
}

// Err returns the failure error, or nil otherwise.
func (r Result[T]) Err() error {
	return r.err
}

// Done reports whether the result is no longer loading.
func (r Result[T]) Done() bool {
	return r.state != StateLoading
}
