package state

import "strings"

// Fetch is the state of a resource list: Idle, Loading, Loaded or Failed.
// Only the four types in this file implement it.
type Fetch[T any] interface {
	rows() []T
}

// Idle means nothing has been requested yet
type Idle[T any] struct{}

// Loading means a request is in flight
type Loading[T any] struct{}

// Loaded holds the rows of the last successful request
type Loaded[T any] struct {
	Rows []T
}

// Failed holds the error of the last request. Previous rows are dropped.
type Failed[T any] struct {
	Message string
}

func (Idle[T]) rows() []T     { return nil }
func (Loading[T]) rows() []T  { return nil }
func (l Loaded[T]) rows() []T { return l.Rows }
func (Failed[T]) rows() []T   { return nil }

// Rows returns the displayed rows, which are empty unless f is Loaded
func Rows[T any](f Fetch[T]) []T {
	if f == nil {
		return nil
	}
	return f.rows()
}

// InFlight reports whether f is Loading
func InFlight[T any](f Fetch[T]) bool {
	_, ok := f.(Loading[T])
	return ok
}

// CanFetch reports whether a fetch may start: scope must be non-blank and no
// request may be in flight. Pages without a scope pass scoped=false.
func CanFetch[T any](f Fetch[T], scoped bool, scope string) bool {
	if InFlight(f) {
		return false
	}
	return !scoped || strings.TrimSpace(scope) != ""
}

// Complete turns a request outcome into the next state
func Complete[T any](rows []T, err error) Fetch[T] {
	if err != nil {
		return Failed[T]{Message: err.Error()}
	}
	if rows == nil {
		rows = []T{}
	}
	return Loaded[T]{Rows: rows}
}
