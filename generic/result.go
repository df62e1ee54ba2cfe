package generic

import "fmt"

// Result carries either a value or an error from a (T, error) return.
type Result[T any] struct {
	Value T
	Error error
}

// NewResult wraps a (T, error) return value as a Result[T].
func NewResult[T any](value T, err error) Result[T] {
	return Result[T]{Value: value, Error: err}
}

func Ok[T any](value T) Result[T] {
	return Result[T]{Value: value}
}

func Err[T any](err error) Result[T] {
	return Result[T]{Error: err}
}

func (r *Result[T]) IsOk() bool {
	return r.Error == nil
}

func (r *Result[T]) IsErr() bool {
	return r.Error != nil
}

// Expect returns the contained value, panicking with the supplied message and
// the contained error if there is one.
func (r Result[T]) Expect(msg string) T {
	if r.Error != nil {
		panic(fmt.Errorf("%s: %w", msg, r.Error))
	}
	return r.Value
}

// Unwrap returns the contained value, or panics if there is an error.
func (r Result[T]) Unwrap() T {
	return r.Expect("tried to Unwrap() an Err")
}

// UnwrapOr returns the contained value, or other if there is an error.
func (r Result[T]) UnwrapOr(other T) T {
	if r.Error != nil {
		return other
	}
	return r.Value
}

// Unwrap is a shortcut for NewResult(...).Unwrap().
func Unwrap[T any](value T, err error) T {
	return NewResult(value, err).Unwrap()
}

// Unwrap_ is like Unwrap, but for calls that only return an error.
func Unwrap_(err error) {
	NewResult(Void{}, err).Unwrap()
}

// Expect_ is like Result.Expect, but for calls that only return an error;
// call it as Expect_(msg)(...).
func Expect_(msg string) func(error) {
	return func(err error) {
		NewResult(Void{}, err).Expect(msg)
	}
}
