// Package stream bounds and shapes lazily produced record sequences.
//
// A source is an iter.Seq2[T, error]: items are pulled one at a time and a non-nil error
// terminates the sequence. Combinators never reorder items and never pull more from their
// source than they need to decide what to yield next.
package stream

import (
	"context"
	"iter"
)

// TakeWhile yields items from src until the first one for which keep returns false.
// That item is dropped and nothing further is pulled from src.
func TakeWhile[T any](src iter.Seq2[T, error], keep func(T) bool) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		for item, err := range src {
			if err != nil {
				var zero T
				yield(zero, err)
				return
			}
			if !keep(item) {
				return
			}
			if !yield(item, nil) {
				return
			}
		}
	}
}

// Take yields at most n items from src. With n <= 0 src is never pulled.
func Take[T any](src iter.Seq2[T, error], n int) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		if n <= 0 {
			return
		}

		taken := 0
		for item, err := range src {
			if err != nil {
				var zero T
				yield(zero, err)
				return
			}
			if !yield(item, nil) {
				return
			}
			taken++
			if taken == n {
				return
			}
		}
	}
}

// Map applies fn to every item of src. An error from fn ends the sequence.
func Map[T, R any](src iter.Seq2[T, error], fn func(T) (R, error)) iter.Seq2[R, error] {
	return func(yield func(R, error) bool) {
		var zero R
		for item, err := range src {
			if err != nil {
				yield(zero, err)
				return
			}
			out, err := fn(item)
			if err != nil {
				yield(zero, err)
				return
			}
			if !yield(out, nil) {
				return
			}
		}
	}
}

// Collect materializes src in source order. The returned slice is never nil on success.
// ctx is checked before every pull so a cancelled request stops consuming the source.
func Collect[T any](ctx context.Context, src iter.Seq2[T, error]) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out := make([]T, 0)
	for item, err := range src {
		if err != nil {
			return nil, err
		}
		out = append(out, item)
		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}

	return out, nil
}

// FromSlice returns a source yielding items in order.
func FromSlice[T any](items []T) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		for _, item := range items {
			if !yield(item, nil) {
				return
			}
		}
	}
}
