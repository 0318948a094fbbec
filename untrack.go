package reax

import "github.com/AnatoleLucet/reax/internal"

// Untrack runs fn without recording any reads inside it as dependencies of
// the current reaction.
func Untrack[T any](fn func() T) T {
	var result T
	internal.GetRuntime().RunUntracked(func() { result = fn() })
	return result
}

// Peek is an alias for Untrack.
func Peek[T any](fn func() T) T { return Untrack(fn) }
