// Copyright 2025 Kim Wittenburg. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ber

// Owner is implemented by types whose values may reference the input they
// were decoded from. Owned returns a copy that does not.
type Owner[T any] interface {
	Owned() T
}

// ToOwned returns a copy of v that remains valid after the input v was decoded
// from has been modified or released.
func ToOwned[T Owner[T]](v T) T {
	return v.Owned()
}
