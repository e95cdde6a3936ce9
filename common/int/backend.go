// Copyright © 2021 Io FinNet Group, Inc.

// Package int defines the arbitrary-precision integer capability that the modular
// arithmetic and discrete log packages are written against, together with the
// concrete backends that provide it.
package int

import (
	"sort"

	"github.com/pkg/errors"
)

type (
	// Backend is the set of operations a signed arbitrary-precision integer type T
	// must support. Values are treated as immutable: every method returns a newly
	// allocated value and never modifies its arguments.
	//
	// Quo and Rem truncate towards zero; Rem takes the sign of the dividend.
	// Both panic when the divisor is zero.
	Backend[T any] interface {
		Name() string

		FromUint64(x uint64) T
		SetString(s string, base int) (T, bool)

		Add(x, y T) T
		Sub(x, y T) T
		Mul(x, y T) T
		Quo(x, y T) T
		Rem(x, y T) T
		Neg(x T) T

		Sign(x T) int
		Cmp(x, y T) int

		// Key returns a canonical encoding of x. Two values are equal iff their keys are.
		Key(x T) string
		String(x T) string
	}

	// Exponentiator is implemented by backends with a native modular exponentiation.
	// Exp is only called with exp >= 0, modulus > 0 and 0 <= base < modulus.
	Exponentiator[T any] interface {
		Exp(base, exp, modulus T) T
	}
)

const (
	BigName          = "big"
	ApdName          = "apd"
	ConstantTimeName = "saferith"
)

var ErrUnknownBackend = errors.New("unknown integer backend")

// Backends returns the names of the available backends in a stable order.
func Backends() []string {
	names := []string{BigName, ApdName, ConstantTimeName}
	sort.Strings(names)
	return names
}

// CheckName returns ErrUnknownBackend when name does not refer to a backend.
func CheckName(name string) error {
	for _, n := range Backends() {
		if n == name {
			return nil
		}
	}
	return errors.Wrapf(ErrUnknownBackend, "%q (available: %v)", name, Backends())
}

// keyOf renders a sign and a big-endian magnitude as a map key.
func keyOf(sign int, magnitude []byte) string {
	b := make([]byte, 0, len(magnitude)+1)
	switch {
	case sign < 0:
		b = append(b, '-')
	default:
		b = append(b, '+')
	}
	return string(append(b, magnitude...))
}
