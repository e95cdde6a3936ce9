// Copyright © 2021 Io FinNet Group, Inc.

// Package modarith implements modular arithmetic over any integer backend:
// normalization into [0, n), the extended Euclidean algorithm, modular inverses and
// modular exponentiation with negative exponents.
package modarith

import (
	"fmt"

	"github.com/pkg/errors"

	commonint "github.com/iofinnet/bsgs/common/int"
)

var (
	ErrNotInvertible  = errors.New("value has no multiplicative inverse")
	ErrInvalidModulus = errors.New("modulus must be positive")
)

type (
	// GcdResult holds gcd(a, b) and coefficients with GCD = C1*a + C2*b.
	GcdResult[T any] struct {
		GCD, C1, C2 T
	}

	// NotInvertibleError reports the operands of a failed inversion.
	NotInvertibleError struct {
		A, N string
	}

	Arith[T any] struct {
		b commonint.Backend[T]

		zero, one, two T
	}
)

func (e *NotInvertibleError) Error() string {
	return fmt.Sprintf("%s is not invertible modulo %s", e.A, e.N)
}

func (e *NotInvertibleError) Is(target error) bool {
	return target == ErrNotInvertible
}

func New[T any](b commonint.Backend[T]) *Arith[T] {
	return &Arith[T]{
		b:    b,
		zero: b.FromUint64(0),
		one:  b.FromUint64(1),
		two:  b.FromUint64(2),
	}
}

func (ar *Arith[T]) Backend() commonint.Backend[T] {
	return ar.b
}

func (ar *Arith[T]) checkModulus(n T) error {
	if ar.b.Sign(n) <= 0 {
		return errors.Wrapf(ErrInvalidModulus, "got %s", ar.b.String(n))
	}
	return nil
}

// Normalize returns the representative of a (mod n) in [0, n).
func (ar *Arith[T]) Normalize(a, n T) (T, error) {
	if err := ar.checkModulus(n); err != nil {
		return ar.zero, err
	}
	return ar.normalize(a, n), nil
}

func (ar *Arith[T]) normalize(a, n T) T {
	r := ar.b.Rem(a, n)
	if ar.b.Sign(r) < 0 {
		return ar.b.Add(r, n)
	}
	return r
}

// ExtendedGCD runs the iterative extended Euclidean algorithm.
// The returned GCD is never negative; gcd(0, 0) = 0.
func (ar *Arith[T]) ExtendedGCD(a, b T) GcdResult[T] {
	be := ar.b
	s, oldS := ar.zero, ar.one
	t, oldT := ar.one, ar.zero
	r, oldR := b, a

	for be.Sign(r) != 0 {
		quotient := be.Quo(oldR, r)
		r, oldR = be.Sub(oldR, be.Mul(quotient, r)), r
		s, oldS = be.Sub(oldS, be.Mul(quotient, s)), s
		t, oldT = be.Sub(oldT, be.Mul(quotient, t)), t
	}
	// truncating division keeps the sign of the inputs in the last remainder
	if be.Sign(oldR) < 0 {
		oldR, oldS, oldT = be.Neg(oldR), be.Neg(oldS), be.Neg(oldT)
	}
	return GcdResult[T]{GCD: oldR, C1: oldS, C2: oldT}
}

// Inverse returns c in [0, n) with a*c = 1 (mod n).
// It fails with ErrNotInvertible when gcd(a, n) != 1.
func (ar *Arith[T]) Inverse(a, n T) (T, error) {
	if err := ar.checkModulus(n); err != nil {
		return ar.zero, err
	}
	return ar.inverse(a, n)
}

func (ar *Arith[T]) inverse(a, n T) (T, error) {
	res := ar.ExtendedGCD(a, n)
	if ar.b.Cmp(res.GCD, ar.one) != 0 {
		return ar.zero, &NotInvertibleError{A: ar.b.String(a), N: ar.b.String(n)}
	}
	return ar.normalize(res.C1, n), nil
}

// PowM computes base^exp (mod modulus) by square-and-multiply.
// A negative exponent inverts the base first and fails when it is not invertible.
func (ar *Arith[T]) PowM(base, exp, modulus T) (T, error) {
	base, exp, err := ar.prepare(base, exp, modulus)
	if err != nil {
		return ar.zero, err
	}
	return ar.powm(base, exp, modulus), nil
}

// PowMNative behaves like PowM but hands the exponentiation to the backend when it
// implements commonint.Exponentiator.
func (ar *Arith[T]) PowMNative(base, exp, modulus T) (T, error) {
	base, exp, err := ar.prepare(base, exp, modulus)
	if err != nil {
		return ar.zero, err
	}
	e, ok := ar.b.(commonint.Exponentiator[T])
	if !ok || ar.b.Cmp(modulus, ar.one) == 0 {
		return ar.powm(base, exp, modulus), nil
	}
	return e.Exp(base, exp, modulus), nil
}

// prepare reduces the base and turns a negative exponent into a positive one.
func (ar *Arith[T]) prepare(base, exp, modulus T) (T, T, error) {
	if err := ar.checkModulus(modulus); err != nil {
		return ar.zero, ar.zero, err
	}
	base = ar.normalize(base, modulus)
	if ar.b.Sign(exp) < 0 {
		inv, err := ar.inverse(base, modulus)
		if err != nil {
			return ar.zero, ar.zero, errors.Wrap(err, "negative exponent")
		}
		base, exp = inv, ar.b.Neg(exp)
	}
	return base, exp, nil
}

func (ar *Arith[T]) powm(base, exp, modulus T) T {
	be := ar.b
	// x^0 = 1 is still reduced, so that everything mod 1 is 0
	result := ar.normalize(ar.one, modulus)
	for be.Sign(exp) > 0 {
		if be.Cmp(be.Rem(exp, ar.two), ar.one) == 0 {
			result = ar.normalize(be.Mul(result, base), modulus)
		}
		base = ar.normalize(be.Mul(base, base), modulus)
		exp = be.Quo(exp, ar.two)
	}
	return result
}
