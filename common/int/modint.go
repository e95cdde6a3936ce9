// Copyright © 2019 Binance
//
// This file is part of Binance. The full Binance copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

package int

// ModInt performs all of its arithmetic with reduction into [0, m).
// The modulus must be positive.
type ModInt[T any] struct {
	b Backend[T]
	m T
}

func NewModInt[T any](b Backend[T], mod T) *ModInt[T] {
	return &ModInt[T]{b: b, m: mod}
}

func (mi *ModInt[T]) Modulus() T {
	return mi.m
}

// Reduce returns x mod m in [0, m), also for negative x.
func (mi *ModInt[T]) Reduce(x T) T {
	r := mi.b.Rem(x, mi.m)
	if mi.b.Sign(r) < 0 {
		r = mi.b.Add(r, mi.m)
	}
	return r
}

func (mi *ModInt[T]) Add(x, y T) T {
	return mi.Reduce(mi.b.Add(x, y))
}

func (mi *ModInt[T]) Sub(x, y T) T {
	return mi.Reduce(mi.b.Sub(x, y))
}

func (mi *ModInt[T]) Mul(x, y T) T {
	return mi.Reduce(mi.b.Mul(x, y))
}

func (mi *ModInt[T]) Neg(x T) T {
	return mi.Reduce(mi.b.Neg(x))
}
