// Copyright © 2021 Io FinNet Group, Inc.

package dlog

import (
	"github.com/pkg/errors"

	commonint "github.com/iofinnet/bsgs/common/int"
)

// MaxBruteForceExp bounds the linear search of BruteForce.
const MaxBruteForceExp = 32

// BruteForce tries every x in [0, 2^xMaxExp) in turn. It needs no inverse of g and is
// only meant for small bounds and as a reference for the other searches.
func (s *Solver[T]) BruteForce(g, h, p T, xMaxExp uint) (uint64, error) {
	if err := s.checkArgs(p, xMaxExp); err != nil {
		return 0, err
	}
	if xMaxExp > MaxBruteForceExp {
		return 0, errors.Wrapf(ErrInvalidBound, "brute force limited to x_max_exp <= %d", MaxBruteForceExp)
	}
	mod := commonint.NewModInt(s.b, p)
	target := s.b.Key(mod.Reduce(h))
	gg := mod.Reduce(g)
	acc := mod.Reduce(s.b.FromUint64(1))
	for x := uint64(0); x < uint64(1)<<xMaxExp; x++ {
		if s.b.Key(acc) == target {
			return x, nil
		}
		acc = mod.Mul(acc, gg)
	}
	return 0, errors.Wrapf(ErrSearchExhausted, "no x below 2^%d", xMaxExp)
}

// Verify reports whether g^x = h (mod p).
func (s *Solver[T]) Verify(g, h, p T, x uint64) (bool, error) {
	if err := s.checkArgs(p, 0); err != nil {
		return false, err
	}
	gx, err := s.ar.PowMNative(g, s.b.FromUint64(x), p)
	if err != nil {
		return false, err
	}
	hh, err := s.ar.Normalize(h, p)
	if err != nil {
		return false, err
	}
	return s.b.Cmp(gx, hh) == 0, nil
}
