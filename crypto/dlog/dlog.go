// Copyright © 2021 Io FinNet Group, Inc.

// Package dlog computes discrete logarithms g^x = h (mod p) for exponents below a
// known bound 2^x_max_exp with Shanks' baby-step giant-step method.
//
// The exponent is split as x = x0*B + x1 with B = 2^floor(x_max_exp/2). A table maps
// h*g^(-x1) to x1 for every x1 < B; the giant steps then walk (g^B)^x0 until a value
// is found in the table. Both walks advance by one modular multiplication per step.
package dlog

import (
	"context"

	"github.com/pkg/errors"

	"github.com/iofinnet/bsgs/common"
	commonint "github.com/iofinnet/bsgs/common/int"
	"github.com/iofinnet/bsgs/crypto/modarith"
)

var (
	ErrSearchExhausted = errors.New("discrete logarithm not found within bound")
	ErrInvalidBound    = errors.New("invalid exponent bound")
)

type Solver[T any] struct {
	b   commonint.Backend[T]
	ar  *modarith.Arith[T]
	cfg config
}

func NewSolver[T any](b commonint.Backend[T], opts ...Option) *Solver[T] {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Solver[T]{b: b, ar: modarith.New(b), cfg: cfg}
}

// DiscreteLog returns x in [0, 2^xMaxExp) with g^x = h (mod p) using b.
func DiscreteLog[T any](b commonint.Backend[T], g, h, p T, xMaxExp uint) (uint64, error) {
	return NewSolver(b).DiscreteLog(g, h, p, xMaxExp)
}

func (s *Solver[T]) Arith() *modarith.Arith[T] {
	return s.ar
}

// DiscreteLog returns x in [0, 2^xMaxExp) with g^x = h (mod p).
// g must be invertible modulo p. ErrSearchExhausted is returned when no such x exists.
func (s *Solver[T]) DiscreteLog(g, h, p T, xMaxExp uint) (uint64, error) {
	return s.DiscreteLogContext(context.Background(), g, h, p, xMaxExp)
}

// DiscreteLogContext is DiscreteLog with cancellation, checked between steps.
func (s *Solver[T]) DiscreteLogContext(ctx context.Context, g, h, p T, xMaxExp uint) (uint64, error) {
	return s.search(ctx, g, h, p, xMaxExp, false)
}

// DiscreteLogNaive runs the same search but computes every table and scan value with a
// fresh modular exponentiation. It is much slower and exists as a cross-check.
func (s *Solver[T]) DiscreteLogNaive(g, h, p T, xMaxExp uint) (uint64, error) {
	return s.search(context.Background(), g, h, p, xMaxExp, true)
}

// steps returns the number of baby steps B = 2^floor(e/2) and giant steps
// 2^ceil(e/2), so that the scan covers exactly [0, 2^e).
func steps(xMaxExp uint) (baby, giant uint64) {
	babyExp := xMaxExp / 2
	return uint64(1) << babyExp, uint64(1) << (xMaxExp - babyExp)
}

func (s *Solver[T]) checkArgs(p T, xMaxExp uint) error {
	if s.b.Cmp(p, s.b.FromUint64(1)) <= 0 {
		return errors.Wrapf(modarith.ErrInvalidModulus, "p = %s must be greater than 1", s.b.String(p))
	}
	if xMaxExp > s.cfg.maxBoundExp {
		return errors.Wrapf(ErrInvalidBound, "x_max_exp = %d exceeds %d", xMaxExp, s.cfg.maxBoundExp)
	}
	return nil
}

func (s *Solver[T]) search(ctx context.Context, g, h, p T, xMaxExp uint, naive bool) (uint64, error) {
	if err := s.checkArgs(p, xMaxExp); err != nil {
		return 0, err
	}
	be, ar := s.b, s.ar
	mod := commonint.NewModInt(be, p)
	baby, giant := steps(xMaxExp)

	gInv, err := ar.Inverse(g, p)
	if err != nil {
		return 0, errors.Wrap(err, "g must be invertible modulo p")
	}
	common.Logger.Infof("bsgs (%s): x_max_exp %d, %d baby steps, %d giant steps, p %s",
		be.Name(), xMaxExp, baby, giant, common.FormatInt(be, p))

	table, err := s.babySteps(ctx, mod, gInv, h, baby, naive)
	if err != nil {
		return 0, err
	}

	bigB := be.FromUint64(baby)
	gB, err := ar.PowMNative(g, bigB, p)
	if err != nil {
		return 0, err
	}
	rhs := mod.Reduce(be.FromUint64(1))
	for x0 := uint64(0); x0 < giant; x0++ {
		if err := ctx.Err(); err != nil {
			return 0, errors.Wrapf(err, "giant step %d of %d", x0, giant)
		}
		if naive {
			if rhs, err = ar.PowM(gB, be.FromUint64(x0), p); err != nil {
				return 0, err
			}
		}
		if x1, ok := table[be.Key(rhs)]; ok {
			x := x0*baby + x1
			common.Logger.Infof("bsgs (%s): found x = %d at giant step %d", be.Name(), x, x0)
			return x, nil
		}
		if !naive {
			rhs = mod.Mul(rhs, gB)
		}
		s.progress("giant", x0, giant)
	}
	return 0, errors.Wrapf(ErrSearchExhausted, "no x below 2^%d", xMaxExp)
}

// babySteps maps h*g^(-x1) mod p to x1 for x1 in [0, n).
func (s *Solver[T]) babySteps(ctx context.Context, mod *commonint.ModInt[T], gInv, h T, n uint64, naive bool) (map[string]uint64, error) {
	be := s.b
	hint := n
	if hint > maxTableHint {
		hint = maxTableHint
	}
	table := make(map[string]uint64, hint)
	dups := uint64(0)

	lhs := mod.Reduce(h)
	for x1 := uint64(0); x1 < n; x1++ {
		if x1&0x3ff == 0 {
			if err := ctx.Err(); err != nil {
				return nil, errors.Wrapf(err, "baby step %d of %d", x1, n)
			}
		}
		if naive {
			// g^(-x1) = (g^-1)^x1
			gx, err := s.ar.PowM(gInv, be.FromUint64(x1), mod.Modulus())
			if err != nil {
				return nil, err
			}
			lhs = mod.Mul(h, gx)
		}
		key := be.Key(lhs)
		if _, seen := table[key]; seen {
			if dups == 0 {
				common.Logger.Warnf("bsgs (%s): baby steps repeat at x1 = %d, the order of g is at most %d; keeping %s",
					be.Name(), x1, x1, s.cfg.duplicates)
			}
			dups++
			if s.cfg.duplicates == FirstWins {
				lhs = s.nextBaby(mod, lhs, gInv, naive)
				continue
			}
		}
		table[key] = x1
		lhs = s.nextBaby(mod, lhs, gInv, naive)
		s.progress("baby", x1, n)
	}
	common.Logger.Debugf("bsgs (%s): table built, %d entries, %d repeated values", be.Name(), len(table), dups)
	return table, nil
}

func (s *Solver[T]) nextBaby(mod *commonint.ModInt[T], lhs, gInv T, naive bool) T {
	if naive {
		return lhs
	}
	return mod.Mul(lhs, gInv)
}

func (s *Solver[T]) progress(phase string, i, n uint64) {
	if s.cfg.progressInterval == 0 || i == 0 || i%s.cfg.progressInterval != 0 {
		return
	}
	common.Logger.Debugf("bsgs: %s step %d of %d", phase, i, n)
}
