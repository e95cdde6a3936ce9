// Copyright © 2021 Io FinNet Group, Inc.

package int

import (
	"math/big"

	"github.com/cronokirby/saferith"
)

type (
	// CTInt is a signed integer built from a sign and a saferith.Nat magnitude.
	// Arithmetic on the magnitude is constant time with respect to its announced
	// length; results are trimmed to their true length so sizes do not accumulate.
	CTInt struct {
		neg bool
		abs *saferith.Nat
	}

	// ConstantTimeBackend provides the integer capability over saferith.
	ConstantTimeBackend struct{}
)

var (
	ConstantTime = ConstantTimeBackend{}

	_ Backend[*CTInt]       = ConstantTime
	_ Exponentiator[*CTInt] = ConstantTime
)

func newCTInt(neg bool, abs *saferith.Nat) *CTInt {
	abs = trim(abs)
	if abs.EqZero() == 1 {
		neg = false
	}
	return &CTInt{neg: neg, abs: abs}
}

// trim resizes n to its true length. This leaks the size of the value.
func trim(n *saferith.Nat) *saferith.Nat {
	l := n.TrueLen()
	if l < 1 {
		l = 1
	}
	return n.Resize(l)
}

func cmpAbs(x, y *saferith.Nat) int {
	gt, eq, _ := x.Cmp(y)
	switch {
	case eq == 1:
		return 0
	case gt == 1:
		return 1
	default:
		return -1
	}
}

// Big converts x to a *big.Int.
func (x *CTInt) Big() *big.Int {
	b := x.abs.Big()
	if x.neg {
		b.Neg(b)
	}
	return b
}

func (x *CTInt) String() string {
	if x == nil || x.abs == nil {
		return "<nil>"
	}
	return x.Big().String()
}

// ----- //

func (ConstantTimeBackend) Name() string {
	return ConstantTimeName
}

func (ConstantTimeBackend) FromUint64(x uint64) *CTInt {
	return newCTInt(false, new(saferith.Nat).SetUint64(x))
}

func (ConstantTimeBackend) SetString(s string, base int) (*CTInt, bool) {
	b, ok := new(big.Int).SetString(s, base)
	if !ok {
		return nil, false
	}
	return fromBig(b), true
}

func fromBig(b *big.Int) *CTInt {
	abs := new(big.Int).Abs(b)
	return newCTInt(b.Sign() < 0, new(saferith.Nat).SetBig(abs, abs.BitLen()))
}

func (ct ConstantTimeBackend) Add(x, y *CTInt) *CTInt {
	if x.neg == y.neg {
		return newCTInt(x.neg, new(saferith.Nat).Add(x.abs, y.abs, -1))
	}
	if cmpAbs(x.abs, y.abs) >= 0 {
		return newCTInt(x.neg, new(saferith.Nat).Sub(x.abs, y.abs, -1))
	}
	return newCTInt(y.neg, new(saferith.Nat).Sub(y.abs, x.abs, -1))
}

func (ct ConstantTimeBackend) Sub(x, y *CTInt) *CTInt {
	return ct.Add(x, ct.Neg(y))
}

func (ConstantTimeBackend) Mul(x, y *CTInt) *CTInt {
	return newCTInt(x.neg != y.neg, new(saferith.Nat).Mul(x.abs, y.abs, -1))
}

func (ConstantTimeBackend) Quo(x, y *CTInt) *CTInt {
	m := modulusOf(y)
	return newCTInt(x.neg != y.neg, new(saferith.Nat).Div(x.abs, m, x.abs.AnnouncedLen()))
}

func (ConstantTimeBackend) Rem(x, y *CTInt) *CTInt {
	m := modulusOf(y)
	return newCTInt(x.neg, new(saferith.Nat).Mod(x.abs, m))
}

func modulusOf(y *CTInt) *saferith.Modulus {
	if y.abs.EqZero() == 1 {
		panic("division by zero")
	}
	return saferith.ModulusFromNat(y.abs)
}

func (ConstantTimeBackend) Neg(x *CTInt) *CTInt {
	return newCTInt(!x.neg, x.abs.Clone())
}

func (ConstantTimeBackend) Sign(x *CTInt) int {
	switch {
	case x.abs.EqZero() == 1:
		return 0
	case x.neg:
		return -1
	default:
		return 1
	}
}

func (ct ConstantTimeBackend) Cmp(x, y *CTInt) int {
	switch {
	case x.neg && !y.neg:
		return -1
	case !x.neg && y.neg:
		return 1
	case x.neg:
		return cmpAbs(y.abs, x.abs)
	default:
		return cmpAbs(x.abs, y.abs)
	}
}

func (ct ConstantTimeBackend) Key(x *CTInt) string {
	return keyOf(ct.Sign(x), x.abs.Big().Bytes())
}

func (ConstantTimeBackend) String(x *CTInt) string {
	return x.String()
}

func (ConstantTimeBackend) Exp(base, exp, modulus *CTInt) *CTInt {
	m := saferith.ModulusFromNat(modulus.abs)
	if modulus.abs.Big().Bit(0) == 1 {
		return newCTInt(false, new(saferith.Nat).Exp(base.abs, exp.abs, m))
	}
	// even moduli: left-to-right square-and-multiply
	e := exp.abs.Big()
	acc := new(saferith.Nat).SetUint64(1)
	acc = new(saferith.Nat).Mod(acc, m)
	for i := e.BitLen() - 1; i >= 0; i-- {
		acc = new(saferith.Nat).ModMul(acc, acc, m)
		if e.Bit(i) == 1 {
			acc = new(saferith.Nat).ModMul(acc, base.abs, m)
		}
	}
	return newCTInt(false, acc)
}
