// Copyright © 2021 Io FinNet Group, Inc.

package int

import (
	"github.com/cockroachdb/apd/v3"
)

type (
	// ApdBackend provides the integer capability over apd.BigInt, which keeps values
	// up to 128 bits inline and avoids heap allocation for small operands.
	ApdBackend struct{}
)

var (
	Apd = ApdBackend{}

	_ Backend[*apd.BigInt]       = Apd
	_ Exponentiator[*apd.BigInt] = Apd
)

// canon replaces a negative zero, which apd.BigInt can produce from a negative
// operand, by the zero value.
func canon(z *apd.BigInt) *apd.BigInt {
	if z.BitLen() == 0 {
		return new(apd.BigInt)
	}
	return z
}

func (ApdBackend) Name() string {
	return ApdName
}

func (ApdBackend) FromUint64(x uint64) *apd.BigInt {
	return new(apd.BigInt).SetUint64(x)
}

func (ApdBackend) SetString(s string, base int) (*apd.BigInt, bool) {
	z, ok := new(apd.BigInt).SetString(s, base)
	if !ok {
		return nil, false
	}
	return canon(z), true
}

func (ApdBackend) Add(x, y *apd.BigInt) *apd.BigInt {
	return canon(new(apd.BigInt).Add(x, y))
}

func (ApdBackend) Sub(x, y *apd.BigInt) *apd.BigInt {
	return canon(new(apd.BigInt).Sub(x, y))
}

func (ApdBackend) Mul(x, y *apd.BigInt) *apd.BigInt {
	return canon(new(apd.BigInt).Mul(x, y))
}

func (ApdBackend) Quo(x, y *apd.BigInt) *apd.BigInt {
	return canon(new(apd.BigInt).Quo(x, y))
}

func (ApdBackend) Rem(x, y *apd.BigInt) *apd.BigInt {
	return canon(new(apd.BigInt).Rem(x, y))
}

func (ApdBackend) Neg(x *apd.BigInt) *apd.BigInt {
	return canon(new(apd.BigInt).Neg(x))
}

func (ApdBackend) Sign(x *apd.BigInt) int {
	if x.BitLen() == 0 {
		return 0
	}
	return x.Sign()
}

func (ApdBackend) Cmp(x, y *apd.BigInt) int {
	return x.Cmp(y)
}

func (ab ApdBackend) Key(x *apd.BigInt) string {
	return keyOf(ab.Sign(x), x.Bytes())
}

func (ApdBackend) String(x *apd.BigInt) string {
	if x == nil {
		return "<nil>"
	}
	return x.String()
}

func (ApdBackend) Exp(base, exp, modulus *apd.BigInt) *apd.BigInt {
	return canon(new(apd.BigInt).Exp(base, exp, modulus))
}
