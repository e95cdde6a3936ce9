// Copyright © 2019 Binance
//
// This file is part of Binance. The full Binance copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

package int

import (
	"math/big"
)

type (
	// BigBackend provides the integer capability over math/big.
	BigBackend struct{}
)

var (
	Big = BigBackend{}

	_ Backend[*big.Int]       = Big
	_ Exponentiator[*big.Int] = Big
)

func (BigBackend) Name() string {
	return BigName
}

func (BigBackend) FromUint64(x uint64) *big.Int {
	return new(big.Int).SetUint64(x)
}

func (BigBackend) SetString(s string, base int) (*big.Int, bool) {
	return new(big.Int).SetString(s, base)
}

func (BigBackend) Add(x, y *big.Int) *big.Int {
	return new(big.Int).Add(x, y)
}

func (BigBackend) Sub(x, y *big.Int) *big.Int {
	return new(big.Int).Sub(x, y)
}

func (BigBackend) Mul(x, y *big.Int) *big.Int {
	return new(big.Int).Mul(x, y)
}

// Quo uses big.Int.Quo rather than Div: Div is Euclidean, Quo truncates.
func (BigBackend) Quo(x, y *big.Int) *big.Int {
	return new(big.Int).Quo(x, y)
}

func (BigBackend) Rem(x, y *big.Int) *big.Int {
	return new(big.Int).Rem(x, y)
}

func (BigBackend) Neg(x *big.Int) *big.Int {
	return new(big.Int).Neg(x)
}

func (BigBackend) Sign(x *big.Int) int {
	return x.Sign()
}

func (BigBackend) Cmp(x, y *big.Int) int {
	return x.Cmp(y)
}

func (BigBackend) Key(x *big.Int) string {
	return keyOf(x.Sign(), x.Bytes())
}

func (BigBackend) String(x *big.Int) string {
	if x == nil {
		return "<nil>"
	}
	return x.String()
}

func (BigBackend) Exp(base, exp, modulus *big.Int) *big.Int {
	return new(big.Int).Exp(base, exp, modulus)
}
