// Copyright © 2019 Binance
//
// This file is part of Binance. The full Binance copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

package common

import (
	"crypto/rand"
	"math/big"

	"github.com/pkg/errors"
)

var (
	zero  = big.NewInt(0)
	one   = big.NewInt(1)
	two   = big.NewInt(2)
	three = big.NewInt(3)
)

// mustRandInt draws from [0, max) and panics when rand.Reader fails.
func mustRandInt(max *big.Int) *big.Int {
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		panic(errors.Wrap(err, "reading random bits"))
	}
	return n
}

// GetRandomPositiveInt returns a value in (0, upper), or nil when upper <= 1.
func GetRandomPositiveInt(upper *big.Int) *big.Int {
	if upper == nil || one.Cmp(upper) != -1 {
		return nil
	}
	// uniform over [0, upper-1), shifted past zero
	n := mustRandInt(new(big.Int).Sub(upper, one))
	return n.Add(n, one)
}

// GetRandomIntBelowPow2 returns a uniformly random value in [0, 2^bits).
func GetRandomIntBelowPow2(bits uint) *big.Int {
	if bits == 0 {
		return new(big.Int)
	}
	return mustRandInt(new(big.Int).Lsh(one, bits))
}

// IsNumberInMultiplicativeGroup reports whether v is a unit of Z/nZ.
func IsNumberInMultiplicativeGroup(n, v *big.Int) bool {
	if n == nil || v == nil || zero.Cmp(n) != -1 {
		return false
	}
	gcd := new(big.Int)
	return v.Cmp(n) < 0 && v.Cmp(one) >= 0 &&
		gcd.GCD(nil, nil, v, n).Cmp(one) == 0
}

// GetRandomQuadraticResidueGenerator returns a random square f^2 mod p other than 1.
// When p = 2q + 1 is a safe prime the result generates the subgroup of order q.
func GetRandomQuadraticResidueGenerator(p *big.Int) *big.Int {
	if p == nil || p.Cmp(big.NewInt(5)) < 0 {
		return nil
	}
	for {
		f := GetRandomPositiveInt(p)
		fSq := new(big.Int).Mul(f, f)
		fSq.Mod(fSq, p)
		if fSq.Cmp(one) != 0 {
			return fSq
		}
	}
}
