// Copyright © 2021 Io FinNet Group, Inc.

package group

import (
	"math"
	"math/big"
	"math/bits"
	"sort"
	"sync"

	"github.com/otiai10/primes"
	"github.com/pkg/errors"

	"github.com/iofinnet/bsgs/crypto/modarith"
)

// MaxOrderModulus is the largest modulus Totient and Order accept. Factoring
// trial-divides by the primes below its square root.
const MaxOrderModulus = uint64(1) << 36

var ErrModulusTooLarge = errors.Errorf("modulus exceeds %d", MaxOrderModulus)

// primesMu guards the package level prime cache of otiai10/primes.
var primesMu sync.Mutex

// Totient returns Euler's phi(n) for 1 < n <= MaxOrderModulus.
func Totient(n uint64) (uint64, error) {
	if n <= 1 {
		return 0, errors.Wrapf(modarith.ErrInvalidModulus, "n = %d", n)
	}
	if n > MaxOrderModulus {
		return 0, errors.Wrapf(ErrModulusTooLarge, "n = %d", n)
	}
	phi := n
	for q := range factorize(n) {
		phi = phi / q * (q - 1)
	}
	return phi, nil
}

// Order returns the multiplicative order of g modulo p, i.e. the smallest k > 0 with
// g^k = 1 (mod p). p must not exceed MaxOrderModulus.
func Order(g, p uint64) (uint64, error) {
	phi, err := Totient(p)
	if err != nil {
		return 0, err
	}
	bp := new(big.Int).SetUint64(p)
	bg := new(big.Int).SetUint64(g % p)
	if !isUnit(bg, bp) {
		return 0, &modarith.NotInvertibleError{A: bg.String(), N: bp.String()}
	}
	if phi == 1 {
		return 1, nil
	}

	factors := make([]uint64, 0)
	for q := range factorize(phi) {
		factors = append(factors, q)
	}
	sort.Slice(factors, func(i, j int) bool { return factors[i] < factors[j] })

	one := big.NewInt(1)
	order := phi
	for _, q := range factors {
		for order%q == 0 {
			cand := order / q
			if new(big.Int).Exp(bg, new(big.Int).SetUint64(cand), bp).Cmp(one) != 0 {
				break
			}
			order = cand
		}
	}
	return order, nil
}

// factorize returns the prime powers of n. The cofactor left after dividing out
// every prime up to sqrt(n) is itself prime.
func factorize(n uint64) map[uint64]int {
	// powers of two, so that the cache only ever holds a few sieves
	limit := int64(1) << bits.Len64(isqrt(n)-1)
	primesMu.Lock()
	small := primes.Until(limit).List()
	primesMu.Unlock()

	powers := make(map[uint64]int)
	for _, q := range small {
		uq := uint64(q)
		if uq*uq > n {
			break
		}
		for n%uq == 0 {
			powers[uq]++
			n /= uq
		}
	}
	if n > 1 {
		powers[n]++
	}
	return powers
}

func isqrt(n uint64) uint64 {
	r := uint64(math.Sqrt(float64(n)))
	for r*r > n {
		r--
	}
	for (r+1)*(r+1) <= n {
		r++
	}
	return r
}

func isUnit(g, p *big.Int) bool {
	return g.Sign() != 0 && new(big.Int).GCD(nil, nil, g, p).Cmp(big.NewInt(1)) == 0
}
