// Copyright © 2021 Io FinNet Group, Inc.

package common

import (
	"math/big"
)

// smallPrimes contains the first 15 odd primes (excluding 2).
// Used for rapid elimination of composite candidates in safe prime generation.
// Product fits in uint64 for efficient modular arithmetic.
var smallPrimes = []uint64{
	3, 5, 7, 11, 13, 17, 19, 23, 29, 31, 37, 41, 43, 47, 53,
}

// smallPrimesProduct is the product of smallPrimes.
var smallPrimesProduct = new(big.Int).SetUint64(16294579238595022365)

// isPrimeCandidate reports whether n has no factor in smallPrimes other than itself.
func isPrimeCandidate(n, scratch *big.Int) bool {
	m := scratch.Mod(n, smallPrimesProduct).Uint64()
	for _, prime := range smallPrimes {
		if m != prime && m%prime == 0 {
			return false
		}
	}
	return true
}
