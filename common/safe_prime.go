// Copyright © 2021 Io FinNet Group, Inc.
// Copyright © 2019 Binance
//
// This file is part of Binance. The full Binance copyright notice, including
// terms governing use, modification, and redistribution, is contained in the
// file LICENSE at the root of the source code distribution tree.

// Safe primes p = 2q + 1 are used to build prime-order subgroups of Z_p^* in which
// every discrete logarithm below q is unique.
//
// Candidates q are drawn at random and walked upwards in steps of two. A candidate is
// dropped early when q or p = 2q + 1 shares a factor with the small primes 3..53, or
// when q = 1 (mod 3), which makes p a multiple of 3. Survivors get a BPSW test on q, a
// full test on q and Pocklington's criterion 2^(p-1) = 1 (mod p) on p.
package common

import (
	"context"
	"crypto/rand"
	"io"
	"math/big"
	"sync"

	"github.com/pkg/errors"
)

const (
	// InitialPrimeTestN = 1 runs a single BPSW (Baillie-PSW) test
	InitialPrimeTestN = 1
	// PrimeTestN = 15 runs BPSW plus 14 additional Miller-Rabin rounds
	PrimeTestN = 15
	// maxDeltaSearch specifies the number of 2-increment steps to search from a random base.
	maxDeltaSearch = 1 << 20

	minSafePrimeBitLen = 6
)

var ErrSafePrimeTooSmall = errors.Errorf("safe prime size must be at least %d bits", minSafePrimeBitLen)

type (
	GermainSafePrime struct {
		q,
		p *big.Int // p = 2q + 1
	}
)

func NewGermainSafePrime(q, p *big.Int) *GermainSafePrime {
	return &GermainSafePrime{q: q, p: p}
}

func (sgp *GermainSafePrime) Prime() *big.Int {
	return sgp.q
}

func (sgp *GermainSafePrime) SafePrime() *big.Int {
	return sgp.p
}

func (sgp *GermainSafePrime) Validate() bool {
	if sgp == nil || sgp.p == nil || sgp.q == nil {
		return false
	}
	return PrimeToSafePrime(sgp.q).Cmp(sgp.p) == 0 &&
		isPocklingtonCriterionSatisfied(sgp.p) &&
		probablyPrime(sgp.q) &&
		probablyPrime(sgp.p)
}

func PrimeToSafePrime(q *big.Int) *big.Int {
	p := new(big.Int).Lsh(q, 1)
	return p.Add(p, one)
}

func probablyPrime(prime *big.Int) bool {
	return prime != nil && prime.ProbablyPrime(PrimeTestN)
}

// Pocklington: with q prime and p = 2q + 1, 2^(p-1) = 1 (mod p) proves p prime.
func isPocklingtonCriterionSatisfied(p *big.Int) bool {
	pMinus1 := new(big.Int).Sub(p, one)
	return new(big.Int).Exp(two, pMinus1, p).Cmp(one) == 0
}

// ----- //

// GetRandomSafePrime searches for a safe prime p of bitLen bits on `concurrency`
// goroutines and returns the first one found. The two most significant bits of q are
// always set. The search stops when ctx is done.
func GetRandomSafePrime(ctx context.Context, bitLen, concurrency int) (*GermainSafePrime, error) {
	if bitLen < minSafePrimeBitLen {
		return nil, ErrSafePrimeTooSmall
	}
	if concurrency < 1 {
		concurrency = 1
	}

	ctx, cancel := context.WithCancel(ctx)
	primeCh := make(chan *GermainSafePrime, concurrency)
	errCh := make(chan error, concurrency)
	wg := &sync.WaitGroup{}
	wg.Add(concurrency)
	for i := 0; i < concurrency; i++ {
		go func() {
			defer wg.Done()
			genSafePrime(ctx, primeCh, errCh, rand.Reader, bitLen)
		}()
	}
	defer func() {
		cancel()
		wg.Wait()
	}()

	select {
	case sgp := <-primeCh:
		Logger.Debugf("found %d-bit safe prime", sgp.p.BitLen())
		return sgp, nil
	case err := <-errCh:
		return nil, err
	case <-ctx.Done():
		return nil, errors.Wrapf(ctx.Err(), "safe prime generation (%d bits)", bitLen)
	}
}

func genSafePrime(ctx context.Context, primeCh chan<- *GermainSafePrime, errCh chan<- error, rand io.Reader, pBitLen int) {
	qBitLen := pBitLen - 1
	b := uint(qBitLen % 8)
	if b == 0 {
		b = 8
	}
	bytes := make([]byte, (qBitLen+7)/8)

	p, q, qBase := new(big.Int), new(big.Int), new(big.Int)
	scratch := new(big.Int)

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}
		if _, err := io.ReadFull(rand, bytes); err != nil {
			select {
			case errCh <- errors.Wrap(err, "reading randomness"):
			default:
			}
			return
		}
		// clear the excess bits of the first byte and set the top two
		bytes[0] &= uint8(int(1<<b) - 1)
		if b >= 2 {
			bytes[0] |= 3 << (b - 2)
		} else {
			bytes[0] |= 1
			if len(bytes) > 1 {
				bytes[1] |= 0x80
			}
		}
		bytes[len(bytes)-1] |= 1

		qBase.SetBytes(bytes)
		mod := scratch.Mod(qBase, smallPrimesProduct).Uint64()
		mod3 := scratch.Mod(qBase, three).Uint64()

		found := false
	NextDelta:
		for delta := uint64(0); delta < maxDeltaSearch; delta, mod3 = delta+2, (mod3+2)%3 {
			m := mod + delta
			for _, prime := range smallPrimes {
				// q may itself be a small prime when qBitLen <= 6
				if m%prime == 0 && (m != prime || qBitLen > 6) {
					continue NextDelta
				}
			}
			// q = 1 (mod 3) gives p = 3(2q' + 1)
			if mod3 == 1 {
				continue
			}
			q.Add(qBase, scratch.SetUint64(delta))
			if q.BitLen() != qBitLen {
				break
			}
			p.Lsh(q, 1).Add(p, one)
			if isPrimeCandidate(p, scratch) {
				found = true
				break
			}
		}
		if !found || !q.ProbablyPrime(InitialPrimeTestN) {
			continue
		}
		sgp := &GermainSafePrime{q: new(big.Int).Set(q), p: new(big.Int).Set(p)}
		if !sgp.Validate() {
			continue
		}
		select {
		case primeCh <- sgp:
		case <-ctx.Done():
		}
		return
	}
}
