// Copyright © 2021 Io FinNet Group, Inc.

// Package group describes discrete logarithm problem instances over Z_p^*.
package group

import (
	"context"
	"math/big"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"

	"github.com/iofinnet/bsgs/common"
	commonint "github.com/iofinnet/bsgs/common/int"
	"github.com/iofinnet/bsgs/crypto/dlog"
	"github.com/iofinnet/bsgs/crypto/modarith"
)

const (
	referenceP = "13407807929942597099574024998205846127479365820592393377723561443721764030073546976801874298166903427690031858186486050853753882811946569946433649006084171"
	referenceG = "11717829880366207009516117596335367088558084999998952205599979459063929499736583746670572176471460312928594829675428279466566527115212748467589894601965568"
	referenceH = "3239475104050450443565264378728065788649097520952449527834792452971981976143292558073856937958553180532878928001494706097394108577585732452307673444020333"

	// ReferenceX is the answer of the Reference instance.
	ReferenceX = uint64(375374217830)
	// ReferenceXMaxExp is the exponent bound of the Reference instance.
	ReferenceXMaxExp = 40
)

var (
	ErrMissingValue = errors.New("missing value")
	ErrBadNumber    = errors.New("not a decimal integer")
)

type (
	// Instance asks for x in [0, 2^XMaxExp) with G^x = H (mod P).
	Instance struct {
		P, G, H *big.Int
		XMaxExp uint
	}
)

// Reference returns the 513-bit instance whose answer is ReferenceX.
func Reference() *Instance {
	in, err := Parse(referenceP, referenceG, referenceH, ReferenceXMaxExp)
	if err != nil {
		panic(err)
	}
	return in
}

// Parse reads p, g and h as decimal integers.
func Parse(p, g, h string, xMaxExp uint) (*Instance, error) {
	var result *multierror.Error
	parse := func(name, s string) *big.Int {
		if s == "" {
			result = multierror.Append(result, errors.Wrap(ErrMissingValue, name))
			return nil
		}
		v, ok := new(big.Int).SetString(s, 10)
		if !ok {
			result = multierror.Append(result, errors.Wrapf(ErrBadNumber, "%s = %q", name, s))
			return nil
		}
		return v
	}
	in := &Instance{P: parse("p", p), G: parse("g", g), H: parse("h", h), XMaxExp: xMaxExp}
	if err := result.ErrorOrNil(); err != nil {
		return nil, err
	}
	return in, nil
}

// Validate reports every precondition of the solver that the instance violates.
func (in *Instance) Validate() error {
	var result *multierror.Error
	if in.P == nil {
		result = multierror.Append(result, errors.Wrap(ErrMissingValue, "p"))
	} else if in.P.Cmp(big.NewInt(1)) <= 0 {
		result = multierror.Append(result, errors.Wrapf(modarith.ErrInvalidModulus, "p = %s must be greater than 1", in.P))
	}
	if in.G == nil {
		result = multierror.Append(result, errors.Wrap(ErrMissingValue, "g"))
	}
	if in.H == nil {
		result = multierror.Append(result, errors.Wrap(ErrMissingValue, "h"))
	}
	if in.XMaxExp > dlog.MaxBoundExp {
		result = multierror.Append(result, errors.Wrapf(dlog.ErrInvalidBound, "x_max_exp = %d exceeds %d", in.XMaxExp, dlog.MaxBoundExp))
	}
	if err := result.ErrorOrNil(); err != nil {
		return err
	}

	g := new(big.Int).Mod(in.G, in.P)
	if !common.IsNumberInMultiplicativeGroup(in.P, g) {
		result = multierror.Append(result, errors.Wrapf(modarith.ErrNotInvertible, "g is not a unit modulo p"))
	}
	if !in.P.ProbablyPrime(common.InitialPrimeTestN) {
		common.Logger.Warnf("p = %s is composite, a solution may not be unique", common.FormatInt[*big.Int](commonint.Big, in.P))
	}
	if err := result.ErrorOrNil(); err != nil {
		return err
	}
	if order, below := in.OrderBelowBound(); below {
		common.Logger.Warnf("g has order %d below 2^%d, solutions are only unique modulo %d", order, in.XMaxExp, order)
	}
	return nil
}

// GeneratorOrder returns the multiplicative order of G modulo P.
// P must not exceed MaxOrderModulus.
func (in *Instance) GeneratorOrder() (uint64, error) {
	if in.P == nil || in.G == nil {
		return 0, errors.Wrap(ErrMissingValue, "p and g are required")
	}
	if in.P.Cmp(big.NewInt(1)) <= 0 {
		return 0, errors.Wrapf(modarith.ErrInvalidModulus, "p = %s must be greater than 1", in.P)
	}
	if !in.P.IsUint64() || in.P.Uint64() > MaxOrderModulus {
		return 0, errors.Wrapf(ErrModulusTooLarge, "p has %d bits", in.P.BitLen())
	}
	g := new(big.Int).Mod(in.G, in.P)
	return Order(g.Uint64(), in.P.Uint64())
}

// OrderBelowBound reports whether the order of G is known and smaller than 2^XMaxExp.
// Then several x in range solve the instance and the solver returns the smallest.
func (in *Instance) OrderBelowBound() (uint64, bool) {
	order, err := in.GeneratorOrder()
	if err != nil {
		return 0, false
	}
	return order, in.XMaxExp >= dlog.MaxBoundExp || order < uint64(1)<<in.XMaxExp
}

// Lift converts the instance into values of backend b.
func Lift[T any](b commonint.Backend[T], in *Instance) (g, h, p T, err error) {
	conv := func(x *big.Int) (T, error) {
		v, ok := b.SetString(x.String(), 10)
		if !ok {
			return v, errors.Errorf("backend %s cannot represent %s", b.Name(), x)
		}
		return v, nil
	}
	if g, err = conv(in.G); err != nil {
		return
	}
	if h, err = conv(in.H); err != nil {
		return
	}
	p, err = conv(in.P)
	return
}

// Generate draws a safe prime p = 2q + 1 of primeBits bits, a generator g of the
// subgroup of order q and a secret x < 2^xMaxExp, and returns the instance h = g^x
// together with x. Since 2^xMaxExp <= q the answer is unique.
func Generate(ctx context.Context, primeBits int, xMaxExp uint, concurrency int) (*Instance, uint64, error) {
	if xMaxExp > dlog.MaxBoundExp {
		return nil, 0, errors.Wrapf(dlog.ErrInvalidBound, "x_max_exp = %d exceeds %d", xMaxExp, dlog.MaxBoundExp)
	}
	if primeBits < 0 || uint(primeBits) < xMaxExp+2 {
		return nil, 0, errors.Wrapf(dlog.ErrInvalidBound, "%d-bit prime is too small for x_max_exp = %d", primeBits, xMaxExp)
	}
	sgp, err := common.GetRandomSafePrime(ctx, primeBits, concurrency)
	if err != nil {
		return nil, 0, errors.Wrap(err, "generating group")
	}
	p := sgp.SafePrime()
	g := common.GetRandomQuadraticResidueGenerator(p)
	x := common.GetRandomIntBelowPow2(xMaxExp)
	h := new(big.Int).Exp(g, x, p)
	common.Logger.Debugf("generated %d-bit instance, x_max_exp %d", p.BitLen(), xMaxExp)
	return &Instance{P: p, G: g, H: h, XMaxExp: xMaxExp}, x.Uint64(), nil
}
