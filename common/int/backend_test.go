// Copyright © 2021 Io FinNet Group, Inc.

package int_test

import (
	"math/big"
	"testing"

	"github.com/cockroachdb/apd/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/iofinnet/bsgs/common/int"
)

const (
	refP = "13407807929942597099574024998205846127479365820592393377723561443721764030073546976801874298166903427690031858186486050853753882811946569946433649006084171"
	refG = "11717829880366207009516117596335367088558084999998952205599979459063929499736583746670572176471460312928594829675428279466566527115212748467589894601965568"
	refH = "3239475104050450443565264378728065788649097520952449527834792452971981976143292558073856937958553180532878928001494706097394108577585732452307673444020333"
)

func TestBackends(t *testing.T) {
	t.Parallel()
	t.Run(BigName, func(t *testing.T) { testBackend[*big.Int](t, Big) })
	t.Run(ApdName, func(t *testing.T) { testBackend[*apd.BigInt](t, Apd) })
	t.Run(ConstantTimeName, func(t *testing.T) { testBackend[*CTInt](t, ConstantTime) })
}

func testBackend[T any](t *testing.T, b Backend[T]) {
	parse := func(s string) T {
		v, ok := b.SetString(s, 10)
		require.True(t, ok, "SetString(%q)", s)
		return v
	}

	t.Run("truncating division", func(t *testing.T) {
		tests := []struct {
			x, y, quo, rem string
		}{
			{"7", "2", "3", "1"},
			{"-7", "2", "-3", "-1"},
			{"7", "-2", "-3", "1"},
			{"-7", "-2", "3", "-1"},
			{"0", "5", "0", "0"},
			{"4", "4", "1", "0"},
			{refG, refP, "0", refG},
		}
		for _, tt := range tests {
			x, y := parse(tt.x), parse(tt.y)
			assert.Equal(t, tt.quo, b.String(b.Quo(x, y)), "%s / %s", tt.x, tt.y)
			assert.Equal(t, tt.rem, b.String(b.Rem(x, y)), "%s %% %s", tt.x, tt.y)
		}
	})

	t.Run("add sub mul neg", func(t *testing.T) {
		x, y := parse("-12345678901234567890123"), parse("98765432109876543210")
		assert.Equal(t, "-12246913469124691346913", b.String(b.Add(x, y)))
		assert.Equal(t, "-12444444333344444433333", b.String(b.Sub(x, y)))
		assert.Equal(t, "-1219326311370217952249611949260778341714830", b.String(b.Mul(x, y)))
		assert.Equal(t, "12345678901234567890123", b.String(b.Neg(x)))
		assert.Equal(t, "0", b.String(b.Add(x, b.Neg(x))))
	})

	t.Run("operands are not modified", func(t *testing.T) {
		x, y := parse("-42"), parse("5")
		_ = b.Add(x, y)
		_ = b.Mul(x, y)
		_ = b.Quo(x, y)
		_ = b.Neg(x)
		assert.Equal(t, "-42", b.String(x))
		assert.Equal(t, "5", b.String(y))
	})

	t.Run("ordering", func(t *testing.T) {
		vals := []string{"-100", "-1", "0", "1", "100", refP}
		for i := range vals {
			for j := range vals {
				want := 0
				if i < j {
					want = -1
				} else if i > j {
					want = 1
				}
				assert.Equal(t, want, b.Cmp(parse(vals[i]), parse(vals[j])), "Cmp(%s, %s)", vals[i], vals[j])
			}
		}
		assert.Equal(t, -1, b.Sign(parse("-3")))
		assert.Equal(t, 0, b.Sign(b.FromUint64(0)))
		assert.Equal(t, 1, b.Sign(b.FromUint64(3)))
	})

	t.Run("keys follow equality", func(t *testing.T) {
		// 6 reached two different ways must hash identically
		six := b.FromUint64(6)
		alsoSix := b.Rem(b.Mul(parse(refG), b.FromUint64(0)), b.FromUint64(7))
		alsoSix = b.Add(alsoSix, b.Quo(b.FromUint64(36), b.FromUint64(6)))
		assert.Equal(t, b.Key(six), b.Key(alsoSix))
		assert.NotEqual(t, b.Key(six), b.Key(b.Neg(six)))
		assert.Equal(t, b.Key(b.FromUint64(0)), b.Key(b.Sub(six, alsoSix)))
		assert.NotEqual(t, b.Key(b.FromUint64(1)), b.Key(b.FromUint64(256)))

		// zeros computed from negative operands carry no sign
		zero := b.FromUint64(0)
		ten, five := b.FromUint64(10), b.FromUint64(5)
		for name, z := range map[string]T{
			"rem": b.Rem(b.Neg(ten), five),
			"quo": b.Quo(b.Neg(b.FromUint64(3)), five),
			"mul": b.Mul(b.Neg(ten), zero),
			"neg": b.Neg(zero),
			"sub": b.Sub(b.Neg(ten), b.Neg(ten)),
			"add": b.Add(b.Neg(five), five),
		} {
			assert.Equal(t, 0, b.Sign(z), name)
			assert.Equal(t, 0, b.Cmp(z, zero), name)
			assert.Equal(t, b.Key(zero), b.Key(z), name)
		}
	})

	t.Run("uint64 round trip", func(t *testing.T) {
		assert.Equal(t, "18446744073709551615", b.String(b.FromUint64(^uint64(0))))
		_, ok := b.SetString("not a number", 10)
		assert.False(t, ok)
	})

	t.Run("division by zero panics", func(t *testing.T) {
		assert.Panics(t, func() { b.Quo(b.FromUint64(1), b.FromUint64(0)) })
	})

	if e, ok := b.(Exponentiator[T]); ok {
		t.Run("native exp", func(t *testing.T) {
			got := e.Exp(b.FromUint64(4), b.FromUint64(13), b.FromUint64(497))
			assert.Equal(t, "445", b.String(got))

			want := new(big.Int).Exp(mustBig(refG), mustBig(refH), mustBig(refP))
			got = e.Exp(parse(refG), parse(refH), parse(refP))
			assert.Equal(t, want.String(), b.String(got))
		})
	}
}

func TestModInt(t *testing.T) {
	t.Parallel()
	mi := NewModInt[*big.Int](Big, big.NewInt(11))
	assert.Equal(t, int64(10), mi.Reduce(big.NewInt(-1)).Int64())
	assert.Equal(t, int64(0), mi.Reduce(big.NewInt(-22)).Int64())
	assert.Equal(t, int64(3), mi.Mul(big.NewInt(5), big.NewInt(5)).Int64())
	assert.Equal(t, int64(1), mi.Add(big.NewInt(7), big.NewInt(5)).Int64())
	assert.Equal(t, int64(9), mi.Sub(big.NewInt(3), big.NewInt(5)).Int64())
	assert.Equal(t, int64(6), mi.Neg(big.NewInt(5)).Int64())
	assert.Equal(t, int64(11), mi.Modulus().Int64())
}

func TestCheckName(t *testing.T) {
	t.Parallel()
	for _, name := range Backends() {
		assert.NoError(t, CheckName(name))
	}
	assert.ErrorIs(t, CheckName("gmp"), ErrUnknownBackend)
	assert.Equal(t, []string{ApdName, BigName, ConstantTimeName}, Backends())
}

func mustBig(s string) *big.Int {
	b, ok := new(big.Int).SetString(s, 10)
	if !ok {
		panic("bad constant " + s)
	}
	return b
}

// ----- //

func BenchmarkMulMod(b *testing.B) {
	b.Run(BigName, func(b *testing.B) { benchMulMod[*big.Int](b, Big) })
	b.Run(ApdName, func(b *testing.B) { benchMulMod[*apd.BigInt](b, Apd) })
	b.Run(ConstantTimeName, func(b *testing.B) { benchMulMod[*CTInt](b, ConstantTime) })
}

func benchMulMod[T any](b *testing.B, be Backend[T]) {
	p, _ := be.SetString(refP, 10)
	g, _ := be.SetString(refG, 10)
	h, _ := be.SetString(refH, 10)
	mi := NewModInt(be, p)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = mi.Mul(g, h)
	}
}
