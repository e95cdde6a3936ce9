// Copyright © 2021 Io FinNet Group, Inc.

package group_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/iofinnet/bsgs/crypto/group"
	"github.com/iofinnet/bsgs/crypto/modarith"
)

func TestTotient(t *testing.T) {
	for n, want := range map[uint64]uint64{
		2:    1,
		7:    6,
		10:   4,
		12:   4,
		36:   12,
		2039: 2038,
		4096: 2048,

		MaxOrderModulus:     MaxOrderModulus / 2,
		MaxOrderModulus - 1: 26121388032,
		68719476731:         68719476730,
	} {
		phi, err := Totient(n)
		require.NoError(t, err)
		assert.Equal(t, want, phi, "phi(%d)", n)
	}

	_, err := Totient(1)
	assert.ErrorIs(t, err, modarith.ErrInvalidModulus)
	_, err = Totient(math.MaxUint64)
	assert.ErrorIs(t, err, ErrModulusTooLarge)
	_, err = Totient(MaxOrderModulus + 1)
	assert.ErrorIs(t, err, ErrModulusTooLarge)
}

func TestOrder(t *testing.T) {
	for _, tc := range []struct {
		g, p, want uint64
	}{
		{1, 2, 1},
		{1, 7, 1},
		{6, 7, 2},
		{3, 7, 6},
		{2, 11, 10},
		{13, 11, 10},
		{3, 10, 4},
		{2, 15, 4},
		{4, 2039, 1019},
		{2038, 2039, 2},
		{7, 2147483647, 2147483646},
		{2, 2147483647, 31},
		{3, 68719476731, 34359738365},
		{2, 68719476731, 68719476730},
	} {
		order, err := Order(tc.g, tc.p)
		require.NoError(t, err)
		assert.Equal(t, tc.want, order, "order of %d modulo %d", tc.g, tc.p)
	}

	_, err := Order(5, 15)
	assert.ErrorIs(t, err, modarith.ErrNotInvertible)
	_, err = Order(0, 11)
	assert.ErrorIs(t, err, modarith.ErrNotInvertible)
	_, err = Order(2, 1)
	assert.ErrorIs(t, err, modarith.ErrInvalidModulus)
	_, err = Order(2, MaxOrderModulus+3)
	assert.ErrorIs(t, err, ErrModulusTooLarge)
}
