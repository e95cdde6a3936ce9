// Copyright © 2021 Io FinNet Group, Inc.

package main

import (
	"context"
	"math/big"
	"time"

	"github.com/cockroachdb/apd/v3"

	commonint "github.com/iofinnet/bsgs/common/int"
	"github.com/iofinnet/bsgs/crypto/dlog"
	"github.com/iofinnet/bsgs/crypto/group"
)

type result struct {
	backend  string
	x        uint64
	elapsed  time.Duration
	verified bool
	err      error
}

// solve runs the search with the backend called name. Search failures are reported in
// the result, configuration failures as the error.
func solve(ctx context.Context, name string, in *group.Instance) (result, error) {
	switch name {
	case commonint.BigName:
		return solveWith[*big.Int](ctx, commonint.Big, in)
	case commonint.ApdName:
		return solveWith[*apd.BigInt](ctx, commonint.Apd, in)
	case commonint.ConstantTimeName:
		return solveWith[*commonint.CTInt](ctx, commonint.ConstantTime, in)
	default:
		return result{}, commonint.CheckName(name)
	}
}

func solveWith[T any](ctx context.Context, b commonint.Backend[T], in *group.Instance) (result, error) {
	g, h, p, err := group.Lift(b, in)
	if err != nil {
		return result{}, err
	}
	res := result{backend: b.Name()}
	s := dlog.NewSolver(b)
	start := time.Now()
	res.x, res.err = s.DiscreteLogContext(ctx, g, h, p, in.XMaxExp)
	res.elapsed = time.Since(start)
	if res.err != nil {
		return res, nil
	}
	res.verified, err = s.Verify(g, h, p, res.x)
	return res, err
}
