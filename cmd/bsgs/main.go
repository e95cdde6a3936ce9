// Copyright © 2021 Io FinNet Group, Inc.

package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/pkg/errors"
	"gopkg.in/alecthomas/kingpin.v2"

	"github.com/iofinnet/bsgs/common"
	commonint "github.com/iofinnet/bsgs/common/int"
	"github.com/iofinnet/bsgs/crypto/group"
)

const (
	errorPrefix = "bsgs: "

	defaultGenerateBits = 20
)

type cli struct {
	app *kingpin.Application

	logLevel *string
	config   *string
	backend  *string
	p, g, h  *string
	bits     *string

	solve   *kingpin.CmdClause
	compare *kingpin.CmdClause

	generate    *kingpin.CmdClause
	primeBits   *int
	concurrency *int
}

func newCLI() *cli {
	c := &cli{app: kingpin.New("bsgs", "Baby-step giant-step discrete logarithm solver")}
	c.app.Version("0.1.0")
	c.logLevel = c.app.Flag("log-level", "Log level (debug, info, warn, error).").Default("warn").String()
	c.config = c.app.Flag("config", "YAML file with keys p, g, h, bits and backend.").Short('c').String()
	c.backend = c.app.Flag("backend", "Integer backend: "+fmt.Sprint(commonint.Backends())+".").Short('b').String()
	c.p = c.app.Flag("p", "Modulus, in decimal.").String()
	c.g = c.app.Flag("g", "Generator, in decimal.").String()
	c.h = c.app.Flag("h", "Target, in decimal.").String()
	c.bits = c.app.Flag("bits", "x_max_exp: the answer is below 2^bits (default 40 for solve, 20 for generate).").String()

	c.solve = c.app.Command("solve", "Solve g^x = h (mod p). Without p, g and h the reference instance is solved.").Default()
	c.compare = c.app.Command("compare", "Solve the instance with every backend and print the timings.")

	c.generate = c.app.Command("generate", "Print a random instance over the prime order subgroup of a safe prime group.")
	c.primeBits = c.generate.Flag("prime-bits", "Bit length of the safe prime p.").Default("64").Int()
	c.concurrency = c.generate.Flag("concurrency", "Prime search workers.").Default(fmt.Sprint(runtime.NumCPU())).Int()
	return c
}

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "%s%s\n", errorPrefix, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, out io.Writer) error {
	c := newCLI()
	command, err := c.app.Parse(args)
	if err != nil {
		return errors.Wrap(err, "parsing arguments, try --help")
	}
	if err := common.SetLogLevel(*c.logLevel); err != nil {
		return err
	}

	switch command {
	case c.generate.FullCommand():
		bits := uint64(defaultGenerateBits)
		if *c.bits != "" {
			if bits, err = strconv.ParseUint(*c.bits, 10, 32); err != nil {
				return errors.Wrap(err, "--bits")
			}
		}
		in, x, err := group.Generate(ctx, *c.primeBits, uint(bits), *c.concurrency)
		if err != nil {
			return err
		}
		return writeInstance(out, in, x)
	}

	cfg, err := loadConfig(*c.config, overrides{
		keyBackend: *c.backend,
		keyP:       *c.p,
		keyG:       *c.g,
		keyH:       *c.h,
		keyBits:    *c.bits,
	})
	if err != nil {
		return err
	}
	in, err := cfg.instance()
	if err != nil {
		return err
	}
	if err := in.Validate(); err != nil {
		return err
	}

	switch command {
	case c.compare.FullCommand():
		results := make([]result, 0, len(commonint.Backends()))
		for _, name := range commonint.Backends() {
			res, err := solve(ctx, name, in)
			if err != nil {
				return err
			}
			results = append(results, res)
		}
		renderResults(out, results)
		return nil

	default:
		res, err := solve(ctx, cfg.backend(), in)
		if err != nil {
			return err
		}
		if res.err != nil {
			return res.err
		}
		fmt.Fprintln(out, res.x)
		return nil
	}
}

func renderResults(out io.Writer, results []result) {
	table := tablewriter.NewWriter(out)
	table.SetHeader([]string{"Backend", "x", "Elapsed", "Verified"})
	for _, r := range results {
		x := fmt.Sprint(r.x)
		if r.err != nil {
			x = r.err.Error()
		}
		table.Append([]string{r.backend, x, r.elapsed.Round(time.Millisecond).String(), fmt.Sprint(r.verified)})
	}
	table.Render()
}

func writeInstance(out io.Writer, in *group.Instance, x uint64) error {
	if _, err := fmt.Fprintf(out, "# x = %d\n", x); err != nil {
		return err
	}
	if order, err := in.GeneratorOrder(); err == nil {
		if _, err := fmt.Fprintf(out, "# order = %d\n", order); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(out, "p: \"%s\"\ng: \"%s\"\nh: \"%s\"\nbits: %d\n", in.P, in.G, in.H, in.XMaxExp)
	return err
}
