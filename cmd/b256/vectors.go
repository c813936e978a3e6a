// Copyright 2020 Aleksandr Demakin. All rights reserved.

package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"math/big"
	"os"
	"strings"
	"sync/atomic"

	"github.com/holiman/uint256"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	floatmath "github.com/cag/solidity-float-point-calculation"
)

// vector is one line of a vector file:
//
//	fromint mode a expected
//	op mode a b expected
//
// Blank lines and lines starting with '#' are skipped.
type vector struct {
	line     int
	op       string
	mode     floatmath.RoundingMode
	args     []string
	expected string
}

type summary struct {
	Total  int
	Failed int
}

var (
	// word bounds for integer operands: two's complement below zero, unsigned above.
	minWord = new(big.Int).Neg(new(big.Int).Lsh(big.NewInt(1), 255))
	wordMod = new(big.Int).Lsh(big.NewInt(1), 256)
)

func verifyFile(ctx context.Context, name string, workers int, logger zerolog.Logger) (summary, error) {
	f, err := os.Open(name)
	if err != nil {
		return summary{}, err
	}
	defer f.Close()
	vectors, err := parseVectors(f)
	if err != nil {
		return summary{}, err
	}
	logger.Debug().Int("count", len(vectors)).Int("workers", workers).Msg("vectors loaded")
	return verifyVectors(ctx, vectors, workers, logger)
}

func parseVectors(r io.Reader) ([]vector, error) {
	var result []vector
	sc := bufio.NewScanner(r)
	for line := 1; sc.Scan(); line++ {
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.Fields(text)
		want := 5
		if fields[0] == "fromint" {
			want = 4
		}
		if len(fields) != want {
			return nil, fmt.Errorf("line %d: got %d fields, want %d", line, len(fields), want)
		}
		mode, err := floatmath.ParseRoundingMode(fields[1])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		result = append(result, vector{
			line:     line,
			op:       fields[0],
			mode:     mode,
			args:     fields[2 : want-1],
			expected: fields[want-1],
		})
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// verifyVectors evaluates vectors concurrently, at most workers at a time.
// Mismatches are logged and counted; malformed operands abort the run.
func verifyVectors(ctx context.Context, vectors []vector, workers int, logger zerolog.Logger) (summary, error) {
	g, gctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}
	var failed atomic.Int64
	for _, v := range vectors {
		v := v
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			got, err := v.eval()
			if err != nil {
				return fmt.Errorf("line %d: %w", v.line, err)
			}
			want, err := floatmath.Parse(v.expected, floatmath.ToNearestEven)
			if err != nil {
				return fmt.Errorf("line %d: expected value: %w", v.line, err)
			}
			if got != want {
				failed.Add(1)
				logger.Warn().
					Int("line", v.line).
					Str("op", v.op).
					Stringer("mode", v.mode).
					Str("got", got.Hex()).
					Str("want", want.Hex()).
					Msg("mismatch")
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return summary{}, err
	}
	// the group context is done after Wait, the caller's one only if interrupted.
	if err := ctx.Err(); err != nil {
		return summary{}, err
	}
	return summary{Total: len(vectors), Failed: int(failed.Load())}, nil
}

func (v vector) eval() (floatmath.Float, error) {
	if v.op == "fromint" {
		x, err := parseWord(v.args[0])
		if err != nil {
			return floatmath.Zero, err
		}
		return floatmath.FromInt(x, v.mode), nil
	}
	op, err := floatmath.ParseOp(v.op)
	if err != nil {
		return floatmath.Zero, err
	}
	res, _, err := apply(op, v.args[0], v.args[1], v.mode)
	return res, err
}

// parseWord reads a 256-bit word given in decimal or with a 0x, 0o or 0b prefix.
// Negative values are stored as two's complement.
func parseWord(s string) (*uint256.Int, error) {
	b, ok := new(big.Int).SetString(s, 0)
	if !ok {
		return nil, fmt.Errorf("bad integer %q", s)
	}
	if b.Cmp(minWord) < 0 || b.Cmp(wordMod) >= 0 {
		return nil, fmt.Errorf("integer %q does not fit 256 bits", s)
	}
	if b.Sign() < 0 {
		b.Add(b, wordMod)
	}
	x, overflow := uint256.FromBig(b)
	if overflow {
		return nil, fmt.Errorf("integer %q does not fit 256 bits", s)
	}
	return x, nil
}
