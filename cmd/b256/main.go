// Copyright 2020 Aleksandr Demakin. All rights reserved.

// Command b256 evaluates binary256 operations from the command line
// and verifies files of test vectors.
//
//	b256 [-mode rne] add 0x3ffff000...0 0x40000000...0
//	b256 -vectors testdata/vectors.txt -workers 8
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"

	"github.com/rs/zerolog"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	floatmath "github.com/cag/solidity-float-point-calculation"
	"github.com/cag/solidity-float-point-calculation/internal/uintmath"
)

var errUsage = errors.New("usage: b256 [-mode m] op a [b] | b256 -vectors file [-workers n]")

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	os.Exit(run(ctx, os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("b256", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		modeFlag    = fs.String("mode", "rne", "rounding mode: rne, rtz, rtp, rtn or 0..3")
		vectorsFlag = fs.String("vectors", "", "file with test vectors to verify")
		workersFlag = fs.Int("workers", runtime.NumCPU(), "number of vectors verified concurrently")
		verboseFlag = fs.Bool("v", false, "log at debug level")
	)
	if err := fs.Parse(args); err != nil {
		return 2
	}
	logger := newLogger(stderr, *verboseFlag)
	p := message.NewPrinter(language.English)

	if *vectorsFlag != "" {
		summary, err := verifyFile(ctx, *vectorsFlag, *workersFlag, logger)
		if err != nil {
			logger.Error().Err(err).Str("file", *vectorsFlag).Msg("verification failed")
			return 1
		}
		p.Fprintf(stdout, "%d vectors, %d passed, %d failed\n", summary.Total, summary.Total-summary.Failed, summary.Failed)
		if summary.Failed > 0 {
			return 1
		}
		return 0
	}

	mode, err := floatmath.ParseRoundingMode(*modeFlag)
	if err != nil {
		logger.Error().Err(err).Msg("bad -mode")
		return 2
	}
	if err := evalCommand(fs.Args(), mode, stdout, logger); err != nil {
		logger.Error().Err(err).Strs("args", fs.Args()).Msg("evaluation failed")
		if errors.Is(err, errUsage) {
			return 2
		}
		return 1
	}
	return 0
}

func newLogger(w io.Writer, verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w, NoColor: true}).
		Level(level).
		With().
		Timestamp().
		Logger()
}

// evalCommand runs a single operation given as "op a [b]" and prints its result.
func evalCommand(args []string, mode floatmath.RoundingMode, w io.Writer, logger zerolog.Logger) error {
	if len(args) < 2 {
		return errUsage
	}
	op, operands := args[0], args[1:]
	switch op {
	case "bitlen":
		if len(operands) != 1 {
			return errUsage
		}
		x, err := parseWord(operands[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(w, uintmath.BitLength(x))
		return nil
	case "fromint":
		if len(operands) != 1 {
			return errUsage
		}
		x, err := parseWord(operands[0])
		if err != nil {
			return err
		}
		printFloat(w, floatmath.FromInt(x, mode))
		return nil
	case "show":
		if len(operands) != 1 {
			return errUsage
		}
		f, err := floatmath.Parse(operands[0], mode)
		if err != nil {
			return err
		}
		printFloat(w, f)
		fmt.Fprintln(w, f.Class())
		if d, err := f.Decimal(); err == nil {
			fmt.Fprintln(w, d.String())
		}
		return nil
	}
	bop, err := floatmath.ParseOp(op)
	if err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	if len(operands) != 2 {
		return errUsage
	}
	res, grs, err := apply(bop, operands[0], operands[1], mode)
	if err != nil {
		return err
	}
	logger.Debug().
		Stringer("op", bop).
		Stringer("mode", mode).
		Stringer("grs", grs).
		Bool("inexact", grs.Inexact()).
		Msg("evaluated")
	printFloat(w, res)
	fmt.Fprintln(w, grs)
	return nil
}

func apply(op floatmath.Op, a, b string, mode floatmath.RoundingMode) (floatmath.Float, floatmath.GRS, error) {
	x, err := floatmath.Parse(a, mode)
	if err != nil {
		return floatmath.Zero, floatmath.GRS{}, fmt.Errorf("operand %q: %w", a, err)
	}
	y, err := floatmath.Parse(b, mode)
	if err != nil {
		return floatmath.Zero, floatmath.GRS{}, fmt.Errorf("operand %q: %w", b, err)
	}
	res, grs := floatmath.Apply(op, x, y, mode)
	return res, grs, nil
}

func printFloat(w io.Writer, f floatmath.Float) {
	fmt.Fprintln(w, f.Hex())
	fmt.Fprintln(w, f.String())
}
