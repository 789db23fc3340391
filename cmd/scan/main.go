// Copyright 2025 go-scan Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Command scan computes the exclusive prefix sum of its integer arguments
// with a selectable execution strategy.
//
// Usage:
//
//	scan [-v] <strategy:int> <N:int> [<x_0:int64> .. <x_{N-1}:int64>]
//
// Exit code 0 on success, 1 on any error. -v (or the VERBOSE environment
// variable) enables debug tracing to stderr.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/ajroetker/go-highway/hwy"
	"github.com/rs/zerolog"
	"golang.org/x/sys/cpu"

	"github.com/ajroetker/go-scan/buf"
	"github.com/ajroetker/go-scan/scan"
)

const usage = "usage: scan [-v] <strategy:int> <N:int> [<x_0:int64> .. <x_{N-1}:int64>]"

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

func newLogger(verbose bool) zerolog.Logger {
	if !verbose {
		return zerolog.Nop()
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(zerolog.DebugLevel).
		With().Timestamp().Logger()
}

func main() {
	verbose := flag.Bool("v", false, "enable debug tracing on stderr")
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, usage)
		fmt.Fprint(os.Stderr, scan.KindUsage())
	}
	flag.Parse()
	if _, ok := os.LookupEnv("VERBOSE"); ok {
		*verbose = true
	}
	log := newLogger(*verbose)

	args := flag.Args()
	if len(args) < 2 {
		flag.Usage()
		os.Exit(1)
	}

	id, err := strconv.Atoi(args[0])
	if err != nil {
		fail("invalid strategy id %q: %v", args[0], err)
	}
	kind, err := scan.ParseKind(id)
	if err != nil {
		fail("%v", err)
	}
	log.Debug().Stringer("strategy", kind).Msg("selected strategy")

	n, err := strconv.Atoi(args[1])
	if err != nil {
		fail("invalid array length %q: %v", args[1], err)
	}
	switch {
	case n < 0:
		fail("expected positive array length (%d)", n)
	case n == 0:
		fmt.Fprintln(os.Stderr, "empty array (N=0)")
		os.Exit(0)
	}
	if len(args) != n+2 {
		fail("expected %d arguments after N: %s", n, usage)
	}

	log.Debug().
		Str("dispatch", hwy.CurrentName()).
		Int("lanes", hwy.MaxLanes[int64]()).
		Bool("avx2", cpu.X86.HasAVX2).
		Bool("avx512f", cpu.X86.HasAVX512F).
		Bool("neon", cpu.ARM64.HasASIMD).
		Msg("simd capabilities")

	vIn := buf.AllocAligned[int64](n, 0)
	vOut := buf.AllocAligned[int64](n, 0)
	for i, s := range args[2:] {
		x, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			fail("failed to parse integer from argument %q: %v", s, err)
		}
		vIn[i] = x
	}
	log.Debug().Ints64("input", vIn).Msg("parsed input vector")

	if err := scan.Dispatch(kind, scan.Options{Log: log}, 0, vIn, vOut); err != nil {
		fail("%v", err)
	}

	fmt.Printf("in  : %v\n", vIn)
	fmt.Printf("out : %v\n", vOut)
}
