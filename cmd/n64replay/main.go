// cmd/n64replay - standalone log-replay fixture inspector: a small
// flag-parsed binary over the replay package, with no dependency on the
// emulator core.
package main

import (
	"flag"
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/intuitionamiga/n64core/replay"
)

func main() {
	count := flag.Bool("count", false, "print the line count and exit")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: n64replay [options] fixture.bz2\n\nDecodes a bzip2 log-replay fixture and dumps its validated lines.\n\nOptions:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(1)
	}

	f, err := os.Open(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	lines, err := replay.ReadAll(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	if *count {
		fmt.Printf("%d lines\n", len(lines))
		return
	}

	colorize := term.IsTerminal(int(os.Stdout.Fd()))
	for i, line := range lines {
		if colorize {
			fmt.Printf("\033[38;5;245m%6d\033[0m %s\n", i, line)
		} else {
			fmt.Printf("%6d %s\n", i, line)
		}
	}
}
