package main

import (
	"flag"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/unlisp/unlisp/pkg/core"
)

// maxStackBytes raises the interpreter goroutine's stack ceiling well
// past the 1GB default: the interpreter has no tail-call optimization,
// so deeply recursive Unlisp programs (the self-hosted qquote/defmacro
// bootstrap included) need native stack headroom a default goroutine
// won't have.
const maxStackBytes = 4 << 30

func main() {
	var (
		help     = flag.Bool("help", false, "Show help message")
		eval     = flag.String("e", "", "Evaluate code directly instead of reading from a file")
		load     = flag.String("load", "", "File to load before starting the REPL or running -e")
		noColor  = flag.Bool("no-color", false, "Disable colorized REPL output")
		filename = flag.String("f", "", "File to execute")
	)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage of %s:\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s                     # Start interactive REPL\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -f script.unl       # Execute a file\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -e '(+ 1 2 3)'      # Evaluate code directly\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -load lib.unl       # Load a file, then start the REPL\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -help               # Show this help message\n", os.Args[0])
	}

	flag.Parse()

	if *help {
		flag.Usage()
		return
	}

	debug.SetMaxStack(maxStackBytes)

	// The entire run happens on a dedicated goroutine so SetMaxStack's
	// ceiling actually applies to the goroutine doing the recursive
	// work; main blocks on a buffered handshake channel for its result.
	done := make(chan int, 1)
	go run(*eval, *load, *filename, !*noColor, done)
	os.Exit(<-done)
}

func run(eval, load, filename string, enableColor bool, done chan<- int) {
	repl, err := core.NewREPL(enableColor)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating REPL: %v\n", err)
		done <- 1
		return
	}

	if load != "" {
		if err := repl.LoadFile(load); err != nil {
			fmt.Fprintf(os.Stderr, "Error loading file %s: %v\n", load, err)
			done <- 1
			return
		}
	}

	if eval != "" {
		result, err := repl.EvalString(eval)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error evaluating code: %v\n", err)
			done <- 1
			return
		}
		if result != nil && result.String() != "nil" {
			fmt.Println(result)
		}
		done <- 0
		return
	}

	if filename != "" {
		if err := repl.LoadFile(filename); err != nil {
			fmt.Fprintf(os.Stderr, "Error executing file %s: %v\n", filename, err)
			done <- 1
			return
		}
		done <- 0
		return
	}

	if len(flag.Args()) > 0 {
		legacyFilename := flag.Args()[0]
		if err := repl.LoadFile(legacyFilename); err != nil {
			fmt.Fprintf(os.Stderr, "Error executing file %s: %v\n", legacyFilename, err)
			done <- 1
			return
		}
		done <- 0
		return
	}

	if err := repl.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "REPL error: %v\n", err)
		done <- 1
		return
	}
	done <- 0
}
