// Command cmvalidate compiles a content model expression and validates
// symbol sequences against it.
//
// Usage:
//
//	cmvalidate -expr '(a|b)+,c' 'a,b,c' 'a,a'
//
// Each argument is validated as a comma- or whitespace-separated symbol
// sequence; with no arguments and without -dump, lines are read from
// standard input.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/jacoelho/cmv"
)

func main() {
	os.Exit(run())
}

func run() int {
	return runWithArgs(os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
}

func runWithArgs(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("cmvalidate", flag.ContinueOnError)
	fs.SetOutput(stderr)
	expr := fs.String("expr", "", "content model expression")
	dump := fs.Bool("dump", false, "print the syntax tree and automaton")
	fs.Usage = func() {
		_ = writef(stderr, "Usage: %s -expr <expression> [input ...]\n\n", os.Args[0])
		_ = writeln(stderr, "Validates symbol sequences against a content model expression.")
		_ = writeln(stderr)
		_ = writeln(stderr, "Options:")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if *expr == "" {
		_ = writeln(stderr, "error: -expr is required")
		fs.Usage()
		return 2
	}

	model, err := cmv.Compile("cmvalidate", *expr)
	if err != nil {
		_ = writef(stderr, "error compiling expression: %v\n", err)
		return 1
	}

	if *dump {
		if err := writef(stdout, "%s", model.Dump()); err != nil {
			return 1
		}
	}

	inputs := fs.Args()
	if len(inputs) == 0 && !*dump {
		scanner := bufio.NewScanner(stdin)
		for scanner.Scan() {
			inputs = append(inputs, scanner.Text())
		}
		if err := scanner.Err(); err != nil {
			_ = writef(stderr, "error reading input: %v\n", err)
			return 1
		}
	}

	exit := 0
	for _, input := range inputs {
		if model.Validate(input) {
			if err := writef(stdout, "%q matches %s\n", input, model.Expression()); err != nil {
				return 1
			}
			continue
		}
		exit = 1
		if err := writef(stdout, "%q does not match %s\n", input, model.Expression()); err != nil {
			return 1
		}
	}
	return exit
}

func writef(w io.Writer, format string, args ...any) error {
	_, err := fmt.Fprintf(w, format, args...)
	return err
}

func writeln(w io.Writer, args ...any) error {
	_, err := fmt.Fprintln(w, args...)
	return err
}
