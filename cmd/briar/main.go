// Command briar runs a single source file through the interpreter: parse
// (indentation normalization, tokenizing, PEG parsing, AST optimize) then
// evaluate. Grounded in moefh-narfscript's test.go driver, which takes the
// same "one filename argument, print any error, exit" shape; briar adds
// diagnostic-sink wiring and non-zero exit codes on failure.
package main

import (
	"fmt"
	"os"

	"github.com/briarlang/briar/briar"
)

func main() {
	os.Exit(run(os.Args))
}

func run(argv []string) int {
	if len(argv) < 2 {
		fmt.Fprintf(os.Stderr, "%s {file}.py\n", progName(argv))
		return 1
	}
	filename := argv[1]

	src, err := os.ReadFile(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %s\n", progName(argv), err)
		return 1
	}

	sinks := briar.Sinks{Stdout: os.Stdout}
	if traceFile := os.Getenv("BRIAR_TRACE"); traceFile != "" {
		if f, err := os.Create(traceFile); err == nil {
			defer f.Close()
			sinks.Trace = f
		}
	}
	if varFile := os.Getenv("BRIAR_VAR_HISTORY"); varFile != "" {
		if f, err := os.Create(varFile); err == nil {
			defer f.Close()
			sinks.VarHistory = f
		}
	}
	sinks.ErrorSink = os.Stderr

	cfg := briar.DefaultConfig()
	if cfgFile := os.Getenv("BRIAR_CONFIG"); cfgFile != "" {
		loaded, err := briar.LoadConfig(cfgFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: reading config: %s\n", progName(argv), err)
			return 1
		}
		cfg = loaded
	}

	root, err := briar.ParseProgram(string(src), filename, sinks)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		return 1
	}

	in := briar.NewInterp(sinks, cfg)
	if err := in.Run(root); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		return 1
	}
	return 0
}

func progName(argv []string) string {
	if len(argv) == 0 {
		return "briar"
	}
	return argv[0]
}
