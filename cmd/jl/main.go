/*
Jl extracts tabular rows from a stream of JSON-like structured document
values according to a small extraction pattern language.

Usage:

	jl [flags] PATTERN [FILE...]

The flags are:

	-v, --version
		Give the current version of jl and then exit.

	-f, --sep FIELDSEP
		Use FIELDSEP as the field separator between extracted columns.
		Defaults to a single tab character.

	-c, --config FILE
		Load the named TOML config file instead of the default
		"$HOME/.jlrc.toml". A config file supplies a default field
		separator and named pattern presets usable as "@name" in place
		of PATTERN.

	-i, --interactive
		Read top-level values one at a time from an interactive prompt
		instead of from FILE arguments or stdin.

	--dump-plan FILE
		After compiling PATTERN, write its table schema to FILE and
		continue processing normally.

	--load-plan FILE
		Before processing, load a table schema previously written by
		--dump-plan and require that PATTERN compiles to the same
		shape. A mismatch is a usage error raised before any input is
		read.

If no FILE arguments are given, input is read from stdin. Multiple files
are processed in order as one continuous stream of top-level values;
table rows accumulated from one file carry over into the next unless the
pattern's root operator has already flushed them.

PATTERN may begin with "@" to name a preset defined in the config file
instead of writing the DSL text directly on the command line.
*/
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/pflag"

	"github.com/ajbruin/jl/internal/jlconfig"
	"github.com/ajbruin/jl/internal/jlengine"
	"github.com/ajbruin/jl/internal/jlerrors"
	"github.com/ajbruin/jl/internal/jlplan"
	"github.com/ajbruin/jl/internal/jlrepl"
	"github.com/ajbruin/jl/internal/version"
)

const (
	// ExitSuccess indicates a successful program execution.
	ExitSuccess = iota

	// ExitUsageError indicates bad arguments, a bad config file, or a
	// --load-plan schema mismatch.
	ExitUsageError

	// ExitPatternError indicates PATTERN did not compile.
	ExitPatternError

	// ExitDataError indicates the input document stream did not lex or
	// parse as expected.
	ExitDataError

	// ExitIoError indicates an underlying read or write failure.
	ExitIoError
)

var (
	returnCode = ExitSuccess

	flagVersion     = pflag.BoolP("version", "v", false, "Give the version info and exit")
	flagSep         = pflag.StringP("sep", "f", "\t", "Field separator between extracted columns")
	flagConfig      = pflag.StringP("config", "c", "", "TOML config file to load")
	flagInteractive = pflag.BoolP("interactive", "i", false, "Read top-level values one at a time from an interactive prompt")
	flagVerbose     = pflag.BoolP("verbose", "V", false, "Print accumulated table contents to stderr before each flush")
	flagDumpPlan    = pflag.String("dump-plan", "", "Write PATTERN's compiled table schema to FILE")
	flagLoadPlan    = pflag.String("load-plan", "", "Require PATTERN to compile to the schema previously saved in FILE")
)

func main() {
	defer func() {
		if panicErr := recover(); panicErr != nil {
			panic(fmt.Sprintf("unrecoverable panic occurred: %v", panicErr))
		} else {
			os.Exit(returnCode)
		}
	}()

	pflag.Parse()

	if *flagVersion {
		fmt.Printf("%s\n", version.Current)
		return
	}

	args := pflag.Args()
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "ERROR: a PATTERN argument is required")
		returnCode = ExitUsageError
		return
	}
	patternArg := args[0]
	files := args[1:]

	cfg, err := jlconfig.Load(*flagConfig)
	if err != nil {
		reportFatal(err)
		return
	}

	pattern, err := jlconfig.Resolve(cfg, patternArg)
	if err != nil {
		reportFatal(err)
		return
	}

	sep := *flagSep
	if !isFlagSet("sep") && cfg.FieldSep != "" {
		sep = cfg.FieldSep
	}

	eng, err := jlengine.Compile(pattern, sep, os.Stdout)
	if err != nil {
		reportFatal(err)
		return
	}

	if *flagLoadPlan != "" {
		want, err := jlplan.Load(*flagLoadPlan)
		if err != nil {
			reportFatal(err)
			return
		}
		got := jlplan.SchemaOf(eng.Reg)
		if !got.Equal(want) {
			reportFatal(jlerrors.New(jlerrors.Usage, "PATTERN's compiled schema does not match %q", *flagLoadPlan))
			return
		}
	}

	if *flagDumpPlan != "" {
		if err := jlplan.Dump(*flagDumpPlan, jlplan.SchemaOf(eng.Reg)); err != nil {
			reportFatal(err)
			return
		}
	}

	if *flagVerbose {
		eng.Verbose = true
		eng.Debug = os.Stderr
	}

	if *flagInteractive {
		err = runInteractive(eng)
	} else {
		err = runFiles(eng, files)
	}
	if err != nil {
		reportFatal(err)
	}
}

// runFiles drives eng over each named file in order, or over stdin if
// files is empty.
func runFiles(eng *jlengine.Engine, files []string) error {
	if len(files) == 0 {
		return eng.Run(os.Stdin)
	}

	for _, name := range files {
		f, err := os.Open(name)
		if err != nil {
			return jlerrors.Wrap(jlerrors.Io, err, "open %q", name)
		}
		runErr := eng.Run(f)
		closeErr := f.Close()
		if runErr != nil {
			return runErr
		}
		if closeErr != nil {
			return jlerrors.Wrap(jlerrors.Io, closeErr, "close %q", name)
		}
	}
	return nil
}

// runInteractive reads one top-level value's worth of text at a time from
// an interactive prompt and drives eng over each in turn.
func runInteractive(eng *jlengine.Engine) error {
	var reader jlrepl.Reader
	var err error
	if isTerminal(os.Stdin) {
		reader, err = jlrepl.NewInteractive("jl> ")
		if err != nil {
			return jlerrors.Wrap(jlerrors.Io, err, "start interactive prompt")
		}
	}
	if reader == nil {
		reader = jlrepl.NewDirect(os.Stdin)
	}
	defer reader.Close()

	for {
		line, err := reader.ReadValue()
		if err != nil {
			if line == "" {
				break
			}
		}
		if strings.TrimSpace(line) == "" {
			if err != nil {
				break
			}
			continue
		}
		if runErr := eng.Run(strings.NewReader(line)); runErr != nil {
			return runErr
		}
		if err != nil {
			break
		}
	}
	return nil
}

func isFlagSet(name string) bool {
	found := false
	pflag.Visit(func(f *pflag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

func isTerminal(f *os.File) bool {
	stat, err := f.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) != 0
}

func reportFatal(err error) {
	fmt.Fprintf(os.Stderr, "ERROR: %s\n", err.Error())
	kind, ok := jlerrors.KindOf(err)
	if !ok {
		returnCode = ExitIoError
		return
	}
	switch kind {
	case jlerrors.Usage:
		returnCode = ExitUsageError
	case jlerrors.Pattern:
		returnCode = ExitPatternError
	case jlerrors.Lex, jlerrors.Parse:
		returnCode = ExitDataError
	case jlerrors.Io:
		returnCode = ExitIoError
	default:
		returnCode = ExitIoError
	}
}
