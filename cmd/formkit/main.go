// Command formkit checks YAML constraint declarations.
//
//	formkit forms/signup.yaml forms/profile.yaml
//	cat signup.yaml | formkit -
//
// Every property of every file is compiled; failures are printed one per
// line and the command exits with status 1. Logging is configured through
// FORMKIT_ENV, FORMKIT_LOG_LEVEL and FORMKIT_LOG_FORMAT.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/dmitrymomot/formkit/pkg/config"
	"github.com/dmitrymomot/formkit/pkg/constraint"
	"github.com/dmitrymomot/formkit/pkg/logger"
)

type settings struct {
	Env       string `env:"FORMKIT_ENV" envDefault:"development"`
	LogLevel  string `env:"FORMKIT_LOG_LEVEL"`
	LogFormat string `env:"FORMKIT_LOG_FORMAT"`
}

type fileKey struct{}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("formkit", flag.ContinueOnError)
	fs.SetOutput(stderr)
	quiet := fs.Bool("q", false, "print failures only")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() == 0 {
		fmt.Fprintln(stderr, "usage: formkit [-q] file.yaml... (use - for stdin)")
		return 2
	}

	log, err := newLogger(stderr)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}

	failed := 0
	for _, name := range fs.Args() {
		ctx := context.WithValue(context.Background(), fileKey{}, name)
		errs := lintFile(ctx, log, name, stdin)
		for _, err := range errs {
			fmt.Fprintf(stdout, "%s: %v\n", name, err)
		}
		if len(errs) > 0 {
			failed++
		} else if !*quiet {
			fmt.Fprintf(stdout, "%s: ok\n", name)
		}
	}

	if failed > 0 {
		return 1
	}
	return 0
}

func newLogger(w io.Writer) (*slog.Logger, error) {
	var s settings
	if err := config.Load(&s); err != nil {
		return nil, err
	}

	opts := []logger.Option{
		logger.WithEnvironment(s.Env, "formkit"),
		logger.WithOutput(w),
		logger.WithContextValue("file", fileKey{}),
	}
	if s.LogLevel != "" {
		l, err := logger.ParseLevel(s.LogLevel)
		if err != nil {
			return nil, err
		}
		opts = append(opts, logger.WithLevel(l))
	}
	if s.LogFormat != "" {
		f, err := logger.ParseFormat(s.LogFormat)
		if err != nil {
			return nil, err
		}
		opts = append(opts, logger.WithFormat(f))
	}
	return logger.New(opts...), nil
}

// lintFile returns one error per unreadable file or failing property.
func lintFile(ctx context.Context, log *slog.Logger, name string, stdin io.Reader) []error {
	r := stdin
	if name != "-" {
		f, err := os.Open(name)
		if err != nil {
			return []error{err}
		}
		defer f.Close()
		r = f
	}

	props, err := constraint.LoadYAML(r)
	if err != nil {
		log.ErrorContext(ctx, "declaration rejected", logger.Error(err))
		return []error{err}
	}

	// Repeated names fold into one declaration, as an engine registering
	// them in order would store it.
	folded := make(map[string]constraint.Property, len(props))
	var order []string
	for _, p := range props {
		prev, dup := folded[p.Name]
		if dup {
			log.WarnContext(ctx, "property declared twice, constraints merged", logger.Field(p.Name))
		} else {
			order = append(order, p.Name)
			prev = constraint.Property{Name: p.Name}
		}
		folded[p.Name] = constraint.Merge(prev, p)
	}

	var errs []error
	rules := 0
	for _, name := range order {
		compiled, err := constraint.Compile(folded[name])
		if err != nil {
			if joined, ok := err.(interface{ Unwrap() []error }); ok {
				errs = append(errs, joined.Unwrap()...)
			} else {
				errs = append(errs, err)
			}
			continue
		}
		rules += len(compiled)
	}

	log.DebugContext(ctx, "declarations checked",
		logger.Count(len(order)),
		slog.Int("rules", rules),
		logger.Errors(errs...),
	)
	return errs
}
