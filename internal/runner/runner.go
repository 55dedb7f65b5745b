// Package runner orchestrates the decode -> rules -> output pipeline.
package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/donaldgifford/kantfmt/internal/config"
	"github.com/donaldgifford/kantfmt/internal/formatter"
	"github.com/donaldgifford/kantfmt/internal/rules"
	"github.com/donaldgifford/kantfmt/internal/syntax"
	"github.com/donaldgifford/kantfmt/pkg/diff"
)

// Exit codes.
const (
	ExitOK         = 0
	ExitViolations = 1
	ExitError      = 2
)

// stdinName names standard input in messages.
const stdinName = "<stdin>"

// Options configures the runner behavior. Without Check, Diff, Format or
// Write the runner lints: it reports violations without fixing them.
type Options struct {
	// Files are tree dumps; standard input is read when empty.
	Files []string

	// Check exits 1 when autocorrect would change a file.
	Check bool
	// Diff prints the changes autocorrect would make.
	Diff bool
	// Format prints the autocorrected source.
	Format bool
	// Write stores the autocorrected source at the path recorded in the
	// tree dump.
	Write bool
	// JSON prints the lint report as JSON.
	JSON bool

	ConfigPath string
	Quiet      bool
	Verbose    bool
	NoColor    bool

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Logger *zap.Logger
}

func (o *Options) defaults() {
	if o.Stdin == nil {
		o.Stdin = os.Stdin
	}
	if o.Stdout == nil {
		o.Stdout = os.Stdout
	}
	if o.Stderr == nil {
		o.Stderr = os.Stderr
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
}

func (o *Options) autoCorrect() bool {
	return o.Check || o.Diff || o.Format || o.Write
}

func (o *Options) validate() error {
	modes := 0
	for _, on := range []bool{o.Check, o.Diff, o.Format, o.Write} {
		if on {
			modes++
		}
	}
	if modes > 1 {
		return errors.New("--check, --diff, --format and -w are mutually exclusive")
	}
	if o.JSON && o.autoCorrect() {
		return errors.New("--json only applies to lint mode")
	}
	return nil
}

// fileResult is the outcome of one tree dump.
type fileResult struct {
	// name is the dump path, or stdinName.
	name string
	// source is the path of the Kotlin file the dump describes.
	source     string
	before     string
	after      string
	violations []formatter.Violation
	err        error
}

// display names the file in reports: its source path when known.
func (r *fileResult) display() string {
	if r.source != "" {
		return r.source
	}
	return r.name
}

// Run executes the pipeline and returns an exit code.
func Run(ctx context.Context, opts *Options) int {
	opts.defaults()
	logger := opts.Logger

	if err := opts.validate(); err != nil {
		writeErr(opts.Stderr, "kantfmt: %v\n", err)
		return ExitError
	}

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		writeErr(opts.Stderr, "kantfmt: %v\n", err)
		return ExitError
	}
	if err := rules.CheckConfig(cfg); err != nil {
		writeErr(opts.Stderr, "kantfmt: %v\n", err)
		return ExitError
	}

	engine := formatter.New(rules.Enabled(cfg), formatter.WithLogger(logger))
	results := process(ctx, opts, cfg, engine)
	return report(opts, results)
}

// process runs every file through the engine, in parallel, and returns
// the results in input order.
func process(ctx context.Context, opts *Options, cfg *config.Config, engine *formatter.Engine) []*fileResult {
	if len(opts.Files) == 0 {
		return []*fileResult{processReader(ctx, opts, cfg, engine, stdinName, opts.Stdin)}
	}

	results := make([]*fileResult, len(opts.Files))
	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, path := range opts.Files {
		g.Go(func() error {
			results[i] = processFile(ctx, opts, cfg, engine, path)
			return nil
		})
	}
	// Per-file errors are carried by the results.
	_ = g.Wait()
	return results
}

func processFile(ctx context.Context, opts *Options, cfg *config.Config, engine *formatter.Engine, path string) *fileResult {
	f, err := os.Open(path)
	if err != nil {
		return &fileResult{name: path, err: err}
	}
	defer f.Close()
	return processReader(ctx, opts, cfg, engine, path, f)
}

func processReader(ctx context.Context, opts *Options, cfg *config.Config, engine *formatter.Engine, name string, r io.Reader) *fileResult {
	logger := opts.Logger.With(zap.String("file", name))
	res := &fileResult{name: name}

	doc, err := syntax.Decode(r)
	if err != nil {
		res.err = fmt.Errorf("%s: %w", name, err)
		return res
	}
	res.source = doc.Source
	res.before = doc.Tree.Render()

	props, err := config.ResolveProperties(cfg, resolveSource(doc.Source))
	if err != nil {
		res.err = err
		return res
	}

	logger.Debug("running rules", zap.String("source", doc.Source), zap.Bool("autocorrect", opts.autoCorrect()))
	result, err := engine.Run(ctx, doc.Tree, props, opts.autoCorrect())
	if err != nil {
		res.err = fmt.Errorf("%s: %w", res.display(), err)
		return res
	}
	res.violations = result.Violations

	var b strings.Builder
	if err := formatter.Write(&b, doc.Tree); err != nil {
		res.err = err
		return res
	}
	res.after = b.String()
	logger.Debug("rules done", zap.Int("violations", len(res.violations)))
	return res
}

// resolveSource makes a relative source path absolute against the working
// directory.
func resolveSource(source string) string {
	if source == "" || filepath.IsAbs(source) {
		return source
	}
	abs, err := filepath.Abs(source)
	if err != nil {
		return source
	}
	return abs
}

// report writes the output of every result and returns the exit code.
func report(opts *Options, results []*fileResult) int {
	exitCode := ExitOK
	var lint []*fileResult

	for _, res := range results {
		if opts.Verbose {
			writeErr(opts.Stderr, "%s\n", res.name)
		}
		code := ExitOK
		switch {
		case res.err != nil:
			writeErr(opts.Stderr, "kantfmt: %v\n", res.err)
			code = ExitError
		case opts.Check:
			code = checkOutput(opts, res)
		case opts.Diff:
			code = diffOutput(opts, res)
		case opts.Format:
			writeOut(opts.Stdout, res.after)
		case opts.Write:
			code = writeOutput(opts, res)
		default:
			if len(res.violations) > 0 {
				code = ExitViolations
			}
		}
		if res.err == nil && !opts.autoCorrect() {
			lint = append(lint, res)
		}
		exitCode = max(exitCode, code)
	}

	if !opts.autoCorrect() {
		if err := newReporter(opts).write(lint); err != nil {
			writeErr(opts.Stderr, "kantfmt: writing report: %v\n", err)
			return ExitError
		}
	}
	return exitCode
}

func checkOutput(opts *Options, res *fileResult) int {
	if res.before == res.after {
		return ExitOK
	}
	if !opts.Quiet {
		writeErr(opts.Stderr, "%s\n", res.display())
	}
	return ExitViolations
}

func diffOutput(opts *Options, res *fileResult) int {
	d, err := diff.Unified(res.display(), res.before, res.after)
	if err != nil {
		writeErr(opts.Stderr, "kantfmt: %s: %v\n", res.display(), err)
		return ExitError
	}
	if d == "" {
		return ExitOK
	}
	writeOut(opts.Stdout, d)
	return ExitViolations
}

func writeOutput(opts *Options, res *fileResult) int {
	if res.source == "" {
		writeErr(opts.Stderr, "kantfmt: %s: tree dump has no source path to write to\n", res.name)
		return ExitError
	}
	if res.before == res.after {
		return ExitOK
	}
	if err := os.WriteFile(resolveSource(res.source), []byte(res.after), 0o644); err != nil {
		writeErr(opts.Stderr, "kantfmt: writing %s: %v\n", res.source, err)
		return ExitError
	}
	opts.Logger.Info("wrote file", zap.String("file", res.source), zap.Int("corrected", len(res.violations)))
	return ExitOK
}

// writeOut writes to stdout.
func writeOut(w io.Writer, s string) {
	fmt.Fprint(w, s)
}

// writeErr formats and writes to stderr.
func writeErr(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, format, args...)
}
