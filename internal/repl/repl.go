package repl

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sexpr/internal/ast"
	"sexpr/internal/evaluator"
	"sexpr/internal/lexer"
	"sexpr/internal/object"
	"sexpr/internal/parser"
	"sexpr/internal/store"
	"sexpr/internal/token"
	"sexpr/internal/util"
	"strings"

	"github.com/fatih/color"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

const (
	PROMPT       = util.DefaultPrompt
	ExitCommand  = "exit"
	ErrorPrefix  = "Error: "
	debugText    = "text"
	debugJSON    = "json"
	historyBatch = 1000
)

type Options struct {
	Prompt       string
	DebugAST     string // "", "text" or "json"
	Color        bool
	HistoryLimit int // lines kept in the store; 0 keeps everything
}

// Repl owns one evaluator for the whole session, so bindings made on one
// line are visible on the next.
type Repl struct {
	evaluator *evaluator.Evaluator
	history   *History
	store     store.Store
	out       io.Writer
	opts      Options
	errColor  *color.Color
}

// New builds a session writing results to out. st may be nil, in which case
// history lives in memory only.
func New(out io.Writer, st store.Store, opts Options) *Repl {
	if st == nil {
		st = store.NewMemory()
	}
	errColor := color.New(color.FgRed)
	if opts.Color {
		errColor.EnableColor()
	} else {
		errColor.DisableColor()
	}
	return &Repl{
		evaluator: evaluator.New(out),
		history:   NewHistory(),
		store:     st,
		out:       out,
		opts:      opts,
		errColor:  errColor,
	}
}

func (r *Repl) History() *History { return r.history }

func (r *Repl) Evaluator() *evaluator.Evaluator { return r.evaluator }

// Close releases the history store.
func (r *Repl) Close() error {
	return r.store.Close()
}

// RunInteractive reads lines from in until `exit` or end of input. An
// evaluation error is printed and the loop carries on. in is closed on
// return.
func (r *Repl) RunInteractive(ctx context.Context, in LineReader) (err error) {
	defer func() {
		if cerr := in.Close(); cerr != nil {
			err = multierror.Append(err, errors.Wrap(cerr, "closing input")).ErrorOrNil()
		}
	}()

	r.loadHistory(ctx, in)
	defer r.trimHistory(ctx)

	for {
		line, rerr := in.ReadLine(r.opts.Prompt)
		if rerr == io.EOF {
			return nil
		}
		if errors.Is(rerr, ErrAborted) {
			continue
		}
		if rerr != nil {
			return errors.Wrap(rerr, "reading input")
		}

		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if trimmed == ExitCommand {
			return nil
		}
		r.remember(ctx, in, trimmed)

		results, evalErr := r.eval(line)
		for _, result := range results {
			fmt.Fprintln(r.out, result.Inspect())
		}
		if evalErr != nil {
			r.printError(evalErr)
		}
	}
}

// RunFile evaluates the whole file as one unit and prints the value of its
// last expression. The file is closed before returning.
func (r *Repl) RunFile(path string) (err error) {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrapf(err, "opening %s", path)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			err = multierror.Append(err, errors.Wrapf(cerr, "closing %s", path)).ErrorOrNil()
		}
	}()

	src, err := io.ReadAll(f)
	if err != nil {
		return errors.Wrapf(err, "reading %s", path)
	}
	return r.RunSource(string(src))
}

// RunSource is RunFile for source already in memory. Errors are returned,
// not printed; syntax errors carry the surrounding source lines.
func (r *Repl) RunSource(src string) error {
	results, err := r.eval(src)
	if err != nil {
		return withSourceContext(src, err)
	}

	var last object.Object = object.NIL
	if n := len(results); n > 0 {
		last = results[n-1]
	}
	fmt.Fprintln(r.out, last.Inspect())
	return nil
}

// eval runs every top-level expression in src in order and stops at the
// first failure, returning the values produced so far.
func (r *Repl) eval(src string) ([]object.Object, error) {
	nodes := parser.ParseProgram(lexer.Tokenize(src))
	slog.Debug("Parsed input",
		slog.Int("expressions", len(nodes)))

	results := make([]object.Object, 0, len(nodes))
	for _, node := range nodes {
		if err := r.debugAST(node); err != nil {
			return results, err
		}
		result, err := r.evaluator.Eval(node)
		if err != nil {
			return results, err
		}
		results = append(results, result)
	}
	return results, nil
}

func (r *Repl) debugAST(node ast.Node) error {
	switch r.opts.DebugAST {
	case debugText:
		fmt.Fprintln(r.out, parser.RenderASTAsText(node, 0))
	case debugJSON:
		out, err := parser.RenderASTAsJSON(node)
		if err != nil {
			return err
		}
		fmt.Fprint(r.out, out)
	}
	return nil
}

func (r *Repl) printError(err error) {
	r.errColor.Fprintln(r.out, ErrorPrefix+err.Error())
}

func (r *Repl) remember(ctx context.Context, in LineReader, line string) {
	r.history.Add(line)
	if rec, ok := in.(historyRecorder); ok {
		rec.AppendHistory(line)
	}
	if err := r.store.Append(ctx, line); err != nil {
		slog.Warn("failed to save history", slog.Any("error", err))
	}
}

// loadHistory seeds the session with the newest stored lines.
func (r *Repl) loadHistory(ctx context.Context, in LineReader) {
	limit := r.opts.HistoryLimit
	if limit <= 0 {
		limit = historyBatch
	}
	lines, err := r.store.Recent(ctx, limit)
	if err != nil {
		slog.Warn("failed to load history", slog.Any("error", err))
		return
	}
	rec, _ := in.(historyRecorder)
	for _, line := range lines {
		r.history.Add(line)
		if rec != nil {
			rec.AppendHistory(line)
		}
	}
	slog.Debug("history loaded", slog.Int("lines", len(lines)))
}

func (r *Repl) trimHistory(ctx context.Context) {
	if r.opts.HistoryLimit <= 0 {
		return
	}
	if err := r.store.Trim(ctx, r.opts.HistoryLimit); err != nil {
		slog.Warn("failed to trim history", slog.Any("error", err))
	}
}

// Complete offers builtin names, keywords and bound names for the word under
// the cursor. It is shaped for liner's completer hook.
func (r *Repl) Complete(line string) []string {
	start := strings.LastIndexAny(line, "( \t") + 1
	prefix, word := line[:start], line[start:]
	if word == "" {
		return nil
	}

	var candidates []string
	seen := map[string]bool{}
	for _, group := range [][]string{evaluator.BuiltinNames(), token.Keywords(), r.evaluator.Env().Names()} {
		for _, name := range group {
			if strings.HasPrefix(name, word) && !seen[name] {
				seen[name] = true
				candidates = append(candidates, prefix+name)
			}
		}
	}
	return candidates
}

// SourceError is a syntax error located in the source text.
type SourceError struct {
	Err     error
	Line    int
	Column  int
	Context string
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("[%3d:%2d] %s\n%s", e.Line, e.Column, e.Err, e.Context)
}

func (e *SourceError) Unwrap() error { return e.Err }

func withSourceContext(src string, err error) error {
	var evalErr *evaluator.Error
	if !errors.As(err, &evalErr) || !evaluator.IsSyntax(err) || evalErr.Position < 0 {
		return err
	}
	line, column := util.GetLineAndColumn(src, evalErr.Position)
	return &SourceError{
		Err:     err,
		Line:    line,
		Column:  column,
		Context: util.GetContextLines(src, line, column, "unexpected here"),
	}
}
