// Package report implements the compiler's diagnostic reporting: positioned,
// accumulating, never halting on the first error. It is grounded on
// chai's bootstrap/report package (a mutex-guarded reporter with leveled
// display functions), adapted from chai's multi-package TextSpan model down
// to a single-file Location model.
package report

import (
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/hashicorp/go-multierror"
	"github.com/pterm/pterm"
)

// Kind classifies a diagnostic.
type Kind int

const (
	IoError Kind = iota
	SyntaxError
	NameError
	TypeError
	NotImplemented
	ToolchainError
	UsageError
)

func (k Kind) String() string {
	switch k {
	case IoError:
		return "io error"
	case SyntaxError:
		return "syntax error"
	case NameError:
		return "name error"
	case TypeError:
		return "type error"
	case NotImplemented:
		return "not implemented"
	case ToolchainError:
		return "toolchain error"
	case UsageError:
		return "usage error"
	default:
		return "error"
	}
}

// Diagnostic is a single positioned compiler message.
type Diagnostic struct {
	Kind    Kind
	Loc     Location
	Message string
}

func (d *Diagnostic) Error() string {
	return fmt.Sprintf("%s: %s: %s", d.Loc, d.Kind, d.Message)
}

// Reporter accumulates diagnostics across a compile. A phase continues after
// its first error when doing so still yields useful diagnostics (scope
// analysis, the checker); the reporter never halts eagerly -- callers decide
// whether to stop by checking HasErrors between phases, each phase
// recording into the shared Reporter rather than aborting the pipeline on
// the first diagnostic.
type Reporter struct {
	mu    sync.Mutex
	diags []*Diagnostic
}

// New creates an empty reporter.
func New() *Reporter {
	return &Reporter{}
}

// Add records a diagnostic. Diagnostics are kept in the order they are
// added, which -- because every phase walks the tree in source order -- is
// also source order.
func (r *Reporter) Add(kind Kind, loc Location, format string, args ...interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.diags = append(r.diags, &Diagnostic{
		Kind:    kind,
		Loc:     loc,
		Message: fmt.Sprintf(format, args...),
	})
}

// HasErrors reports whether any diagnostic has been recorded.
func (r *Reporter) HasErrors() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.diags) > 0
}

// Diagnostics returns a snapshot of every diagnostic recorded so far, in
// the order Add was called.
func (r *Reporter) Diagnostics() []*Diagnostic {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*Diagnostic, len(r.diags))
	copy(out, r.diags)
	return out
}

// Err bundles every accumulated diagnostic into a single error, preserving
// source order. It returns nil if nothing was recorded.
func (r *Reporter) Err() error {
	diags := r.Diagnostics()
	if len(diags) == 0 {
		return nil
	}

	sort.SliceStable(diags, func(i, j int) bool {
		if diags[i].Loc.File != diags[j].Loc.File {
			return diags[i].Loc.File < diags[j].Loc.File
		}
		if diags[i].Loc.Line != diags[j].Loc.Line {
			return diags[i].Loc.Line < diags[j].Loc.Line
		}
		return diags[i].Loc.Col < diags[j].Loc.Col
	})

	var merr *multierror.Error
	for _, d := range diags {
		merr = multierror.Append(merr, d)
	}
	merr.ErrorFormat = func(errs []error) string {
		lines := make([]string, len(errs))
		for i, e := range errs {
			lines[i] = e.Error()
		}
		return joinLines(lines)
	}
	return merr
}

func joinLines(lines []string) string {
	out := ""
	for i, l := range lines {
		if i > 0 {
			out += "\n"
		}
		out += l
	}
	return out
}

// EmitAll writes every accumulated diagnostic to w in source order, one per
// line, formatted "<file>:<line>:<col>: <message>", as plain text with no
// color or prefix.
func (r *Reporter) EmitAll(w io.Writer) {
	diags := r.Diagnostics()
	sort.SliceStable(diags, func(i, j int) bool {
		if diags[i].Loc.File != diags[j].Loc.File {
			return diags[i].Loc.File < diags[j].Loc.File
		}
		if diags[i].Loc.Line != diags[j].Loc.Line {
			return diags[i].Loc.Line < diags[j].Loc.Line
		}
		return diags[i].Loc.Col < diags[j].Loc.Col
	})
	for _, d := range diags {
		fmt.Fprintf(w, "%s: %s\n", d.Loc, d.Message)
	}
}

// ICE reports an internal compiler error: a condition the earlier phases
// are supposed to guarantee never occurs (for instance, the coder reaching
// an AST variant the checker should already have rejected). It panics
// rather than returning, because there is no sensible diagnostic to show a
// user for a compiler bug (matches chai's bootstrap/report.ReportICE).
func ICE(format string, args ...interface{}) {
	panic(fmt.Sprintf("internal compiler error: "+format, args...))
}

// EmitBanner prints a pterm compile-start banner (cmd/palc prints its own
// header and does not call this); kept separate from EmitAll so diagnostics never mix with decorative output on
// the same stream.
func EmitBanner(module string) {
	pterm.DefaultHeader.WithFullWidth().Println("palc — compiling " + module)
}
