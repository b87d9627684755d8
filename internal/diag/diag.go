// Package diag implements the error taxonomy shared by every engine:
// ParseError, CapacityError and InternalInvariantViolation. It is grounded
// on pkgs/errors.DevCmdError (typed error + context map) and
// runtime/parser.ParseError (caret/snippet rendering).
package diag

import (
	"fmt"
	"strings"
)

// Kind categorizes a diagnostic.
type Kind int

const (
	// Parse covers unrecognized characters, malformed variables/atoms,
	// and unmatched parentheses. Parsing resumes best-effort afterward.
	Parse Kind = iota
	// Capacity is fatal: the LTL atom count exceeds the machine word limit.
	Capacity
	// Invariant is fatal: a programming-error-level assertion failed.
	Invariant
)

func (k Kind) String() string {
	switch k {
	case Parse:
		return "parse error"
	case Capacity:
		return "capacity error"
	case Invariant:
		return "internal invariant violation"
	default:
		return "error"
	}
}

// Position is a 1-based line/column into the original source text.
type Position struct {
	Line   int
	Column int
}

// Error is the common diagnostic type returned by every engine.
type Error struct {
	K          Kind
	Message    string
	Cause      error
	Context    map[string]any
	Pos        Position
	Source     string // the full input text, for snippet rendering
	Suggestion string // optional "did you mean X?" from fuzzy matching
}

// New creates a bare diagnostic of the given kind.
func New(k Kind, message string) *Error {
	return &Error{K: k, Message: message, Context: make(map[string]any)}
}

// Wrap creates a diagnostic wrapping an existing error.
func Wrap(k Kind, message string, cause error) *Error {
	return &Error{K: k, Message: message, Cause: cause, Context: make(map[string]any)}
}

// WithContext attaches a key/value pair, mirroring DevCmdError.WithContext.
func (e *Error) WithContext(key string, value any) *Error {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value
	return e
}

// WithPosition attaches a source position and the source text it came from,
// enabling caret-snippet rendering in Error().
func (e *Error) WithPosition(pos Position, source string) *Error {
	e.Pos = pos
	e.Source = source
	return e
}

// WithSuggestion attaches an advisory "did you mean" hint.
func (e *Error) WithSuggestion(s string) *Error {
	e.Suggestion = s
	return e
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.K.String())
	b.WriteString(": ")
	b.WriteString(e.Message)
	if snippet := e.snippet(); snippet != "" {
		b.WriteByte('\n')
		b.WriteString(snippet)
	}
	if e.Suggestion != "" {
		fmt.Fprintf(&b, "\n  = help: did you mean '%s'?", e.Suggestion)
	}
	if e.Cause != nil {
		fmt.Fprintf(&b, " (caused by: %v)", e.Cause)
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Cause }

// snippet renders a Rust/Clang-style two-line caret pointer:
//
//	  --> 1:5
//	   |
//	 1 | x0 & !y
//	   |     ^
func (e *Error) snippet() string {
	if e.Source == "" || e.Pos.Line == 0 {
		return ""
	}
	lines := strings.Split(e.Source, "\n")
	if e.Pos.Line > len(lines) {
		return ""
	}
	line := lines[e.Pos.Line-1]

	var b strings.Builder
	fmt.Fprintf(&b, "  --> %d:%d\n", e.Pos.Line, e.Pos.Column)
	b.WriteString("   |\n")
	fmt.Fprintf(&b, "%2d | %s\n", e.Pos.Line, line)
	b.WriteString("   | ")
	if e.Pos.Column > 0 && e.Pos.Column <= len(line)+1 {
		b.WriteString(strings.Repeat(" ", e.Pos.Column-1) + "^")
	}
	return b.String()
}

// GetContext returns a context value by key, mirroring DevCmdError.GetContext.
func (e *Error) GetContext(key string) (any, bool) {
	v, ok := e.Context[key]
	return v, ok
}

// IsKind reports whether err is a *Error of the given kind.
func IsKind(err error, k Kind) bool {
	var d *Error
	if e, ok := err.(*Error); ok {
		d = e
	}
	return d != nil && d.K == k
}
