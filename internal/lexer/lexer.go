// Package lexer tokenizes formula source text for both the BDD and LTL
// dialects. It is grounded on pkgs/lexer/lexer.go (ASCII fast-path
// classification tables, init-time setup) but trimmed to this domain's
// much smaller alphabet: no modes, no shell text, no token pooling —
// just a single forward scan.
package lexer

import (
	"strings"
	"unicode/utf8"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/logicforge/logicforge/internal/diag"
	"github.com/logicforge/logicforge/internal/token"
)

// vocabulary lists the human-facing spellings of a dialect's tokens, used
// only to propose a fuzzy "did you mean" suggestion on an illegal token.
var vocabulary = map[token.Dialect][]string{
	token.BDD: {"(", ")", "!", "&", "|", "^", "=", "->"},
	token.LTL: {"(", ")", "!", "&&", "||", "->", "X", "F", "G", "U", "R"},
}

// Lexer scans a single line of source text into tokens for one dialect.
type Lexer struct {
	input   string
	dialect token.Dialect
	pos     int // byte offset of the next rune
	line    int
	col     int // 1-based column of the next rune

	Errors []*diag.Error
}

// New creates a Lexer for the given dialect.
func New(input string, dialect token.Dialect) *Lexer {
	return &Lexer{input: input, dialect: dialect, line: 1, col: 1}
}

// Tokenize scans the entire input and returns its token stream, terminated
// by an EOF token. Lexical errors are recorded in Errors and scanning
// resumes at the next rune — it never aborts.
func (l *Lexer) Tokenize() []token.Token {
	var toks []token.Token
	for {
		tok, ok := l.next()
		if ok {
			toks = append(toks, tok)
		}
		if tok.Type == token.EOF {
			return toks
		}
	}
}

func (l *Lexer) peekRune() (rune, int) {
	if l.pos >= len(l.input) {
		return 0, 0
	}
	r, size := utf8.DecodeRuneInString(l.input[l.pos:])
	return r, size
}

func (l *Lexer) advance(size int) {
	l.pos += size
	l.col++
}

// next scans and returns the next token. ok is false only for a skipped
// illegal rune (the caller should keep looping without appending it).
func (l *Lexer) next() (token.Token, bool) {
	for {
		r, size := l.peekRune()
		if size == 0 {
			return token.Token{Type: token.EOF, Line: l.line, Column: l.col}, true
		}
		if r == ' ' || r == '\t' || r == '\r' {
			l.advance(size)
			continue
		}
		if r == '\n' {
			l.pos += size
			l.line++
			l.col = 1
			continue
		}
		break
	}

	startLine, startCol := l.line, l.col
	r, size := l.peekRune()

	switch {
	case r == '(':
		l.advance(size)
		return token.Token{Type: token.LPAREN, Value: "(", Line: startLine, Column: startCol}, true
	case r == ')':
		l.advance(size)
		return token.Token{Type: token.RPAREN, Value: ")", Line: startLine, Column: startCol}, true
	case r == '!':
		l.advance(size)
		return token.Token{Type: token.NOT, Value: "!", Line: startLine, Column: startCol}, true
	case r == '-':
		// '->' is the only two-char token starting with '-', in both dialects.
		if strings.HasPrefix(l.input[l.pos:], "->") {
			l.advance(1)
			l.advance(1)
			return token.Token{Type: token.IMPL, Value: "->", Line: startLine, Column: startCol}, true
		}
		return l.illegal(r, size, startLine, startCol)
	}

	if l.dialect == token.BDD {
		switch r {
		case '&':
			l.advance(size)
			return token.Token{Type: token.AND, Value: "&", Line: startLine, Column: startCol}, true
		case '|':
			l.advance(size)
			return token.Token{Type: token.OR, Value: "|", Line: startLine, Column: startCol}, true
		case '^':
			l.advance(size)
			return token.Token{Type: token.XOR, Value: "^", Line: startLine, Column: startCol}, true
		case '=':
			l.advance(size)
			return token.Token{Type: token.EQUIV, Value: "=", Line: startLine, Column: startCol}, true
		case 'x':
			return l.scanVariable(startLine, startCol)
		}
		return l.illegal(r, size, startLine, startCol)
	}

	// LTL dialect.
	switch r {
	case '&':
		if strings.HasPrefix(l.input[l.pos:], "&&") {
			l.advance(1)
			l.advance(1)
			return token.Token{Type: token.AND, Value: "&&", Line: startLine, Column: startCol}, true
		}
		return l.illegal(r, size, startLine, startCol)
	case '|':
		if strings.HasPrefix(l.input[l.pos:], "||") {
			l.advance(1)
			l.advance(1)
			return token.Token{Type: token.OR, Value: "||", Line: startLine, Column: startCol}, true
		}
		return l.illegal(r, size, startLine, startCol)
	case 'X':
		l.advance(size)
		return token.Token{Type: token.NEXT, Value: "X", Line: startLine, Column: startCol}, true
	case 'F':
		l.advance(size)
		return token.Token{Type: token.FUTURE, Value: "F", Line: startLine, Column: startCol}, true
	case 'G':
		l.advance(size)
		return token.Token{Type: token.GLOBAL, Value: "G", Line: startLine, Column: startCol}, true
	case 'U':
		l.advance(size)
		return token.Token{Type: token.UNTIL, Value: "U", Line: startLine, Column: startCol}, true
	case 'R':
		l.advance(size)
		return token.Token{Type: token.RELEASE, Value: "R", Line: startLine, Column: startCol}, true
	}
	if r >= 'a' && r <= 'z' {
		return l.scanAtom(startLine, startCol)
	}
	return l.illegal(r, size, startLine, startCol)
}

// scanVariable scans an x<digits> token; a bare "x" with no digits is
// reported as a malformed variable name but still yields a VARIABLE token
// with an empty index so parsing can continue best-effort.
func (l *Lexer) scanVariable(line, col int) (token.Token, bool) {
	start := l.pos
	l.advance(1) // consume 'x'
	digitStart := l.pos
	for {
		r, size := l.peekRune()
		if r < '0' || r > '9' {
			break
		}
		l.advance(size)
	}
	value := l.input[start:l.pos]
	if l.pos == digitStart {
		l.Errors = append(l.Errors, diag.New(diag.Parse, "malformed variable name: 'x' must be followed by digits").
			WithPosition(diag.Position{Line: line, Column: col}, l.input))
	}
	return token.Token{Type: token.VARIABLE, Value: value, Line: line, Column: col}, true
}

func (l *Lexer) scanAtom(line, col int) (token.Token, bool) {
	start := l.pos
	for {
		r, size := l.peekRune()
		if r < 'a' || r > 'z' {
			break
		}
		l.advance(size)
	}
	return token.Token{Type: token.ATOM, Value: l.input[start:l.pos], Line: line, Column: col}, true
}

func (l *Lexer) illegal(r rune, size, line, col int) (token.Token, bool) {
	l.advance(size)
	msg := "unrecognized character '" + string(r) + "'"
	err := diag.New(diag.Parse, msg).WithPosition(diag.Position{Line: line, Column: col}, l.input)
	if best := closestVocabulary(l.dialect, string(r)); best != "" {
		err = err.WithSuggestion(best)
	}
	l.Errors = append(l.Errors, err)
	return token.Token{Type: token.ILLEGAL, Value: string(r), Line: line, Column: col}, false
}

// closestVocabulary proposes a "did you mean" suggestion for a stray
// character by fuzzy-matching it against the dialect's known spellings.
// On a distance tie a spelling that contains the stray text wins (so a
// lone "&" in the LTL dialect suggests "&&"), then the earlier entry.
func closestVocabulary(d token.Dialect, bad string) string {
	var best string
	bestDist := -1
	lbad := strings.ToLower(bad)
	for _, v := range vocabulary[d] {
		lv := strings.ToLower(v)
		dist := fuzzy.LevenshteinDistance(lbad, lv)
		if bestDist == -1 || dist < bestDist ||
			(dist == bestDist && strings.Contains(lv, lbad) && !strings.Contains(strings.ToLower(best), lbad)) {
			bestDist, best = dist, v
		}
	}
	if bestDist > 2 {
		return ""
	}
	return best
}

