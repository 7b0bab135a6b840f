package parse

import (
	"strconv"
	"strings"
	"text/scanner"

	"github.com/cockroachdb/errors"
)

var ErrBadSyntax = errors.New("bad syntax")

// keywords cannot be used as relation or attribute names. They match
// case-insensitively; identifiers keep their case.
var keywords = map[string]bool{
	"select": true,
	"from":   true,
	"where":  true,
	"and":    true,
}

type tokenKind int

const (
	tokenEOF tokenKind = iota
	tokenIdent
	tokenInt
	tokenString
	tokenDelim
	// tokenInvalid covers input the grammar has no use for: floats and
	// unterminated string literals.
	tokenInvalid
)

type token struct {
	kind tokenKind
	text string
}

// Lexer splits query text into tokens and lets the parser consume them one at
// a time. String literals are single-quoted; a doubled quote inside a literal
// stands for one quote character.
type Lexer struct {
	scanner scanner.Scanner
	current token
}

func NewLexer(input string) *Lexer {
	l := &Lexer{}
	l.scanner.Init(strings.NewReader(input))
	l.scanner.Mode = scanner.ScanIdents | scanner.ScanInts | scanner.ScanFloats
	l.scanner.Error = func(*scanner.Scanner, string) {}
	l.advance()
	return l
}

func (l *Lexer) advance() {
	switch r := l.scanner.Scan(); r {
	case scanner.EOF:
		l.current = token{kind: tokenEOF}
	case scanner.Ident:
		l.current = token{kind: tokenIdent, text: l.scanner.TokenText()}
	case scanner.Int:
		l.current = token{kind: tokenInt, text: l.scanner.TokenText()}
	case scanner.Float:
		l.current = token{kind: tokenInvalid, text: l.scanner.TokenText()}
	case '\'':
		l.current = l.quoted()
	default:
		l.current = token{kind: tokenDelim, text: string(r)}
	}
}

// quoted reads the rest of a single-quoted literal after its opening quote.
func (l *Lexer) quoted() token {
	var sb strings.Builder
	for {
		switch ch := l.scanner.Next(); ch {
		case scanner.EOF:
			return token{kind: tokenInvalid, text: "'" + sb.String()}
		case '\'':
			if l.scanner.Peek() != '\'' {
				return token{kind: tokenString, text: sb.String()}
			}
			l.scanner.Next()
			sb.WriteRune('\'')
		default:
			sb.WriteRune(ch)
		}
	}
}

func (l *Lexer) MatchDelim(d rune) bool {
	return l.current.kind == tokenDelim && l.current.text == string(d)
}

func (l *Lexer) MatchIntConstant() bool {
	return l.current.kind == tokenInt
}

func (l *Lexer) MatchStringConstant() bool {
	return l.current.kind == tokenString
}

// MatchKeyword reports whether the current token is keyword w, ignoring case.
func (l *Lexer) MatchKeyword(w string) bool {
	return l.current.kind == tokenIdent && strings.EqualFold(l.current.text, w)
}

// MatchId reports whether the current token is an identifier that is not a keyword.
func (l *Lexer) MatchId() bool {
	return l.current.kind == tokenIdent && !keywords[strings.ToLower(l.current.text)]
}

// AtEnd reports whether all input has been consumed.
func (l *Lexer) AtEnd() bool {
	return l.current.kind == tokenEOF
}

func (l *Lexer) EatDelim(d rune) error {
	if !l.MatchDelim(d) {
		return ErrBadSyntax
	}
	l.advance()
	return nil
}

// EatIntConstant returns ErrBadSyntax for integers that do not fit in an int.
func (l *Lexer) EatIntConstant() (int, error) {
	if !l.MatchIntConstant() {
		return 0, ErrBadSyntax
	}
	i, err := strconv.Atoi(l.current.text)
	if err != nil {
		return 0, ErrBadSyntax
	}
	l.advance()
	return i, nil
}

// EatStringConstant returns the literal without its quotes.
func (l *Lexer) EatStringConstant() (string, error) {
	if !l.MatchStringConstant() {
		return "", ErrBadSyntax
	}
	s := l.current.text
	l.advance()
	return s, nil
}

func (l *Lexer) EatKeyword(w string) error {
	if !l.MatchKeyword(w) {
		return ErrBadSyntax
	}
	l.advance()
	return nil
}

func (l *Lexer) EatId() (string, error) {
	if !l.MatchId() {
		return "", ErrBadSyntax
	}
	s := l.current.text
	l.advance()
	return s, nil
}
