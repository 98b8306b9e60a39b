package lexer

import (
	"fmt"
	"sexpr/internal/token"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Lexer scans source text one rune at a time. Layout (spaces and newlines) is
// emitted as tokens; deciding what to ignore is the parser's job.
type Lexer struct {
	input        string
	position     int  // current byte position in input (points to start of current rune)
	readPosition int  // next byte position in input (start of next rune)
	ch           rune // current rune under examination; 0 at end of input
}

type Tokenizer interface {
	NextToken() token.Token
}

func New(input string) *Lexer {
	l := &Lexer{input: input}
	l.readChar()
	return l
}

// Tokenize scans the whole input. The result always ends with a single EOF
// token; unrecognised input becomes ILLEGAL tokens instead of aborting.
func Tokenize(input string) []token.Token {
	l := New(input)
	tokens := make([]token.Token, 0, len(input)/2+1)
	for {
		tok := l.NextToken()
		tokens = append(tokens, tok)
		if tok.Type == token.EOF {
			return tokens
		}
	}
}

func (l *Lexer) NextToken() token.Token {
	var tok token.Token

	startPosition := l.position

	if l.atEnd() {
		return token.Token{Type: token.EOF, Literal: "", Position: startPosition}
	}

	switch l.ch {
	case ' ', '\t', '\r':
		tok = newToken(token.SPACE, l.ch, startPosition)
	case '\n':
		tok = newToken(token.NEWLINE, l.ch, startPosition)
	case '(':
		tok = newToken(token.LPAREN, l.ch, startPosition)
	case ')':
		tok = newToken(token.RPAREN, l.ch, startPosition)
	case '+':
		tok = newToken(token.PLUS, l.ch, startPosition)
	case '-':
		tok = newToken(token.MINUS, l.ch, startPosition)
	case '*':
		tok = newToken(token.ASTERISK, l.ch, startPosition)
	case '/':
		tok = newToken(token.SLASH, l.ch, startPosition)
	case '~':
		tok = newToken(token.TILDE, l.ch, startPosition)
	case '!':
		tok = newToken(token.BANG, l.ch, startPosition)
	case '"':
		l.readChar() // consume the opening "
		return token.Token{Type: token.STRING, Literal: l.readString(), Position: startPosition}
	case '\'':
		l.readChar() // consume the opening '
		return l.readCharLiteral(startPosition)
	default:
		if isLetter(l.ch) {
			tok.Literal = l.readIdentifier()
			tok.Type = token.LookupIdent(tok.Literal)
			tok.Position = startPosition
			return tok
		} else if isDigit(l.ch) {
			tok.Type = token.NUMBER
			tok.Literal = l.readNumber()
			tok.Position = startPosition
			return tok
		} else {
			tok = illegal(startPosition, "unexpected char '%c'", l.ch)
		}
	}

	l.readChar()
	return tok
}

func (l *Lexer) atEnd() bool {
	return l.position >= len(l.input)
}

// readChar advances by one UTF-8 rune, updating byte positions
func (l *Lexer) readChar() {
	if l.readPosition >= len(l.input) {
		l.ch = 0
		l.position = len(l.input)
		return
	}
	r, size := utf8.DecodeRuneInString(l.input[l.readPosition:])
	l.ch = r
	l.position = l.readPosition
	l.readPosition += size
}

// peekChar returns the next rune without advancing; returns 0 at EOF
func (l *Lexer) peekChar() rune {
	if l.readPosition >= len(l.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPosition:])
	return r
}

// readIdentifier returns the substring (bytes) covering the identifier runes
func (l *Lexer) readIdentifier() string {
	start := l.position
	for !l.atEnd() && (isLetter(l.ch) || unicode.IsDigit(l.ch)) {
		l.readChar()
	}
	return l.input[start:l.position]
}

// readNumber consumes a digit run with an optional fraction part.
func (l *Lexer) readNumber() string {
	start := l.position
	for !l.atEnd() && isDigit(l.ch) {
		l.readChar()
	}
	if l.ch == '.' && isDigit(l.peekChar()) {
		l.readChar()
		for !l.atEnd() && isDigit(l.ch) {
			l.readChar()
		}
	}
	return l.input[start:l.position]
}

// readString assumes the opening quote has been consumed. A string that runs
// into the end of input keeps whatever was scanned.
func (l *Lexer) readString() string {
	var result strings.Builder
	for !l.atEnd() {
		if l.ch == '"' {
			l.readChar() // consume the closing "
			break
		}
		if l.ch == '\\' {
			l.readChar()
			if l.atEnd() {
				result.WriteRune('\\')
				break
			}
			writeEscaped(&result, l.ch)
		} else {
			result.WriteRune(l.ch)
		}
		l.readChar()
	}
	return result.String()
}

func (l *Lexer) readCharLiteral(startPosition int) token.Token {
	if l.atEnd() {
		return illegal(startPosition, "unterminated char literal")
	}
	if l.ch == '\'' {
		l.readChar()
		return illegal(startPosition, "empty char literal")
	}

	var result strings.Builder
	if l.ch == '\\' {
		l.readChar()
		if l.atEnd() {
			return illegal(startPosition, "unterminated char literal")
		}
		writeEscaped(&result, l.ch)
	} else {
		result.WriteRune(l.ch)
	}
	l.readChar()

	if l.atEnd() || l.ch != '\'' {
		return illegal(startPosition, "unterminated char literal")
	}
	l.readChar() // consume the closing '

	return token.Token{Type: token.CHAR, Literal: result.String(), Position: startPosition}
}

func writeEscaped(sb *strings.Builder, ch rune) {
	switch ch {
	case 'n':
		sb.WriteRune('\n')
	case 't':
		sb.WriteRune('\t')
	case '\\':
		sb.WriteRune('\\')
	case '"':
		sb.WriteRune('"')
	case '\'':
		sb.WriteRune('\'')
	default:
		sb.WriteRune('\\')
		sb.WriteRune(ch)
	}
}

// Unicode-aware helpers
func isLetter(ch rune) bool {
	// Letters, underscore, and categories like Letter and Mark to support identifiers like café,变量
	return ch == '_' || unicode.IsLetter(ch) || unicode.Is(unicode.Mn, ch) || unicode.Is(unicode.Mc, ch)
}

// Number literals are ASCII only so that every NUMBER token parses as a float.
func isDigit(ch rune) bool {
	return '0' <= ch && ch <= '9'
}

func newToken(tokenType token.TokenType, ch rune, position int) token.Token {
	return token.Token{Type: tokenType, Literal: string(ch), Position: position}
}

func illegal(position int, format string, args ...any) token.Token {
	return token.Token{Type: token.ILLEGAL, Literal: fmt.Sprintf(format, args...), Position: position}
}
