package expr

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokNumber
	tokIdent
	tokPlus
	tokMinus
	tokStar
	tokPower
	tokSlash
	tokPercent
	tokLParen
	tokRParen
)

func (k tokenKind) String() string {
	switch k {
	case tokEOF:
		return "end of input"
	case tokNumber:
		return "number"
	case tokIdent:
		return "name"
	case tokPlus:
		return "'+'"
	case tokMinus:
		return "'-'"
	case tokStar:
		return "'*'"
	case tokPower:
		return "'**'"
	case tokSlash:
		return "'/'"
	case tokPercent:
		return "'%'"
	case tokLParen:
		return "'('"
	case tokRParen:
		return "')'"
	}
	return "unknown"
}

type token struct {
	kind  tokenKind
	text  string
	value float64
	pos   int
}

// scan splits src into tokens, always ending with tokEOF.
func scan(src string) ([]token, error) {
	var toks []token
	i := 0
	for i < len(src) {
		r, size := utf8.DecodeRuneInString(src[i:])
		switch {
		case r == utf8.RuneError && size == 1:
			return nil, &ParseError{Pos: i, Msg: "invalid UTF-8"}
		case unicode.IsSpace(r):
			i += size
		case isDigit(r) || r == '.':
			tok, err := scanNumber(src, i)
			if err != nil {
				return nil, err
			}
			toks = append(toks, tok)
			i += len(tok.text)
		case r == 'π':
			toks = append(toks, token{kind: tokIdent, text: "π", pos: i})
			i += size
		case isLetter(r):
			j := i
			for j < len(src) && isLetter(rune(src[j])) {
				j++
			}
			toks = append(toks, token{kind: tokIdent, text: src[i:j], pos: i})
			i = j
		case r == '*':
			if strings.HasPrefix(src[i:], "**") {
				toks = append(toks, token{kind: tokPower, text: "**", pos: i})
				i += 2
			} else {
				toks = append(toks, token{kind: tokStar, text: "*", pos: i})
				i++
			}
		default:
			kind, ok := punctuation[r]
			if !ok {
				return nil, &ParseError{Pos: i, Msg: "unexpected character " + strconv.QuoteRune(r)}
			}
			toks = append(toks, token{kind: kind, text: string(r), pos: i})
			i += size
		}
	}
	toks = append(toks, token{kind: tokEOF, pos: len(src)})
	return toks, nil
}

var punctuation = map[rune]tokenKind{
	'+': tokPlus,
	'-': tokMinus,
	'/': tokSlash,
	'%': tokPercent,
	'(': tokLParen,
	')': tokRParen,
}

// scanNumber reads digits with at most one decimal point. A second point
// ("1.2.3") is a syntax error rather than two adjacent numbers. An exponent
// needs an explicit sign ("1e+21", "1e-07") so a bare "e" stays the constant.
func scanNumber(src string, start int) (token, error) {
	j := start
	dots, digits := 0, 0
	for j < len(src) {
		c := src[j]
		if c == '.' {
			dots++
			if dots > 1 {
				return token{}, &ParseError{Pos: j, Msg: "malformed number"}
			}
		} else if isDigit(rune(c)) {
			digits++
		} else {
			break
		}
		j++
	}
	if digits == 0 {
		return token{}, &ParseError{Pos: start, Msg: "malformed number"}
	}
	if end, ok := scanExponent(src, j); ok {
		j = end
	}
	text := src[start:j]
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return token{}, &ParseError{Pos: start, Msg: "malformed number " + strconv.Quote(text)}
	}
	return token{kind: tokNumber, text: text, value: v, pos: start}, nil
}

// scanExponent matches e[+-]DIGITS at i and returns the offset past it.
func scanExponent(src string, i int) (int, bool) {
	if i+2 >= len(src) || src[i] != 'e' || (src[i+1] != '+' && src[i+1] != '-') {
		return i, false
	}
	j := i + 2
	for j < len(src) && isDigit(rune(src[j])) {
		j++
	}
	if j == i+2 {
		return i, false
	}
	return j, true
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
