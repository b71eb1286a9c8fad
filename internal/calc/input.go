package calc

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/felixgeelhaar/abacus/internal/expr"
)

// typedForms maps text a user can type to the key that produces it. Longer
// forms are tried first so "**" wins over "*" and "exp" over "e".
var typedForms = buildTypedForms()

type typedForm struct {
	text  string
	token Token
}

func buildTypedForms() []typedForm {
	forms := []typedForm{
		{"**", Power},
		{"^", Power},
		{"%", Percent},
		{"pi", "π"},
	}
	for _, t := range literalTokens {
		forms = append(forms, typedForm{text: string(t), token: t})
	}
	// Stable longest-first ordering.
	for i := 1; i < len(forms); i++ {
		for j := i; j > 0 && len(forms[j].text) > len(forms[j-1].text); j-- {
			forms[j], forms[j-1] = forms[j-1], forms[j]
		}
	}
	return forms
}

// Tokenize splits typed text into the key presses that would produce it.
// Whitespace is skipped, except between two parts of a number ("12 34"),
// which is a syntax error rather than 1234. Text no key can produce yields
// ErrUnknownToken.
func Tokenize(text string) ([]Token, error) {
	var tokens []Token
	rest := text
	spaced := false
	for rest != "" {
		r, size := utf8.DecodeRuneInString(rest)
		if unicode.IsSpace(r) {
			rest = rest[size:]
			spaced = true
			continue
		}
		matched := false
		for _, f := range typedForms {
			if strings.HasPrefix(rest, f.text) {
				if spaced && len(tokens) > 0 && numeric(tokens[len(tokens)-1]) && continuesNumber(f.token) {
					return nil, &TokenError{
						Token: f.token,
						Err:   &expr.ParseError{Pos: len(text) - len(rest), Msg: "space inside a number"},
					}
				}
				tokens = append(tokens, f.token)
				rest = rest[len(f.text):]
				matched = true
				spaced = false
				break
			}
		}
		if !matched {
			return nil, &TokenError{Token: Token(string(r)), Err: ErrUnknownToken}
		}
	}
	return tokens, nil
}

func numeric(t Token) bool {
	return t == "." || (len(t) == 1 && t[0] >= '0' && t[0] <= '9')
}

// continuesNumber reports whether t, typed right after a digit, would be
// read as part of the same number.
func continuesNumber(t Token) bool {
	return numeric(t) || t == "e"
}

// Enter types text into the buffer key by key.
func (s *Session) Enter(text string) error {
	tokens, err := Tokenize(text)
	if err != nil {
		return err
	}
	return s.ApplyAll(tokens...)
}
