package transform

import (
	"strings"
	"unicode"
)

// isPrimary reports whether code is an identifier, a member chain, a number
// or a single plain string literal.
func isPrimary(code string) bool {
	code = strings.TrimSpace(code)
	if code == "" {
		return false
	}
	if q := code[0]; q == '"' || q == '\'' {
		body := code[1:]
		return len(body) > 0 && body[len(body)-1] == q &&
			!strings.ContainsAny(body[:len(body)-1], string(q)+"\\\n")
	}
	for _, r := range code {
		if r != '.' && r != '_' && r != '$' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return !strings.HasPrefix(code, ".") && !strings.HasSuffix(code, ".")
}

// hasTopLevelComma reports a ',' outside brackets, strings and templates.
func hasTopLevelComma(code string) bool {
	depth := 0
	for i := 0; i < len(code); i++ {
		switch c := code[i]; c {
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
		case '"', '\'', '`':
			i = skipQuoted(code, i)
		case ',':
			if depth == 0 {
				return true
			}
		}
	}
	return false
}

func skipQuoted(code string, i int) int {
	q := code[i]
	for i++; i < len(code); i++ {
		switch code[i] {
		case '\\':
			i++
		case q:
			return i
		}
	}
	return i
}
