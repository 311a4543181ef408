package helper

import "strings"

// Func is the helper call contract: one argument, a token or an error.
type Func func(Value) (string, error)

// CheckAndJoinStyleName is the default implementation. A single token is
// returned unchanged; a sequence is joined with single spaces after checking
// that no element is undefined.
func CheckAndJoinStyleName(v Value) (string, error) {
	switch v.kind {
	case KindUndefined:
		return "", &UndefinedStyleNameError{Index: -1}
	case KindSingle:
		return v.token, nil
	}
	for i, it := range v.items {
		if it.IsUndefined() {
			return "", &UndefinedStyleNameError{Index: i}
		}
	}
	var sb strings.Builder
	for i, it := range v.items {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(it.String())
	}
	return sb.String(), nil
}
