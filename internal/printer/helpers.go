package printer

import (
	"bytes"
	"sort"

	"stylename/internal/helper"
)

// Dedup keeps the first request per helper name and orders the result by
// priority, then name.
func Dedup(requests []helper.EmitHelper) []helper.EmitHelper {
	seen := make(map[string]struct{}, len(requests))
	out := make([]helper.EmitHelper, 0, len(requests))
	for _, h := range requests {
		if _, ok := seen[h.Name]; ok {
			continue
		}
		seen[h.Name] = struct{}{}
		out = append(out, h)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Priority != out[j].Priority {
			return out[i].Priority < out[j].Priority
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// injectHelpers writes helper declarations after the hashbang, leading
// comments and directive prologue of text.
func injectHelpers(text []byte, helpers []helper.EmitHelper) []byte {
	if len(helpers) == 0 {
		return text
	}
	at := prologueEnd(text)
	var buf bytes.Buffer
	buf.Grow(len(text) + 512)
	buf.Write(text[:at])
	if at > 0 && text[at-1] != '\n' {
		buf.WriteByte('\n')
	}
	for _, h := range helpers {
		buf.WriteString(h.Text)
		buf.WriteByte('\n')
	}
	rest := text[at:]
	if at > 0 && len(rest) > 0 && rest[0] == '\n' {
		rest = rest[1:]
	}
	buf.Write(rest)
	return buf.Bytes()
}

// prologueEnd returns the offset right after the last directive ("use strict";
// and the like), or after a hashbang line when there are no directives.
func prologueEnd(text []byte) int {
	i, end := 0, 0
	if bytes.HasPrefix(text, []byte("#!")) {
		i = bytes.IndexByte(text, '\n')
		if i < 0 {
			return len(text)
		}
		end = i
	}
	for {
		i = skipTrivia(text, i)
		if i >= len(text) || (text[i] != '"' && text[i] != '\'') {
			return end
		}
		q := text[i]
		j := i + 1
		for j < len(text) && text[j] != q && text[j] != '\n' {
			if text[j] == '\\' {
				j++
			}
			j++
		}
		if j >= len(text) || text[j] != q {
			return end
		}
		j++
		k := j
		for k < len(text) && (text[k] == ' ' || text[k] == '\t') {
			k++
		}
		switch {
		case k < len(text) && text[k] == ';':
			end = k + 1
		case k >= len(text) || text[k] == '\n':
			end = k
		default:
			// "use strict" + 1 это выражение, а не директива
			return end
		}
		i = end
	}
}

func skipTrivia(text []byte, i int) int {
	for i < len(text) {
		switch {
		case text[i] == ' ' || text[i] == '\t' || text[i] == '\n' || text[i] == '\r':
			i++
		case bytes.HasPrefix(text[i:], []byte("//")):
			n := bytes.IndexByte(text[i:], '\n')
			if n < 0 {
				return len(text)
			}
			i += n
		case bytes.HasPrefix(text[i:], []byte("/*")):
			n := bytes.Index(text[i+2:], []byte("*/"))
			if n < 0 {
				return len(text)
			}
			i += n + 4
		default:
			return i
		}
	}
	return i
}
