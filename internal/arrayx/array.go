// Package arrayx converts between Go string slices and the brace-delimited
// textual array form that the hosted Postgres service returns for text[]
// columns, e.g. `{gardening,"dog walking"}`.
package arrayx

import "strings"

// Decode parses the brace-delimited, comma-separated form into a slice.
// Elements are trimmed of surrounding whitespace and double quotes, so both
// `{a,b}` and `{ a , "b" }` decode the same way. An empty string or a bare
// `{}` decodes to an empty slice, never nil.
//
// The grammar is intentionally lenient: this is the half-serialized form the
// upstream service emits, not a strict Postgres array literal, and elements
// never contain embedded commas.
func Decode(raw string) []string {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "{")
	s = strings.TrimSuffix(s, "}")

	if strings.TrimSpace(s) == "" {
		return []string{}
	}

	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		p = strings.Trim(p, `"`)
		out = append(out, p)
	}
	return out
}

// Encode renders a slice as a Postgres text[] literal suitable for binding
// as a single parameter. Elements containing commas, braces, quotes,
// backslashes or whitespace are double-quoted with the usual escaping.
func Encode(elems []string) string {
	if len(elems) == 0 {
		return "{}"
	}

	var b strings.Builder
	b.WriteByte('{')
	for i, e := range elems {
		if i > 0 {
			b.WriteByte(',')
		}
		if needsQuoting(e) {
			b.WriteByte('"')
			for _, r := range e {
				if r == '"' || r == '\\' {
					b.WriteByte('\\')
				}
				b.WriteRune(r)
			}
			b.WriteByte('"')
		} else {
			b.WriteString(e)
		}
	}
	b.WriteByte('}')
	return b.String()
}

func needsQuoting(e string) bool {
	if e == "" {
		return true
	}
	return strings.ContainsAny(e, `,{}"\ `+"\t\n")
}
