package isla

import (
	"sort"
	"strings"
)

// EncodeText serializes v as an ISLA text document: the header line
// followed by LF-terminated lines, one tab of indentation per nesting
// level. The top-level Value must be a list or a map.
//
// Map entries are emitted in lexicographic key order so that output is
// reproducible; the format itself leaves map order unspecified.
func EncodeText(v TextValue) (string, error) {
	switch v.kind {
	case KindLeaf:
		return "", &NotEncodableError{Reason: "leaf at top"}
	case KindNone:
		return "", &NotEncodableError{Reason: "none at top"}
	}
	var b strings.Builder
	b.WriteString(TextHeader)
	b.WriteByte('\n')
	encodeTextScope(&b, v, 0)
	return b.String(), nil
}

func encodeTextScope(b *strings.Builder, v TextValue, level int) {
	indent := strings.Repeat("\t", level)
	switch v.kind {
	case KindList:
		for _, e := range v.list {
			b.WriteString(indent)
			switch {
			case e.kind != KindLeaf:
				// Nested list, map, or none: a none child emits an
				// opener with no content lines, which decodes back to
				// none.
				b.WriteString("-:\n")
				encodeTextScope(b, e, level+1)
			case e.leaf == ":":
				b.WriteString("-\\:\n")
			case e.leaf == `"`:
				b.WriteString("-\\\"\n")
			case strings.Contains(e.leaf, "\n"):
				b.WriteString("-\"\n")
				writeMultiLine(b, e.leaf)
			default:
				b.WriteByte('-')
				b.WriteString(e.leaf)
				b.WriteByte('\n')
			}
		}
	case KindMap:
		entries := append([]TextEntry(nil), v.entries...)
		sort.Slice(entries, func(i, j int) bool { return entries[i].Key < entries[j].Key })
		for _, en := range entries {
			b.WriteString(indent)
			writeKey(b, en.Key)
			e := en.Value
			switch {
			case e.kind != KindLeaf:
				b.WriteString(":\n")
				encodeTextScope(b, e, level+1)
			case strings.Contains(e.leaf, "\n"):
				b.WriteString("=\"\n")
				writeMultiLine(b, e.leaf)
			case e.leaf == `"`:
				b.WriteString("=\\\"\n")
			default:
				b.WriteByte('=')
				b.WriteString(e.leaf)
				b.WriteByte('\n')
			}
		}
	}
}

// writeKey emits a map key with its escapes applied: a leading `-`
// becomes `\-`, and every `=` and `:` becomes `\=` / `\:`. All other
// characters pass through verbatim.
func writeKey(b *strings.Builder, key string) {
	for i := 0; i < len(key); i++ {
		switch c := key[i]; {
		case c == '-' && i == 0:
			b.WriteString(`\-`)
		case c == '=':
			b.WriteString(`\=`)
		case c == ':':
			b.WriteString(`\:`)
		default:
			b.WriteByte(c)
		}
	}
}

// writeMultiLine emits the body of a multi-line value followed by the
// closing `"` line. Body lines are never indented; a body line equal to
// `"` is written as `\"`.
func writeMultiLine(b *strings.Builder, s string) {
	for _, line := range strings.Split(s, "\n") {
		if line == `"` {
			b.WriteString("\\\"\n")
		} else {
			b.WriteString(line)
			b.WriteByte('\n')
		}
	}
	b.WriteString("\"\n")
}
