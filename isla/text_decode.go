package isla

import "strings"

// TextHeader is the mandatory first line of every ISLA text document.
const TextHeader = "ISLA1"

// DecodeText parses an ISLA text document into a TextValue. The input is
// split on LF (U+000A); a trailing newline is permitted but not required.
func DecodeText(input string) (TextValue, error) {
	return DecodeTextLines(strings.Split(input, "\n"))
}

// DecodeTextLines parses an ISLA text document supplied as pre-split
// lines, without terminators. The first line must equal TextHeader.
func DecodeTextLines(lines []string) (TextValue, error) {
	if len(lines) == 0 {
		return TextValue{}, &BadHeaderError{Got: ""}
	}
	if lines[0] != TextHeader {
		return TextValue{}, &BadHeaderError{Got: lines[0]}
	}
	d := &textDecoder{lines: lines, pos: 1}
	v, _, err := d.parseScope(0)
	if err != nil {
		return TextValue{}, err
	}
	return v, nil
}

// eofLevel is the dedent level reported by parseScope when the input ran
// out rather than dedenting to an enclosing scope.
const eofLevel = -1

// textDecoder walks the line sequence with a single cursor. parseScope
// recurses once per nesting level; its second return value carries the
// tab count of the unconsumed dedent line that ended the scope, so that
// an ancestor can tell whether it too has ended.
type textDecoder struct {
	lines []string
	pos   int // index of the next unconsumed line
}

// parseScope consumes the content lines of one scope at the given level.
// The scope's shape (list or map) is fixed by its first content line; a
// scope that dedents or hits EOF before any content line decodes to none.
func (d *textDecoder) parseScope(level int) (TextValue, int, error) {
	var (
		val    TextValue
		opened bool
	)
	finish := func(next int) (TextValue, int, error) {
		if !opened {
			return TextNone(), next, nil
		}
		return val, next, nil
	}

	for d.pos < len(d.lines) {
		line := d.lines[d.pos]
		tabs := leadingTabs(line)
		rest := line[tabs:]

		switch {
		case tabs <= level && strings.TrimSpace(rest) == "":
			d.pos++
			continue
		case tabs <= level && strings.HasPrefix(rest, ";"):
			d.pos++
			continue
		case tabs < level:
			return finish(tabs)
		case tabs > level:
			return TextValue{}, 0, &NestingTooDeepError{Expected: level, Line: d.pos + 1}
		}

		content := rest
		if !opened {
			opened = true
			if strings.HasPrefix(content, "-") {
				val = TextValue{kind: KindList, list: []TextValue{}}
			} else {
				val = TextValue{kind: KindMap, entries: []TextEntry{}}
			}
		}

		var (
			next int
			err  error
		)
		if val.kind == KindList {
			next, err = d.parseListLine(&val, content, level)
		} else {
			next, err = d.parseMapLine(&val, content, level)
		}
		if err != nil {
			return TextValue{}, 0, err
		}
		if next != eofLevel && next < level {
			return finish(next)
		}
	}
	return finish(eofLevel)
}

// parseListLine consumes one list-scope content line (and, for nested
// scopes and multi-line values, the lines that belong to it). It returns
// the level the cursor is left at: level itself when the scope simply
// continues, or the dedent level signalled by a nested scope.
func (d *textDecoder) parseListLine(val *TextValue, content string, level int) (int, error) {
	if !strings.HasPrefix(content, "-") {
		return 0, &ExpectedListItemError{Line: d.pos + 1}
	}
	item := content[1:]
	openLine := d.pos + 1
	d.pos++

	switch item {
	case ":":
		sub, next, err := d.parseScope(level + 1)
		if err != nil {
			return 0, err
		}
		val.list = append(val.list, sub)
		return next, nil
	case `"`:
		s, err := d.parseMultiLine(openLine)
		if err != nil {
			return 0, err
		}
		val.list = append(val.list, NewTextLeaf(s))
	case `\:`:
		val.list = append(val.list, NewTextLeaf(":"))
	case `\"`:
		val.list = append(val.list, NewTextLeaf(`"`))
	default:
		val.list = append(val.list, NewTextLeaf(item))
	}
	return level, nil
}

// parseMapLine consumes one map-scope content line and whatever nested
// lines its value owns, mirroring parseListLine's return contract.
func (d *textDecoder) parseMapLine(val *TextValue, content string, level int) (int, error) {
	key, op, tail := splitMapLine(content)
	openLine := d.pos + 1

	switch op {
	case '=':
		d.pos++
		switch tail {
		case `"`:
			s, err := d.parseMultiLine(openLine)
			if err != nil {
				return 0, err
			}
			val.SetKey(key, NewTextLeaf(s))
		case `\"`:
			val.SetKey(key, NewTextLeaf(`"`))
		default:
			val.SetKey(key, NewTextLeaf(tail))
		}
	case ':':
		if tail != "" {
			return 0, &UnexpectedAfterColonError{Line: openLine, Trailer: tail}
		}
		d.pos++
		sub, next, err := d.parseScope(level + 1)
		if err != nil {
			return 0, err
		}
		val.SetKey(key, sub)
		return next, nil
	default:
		// No operator on the line: the whole content is a key with an
		// empty value.
		d.pos++
		val.SetKey(key, NewTextLeaf(""))
	}
	return level, nil
}

// parseMultiLine accumulates lines verbatim until a line equal to `"`
// closes the value. A line equal to `\"` stands for a literal `"` line.
// The body obeys no indentation rules.
func (d *textDecoder) parseMultiLine(openLine int) (string, error) {
	var b strings.Builder
	first := true
	for d.pos < len(d.lines) {
		line := d.lines[d.pos]
		d.pos++
		if line == `"` {
			return b.String(), nil
		}
		if line == `\"` {
			line = `"`
		}
		if !first {
			b.WriteByte('\n')
		}
		first = false
		b.WriteString(line)
	}
	return "", &UnterminatedMultiLineValueError{OpenLine: openLine}
}

// splitMapLine scans a map content line for the first un-escaped `=` or
// `:` operator, applying the key escape rules: `\=`, `\:` and `\-` yield
// the bare character; any other backslash passes through literally and
// the following character is examined on its own.
func splitMapLine(content string) (key string, op byte, tail string) {
	var b strings.Builder
	i := 0
	for i < len(content) {
		c := content[i]
		switch c {
		case '\\':
			if i+1 < len(content) {
				switch content[i+1] {
				case '=', ':', '-':
					b.WriteByte(content[i+1])
					i += 2
					continue
				}
			}
			b.WriteByte('\\')
			i++
		case '=', ':':
			return b.String(), c, content[i+1:]
		default:
			b.WriteByte(c)
			i++
		}
	}
	return b.String(), 0, ""
}

func leadingTabs(line string) int {
	n := 0
	for n < len(line) && line[n] == '\t' {
		n++
	}
	return n
}
