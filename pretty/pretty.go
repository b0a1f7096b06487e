// Package pretty reindents the C text the Coder emits. The Coder's own
// indentAll helper keeps nested statement lists aligned relative to each
// other, but it has no idea how deeply a block sits inside the whole
// translation unit once everything is concatenated -- Reindent is a
// second, brace-counting pass that fixes that up, the way a human would
// run a generated file through clang-format before reading it.
//
// No direct chai analogue: chai never reformats its LLVM IR output, since
// LLVM's own printer already produces stable, readable text. Built
// standalone, in chai's own preference for small stateless text utilities
// over a general-purpose formatter dependency.
package pretty

import "strings"

const indentUnit = "    "

// Reindent rewrites src's leading whitespace on every line to match its
// brace depth, leaving the text inside the line untouched. A line that
// both opens and closes braces net-zero (e.g. a single-statement "if (x)
// {}" is never generated, but a preprocessor line containing literal
// braces in a string would be) is indented at the depth it starts, unless
// it begins with a closing brace (such as "} else {"), which is indented
// one level shallower.
func Reindent(src string) string {
	lines := strings.Split(src, "\n")
	out := make([]string, 0, len(lines))

	depth := 0
	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" {
			out = append(out, "")
			continue
		}

		lineDepth := depth
		if leadingCloses(line) {
			lineDepth--
		}
		if lineDepth < 0 {
			lineDepth = 0
		}

		out = append(out, strings.Repeat(indentUnit, lineDepth)+line)
		depth += netBraceDelta(line)
		if depth < 0 {
			depth = 0
		}
	}

	return strings.Join(out, "\n")
}

func leadingCloses(line string) bool {
	return strings.HasPrefix(line, "}") || strings.HasPrefix(line, "} else") || strings.HasPrefix(line, "});")
}

// netBraceDelta counts unescaped '{' and '}' outside of string and char
// literals, ignoring a line comment. It is not a full C tokenizer -- it
// does not track preprocessor string continuations -- but every brace the
// Coder ever emits is either a bare control-flow delimiter or sits inside
// a literal the Coder quotes with Go's own %q, which never leaves an
// unescaped brace next to an unescaped quote.
func netBraceDelta(line string) int {
	delta := 0
	inString := false
	inChar := false
	escaped := false

	for i := 0; i < len(line); i++ {
		ch := line[i]

		if escaped {
			escaped = false
			continue
		}

		switch {
		case inString:
			if ch == '\\' {
				escaped = true
			} else if ch == '"' {
				inString = false
			}
		case inChar:
			if ch == '\\' {
				escaped = true
			} else if ch == '\'' {
				inChar = false
			}
		case ch == '/' && i+1 < len(line) && line[i+1] == '/':
			return delta
		case ch == '"':
			inString = true
		case ch == '\'':
			inChar = true
		case ch == '{':
			delta++
		case ch == '}':
			delta--
		}
	}

	return delta
}
