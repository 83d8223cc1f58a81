package store

import (
	"errors"
	"strings"
)

var ErrMultipleStatements = errors.New("only one statement can be run at a time")

// splitStatements returns the ;-separated statements in input that hold more
// than whitespace and comments, without their terminating semicolon.
// Semicolons inside quoted strings, quoted identifiers, comments and postgres
// dollar quotes do not separate statements. Trigger bodies (BEGIN ...; END)
// come back as several statements.
func splitStatements(input string) []string {
	var (
		statements  []string
		start       int
		significant bool
	)

	for i := 0; i < len(input); i++ {
		c := input[i]
		switch {
		case c == ';':
			if significant {
				statements = append(statements, strings.TrimSpace(input[start:i]))
			}
			start = i + 1
			significant = false
			continue
		case c == '-' && strings.HasPrefix(input[i:], "--"):
			i = skipUntil(input, i+2, "\n")
			continue
		case c == '/' && strings.HasPrefix(input[i:], "/*"):
			i = skipUntil(input, i+2, "*/")
			continue
		case c == '\'' || c == '"' || c == '`':
			i = skipQuoted(input, i, c)
		case c == '[':
			i = skipUntil(input, i+1, "]")
		case c == '$':
			if tag, ok := dollarTag(input[i:]); ok {
				i = skipUntil(input, i+len(tag), tag)
			}
		case c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '\v':
			continue
		}
		significant = true
	}

	if significant {
		statements = append(statements, strings.TrimSpace(input[start:]))
	}
	return statements
}

// skipUntil returns the index of the last byte of the first end at or after
// from, or the last index of input when end never appears.
func skipUntil(input string, from int, end string) int {
	if from > len(input) {
		return len(input) - 1
	}
	idx := strings.Index(input[from:], end)
	if idx < 0 {
		return len(input) - 1
	}
	return from + idx + len(end) - 1
}

// skipQuoted returns the index of the closing quote of the quoted run opening
// at start. A doubled quote is an escaped quote.
func skipQuoted(input string, start int, quote byte) int {
	for i := start + 1; i < len(input); i++ {
		if input[i] != quote {
			continue
		}
		if i+1 < len(input) && input[i+1] == quote {
			i++
			continue
		}
		return i
	}
	return len(input) - 1
}

// dollarTag reports the $tag$ opening s, if any. Positional parameters like $1
// are not tags.
func dollarTag(s string) (string, bool) {
	for i := 1; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '$':
			return s[:i+1], true
		case c == '_' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9' && i > 1:
		default:
			return "", false
		}
	}
	return "", false
}
