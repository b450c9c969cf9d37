package sqlrunner

import (
	"slices"
	"strings"
	"unicode"
)

// Split breaks a SQL script into statements on ';'. Semicolons inside
// single-quoted literals, double-quoted identifiers, PostgreSQL dollar-quoted
// bodies ($$...$$, $tag$...$tag$), "--" line comments and "/* */" block
// comments do not split. Comments are dropped and blank statements are
// skipped.
func Split(script string) []string {
	var (
		out []string
		cur strings.Builder
	)
	flush := func() {
		if s := strings.TrimSpace(cur.String()); s != "" {
			out = append(out, s)
		}
		cur.Reset()
	}

	rs := []rune(script)
	for i := 0; i < len(rs); i++ {
		c := rs[i]
		switch {
		case c == '\'' || c == '"':
			// Doubled quotes are escapes and keep the literal open.
			j := i + 1
			for j < len(rs) {
				if rs[j] == c {
					if j+1 < len(rs) && rs[j+1] == c {
						j += 2
						continue
					}
					break
				}
				j++
			}
			if j >= len(rs) {
				j = len(rs) - 1
			}
			cur.WriteString(string(rs[i : j+1]))
			i = j

		case c == '$' && dollarTag(rs, i) != nil:
			tag := dollarTag(rs, i)
			j := closeDollar(rs, i+len(tag), tag)
			cur.WriteString(string(rs[i:j]))
			i = j - 1

		case c == '-' && i+1 < len(rs) && rs[i+1] == '-':
			for i < len(rs) && rs[i] != '\n' {
				i++
			}
			cur.WriteByte('\n')

		case c == '/' && i+1 < len(rs) && rs[i+1] == '*':
			i += 2
			for i < len(rs) && !(rs[i] == '*' && i+1 < len(rs) && rs[i+1] == '/') {
				i++
			}
			i++ // skip '/'
			cur.WriteByte(' ')

		case c == ';':
			flush()

		default:
			cur.WriteRune(c)
		}
	}
	flush()
	return out
}

// dollarTag returns the dollar-quote opener starting at rs[i] ("$$" or
// "$name$"), or nil when rs[i] does not open one. Positional parameters such
// as $1 are not tags.
func dollarTag(rs []rune, i int) []rune {
	j := i + 1
	for j < len(rs) && (rs[j] == '_' || unicode.IsLetter(rs[j]) || (j > i+1 && unicode.IsDigit(rs[j]))) {
		j++
	}
	if j < len(rs) && rs[j] == '$' {
		return rs[i : j+1]
	}
	return nil
}

// closeDollar returns the index just past the tag that closes a body
// starting at from, or len(rs) when the body is unterminated.
func closeDollar(rs []rune, from int, tag []rune) int {
	for k := from; k+len(tag) <= len(rs); k++ {
		if slices.Equal(rs[k:k+len(tag)], tag) {
			return k + len(tag)
		}
	}
	return len(rs)
}
