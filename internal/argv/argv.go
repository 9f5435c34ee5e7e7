// Package argv holds the structured argument tokens that make up a compiled
// job: splitting free-form option fragments into tokens and serializing a
// token list back into the single line the converter reads from stdin.
package argv

import (
	"fmt"
	"strings"

	"github.com/mattn/go-shellwords"
)

// Tokenize splits a free-form option fragment such as `--xml-root "a b"` into
// tokens. Single and double quotes group words. Backslashes and shell
// operators (; & | < > ( ) `) are ordinary characters, so Windows paths and
// values like "a&b" survive intact.
func Tokenize(fragment string) ([]string, error) {
	fragment = strings.TrimSpace(fragment)
	if fragment == "" {
		return nil, nil
	}
	tokens, err := shellwords.NewParser().Parse(literal(fragment))
	if err != nil {
		return nil, fmt.Errorf("tokenize %q: %w", fragment, err)
	}
	return tokens, nil
}

// literal escapes every character the shellwords parser would otherwise
// interpret. Single-quoted text is already literal and is left alone.
func literal(fragment string) string {
	var b strings.Builder
	var single, double bool
	for _, r := range fragment {
		switch {
		case single:
			single = r != '\''
		case double:
			if r == '\\' {
				b.WriteByte('\\')
			}
			double = r != '"'
		case r == '\'':
			single = true
		case r == '"':
			double = true
		case strings.ContainsRune(`\;&|<>()`+"`", r):
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Quote returns tok unchanged when it is a plain word, or wrapped in double
// quotes (with embedded quotes escaped) when it is empty or contains
// whitespace or quote characters.
func Quote(tok string) string {
	if tok != "" && !strings.ContainsAny(tok, " \t\r\n\"'") {
		return tok
	}
	return `"` + strings.ReplaceAll(tok, `"`, `\"`) + `"`
}

// Join serializes tokens into one line: quoted tokens separated by single spaces.
func Join(tokens []string) string {
	var b strings.Builder
	for i, tok := range tokens {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(Quote(tok))
	}
	return b.String()
}
