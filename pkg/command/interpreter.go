package command

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/cases"
)

// Pattern pairs a compiled expression with the command it produces.
type Pattern struct {
	Expr    *regexp.Regexp
	Command Command
}

// Table is an ordered list of patterns. The first pattern matching the whole
// input wins.
type Table []Pattern

// Compile builds a Pattern that matches expr against the entire input,
// ignoring case.
func Compile(expr string, cmd Command) (Pattern, error) {
	re, err := regexp.Compile(`(?i)^(?:` + expr + `)$`)
	if err != nil {
		return Pattern{}, fmt.Errorf("failed to compile pattern %q for command %q: %w", expr, cmd, err)
	}
	return Pattern{Expr: re, Command: cmd}, nil
}

// MustCompile is like Compile but panics on a bad expression. Intended for
// tables declared in Go source.
func MustCompile(expr string, cmd Command) Pattern {
	p, err := Compile(expr, cmd)
	if err != nil {
		panic(err)
	}
	return p
}

// Interpret maps raw player text to a Command. Unmatched text yields fallback.
func Interpret(raw string, table Table, fallback Command) Command {
	normalized := Normalize(raw)
	if normalized == "" {
		return fallback
	}
	for _, p := range table {
		if p.Expr.MatchString(normalized) {
			return p.Command
		}
	}
	return fallback
}

// Normalize case-folds raw text and collapses runs of whitespace.
func Normalize(raw string) string {
	// Casers are stateful, so each call gets its own.
	folded := cases.Fold().String(raw)
	return strings.Join(strings.Fields(folded), " ")
}
