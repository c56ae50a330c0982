package core

import (
	"sort"
	"strings"
)

// lispCompleter implements readline.AutoCompleter over a live
// environment: it offers every special form, native and user function,
// and macro currently installed, but only in function position (right
// after an opening paren), so plain argument symbols are not spammed
// with suggestions.
type lispCompleter struct {
	env Env
}

func newLispCompleter(env Env) *lispCompleter {
	return &lispCompleter{env: env}
}

// Do implements the readline.AutoCompleter interface.
func (lc *lispCompleter) Do(line []rune, pos int) ([][]rune, int) {
	lineStr := string(line)
	if pos > len(lineStr) {
		pos = len(lineStr)
	}

	word := currentWord(lineStr, pos)
	if !inFunctionPosition(lineStr, pos-len(word)) {
		return nil, 0
	}

	var matches []string
	for _, name := range lc.env.GlobalCallableNames() {
		if strings.HasPrefix(name, word) {
			matches = append(matches, name)
		}
	}
	sort.Strings(matches)

	var suggestions [][]rune
	for _, m := range matches {
		suggestions = append(suggestions, []rune(m[len(word):]))
	}
	return suggestions, len(word)
}

// currentWord extracts the symbol being typed at pos.
func currentWord(line string, pos int) string {
	runes := []rune(line)
	if pos > len(runes) {
		pos = len(runes)
	}
	start := pos
	for start > 0 && isSymbolChar(runes[start-1]) {
		start--
	}
	return string(runes[start:pos])
}

// inFunctionPosition reports whether wordStart sits directly after an
// opening paren (ignoring whitespace), i.e. where a callable name is
// expected.
func inFunctionPosition(line string, wordStart int) bool {
	runes := []rune(line)
	if wordStart > len(runes) {
		wordStart = len(runes)
	}
	i := wordStart - 1
	for i >= 0 && (runes[i] == ' ' || runes[i] == '\t') {
		i--
	}
	return i >= 0 && runes[i] == '('
}
