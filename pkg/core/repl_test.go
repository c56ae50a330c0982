package core

import (
	"testing"
)

func TestBalanced(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"(+ 1 2)", true},
		{"(+ 1 2", false},
		{"(let ((x 1))\n", false},
		{"(let ((x 1))\n  x)", true},
		{"\"open string (", false},
		{"(print \"a)b\")", true},
		{"42", true},
		{"(a) (b)", true},
	}

	for _, test := range tests {
		if balanced(test.input) != test.expected {
			t.Errorf("Expected balanced(%q) = %v", test.input, test.expected)
		}
	}
}

func TestREPLEvalString(t *testing.T) {
	repl, err := NewREPL(false)
	if err != nil {
		t.Fatalf("NewREPL failed: %v", err)
	}

	tests := []struct {
		input    string
		expected string
	}{
		{"(+ 1 2 3)", "6"},
		{"(set-fn dbl (lambda (x) (* x 2))) (dbl 21)", "42"},
		{"(defmacro twice (f) (qquote (+ (unq f) (unq f)))) (twice 3)", "6"},
	}

	for _, test := range tests {
		result, err := repl.EvalString(test.input)
		if err != nil {
			t.Errorf("Eval error for '%s': %v", test.input, err)
			continue
		}
		if result.String() != test.expected {
			t.Errorf("Expected '%s' for input '%s', got '%s'", test.expected, test.input, result.String())
		}
	}
}

func TestREPLEvalStringReaderError(t *testing.T) {
	repl, err := NewREPL(false)
	if err != nil {
		t.Fatalf("NewREPL failed: %v", err)
	}

	_, err = repl.EvalString("(+ 1")
	if err == nil {
		t.Fatal("Expected a reader error")
	}
	if _, ok := err.(*ReaderError); !ok {
		t.Errorf("Expected *ReaderError, got %T", err)
	}
}

func TestREPLEvalStringEvaluationError(t *testing.T) {
	repl, err := NewREPL(false)
	if err != nil {
		t.Fatalf("NewREPL failed: %v", err)
	}

	_, err = repl.EvalString("(undefined-sym)")
	if err == nil {
		t.Fatal("Expected an evaluation error")
	}
	if _, ok := err.(*ErrorWithStackTrace); !ok {
		t.Errorf("Expected *ErrorWithStackTrace, got %T", err)
	}
}

func TestCompleter(t *testing.T) {
	env, _ := bootstrapTestEnv(t)
	completer := newLispCompleter(env)

	// Function position: completes callables.
	line := []rune("(co")
	suggestions, length := completer.Do(line, len(line))
	if length != 2 {
		t.Errorf("Expected replace length 2, got %d", length)
	}
	found := false
	for _, s := range suggestions {
		if string(s) == "ns" { // cons
			found = true
		}
	}
	if !found {
		t.Errorf("Expected 'cons' completion, got %v", suggestions)
	}

	// Argument position: offers nothing.
	line = []rune("(cons fo")
	suggestions, _ = completer.Do(line, len(line))
	if suggestions != nil {
		t.Errorf("Expected no completions in argument position, got %v", suggestions)
	}
}

func TestCurrentWord(t *testing.T) {
	tests := []struct {
		line     string
		pos      int
		expected string
	}{
		{"(cons", 5, "cons"},
		{"(cons 1", 7, "1"},
		{"(", 1, ""},
		{"", 0, ""},
	}

	for _, test := range tests {
		if got := currentWord(test.line, test.pos); got != test.expected {
			t.Errorf("Expected currentWord(%q, %d) = %q, got %q", test.line, test.pos, test.expected, got)
		}
	}
}
