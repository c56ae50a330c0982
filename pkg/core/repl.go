package core

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"
)

// REPL is the colorized, history-backed interactive loop.
type REPL struct {
	env         Env
	out         *outputSink
	enableColor bool
}

// NewREPL builds a REPL around a freshly bootstrapped environment.
func NewREPL(enableColor bool) (*REPL, error) {
	out := newStdoutSink()
	env, err := NewBootstrappedEnv(out)
	if err != nil {
		return nil, err
	}
	return &REPL{env: env, out: out, enableColor: enableColor}, nil
}

// LoadFile evaluates path against the REPL's environment, for the
// -load startup flag.
func (r *REPL) LoadFile(path string) error {
	_, err := LoadFile(r.env, path)
	return err
}

// EvalString macroexpands and evaluates a single source string,
// returning its final value.
func (r *REPL) EvalString(src string) (Value, error) {
	forms, err := ReadAllString(src)
	if err != nil {
		return nil, err
	}
	var result Value = (*List)(nil)
	for _, form := range forms {
		expanded, err := MacroexpandAll(r.env, form)
		if err != nil {
			return nil, err
		}
		result, err = Eval(r.env, expanded)
		if err != nil {
			return nil, err
		}
	}
	return result, nil
}

const historyFile = "/tmp/unlisp_history"

const (
	prompt     = ">>> "
	contPrompt = "... "
)

// Run drives the interactive loop against stdin/stdout. It tries a
// readline-backed reader first (history, line editing, completion)
// and falls back to a bare scanner if terminal setup fails.
func (r *REPL) Run() error {
	r.printWelcome()

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          r.colorPrompt(prompt, color.FgBlue, true),
		HistoryFile:     historyFile,
		AutoComplete:    newLispCompleter(r.env),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return r.runBasic()
	}
	defer rl.Close()

	for {
		expr, ok, err := r.readCompleteExpression(rl)
		if err != nil {
			if err == readline.ErrInterrupt {
				continue
			}
			if err == io.EOF {
				break
			}
			return err
		}
		if !ok {
			continue
		}
		if expr == "exit" || expr == "quit" {
			break
		}
		r.evalAndPrint(expr)
	}

	r.printGoodbye()
	return nil
}

// runBasic is the non-readline fallback, kept simple since it only
// runs when terminal setup failed (e.g. no tty).
func (r *REPL) runBasic() error {
	scanner := bufio.NewScanner(os.Stdin)
	var buf strings.Builder
	for {
		if buf.Len() == 0 {
			fmt.Print(r.colorPrompt(prompt, color.FgBlue, true))
		} else {
			fmt.Print(r.colorPrompt(contPrompt, color.FgHiBlack, false))
		}
		if !scanner.Scan() {
			r.printGoodbye()
			return scanner.Err()
		}
		buf.WriteString(scanner.Text())
		buf.WriteString("\n")
		text := strings.TrimSpace(buf.String())
		if text == "" {
			buf.Reset()
			continue
		}
		if !balanced(text) {
			continue
		}
		buf.Reset()
		if text == "exit" || text == "quit" {
			r.printGoodbye()
			return nil
		}
		r.evalAndPrint(text)
	}
}

// readCompleteExpression reads lines from rl until the accumulated
// text holds a balanced, non-empty expression, switching to the
// continuation prompt in between.
func (r *REPL) readCompleteExpression(rl *readline.Instance) (string, bool, error) {
	var buf strings.Builder
	for {
		if buf.Len() == 0 {
			rl.SetPrompt(r.colorPrompt(prompt, color.FgBlue, true))
		} else {
			rl.SetPrompt(r.colorPrompt(contPrompt, color.FgHiBlack, false))
		}
		line, err := rl.Readline()
		if err != nil {
			return "", false, err
		}
		buf.WriteString(line)
		buf.WriteString("\n")
		text := strings.TrimSpace(buf.String())
		if text == "" {
			return "", false, nil
		}
		if balanced(text) {
			return text, true, nil
		}
	}
}

func (r *REPL) evalAndPrint(src string) {
	result, err := r.EvalString(src)
	if err != nil {
		r.printError(err)
		return
	}
	fmt.Println(r.colorize(result.String(), color.FgGreen, true))
}

func (r *REPL) printError(err error) {
	if rdErr, ok := err.(*ReaderError); ok {
		fmt.Println(r.colorize("reader error: "+rdErr.Message, color.FgRed, false))
		return
	}
	wrapped, ok := err.(*ErrorWithStackTrace)
	if !ok {
		wrapped = &ErrorWithStackTrace{Inner: err, Trace: TopFrame}
	}
	fmt.Println(r.colorize(wrapped.Render(), color.FgRed, false))
}

func (r *REPL) printWelcome() {
	fmt.Println(r.colorize("unlisp", color.FgCyan, true))
	fmt.Println(r.colorize("Type exit or Ctrl-D to quit.", color.FgYellow, false))
}

func (r *REPL) printGoodbye() {
	fmt.Println(r.colorize("goodbye", color.FgMagenta, true))
}

func (r *REPL) colorize(s string, attr color.Attribute, bold bool) string {
	if !r.enableColor {
		return s
	}
	c := color.New(attr)
	if bold {
		c.Add(color.Bold)
	}
	return c.Sprint(s)
}

func (r *REPL) colorPrompt(s string, attr color.Attribute, bold bool) string {
	return r.colorize(s, attr, bold)
}

// balanced reports whether s holds a syntactically complete, depth-0
// run of input: parens balanced, outside of any open string literal.
// Atoms count as complete (the caller already filters empty input).
func balanced(s string) bool {
	depth := 0
	inString := false
	for _, r := range s {
		switch {
		case inString && r == '"':
			inString = false
		case !inString && r == '"':
			inString = true
		case !inString && r == '(':
			depth++
		case !inString && r == ')':
			depth--
		}
		if depth < 0 {
			return true
		}
	}
	return !inString && depth == 0
}
