package core

import (
	_ "embed"
	"fmt"
	"os"
)

// stdlibSource is the self-hosted bootstrap library: defmacro and
// quasiquotation, built entirely out of the special forms and native
// primitives (set-macro-fn, lambda, quote) rather than reader syntax.
//
//go:embed stdlib.lisp
var stdlibSource string

// LoadFile reads path, parses every top-level form in it, and
// evaluates each in turn in the global environment, returning the
// value of the last form (nil if the file holds none). The caller's
// local scope never reaches the loaded forms; only its trace is kept
// for diagnostics.
func LoadFile(env Env, path string) (Value, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, NewIOError(fmt.Sprintf("cannot read %s: %s", path, err))
	}
	return evalSource(Env{global: env.global, trace: env.trace}, string(data))
}

func evalSource(env Env, source string) (Value, error) {
	forms, err := ReadAllString(source)
	if err != nil {
		return nil, err
	}
	var result Value = (*List)(nil)
	for _, form := range forms {
		expanded, err := MacroexpandAll(env, form)
		if err != nil {
			return nil, err
		}
		result, err = Eval(env, expanded)
		if err != nil {
			return nil, err
		}
	}
	return result, nil
}

// NewBootstrappedEnv builds a fresh global environment with every
// special form and native primitive installed, then evaluates the
// embedded standard library against it. Any error raised while loading
// the standard library is a programming error in this binary, not a
// user-facing one: the caller is expected to abort startup on a
// non-nil error.
func NewBootstrappedEnv(out *outputSink) (Env, error) {
	env := NewGlobalEnv()
	installSpecialForms(env)
	installNatives(env, out)

	if _, err := evalSource(env, stdlibSource); err != nil {
		return env, fmt.Errorf("bootstrap stdlib failed to load: %w", err)
	}
	return env, nil
}
