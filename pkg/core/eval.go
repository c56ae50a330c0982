package core

// Eval evaluates a form against env. Atoms other than symbols are
// self-evaluating; symbols resolve through the value namespace; a
// non-empty list is a special form, a macro-free function call, or an
// error.
func Eval(env Env, form Value) (Value, error) {
	switch v := form.(type) {
	case True, Integer, String, *Function:
		return form, nil

	case *List:
		if v.IsEmpty() {
			return (*List)(nil), nil
		}
		return evalList(env, v)

	case Symbol:
		val, ok := env.lookupValue(v)
		if !ok {
			return nil, WrapError(NewUndefinedSymbolError(string(v), false), env.Trace())
		}
		return val, nil

	default:
		return form, nil
	}
}

func evalList(env Env, form *List) (Value, error) {
	head := form.First()
	sym, isSymbol := head.(Symbol)
	if !isSymbol {
		return nil, WrapError(NewSyntaxError("illegal function call"), env.Trace())
	}

	if special, ok := env.lookupSpecial(sym); ok {
		result, err := special(env, form.Rest())
		if err != nil {
			return nil, WrapError(err, env.Trace())
		}
		return result, nil
	}

	fn, ok := env.lookupFunction(sym)
	if !ok {
		return nil, WrapError(NewUndefinedSymbolError(string(sym), true), env.Trace())
	}

	return callFunction(env, fn, form.Rest(), true, &sym)
}

// callFunction implements the call protocol: evaluate args
// left-to-right (unless evalArgs is false, used by macro expansion),
// arity-check, push a stack frame, bind parameters in a fresh local
// environment, then run the body.
func callFunction(env Env, fn *Function, rawArgs *List, evalArgs bool, nameHint *Symbol) (Value, error) {
	var args []Value
	if evalArgs {
		for cur := rawArgs; cur != nil; cur = cur.tail {
			v, err := Eval(env, cur.head)
			if err != nil {
				return nil, err
			}
			args = append(args, v)
		}
	} else {
		args = rawArgs.Slice()
	}

	n := len(fn.Sig.PositionalParams)
	k := len(args)
	if fn.Sig.RestParam == nil {
		if k != n {
			return nil, WrapError(NewArityError(n, k, false, calleeName(fn, nameHint)), env.Trace())
		}
	} else if k < n {
		return nil, WrapError(NewArityError(n, k, true, calleeName(fn, nameHint)), env.Trace())
	}

	var frame *Frame
	if nameHint != nil {
		frame = pushNameFrame(env.Trace(), *nameHint)
	} else {
		frame = pushSignatureFrame(env.Trace(), fn.Sig)
	}
	callEnv := env.withTrace(frame)

	if fn.IsNative() {
		result, err := fn.Native(callEnv, NewList(args...))
		if err != nil {
			return nil, WrapError(err, frame)
		}
		return result, nil
	}

	values := make(map[Symbol]Value, n+1)
	for i, p := range fn.Sig.PositionalParams {
		values[p] = args[i]
	}
	if fn.Sig.RestParam != nil {
		values[*fn.Sig.RestParam] = NewList(args[n:]...)
	}
	bodyEnv := callEnv.extendLocal(values, nil, nil)

	var result Value = (*List)(nil)
	var err error
	for cur := fn.Body; cur != nil; cur = cur.tail {
		result, err = Eval(bodyEnv, cur.head)
		if err != nil {
			return nil, WrapError(err, frame)
		}
	}
	return result, nil
}

func calleeName(fn *Function, nameHint *Symbol) string {
	if nameHint != nil {
		return string(*nameHint)
	}
	if fn.Sig.Name != nil {
		return string(*fn.Sig.Name)
	}
	return fn.Sig.String()
}
