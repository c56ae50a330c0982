package core

// Special forms receive their argument forms unevaluated and are
// dispatched before any function/macro lookup.

func installSpecialForms(env Env) {
	env.SetSpecial("quote", specialQuote)
	env.SetSpecial("if", specialIf)
	env.SetSpecial("let", specialLet)
	env.SetSpecial("lambda", specialLambda)
	env.SetSpecial("set-fn", specialSetFn)
	env.SetSpecial("set-macro-fn", specialSetMacroFn)
}

func specialQuote(env Env, args *List) (Value, error) {
	if args.Length() != 1 {
		return nil, NewArityError(1, args.Length(), false, "quote")
	}
	return args.First(), nil
}

func specialIf(env Env, args *List) (Value, error) {
	n := args.Length()
	if n < 2 || n > 3 {
		return nil, NewArityError(2, n, true, "if")
	}
	items := args.Slice()
	cond, err := Eval(env, items[0])
	if err != nil {
		return nil, err
	}
	if IsTruthy(cond) {
		return Eval(env, items[1])
	}
	if n == 3 {
		return Eval(env, items[2])
	}
	return (*List)(nil), nil
}

// parsedBinding is one (sym expr) clause of a let form.
type parsedBinding struct {
	sym  Symbol
	expr Value
}

func parseLetBindings(form Value) ([]parsedBinding, error) {
	bindingsList, err := asList(form)
	if err != nil {
		return nil, NewSyntaxError("let bindings must be a list: %v", err)
	}
	var out []parsedBinding
	for cur := bindingsList; cur != nil; cur = cur.tail {
		clause, err := asList(cur.head)
		if err != nil || clause.Length() != 2 {
			return nil, NewSyntaxError("malformed let binding clause")
		}
		items := clause.Slice()
		sym, err := asSymbol(items[0])
		if err != nil {
			return nil, NewSyntaxError("let binding name must be a symbol")
		}
		out = append(out, parsedBinding{sym: sym, expr: items[1]})
	}
	return out, nil
}

func specialLet(env Env, args *List) (Value, error) {
	if args.Length() < 1 {
		return nil, NewSyntaxError("let requires a bindings form")
	}
	items := args.Slice()
	bindings, err := parseLetBindings(items[0])
	if err != nil {
		return nil, err
	}

	cur := env
	for _, b := range bindings {
		val, err := Eval(cur, b.expr)
		if err != nil {
			return nil, err
		}
		cur = cur.bindLocalValue(b.sym, val)
	}

	var result Value = (*List)(nil)
	for _, form := range items[1:] {
		result, err = Eval(cur, form)
		if err != nil {
			return nil, err
		}
	}
	return result, nil
}

// parsedLambda is the result of parsing a (lambda [name] (params...) body...)
// shape, shared between the special form and the macro expander (which
// must recurse into the body without disturbing the name/params).
type parsedLambda struct {
	name   *Symbol
	sig    Signature
	bodyAt int // index into the raw args slice where the body forms start
}

func parseLambdaShape(args []Value) (parsedLambda, error) {
	if len(args) < 1 {
		return parsedLambda{}, NewSyntaxError("lambda requires a parameter list")
	}

	var name *Symbol
	idx := 0
	if sym, ok := args[0].(Symbol); ok {
		n := sym
		name = &n
		idx = 1
		if len(args) < 2 {
			return parsedLambda{}, NewSyntaxError("lambda with a name requires a parameter list")
		}
	}

	paramList, err := asList(args[idx])
	if err != nil {
		return parsedLambda{}, NewSyntaxError("lambda parameter list must be a list")
	}

	sig, err := parseParams(paramList)
	if err != nil {
		return parsedLambda{}, err
	}
	sig.Name = name

	return parsedLambda{name: name, sig: sig, bodyAt: idx + 1}, nil
}

func parseParams(paramList *List) (Signature, error) {
	var positional []Symbol
	var rest *Symbol
	sawRest := false

	for cur := paramList; cur != nil; cur = cur.tail {
		sym, err := asSymbol(cur.head)
		if err != nil {
			return Signature{}, NewSyntaxError("lambda parameters must be symbols")
		}
		if sym == RestMarker {
			if sawRest {
				return Signature{}, NewSyntaxError("& may appear at most once in a parameter list")
			}
			sawRest = true
			if cur.tail == nil || cur.tail.Length() != 1 {
				return Signature{}, NewSyntaxError("exactly one symbol must follow &")
			}
			restSym, err := asSymbol(cur.tail.head)
			if err != nil {
				return Signature{}, NewSyntaxError("rest parameter must be a symbol")
			}
			rest = &restSym
			break
		}
		positional = append(positional, sym)
	}

	return Signature{PositionalParams: positional, RestParam: rest}, nil
}

func specialLambda(env Env, args *List) (Value, error) {
	raw := args.Slice()
	parsed, err := parseLambdaShape(raw)
	if err != nil {
		return nil, err
	}
	body := NewList(raw[parsed.bodyAt:]...)
	return &Function{Sig: parsed.sig, Body: body}, nil
}

func specialSetFn(env Env, args *List) (Value, error) {
	if args.Length() != 2 {
		return nil, NewArityError(2, args.Length(), false, "set-fn")
	}
	items := args.Slice()
	sym, err := asSymbol(items[0])
	if err != nil {
		return nil, NewSyntaxError("set-fn requires a symbol as its first argument")
	}
	val, err := Eval(env, items[1])
	if err != nil {
		return nil, err
	}
	fn, err := asFunction(val)
	if err != nil {
		return nil, err
	}
	env.SetGlobalFunction(sym, fn)
	return (*List)(nil), nil
}

func specialSetMacroFn(env Env, args *List) (Value, error) {
	if args.Length() != 2 {
		return nil, NewArityError(2, args.Length(), false, "set-macro-fn")
	}
	items := args.Slice()
	sym, err := asSymbol(items[0])
	if err != nil {
		return nil, NewSyntaxError("set-macro-fn requires a symbol as its first argument")
	}
	val, err := Eval(env, items[1])
	if err != nil {
		return nil, err
	}
	fn, err := asFunction(val)
	if err != nil {
		return nil, err
	}
	env.SetGlobalMacro(sym, fn)
	return (*List)(nil), nil
}
