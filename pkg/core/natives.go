package core

import "fmt"

// Native primitives, each operating on an already
// left-to-right-evaluated argument list. callFunction enforces arity
// uniformly from each primitive's Signature before invoking it (the
// same protocol interpreted functions go through), so these bodies
// only need to handle casts and primitive-specific semantics.

func installNatives(env Env, out *outputSink) {
	def := func(name string, sig Signature, fn NativeFn) {
		sig.Name = symPtr(Symbol(name))
		env.SetGlobalFunction(Symbol(name), &Function{Sig: sig, Native: fn, NativeID: name})
	}
	fixed := func(n int) Signature { return Signature{PositionalParams: make([]Symbol, n)} }
	variadic := func(n int, restName Symbol) Signature {
		return Signature{PositionalParams: make([]Symbol, n), RestParam: &restName}
	}

	def("cons", fixed(2), nativeCons)
	def("first", fixed(1), nativeFirst)
	def("rest", fixed(1), nativeRest)
	def("equal", fixed(2), nativeEqual)
	def("listp", fixed(1), nativeListp)
	def("emptyp", fixed(1), nativeEmptyp)
	def("symbolp", fixed(1), nativeSymbolp)
	def("+", variadic(0, "args"), nativePlus)
	def("*", variadic(0, "args"), nativeTimes)
	def("-", variadic(1, "rest"), nativeMinus)
	def("<", fixed(2), nativeLess)
	def(">", fixed(2), nativeGreater)
	def("apply", variadic(2, "rest"), nativeApply)
	def("macroexpand-1", fixed(1), nativeMacroexpand1)
	def("symbol-function", fixed(1), nativeSymbolFunction)
	def("error", fixed(1), nativeError)
	def("list", variadic(0, "args"), nativeListCtor)
	def("load-file", fixed(1), nativeLoadFile)
	def("print", fixed(1), func(env Env, args *List) (Value, error) {
		out.write(args.First().String())
		return args.First(), nil
	})
	def("println", fixed(1), func(env Env, args *List) (Value, error) {
		out.write(args.First().String() + "\n")
		return args.First(), nil
	})
	def("stdout-write", fixed(1), func(env Env, args *List) (Value, error) {
		s, err := asString(args.First())
		if err != nil {
			return nil, err
		}
		out.write(string(s))
		return (*List)(nil), nil
	})

	env.SetGlobalValue("nil", (*List)(nil))
	env.SetGlobalValue("t", True{})
}

func symPtr(s Symbol) *Symbol { return &s }

func nativeCons(env Env, args *List) (Value, error) {
	items := args.Slice()
	tail, err := asList(items[1])
	if err != nil {
		return nil, err
	}
	return Cons(items[0], tail), nil
}

func nativeFirst(env Env, args *List) (Value, error) {
	l, err := asList(args.First())
	if err != nil {
		return nil, err
	}
	if l.IsEmpty() {
		return nil, NewGenericError("cannot do first on empty list")
	}
	return l.First(), nil
}

func nativeRest(env Env, args *List) (Value, error) {
	l, err := asList(args.First())
	if err != nil {
		return nil, err
	}
	return l.Rest(), nil
}

func nativeEqual(env Env, args *List) (Value, error) {
	items := args.Slice()
	return BoolValue(Equal(items[0], items[1])), nil
}

func nativeListp(env Env, args *List) (Value, error) {
	_, ok := args.First().(*List)
	return BoolValue(ok), nil
}

func nativeEmptyp(env Env, args *List) (Value, error) {
	l, err := asList(args.First())
	if err != nil {
		return nil, err
	}
	return BoolValue(l.IsEmpty()), nil
}

// nativeSymbolp answers nil for the nil and t literals: they read as
// the empty list and the True atom, not as Symbol values.
func nativeSymbolp(env Env, args *List) (Value, error) {
	_, ok := args.First().(Symbol)
	return BoolValue(ok), nil
}

func nativePlus(env Env, args *List) (Value, error) {
	var sum int64
	for cur := args; cur != nil; cur = cur.tail {
		n, err := asInteger(cur.head)
		if err != nil {
			return nil, err
		}
		sum += int64(n)
	}
	return Integer(sum), nil
}

func nativeTimes(env Env, args *List) (Value, error) {
	product := int64(1)
	for cur := args; cur != nil; cur = cur.tail {
		n, err := asInteger(cur.head)
		if err != nil {
			return nil, err
		}
		product *= int64(n)
	}
	return Integer(product), nil
}

func nativeMinus(env Env, args *List) (Value, error) {
	items := args.Slice()
	first, err := asInteger(items[0])
	if err != nil {
		return nil, err
	}
	if len(items) == 1 {
		return Integer(-int64(first)), nil
	}
	result := int64(first)
	for _, v := range items[1:] {
		n, err := asInteger(v)
		if err != nil {
			return nil, err
		}
		result -= int64(n)
	}
	return Integer(result), nil
}

func nativeLess(env Env, args *List) (Value, error) {
	items := args.Slice()
	a, err := asInteger(items[0])
	if err != nil {
		return nil, err
	}
	b, err := asInteger(items[1])
	if err != nil {
		return nil, err
	}
	return BoolValue(a < b), nil
}

func nativeGreater(env Env, args *List) (Value, error) {
	items := args.Slice()
	a, err := asInteger(items[0])
	if err != nil {
		return nil, err
	}
	b, err := asInteger(items[1])
	if err != nil {
		return nil, err
	}
	return BoolValue(a > b), nil
}

// nativeApply implements apply(f, x1, ..., xk, listk+1): call f on
// x1..xk prepended to the elements of the last list.
func nativeApply(env Env, args *List) (Value, error) {
	items := args.Slice()
	fn, err := asFunction(items[0])
	if err != nil {
		return nil, err
	}
	lastList, err := asList(items[len(items)-1])
	if err != nil {
		return nil, err
	}
	callArgs := append([]Value{}, items[1:len(items)-1]...)
	callArgs = append(callArgs, lastList.Slice()...)
	return callFunction(env, fn, NewList(callArgs...), false, nil)
}

func nativeMacroexpand1(env Env, args *List) (Value, error) {
	form := args.First()
	list, ok := form.(*List)
	if !ok || list.IsEmpty() {
		return form, nil
	}
	sym, ok := list.First().(Symbol)
	if !ok {
		return form, nil
	}
	macro, ok := env.lookupMacro(sym)
	if !ok {
		return form, nil
	}
	return callFunction(env, macro, list.Rest(), false, &sym)
}

func nativeSymbolFunction(env Env, args *List) (Value, error) {
	sym, err := asSymbol(args.First())
	if err != nil {
		return nil, err
	}
	fn, ok := env.lookupFunction(sym)
	if !ok {
		return nil, NewUndefinedSymbolError(string(sym), true)
	}
	return fn, nil
}

// nativeError raises a Generic error. Its own call frame is popped
// before the error is wrapped, so the user-visible trace starts at the
// caller that raised.
func nativeError(env Env, args *List) (Value, error) {
	msg, err := asString(args.First())
	if err != nil {
		return nil, err
	}
	return nil, WrapError(NewGenericError("%s", string(msg)), env.Trace().parent)
}

func nativeListCtor(env Env, args *List) (Value, error) {
	return args, nil
}

func nativeLoadFile(env Env, args *List) (Value, error) {
	path, err := asString(args.First())
	if err != nil {
		return nil, err
	}
	return LoadFile(env, string(path))
}

// outputSink is where print/println/stdout-write write to; the REPL
// points it at stdout, tests point it at an in-memory buffer.
type outputSink struct {
	write func(s string)
}

func newStdoutSink() *outputSink {
	return &outputSink{write: func(s string) { fmt.Print(s) }}
}
