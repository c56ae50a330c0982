package core

import (
	"testing"
)

func TestConsFirstRestLength(t *testing.T) {
	xs := NewList(Integer(2), Integer(3))
	ys := Cons(Integer(1), xs)

	if ys.Length() != 3 {
		t.Errorf("Expected length 3, got %d", ys.Length())
	}
	if !Equal(ys.First(), Integer(1)) {
		t.Errorf("Expected first 1, got %s", ys.First().String())
	}
	if ys.Rest() != xs {
		t.Error("Rest should share the tail structurally, not copy it")
	}
	if xs.Length() != 2 {
		t.Error("Cons must not mutate the list it prepends to")
	}
}

func TestEmptyListBehavior(t *testing.T) {
	var empty *List

	if !empty.IsEmpty() {
		t.Error("nil *List should be empty")
	}
	if empty.Length() != 0 {
		t.Errorf("Expected length 0, got %d", empty.Length())
	}
	if empty.Rest() != nil {
		t.Error("Rest(nil) should be nil")
	}
	if !IsNil(empty.First()) {
		t.Error("First(nil) should be nil")
	}
	if empty.String() != "nil" {
		t.Errorf("Expected 'nil', got '%s'", empty.String())
	}
}

func TestIntern(t *testing.T) {
	sym1 := Intern("test")
	sym2 := Intern("test")

	if sym1 != sym2 {
		t.Error("Intern should return the same symbol for the same string")
	}
	if sym1.String() != "test" {
		t.Errorf("Expected 'test', got '%s'", sym1.String())
	}
}

func TestTruthiness(t *testing.T) {
	truthy := []Value{True{}, Integer(0), Integer(-1), String(""), Symbol("x"), NewList(Integer(1))}
	for _, v := range truthy {
		if !IsTruthy(v) {
			t.Errorf("Expected '%s' to be truthy", v.String())
		}
	}
	if IsTruthy((*List)(nil)) {
		t.Error("Expected nil to be falsey")
	}
}

func TestPrinting(t *testing.T) {
	tests := []struct {
		value    Value
		expected string
	}{
		{Integer(42), "42"},
		{Integer(-7), "-7"},
		{String("hello"), "\"hello\""},
		{Symbol("foo"), "foo"},
		{True{}, "t"},
		{(*List)(nil), "nil"},
		{NewList(Integer(1), Integer(2), Integer(3)), "(1 2 3)"},
		{NewList(Symbol("a"), NewList(Symbol("b")), (*List)(nil)), "(a (b) nil)"},
		{&Function{Native: func(Env, *List) (Value, error) { return nil, nil }}, "#<NATIVE-FN>"},
		{&Function{}, "#<INTERPRETED-FN>"},
	}

	for _, test := range tests {
		if test.value.String() != test.expected {
			t.Errorf("Expected '%s', got '%s'", test.expected, test.value.String())
		}
	}
}

func TestEqualStructural(t *testing.T) {
	values := []Value{
		True{},
		Integer(1),
		Integer(2),
		String("a"),
		Symbol("a"),
		(*List)(nil),
		NewList(Integer(1), Integer(2)),
		NewList(Integer(1), NewList(Integer(2))),
	}

	// Reflexive, and distinct values unequal pairwise.
	for i, a := range values {
		if !Equal(a, a) {
			t.Errorf("Expected '%s' to equal itself", a.String())
		}
		for j, b := range values {
			if i != j && Equal(a, b) {
				t.Errorf("Expected '%s' and '%s' to differ", a.String(), b.String())
			}
			// Symmetric.
			if Equal(a, b) != Equal(b, a) {
				t.Errorf("Equal not symmetric on '%s' and '%s'", a.String(), b.String())
			}
		}
	}

	// Structurally equal lists built separately.
	if !Equal(NewList(Integer(1), Integer(2)), Cons(Integer(1), NewList(Integer(2)))) {
		t.Error("Structurally equal lists should be equal")
	}
}

func TestEqualFunctions(t *testing.T) {
	body := NewList(Symbol("x"))
	name := Intern("f")
	sig := Signature{Name: &name, PositionalParams: []Symbol{"x"}}

	a := &Function{Sig: sig, Body: body}
	b := &Function{Sig: sig, Body: NewList(Symbol("x"))}
	c := &Function{Sig: Signature{PositionalParams: []Symbol{"x"}}, Body: body}

	if !Equal(a, b) {
		t.Error("Interpreted functions with equal signatures and bodies should be equal")
	}
	if Equal(a, c) {
		t.Error("Functions with different signatures should differ")
	}

	nat1 := &Function{Sig: sig, Native: func(Env, *List) (Value, error) { return nil, nil }, NativeID: "f"}
	nat2 := &Function{Sig: sig, Native: func(Env, *List) (Value, error) { return nil, nil }, NativeID: "f"}
	nat3 := &Function{Sig: sig, Native: func(Env, *List) (Value, error) { return nil, nil }, NativeID: "g"}
	if !Equal(nat1, nat2) {
		t.Error("Natives with the same identity label should be equal")
	}
	if Equal(nat1, nat3) {
		t.Error("Natives with different identity labels should differ")
	}
	if Equal(a, nat1) {
		t.Error("Interpreted and native functions should differ")
	}
}

func TestSignatureRendering(t *testing.T) {
	name := Intern("inc")
	rest := Intern("rest")

	tests := []struct {
		sig      Signature
		expected string
	}{
		{Signature{Name: &name, PositionalParams: []Symbol{"x"}}, "lambda/inc/1"},
		{Signature{PositionalParams: []Symbol{"a", "b"}}, "lambda/<anon>/2"},
		{Signature{Name: &name, PositionalParams: []Symbol{"x"}, RestParam: &rest}, "lambda/inc/1+"},
	}

	for _, test := range tests {
		if test.sig.String() != test.expected {
			t.Errorf("Expected '%s', got '%s'", test.expected, test.sig.String())
		}
	}
}
