package interpreter

import (
	"testing"

	"lasm/value"
)

func TestEnvironmentDefineAndGet(t *testing.T) {
	root := MakeEnvironment(nil)
	root.Define("x", value.Int(1))

	child := MakeEnvironment(root)
	if v, ok := child.Get("x"); !ok || v.I != 1 {
		t.Fatalf("child.Get(%q) = %v, %v, want 1, true", "x", v, ok)
	}
	if _, ok := child.DefinedLocally("x"); ok {
		t.Error("x is defined in the parent, not locally in child")
	}
}

func TestEnvironmentAssignWalksChain(t *testing.T) {
	root := MakeEnvironment(nil)
	root.Define("x", value.Int(1))
	child := MakeEnvironment(root)

	if ok := child.Assign("x", value.Int(2)); !ok {
		t.Fatal("Assign should find x in the parent chain")
	}
	v, _ := root.Get("x")
	if v.I != 2 {
		t.Errorf("root's x = %v, want 2 after child.Assign", v.I)
	}
	if ok := child.Assign("undefined", value.Int(9)); ok {
		t.Error("Assign to an undefined name should fail")
	}
}

func TestEnvironmentQualifiedName(t *testing.T) {
	root := MakeEnvironment(nil)
	a := MakeEnvironment(root)
	a.SetName("scopeName")
	b := MakeEnvironment(a)

	if got := root.QualifiedName("."); got != "" {
		t.Errorf("root.QualifiedName = %q, want empty", got)
	}
	if got := a.QualifiedName("."); got != "scopeName" {
		t.Errorf("a.QualifiedName = %q, want scopeName", got)
	}
	if got := b.QualifiedName("."); got != "scopeName" {
		t.Errorf("b.QualifiedName = %q, want scopeName (unnamed block contributes nothing)", got)
	}
}

func TestEnvironmentBindings(t *testing.T) {
	root := MakeEnvironment(nil)
	root.Define("a", value.Int(1))
	root.Define("b", value.Str("x"))

	bindings := root.Bindings()
	if len(bindings) != 2 {
		t.Fatalf("len(Bindings()) = %d, want 2", len(bindings))
	}
	if bindings["a"].I != 1 || bindings["b"].S != "x" {
		t.Errorf("unexpected bindings: %+v", bindings)
	}
}
