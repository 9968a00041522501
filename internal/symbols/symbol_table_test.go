package symbols

import (
	"testing"

	"github.com/avelang/ave/internal/typesystem"
)

func TestDefineAndFind(t *testing.T) {
	ctx := typesystem.NewContext()
	scope := NewProgramScope()

	if !scope.Define(&Symbol{Name: "x", Type: ctx.Number, Mutable: true}) {
		t.Fatal("first definition of x should succeed")
	}
	if scope.Define(&Symbol{Name: "x", Type: ctx.String, Mutable: true}) {
		t.Fatal("redefining x in the same scope should fail")
	}

	sym, ok := scope.Find("x")
	if !ok {
		t.Fatal("expected to find x")
	}
	if sym.Type.ID() != ctx.Number.ID() {
		t.Errorf("expected x's original type to be preserved, got %s", sym.Type)
	}
}

func TestFindWalksOuterScopes(t *testing.T) {
	ctx := typesystem.NewContext()
	outer := NewProgramScope()
	outer.Define(&Symbol{Name: "x", Type: ctx.Number, Mutable: true})

	inner := NewBlockScope(outer)
	if _, ok := inner.Find("x"); !ok {
		t.Error("inner scope should see outer scope's bindings")
	}

	inner.Define(&Symbol{Name: "y", Type: ctx.String, Mutable: true})
	if _, ok := outer.Find("y"); ok {
		t.Error("outer scope should not see inner scope's bindings")
	}
}

func TestShadowingAcrossScopesIsAllowed(t *testing.T) {
	ctx := typesystem.NewContext()
	outer := NewProgramScope()
	outer.Define(&Symbol{Name: "x", Type: ctx.Number, Mutable: true})

	inner := NewBlockScope(outer)
	if !inner.Define(&Symbol{Name: "x", Type: ctx.String, Mutable: true}) {
		t.Fatal("shadowing an outer binding in a nested scope should be allowed")
	}

	sym, _ := inner.Find("x")
	if sym.Type.ID() != ctx.String.ID() {
		t.Error("inner scope's shadowing binding should win from inside the block")
	}
	outerSym, _ := outer.Find("x")
	if outerSym.Type.ID() != ctx.Number.ID() {
		t.Error("shadowing should not mutate the outer scope's binding")
	}
}

func TestDefineHoistedGoesToNearestFunctionScope(t *testing.T) {
	ctx := typesystem.NewContext()
	fn := NewFunctionScope(NewProgramScope())
	block := NewBlockScope(fn)

	block.DefineHoisted(&Symbol{Name: "counter", Type: ctx.Infer, Mutable: true, IsFunc: true})

	if block.IsDefinedInScope("counter") {
		t.Error("a hoisted var should land on the function scope, not the inner block scope")
	}
	if !fn.IsDefinedInScope("counter") {
		t.Error("a hoisted var declared in a nested block should be bound on the enclosing function scope")
	}
}

func TestGetAllNamesDeduplicatesAcrossScopes(t *testing.T) {
	outer := NewProgramScope()
	outer.Define(&Symbol{Name: "a", Mutable: true})
	outer.Define(&Symbol{Name: "b", Mutable: true})
	inner := NewBlockScope(outer)
	inner.Define(&Symbol{Name: "a", Mutable: true}) // shadows outer's a
	inner.Define(&Symbol{Name: "c", Mutable: true})

	names := inner.GetAllNames()
	counts := map[string]int{}
	for _, n := range names {
		counts[n]++
	}
	for _, n := range []string{"a", "b", "c"} {
		if counts[n] != 1 {
			t.Errorf("expected %q to appear exactly once, got %d", n, counts[n])
		}
	}
}
