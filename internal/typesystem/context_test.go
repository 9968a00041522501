package typesystem

import "testing"

func TestNewContextSingletonsDistinctIDs(t *testing.T) {
	ctx := NewContext()
	seen := map[int]bool{}
	for _, ty := range []Type{ctx.Any, ctx.Object, ctx.String, ctx.Number, ctx.Bool, ctx.Infer, ctx.Error, ctx.Void, ctx.Array} {
		if seen[ty.ID()] {
			t.Errorf("duplicate id %d among built-in singletons", ty.ID())
		}
		seen[ty.ID()] = true
	}
}

func TestTwoContextsAreIndependent(t *testing.T) {
	a := NewContext()
	b := NewContext()
	if a.Number.ID() != b.Number.ID() {
		t.Errorf("built-in allocation order should be deterministic across contexts: %d vs %d", a.Number.ID(), b.Number.ID())
	}
	aExtra := a.NewRecord("Point", nil)
	bExtra := b.NewRecord("Point", nil)
	if aExtra.ID() != bExtra.ID() {
		t.Errorf("two contexts allocating the same sequence of types should produce matching ids: %d vs %d", aExtra.ID(), bExtra.ID())
	}
}

func TestNewUnionFlattensNested(t *testing.T) {
	ctx := NewContext()
	inner := ctx.NewUnion(ctx.Number, ctx.String)
	outer := ctx.NewUnion(inner, ctx.Bool)

	if len(outer.Members) != 3 {
		t.Fatalf("expected a flattened 3-member union, got %d members: %s", len(outer.Members), outer)
	}
}

func TestNewUnionDedupes(t *testing.T) {
	ctx := NewContext()
	u := ctx.NewUnion(ctx.Number, ctx.Number, ctx.String)
	if len(u.Members) != 2 {
		t.Fatalf("expected duplicate member to be dropped, got %d members", len(u.Members))
	}
}

func TestArrayGenericInstanceEquivalence(t *testing.T) {
	ctx := NewContext()
	a := ctx.Array.Create(ctx, ctx.Number)
	b := ctx.Array.Create(ctx, ctx.Number)
	if !CanAssign(ctx, a, b) {
		t.Error("two Array<num> instances should be mutually assignable despite distinct ids")
	}
	if a.String() != "Array<num>" {
		t.Errorf("GenericInstance.String() = %q, want %q", a.String(), "Array<num>")
	}
}

func TestNewObjectStringPreservesDeclarationOrder(t *testing.T) {
	ctx := NewContext()
	o := ctx.NewObject([]string{"name", "age"}, map[string]Type{"name": ctx.String, "age": ctx.Number})
	want := "{name: str, age: num}"
	if o.String() != want {
		t.Errorf("String() = %q, want %q (insertion order, not alphabetical)", o.String(), want)
	}
}

func TestUnresolvedTypeResolves(t *testing.T) {
	ctx := NewContext()
	u := ctx.Unresolved("Doggy")
	if u.String() != "Doggy" {
		t.Errorf("unresolved placeholder should print its name before resolution, got %q", u.String())
	}
	real := ctx.NewRecord("Doggy", nil)
	u.Resolve(real)
	if u.ID() != real.ID() {
		t.Error("a resolved placeholder should report the real type's id")
	}
	if u.String() != "Doggy" {
		t.Errorf("a resolved placeholder should print the real type's name, got %q", u.String())
	}
}
