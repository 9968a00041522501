package typesystem

import (
	"sort"
	"strings"
)

// PrimitiveType is a nominal scalar: any, object, str, num, bool, infer,
// error, or void. Primitives compare equal by name, not just by id, since the
// built-in singletons are interned once per TypeContext.
type PrimitiveType struct {
	id   int
	Name string
}

func (t *PrimitiveType) ID() int      { return t.id }
func (t *PrimitiveType) Kind() Kind   { return KindPrimitive }
func (t *PrimitiveType) String() string { return t.Name }

// FunctionType is a callable signature: positional parameters (some of
// which may have defaults), an optional trailing rest parameter, and a
// single return type.
type FunctionType struct {
	id       int
	Params   []Type
	Defaults []bool // Defaults[i] true iff Params[i] may be omitted
	Rest     Type   // element type of the rest parameter, or nil
	Return   Type
}

func (t *FunctionType) ID() int    { return t.id }
func (t *FunctionType) Kind() Kind { return KindFunction }
func (t *FunctionType) String() string {
	var b strings.Builder
	b.WriteByte('(')
	for i, p := range t.Params {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(p.String())
		if t.Defaults != nil && i < len(t.Defaults) && t.Defaults[i] {
			b.WriteByte('?')
		}
	}
	if t.Rest != nil {
		if len(t.Params) > 0 {
			b.WriteString(", ")
		}
		b.WriteString("...")
		b.WriteString(t.Rest.String())
	}
	b.WriteString(") -> ")
	b.WriteString(t.Return.String())
	return b.String()
}

// GenericDecl is a type constructor with named parameters: the built-in
// Array<T>, or a user record declared with type parameters.
type GenericDecl interface {
	Type
	Params() []string
}

// GenericType is a built-in parametric type constructor (Array<T>).
type GenericType struct {
	id         int
	Name       string
	TypeParams []string
}

func (t *GenericType) ID() int          { return t.id }
func (t *GenericType) Kind() Kind       { return KindGeneric }
func (t *GenericType) Params() []string { return t.TypeParams }
func (t *GenericType) String() string   { return t.Name }

// Create instantiates the generic with concrete type arguments.
func (t *GenericType) Create(ctx *TypeContext, args ...Type) *GenericInstance {
	return ctx.newInstance(t, args)
}

// GenericInstance is a generic constructor applied to concrete type
// arguments, e.g. Array<num> or Box<str>.
type GenericInstance struct {
	id   int
	Decl GenericDecl
	Args []Type
}

func (t *GenericInstance) ID() int    { return t.id }
func (t *GenericInstance) Kind() Kind { return KindInstance }
func (t *GenericInstance) String() string {
	var b strings.Builder
	b.WriteString(t.Decl.String())
	b.WriteByte('<')
	for i, a := range t.Args {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(a.String())
	}
	b.WriteByte('>')
	return b.String()
}

// sameConstructor reports whether two instances were created from the
// same generic declaration (by id, so a record's self-reference during
// its own resolution still compares correctly once fully registered).
func (t *GenericInstance) sameConstructor(other *GenericInstance) bool {
	return t.Decl.ID() == other.Decl.ID()
}

// UnionType is a set of member alternatives, e.g. num | str.
type UnionType struct {
	id      int
	Members []Type
}

func (t *UnionType) ID() int    { return t.id }
func (t *UnionType) Kind() Kind { return KindUnion }
func (t *UnionType) String() string {
	parts := make([]string, len(t.Members))
	for i, m := range t.Members {
		parts[i] = m.String()
	}
	sort.Strings(parts)
	return strings.Join(parts, " | ")
}

// Has reports whether member (compared by id) already belongs to the union.
func (t *UnionType) Has(member Type) bool {
	for _, m := range t.Members {
		if m.ID() == member.ID() {
			return true
		}
	}
	return false
}

// ObjectType is a structural object literal type, compared by
// width/depth subtyping rather than identity. FieldNames preserves
// declaration order for deterministic, source-order diagnostic
// rendering; Fields is the lookup map itself.
type ObjectType struct {
	id         int
	FieldNames []string
	Fields     map[string]Type
}

func (t *ObjectType) ID() int    { return t.id }
func (t *ObjectType) Kind() Kind { return KindObject }
func (t *ObjectType) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, n := range t.FieldNames {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(n)
		b.WriteString(": ")
		b.WriteString(t.Fields[n].String())
	}
	b.WriteByte('}')
	return b.String()
}

// RecordType is a nominal, possibly-generic declared record (`record
// Name<T>` followed by an indented block of `field: Type` lines). A
// record with no type parameters behaves as a plain nominal type; one with type parameters is a GenericDecl that
// must be instantiated via Create before use.
type RecordType struct {
	id         int
	Name       string
	TypeParams []string
	FieldNames []string
	Fields     map[string]Type
}

func (t *RecordType) ID() int          { return t.id }
func (t *RecordType) Kind() Kind       { return KindRecord }
func (t *RecordType) Params() []string { return t.TypeParams }
func (t *RecordType) String() string   { return t.Name }

func (t *RecordType) Create(ctx *TypeContext, args ...Type) *GenericInstance {
	return ctx.newInstance(t, args)
}
