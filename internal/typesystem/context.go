package typesystem

// TypeContext owns the monotonic type-id counter and the built-in
// singleton types for one compilation. Each pipeline run gets its own
// context (pipeline.NewContext) so concurrent compilations never share
// mutable global state
// (per spec §9: a process-wide counter was a design smell, not a
// requirement — this addresses it rather than merely noting it).
type TypeContext struct {
	nextID int

	Any    *PrimitiveType
	Object *PrimitiveType
	String *PrimitiveType
	Number *PrimitiveType
	Bool   *PrimitiveType
	Infer  *PrimitiveType
	Error  *PrimitiveType
	Void   *PrimitiveType

	Array *GenericType // built-in Array<T>

	records map[string]*UnresolvedType // forward-declared record names
}

// NewContext builds a fresh TypeContext with all built-in singletons
// interned.
func NewContext() *TypeContext {
	ctx := &TypeContext{records: make(map[string]*UnresolvedType)}
	ctx.Any = &PrimitiveType{id: ctx.alloc(), Name: "any"}
	ctx.Object = &PrimitiveType{id: ctx.alloc(), Name: "object"}
	ctx.String = &PrimitiveType{id: ctx.alloc(), Name: "str"}
	ctx.Number = &PrimitiveType{id: ctx.alloc(), Name: "num"}
	ctx.Bool = &PrimitiveType{id: ctx.alloc(), Name: "bool"}
	ctx.Infer = &PrimitiveType{id: ctx.alloc(), Name: "infer"}
	ctx.Error = &PrimitiveType{id: ctx.alloc(), Name: "error"}
	ctx.Void = &PrimitiveType{id: ctx.alloc(), Name: "void"}
	ctx.Array = &GenericType{id: ctx.alloc(), Name: "Array", TypeParams: []string{"T"}}
	return ctx
}

func (ctx *TypeContext) alloc() int {
	id := ctx.nextID
	ctx.nextID++
	return id
}

// NewFunction registers a new function type.
func (ctx *TypeContext) NewFunction(params []Type, defaults []bool, rest Type, ret Type) *FunctionType {
	return &FunctionType{id: ctx.alloc(), Params: params, Defaults: defaults, Rest: rest, Return: ret}
}

// NewUnion registers a new union, flattening nested unions so Members
// never itself contains a UnionType.
func (ctx *TypeContext) NewUnion(members ...Type) *UnionType {
	u := &UnionType{id: ctx.alloc()}
	for _, m := range members {
		if nested, ok := m.(*UnionType); ok {
			for _, nm := range nested.Members {
				if !u.Has(nm) {
					u.Members = append(u.Members, nm)
				}
			}
			continue
		}
		if !u.Has(m) {
			u.Members = append(u.Members, m)
		}
	}
	return u
}

// NewObject registers a new structural object type. names gives the
// field declaration order; fields is the name-to-type lookup.
func (ctx *TypeContext) NewObject(names []string, fields map[string]Type) *ObjectType {
	return &ObjectType{id: ctx.alloc(), FieldNames: names, Fields: fields}
}

// NewRecord registers a new nominal record declaration with no fields.
// The caller fills in FieldNames/Fields once the field types (which may
// reference the record itself or a sibling declared later in the same
// scope) are known, then calls ResolveForwardRef for its name.
func (ctx *TypeContext) NewRecord(name string, typeParams []string) *RecordType {
	return &RecordType{id: ctx.alloc(), Name: name, TypeParams: typeParams, Fields: map[string]Type{}}
}

func (ctx *TypeContext) newInstance(decl GenericDecl, args []Type) *GenericInstance {
	return &GenericInstance{id: ctx.alloc(), Decl: decl, Args: args}
}

// UnresolvedType is a forward-reference placeholder for a type name
// used before its declaration has been checked (e.g. a record field
// whose type is a record declared later in the same file, or directly
// recursive). The checker fixes it up via ResolveForwardRef (which calls
// Resolve) once the real Type exists.
type UnresolvedType struct {
	id       int
	Name     string
	Resolved Type
}

func (t *UnresolvedType) ID() int {
	if t.Resolved != nil {
		return t.Resolved.ID()
	}
	return t.id
}

func (t *UnresolvedType) Kind() Kind {
	if t.Resolved != nil {
		return t.Resolved.Kind()
	}
	return KindRecord
}

func (t *UnresolvedType) String() string {
	if t.Resolved != nil {
		return t.Resolved.String()
	}
	return t.Name
}

// Resolve fixes the placeholder to its real type once known.
func (t *UnresolvedType) Resolve(real Type) { t.Resolved = real }

// ResolveForwardRef fixes up the cached placeholder for name (if one was
// ever requested via Unresolved) to point at real, once the checker has
// found the record/generic it names. A no-op if name was never referenced.
func (ctx *TypeContext) ResolveForwardRef(name string, real Type) {
	if u, ok := ctx.records[name]; ok {
		u.Resolve(real)
	}
}

// IsForwardRefResolved reports whether name's placeholder (if any) has
// been fixed up to a real type.
func (ctx *TypeContext) IsForwardRefResolved(name string) bool {
	u, ok := ctx.records[name]
	return ok && u.Resolved != nil
}

// Unresolved returns (and registers, if not already present) a
// placeholder for the forward-referenced name.
func (ctx *TypeContext) Unresolved(name string) *UnresolvedType {
	if existing, ok := ctx.records[name]; ok {
		return existing
	}
	u := &UnresolvedType{id: ctx.alloc(), Name: name}
	ctx.records[name] = u
	return u
}

// deref follows an UnresolvedType to its resolved target, or returns t
// unchanged if t is not a placeholder (or not yet resolved).
func deref(t Type) Type {
	if u, ok := t.(*UnresolvedType); ok && u.Resolved != nil {
		return deref(u.Resolved)
	}
	return t
}
