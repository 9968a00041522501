package typesystem

// CanAssign reports whether a value of type from may be used where a
// value of type to is expected (declarator initializers, assignment,
// call arguments, return values).
func CanAssign(ctx *TypeContext, from, to Type) bool {
	from, to = deref(from), deref(to)

	if from == nil || to == nil {
		return false
	}
	if from.ID() == to.ID() {
		return true
	}
	if to == Type(ctx.Any) || from == Type(ctx.Any) {
		return true
	}

	switch toT := to.(type) {
	case *UnionType:
		// A union is assignable from another union iff every member of
		// the source is assignable to some member of the destination;
		// a scalar is assignable iff it is itself a member (spec §9
		// Open Question: adopted as written).
		if fromUnion, ok := from.(*UnionType); ok {
			for _, fm := range fromUnion.Members {
				if !canAssignToAny(ctx, fm, toT.Members) {
					return false
				}
			}
			return true
		}
		return canAssignToAny(ctx, from, toT.Members)
	case *ObjectType:
		fromObj, ok := from.(*ObjectType)
		if !ok {
			return false
		}
		// Structural width/depth subtyping: every field to requires
		// must be present on from with an assignable type. Extra
		// fields on from are permitted.
		for name, wantType := range toT.Fields {
			haveType, present := fromObj.Fields[name]
			if !present || !CanAssign(ctx, haveType, wantType) {
				return false
			}
		}
		return true
	case *GenericInstance:
		fromInst, ok := from.(*GenericInstance)
		if !ok || !fromInst.sameConstructor(toT) || len(fromInst.Args) != len(toT.Args) {
			return false
		}
		for i := range toT.Args {
			if !CanAssign(ctx, fromInst.Args[i], toT.Args[i]) {
				return false
			}
		}
		return true
	case *FunctionType:
		fromFn, ok := from.(*FunctionType)
		if !ok || len(fromFn.Params) != len(toT.Params) {
			return false
		}
		if (fromFn.Rest == nil) != (toT.Rest == nil) {
			return false
		}
		// Per spec, parameter position is nominally contravariant but the
		// implementation treats both sides symmetrically as strict
		// equivalence, not true contravariance (a bare CanAssign check
		// would wrongly accept e.g. `(any) -> num` where `(num) -> num`
		// is required, since `any` bypasses CanAssign in both directions).
		for i := range toT.Params {
			if !typesEqual(ctx, toT.Params[i], fromFn.Params[i]) {
				return false
			}
		}
		if toT.Rest != nil && !typesEqual(ctx, toT.Rest, fromFn.Rest) {
			return false
		}
		return CanAssign(ctx, fromFn.Return, toT.Return)
	case *PrimitiveType:
		fromP, ok := from.(*PrimitiveType)
		return ok && fromP.Name == toT.Name
	default:
		return false
	}
}

// typesEqual reports strict structural equivalence between a and b. It
// deliberately does not special-case t_any the way CanAssign does: it is
// used for function-parameter comparison, where spec treats parameter
// position as symmetric strict equivalence rather than contravariant
// assignability (a bare CanAssign call would let `any` wrongly stand in
// for any declared parameter type on either side).
func typesEqual(ctx *TypeContext, a, b Type) bool {
	a, b = deref(a), deref(b)
	if a == nil || b == nil {
		return a == b
	}
	if a.ID() == b.ID() {
		return true
	}
	switch at := a.(type) {
	case *PrimitiveType:
		bt, ok := b.(*PrimitiveType)
		return ok && at.Name == bt.Name
	case *FunctionType:
		bt, ok := b.(*FunctionType)
		if !ok || len(at.Params) != len(bt.Params) {
			return false
		}
		if (at.Rest == nil) != (bt.Rest == nil) {
			return false
		}
		for i := range at.Params {
			if !typesEqual(ctx, at.Params[i], bt.Params[i]) {
				return false
			}
		}
		if at.Rest != nil && !typesEqual(ctx, at.Rest, bt.Rest) {
			return false
		}
		return typesEqual(ctx, at.Return, bt.Return)
	case *GenericInstance:
		bt, ok := b.(*GenericInstance)
		if !ok || !at.sameConstructor(bt) || len(at.Args) != len(bt.Args) {
			return false
		}
		for i := range at.Args {
			if !typesEqual(ctx, at.Args[i], bt.Args[i]) {
				return false
			}
		}
		return true
	case *UnionType:
		bt, ok := b.(*UnionType)
		if !ok || len(at.Members) != len(bt.Members) {
			return false
		}
		for _, m := range at.Members {
			if !bt.Has(m) {
				return false
			}
		}
		return true
	case *ObjectType:
		bt, ok := b.(*ObjectType)
		if !ok || len(at.Fields) != len(bt.Fields) {
			return false
		}
		for name, ft := range at.Fields {
			bft, present := bt.Fields[name]
			if !present || !typesEqual(ctx, ft, bft) {
				return false
			}
		}
		return true
	}
	return false
}

func canAssignToAny(ctx *TypeContext, from Type, candidates []Type) bool {
	for _, c := range candidates {
		if CanAssign(ctx, from, c) {
			return true
		}
	}
	return false
}

// IsError reports whether t is the error sentinel, used throughout the
// checker to suppress cascading diagnostics once one operand is already
// broken.
func IsError(ctx *TypeContext, t Type) bool {
	return deref(t).ID() == ctx.Error.ID()
}
