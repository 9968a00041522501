package typesystem

import "github.com/avelang/ave/internal/token"

// BinaryResult computes the static result type of left OP right, or
// ctx.Error if the operator is not defined for the operand types. Any
// operand of type `any` makes the whole expression `any` and bypasses
// the operator table entirely, per spec.
func BinaryResult(ctx *TypeContext, op token.Type, left, right Type) Type {
	left, right = deref(left), deref(right)
	if IsError(ctx, left) || IsError(ctx, right) {
		return ctx.Error
	}
	if left.ID() == ctx.Any.ID() || right.ID() == ctx.Any.ID() {
		return ctx.Any
	}

	switch op {
	case token.PLUS:
		if isNumber(ctx, left) && isNumber(ctx, right) {
			return ctx.Number
		}
		if isString(ctx, left) || isString(ctx, right) {
			return ctx.String
		}
		return ctx.Error

	case token.MINUS, token.STAR, token.SLASH, token.SLASH2, token.PERCENT, token.POW,
		token.AMP, token.PIPE, token.CARET:
		if isNumber(ctx, left) && isNumber(ctx, right) {
			return ctx.Number
		}
		return ctx.Error

	case token.LT, token.GT, token.LE, token.GE:
		if isNumber(ctx, left) && isNumber(ctx, right) {
			return ctx.Bool
		}
		return ctx.Error

	case token.EQ, token.NEQ, token.IS, token.ANDAND, token.OROR, token.AND, token.OR:
		// Defined for any non-error operand pair.
		return ctx.Bool
	}
	return ctx.Error
}

// UnaryResult computes the static result type of OP operand (prefix) or
// operand OP (postfix).
func UnaryResult(ctx *TypeContext, op token.Type, operand Type, postfix bool) Type {
	operand = deref(operand)
	if IsError(ctx, operand) {
		return ctx.Error
	}
	if operand.ID() == ctx.Any.ID() {
		return ctx.Any
	}

	switch op {
	case token.MINUS, token.PLUS:
		if isNumber(ctx, operand) {
			return ctx.Number
		}
		return ctx.Error
	case token.BANG:
		return ctx.Bool
	case token.INC, token.DEC:
		if isNumber(ctx, operand) {
			return ctx.Number
		}
		return ctx.Error
	}
	return ctx.Error
}

// CompoundAssignResult computes the static result type of a compound
// assignment `target OP= value`, per spec's narrower compound-assignment
// table: `+=` accepts num,num or a string target (with any value type,
// yielding str); every other compound operator requires num,num. A
// t_any target always yields t_any, matching plain binary typing. This
// is intentionally its own table rather than a reuse of BinaryResult:
// BinaryResult's `+` also accepts `num + str` (string on the right),
// which compound `+=` rejects for a num target.
func CompoundAssignResult(ctx *TypeContext, op token.Type, target, value Type) Type {
	target, value = deref(target), deref(value)
	if IsError(ctx, target) || IsError(ctx, value) {
		return ctx.Error
	}
	if target.ID() == ctx.Any.ID() {
		return ctx.Any
	}

	switch op {
	case token.PLUSEQ:
		if isString(ctx, target) {
			return ctx.String
		}
		if isNumber(ctx, target) && isNumber(ctx, value) {
			return ctx.Number
		}
		return ctx.Error
	case token.MINUSEQ, token.STAREQ, token.SLASHEQ, token.PERCENTEQ, token.POWEQ, token.SLASH2EQ:
		if isNumber(ctx, target) && isNumber(ctx, value) {
			return ctx.Number
		}
		return ctx.Error
	}
	return ctx.Error
}

func isNumber(ctx *TypeContext, t Type) bool {
	p, ok := t.(*PrimitiveType)
	return ok && p.Name == ctx.Number.Name
}

func isString(ctx *TypeContext, t Type) bool {
	p, ok := t.(*PrimitiveType)
	return ok && p.Name == ctx.String.Name
}
