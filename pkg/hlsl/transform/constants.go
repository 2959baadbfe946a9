package transform

import (
	"fmt"

	"github.com/claynathaniel/vkd3d/pkg/hlsl/context"
	"github.com/claynathaniel/vkd3d/pkg/hlsl/diag"
	"github.com/claynathaniel/vkd3d/pkg/hlsl/types"
	"github.com/claynathaniel/vkd3d/pkg/ir"
)

// FoldConstants implements pass 3 of §4.5: an Expr whose every non-null
// operand is a Constant is replaced by a Constant of the Expr's data type.
// The supported operator set is deliberately minimal — {uint add, uint mul}
// — matching the source material; any other fully-constant expression is left
// intact and is reported as a note so the missed folding opportunity is
// visible rather than silently dropped (§9 Open Questions).
func FoldConstants(ctx *context.Context, body *ir.List) {
	runToFixedPoint(body, foldConstant(ctx))
}

func foldConstant(ctx *context.Context) NodeTransform {
	return func(n *ir.Node) bool {
		if n.Kind != ir.KindExpr {
			return false
		}
		//
		ops := constantOperands(n)
		if ops == nil {
			return false
		}
		//
		if n.Type == nil || n.Type.Base != types.Uint {
			reportUnfoldable(ctx, n)
			return false
		}
		//
		var result *ir.Node
		//
		switch n.Expr.Op {
		case ir.OpAdd:
			result = ir.NewConstant(n.Type, n.Span, combineUint(ops, func(a, b uint64) uint64 { return a + b }))
		case ir.OpMul:
			result = ir.NewConstant(n.Type, n.Span, combineUint(ops, func(a, b uint64) uint64 { return a * b }))
		default:
			reportUnfoldable(ctx, n)
			return false
		}
		//
		replaceWithNewNode(n, result)
		//
		return true
	}
}

// constantOperands returns the node's non-nil operands if every one of them
// is a Constant, or nil if the node has no non-nil operands or any of them
// is not yet constant.
func constantOperands(n *ir.Node) []*ir.Node {
	var ops []*ir.Node
	//
	for _, s := range n.Expr.Operands {
		op := s.Get()
		if op == nil {
			continue
		}
		//
		if op.Kind != ir.KindConstant {
			return nil
		}
		//
		ops = append(ops, op)
	}
	//
	return ops
}

func combineUint(ops []*ir.Node, combine func(a, b uint64) uint64) []ir.ConstantValue {
	count := len(ops[0].Constant.Values)
	out := make([]ir.ConstantValue, count)
	//
	for i := 0; i < count; i++ {
		acc := ops[0].Constant.Values[i].U
		//
		for _, o := range ops[1:] {
			acc = combine(acc, o.Constant.Values[i].U)
		}
		//
		out[i] = ir.ConstantValue{Base: types.Uint, U: acc}
	}
	//
	return out
}

func reportUnfoldable(ctx *context.Context, n *ir.Node) {
	ctx.Report(nil, n.Span, diag.Note, diag.TypeError,
		fmt.Sprintf("constant-foldable expression with unsupported operator %d left unfolded", n.Expr.Op))
}
