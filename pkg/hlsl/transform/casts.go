package transform

import (
	"github.com/claynathaniel/vkd3d/pkg/hlsl/types"
	"github.com/claynathaniel/vkd3d/pkg/ir"
)

// FoldRedundantCasts implements pass 1 of §4.5: on a cast expression, if the
// source and destination types are structurally equal, or both are
// single-component (scalar or 1-vector) of the same base, every use of the
// cast is rewired directly onto its source.
func FoldRedundantCasts(body *ir.List) {
	runToFixedPoint(body, foldRedundantCast)
}

func foldRedundantCast(n *ir.Node) bool {
	if n.Kind != ir.KindExpr || n.Expr.Op != ir.OpCast {
		return false
	}
	//
	src := n.Expr.Operands[0].Get()
	if src == nil || src.Type == nil || n.Type == nil {
		return false
	}
	//
	if !isRedundantCast(n.Type, src.Type) {
		return false
	}
	//
	ir.Replace(n, src)
	//
	return true
}

func isRedundantCast(dst, src *types.Type) bool {
	if types.Equal(dst, src) {
		return true
	}
	//
	return isUnitType(dst) && isUnitType(src) && dst.Base == src.Base
}

func isUnitType(t *types.Type) bool {
	return t.Class == types.Scalar || (t.Class == types.Vector && t.DimX == 1)
}
