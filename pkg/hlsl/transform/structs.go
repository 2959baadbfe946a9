package transform

import (
	"github.com/claynathaniel/vkd3d/pkg/hlsl/types"
	"github.com/claynathaniel/vkd3d/pkg/ir"
	"github.com/claynathaniel/vkd3d/pkg/util/source"
)

const fullMask uint8 = 0xF

// SplitStructCopies implements pass 2 of §4.5: a Store whose right-hand side
// is a Load of a struct type is expanded into one Load/Store pair per field,
// each addressed at base_offset + field.reg_offset*4 (materialised as
// Constant + Add expressions when a base offset is already present).
// Re-running the pass to a fixed point handles structs nested in structs.
func SplitStructCopies(body *ir.List, uintType *types.Type) {
	runToFixedPoint(body, splitStructCopy(uintType))
}

func splitStructCopy(uintType *types.Type) NodeTransform {
	return func(n *ir.Node) bool {
		if n.Kind != ir.KindStore {
			return false
		}
		//
		src := n.Store.Src.Get()
		if src == nil || src.Kind != ir.KindLoad || src.Type == nil || src.Type.Class != types.Struct {
			return false
		}
		//
		list := n.List()
		if list == nil {
			return false
		}
		//
		dstBase := n.Store.Offset.Get()
		srcBase := src.Load.Offset.Get()
		//
		for _, f := range src.Type.Fields {
			extra := f.Offset * 4
			//
			fieldLoad := ir.NewLoad(f.Type, src.Span, src.Load.Var, combineOffset(uintType, src.Span, srcBase, extra))
			fieldStore := ir.NewStore(n.Span, n.Store.Var, combineOffset(uintType, n.Span, dstBase, extra), fullMask, fieldLoad)
			//
			list.InsertBefore(fieldLoad, n)
			list.InsertBefore(fieldStore, n)
		}
		//
		ir.DestroyNode(n)
		//
		return true
	}
}

// combineOffset composes a base offset node (possibly nil, meaning zero) with
// an additional constant byte offset, producing either the base unchanged,
// a bare Constant, or an Add expression over the two.
func combineOffset(uintType *types.Type, span source.Span, base *ir.Node, extraBytes uint32) *ir.Node {
	if extraBytes == 0 {
		return base
	}
	//
	constNode := ir.NewConstant(uintType, span, []ir.ConstantValue{{Base: types.Uint, U: uint64(extraBytes)}})
	//
	if base == nil {
		return constNode
	}
	//
	return ir.NewExpr(uintType, span, ir.OpAdd, base, constNode, nil)
}
