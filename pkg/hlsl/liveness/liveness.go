// Package liveness implements the indexing and liveness analysis of §4.6: a
// depth-first numbering of every node in the entry body, and the resulting
// first_write/last_read bounds on every variable the body touches.
package liveness

import (
	"github.com/claynathaniel/vkd3d/pkg/hlsl/context"
	"github.com/claynathaniel/vkd3d/pkg/hlsl/symbols"
	"github.com/claynathaniel/vkd3d/pkg/ir"
)

// Index assigns a strictly increasing index (starting at 2) to every node in
// decl's body, stamps each Loop's NextIndex, and recomputes first_write and
// last_read on every variable held in the context's scopes and on decl's
// parameters and return variable. It is run once after
// every DCE sweep and once more as the pipeline's final pass (§4.5 item 4-5).
func Index(ctx *context.Context, decl *ir.FunctionDecl) {
	resetLiveness(ctx, decl)
	//
	idx := uint32(2)
	assignIndices(decl.Body, &idx)
	applyLiveness(decl.Body, 0, 0)
}

func resetLiveness(ctx *context.Context, decl *ir.FunctionDecl) {
	for _, sc := range ctx.Scopes().All() {
		for _, v := range sc.Variables() {
			v.ResetLiveness()
		}
	}
	//
	for _, v := range ctx.Globals().Variables() {
		if v.IsUniform || v.IsInputVarying {
			v.FirstWrite = 1
		}
		//
		if v.IsOutputVarying {
			v.LastRead = symbols.LiveUntilEnd
		}
	}
	//
	for _, p := range decl.Params {
		p.ResetLiveness()
		p.FirstWrite = 1
	}
	//
	if decl.ReturnVar != nil {
		decl.ReturnVar.ResetLiveness()
		decl.ReturnVar.LastRead = symbols.LiveUntilEnd
	}
}

// assignIndices walks body depth-first, numbering every node starting from
// *idx, and records each Loop's NextIndex as the first index past its body.
// Index space is continuous across nested blocks.
func assignIndices(body *ir.List, idx *uint32) {
	for _, n := range body.Nodes() {
		n.Index = *idx
		*idx++
		//
		switch n.Kind {
		case ir.KindIf:
			assignIndices(n.If.Then, idx)
			assignIndices(n.If.Else, idx)
		case ir.KindLoop:
			assignIndices(n.Loop.Body, idx)
			n.Loop.NextIndex = *idx
		}
	}
}

// applyLiveness walks body using already-assigned indices, updating variable
// first_write/last_read. loopFirst/loopLast are non-zero only while inside a
// Loop's body, in which case every access uses those extended bounds instead
// of the access's own index, so that liveness reaches across iterations.
func applyLiveness(body *ir.List, loopFirst, loopLast uint32) {
	for _, n := range body.Nodes() {
		switch n.Kind {
		case ir.KindStore:
			applyStore(n, loopFirst, loopLast)
		case ir.KindLoad:
			applyLoad(n, loopFirst, loopLast)
		case ir.KindExpr:
			for _, s := range n.Expr.Operands {
				markOperand(s.Get(), n.Index, loopLast)
			}
		case ir.KindSwizzle:
			markOperand(n.Swizzle.Src.Get(), n.Index, loopLast)
		case ir.KindIf:
			markOperand(n.If.Cond.Get(), n.Index, loopLast)
			applyLiveness(n.If.Then, loopFirst, loopLast)
			applyLiveness(n.If.Else, loopFirst, loopLast)
		case ir.KindLoop:
			lf, ll := loopFirst, loopLast
			if lf == 0 {
				lf = n.Index
			}
			//
			if ll == 0 {
				ll = n.Loop.NextIndex
			}
			//
			applyLiveness(n.Loop.Body, lf, ll)
		}
	}
}

func applyStore(n *ir.Node, loopFirst, loopLast uint32) {
	target := n.Store.Var
	if target == nil {
		return
	}
	//
	if target.FirstWrite == 0 {
		target.FirstWrite = effectiveIndex(n.Index, loopFirst)
	}
	//
	if src := n.Store.Src.Get(); src != nil && src.Kind == ir.KindLoad && src.Load.Var != nil {
		bumpLastRead(src.Load.Var, effectiveIndex(n.Index, loopLast))
	}
	//
	markOperand(n.Store.Offset.Get(), n.Index, loopLast)
}

func applyLoad(n *ir.Node, loopFirst, loopLast uint32) {
	if n.Load.Var != nil {
		bumpLastRead(n.Load.Var, effectiveIndex(n.Index, loopLast))
	}
	//
	_ = loopFirst
	markOperand(n.Load.Offset.Get(), n.Index, loopLast)
}

// markOperand propagates a last_read bump onto the variable underlying a
// source operand, when that operand is itself a Load (§4.6 "Expr, Swizzle,
// If condition: each operand's last_read = instr.index").
func markOperand(operand *ir.Node, atIndex, loopLast uint32) {
	if operand == nil || operand.Kind != ir.KindLoad || operand.Load.Var == nil {
		return
	}
	//
	bumpLastRead(operand.Load.Var, effectiveIndex(atIndex, loopLast))
}

func bumpLastRead(v *symbols.Variable, idx uint32) {
	if v.LastRead == symbols.LiveUntilEnd {
		return
	}
	//
	if idx > v.LastRead {
		v.LastRead = idx
	}
}

func effectiveIndex(nodeIndex, extended uint32) uint32 {
	if extended != 0 {
		return extended
	}
	//
	return nodeIndex
}
