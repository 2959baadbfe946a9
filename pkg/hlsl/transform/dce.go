package transform

import (
	"github.com/claynathaniel/vkd3d/pkg/hlsl/context"
	"github.com/claynathaniel/vkd3d/pkg/hlsl/liveness"
	"github.com/claynathaniel/vkd3d/pkg/hlsl/symbols"
	"github.com/claynathaniel/vkd3d/pkg/ir"
)

// LivenessAndDCE implements pass 4 of §4.5: run liveness, then run
// dead-code-elimination; re-run liveness after every DCE sweep that made
// progress, stopping once a DCE sweep removes nothing.
func LivenessAndDCE(ctx *context.Context, decl *ir.FunctionDecl) {
	for {
		liveness.Index(ctx, decl)
		//
		if !dceSweep(decl.Body) {
			return
		}
	}
}

// FinalLiveness implements pass 5 of §4.5: one last liveness pass producing
// the indices the emitter consumes.
func FinalLiveness(ctx *context.Context, decl *ir.FunctionDecl) {
	liveness.Index(ctx, decl)
}

// dceSweep performs one full depth-first sweep, removing dead pure nodes and
// stores with no downstream reader. It returns whether anything was removed.
func dceSweep(body *ir.List) bool {
	return applyOnce(body, dceNode)
}

func dceNode(n *ir.Node) bool {
	switch n.Kind {
	case ir.KindConstant, ir.KindExpr, ir.KindLoad, ir.KindSwizzle:
		if n.IsDead() {
			ir.DestroyNode(n)
			return true
		}
	case ir.KindStore:
		if isDeadStore(n) {
			ir.DestroyNode(n)
			return true
		}
	}
	//
	return false
}

// isDeadStore reports whether a Store's target variable is never read after
// this store's index, per §4.5 pass 4.
func isDeadStore(n *ir.Node) bool {
	v := n.Store.Var
	if v == nil {
		return false
	}
	//
	return v.LastRead != symbols.LiveUntilEnd && v.LastRead < n.Index
}
