package transform

import (
	"testing"

	"github.com/claynathaniel/vkd3d/pkg/hlsl/context"
	"github.com/claynathaniel/vkd3d/pkg/hlsl/diag"
	"github.com/claynathaniel/vkd3d/pkg/hlsl/symbols"
	"github.com/claynathaniel/vkd3d/pkg/hlsl/types"
	"github.com/claynathaniel/vkd3d/pkg/ir"
	"github.com/claynathaniel/vkd3d/pkg/util/source"
)

func Test_LivenessAndDCE_RemovesDeadStore_01(t *testing.T) {
	ctx := context.New(&diag.CollectingSink{})
	floatTy, _ := ctx.Globals().FindType("float", false)
	voidTy := ctx.NewObjectType(types.Void, "void")
	//
	dead := symbols.NewVariable("dead", floatTy, source.Span{})
	//
	decl := ir.NewFunctionDecl(voidTy, nil, source.Span{})
	decl.Body = ir.NewList()
	//
	one := ir.NewConstant(floatTy, source.Span{}, []ir.ConstantValue{{Base: types.Float, F: 1}})
	store := ir.NewStore(source.Span{}, dead, nil, 0xF, one)
	//
	decl.Body.PushBack(one)
	decl.Body.PushBack(store)
	//
	LivenessAndDCE(ctx, decl)
	//
	if decl.Body.Len() != 0 {
		t.Fatalf("expected a store to a never-read variable to be dead-code-eliminated, got %d nodes left", decl.Body.Len())
	}
}

func Test_LivenessAndDCE_KeepsStoreWithDownstreamRead_01(t *testing.T) {
	ctx := context.New(&diag.CollectingSink{})
	floatTy, _ := ctx.Globals().FindType("float", false)
	voidTy := ctx.NewObjectType(types.Void, "void")
	//
	output := symbols.NewVariable("<output-SV_Target>", floatTy, source.Span{})
	output.IsOutputVarying = true
	ctx.Globals().AddShadowVar(output)
	//
	local := symbols.NewVariable("x", floatTy, source.Span{})
	//
	decl := ir.NewFunctionDecl(voidTy, nil, source.Span{})
	decl.Body = ir.NewList()
	//
	one := ir.NewConstant(floatTy, source.Span{}, []ir.ConstantValue{{Base: types.Float, F: 1}})
	storeLocal := ir.NewStore(source.Span{}, local, nil, 0xF, one)
	loadLocal := ir.NewLoad(floatTy, source.Span{}, local, nil)
	storeOutput := ir.NewStore(source.Span{}, output, nil, 0xF, loadLocal)
	//
	decl.Body.PushBack(one)
	decl.Body.PushBack(storeLocal)
	decl.Body.PushBack(loadLocal)
	decl.Body.PushBack(storeOutput)
	//
	LivenessAndDCE(ctx, decl)
	//
	if decl.Body.Len() != 4 {
		t.Fatalf("expected every node on the live chain to survive, got %d nodes", decl.Body.Len())
	}
}

func Test_LivenessAndDCE_NeverRemovesControlFlow_01(t *testing.T) {
	ctx := context.New(&diag.CollectingSink{})
	voidTy := ctx.NewObjectType(types.Void, "void")
	//
	decl := ir.NewFunctionDecl(voidTy, nil, source.Span{})
	decl.Body = ir.NewList()
	//
	jump := ir.NewJump(source.Span{}, ir.JumpDiscard)
	decl.Body.PushBack(jump)
	//
	LivenessAndDCE(ctx, decl)
	//
	if decl.Body.Len() != 1 {
		t.Fatalf("expected a Jump node to survive dead-code elimination unconditionally")
	}
}
