package ir

import (
	"testing"

	"github.com/claynathaniel/vkd3d/pkg/hlsl/symbols"
	"github.com/claynathaniel/vkd3d/pkg/hlsl/types"
	"github.com/claynathaniel/vkd3d/pkg/util/source"
)

func floatParam(name string) *symbols.Variable {
	return symbols.NewVariable(name, types.NewScalar(types.Float), source.Span{})
}

func Test_AddFunction_NewEntry_01(t *testing.T) {
	table := NewFunctionTable()
	decl := NewFunctionDecl(types.NewScalar(types.Float), []*symbols.Variable{floatParam("a")}, source.Span{})
	//
	if err := table.AddFunction("sin", decl, true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	//
	f, ok := table.Lookup("sin")
	if !ok || len(f.Overloads) != 1 {
		t.Fatalf("expected a single overload to be registered")
	}
	//
	if decl.Owner != f {
		t.Fatalf("expected the decl to be back-referenced to its owning Function")
	}
}

func Test_AddFunction_ForwardDeclDoesNotReplaceDefined_01(t *testing.T) {
	table := NewFunctionTable()
	defined := NewFunctionDecl(types.NewScalar(types.Float), []*symbols.Variable{floatParam("a")}, source.Span{})
	defined.Body = NewList()
	//
	_ = table.AddFunction("f", defined, false)
	//
	forward := NewFunctionDecl(types.NewScalar(types.Float), []*symbols.Variable{floatParam("a")}, source.Span{})
	_ = table.AddFunction("f", forward, false)
	//
	f, _ := table.Lookup("f")
	if f.Overloads[0] != defined {
		t.Fatalf("expected the bodyless forward declaration to be discarded, not replace the defined overload")
	}
}

func Test_AddFunction_DefinitionReplacesForward_01(t *testing.T) {
	table := NewFunctionTable()
	forward := NewFunctionDecl(types.NewScalar(types.Float), []*symbols.Variable{floatParam("a")}, source.Span{})
	_ = table.AddFunction("f", forward, false)
	//
	defined := NewFunctionDecl(types.NewScalar(types.Float), []*symbols.Variable{floatParam("a")}, source.Span{})
	defined.Body = NewList()
	_ = table.AddFunction("f", defined, false)
	//
	f, _ := table.Lookup("f")
	if f.Overloads[0] != defined {
		t.Fatalf("expected a defined overload to replace a prior forward declaration")
	}
}

func Test_AddFunction_DistinctSignaturesCoexist_01(t *testing.T) {
	table := NewFunctionTable()
	one := NewFunctionDecl(types.NewScalar(types.Float), []*symbols.Variable{floatParam("a")}, source.Span{})
	two := NewFunctionDecl(types.NewScalar(types.Float), []*symbols.Variable{floatParam("a"), floatParam("b")}, source.Span{})
	//
	_ = table.AddFunction("f", one, false)
	_ = table.AddFunction("f", two, false)
	//
	f, _ := table.Lookup("f")
	if len(f.Overloads) != 2 {
		t.Fatalf("expected distinct-arity overloads to coexist, got %d", len(f.Overloads))
	}
}

func Test_AddFunction_RedeclareUserAsIntrinsicRejected_01(t *testing.T) {
	table := NewFunctionTable()
	user := NewFunctionDecl(types.NewScalar(types.Float), nil, source.Span{})
	_ = table.AddFunction("f", user, false)
	//
	intrinsic := NewFunctionDecl(types.NewScalar(types.Float), []*symbols.Variable{floatParam("a")}, source.Span{})
	//
	if err := table.AddFunction("f", intrinsic, true); err == nil {
		t.Fatalf("expected redeclaring a user function as intrinsic to be rejected")
	}
}

func Test_AddFunction_RedeclareIntrinsicAsUserClearsOverloads_01(t *testing.T) {
	table := NewFunctionTable()
	intrinsic := NewFunctionDecl(types.NewScalar(types.Float), nil, source.Span{})
	_ = table.AddFunction("f", intrinsic, true)
	//
	user := NewFunctionDecl(types.NewScalar(types.Float), []*symbols.Variable{floatParam("a")}, source.Span{})
	//
	if err := table.AddFunction("f", user, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	//
	f, _ := table.Lookup("f")
	if f.Intrinsic || len(f.Overloads) != 1 || f.Overloads[0] != user {
		t.Fatalf("expected the intrinsic's overload set to be cleared and replaced by the user overload")
	}
}

func Test_FindOverload_ScalarUnitVectorCollide_01(t *testing.T) {
	table := NewFunctionTable()
	decl := NewFunctionDecl(types.NewScalar(types.Float), []*symbols.Variable{floatParam("a")}, source.Span{})
	_ = table.AddFunction("f", decl, false)
	//
	f, _ := table.Lookup("f")
	//
	unitVectorParam := []*types.Type{types.NewVector(types.Float, 1)}
	if _, ok := f.FindOverload(unitVectorParam); !ok {
		t.Fatalf("expected a float1 argument to resolve the float overload")
	}
}

func Test_NewFunctionDecl_VoidHasNoReturnVar_01(t *testing.T) {
	voidTy := types.NewObject(types.Void, "void")
	decl := NewFunctionDecl(voidTy, nil, source.Span{})
	//
	if decl.ReturnVar != nil {
		t.Fatalf("expected a void-returning declaration to have no synthesised return variable")
	}
}
