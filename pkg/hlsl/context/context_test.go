package context

import (
	"testing"

	"github.com/claynathaniel/vkd3d/pkg/hlsl/diag"
	"github.com/claynathaniel/vkd3d/pkg/util/source"
)

func sp() source.Span {
	return source.Span{}
}

func Test_New_InstallsPredefinedTypes_01(t *testing.T) {
	ctx := New(&diag.CollectingSink{})
	//
	for _, name := range []string{"float", "float4", "float4x4", "int3x2", "void", "sampler2D", "DWORD"} {
		if _, ok := ctx.Globals().FindType(name, false); !ok {
			t.Errorf("expected predefined type %q to be installed", name)
		}
	}
}

func Test_New_AliasesShareUnderlyingType_01(t *testing.T) {
	ctx := New(&diag.CollectingSink{})
	//
	uintTy, _ := ctx.Globals().FindType("uint", false)
	dword, _ := ctx.Globals().FindType("DWORD", false)
	//
	if uintTy != dword {
		t.Fatalf("expected DWORD to alias the same *types.Type instance as uint")
	}
}

func Test_Report_SetsStickyFailedOnlyForErrors_01(t *testing.T) {
	ctx := New(&diag.CollectingSink{})
	//
	ctx.Report(nil, sp(), diag.Warning, diag.MissingSemantic, "a warning")
	if ctx.Failed() {
		t.Fatalf("did not expect a warning to set the failed flag")
	}
	//
	ctx.Report(nil, sp(), diag.Error, diag.TypeError, "an error")
	if !ctx.Failed() {
		t.Fatalf("expected an error-severity diagnostic to set the failed flag")
	}
	//
	ctx.Report(nil, sp(), diag.Note, diag.MissingSemantic, "a note")
	if !ctx.Failed() {
		t.Fatalf("expected the failed flag to remain sticky after a later note")
	}
}

func Test_NewScalarType_IsTracked_01(t *testing.T) {
	ctx := New(&diag.CollectingSink{})
	before := len(ctx.AllTypes())
	//
	ctx.NewScalarType(0)
	//
	if len(ctx.AllTypes()) != before+1 {
		t.Fatalf("expected NewScalarType to register the type with the context")
	}
}
