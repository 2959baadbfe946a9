package symbols

import (
	"testing"

	"github.com/claynathaniel/vkd3d/pkg/hlsl/types"
	"github.com/claynathaniel/vkd3d/pkg/util/source"
)

func source_span() source.Span {
	return source.NewSpan(0, 0)
}

func Test_AddVar_Duplicate_01(t *testing.T) {
	s := NewScope(nil)
	v := NewVariable("x", types.NewScalar(types.Float), source_span())
	//
	if err := s.AddVar(v, false, nil); err != nil {
		t.Fatalf("unexpected error on first declaration: %v", err)
	}
	//
	if err := s.AddVar(v, false, nil); err == nil {
		t.Fatalf("expected redefinition of %q to be rejected", v.Name)
	}
}

func Test_AddVar_ShadowsGlobal_01(t *testing.T) {
	globals := NewScope(nil)
	_ = globals.AddVar(NewVariable("g", types.NewScalar(types.Float), source_span()), false, nil)
	//
	body := NewScope(globals)
	shadowing := NewVariable("g", types.NewScalar(types.Int), source_span())
	//
	if err := body.AddVar(shadowing, true, globals); err == nil {
		t.Fatalf("expected local declaration to be rejected for shadowing a global")
	}
}

func Test_AddVar_NonLocalDoesNotCheckGlobals_01(t *testing.T) {
	globals := NewScope(nil)
	_ = globals.AddVar(NewVariable("g", types.NewScalar(types.Float), source_span()), false, nil)
	//
	body := NewScope(globals)
	//
	if err := body.AddVar(NewVariable("g", types.NewScalar(types.Int), source_span()), false, globals); err != nil {
		t.Fatalf("did not expect the global-shadowing check to apply when isLocal is false: %v", err)
	}
}

func Test_FindVar_WalksUpward_01(t *testing.T) {
	globals := NewScope(nil)
	_ = globals.AddVar(NewVariable("g", types.NewScalar(types.Float), source_span()), false, nil)
	//
	inner := NewScope(globals)
	//
	v, ok := inner.FindVar("g")
	if !ok || v.Name != "g" {
		t.Fatalf("expected FindVar to resolve %q via the parent scope", "g")
	}
}

func Test_FindType_NonRecursive_01(t *testing.T) {
	globals := NewScope(nil)
	_ = globals.AddType("float", types.NewScalar(types.Float))
	//
	inner := NewScope(globals)
	//
	if _, ok := inner.FindType("float", false); ok {
		t.Fatalf("did not expect a non-recursive lookup to see the parent scope's types")
	}
	//
	if _, ok := inner.FindType("float", true); !ok {
		t.Fatalf("expected a recursive lookup to see the parent scope's types")
	}
}

func Test_ScopeStack_PushPop_01(t *testing.T) {
	stack := NewScopeStack()
	//
	child := stack.Push()
	if stack.Current() != child {
		t.Fatalf("expected Push to make the new scope current")
	}
	//
	stack.Pop()
	//
	if stack.Current() != stack.Globals() {
		t.Fatalf("expected Pop to restore the globals scope as current")
	}
}

func Test_ScopeStack_PopGlobalsPanics_01(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected popping the globals scope to panic")
		}
	}()
	//
	NewScopeStack().Pop()
}

func Test_AddShadowVar_BypassesCollisionCheck_01(t *testing.T) {
	s := NewScope(nil)
	name := "<uniform-foo>"
	//
	s.AddShadowVar(NewVariable(name, types.NewScalar(types.Float), source_span()))
	s.AddShadowVar(NewVariable(name, types.NewScalar(types.Float), source_span()))
	//
	count := 0
	for _, v := range s.Variables() {
		if v.Name == name {
			count++
		}
	}
	//
	if count != 2 {
		t.Fatalf("expected AddShadowVar to allow duplicate shadow names, got %d entries", count)
	}
}
