package ir

import (
	"testing"

	"github.com/claynathaniel/vkd3d/pkg/hlsl/types"
	"github.com/claynathaniel/vkd3d/pkg/util/source"
)

func Test_Slot_SetRewiresUses_01(t *testing.T) {
	ty := types.NewScalar(types.Float)
	a := NewConstant(ty, source.Span{}, nil)
	b := NewConstant(ty, source.Span{}, nil)
	//
	expr := NewExpr(ty, source.Span{}, OpAdd, a, nil, nil)
	//
	if len(a.Uses()) != 1 {
		t.Fatalf("expected a to have exactly one use, got %d", len(a.Uses()))
	}
	//
	expr.Expr.Operands[0].Set(b)
	//
	if len(a.Uses()) != 0 {
		t.Fatalf("expected a to have no uses after being replaced, got %d", len(a.Uses()))
	}
	//
	if len(b.Uses()) != 1 {
		t.Fatalf("expected b to have exactly one use, got %d", len(b.Uses()))
	}
}

func Test_Slot_SetSameReferentIsNoop_01(t *testing.T) {
	ty := types.NewScalar(types.Float)
	a := NewConstant(ty, source.Span{}, nil)
	expr := NewExpr(ty, source.Span{}, OpAdd, a, nil, nil)
	//
	expr.Expr.Operands[0].Set(a)
	//
	if len(a.Uses()) != 1 {
		t.Fatalf("expected re-setting the same referent to leave exactly one use, got %d", len(a.Uses()))
	}
}

func Test_Slot_GetOnNilSlot_01(t *testing.T) {
	var s *Slot
	//
	if s.Get() != nil {
		t.Fatalf("expected a nil slot pointer to report no referent")
	}
}
