package ir

import (
	"testing"

	"github.com/claynathaniel/vkd3d/pkg/hlsl/types"
	"github.com/claynathaniel/vkd3d/pkg/util/source"
)

func Test_List_PushBackOrder_01(t *testing.T) {
	l := NewList()
	ty := types.NewScalar(types.Float)
	a := NewConstant(ty, source.Span{}, nil)
	b := NewConstant(ty, source.Span{}, nil)
	//
	l.PushBack(a)
	l.PushBack(b)
	//
	if l.Front() != a || l.Back() != b {
		t.Fatalf("expected order [a, b], got front=%v back=%v", l.Front(), l.Back())
	}
	//
	if l.Len() != 2 {
		t.Fatalf("expected length 2, got %d", l.Len())
	}
}

func Test_List_PushFront_01(t *testing.T) {
	l := NewList()
	ty := types.NewScalar(types.Float)
	a := NewConstant(ty, source.Span{}, nil)
	b := NewConstant(ty, source.Span{}, nil)
	//
	l.PushBack(a)
	l.PushFront(b)
	//
	if l.Front() != b || l.Back() != a {
		t.Fatalf("expected order [b, a], got front=%v back=%v", l.Front(), l.Back())
	}
}

func Test_List_InsertBeforeAfter_01(t *testing.T) {
	l := NewList()
	ty := types.NewScalar(types.Float)
	a := NewConstant(ty, source.Span{}, nil)
	b := NewConstant(ty, source.Span{}, nil)
	c := NewConstant(ty, source.Span{}, nil)
	//
	l.PushBack(a)
	l.InsertBefore(b, a)
	l.InsertAfter(c, a)
	//
	got := l.Nodes()
	if len(got) != 3 || got[0] != b || got[1] != a || got[2] != c {
		t.Fatalf("expected order [b, a, c], got %v", got)
	}
}

func Test_List_Remove_01(t *testing.T) {
	l := NewList()
	ty := types.NewScalar(types.Float)
	a := NewConstant(ty, source.Span{}, nil)
	b := NewConstant(ty, source.Span{}, nil)
	//
	l.PushBack(a)
	l.PushBack(b)
	l.Remove(a)
	//
	if l.Len() != 1 || l.Front() != b {
		t.Fatalf("expected only b to remain, got %v", l.Nodes())
	}
	//
	if a.List() != nil {
		t.Fatalf("expected a removed node's List() to be nil")
	}
}

func Test_List_PrependList_01(t *testing.T) {
	l := NewList()
	other := NewList()
	ty := types.NewScalar(types.Float)
	a := NewConstant(ty, source.Span{}, nil)
	b := NewConstant(ty, source.Span{}, nil)
	//
	l.PushBack(a)
	other.PushBack(b)
	//
	l.PrependList(other)
	//
	got := l.Nodes()
	if len(got) != 2 || got[0] != b || got[1] != a {
		t.Fatalf("expected order [b, a], got %v", got)
	}
	//
	if other.Len() != 0 {
		t.Fatalf("expected the donor list to be emptied, got length %d", other.Len())
	}
}

func Test_List_Destroy_NestedIf_01(t *testing.T) {
	l := NewList()
	ty := types.NewScalar(types.Float)
	cond := NewConstant(ty, source.Span{}, nil)
	//
	then := NewList()
	then.PushBack(NewConstant(ty, source.Span{}, nil))
	//
	els := NewList()
	//
	ifNode := NewIf(source.Span{}, cond, then, els)
	l.PushBack(ifNode)
	//
	l.Destroy()
	//
	if l.Len() != 0 {
		t.Fatalf("expected the outer list to be emptied by Destroy")
	}
	//
	if len(cond.Uses()) != 0 {
		t.Fatalf("expected Destroy to sever the If's condition slot")
	}
}
