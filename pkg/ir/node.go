// Package ir implements the typed, SSA-friendly, block-structured
// intermediate representation described in §3: a fixed node taxonomy over
// instruction lists that exclusively own their nodes, with use/def back-edges
// threaded through every source slot.
package ir

import (
	"github.com/claynathaniel/vkd3d/pkg/hlsl/symbols"
	"github.com/claynathaniel/vkd3d/pkg/hlsl/types"
	"github.com/claynathaniel/vkd3d/pkg/util/source"
)

// Kind is the tag of the IR node taxonomy's tagged sum.
type Kind uint8

// The fixed set of IR node variants (§3).
const (
	KindConstant Kind = iota
	KindLoad
	KindStore
	KindExpr
	KindSwizzle
	KindIf
	KindLoop
	KindJump
)

func (k Kind) String() string {
	switch k {
	case KindConstant:
		return "constant"
	case KindLoad:
		return "load"
	case KindStore:
		return "store"
	case KindExpr:
		return "expr"
	case KindSwizzle:
		return "swizzle"
	case KindIf:
		return "if"
	case KindLoop:
		return "loop"
	case KindJump:
		return "jump"
	default:
		return "?"
	}
}

// Op identifies the operator carried by an Expr node.
type Op uint8

// The operator set an Expr node may carry.
const (
	OpCast Op = iota
	OpNeg
	OpAbs
	OpRcp
	OpRsqrt
	OpSqrt
	OpExp2
	OpLog2
	OpSin
	OpCos
	OpDsx
	OpDsy
	OpSaturate
	OpBitNot
	OpLogicalNot
	OpFrac
	OpSign
	OpPreInc
	OpPreDec
	OpPostInc
	OpPostDec
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpMod
	OpLt
	OpGt
	OpLe
	OpGe
	OpEq
	OpNe
	OpAnd
	OpOr
	OpShl
	OpShr
	OpBitAnd
	OpBitOr
	OpBitXor
	OpDot
	OpCross
	OpMin
	OpMax
	OpPow
	OpLerp
	OpComma
)

// JumpKind identifies which of the four jump forms a Jump node performs.
type JumpKind uint8

// The four jump forms.
const (
	JumpBreak JumpKind = iota
	JumpContinue
	JumpDiscard
	JumpReturn
)

// ConstantValue is a single scalar component of a Constant node's literal
// payload, interpreted according to the enclosing type's base.
type ConstantValue struct {
	Base types.Base
	F    float64
	I    int64
	U    uint64
	B    bool
}

// ConstantData is the payload of a Constant node: one value per scalar
// component of its data type.
type ConstantData struct {
	Values []ConstantValue
}

// LoadData is the payload of a Load node: a variable read, plus an optional
// byte-offset expression (offset.Get() == nil means no offset).
type LoadData struct {
	Var    *symbols.Variable
	Offset Slot
}

// StoreData is the payload of a Store node: a variable write at an optional
// byte offset, gated by a 4-bit x/y/z/w writemask, from a source node.
type StoreData struct {
	Var       *symbols.Variable
	Offset    Slot
	Writemask uint8
	Src       Slot
}

// ExprData is the payload of an Expr node: an operator applied to up to three
// source nodes. Unused operand slots are left empty.
type ExprData struct {
	Op       Op
	Operands [3]Slot
}

// SwizzleData is the payload of a Swizzle node: a permutation/selection of a
// source's components into a new vector or matrix. For vectors, Lanes holds a
// 0..3 component index per output lane; for matrices, MatrixLanes holds a
// {row,col} pair per output lane.
type SwizzleData struct {
	Src         Slot
	IsMatrix    bool
	OutputCount uint8
	Lanes       [4]uint8
	MatrixLanes [4][2]uint8
}

// IfData is the payload of an If node: a condition source plus two child
// instruction lists.
type IfData struct {
	Cond Slot
	Then *List
	Else *List
}

// LoopData is the payload of a Loop node: a single child instruction list,
// forming an infinite loop exited only via a Jump. NextIndex is stamped by
// liveness indexing with the first index past the loop's body.
type LoopData struct {
	Body      *List
	NextIndex uint32
}

// JumpData is the payload of a Jump node.
type JumpData struct {
	Kind JumpKind
}

// Node is a single IR instruction. Rather than model each taxonomy member as
// a distinct type behind an interface, every node carries a Kind
// discriminant plus the union of per-kind payloads; only the payload named by
// Kind is meaningful. This mirrors the closed, fixed taxonomy of §3 and keeps
// the arena/list/use-def machinery (which is identical across all eight
// kinds) in one place.
type Node struct {
	Kind Kind
	// Type is nil for control-flow nodes (Store, If, Loop, Jump).
	Type *types.Type
	Span source.Span
	// Index is assigned by liveness indexing (§4.6); 0 means unassigned.
	Index uint32

	list *List
	elem *listElem

	// uses is the set of slots (anywhere in the IR) currently referencing
	// this node.
	uses []*Slot

	Constant ConstantData
	Load     LoadData
	Store    StoreData
	Expr     ExprData
	Swizzle  SwizzleData
	If       IfData
	Loop     LoopData
	Jump     JumpData
}

func newNode(kind Kind, ty *types.Type, span source.Span) *Node {
	return &Node{Kind: kind, Type: ty, Span: span}
}

// NewConstant constructs a typed literal node.
func NewConstant(ty *types.Type, span source.Span, values []ConstantValue) *Node {
	n := newNode(KindConstant, ty, span)
	n.Constant.Values = values
	//
	return n
}

// NewLoad constructs a node reading variable v, with an optional byte-offset
// expression (pass nil for none).
func NewLoad(ty *types.Type, span source.Span, v *symbols.Variable, offset *Node) *Node {
	n := newNode(KindLoad, ty, span)
	n.Load.Var = v
	n.Load.Offset.Set(offset)
	//
	return n
}

// NewStore constructs a node writing src into variable v, gated by mask, at
// an optional byte offset (pass nil for none).
func NewStore(span source.Span, v *symbols.Variable, offset *Node, mask uint8, src *Node) *Node {
	n := newNode(KindStore, nil, span)
	n.Store.Var = v
	n.Store.Offset.Set(offset)
	n.Store.Writemask = mask
	n.Store.Src.Set(src)
	//
	return n
}

// NewExpr constructs a unary, binary or ternary operator node. Unused operand
// positions should be passed as nil.
func NewExpr(ty *types.Type, span source.Span, op Op, a, b, c *Node) *Node {
	n := newNode(KindExpr, ty, span)
	n.Expr.Op = op
	n.Expr.Operands[0].Set(a)
	n.Expr.Operands[1].Set(b)
	n.Expr.Operands[2].Set(c)
	//
	return n
}

// NewVectorSwizzle constructs a vector swizzle selecting `lanes[:count]` from
// src.
func NewVectorSwizzle(ty *types.Type, span source.Span, src *Node, lanes []uint8) *Node {
	n := newNode(KindSwizzle, ty, span)
	n.Swizzle.Src.Set(src)
	n.Swizzle.OutputCount = uint8(len(lanes))
	copy(n.Swizzle.Lanes[:], lanes)
	//
	return n
}

// NewMatrixSwizzle constructs a matrix swizzle selecting `lanes[:count]`
// {row,col} pairs from src.
func NewMatrixSwizzle(ty *types.Type, span source.Span, src *Node, lanes [][2]uint8) *Node {
	n := newNode(KindSwizzle, ty, span)
	n.Swizzle.Src.Set(src)
	n.Swizzle.IsMatrix = true
	n.Swizzle.OutputCount = uint8(len(lanes))
	copy(n.Swizzle.MatrixLanes[:], lanes)
	//
	return n
}

// NewIf constructs a conditional with two child instruction lists.
func NewIf(span source.Span, cond *Node, then, els *List) *Node {
	n := newNode(KindIf, nil, span)
	n.If.Cond.Set(cond)
	n.If.Then = then
	n.If.Else = els
	//
	return n
}

// NewLoop constructs an infinite loop over a single child instruction list.
func NewLoop(span source.Span, body *List) *Node {
	n := newNode(KindLoop, nil, span)
	n.Loop.Body = body
	//
	return n
}

// NewJump constructs a break/continue/discard/return node.
func NewJump(span source.Span, kind JumpKind) *Node {
	n := newNode(KindJump, nil, span)
	n.Jump.Kind = kind
	//
	return n
}

// Uses returns the slots currently referencing this node.
func (n *Node) Uses() []*Slot {
	return n.uses
}

// List returns the instruction list currently containing this node, or nil.
func (n *Node) List() *List {
	return n.list
}

// HasSideEffect reports whether this node's kind always survives dead-code
// elimination regardless of its uses list (Store, If, Loop, Jump).
func (n *Node) HasSideEffect() bool {
	switch n.Kind {
	case KindStore, KindIf, KindLoop, KindJump:
		return true
	default:
		return false
	}
}

// IsDead reports whether this node has an empty uses list and no
// side-effecting kind, per the Use/Def invariant in §3.
func (n *Node) IsDead() bool {
	return !n.HasSideEffect() && len(n.uses) == 0
}

// Operands returns pointers to every source slot this node carries, in a
// stable order, for use by generic passes (replacement, destruction,
// liveness).
func (n *Node) Operands() []*Slot {
	switch n.Kind {
	case KindLoad:
		return []*Slot{&n.Load.Offset}
	case KindStore:
		return []*Slot{&n.Store.Offset, &n.Store.Src}
	case KindExpr:
		return []*Slot{&n.Expr.Operands[0], &n.Expr.Operands[1], &n.Expr.Operands[2]}
	case KindSwizzle:
		return []*Slot{&n.Swizzle.Src}
	case KindIf:
		return []*Slot{&n.If.Cond}
	default:
		return nil
	}
}

// Replace rewires every slot on old's uses list to reference replacement
// (moving each slot onto replacement's uses list), unlinks old from its
// containing instruction list, and destroys it. This is the node-replacement
// contract of §4.5.
func Replace(old, replacement *Node) {
	for len(old.uses) > 0 {
		s := old.uses[len(old.uses)-1]
		s.Set(replacement)
	}
	//
	if old.list != nil {
		old.list.Remove(old)
	}
	//
	old.destroy()
}

// DestroyNode removes n from its containing instruction list (if any) and
// severs its own outbound slots, without touching n's uses list. It is used
// by passes that insert n's replacements directly before removing the
// original, rather than rewiring n's (empty) uses list via Replace — e.g.
// split_struct_copies removing the original struct-typed Store.
func DestroyNode(n *Node) {
	if n.list != nil {
		n.list.Remove(n)
	}
	//
	n.destroy()
}

// destroy severs every outbound slot this node carries (which removes the
// corresponding entries from the referents' uses lists) and clears its list
// linkage. It does not recurse into child lists of If/Loop — callers that
// need to tear down an entire subtree should use List.Destroy, which performs
// an iterative, stack-safe walk.
func (n *Node) destroy() {
	for _, s := range n.Operands() {
		s.Set(nil)
	}
	//
	n.list = nil
	n.elem = nil
}
