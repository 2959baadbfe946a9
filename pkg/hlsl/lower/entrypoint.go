// Package lower implements entry-point lowering (§4.4): rewriting the entry
// function's body so that uniforms, input varyings and output varyings are
// materialised as explicit loads/stores between register-class shadow
// variables and the function's original parameters, locals and return value.
package lower

import (
	"fmt"

	"github.com/claynathaniel/vkd3d/pkg/hlsl/context"
	"github.com/claynathaniel/vkd3d/pkg/hlsl/diag"
	"github.com/claynathaniel/vkd3d/pkg/hlsl/symbols"
	"github.com/claynathaniel/vkd3d/pkg/hlsl/types"
	"github.com/claynathaniel/vkd3d/pkg/ir"
	"github.com/claynathaniel/vkd3d/pkg/util"
	"github.com/claynathaniel/vkd3d/pkg/util/source"
)

// fullMask writes every one of the x/y/z/w destination lanes.
const fullMask uint8 = 0xF

// EntryPoint runs the entry-point lowering pass over ctx.Entry, in the order
// specified by §4.4: static initializers first, then global uniforms, then
// parameters (uniform / input varying / output varying), then the return
// value.
func EntryPoint(ctx *context.Context) {
	decl := ctx.Entry
	//
	if decl == nil || decl.Body == nil {
		ctx.Report(nil, source.Span{}, diag.Error, diag.NotDefined, "entry point not found")
		return
	}
	//
	body := decl.Body
	regs := &registerAllocator{}
	//
	// 1. Static initializers prepend.
	body.PrependList(ctx.StaticInits)
	//
	// 2. Global uniforms.
	for _, v := range ctx.Globals().Variables() {
		if v.IsUniform {
			lowerUniform(ctx, body, v, regs)
		}
	}
	//
	// 3. Parameters.
	for _, p := range decl.Params {
		switch {
		case p.Modifiers&types.ModUniform != 0:
			lowerUniform(ctx, body, p, regs)
		case p.Modifiers&types.ModOut != 0:
			lowerOutputVarying(ctx, body, p, "", regs)
			//
			if p.Modifiers&types.ModIn != 0 {
				lowerInputVarying(ctx, body, p, "", regs)
			}
		default:
			lowerInputVarying(ctx, body, p, "", regs)
		}
	}
	//
	// 4. Return value.
	if decl.ReturnVar != nil {
		lowerOutputVarying(ctx, body, decl.ReturnVar, decl.ReturnSemantic, regs)
	}
}

// registerAllocator hands out sequential register numbers, one counter per
// register class (uniform constant bank, input varyings, output varyings),
// so every shadow variable synthesised during lowering carries the register
// reservation the data model calls for (§3 "optional register reservation").
type registerAllocator struct {
	uniform uint32
	input   uint32
	output  uint32
}

func (r *registerAllocator) nextUniform() uint32 {
	n := r.uniform
	r.uniform++
	//
	return n
}

func (r *registerAllocator) nextInput() uint32 {
	n := r.input
	r.input++
	//
	return n
}

func (r *registerAllocator) nextOutput() uint32 {
	n := r.output
	r.output++
	//
	return n
}

// lowerUniform synthesises a writable companion shadow for a uniform
// variable (global or parameter) and prepends a load-then-store pair that
// copies the constant-bank resource into the original storage location
// (§4.4 step 2).
func lowerUniform(ctx *context.Context, body *ir.List, v *symbols.Variable, regs *registerAllocator) {
	companion := symbols.NewVariable(fmt.Sprintf("<uniform-%s>", v.Name), v.Type, v.Span)
	companion.IsUniform = true
	companion.Register = util.Some(regs.nextUniform())
	v.IsUniform = false
	ctx.Globals().AddShadowVar(companion)
	//
	load := ir.NewLoad(v.Type, v.Span, companion, nil)
	store := ir.NewStore(v.Span, v, nil, fullMask, load)
	//
	body.PushFront(store)
	body.PushFront(load)
}

// lowerInputVarying recurses into v's struct fields (if any); every
// non-struct leaf with a semantic gets a synthetic "<input-$semantic>"
// variable, followed by a load of it and a store to v at the leaf's register
// offset (§4.4 step 3). rootSemantic supplies the semantic to use when v
// itself is not a struct and carries no semantic of its own (unused here, but
// threaded through for symmetry with lowerOutputVarying).
func lowerInputVarying(ctx *context.Context, body *ir.List, v *symbols.Variable, rootSemantic string, regs *registerAllocator) {
	semantic := v.Semantic
	if semantic == "" {
		semantic = rootSemantic
	}
	//
	for _, lf := range collectLeaves(v.Type, semantic, 0) {
		if lf.Semantic == "" {
			ctx.Report(nil, v.Span, diag.Error, diag.MissingSemantic,
				fmt.Sprintf("missing semantic on input %q", v.Name))
			continue
		}
		//
		shadow := symbols.NewVariable(fmt.Sprintf("<input-%s>", lf.Semantic), lf.Type, v.Span)
		shadow.IsInputVarying = true
		shadow.FirstWrite = 1
		shadow.Register = util.Some(regs.nextInput())
		ctx.Globals().AddShadowVar(shadow)
		//
		load := ir.NewLoad(lf.Type, v.Span, shadow, nil)
		store := ir.NewStore(v.Span, v, offsetNode(ctx, v.Span, lf.Offset), fullMask, load)
		//
		body.PushFront(store)
		body.PushFront(load)
	}
}

// lowerOutputVarying recurses into v's struct fields (if any); every
// non-struct leaf with a semantic gets a synthetic "<output-$semantic>"
// variable, and the body's tail gets a load of v at the leaf's offset
// followed by a store into the shadow (§4.4 step 3/4).
func lowerOutputVarying(ctx *context.Context, body *ir.List, v *symbols.Variable, rootSemantic string, regs *registerAllocator) {
	semantic := v.Semantic
	if semantic == "" {
		semantic = rootSemantic
	}
	//
	for _, lf := range collectLeaves(v.Type, semantic, 0) {
		if lf.Semantic == "" {
			ctx.Report(nil, v.Span, diag.Error, diag.MissingSemantic,
				fmt.Sprintf("missing semantic on output %q", v.Name))
			continue
		}
		//
		shadow := symbols.NewVariable(fmt.Sprintf("<output-%s>", lf.Semantic), lf.Type, v.Span)
		shadow.IsOutputVarying = true
		shadow.LastRead = symbols.LiveUntilEnd
		shadow.Register = util.Some(regs.nextOutput())
		ctx.Globals().AddShadowVar(shadow)
		//
		load := ir.NewLoad(lf.Type, v.Span, v, offsetNode(ctx, v.Span, lf.Offset))
		store := ir.NewStore(v.Span, shadow, nil, fullMask, load)
		//
		body.PushBack(load)
		body.PushBack(store)
	}
}

// leaf identifies a single scalar/vector/matrix/object member reachable by
// recursively walking a type's struct fields, together with its semantic and
// its register offset from the root of the walk.
type leaf struct {
	Type     *types.Type
	Semantic string
	Offset   uint32
}

func collectLeaves(t *types.Type, rootSemantic string, offset uint32) []leaf {
	if t.Class != types.Struct {
		return []leaf{{t, rootSemantic, offset}}
	}
	//
	var out []leaf
	//
	for _, f := range t.Fields {
		out = append(out, collectLeaves(f.Type, f.Semantic, offset+f.Offset)...)
	}
	//
	return out
}

// offsetNode materialises a leaf's register offset as a byte-offset Constant
// node, or nil when the offset is zero (meaning "no offset expression").
func offsetNode(ctx *context.Context, span source.Span, regOffset uint32) *ir.Node {
	if regOffset == 0 {
		return nil
	}
	//
	uintType, _ := ctx.Globals().FindType("uint", false)
	byteOffset := regOffset * 4
	//
	return ir.NewConstant(uintType, span, []ir.ConstantValue{{Base: types.Uint, U: uint64(byteOffset)}})
}
