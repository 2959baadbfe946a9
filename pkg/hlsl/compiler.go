// Package hlsl exposes the single public entry point described in §6: given a
// parsed entry-point declaration and a target profile, run entry-point
// lowering and the transform pipeline over it and report the outcome as a
// Status.
package hlsl

import (
	"github.com/claynathaniel/vkd3d/pkg/hlsl/context"
	"github.com/claynathaniel/vkd3d/pkg/hlsl/diag"
	"github.com/claynathaniel/vkd3d/pkg/hlsl/lower"
	"github.com/claynathaniel/vkd3d/pkg/hlsl/profile"
	"github.com/claynathaniel/vkd3d/pkg/hlsl/transform"
	"github.com/claynathaniel/vkd3d/pkg/util/source"
)

// Status is the outcome of a compile, per §7.
type Status uint8

// The recognised outcomes.
const (
	OK Status = iota
	InvalidArgument
	InvalidShader
	OutOfMemory
	NotImplemented
)

func (s Status) String() string {
	switch s {
	case OK:
		return "ok"
	case InvalidArgument:
		return "invalid_argument"
	case InvalidShader:
		return "invalid_shader"
	case OutOfMemory:
		return "out_of_memory"
	case NotImplemented:
		return "not_implemented"
	default:
		return "?"
	}
}

// Options configures a single compile.
type Options struct {
	// Profile is the raw profile string (e.g. "ps_4_0").
	Profile string
	// EntryName is the name of the function to treat as the shader's entry
	// point.
	EntryName string
}

// Result is the outcome of a compile: the status, the decoded profile (zero
// value if decoding failed), and, on OK, the fully-lowered and transformed
// context ready for an emitter to consume.
type Result struct {
	Status  Status
	Profile profile.Profile
	Context *context.Context
}

// Compile runs the front end's middle-end stages over a context whose
// globals/scopes/functions have already been populated by an external parser,
// and whose Entry field has already been set to the resolved entry-point
// declaration. It decodes opts.Profile, runs entry-point lowering, then runs
// the five-pass transform pipeline to a fixed point, and returns the combined
// status (§6, §7).
//
// Compile never panics on malformed input; every failure path reports a
// diagnostic through ctx's sink and returns a non-OK Status. A context that
// already has Failed() true on entry is returned unchanged with
// InvalidShader, so a parser's own errors short-circuit the pipeline rather
// than being compounded by lowering over a malformed tree (§7 "failed is
// sticky").
func Compile(ctx *context.Context, opts Options) Result {
	p, ok := profile.Decode(opts.Profile)
	if !ok {
		ctx.Report(nil, source.Span{}, diag.Error, diag.InvalidProfile, "malformed profile string "+opts.Profile)
		return Result{Status: InvalidArgument, Context: ctx}
	}
	//
	if ctx.Failed() {
		return Result{Status: InvalidShader, Profile: p, Context: ctx}
	}
	//
	if ctx.Entry == nil || ctx.Entry.Body == nil {
		ctx.Report(nil, source.Span{}, diag.Error, diag.NotDefined, "entry point "+opts.EntryName+" not found")
		return Result{Status: InvalidArgument, Profile: p, Context: ctx}
	}
	//
	lower.EntryPoint(ctx)
	//
	if ctx.Failed() {
		return Result{Status: InvalidShader, Profile: p, Context: ctx}
	}
	//
	runTransformPipeline(ctx)
	//
	if ctx.Failed() {
		return Result{Status: InvalidShader, Profile: p, Context: ctx}
	}
	//
	return Result{Status: OK, Profile: p, Context: ctx}
}

// runTransformPipeline sequences the five passes of §4.5 over the entry
// body, each to its own fixed point before the next begins.
func runTransformPipeline(ctx *context.Context) {
	decl := ctx.Entry
	uintType, _ := ctx.Globals().FindType("uint", false)
	//
	transform.FoldRedundantCasts(decl.Body)
	transform.SplitStructCopies(decl.Body, uintType)
	transform.FoldConstants(ctx, decl.Body)
	transform.LivenessAndDCE(ctx, decl)
	transform.FinalLiveness(ctx, decl)
}
