// Package context implements the Compile Context: the single mutable state
// threaded through every stage of a compile (§2, §5, §9). It holds every
// type, scope and function created during the compile; there is no explicit
// teardown step, everything is released together when the Context is no
// longer referenced. There are no process-wide singletons.
package context

import (
	"github.com/claynathaniel/vkd3d/pkg/hlsl/diag"
	"github.com/claynathaniel/vkd3d/pkg/hlsl/symbols"
	"github.com/claynathaniel/vkd3d/pkg/hlsl/types"
	"github.com/claynathaniel/vkd3d/pkg/ir"
	"github.com/claynathaniel/vkd3d/pkg/util/source"
)

// Context is the per-compile state described in §2. Exactly one Context
// exists per call to compile a shader; contexts share no mutable state with
// one another, so distinct contexts may be compiled concurrently on distinct
// goroutines (§5).
type Context struct {
	// Types owned by this context, in construction order (for iteration).
	types []*types.Type

	scopes    *symbols.ScopeStack
	functions *ir.FunctionTable

	// StaticInits holds instructions produced by static initializers,
	// spliced onto the front of the entry function body during
	// entry-point lowering (§4.4 step 1).
	StaticInits *ir.List

	// Entry is the resolved entry-point function declaration, set once
	// the parser has finished and the entry point has been looked up by
	// name. Nil until then.
	Entry *ir.FunctionDecl

	sink   diag.Sink
	failed bool
}

// New constructs a fresh Context, installing the predefined type names into
// its globals scope (§6 "Predefined type names").
func New(sink diag.Sink) *Context {
	c := &Context{
		scopes:      symbols.NewScopeStack(),
		functions:   ir.NewFunctionTable(),
		StaticInits: ir.NewList(),
		sink:        sink,
	}
	//
	installPredefinedTypes(c)
	//
	return c
}

// Scopes returns the scope stack owned by this context.
func (c *Context) Scopes() *symbols.ScopeStack {
	return c.scopes
}

// Globals returns the root globals scope.
func (c *Context) Globals() *symbols.Scope {
	return c.scopes.Globals()
}

// Functions returns the global function table.
func (c *Context) Functions() *ir.FunctionTable {
	return c.functions
}

// Failed reports whether an error-severity diagnostic has been reported on
// this context. The flag is sticky: once set it is never cleared (§7).
func (c *Context) Failed() bool {
	return c.failed
}

// Report forwards a diagnostic to the configured sink and, if it is at Error
// severity, sets the sticky failed flag (§7).
func (c *Context) Report(file *source.File, span source.Span, sev diag.Severity, code diag.Code, msg string) {
	if c.sink != nil {
		c.sink.Report(diag.Diagnostic{File: file, Span: span, Severity: sev, Code: code, Message: msg})
	}
	//
	if sev == diag.Error {
		c.failed = true
	}
}

// trackType registers t in this context's owned type list. All of the
// New*Type helpers below call this, and user-facing constructors that
// allocate a type (e.g. during parsing) should too.
func (c *Context) trackType(t *types.Type) *types.Type {
	c.types = append(c.types, t)
	return t
}

// NewScalarType constructs and tracks a scalar type.
func (c *Context) NewScalarType(base types.Base) *types.Type {
	return c.trackType(types.NewScalar(base))
}

// NewVectorType constructs and tracks a vector type.
func (c *Context) NewVectorType(base types.Base, dimx uint8) *types.Type {
	return c.trackType(types.NewVector(base, dimx))
}

// NewMatrixType constructs and tracks a matrix type.
func (c *Context) NewMatrixType(base types.Base, dimx, dimy uint8, modifiers types.Modifier) *types.Type {
	return c.trackType(types.NewMatrix(base, dimx, dimy, modifiers))
}

// NewArrayType constructs and tracks an array type.
func (c *Context) NewArrayType(elem *types.Type, count uint32) *types.Type {
	return c.trackType(types.NewArray(elem, count))
}

// NewStructType constructs and tracks a struct type.
func (c *Context) NewStructType(name string, fields []types.Field) *types.Type {
	return c.trackType(types.NewStruct(name, fields))
}

// NewObjectType constructs and tracks an object type.
func (c *Context) NewObjectType(kind types.ObjectKind, name string) *types.Type {
	return c.trackType(types.NewObject(kind, name))
}

// AllTypes returns every type owned by this context, in construction order.
func (c *Context) AllTypes() []*types.Type {
	return c.types
}
