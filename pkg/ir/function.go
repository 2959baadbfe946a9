package ir

import (
	"github.com/claynathaniel/vkd3d/pkg/hlsl/symbols"
	"github.com/claynathaniel/vkd3d/pkg/hlsl/types"
	"github.com/claynathaniel/vkd3d/pkg/util/source"
)

// FunctionDecl is a single overload of a named function: its return type,
// parameter list, optional body, and a synthetic return variable when its
// return type is not void (§3 "Function").
type FunctionDecl struct {
	ReturnType     *types.Type
	ReturnSemantic string
	Params         []*symbols.Variable
	Span           source.Span
	// ReturnVar is non-nil iff ReturnType is not void.
	ReturnVar *symbols.Variable
	// Body is nil for forward declarations.
	Body *List
	// Owner back-references the Function this decl is an overload of.
	Owner *Function
}

// NewFunctionDecl constructs a function declaration, synthesising the return
// variable when returnType is not void.
func NewFunctionDecl(returnType *types.Type, params []*symbols.Variable, span source.Span) *FunctionDecl {
	decl := &FunctionDecl{ReturnType: returnType, Params: params, Span: span}
	//
	if returnType != nil && !returnType.IsVoid() {
		decl.ReturnVar = symbols.NewVariable("<return>", returnType, span)
	}
	//
	return decl
}

// ParamTypes returns the ordered tuple of parameter types used to key
// overloads (§3, §4.3).
func (d *FunctionDecl) ParamTypes() []*types.Type {
	out := make([]*types.Type, len(d.Params))
	//
	for i, p := range d.Params {
		out[i] = p.Type
	}
	//
	return out
}

// sameSignature reports whether a and b have the same parameter-ordering
// signature, per the comparator in §4.1.
func sameSignature(a, b []*types.Type) bool {
	if len(a) != len(b) {
		return false
	}
	//
	for i := range a {
		if !types.Compare(a[i], b[i]) {
			return false
		}
	}
	//
	return true
}

// Function is a name plus its set of overloads, kept in the order they were
// added and distinguished from one another by the parameter-type comparator.
type Function struct {
	Name      string
	Overloads []*FunctionDecl
	// Intrinsic marks this function as a compiler built-in rather than
	// user-defined.
	Intrinsic bool
}

// FindOverload returns the overload matching the given parameter types, if
// any. Overload lookup is deterministic: at most one overload can match a
// given parameter list under the comparator (§8).
func (f *Function) FindOverload(params []*types.Type) (*FunctionDecl, bool) {
	for _, o := range f.Overloads {
		if sameSignature(o.ParamTypes(), params) {
			return o, true
		}
	}
	//
	return nil, false
}

// FunctionTable is the global table of functions, keyed by name, described in
// §4.3.
type FunctionTable struct {
	byName map[string]*Function
	names  []string
}

// NewFunctionTable constructs an empty function table.
func NewFunctionTable() *FunctionTable {
	return &FunctionTable{byName: make(map[string]*Function)}
}

// Lookup returns the function entry for name, if any.
func (t *FunctionTable) Lookup(name string) (*Function, bool) {
	f, ok := t.byName[name]
	return f, ok
}

// All returns every function entry, in the order their names were first
// added.
func (t *FunctionTable) All() []*Function {
	out := make([]*Function, len(t.names))
	//
	for i, n := range t.names {
		out[i] = t.byName[n]
	}
	//
	return out
}

// AddFunction implements the add_function semantics of §4.3:
//
//  1. If no entry exists for name, one is created.
//  2. If an entry exists and the intrinsic flag disagrees: redeclaring a
//     user function as intrinsic is rejected; redeclaring an intrinsic as
//     user-defined clears the existing overload set and proceeds.
//  3. If an overload with the same signature already exists: a bodyless
//     incoming decl is discarded (a forward declaration cannot replace a
//     defined overload or a prior forward); otherwise the old decl is
//     evicted (and its body destroyed) and the new decl takes its slot.
//  4. The decl is back-referenced to its owning Function.
func (t *FunctionTable) AddFunction(name string, decl *FunctionDecl, isIntrinsic bool) error {
	f, ok := t.byName[name]
	//
	if !ok {
		f = &Function{Name: name, Intrinsic: isIntrinsic}
		t.byName[name] = f
		t.names = append(t.names, name)
	} else if f.Intrinsic != isIntrinsic {
		if !f.Intrinsic {
			return errRedeclareIntrinsic(name)
		}
		//
		f.Intrinsic = false
		f.Overloads = nil
	}
	//
	params := decl.ParamTypes()
	//
	for i, existing := range f.Overloads {
		if sameSignature(existing.ParamTypes(), params) {
			if decl.Body == nil {
				// Forward declaration cannot replace an existing
				// overload (defined or itself forward).
				return nil
			}
			//
			if existing.Body != nil {
				existing.Body.Destroy()
			}
			//
			decl.Owner = f
			f.Overloads[i] = decl
			//
			return nil
		}
	}
	//
	decl.Owner = f
	f.Overloads = append(f.Overloads, decl)
	//
	return nil
}

type redeclareIntrinsicError struct{ name string }

func (e *redeclareIntrinsicError) Error() string {
	return "cannot redeclare user function \"" + e.name + "\" as intrinsic"
}

func errRedeclareIntrinsic(name string) error {
	return &redeclareIntrinsicError{name}
}
