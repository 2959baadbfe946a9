// Package symbols implements the nested lexical scope tree and the variable
// symbol table described in §3 and §4.2 of the front-end design: named
// storage locations and scopes that nest to form a tree rooted at the globals
// scope. The function table lives in package ir.
package symbols

import (
	"fmt"

	"github.com/claynathaniel/vkd3d/pkg/hlsl/types"
	"github.com/claynathaniel/vkd3d/pkg/util"
	"github.com/claynathaniel/vkd3d/pkg/util/source"
)

// Variable is a named storage location with a type, an optional HLSL
// semantic, modifier bits, an optional register reservation and the liveness
// fields threaded through by the transform pipeline's liveness pass.
type Variable struct {
	Name      string
	Type      *types.Type
	Span      source.Span
	Semantic  string
	Modifiers types.Modifier
	Register  util.Option[uint32]
	// Flags derived during entry-point lowering.
	IsUniform       bool
	IsInputVarying  bool
	IsOutputVarying bool
	// Liveness fields populated by the liveness pass (§4.6). Zero means
	// "unused"; LastRead == LiveUntilEnd means "reaches end of shader".
	FirstWrite uint32
	LastRead   uint32
}

// LiveUntilEnd is the sentinel LastRead value meaning a variable is read
// after the final instruction of the entry body (e.g. an output varying).
const LiveUntilEnd = ^uint32(0)

// NewVariable constructs a variable with its liveness fields reset.
func NewVariable(name string, ty *types.Type, span source.Span) *Variable {
	return &Variable{Name: name, Type: ty, Span: span}
}

// ResetLiveness resets a variable's liveness fields to "unused", as done at
// the start of every liveness pass (§4.6).
func (v *Variable) ResetLiveness() {
	v.FirstWrite = 0
	v.LastRead = 0
}

// Scope is an ordered list of variables plus a keyed lookup of locally
// declared types, linked to its enclosing scope. Scopes form a tree rooted at
// the globals scope of the owning Context.
type Scope struct {
	vars   []*Variable
	types  map[string]*types.Type
	parent *Scope
}

// NewScope constructs an empty scope with the given parent (nil for the
// globals scope).
func NewScope(parent *Scope) *Scope {
	return &Scope{types: make(map[string]*types.Type), parent: parent}
}

// Parent returns the enclosing scope, or nil for the globals scope.
func (s *Scope) Parent() *Scope {
	return s.parent
}

// Variables returns the variables declared directly in this scope, in
// declaration order.
func (s *Scope) Variables() []*Variable {
	return s.vars
}

// FindVar resolves a variable name by walking upward from this scope to the
// globals scope, per §3 "name resolution for variables walks upward".
func (s *Scope) FindVar(name string) (*Variable, bool) {
	for sc := s; sc != nil; sc = sc.parent {
		if v, ok := sc.localVar(name); ok {
			return v, true
		}
	}
	//
	return nil, false
}

func (s *Scope) localVar(name string) (*Variable, bool) {
	for _, v := range s.vars {
		if v.Name == name {
			return v, true
		}
	}
	//
	return nil, false
}

// FindType resolves a named type. When recursive is false, only this scope's
// own type index is consulted; when true, the search walks upward to the
// globals scope, per §4.2.
func (s *Scope) FindType(name string, recursive bool) (*types.Type, bool) {
	for sc := s; sc != nil; sc = sc.parent {
		if t, ok := sc.types[name]; ok {
			return t, true
		}
		//
		if !recursive {
			break
		}
	}
	//
	return nil, false
}

// AddVar appends decl to this scope after checking for a name collision
// within the scope. When isLocal is true and this scope's parent is the
// globals scope — i.e. decl is being added to a function body's top block —
// the parent (globals) scope is additionally consulted, so a function-level
// declaration can never shadow a global variable (§4.2).
func (s *Scope) AddVar(decl *Variable, isLocal bool, globals *Scope) error {
	if _, ok := s.localVar(decl.Name); ok {
		return fmt.Errorf("redefinition of %q", decl.Name)
	}
	//
	if isLocal && s.parent == globals && globals != nil {
		if _, ok := globals.localVar(decl.Name); ok {
			return fmt.Errorf("declaration of %q shadows a parameter or global", decl.Name)
		}
	}
	//
	s.vars = append(s.vars, decl)
	//
	return nil
}

// AddShadowVar appends a compiler-synthesised variable directly, bypassing
// the collision checks in AddVar. Shadow variables are named with a
// "<...>" form that no user identifier can ever produce, so collisions are
// impossible by construction.
func (s *Scope) AddShadowVar(v *Variable) {
	s.vars = append(s.vars, v)
}

// AddType inserts a named type into this scope's own type index; duplicate
// names within the same scope are rejected.
func (s *Scope) AddType(name string, t *types.Type) error {
	if _, ok := s.types[name]; ok {
		return fmt.Errorf("redefinition of type %q", name)
	}
	//
	s.types[name] = t
	//
	return nil
}

// ScopeStack manages the strictly LIFO push/pop discipline over a Context's
// scope tree, plus the flat list of every scope ever created (needed so the
// Context can iterate all scopes, e.g. when tearing down).
type ScopeStack struct {
	globals *Scope
	current *Scope
	all     []*Scope
}

// NewScopeStack constructs a scope stack rooted at a fresh globals scope.
func NewScopeStack() *ScopeStack {
	globals := NewScope(nil)
	return &ScopeStack{globals, globals, []*Scope{globals}}
}

// Globals returns the root globals scope.
func (s *ScopeStack) Globals() *Scope {
	return s.globals
}

// Current returns the scope currently at the top of the stack.
func (s *ScopeStack) Current() *Scope {
	return s.current
}

// Push creates a new child scope of the current scope and makes it current.
func (s *ScopeStack) Push() *Scope {
	child := NewScope(s.current)
	s.current = child
	s.all = append(s.all, child)
	//
	return child
}

// Pop restores the parent of the current scope as current. Popping the
// globals scope is a programming error and panics.
func (s *ScopeStack) Pop() {
	if s.current == s.globals {
		panic("cannot pop the globals scope")
	}
	//
	s.current = s.current.parent
}

// All returns every scope ever pushed, in creation order, including globals.
func (s *ScopeStack) All() []*Scope {
	return s.all
}
