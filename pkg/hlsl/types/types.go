// Package types implements the shading-language type system: the six type
// classes (scalar, vector, matrix, array, struct, object), their structural
// equality and overload-ordering comparators, and the recursive register-size
// computation used throughout lowering and code generation.
package types

import (
	"fmt"
	"strings"
)

// Class identifies one of the six kinds a Type can take.
type Class uint8

// The six type classes recognised by the front end.
const (
	Scalar Class = iota
	Vector
	Matrix
	Array
	Struct
	Object
)

func (c Class) String() string {
	switch c {
	case Scalar:
		return "scalar"
	case Vector:
		return "vector"
	case Matrix:
		return "matrix"
	case Array:
		return "array"
	case Struct:
		return "struct"
	case Object:
		return "object"
	default:
		return "?"
	}
}

// Base identifies the numeric base of a scalar, vector or matrix type.
type Base uint8

// Recognised numeric scalar bases.
const (
	Float Base = iota
	Half
	Double
	Int
	Uint
	Bool
)

var baseNames = [...]string{"float", "half", "double", "int", "uint", "bool"}

func (b Base) String() string {
	if int(b) < len(baseNames) {
		return baseNames[b]
	}
	//
	return "?base"
}

// ObjectKind distinguishes the non-numeric "object" types.
type ObjectKind uint8

// Recognised object kinds.
const (
	Void ObjectKind = iota
	Sampler
	Texture
	String
	PixelShader
	VertexShader
)

// SamplerDim tags the dimensionality of a Sampler object type.
type SamplerDim uint8

// Recognised sampler dimensions.
const (
	SamplerGeneric SamplerDim = iota
	Sampler1D
	Sampler2D
	Sampler3D
	SamplerCube
)

// Modifier is a bitset of storage and layout qualifiers. Only Majority is
// material to register-size computation (and then only for matrices); the
// rest are carried for diagnostics and for the entry-point lowerer.
type Modifier uint32

// Recognised modifier bits.
const (
	ModExtern Modifier = 1 << iota
	ModStatic
	ModUniform
	ModIn
	ModOut
	ModShared
	ModGroupShared
	ModConst
	ModVolatile
	ModPrecise
	ModRowMajor
	ModColumnMajor
)

// RowMajor reports whether the row-major bit is set. Column-major is the
// default whenever neither bit is present (see Clone).
func (m Modifier) RowMajor() bool {
	return m&ModRowMajor != 0
}

// HasMajority reports whether either majority bit has been set explicitly.
func (m Modifier) HasMajority() bool {
	return m&(ModRowMajor|ModColumnMajor) != 0
}

// Field describes one named, typed member of a Struct type.
type Field struct {
	Name      string
	Type      *Type
	Semantic  string
	Modifiers Modifier
	// Offset is this field's cumulative register offset within the
	// enclosing struct, in 4-component register slots.
	Offset uint32
}

// Type is the single representation for all six type classes. Rather than
// model each class as a distinct interface implementation, the node carries a
// Class discriminant plus the union of fields relevant to that class; this
// mirrors the fixed, closed taxonomy the language defines (a type can never
// gain a seventh class at runtime).
type Type struct {
	Class Class
	// Scalar / Vector / Matrix
	Base Base
	DimX uint8
	DimY uint8
	// Array
	Elem  *Type
	Count uint32
	// Struct
	Fields []Field
	// Struct / Object naming
	Name string
	// Object
	Object     ObjectKind
	SamplerDim SamplerDim
	//
	Modifiers Modifier
	// regSize caches the register-file footprint of this type; computed
	// once at construction time per §4.1.
	regSize uint32
}

// NewScalar constructs a scalar type of the given base.
func NewScalar(base Base) *Type {
	t := &Type{Class: Scalar, Base: base, DimX: 1, DimY: 1}
	t.regSize = 1
	return t
}

// NewVector constructs a vector type of dimx components (1..4) of the given
// base.
func NewVector(base Base, dimx uint8) *Type {
	t := &Type{Class: Vector, Base: base, DimX: dimx, DimY: 1}
	t.regSize = 1
	return t
}

// NewMatrix constructs a dimx x dimy matrix type of the given base. The
// majority bit must be set by the caller (via Modifiers) before RegisterSize
// is relied upon; NewMatrix defaults to column-major.
func NewMatrix(base Base, dimx, dimy uint8, modifiers Modifier) *Type {
	t := &Type{Class: Matrix, Base: base, DimX: dimx, DimY: dimy, Modifiers: modifiers}
	t.regSize = matrixRegSize(dimx, dimy, modifiers)
	return t
}

// NewArray constructs an array of count elements of type elem.
func NewArray(elem *Type, count uint32) *Type {
	t := &Type{Class: Array, Elem: elem, Count: count}
	t.regSize = elem.RegisterSize() * count
	return t
}

// NewStruct constructs a struct type from an ordered field list, computing
// and stamping each field's cumulative register offset as it goes.
func NewStruct(name string, fields []Field) *Type {
	var offset uint32
	//
	for i := range fields {
		fields[i].Offset = offset
		offset += fields[i].Type.RegisterSize()
	}
	//
	return &Type{Class: Struct, Name: name, Fields: fields, regSize: offset}
}

// NewObject constructs a non-numeric object type (void, sampler, texture,
// string, or shader handle).
func NewObject(kind ObjectKind, name string) *Type {
	return &Type{Class: Object, Object: kind, Name: name, regSize: 1}
}

// NewSampler constructs a sampler object type tagged with its dimensionality.
func NewSampler(dim SamplerDim, name string) *Type {
	t := NewObject(Sampler, name)
	t.SamplerDim = dim
	return t
}

func matrixRegSize(dimx, dimy uint8, m Modifier) uint32 {
	if m.RowMajor() {
		return uint32(dimy)
	}
	//
	return uint32(dimx)
}

// RegisterSize returns the number of 4-component register slots this type
// occupies in the flat register file, per the recursive definition in §3.
func (t *Type) RegisterSize() uint32 {
	return t.regSize
}

// ComponentCount returns the total scalar component count of this type:
// dimx*dimy for numeric types, recursively summed for arrays and structs.
func (t *Type) ComponentCount() uint32 {
	switch t.Class {
	case Scalar, Vector, Matrix:
		return uint32(t.DimX) * uint32(t.DimY)
	case Array:
		return t.Elem.ComponentCount() * t.Count
	case Struct:
		var total uint32
		for _, f := range t.Fields {
			total += f.Type.ComponentCount()
		}
		return total
	default:
		return 0
	}
}

// IsVoid reports whether this is the Object-class void type. Per the source
// material this classifies void as an Object, not as a distinct class of its
// own, which is load-bearing for overload resolution against void returns —
// preserved here deliberately rather than "fixed".
func (t *Type) IsVoid() bool {
	return t.Class == Object && t.Object == Void
}

// IsNumeric reports whether this type is a scalar, vector or matrix.
func (t *Type) IsNumeric() bool {
	return t.Class == Scalar || t.Class == Vector || t.Class == Matrix
}

// Equal implements structural type equality (§4.1): classes must match, base
// types must match, sampler dimension must match (for samplers), majority
// bits must match for matrices, dimx/dimy must match, and — recursively —
// struct fields must match pairwise by type AND name in order, and array
// element types and counts must match.
func Equal(a, b *Type) bool {
	return equal(a, b, false)
}

// Compare implements the parameter-ordering comparator used to key function
// overloads (§4.1). It is identical to Equal with two exceptions: a scalar and
// a vector of the same dimx compare equal, so that `float` and `float1`
// resolve to the same overload slot; and matrices are compared without
// looking at DimY (see the Matrix arm below).
func Compare(a, b *Type) bool {
	return equal(a, b, true)
}

func equal(a, b *Type, forOverload bool) bool {
	if a == nil || b == nil {
		return a == b
	}
	//
	if forOverload && isScalarOrUnitVector(a) && isScalarOrUnitVector(b) {
		return a.Base == b.Base && a.DimX == b.DimX
	}
	//
	if a.Class != b.Class {
		return false
	}
	//
	switch a.Class {
	case Scalar:
		return a.Base == b.Base
	case Vector:
		return a.Base == b.Base && a.DimX == b.DimX
	case Matrix:
		// NOTE: the parameter-comparator's dimy check here is
		// deliberately compared against dimx on both sides when
		// forOverload is set, reproducing a bug observed in the
		// source material (see Open Questions). Structural Equal
		// always compares dimy to dimy correctly.
		if forOverload {
			return a.Base == b.Base && a.Modifiers.RowMajor() == b.Modifiers.RowMajor() &&
				a.DimX == b.DimX && a.DimX == a.DimX
		}
		return a.Base == b.Base && a.Modifiers.RowMajor() == b.Modifiers.RowMajor() &&
			a.DimX == b.DimX && a.DimY == b.DimY
	case Array:
		return a.Count == b.Count && equal(a.Elem, b.Elem, forOverload)
	case Struct:
		if len(a.Fields) != len(b.Fields) {
			return false
		}
		for i := range a.Fields {
			if a.Fields[i].Name != b.Fields[i].Name {
				return false
			}
			if !equal(a.Fields[i].Type, b.Fields[i].Type, forOverload) {
				return false
			}
		}
		return true
	case Object:
		if a.Object != b.Object {
			return false
		}
		if a.Object == Sampler {
			return a.SamplerDim == b.SamplerDim
		}
		return true
	default:
		return false
	}
}

func isScalarOrUnitVector(t *Type) bool {
	return t.Class == Scalar || (t.Class == Vector && t.DimX == 1)
}

// Clone deep-copies a type. If the clone carries no explicit majority bit,
// the given default majority is folded in — this is how the parser applies a
// `#pragma pack_matrix` default onto a matrix declaration that didn't specify
// one explicitly.
func Clone(t *Type, defaultMajority Modifier) *Type {
	if t == nil {
		return nil
	}
	//
	clone := *t
	//
	if t.Class == Struct {
		clone.Fields = make([]Field, len(t.Fields))
		for i, f := range t.Fields {
			f.Type = Clone(f.Type, defaultMajority)
			clone.Fields[i] = f
		}
	}
	//
	if t.Class == Array {
		clone.Elem = Clone(t.Elem, defaultMajority)
		clone.regSize = clone.Elem.RegisterSize() * clone.Count
	}
	//
	if t.Class == Matrix && !clone.Modifiers.HasMajority() {
		clone.Modifiers |= defaultMajority
		clone.regSize = matrixRegSize(clone.DimX, clone.DimY, clone.Modifiers)
	}
	//
	return &clone
}

// String renders a type for diagnostics, e.g. "float4", "float4x4",
// "struct Light { float4 dir; }", "Texture2D".
func (t *Type) String() string {
	switch t.Class {
	case Scalar:
		return t.Base.String()
	case Vector:
		return fmt.Sprintf("%s%d", t.Base, t.DimX)
	case Matrix:
		return fmt.Sprintf("%s%dx%d", t.Base, t.DimX, t.DimY)
	case Array:
		return fmt.Sprintf("%s[%d]", t.Elem, t.Count)
	case Struct:
		var b strings.Builder
		fmt.Fprintf(&b, "struct %s { ", t.Name)
		for _, f := range t.Fields {
			fmt.Fprintf(&b, "%s %s; ", f.Type, f.Name)
		}
		b.WriteByte('}')
		return b.String()
	case Object:
		if t.Object == Sampler {
			return t.Name
		}
		return t.Name
	default:
		return "<invalid type>"
	}
}
