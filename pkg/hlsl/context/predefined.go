package context

import (
	"fmt"

	"github.com/claynathaniel/vkd3d/pkg/hlsl/symbols"
	"github.com/claynathaniel/vkd3d/pkg/hlsl/types"
)

// DefaultMatrixMajority is the majority applied to a matrix type when no
// explicit row_major/column_major modifier is present; column-major unless a
// `#pragma pack_matrix` overrides it (§6).
const DefaultMatrixMajority = types.ModColumnMajor

// installPredefinedTypes populates the globals scope with every name listed
// in §6 "Predefined type names": the six scalar bases, <scalar>N vector
// aliases, <scalar>NxM matrix aliases, the sampler family, void, and the
// legacy effect-era aliases.
func installPredefinedTypes(c *Context) {
	globals := c.Globals()
	bases := []types.Base{types.Float, types.Half, types.Double, types.Int, types.Uint, types.Bool}
	//
	for _, base := range bases {
		scalar := c.NewScalarType(base)
		mustAddType(globals, base.String(), scalar)
		//
		for n := uint8(1); n <= 4; n++ {
			vec := c.NewVectorType(base, n)
			mustAddType(globals, fmt.Sprintf("%s%d", base, n), vec)
			//
			for m := uint8(1); m <= 4; m++ {
				mat := c.NewMatrixType(base, n, m, DefaultMatrixMajority)
				mustAddType(globals, fmt.Sprintf("%s%dx%d", base, n, m), mat)
			}
		}
	}
	//
	samplers := []struct {
		name string
		dim  types.SamplerDim
	}{
		{"sampler", types.SamplerGeneric},
		{"sampler1D", types.Sampler1D},
		{"sampler2D", types.Sampler2D},
		{"sampler3D", types.Sampler3D},
		{"samplerCUBE", types.SamplerCube},
	}
	//
	for _, s := range samplers {
		mustAddType(globals, s.name, c.trackType(types.NewSampler(s.dim, s.name)))
	}
	//
	mustAddType(globals, "void", c.NewObjectType(types.Void, "void"))
	mustAddType(globals, "STRING", c.NewObjectType(types.String, "STRING"))
	mustAddType(globals, "TEXTURE", c.NewObjectType(types.Texture, "TEXTURE"))
	mustAddType(globals, "PIXELSHADER", c.NewObjectType(types.PixelShader, "PIXELSHADER"))
	mustAddType(globals, "VERTEXSHADER", c.NewObjectType(types.VertexShader, "VERTEXSHADER"))
	//
	// Effect-era aliases onto already-tracked types: these do not create
	// new Type instances, they just register additional names for types
	// that already exist (mirroring e.g. "DWORD" meaning the same thing
	// as "uint").
	dword, _ := globals.FindType("uint", false)
	mustAddType(globals, "DWORD", dword)
	floatAlias, _ := globals.FindType("float", false)
	mustAddType(globals, "FLOAT", floatAlias)
	vector4, _ := globals.FindType("float4", false)
	mustAddType(globals, "VECTOR", vector4)
	matrix4x4, _ := globals.FindType("float4x4", false)
	mustAddType(globals, "MATRIX", matrix4x4)
}

func mustAddType(scope *symbols.Scope, name string, t *types.Type) {
	if err := scope.AddType(name, t); err != nil {
		panic(err)
	}
}
