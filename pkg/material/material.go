package material

import (
	"fmt"

	"github.com/df07/go-block-raytracer/pkg/core"
)

// Albedo holds the weights of the four shading terms. The weights are
// independent non-negative gains rather than a normalized partition, which
// allows materials like polished glass to boost the specular term well
// above 1.
type Albedo struct {
	Diffuse  float64 // Lambertian diffuse weight
	Specular float64 // Phong specular weight
	Reflect  float64 // Mirror reflection weight
	Refract  float64 // Transmission weight
}

// Material describes how a surface responds to light. A material is either
// emissive (returns its emission color directly) or shaded from its diffuse
// color source, albedo weights, specular exponent and refractive index.
type Material struct {
	Diffuse         ColorSource // Base surface color, possibly textured
	Albedo          Albedo      // Shading term weights
	SpecularExp     float64     // Phong exponent; 0 disables the highlight
	RefractiveIndex float64     // Index of refraction, required when Albedo.Refract > 0
	Emission        core.Vec3   // Emitted color for emissive materials

	emissive bool
}

// New creates a validated material. The diffuse source must be non-nil, all
// albedo weights and the specular exponent must be non-negative, and a
// positive refractive index is required whenever the refraction weight is
// non-zero.
func New(diffuse ColorSource, albedo Albedo, specularExp, refractiveIndex float64) (*Material, error) {
	if diffuse == nil {
		return nil, fmt.Errorf("material: diffuse color source is nil")
	}
	if albedo.Diffuse < 0 || albedo.Specular < 0 || albedo.Reflect < 0 || albedo.Refract < 0 {
		return nil, fmt.Errorf("material: albedo weights must be non-negative, got %+v", albedo)
	}
	if specularExp < 0 {
		return nil, fmt.Errorf("material: specular exponent must be non-negative, got %v", specularExp)
	}
	if refractiveIndex < 0 {
		return nil, fmt.Errorf("material: refractive index must be non-negative, got %v", refractiveIndex)
	}
	if albedo.Refract > 0 && refractiveIndex == 0 {
		return nil, fmt.Errorf("material: refractive index is required when the refraction weight is %v", albedo.Refract)
	}

	return &Material{
		Diffuse:         diffuse,
		Albedo:          albedo,
		SpecularExp:     specularExp,
		RefractiveIndex: refractiveIndex,
	}, nil
}

// NewMatte creates a purely diffuse material with a solid color
func NewMatte(color core.Vec3) *Material {
	return NewTexturedMatte(NewSolidColor(color))
}

// NewTexturedMatte creates a purely diffuse material with a textured color
func NewTexturedMatte(source ColorSource) *Material {
	return &Material{
		Diffuse: source,
		Albedo:  Albedo{Diffuse: 1.0},
	}
}

// NewGlass creates a clear reflective/refractive material
func NewGlass(refractiveIndex float64) (*Material, error) {
	return New(
		NewSolidColor(core.NewVec3(1, 1, 1)),
		Albedo{Specular: 10.0, Reflect: 0.5, Refract: 0.5},
		1425.0,
		refractiveIndex,
	)
}

// NewEmissive creates a self-luminous material. Emissive surfaces return
// their emission color directly and take no part in shading.
func NewEmissive(emission core.Vec3) (*Material, error) {
	if emission.X < 0 || emission.Y < 0 || emission.Z < 0 {
		return nil, fmt.Errorf("material: emission components must be non-negative, got %v", emission)
	}
	return &Material{
		Diffuse:  NewSolidColor(emission),
		Emission: emission,
		emissive: true,
	}, nil
}

// IsEmissive reports whether this material emits light directly
func (m *Material) IsEmissive() bool {
	return m.emissive
}

// Emit returns the emitted color for emissive materials
func (m *Material) Emit() core.Vec3 {
	return m.Emission
}
