package renderer

import (
	"fmt"
	"image/color"
	"math"

	"github.com/df07/go-block-raytracer/pkg/core"
	"github.com/df07/go-block-raytracer/pkg/geometry"
	"github.com/df07/go-block-raytracer/pkg/material"
	"github.com/df07/go-block-raytracer/pkg/scene"
)

const (
	// hitEpsilon rejects intersections at the ray origin itself
	hitEpsilon = 0.001
	// maxRayDistance is the far limit for every traced ray
	maxRayDistance = 1000.0
	// surfaceBias offsets secondary ray origins off the surface so they
	// cannot immediately re-hit it
	surfaceBias = 0.001
)

// Raytracer evaluates the recursive shading model for single rays. It is
// stateless apart from the scene reference, so one instance per worker
// renders identical colors for identical rays.
type Raytracer struct {
	scene    *scene.Scene
	maxDepth int
}

// NewRaytracer creates a raytracer for the given scene
func NewRaytracer(s *scene.Scene, maxDepth int) *Raytracer {
	if maxDepth <= 0 {
		maxDepth = DefaultConfig().MaxDepth
	}
	return &Raytracer{scene: s, maxDepth: maxDepth}
}

// Trace returns the color seen along a single ray. Rays with a zero
// direction carry no meaning and are rejected here rather than deep in
// the recursion.
func (rt *Raytracer) Trace(ray core.Ray) (core.Vec3, error) {
	if ray.Direction.LengthSquared() == 0 {
		return core.Vec3{}, fmt.Errorf("ray direction must be non-zero")
	}
	return rt.rayColor(ray), nil
}

func (rt *Raytracer) rayColor(ray core.Ray) core.Vec3 {
	return rt.rayColorRecursive(ray, rt.maxDepth)
}

// rayColorRecursive is the core shading loop: nearest hit, ambient plus
// per-light diffuse and specular terms, then recursive reflection and
// refraction blended by the Fresnel factor
func (rt *Raytracer) rayColorRecursive(ray core.Ray, depth int) core.Vec3 {
	if depth <= 0 {
		return rt.scene.Background
	}

	hit, ok := rt.scene.FindNearest(ray, hitEpsilon, maxRayDistance)
	if !ok {
		return rt.scene.Background
	}

	mat := hit.Material
	if mat.IsEmissive() {
		return mat.Emit()
	}

	unitDir := ray.Direction.Normalize()
	base := hit.Diffuse.Evaluate(hit.UV, hit.Point)

	// Ambient applies whether or not any light reaches the point
	result := rt.scene.Ambient.MultiplyVec(base)

	for _, light := range rt.scene.Lights {
		result = result.Add(rt.lightContribution(light, hit, base, unitDir, mat))
	}

	reflective := mat.Albedo.Reflect > 0
	transmissive := mat.Albedo.Refract > 0 && mat.RefractiveIndex > 0
	if !reflective && !transmissive {
		return result.Clamp(0.0, 1.0)
	}

	// Opaque mirrors keep the full reflection weight. Only transmissive
	// materials split energy between reflection and refraction.
	fresnel := 1.0
	ratio := 0.0
	if transmissive {
		ratio = mat.RefractiveIndex
		if hit.FrontFace {
			ratio = 1 / mat.RefractiveIndex
		}
		cosIncident := math.Min(1.0, unitDir.Multiply(-1).Dot(hit.Normal))
		fresnel = material.Reflectance(cosIncident, ratio)
	}

	var reflectColor core.Vec3
	haveReflection := false
	if reflective {
		reflectColor = rt.traceReflection(unitDir, hit, depth)
		haveReflection = true
	}

	if transmissive {
		var refractColor core.Vec3
		if refracted, ok := refractVector(unitDir, hit.Normal, ratio); ok {
			origin := hit.Point.Subtract(hit.Normal.Multiply(surfaceBias))
			refractColor = rt.rayColorRecursive(core.NewRay(origin, refracted), depth-1)
		} else {
			// Total internal reflection: the reflection color stands in
			// for the refraction contribution
			if !haveReflection {
				reflectColor = rt.traceReflection(unitDir, hit, depth)
				haveReflection = true
			}
			refractColor = reflectColor
		}
		result = result.Add(refractColor.Multiply((1 - fresnel) * mat.Albedo.Refract))
	}

	if reflective {
		result = result.Add(reflectColor.Multiply(fresnel * mat.Albedo.Reflect))
	}

	return result.Clamp(0.0, 1.0)
}

// lightContribution evaluates the diffuse and specular terms for one
// light, returning zero when the light is shadowed
func (rt *Raytracer) lightContribution(light scene.Light, hit *geometry.HitRecord, base, unitDir core.Vec3, mat *material.Material) core.Vec3 {
	toLight := light.Position.Subtract(hit.Point)
	distance := toLight.Length()
	if distance < 1e-12 {
		return core.Vec3{}
	}
	lightDir := toLight.Multiply(1 / distance)

	// Shadow ray starts just off the surface so the surface itself
	// cannot occlude it. Any hit before the light blocks it entirely.
	shadowOrigin := hit.Point.Add(hit.Normal.Multiply(surfaceBias))
	if rt.scene.Occluded(core.NewRay(shadowOrigin, lightDir), hitEpsilon, distance) {
		return core.Vec3{}
	}

	attenuation := light.Attenuation(distance)
	var contribution core.Vec3

	if mat.Albedo.Diffuse > 0 {
		diffuse := math.Max(0, hit.Normal.Dot(lightDir))
		if diffuse > 0 {
			contribution = contribution.Add(
				base.MultiplyVec(light.Color).Multiply(diffuse * attenuation * mat.Albedo.Diffuse))
		}
	}

	if mat.Albedo.Specular > 0 && mat.SpecularExp > 0 {
		reflected := reflectVector(lightDir.Multiply(-1), hit.Normal)
		specular := math.Max(0, reflected.Dot(unitDir.Multiply(-1)))
		if specular > 0 {
			contribution = contribution.Add(
				light.Color.Multiply(math.Pow(specular, mat.SpecularExp) * attenuation * mat.Albedo.Specular))
		}
	}

	return contribution
}

// traceReflection follows the incident direction mirrored about the hit
// normal
func (rt *Raytracer) traceReflection(unitDir core.Vec3, hit *geometry.HitRecord, depth int) core.Vec3 {
	reflected := reflectVector(unitDir, hit.Normal)
	origin := hit.Point.Add(hit.Normal.Multiply(surfaceBias))
	return rt.rayColorRecursive(core.NewRay(origin, reflected), depth-1)
}

// reflectVector mirrors an incident direction about a surface normal
func reflectVector(in, normal core.Vec3) core.Vec3 {
	return in.Subtract(normal.Multiply(2 * in.Dot(normal)))
}

// refractVector bends a unit incident direction entering a boundary with
// the given refractive index ratio. The second return value is false when
// Snell's equation has no real solution, which is total internal
// reflection. A ratio of exactly 1 passes the direction through unchanged.
func refractVector(unitDir, normal core.Vec3, ratio float64) (core.Vec3, bool) {
	cosIncident := math.Min(1.0, unitDir.Multiply(-1).Dot(normal))
	sinSquared := ratio * ratio * (1 - cosIncident*cosIncident)
	if sinSquared > 1 {
		return core.Vec3{}, false
	}
	cosTransmitted := math.Sqrt(1 - sinSquared)
	refracted := unitDir.Multiply(ratio).
		Add(normal.Multiply(ratio*cosIncident - cosTransmitted))
	return refracted, true
}

// vec3ToColor converts a linear color to RGBA with gamma correction and
// clamping
func vec3ToColor(colorVec core.Vec3) color.RGBA {
	colorVec = colorVec.GammaCorrect(2.0)
	colorVec = colorVec.Clamp(0.0, 1.0)

	return color.RGBA{
		R: uint8(255 * colorVec.X),
		G: uint8(255 * colorVec.Y),
		B: uint8(255 * colorVec.Z),
		A: 255,
	}
}
