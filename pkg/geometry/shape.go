package geometry

import (
	"github.com/df07/go-block-raytracer/pkg/core"
	"github.com/df07/go-block-raytracer/pkg/material"
)

// HitRecord contains information about a ray-object intersection
type HitRecord struct {
	Point     core.Vec3            // Point of intersection
	Normal    core.Vec3            // Surface normal at intersection, opposing the ray
	T         float64              // Parameter t along the ray
	FrontFace bool                 // Whether ray hit the front face
	UV        core.Vec2            // Texture coordinates at the intersection
	Material  *material.Material   // Material of the hit surface
	Diffuse   material.ColorSource // Resolved diffuse source for the hit face
}

// SetFaceNormal sets the normal vector and determines front/back face
func (h *HitRecord) SetFaceNormal(ray core.Ray, outwardNormal core.Vec3) {
	h.FrontFace = ray.Direction.Dot(outwardNormal) < 0
	if h.FrontFace {
		h.Normal = outwardNormal
	} else {
		h.Normal = outwardNormal.Multiply(-1)
	}
}

// Primitive is a shape that rays can intersect
type Primitive interface {
	Hit(ray core.Ray, tMin, tMax float64) (*HitRecord, bool)
	BoundingBox() core.AABB
}
