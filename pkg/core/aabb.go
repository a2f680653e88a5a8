package core

import "math"

// AABB represents an axis-aligned bounding box
type AABB struct {
	Min Vec3 // Minimum corner
	Max Vec3 // Maximum corner
}

// NewAABB creates a new AABB from min and max points
func NewAABB(min, max Vec3) AABB {
	return AABB{Min: min, Max: max}
}

// axisValues returns the slab bounds and ray components for one axis
func (aabb AABB) axisValues(ray Ray, axis int) (min, max, origin, direction float64) {
	switch axis {
	case 0:
		return aabb.Min.X, aabb.Max.X, ray.Origin.X, ray.Direction.X
	case 1:
		return aabb.Min.Y, aabb.Max.Y, ray.Origin.Y, ray.Direction.Y
	default:
		return aabb.Min.Z, aabb.Max.Z, ray.Origin.Z, ray.Direction.Z
	}
}

// HitInterval computes the parametric interval where a ray passes through
// the box using the slab method. It returns the entry and exit distances
// along with the axis that bounds each end of the interval. An axis of -1
// means the interval end was never tightened (the ray starts inside the
// corresponding slabs). Returns ok=false when the ray misses the box or the
// interval falls outside (tMin, tMax).
func (aabb AABB) HitInterval(ray Ray, tMin, tMax float64) (tEnter, tExit float64, enterAxis, exitAxis int, ok bool) {
	tEnter = math.Inf(-1)
	tExit = math.Inf(1)
	enterAxis = -1
	exitAxis = -1

	for axis := 0; axis < 3; axis++ {
		min, max, origin, direction := aabb.axisValues(ray, axis)

		// Handle rays parallel to this axis
		if math.Abs(direction) < 1e-8 {
			if origin < min || origin > max {
				return 0, 0, -1, -1, false // Ray origin outside slab
			}
			continue
		}

		invDirection := 1.0 / direction
		t1 := (min - origin) * invDirection
		t2 := (max - origin) * invDirection
		if t1 > t2 {
			t1, t2 = t2, t1
		}

		if t1 > tEnter {
			tEnter = t1
			enterAxis = axis
		}
		if t2 < tExit {
			tExit = t2
			exitAxis = axis
		}

		// No intersection if the interval is empty
		if tEnter > tExit {
			return 0, 0, -1, -1, false
		}
	}

	// Ray direction was degenerate on all axes
	if enterAxis == -1 && exitAxis == -1 {
		return 0, 0, -1, -1, false
	}

	// The interval must overlap (tMin, tMax]
	if tExit <= tMin || tEnter > tMax {
		return 0, 0, -1, -1, false
	}

	return tEnter, tExit, enterAxis, exitAxis, true
}

// Hit tests if a ray intersects with this AABB using the slab method
func (aabb AABB) Hit(ray Ray, tMin, tMax float64) bool {
	_, _, _, _, ok := aabb.HitInterval(ray, tMin, tMax)
	return ok
}

// Union returns an AABB that bounds both this AABB and another
func (aabb AABB) Union(other AABB) AABB {
	min := Vec3{
		X: math.Min(aabb.Min.X, other.Min.X),
		Y: math.Min(aabb.Min.Y, other.Min.Y),
		Z: math.Min(aabb.Min.Z, other.Min.Z),
	}
	max := Vec3{
		X: math.Max(aabb.Max.X, other.Max.X),
		Y: math.Max(aabb.Max.Y, other.Max.Y),
		Z: math.Max(aabb.Max.Z, other.Max.Z),
	}
	return AABB{Min: min, Max: max}
}

// Center returns the center point of the AABB
func (aabb AABB) Center() Vec3 {
	return aabb.Min.Add(aabb.Max).Multiply(0.5)
}

// Size returns the size (extent) of the AABB along each axis
func (aabb AABB) Size() Vec3 {
	return aabb.Max.Subtract(aabb.Min)
}

// IsValid returns true if this is a valid AABB (min <= max for all axes)
func (aabb AABB) IsValid() bool {
	return aabb.Min.X <= aabb.Max.X &&
		aabb.Min.Y <= aabb.Max.Y &&
		aabb.Min.Z <= aabb.Max.Z
}
