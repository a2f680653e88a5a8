package scene

import (
	"math"

	"github.com/df07/go-block-raytracer/pkg/core"
	"github.com/df07/go-block-raytracer/pkg/geometry"
	"github.com/mwindels/rtreego"
)

// boundEpsilon pads degenerate bounding box extents so every primitive
// gets a valid three dimensional rectangle in the spatial index
const boundEpsilon = 0.0001

// Scene holds the renderable world: primitives in insertion order, point
// lights, an ambient term and a background color. Primitives are also kept
// in an R-tree so nearest-hit queries can skip primitives whose bounds the
// ray never crosses. Query results are identical to a linear scan because
// candidates are tested against the full ray range and exact distance ties
// resolve by insertion order, never by index traversal order.
type Scene struct {
	Background   core.Vec3
	Ambient      core.Vec3
	Lights       []Light
	CameraConfig CameraConfig

	primitives []geometry.Primitive
	index      *rtreego.Rtree
}

// NewScene creates an empty scene with the given background color
func NewScene(background core.Vec3) *Scene {
	return &Scene{
		Background: background,
		index:      rtreego.NewTree(3, 2, 5),
	}
}

// entry ties a primitive to its insertion order inside the spatial index
type entry struct {
	primitive geometry.Primitive
	order     int
	rect      *rtreego.Rect
}

// Bounds implements rtreego.Spatial
func (e *entry) Bounds() *rtreego.Rect {
	return e.rect
}

// Add appends a primitive to the scene
func (s *Scene) Add(primitive geometry.Primitive) {
	s.index.Insert(&entry{
		primitive: primitive,
		order:     len(s.primitives),
		rect:      rectFromAABB(primitive.BoundingBox()),
	})
	s.primitives = append(s.primitives, primitive)
}

// AddLight appends a point light to the scene
func (s *Scene) AddLight(light Light) {
	s.Lights = append(s.Lights, light)
}

// PrimitiveCount returns the number of primitives in the scene
func (s *Scene) PrimitiveCount() int {
	return len(s.primitives)
}

// FindNearest returns the closest intersection along the ray, if any.
// Exact distance ties resolve to the earliest inserted primitive.
func (s *Scene) FindNearest(ray core.Ray, tMin, tMax float64) (*geometry.HitRecord, bool) {
	candidates := s.index.SearchCondition(func(rect *rtreego.Rect) bool {
		return rectAABB(rect).Hit(ray, tMin, tMax)
	})

	var best *geometry.HitRecord
	bestOrder := 0
	for _, candidate := range candidates {
		e := candidate.(*entry)
		hit, ok := e.primitive.Hit(ray, tMin, tMax)
		if !ok {
			continue
		}
		if best == nil || hit.T < best.T || (hit.T == best.T && e.order < bestOrder) {
			best = hit
			bestOrder = e.order
		}
	}

	return best, best != nil
}

// Occluded reports whether any primitive blocks the ray within the given
// range. Transparent blocks occlude like opaque ones, which is what gives
// hard shadows under glass.
func (s *Scene) Occluded(ray core.Ray, tMin, tMax float64) bool {
	candidates := s.index.SearchCondition(func(rect *rtreego.Rect) bool {
		return rectAABB(rect).Hit(ray, tMin, tMax)
	})

	for _, candidate := range candidates {
		e := candidate.(*entry)
		if _, ok := e.primitive.Hit(ray, tMin, tMax); ok {
			return true
		}
	}

	return false
}

// WorldBounds returns the union of all primitive bounding boxes. The
// second return value is false for an empty scene.
func (s *Scene) WorldBounds() (core.AABB, bool) {
	if len(s.primitives) == 0 {
		return core.AABB{}, false
	}

	bounds := s.primitives[0].BoundingBox()
	for _, primitive := range s.primitives[1:] {
		bounds = bounds.Union(primitive.BoundingBox())
	}
	return bounds, true
}

// rectFromAABB converts a bounding box into an index rectangle, padding
// flat extents to boundEpsilon
func rectFromAABB(box core.AABB) *rtreego.Rect {
	size := box.Size()
	rect, err := rtreego.NewRect(
		rtreego.Point{box.Min.X, box.Min.Y, box.Min.Z},
		[]float64{
			math.Max(size.X, boundEpsilon),
			math.Max(size.Y, boundEpsilon),
			math.Max(size.Z, boundEpsilon),
		},
	)
	if err != nil {
		// Only reachable with NaN bounds, which no valid primitive produces
		panic(err)
	}
	return rect
}

// rectAABB converts an index rectangle back into a bounding box for the
// ray precull
func rectAABB(rect *rtreego.Rect) core.AABB {
	return core.NewAABB(
		core.NewVec3(rect.PointCoord(0), rect.PointCoord(1), rect.PointCoord(2)),
		core.NewVec3(
			rect.PointCoord(0)+rect.LengthsCoord(0),
			rect.PointCoord(1)+rect.LengthsCoord(1),
			rect.PointCoord(2)+rect.LengthsCoord(2),
		),
	)
}
