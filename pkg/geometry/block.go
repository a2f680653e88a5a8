package geometry

import (
	"fmt"

	"github.com/df07/go-block-raytracer/pkg/core"
	"github.com/df07/go-block-raytracer/pkg/material"
)

// FaceID identifies one of the six faces of a block
type FaceID int

const (
	FaceFront  FaceID = iota // +Z
	FaceBack                 // -Z
	FaceLeft                 // -X
	FaceRight                // +X
	FaceTop                  // +Y
	FaceBottom               // -Y
)

var faceNames = [6]string{"front", "back", "left", "right", "top", "bottom"}

func (f FaceID) String() string {
	if f < 0 || int(f) >= len(faceNames) {
		return fmt.Sprintf("face(%d)", int(f))
	}
	return faceNames[f]
}

// ParseFace resolves a face name like "front" or "top" to its FaceID
func ParseFace(name string) (FaceID, error) {
	for i, n := range faceNames {
		if n == name {
			return FaceID(i), nil
		}
	}
	return 0, fmt.Errorf("geometry: unknown face %q", name)
}

// Block is a solid axis-aligned box. Each face can carry its own color
// source; faces without one fall back to the material's diffuse source.
type Block struct {
	Bounds   core.AABB
	Material *material.Material

	faces [6]material.ColorSource
}

// NewBlock creates a block spanning min to max with a single material
func NewBlock(min, max core.Vec3, mat *material.Material) (*Block, error) {
	if mat == nil {
		return nil, fmt.Errorf("geometry: block requires a material")
	}
	if min.X >= max.X || min.Y >= max.Y || min.Z >= max.Z {
		return nil, fmt.Errorf("geometry: block corners must satisfy min < max on every axis, got min=%v max=%v", min, max)
	}
	return &Block{
		Bounds:   core.NewAABB(min, max),
		Material: mat,
	}, nil
}

// NewTexturedBlock creates a block with per-face color sources. Faces
// missing from the map use the material's diffuse source.
func NewTexturedBlock(min, max core.Vec3, mat *material.Material, faces map[FaceID]material.ColorSource) (*Block, error) {
	block, err := NewBlock(min, max, mat)
	if err != nil {
		return nil, err
	}
	for face, source := range faces {
		if face < 0 || int(face) >= len(block.faces) {
			return nil, fmt.Errorf("geometry: invalid face %v", face)
		}
		block.faces[face] = source
	}
	return block, nil
}

// SetFaceSource assigns a color source to one face
func (b *Block) SetFaceSource(face FaceID, source material.ColorSource) error {
	if face < 0 || int(face) >= len(b.faces) {
		return fmt.Errorf("geometry: invalid face %v", face)
	}
	b.faces[face] = source
	return nil
}

// Hit tests if a ray intersects the block. Rays starting outside hit the
// entry face; rays starting inside hit the exit face, which is what a
// refracted ray leaving the block sees.
func (b *Block) Hit(ray core.Ray, tMin, tMax float64) (*HitRecord, bool) {
	tEnter, tExit, enterAxis, exitAxis, ok := b.Bounds.HitInterval(ray, tMin, tMax)
	if !ok {
		return nil, false
	}

	// Prefer the entry point, falling back to the exit when the entry lies
	// behind the valid range
	t, axis := tEnter, enterAxis
	entering := true
	if t <= tMin {
		t, axis = tExit, exitAxis
		entering = false
		if t > tMax {
			return nil, false
		}
	}

	var direction float64
	switch axis {
	case 0:
		direction = ray.Direction.X
	case 1:
		direction = ray.Direction.Y
	default:
		direction = ray.Direction.Z
	}

	// A ray moving along a positive axis crosses the min plane on entry
	// and the max plane on exit
	minSide := (direction > 0) == entering

	face := b.faceFor(axis, minSide)

	hitRecord := &HitRecord{
		T:        t,
		Point:    ray.At(t),
		Material: b.Material,
	}
	hitRecord.SetFaceNormal(ray, faceNormals[face])
	hitRecord.UV = b.faceUV(face, hitRecord.Point)
	hitRecord.Diffuse = b.faceSource(face)

	return hitRecord, true
}

// BoundingBox returns the axis-aligned bounding box for this block
func (b *Block) BoundingBox() core.AABB {
	return b.Bounds
}

var faceNormals = [6]core.Vec3{
	FaceFront:  {X: 0, Y: 0, Z: 1},
	FaceBack:   {X: 0, Y: 0, Z: -1},
	FaceLeft:   {X: -1, Y: 0, Z: 0},
	FaceRight:  {X: 1, Y: 0, Z: 0},
	FaceTop:    {X: 0, Y: 1, Z: 0},
	FaceBottom: {X: 0, Y: -1, Z: 0},
}

func (b *Block) faceFor(axis int, minSide bool) FaceID {
	switch axis {
	case 0:
		if minSide {
			return FaceLeft
		}
		return FaceRight
	case 1:
		if minSide {
			return FaceBottom
		}
		return FaceTop
	default:
		if minSide {
			return FaceBack
		}
		return FaceFront
	}
}

// faceUV maps a surface point to face-local texture coordinates with u
// running right and v running up as seen from outside the block
func (b *Block) faceUV(face FaceID, point core.Vec3) core.Vec2 {
	min := b.Bounds.Min
	max := b.Bounds.Max
	size := b.Bounds.Size()

	var u, v float64
	switch face {
	case FaceFront:
		u = (point.X - min.X) / size.X
		v = (point.Y - min.Y) / size.Y
	case FaceBack:
		u = (max.X - point.X) / size.X
		v = (point.Y - min.Y) / size.Y
	case FaceLeft:
		u = (point.Z - min.Z) / size.Z
		v = (point.Y - min.Y) / size.Y
	case FaceRight:
		u = (max.Z - point.Z) / size.Z
		v = (point.Y - min.Y) / size.Y
	case FaceTop:
		u = (point.X - min.X) / size.X
		v = (max.Z - point.Z) / size.Z
	case FaceBottom:
		u = (point.X - min.X) / size.X
		v = (point.Z - min.Z) / size.Z
	}

	return core.NewVec2(clampUnit(u), clampUnit(v))
}

func (b *Block) faceSource(face FaceID) material.ColorSource {
	if source := b.faces[face]; source != nil {
		return source
	}
	return b.Material.Diffuse
}

func clampUnit(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
