package scene

import (
	"math"
	"testing"

	"github.com/df07/go-block-raytracer/pkg/core"
	"github.com/df07/go-block-raytracer/pkg/geometry"
	"github.com/df07/go-block-raytracer/pkg/material"
)

func mustBlock(t *testing.T, min, max core.Vec3, mat *material.Material) *geometry.Block {
	t.Helper()
	block, err := geometry.NewBlock(min, max, mat)
	if err != nil {
		t.Fatalf("NewBlock failed: %v", err)
	}
	return block
}

func mustSphere(t *testing.T, center core.Vec3, radius float64, mat *material.Material) *geometry.Sphere {
	t.Helper()
	sphere, err := geometry.NewSphere(center, radius, mat)
	if err != nil {
		t.Fatalf("NewSphere failed: %v", err)
	}
	return sphere
}

// linearNearest is the reference implementation the spatial index must
// agree with: scan every primitive, keep the smallest t, and let the
// earliest inserted primitive win exact ties.
func linearNearest(prims []geometry.Primitive, ray core.Ray, tMin, tMax float64) (*geometry.HitRecord, bool) {
	var best *geometry.HitRecord
	for _, p := range prims {
		if hit, ok := p.Hit(ray, tMin, tMax); ok {
			if best == nil || hit.T < best.T {
				best = hit
			}
		}
	}
	return best, best != nil
}

// clutteredScene builds an overlapping cluster of blocks and spheres and
// returns the primitives in insertion order alongside the scene
func clutteredScene(t *testing.T) (*Scene, []geometry.Primitive) {
	t.Helper()

	s := NewScene(core.NewVec3(0, 0, 0))
	mat := material.NewMatte(core.NewVec3(0.8, 0.3, 0.2))

	var prims []geometry.Primitive
	add := func(p geometry.Primitive) {
		s.Add(p)
		prims = append(prims, p)
	}

	for x := 0; x < 3; x++ {
		for z := 0; z < 3; z++ {
			min := core.NewVec3(float64(x), 0, float64(z))
			add(mustBlock(t, min, min.Add(core.NewVec3(1.2, 1.2, 1.2)), mat))
		}
	}
	add(mustSphere(t, core.NewVec3(1.5, 2.0, 1.5), 0.8, mat))
	add(mustSphere(t, core.NewVec3(0.5, 0.5, 0.5), 0.6, mat))

	return s, prims
}

func TestScene_FindNearestMatchesLinearScan(t *testing.T) {
	s, prims := clutteredScene(t)

	origins := []core.Vec3{
		core.NewVec3(1.5, 1.0, -3.0),
		core.NewVec3(-2.0, 2.5, 1.5),
		core.NewVec3(1.5, 5.0, 1.5),
		core.NewVec3(0.5, 0.5, 0.5), // inside the cluster
	}

	rays := 0
	hits := 0
	for _, origin := range origins {
		for i := 0; i < 12; i++ {
			for j := 0; j < 6; j++ {
				yaw := 2 * math.Pi * float64(i) / 12
				pitch := math.Pi*float64(j+1)/8 - math.Pi/2
				dir := core.NewVec3(
					math.Cos(pitch)*math.Cos(yaw),
					math.Sin(pitch),
					math.Cos(pitch)*math.Sin(yaw),
				)
				ray := core.NewRay(origin, dir)
				rays++

				want, wantOK := linearNearest(prims, ray, 0.001, 100.0)
				got, gotOK := s.FindNearest(ray, 0.001, 100.0)

				if gotOK != wantOK {
					t.Fatalf("ray from %+v dir %+v: hit=%v, linear scan says %v", origin, dir, gotOK, wantOK)
				}
				if !gotOK {
					continue
				}
				hits++
				if got.T != want.T {
					t.Errorf("ray from %+v dir %+v: t=%v, linear scan says %v", origin, dir, got.T, want.T)
				}
				if got.Material != want.Material {
					t.Errorf("ray from %+v dir %+v: picked a different primitive than the linear scan", origin, dir)
				}
			}
		}
	}

	if hits == 0 {
		t.Fatalf("none of the %d rays hit anything, scene geometry is wrong", rays)
	}
}

func TestScene_FindNearestTieBreak(t *testing.T) {
	first := material.NewMatte(core.NewVec3(1, 0, 0))
	second := material.NewMatte(core.NewVec3(0, 1, 0))

	s := NewScene(core.NewVec3(0, 0, 0))
	s.Add(mustBlock(t, core.NewVec3(-1, -1, -1), core.NewVec3(1, 1, 1), first))
	s.Add(mustBlock(t, core.NewVec3(-1, -1, -1), core.NewVec3(1, 1, 1), second))

	// Both blocks are coincident, so every ray hits them at identical
	// distances and the first inserted one must win.
	ray := core.NewRay(core.NewVec3(0, 0, -5), core.NewVec3(0, 0, 1))
	hit, ok := s.FindNearest(ray, 0.001, 100.0)
	if !ok {
		t.Fatal("expected a hit")
	}
	if hit.T != 4.0 {
		t.Errorf("hit.T = %v, want 4", hit.T)
	}
	if hit.Material != first {
		t.Error("tie resolved to the later inserted primitive")
	}
}

func TestScene_FindNearestRange(t *testing.T) {
	mat := material.NewMatte(core.NewVec3(0.5, 0.5, 0.5))
	s := NewScene(core.NewVec3(0, 0, 0))
	s.Add(mustSphere(t, core.NewVec3(0, 0, 5), 1.0, mat))

	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1))

	if _, ok := s.FindNearest(ray, 0.001, 3.0); ok {
		t.Error("hit beyond tMax should be rejected")
	}
	if hit, ok := s.FindNearest(ray, 0.001, 4.0); !ok || hit.T != 4.0 {
		t.Errorf("hit exactly at tMax should count, got ok=%v", ok)
	}
	if hit, ok := s.FindNearest(ray, 4.5, 100.0); !ok || hit.T != 6.0 {
		t.Errorf("expected the far side of the sphere, got ok=%v", ok)
	}
}

func TestScene_Occluded(t *testing.T) {
	opaque := material.NewMatte(core.NewVec3(0.5, 0.5, 0.5))
	glass, err := material.NewGlass(1.5)
	if err != nil {
		t.Fatalf("NewGlass failed: %v", err)
	}

	s := NewScene(core.NewVec3(0, 0, 0))
	s.Add(mustBlock(t, core.NewVec3(2, -1, -1), core.NewVec3(3, 1, 1), opaque))
	s.Add(mustBlock(t, core.NewVec3(-1, 2, -1), core.NewVec3(1, 3, 1), glass))

	origin := core.NewVec3(0, 0, 0)

	tests := []struct {
		name string
		dir  core.Vec3
		tMax float64
		want bool
	}{
		{"blocked by opaque block", core.NewVec3(1, 0, 0), 10.0, true},
		{"clear path", core.NewVec3(-1, 0, 0), 10.0, false},
		{"glass still casts a full shadow", core.NewVec3(0, 1, 0), 10.0, true},
		{"blocker beyond the light", core.NewVec3(1, 0, 0), 1.5, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.Occluded(core.NewRay(origin, tt.dir), 0.001, tt.tMax)
			if got != tt.want {
				t.Errorf("Occluded = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestScene_WorldBounds(t *testing.T) {
	s := NewScene(core.NewVec3(0, 0, 0))
	if _, ok := s.WorldBounds(); ok {
		t.Error("empty scene should report no bounds")
	}

	mat := material.NewMatte(core.NewVec3(0.5, 0.5, 0.5))
	s.Add(mustBlock(t, core.NewVec3(0, 0, 0), core.NewVec3(1, 2, 3), mat))
	s.Add(mustSphere(t, core.NewVec3(5, 5, 5), 1.0, mat))

	bounds, ok := s.WorldBounds()
	if !ok {
		t.Fatal("expected bounds")
	}
	if !bounds.Min.Equals(core.NewVec3(0, 0, 0)) {
		t.Errorf("bounds.Min = %+v, want origin", bounds.Min)
	}
	if !bounds.Max.Equals(core.NewVec3(6, 6, 6)) {
		t.Errorf("bounds.Max = %+v, want (6,6,6)", bounds.Max)
	}
	if s.PrimitiveCount() != 2 {
		t.Errorf("PrimitiveCount = %d, want 2", s.PrimitiveCount())
	}
}

func TestScene_FlatPrimitiveBounds(t *testing.T) {
	// A block flattened to a plane must still be indexable and hittable.
	mat := material.NewMatte(core.NewVec3(0.5, 0.5, 0.5))
	s := NewScene(core.NewVec3(0, 0, 0))
	s.Add(mustBlock(t, core.NewVec3(0, 0, 0), core.NewVec3(2, 0.0001, 2), mat))

	ray := core.NewRay(core.NewVec3(1, 5, 1), core.NewVec3(0, -1, 0))
	hit, ok := s.FindNearest(ray, 0.001, 100.0)
	if !ok {
		t.Fatal("expected a hit on the thin block")
	}
	if math.Abs(hit.T-4.9999) > 1e-9 {
		t.Errorf("hit.T = %v, want 4.9999", hit.T)
	}
}
