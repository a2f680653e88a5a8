package scene

import (
	"github.com/df07/go-block-raytracer/pkg/core"
	"github.com/df07/go-block-raytracer/pkg/geometry"
	"github.com/df07/go-block-raytracer/pkg/material"
)

// SkyColor is the default background, a clear midday blue
var SkyColor = core.NewVec3(69.0/255.0, 142.0/255.0, 228.0/255.0)

// PapercraftFaces maps the six block faces onto the 3x4 papercraft grid
// layout used by the bundled block sheets: front on the top row, the side
// band below it, back beneath that and the top tile at the bottom.
func PapercraftFaces(atlas *material.Atlas, name string) map[geometry.FaceID]material.ColorSource {
	return map[geometry.FaceID]material.ColorSource{
		geometry.FaceFront:  atlas.GridSource(name, 3, 4, 1, 0),
		geometry.FaceLeft:   atlas.GridSource(name, 3, 4, 0, 1),
		geometry.FaceBottom: atlas.GridSource(name, 3, 4, 1, 1),
		geometry.FaceRight:  atlas.GridSource(name, 3, 4, 2, 1),
		geometry.FaceBack:   atlas.GridSource(name, 3, 4, 1, 2),
		geometry.FaceTop:    atlas.GridSource(name, 3, 4, 1, 3),
	}
}

// grassFaces returns per-face sources for a terrain block: grass on top,
// dirt underneath and a grass-over-dirt band on the sides. Falls back to
// procedural textures when the atlas has no "grass" sheet.
func grassFaces(atlas *material.Atlas) map[geometry.FaceID]material.ColorSource {
	if _, ok := atlas.Lookup("grass"); ok {
		return PapercraftFaces(atlas, "grass")
	}

	grassTop := material.NewSpeckleTexture(16, 16, core.NewVec3(0.30, 0.55, 0.22), 0.25, 7)
	dirt := material.NewSpeckleTexture(16, 16, core.NewVec3(0.45, 0.32, 0.22), 0.2, 11)
	side := material.NewGradientTexture(16, 16, core.NewVec3(0.30, 0.55, 0.22), core.NewVec3(0.45, 0.32, 0.22))

	return map[geometry.FaceID]material.ColorSource{
		geometry.FaceTop:    grassTop,
		geometry.FaceBottom: dirt,
		geometry.FaceFront:  side,
		geometry.FaceBack:   side,
		geometry.FaceLeft:   side,
		geometry.FaceRight:  side,
	}
}

// NewDioramaScene builds the default diorama: a grass terrain carrying a
// glass block, a glowing lamp block and a polished sphere. Textures come
// from the atlas when the expected sheets are registered and fall back to
// procedural patterns otherwise, so the scene renders with or without
// assets on disk.
func NewDioramaScene(atlas *material.Atlas) (*Scene, error) {
	s := NewScene(SkyColor)
	s.Ambient = core.NewVec3(0.12, 0.12, 0.14)
	s.CameraConfig = CameraConfig{
		Eye:    core.NewVec3(4.5, 3.5, 7.0),
		Target: core.NewVec3(2.0, 1.0, 2.0),
	}

	// Terrain materials share one instance across all terrain blocks
	grass, err := material.New(
		material.NewSolidColor(core.NewVec3(0.30, 0.55, 0.22)),
		material.Albedo{Diffuse: 1.0, Specular: 0.05},
		10.0,
		0,
	)
	if err != nil {
		return nil, err
	}
	faces := grassFaces(atlas)

	// A 4x4 slab of unit terrain blocks
	for x := 0; x < 4; x++ {
		for z := 0; z < 4; z++ {
			block, err := geometry.NewTexturedBlock(
				core.NewVec3(float64(x), 0, float64(z)),
				core.NewVec3(float64(x+1), 1, float64(z+1)),
				grass,
				faces,
			)
			if err != nil {
				return nil, err
			}
			s.Add(block)
		}
	}

	// Glass block sitting on the terrain
	glassMat, err := material.NewGlass(1.5)
	if err != nil {
		return nil, err
	}
	glass, err := geometry.NewBlock(core.NewVec3(1, 1, 1), core.NewVec3(2, 2, 2), glassMat)
	if err != nil {
		return nil, err
	}
	s.Add(glass)

	// Lamp block with a warm glow
	lampMat, err := material.NewEmissive(core.NewVec3(2.4, 2.0, 1.2))
	if err != nil {
		return nil, err
	}
	lamp, err := geometry.NewBlock(core.NewVec3(3, 1, 0), core.NewVec3(4, 2, 1), lampMat)
	if err != nil {
		return nil, err
	}
	s.Add(lamp)

	// Polished sphere, reflective but opaque
	ivoryMat, err := material.New(
		material.NewSolidColor(core.NewVec3(0.39, 0.39, 0.31)),
		material.Albedo{Diffuse: 0.6, Specular: 0.3, Reflect: 0.6},
		50.0,
		0,
	)
	if err != nil {
		return nil, err
	}
	sphere, err := geometry.NewSphere(core.NewVec3(0.8, 1.6, 2.8), 0.6, ivoryMat)
	if err != nil {
		return nil, err
	}
	s.Add(sphere)

	// Warm key light with physical falloff plus a faint cool fill
	s.AddLight(NewLight(core.NewVec3(8, 9, 6), core.NewVec3(1.0, 0.96, 0.88), 90))
	s.AddLight(Light{
		Position:  core.NewVec3(-6, 4, -4),
		Color:     core.NewVec3(0.7, 0.8, 1.0),
		Intensity: 0.15,
		Falloff:   FalloffNone,
	})

	return s, nil
}

// NewShowcaseScene builds a small material test: a matte red block and a
// glass block on a checkered ground slab under two lights.
func NewShowcaseScene() (*Scene, error) {
	s := NewScene(SkyColor)
	s.Ambient = core.NewVec3(0.08, 0.08, 0.08)
	s.CameraConfig = CameraConfig{
		Eye:    core.NewVec3(2.5, 1.8, 4.5),
		Target: core.NewVec3(0.4, 0.0, 0.0),
	}

	checker := material.NewCheckerboardTexture(
		128, 128, 16,
		core.NewVec3(0.85, 0.85, 0.85),
		core.NewVec3(0.35, 0.35, 0.35),
	)
	ground, err := geometry.NewBlock(
		core.NewVec3(-4, -1.5, -4),
		core.NewVec3(4, -0.5, 4),
		material.NewTexturedMatte(checker),
	)
	if err != nil {
		return nil, err
	}
	s.Add(ground)

	red, err := geometry.NewBlock(
		core.NewVec3(-0.5, -0.5, -0.5),
		core.NewVec3(0.5, 0.5, 0.5),
		material.NewMatte(core.NewVec3(0.9, 0.05, 0.05)),
	)
	if err != nil {
		return nil, err
	}
	s.Add(red)

	glassMat, err := material.NewGlass(1.5)
	if err != nil {
		return nil, err
	}
	glass, err := geometry.NewBlock(
		core.NewVec3(0.9, -0.5, -0.2),
		core.NewVec3(1.9, 0.5, 0.8),
		glassMat,
	)
	if err != nil {
		return nil, err
	}
	s.Add(glass)

	s.AddLight(NewLight(core.NewVec3(3, 4, 5), core.NewVec3(1, 1, 1), 40))
	s.AddLight(Light{
		Position:  core.NewVec3(-4, 2, 3),
		Color:     core.NewVec3(0.8, 0.85, 1.0),
		Intensity: 0.1,
		Falloff:   FalloffNone,
	})

	return s, nil
}
