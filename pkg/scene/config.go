package scene

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/df07/go-block-raytracer/pkg/core"
	"github.com/df07/go-block-raytracer/pkg/geometry"
	"github.com/df07/go-block-raytracer/pkg/material"
)

// IssueLevel classifies a problem found while building a scene from a
// config file
type IssueLevel int

const (
	// IssueWarning marks a recoverable problem patched with a fallback
	IssueWarning IssueLevel = iota
	// IssueError marks a problem that prevents the scene from building
	IssueError
)

func (l IssueLevel) String() string {
	if l == IssueError {
		return "error"
	}
	return "warning"
}

// Issue describes one problem found in a scene config. Warnings leave a
// visible fallback in the render; errors fail the build.
type Issue struct {
	Level   IssueLevel
	Code    string
	Message string
	Path    string // JSON-ish locator such as "blocks[2].faces.top"
}

func (i Issue) String() string {
	return fmt.Sprintf("%s %s at %s: %s", i.Level, i.Code, i.Path, i.Message)
}

// Config is the on-disk JSON description of a scene. Name and Description
// are listing metadata and do not affect the build.
type Config struct {
	Name        string `json:"name"`
	Description string `json:"description"`

	Background jsonVec                 `json:"background"`
	Ambient    jsonVec                 `json:"ambient"`
	Camera     CameraSpec              `json:"camera"`
	Textures   map[string]TextureSpec  `json:"textures"`
	Materials  map[string]MaterialSpec `json:"materials"`
	Blocks     []BlockSpec             `json:"blocks"`
	Spheres    []SphereSpec            `json:"spheres"`
	Lights     []LightSpec             `json:"lights"`
}

// CameraSpec mirrors CameraConfig in the config file
type CameraSpec struct {
	Eye         jsonVec `json:"eye"`
	Target      jsonVec `json:"target"`
	VFov        float64 `json:"vfov"`
	MinDistance float64 `json:"minDistance"`
	MaxDistance float64 `json:"maxDistance"`
}

// TextureSpec describes one named color source. Type selects which of the
// remaining fields apply.
type TextureSpec struct {
	Type string `json:"type"` // solid, checker, gradient, speckle, atlas

	Color  jsonVec `json:"color"`  // solid
	Color1 jsonVec `json:"color1"` // checker
	Color2 jsonVec `json:"color2"` // checker
	Size   int     `json:"size"`   // checker cell size in pixels

	Top    jsonVec `json:"top"`    // gradient
	Bottom jsonVec `json:"bottom"` // gradient

	Base      jsonVec `json:"base"`      // speckle
	Variation float64 `json:"variation"` // speckle
	Seed      int64   `json:"seed"`      // speckle

	Name string `json:"name"` // atlas sheet name
	Cols int    `json:"cols"` // atlas grid columns, 0 for the whole sheet
	Rows int    `json:"rows"` // atlas grid rows
	Col  int    `json:"col"`  // atlas cell column
	Row  int    `json:"row"`  // atlas cell row
}

// MaterialSpec describes one named material. Emissive materials carry only
// their emission; shaded materials combine a diffuse source with albedo
// weights.
type MaterialSpec struct {
	Emissive *jsonVec `json:"emissive"`

	Texture         string     `json:"texture"` // diffuse texture name, empty for solid color
	Color           jsonVec    `json:"color"`
	Albedo          AlbedoSpec `json:"albedo"`
	SpecularExp     float64    `json:"specularExp"`
	RefractiveIndex float64    `json:"refractiveIndex"`
}

// AlbedoSpec mirrors material.Albedo in the config file
type AlbedoSpec struct {
	Diffuse  float64 `json:"diffuse"`
	Specular float64 `json:"specular"`
	Reflect  float64 `json:"reflect"`
	Refract  float64 `json:"refract"`
}

// BlockSpec describes one axis-aligned block
type BlockSpec struct {
	Min      jsonVec           `json:"min"`
	Max      jsonVec           `json:"max"`
	Material string            `json:"material"`
	Faces    map[string]string `json:"faces"` // face name to texture name
}

// SphereSpec describes one sphere
type SphereSpec struct {
	Center   jsonVec `json:"center"`
	Radius   float64 `json:"radius"`
	Material string  `json:"material"`
}

// LightSpec describes one point light
type LightSpec struct {
	Position  jsonVec `json:"position"`
	Color     jsonVec `json:"color"`
	Intensity float64 `json:"intensity"`
	Falloff   string  `json:"falloff"` // "inverse-square" (default) or "none"
}

// jsonVec decodes a [x, y, z] array
type jsonVec [3]float64

func (v jsonVec) vec3() core.Vec3 {
	return core.NewVec3(v[0], v[1], v[2])
}

// LoadConfig reads and decodes a scene config file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene config: %w", err)
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse scene config: %w", err)
	}
	return &config, nil
}

// builder accumulates issues while turning a Config into a Scene
type builder struct {
	atlas    *material.Atlas
	issues   []Issue
	textures map[string]material.ColorSource
}

func (b *builder) warn(code, path, format string, args ...interface{}) {
	b.issues = append(b.issues, Issue{
		Level:   IssueWarning,
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Path:    path,
	})
}

func (b *builder) fail(code, path, format string, args ...interface{}) {
	b.issues = append(b.issues, Issue{
		Level:   IssueError,
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Path:    path,
	})
}

// Build turns the config into a renderable scene. Missing textures degrade
// to the fallback color with a warning; invalid geometry, materials or
// lights are reported as errors and fail the build. The issue list is
// returned in both cases.
func (c *Config) Build(atlas *material.Atlas) (*Scene, []Issue, error) {
	b := &builder{
		atlas:    atlas,
		textures: make(map[string]material.ColorSource),
	}

	s := NewScene(c.Background.vec3())
	s.Ambient = c.Ambient.vec3()
	s.CameraConfig = CameraConfig{
		Eye:         c.Camera.Eye.vec3(),
		Target:      c.Camera.Target.vec3(),
		VFov:        c.Camera.VFov,
		MinDistance: c.Camera.MinDistance,
		MaxDistance: c.Camera.MaxDistance,
	}

	for name, spec := range c.Textures {
		b.textures[name] = b.buildTexture(name, spec)
	}

	materials := make(map[string]*material.Material)
	for name, spec := range c.Materials {
		if mat := b.buildMaterial(name, spec); mat != nil {
			materials[name] = mat
		}
	}

	for i, spec := range c.Blocks {
		path := fmt.Sprintf("blocks[%d]", i)
		mat, ok := materials[spec.Material]
		if !ok {
			b.fail("unknown-material", path, "material %q is not defined", spec.Material)
			continue
		}

		faces := make(map[geometry.FaceID]material.ColorSource)
		for faceName, textureName := range spec.Faces {
			face, err := geometry.ParseFace(faceName)
			if err != nil {
				b.warn("unknown-face", path+".faces."+faceName, "%v", err)
				continue
			}
			faces[face] = b.resolveTexture(textureName, path+".faces."+faceName)
		}

		block, err := geometry.NewTexturedBlock(spec.Min.vec3(), spec.Max.vec3(), mat, faces)
		if err != nil {
			b.fail("bad-geometry", path, "%v", err)
			continue
		}
		s.Add(block)
	}

	for i, spec := range c.Spheres {
		path := fmt.Sprintf("spheres[%d]", i)
		mat, ok := materials[spec.Material]
		if !ok {
			b.fail("unknown-material", path, "material %q is not defined", spec.Material)
			continue
		}

		sphere, err := geometry.NewSphere(spec.Center.vec3(), spec.Radius, mat)
		if err != nil {
			b.fail("bad-geometry", path, "%v", err)
			continue
		}
		s.Add(sphere)
	}

	for i, spec := range c.Lights {
		path := fmt.Sprintf("lights[%d]", i)
		if spec.Intensity < 0 {
			b.fail("bad-light", path, "intensity must be non-negative, got %v", spec.Intensity)
			continue
		}

		light := Light{
			Position:  spec.Position.vec3(),
			Color:     spec.Color.vec3(),
			Intensity: spec.Intensity,
		}
		switch spec.Falloff {
		case "", "inverse-square":
			light.Falloff = FalloffInverseSquare
		case "none":
			light.Falloff = FalloffNone
		default:
			b.warn("unknown-falloff", path, "unknown falloff %q, using inverse-square", spec.Falloff)
		}
		s.AddLight(light)
	}

	for _, issue := range b.issues {
		if issue.Level == IssueError {
			return nil, b.issues, fmt.Errorf("scene config has errors: %s", issue.Message)
		}
	}

	return s, b.issues, nil
}

// buildTexture turns a texture spec into a color source, degrading to the
// fallback color on problems
func (b *builder) buildTexture(name string, spec TextureSpec) material.ColorSource {
	path := "textures." + name

	switch spec.Type {
	case "solid":
		return material.NewSolidColor(spec.Color.vec3())

	case "checker":
		size := spec.Size
		if size <= 0 {
			size = 16
		}
		return material.NewCheckerboardTexture(size*2, size*2, size, spec.Color1.vec3(), spec.Color2.vec3())

	case "gradient":
		return material.NewGradientTexture(16, 64, spec.Top.vec3(), spec.Bottom.vec3())

	case "speckle":
		variation := spec.Variation
		if variation <= 0 {
			variation = 0.2
		}
		return material.NewSpeckleTexture(16, 16, spec.Base.vec3(), variation, spec.Seed)

	case "atlas":
		if _, ok := b.atlas.Lookup(spec.Name); !ok {
			b.warn("unknown-texture", path, "atlas sheet %q is not loaded, using the fallback color", spec.Name)
			return material.NewSolidColor(material.FallbackColor)
		}
		if spec.Cols > 0 || spec.Rows > 0 {
			return b.atlas.GridSource(spec.Name, spec.Cols, spec.Rows, spec.Col, spec.Row)
		}
		return b.atlas.Source(spec.Name)

	default:
		b.warn("unknown-texture-type", path, "unknown texture type %q, using the fallback color", spec.Type)
		return material.NewSolidColor(material.FallbackColor)
	}
}

// buildMaterial turns a material spec into a material, reporting an error
// issue and returning nil when construction fails
func (b *builder) buildMaterial(name string, spec MaterialSpec) *material.Material {
	path := "materials." + name

	if spec.Emissive != nil {
		mat, err := material.NewEmissive(spec.Emissive.vec3())
		if err != nil {
			b.fail("bad-material", path, "%v", err)
			return nil
		}
		return mat
	}

	var diffuse material.ColorSource
	if spec.Texture != "" {
		diffuse = b.resolveTexture(spec.Texture, path+".texture")
	} else {
		diffuse = material.NewSolidColor(spec.Color.vec3())
	}

	mat, err := material.New(
		diffuse,
		material.Albedo{
			Diffuse:  spec.Albedo.Diffuse,
			Specular: spec.Albedo.Specular,
			Reflect:  spec.Albedo.Reflect,
			Refract:  spec.Albedo.Refract,
		},
		spec.SpecularExp,
		spec.RefractiveIndex,
	)
	if err != nil {
		b.fail("bad-material", path, "%v", err)
		return nil
	}
	return mat
}

// resolveTexture looks up a named texture, degrading to the fallback
// color with a warning when the name is unknown
func (b *builder) resolveTexture(name, path string) material.ColorSource {
	if source, ok := b.textures[name]; ok {
		return source
	}
	b.warn("unknown-texture", path, "texture %q is not defined, using the fallback color", name)
	return material.NewSolidColor(material.FallbackColor)
}
