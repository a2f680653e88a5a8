package material

import (
	"fmt"
	"math"

	"github.com/df07/go-block-raytracer/pkg/core"
)

// FallbackColor is returned for any texture lookup that cannot be resolved:
// unknown atlas names, invalid atlas regions, or textures without pixel
// data. The loud magenta makes missing textures obvious in renders without
// ever failing a pass.
var FallbackColor = core.NewVec3(1, 0, 1)

// Atlas is a registry of named textures. Scenes reference textures by name
// so that image loading stays outside the engine; an atlas with the needed
// names is passed in by the caller. Lookups against a nil atlas or an
// unregistered name resolve to FallbackColor.
type Atlas struct {
	textures map[string]*ImageTexture
}

// NewAtlas creates an empty texture atlas
func NewAtlas() *Atlas {
	return &Atlas{textures: make(map[string]*ImageTexture)}
}

// Register adds a texture under the given name, replacing any previous entry
func (a *Atlas) Register(name string, tex *ImageTexture) {
	a.textures[name] = tex
}

// Lookup returns the texture registered under name
func (a *Atlas) Lookup(name string) (*ImageTexture, bool) {
	if a == nil {
		return nil, false
	}
	tex, ok := a.textures[name]
	return tex, ok
}

// Len returns the number of registered textures
func (a *Atlas) Len() int {
	if a == nil {
		return 0
	}
	return len(a.textures)
}

// Source returns a color source for the named texture, falling back to a
// solid FallbackColor source when the name is not registered.
func (a *Atlas) Source(name string) ColorSource {
	if tex, ok := a.Lookup(name); ok {
		return tex
	}
	return NewSolidColor(FallbackColor)
}

// GridSource returns a color source for one cell of the named texture
// addressed as a cols x rows grid with cell (0,0) in the top-left corner.
// Unresolvable names or invalid grid coordinates fall back to a solid
// FallbackColor source.
func (a *Atlas) GridSource(name string, cols, rows, col, row int) ColorSource {
	tex, ok := a.Lookup(name)
	if !ok {
		return NewSolidColor(FallbackColor)
	}
	region, err := NewGridRegion(tex, cols, rows, col, row)
	if err != nil {
		return NewSolidColor(FallbackColor)
	}
	return region
}

// GridRegion samples a single cell of a larger texture laid out as a
// uniform grid, the way block face textures are packed into one image.
// Rows are counted from the top of the image.
type GridRegion struct {
	Texture *ImageTexture
	Cols    int
	Rows    int
	Col     int
	Row     int
}

// NewGridRegion creates a grid cell region over the given texture
func NewGridRegion(tex *ImageTexture, cols, rows, col, row int) (*GridRegion, error) {
	if tex == nil {
		return nil, fmt.Errorf("atlas: grid region requires a texture")
	}
	if cols <= 0 || rows <= 0 {
		return nil, fmt.Errorf("atlas: grid must have positive dimensions, got %dx%d", cols, rows)
	}
	if col < 0 || col >= cols || row < 0 || row >= rows {
		return nil, fmt.Errorf("atlas: cell (%d,%d) outside %dx%d grid", col, row, cols, rows)
	}
	return &GridRegion{Texture: tex, Cols: cols, Rows: rows, Col: col, Row: row}, nil
}

// Evaluate maps the face-local UV into the cell and samples the texture
func (g *GridRegion) Evaluate(uv core.Vec2, point core.Vec3) core.Vec3 {
	// Keep samples strictly inside the cell so face borders never pick up
	// a neighboring tile after the flip to image coordinates
	const cellEdge = 1e-9
	u := math.Min(math.Max(uv.X, cellEdge), 1-cellEdge)
	v := math.Min(math.Max(uv.Y, cellEdge), 1-cellEdge)

	// Row 0 sits at the top of the image, which is v=1 in texture space
	cellU := (float64(g.Col) + u) / float64(g.Cols)
	cellV := (float64(g.Rows-1-g.Row) + v) / float64(g.Rows)

	return g.Texture.Evaluate(core.NewVec2(cellU, cellV), point)
}
