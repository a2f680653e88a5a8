package material

import (
	"math"
	"testing"

	"github.com/df07/go-block-raytracer/pkg/core"
)

func TestCheckerboardTexture(t *testing.T) {
	white := core.NewVec3(1, 1, 1)
	black := core.NewVec3(0, 0, 0)
	tex := NewCheckerboardTexture(4, 4, 2, white, black)

	if tex.Width != 4 || tex.Height != 4 {
		t.Fatalf("Texture is %dx%d, want 4x4", tex.Width, tex.Height)
	}

	// 2x2 checks: pixel (0,0) sits in check (0,0), pixel (2,0) in check (1,0)
	tests := []struct {
		x, y int
		want core.Vec3
	}{
		{0, 0, white},
		{1, 1, white},
		{2, 0, black},
		{0, 2, black},
		{2, 2, white},
		{3, 3, white},
	}
	for _, tc := range tests {
		got := tex.Pixels[tc.y*tex.Width+tc.x]
		if !got.Equals(tc.want) {
			t.Errorf("Pixel (%d,%d) = %v, want %v", tc.x, tc.y, got, tc.want)
		}
	}
}

func TestUVDebugTexture(t *testing.T) {
	tex := NewUVDebugTexture(3, 3)

	// Corners span the full UV range
	topLeft := tex.Pixels[0]
	if !topLeft.Equals(core.NewVec3(0, 0, 0)) {
		t.Errorf("Top-left = %v, want (0,0,0)", topLeft)
	}
	bottomRight := tex.Pixels[2*3+2]
	if !bottomRight.Equals(core.NewVec3(1, 1, 0)) {
		t.Errorf("Bottom-right = %v, want (1,1,0)", bottomRight)
	}
}

func TestGradientTexture(t *testing.T) {
	top := core.NewVec3(1, 0, 0)
	bottom := core.NewVec3(0, 0, 1)
	tex := NewGradientTexture(2, 3, top, bottom)

	// Top row is pure top color, bottom row pure bottom color
	if !tex.Pixels[0].Equals(top) {
		t.Errorf("Top row = %v, want %v", tex.Pixels[0], top)
	}
	if !tex.Pixels[2*2].Equals(bottom) {
		t.Errorf("Bottom row = %v, want %v", tex.Pixels[2*2], bottom)
	}

	// Middle row is the halfway blend
	mid := tex.Pixels[1*2]
	want := core.NewVec3(0.5, 0, 0.5)
	const tolerance = 1e-9
	if math.Abs(mid.X-want.X) > tolerance || math.Abs(mid.Y-want.Y) > tolerance || math.Abs(mid.Z-want.Z) > tolerance {
		t.Errorf("Middle row = %v, want %v", mid, want)
	}

	// Rows are constant across X
	if !tex.Pixels[1*2].Equals(tex.Pixels[1*2+1]) {
		t.Error("Gradient rows should be constant across X")
	}
}

func TestSpeckleTexture(t *testing.T) {
	base := core.NewVec3(0.4, 0.5, 0.3)
	tex := NewSpeckleTexture(8, 8, base, 0.2, 42)

	varied := false
	for i, p := range tex.Pixels {
		// Variation 0.2 keeps every pixel within 20% of the base color
		for c, pair := range [][2]float64{{p.X, base.X}, {p.Y, base.Y}, {p.Z, base.Z}} {
			if pair[0] < pair[1]*0.8-1e-9 || pair[0] > pair[1]*1.2+1e-9 {
				t.Fatalf("Pixel %d channel %d = %v, outside 20%% of base %v", i, c, pair[0], pair[1])
			}
		}
		if !p.Equals(base) {
			varied = true
		}
	}
	if !varied {
		t.Error("Expected speckle variation to change some pixels")
	}
}

func TestSpeckleTextureDeterministic(t *testing.T) {
	base := core.NewVec3(0.4, 0.5, 0.3)
	a := NewSpeckleTexture(8, 8, base, 0.25, 7)
	b := NewSpeckleTexture(8, 8, base, 0.25, 7)
	c := NewSpeckleTexture(8, 8, base, 0.25, 8)

	for i := range a.Pixels {
		if !a.Pixels[i].Equals(b.Pixels[i]) {
			t.Fatalf("Same seed produced different pixels at %d", i)
		}
	}

	same := true
	for i := range a.Pixels {
		if !a.Pixels[i].Equals(c.Pixels[i]) {
			same = false
			break
		}
	}
	if same {
		t.Error("Different seeds produced identical textures")
	}
}
