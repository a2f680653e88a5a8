package loaders

import (
	"fmt"
	"image"
	_ "image/jpeg" // JPEG decoder
	_ "image/png"  // PNG decoder
	"os"
	"path/filepath"
	"strings"

	"github.com/df07/go-block-raytracer/pkg/core"
	"github.com/df07/go-block-raytracer/pkg/material"
)

// LoadTexture loads a PNG or JPEG image into an image texture
func LoadTexture(filename string) (*material.ImageTexture, error) {
	// Open file
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file: %w", err)
	}
	defer file.Close()

	// Decode image (auto-detects PNG/JPEG from file header)
	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	// Convert to Vec3 array
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	pixels := make([]core.Vec3, width*height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, _ := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			// RGBA returns uint32 in [0, 65535], convert to [0, 1]
			pixels[y*width+x] = core.NewVec3(
				float64(r)/65535.0,
				float64(g)/65535.0,
				float64(b)/65535.0,
			)
		}
	}

	return material.NewImageTexture(width, height, pixels), nil
}

// LoadAtlas loads every PNG and JPEG image in a directory into a texture
// atlas. Each texture is registered under its filename without the
// extension, so scenes can reference "bricks.png" as "bricks". Files that
// fail to decode are skipped so one bad image does not take down the whole
// atlas; the skipped names are returned for reporting.
func LoadAtlas(dir string) (*material.Atlas, []string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read texture directory: %w", err)
	}

	atlas := material.NewAtlas()
	var skipped []string

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		ext := strings.ToLower(filepath.Ext(name))
		if ext != ".png" && ext != ".jpg" && ext != ".jpeg" {
			continue
		}

		tex, err := LoadTexture(filepath.Join(dir, name))
		if err != nil {
			skipped = append(skipped, name)
			continue
		}
		atlas.Register(strings.TrimSuffix(name, filepath.Ext(name)), tex)
	}

	return atlas, skipped, nil
}
