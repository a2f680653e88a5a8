package scene

import (
	"github.com/df07/go-block-raytracer/pkg/core"
)

// Falloff selects how a light's intensity decays with distance
type Falloff int

const (
	// FalloffInverseSquare divides the intensity by the squared distance
	FalloffInverseSquare Falloff = iota
	// FalloffNone applies the full intensity at any distance
	FalloffNone
)

// Light is a point light source
type Light struct {
	Position  core.Vec3
	Color     core.Vec3
	Intensity float64
	Falloff   Falloff
}

// NewLight creates a point light with inverse-square falloff
func NewLight(position, color core.Vec3, intensity float64) Light {
	return Light{
		Position:  position,
		Color:     color,
		Intensity: intensity,
		Falloff:   FalloffInverseSquare,
	}
}

// Attenuation returns the effective intensity at the given distance
func (l Light) Attenuation(distance float64) float64 {
	if l.Falloff == FalloffNone {
		return l.Intensity
	}
	if distance <= 0 {
		return l.Intensity
	}
	return l.Intensity / (distance * distance)
}
