package scene

import (
	"github.com/df07/go-block-raytracer/pkg/core"
)

// CameraConfig carries the initial view for a scene. The renderer turns it
// into a live camera; zero values for the optional fields select renderer
// defaults.
type CameraConfig struct {
	Eye    core.Vec3 // Camera position in world space
	Target core.Vec3 // Point the camera looks at
	VFov   float64   // Vertical field of view in degrees, 0 selects the default
	// Zoom limits as eye-to-target distances, 0 selects the defaults
	MinDistance float64
	MaxDistance float64
}
