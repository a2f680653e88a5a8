package renderer

import (
	"fmt"
	"math"

	"github.com/df07/go-block-raytracer/pkg/core"
	"github.com/df07/go-block-raytracer/pkg/scene"
)

const (
	defaultVFov        = 60.0 // degrees
	defaultMinDistance = 0.5
	defaultMaxDistance = 50.0

	orbitStep = math.Pi / 50
	panStep   = 0.1
	zoomStep  = 0.5

	// pitchLimit keeps the forward axis off the world up axis so the
	// right vector never degenerates
	pitchLimit = math.Pi/2 - 0.05
)

// worldUp is the fixed vertical axis. Horizontal orbits spin around it.
var worldUp = core.NewVec3(0, 1, 0)

// Command is one discrete camera mutation, applied between frames
type Command int

const (
	OrbitLeft Command = iota
	OrbitRight
	OrbitUp
	OrbitDown
	PanLeft
	PanRight
	PanUp
	PanDown
	ZoomIn
	ZoomOut
)

var commandNames = [...]string{
	"orbit-left", "orbit-right", "orbit-up", "orbit-down",
	"pan-left", "pan-right", "pan-up", "pan-down",
	"zoom-in", "zoom-out",
}

func (c Command) String() string {
	if c < 0 || int(c) >= len(commandNames) {
		return fmt.Sprintf("command(%d)", int(c))
	}
	return commandNames[c]
}

// ParseCommand maps a command name like "orbit-left" to its Command
func ParseCommand(name string) (Command, error) {
	for i, n := range commandNames {
		if n == name {
			return Command(i), nil
		}
	}
	return 0, fmt.Errorf("unknown camera command %q", name)
}

// Camera holds an eye position looking at a target with an orthonormal
// forward/right/up basis. Orbit, pan and zoom mutate the eye and target;
// the basis is recomputed after every mutation so repeated small rotations
// cannot drift it out of orthonormality.
type Camera struct {
	eye     core.Vec3
	target  core.Vec3
	forward core.Vec3
	right   core.Vec3
	up      core.Vec3

	vfov        float64 // vertical field of view in radians
	minDistance float64
	maxDistance float64
}

// NewCamera creates a camera from a scene's camera config, filling in
// defaults for zero-valued fields
func NewCamera(config scene.CameraConfig) (*Camera, error) {
	vfov := config.VFov
	if vfov == 0 {
		vfov = defaultVFov
	}
	if vfov <= 0 || vfov >= 180 {
		return nil, fmt.Errorf("vertical fov must be in (0, 180) degrees, got %v", vfov)
	}

	minDistance := config.MinDistance
	if minDistance == 0 {
		minDistance = defaultMinDistance
	}
	maxDistance := config.MaxDistance
	if maxDistance == 0 {
		maxDistance = defaultMaxDistance
	}
	if minDistance <= 0 || maxDistance < minDistance {
		return nil, fmt.Errorf("invalid zoom range [%v, %v]", minDistance, maxDistance)
	}

	offset := config.Eye.Subtract(config.Target)
	if offset.Length() < 1e-9 {
		return nil, fmt.Errorf("camera eye and target coincide at %+v", config.Eye)
	}
	forward := offset.Multiply(-1).Normalize()
	if forward.Cross(worldUp).Length() < 1e-9 {
		return nil, fmt.Errorf("camera cannot look straight along the world up axis")
	}

	c := &Camera{
		eye:         config.Eye,
		target:      config.Target,
		vfov:        vfov * math.Pi / 180,
		minDistance: minDistance,
		maxDistance: maxDistance,
	}
	c.orthonormalize()
	return c, nil
}

// Eye returns the current eye position
func (c *Camera) Eye() core.Vec3 { return c.eye }

// Target returns the current look-at point
func (c *Camera) Target() core.Vec3 { return c.target }

// Distance returns the current eye-to-target distance
func (c *Camera) Distance() float64 {
	return c.eye.Subtract(c.target).Length()
}

// Basis returns the current forward, right and up vectors
func (c *Camera) Basis() (forward, right, up core.Vec3) {
	return c.forward, c.right, c.up
}

// Apply performs one camera command
func (c *Camera) Apply(cmd Command) {
	switch cmd {
	case OrbitLeft:
		c.orbitHorizontal(orbitStep)
	case OrbitRight:
		c.orbitHorizontal(-orbitStep)
	case OrbitUp:
		c.orbitVertical(orbitStep)
	case OrbitDown:
		c.orbitVertical(-orbitStep)
	case PanLeft:
		c.pan(c.right.Multiply(-panStep))
	case PanRight:
		c.pan(c.right.Multiply(panStep))
	case PanUp:
		c.pan(c.up.Multiply(panStep))
	case PanDown:
		c.pan(c.up.Multiply(-panStep))
	case ZoomIn:
		c.zoom(-zoomStep)
	case ZoomOut:
		c.zoom(zoomStep)
	}
}

// GetRay generates the primary ray through the center of pixel (i, j) for
// an image of the given dimensions. Row 0 is the top of the image.
func (c *Camera) GetRay(i, j, width, height int) core.Ray {
	halfHeight := math.Tan(c.vfov / 2)
	aspect := float64(width) / float64(height)

	u := (2*(float64(i)+0.5)/float64(width) - 1) * aspect * halfHeight
	v := (1 - 2*(float64(j)+0.5)/float64(height)) * halfHeight

	direction := c.forward.
		Add(c.right.Multiply(u)).
		Add(c.up.Multiply(v)).
		Normalize()
	return core.NewRay(c.eye, direction)
}

// orbitHorizontal rotates the eye around the target about the world up
// axis. Positive angles swing the eye counterclockwise seen from above.
func (c *Camera) orbitHorizontal(angle float64) {
	offset := c.eye.Subtract(c.target)
	c.eye = c.target.Add(offset.Rotate(worldUp, angle))
	c.orthonormalize()
}

// orbitVertical rotates the eye around the target about the camera's
// right axis, clamping the elevation so the view never flips over the
// world up axis
func (c *Camera) orbitVertical(angle float64) {
	offset := c.eye.Subtract(c.target)
	length := offset.Length()
	if length == 0 {
		return
	}

	elevation := math.Asin(offset.Multiply(1 / length).Y)
	clamped := math.Max(-pitchLimit, math.Min(pitchLimit, elevation+angle))
	applied := clamped - elevation
	if applied == 0 {
		return
	}

	// Rotating about right by a negative angle raises the eye
	c.eye = c.target.Add(offset.Rotate(c.right, -applied))
	c.orthonormalize()
}

// pan translates the eye and target together
func (c *Camera) pan(delta core.Vec3) {
	c.eye = c.eye.Add(delta)
	c.target = c.target.Add(delta)
	c.orthonormalize()
}

// zoom moves the eye along the forward axis, keeping the eye-to-target
// distance inside the configured range
func (c *Camera) zoom(delta float64) {
	distance := c.Distance()
	newDistance := math.Max(c.minDistance, math.Min(c.maxDistance, distance+delta))
	c.eye = c.target.Subtract(c.forward.Multiply(newDistance))
	c.orthonormalize()
}

func (c *Camera) orthonormalize() {
	c.forward = c.target.Subtract(c.eye).Normalize()
	c.right = c.forward.Cross(worldUp).Normalize()
	c.up = c.right.Cross(c.forward).Normalize()
}
