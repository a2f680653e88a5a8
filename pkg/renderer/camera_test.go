package renderer

import (
	"math"
	"testing"

	"github.com/df07/go-block-raytracer/pkg/core"
	"github.com/df07/go-block-raytracer/pkg/scene"
)

func mustCamera(t *testing.T, config scene.CameraConfig) *Camera {
	t.Helper()
	camera, err := NewCamera(config)
	if err != nil {
		t.Fatalf("NewCamera failed: %v", err)
	}
	return camera
}

func defaultTestCamera(t *testing.T) *Camera {
	t.Helper()
	return mustCamera(t, scene.CameraConfig{
		Eye:    core.NewVec3(0, 0, 5),
		Target: core.NewVec3(0, 0, 0),
	})
}

func vec3Near(a, b core.Vec3, tolerance float64) bool {
	return math.Abs(a.X-b.X) <= tolerance &&
		math.Abs(a.Y-b.Y) <= tolerance &&
		math.Abs(a.Z-b.Z) <= tolerance
}

// checkOrthonormal verifies the basis is unit length, mutually
// perpendicular and derived from the world up axis
func checkOrthonormal(t *testing.T, camera *Camera) {
	t.Helper()
	forward, right, up := camera.Basis()

	for name, v := range map[string]core.Vec3{"forward": forward, "right": right, "up": up} {
		if math.Abs(v.Length()-1) > 1e-9 {
			t.Errorf("%s is not unit length: %v", name, v.Length())
		}
	}
	if dot := forward.Dot(right); math.Abs(dot) > 1e-9 {
		t.Errorf("forward and right not perpendicular: dot = %v", dot)
	}
	if dot := forward.Dot(up); math.Abs(dot) > 1e-9 {
		t.Errorf("forward and up not perpendicular: dot = %v", dot)
	}
	if dot := right.Dot(up); math.Abs(dot) > 1e-9 {
		t.Errorf("right and up not perpendicular: dot = %v", dot)
	}
	if !vec3Near(right, forward.Cross(worldUp).Normalize(), 1e-9) {
		t.Errorf("right = %+v is not derived from forward x worldUp", right)
	}
}

func TestCameraBasis(t *testing.T) {
	camera := defaultTestCamera(t)
	forward, right, up := camera.Basis()

	if !vec3Near(forward, core.NewVec3(0, 0, -1), 1e-9) {
		t.Errorf("forward = %+v, want (0,0,-1)", forward)
	}
	if !vec3Near(right, core.NewVec3(1, 0, 0), 1e-9) {
		t.Errorf("right = %+v, want (1,0,0)", right)
	}
	if !vec3Near(up, core.NewVec3(0, 1, 0), 1e-9) {
		t.Errorf("up = %+v, want (0,1,0)", up)
	}
}

func TestCameraValidation(t *testing.T) {
	tests := []struct {
		name    string
		config  scene.CameraConfig
		wantErr bool
	}{
		{
			name:   "defaults are valid",
			config: scene.CameraConfig{Eye: core.NewVec3(0, 0, 5)},
		},
		{
			name:    "eye on target",
			config:  scene.CameraConfig{Eye: core.NewVec3(1, 2, 3), Target: core.NewVec3(1, 2, 3)},
			wantErr: true,
		},
		{
			name:    "looking straight down the up axis",
			config:  scene.CameraConfig{Eye: core.NewVec3(0, 5, 0), Target: core.NewVec3(0, 0, 0)},
			wantErr: true,
		},
		{
			name:    "fov too wide",
			config:  scene.CameraConfig{Eye: core.NewVec3(0, 0, 5), VFov: 200},
			wantErr: true,
		},
		{
			name:    "negative fov",
			config:  scene.CameraConfig{Eye: core.NewVec3(0, 0, 5), VFov: -10},
			wantErr: true,
		},
		{
			name:    "zoom range inverted",
			config:  scene.CameraConfig{Eye: core.NewVec3(0, 0, 5), MinDistance: 10, MaxDistance: 5},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCamera(tt.config)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewCamera error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestCameraOrbitHorizontal(t *testing.T) {
	camera := defaultTestCamera(t)

	camera.Apply(OrbitLeft)

	wantEye := core.NewVec3(5*math.Sin(orbitStep), 0, 5*math.Cos(orbitStep))
	if !vec3Near(camera.Eye(), wantEye, 1e-9) {
		t.Errorf("eye after orbit-left = %+v, want %+v", camera.Eye(), wantEye)
	}
	if !camera.Target().Equals(core.NewVec3(0, 0, 0)) {
		t.Errorf("orbit moved the target to %+v", camera.Target())
	}
	if math.Abs(camera.Distance()-5) > 1e-9 {
		t.Errorf("orbit changed the distance to %v", camera.Distance())
	}
	checkOrthonormal(t, camera)

	// Orbiting back is symmetric
	camera.Apply(OrbitRight)
	if !vec3Near(camera.Eye(), core.NewVec3(0, 0, 5), 1e-9) {
		t.Errorf("orbit-right did not undo orbit-left, eye = %+v", camera.Eye())
	}
}

func TestCameraOrbitVertical(t *testing.T) {
	camera := defaultTestCamera(t)

	camera.Apply(OrbitUp)

	eye := camera.Eye()
	if eye.Y <= 0 {
		t.Errorf("orbit-up should raise the eye, got %+v", eye)
	}
	if math.Abs(camera.Distance()-5) > 1e-9 {
		t.Errorf("orbit changed the distance to %v", camera.Distance())
	}
	checkOrthonormal(t, camera)

	camera.Apply(OrbitDown)
	if !vec3Near(camera.Eye(), core.NewVec3(0, 0, 5), 1e-9) {
		t.Errorf("orbit-down did not undo orbit-up, eye = %+v", camera.Eye())
	}
}

func TestCameraOrbitVerticalClamp(t *testing.T) {
	camera := defaultTestCamera(t)

	// Far more steps than the quarter turn needs: the elevation must
	// stop at the clamp instead of flipping over the top
	for i := 0; i < 200; i++ {
		camera.Apply(OrbitUp)
	}

	offset := camera.Eye().Subtract(camera.Target())
	elevation := math.Asin(offset.Normalize().Y)
	if elevation > pitchLimit+1e-9 {
		t.Errorf("elevation %v exceeded the clamp %v", elevation, pitchLimit)
	}
	if math.Abs(elevation-pitchLimit) > 1e-6 {
		t.Errorf("elevation %v should have reached the clamp %v", elevation, pitchLimit)
	}

	forward, _, _ := camera.Basis()
	if forward.Cross(worldUp).Length() < 1e-3 {
		t.Error("forward axis reached the world up axis")
	}
	if math.Abs(camera.Distance()-5) > 1e-6 {
		t.Errorf("clamped orbits changed the distance to %v", camera.Distance())
	}
	checkOrthonormal(t, camera)

	for i := 0; i < 400; i++ {
		camera.Apply(OrbitDown)
	}
	offset = camera.Eye().Subtract(camera.Target())
	elevation = math.Asin(offset.Normalize().Y)
	if elevation < -pitchLimit-1e-9 {
		t.Errorf("elevation %v exceeded the lower clamp %v", elevation, -pitchLimit)
	}
	checkOrthonormal(t, camera)
}

func TestCameraPan(t *testing.T) {
	camera := defaultTestCamera(t)

	camera.Apply(PanRight)
	if !vec3Near(camera.Eye(), core.NewVec3(panStep, 0, 5), 1e-9) {
		t.Errorf("eye after pan-right = %+v", camera.Eye())
	}
	if !vec3Near(camera.Target(), core.NewVec3(panStep, 0, 0), 1e-9) {
		t.Errorf("target after pan-right = %+v", camera.Target())
	}

	camera.Apply(PanUp)
	if !vec3Near(camera.Target(), core.NewVec3(panStep, panStep, 0), 1e-9) {
		t.Errorf("target after pan-up = %+v", camera.Target())
	}

	// Panning never turns the camera
	forward, _, _ := camera.Basis()
	if !vec3Near(forward, core.NewVec3(0, 0, -1), 1e-9) {
		t.Errorf("pan changed the view direction to %+v", forward)
	}
	checkOrthonormal(t, camera)
}

func TestCameraZoomClamp(t *testing.T) {
	camera := mustCamera(t, scene.CameraConfig{
		Eye:         core.NewVec3(0, 0, 5),
		Target:      core.NewVec3(0, 0, 0),
		MinDistance: 2,
		MaxDistance: 8,
	})

	for i := 0; i < 20; i++ {
		camera.Apply(ZoomIn)
	}
	if math.Abs(camera.Distance()-2) > 1e-9 {
		t.Errorf("distance after zooming in = %v, want the minimum 2", camera.Distance())
	}

	for i := 0; i < 40; i++ {
		camera.Apply(ZoomOut)
	}
	if math.Abs(camera.Distance()-8) > 1e-9 {
		t.Errorf("distance after zooming out = %v, want the maximum 8", camera.Distance())
	}

	// Zooming moves the eye along forward, never the target
	if !camera.Target().Equals(core.NewVec3(0, 0, 0)) {
		t.Errorf("zoom moved the target to %+v", camera.Target())
	}
	checkOrthonormal(t, camera)
}

func TestCameraBasisStaysOrthonormalUnderChurn(t *testing.T) {
	camera := defaultTestCamera(t)

	commands := []Command{
		OrbitLeft, OrbitUp, PanRight, ZoomIn, OrbitLeft, OrbitDown,
		PanUp, ZoomOut, OrbitRight, PanDown, OrbitUp, PanLeft,
	}
	for i := 0; i < 50; i++ {
		for _, cmd := range commands {
			camera.Apply(cmd)
		}
	}

	checkOrthonormal(t, camera)
}

func TestCameraGetRay(t *testing.T) {
	camera := defaultTestCamera(t)

	// The center pixel of a 1x1 image looks straight down the forward
	// axis
	ray := camera.GetRay(0, 0, 1, 1)
	if !ray.Origin.Equals(core.NewVec3(0, 0, 5)) {
		t.Errorf("ray origin = %+v, want the eye", ray.Origin)
	}
	if !vec3Near(ray.Direction, core.NewVec3(0, 0, -1), 1e-9) {
		t.Errorf("center ray direction = %+v, want (0,0,-1)", ray.Direction)
	}

	// Pixel (0,0) of a larger image is up and to the left, pixel
	// (w-1,h-1) down and to the right
	topLeft := camera.GetRay(0, 0, 4, 4)
	if topLeft.Direction.X >= 0 || topLeft.Direction.Y <= 0 {
		t.Errorf("top-left ray direction = %+v, want negative X and positive Y", topLeft.Direction)
	}
	bottomRight := camera.GetRay(3, 3, 4, 4)
	if bottomRight.Direction.X <= 0 || bottomRight.Direction.Y >= 0 {
		t.Errorf("bottom-right ray direction = %+v, want positive X and negative Y", bottomRight.Direction)
	}

	for _, ray := range []core.Ray{topLeft, bottomRight} {
		if math.Abs(ray.Direction.Length()-1) > 1e-9 {
			t.Errorf("ray direction is not unit length: %v", ray.Direction.Length())
		}
	}
}

func TestCommandNames(t *testing.T) {
	for cmd := OrbitLeft; cmd <= ZoomOut; cmd++ {
		name := cmd.String()
		parsed, err := ParseCommand(name)
		if err != nil {
			t.Errorf("ParseCommand(%q) failed: %v", name, err)
			continue
		}
		if parsed != cmd {
			t.Errorf("ParseCommand(%q) = %v, want %v", name, parsed, cmd)
		}
	}

	if _, err := ParseCommand("barrel-roll"); err == nil {
		t.Error("expected an error for an unknown command name")
	}
}
