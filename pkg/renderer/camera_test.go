package renderer

import (
	"image/color"
	"math"
	"testing"

	"github.com/df07/go-raytracer/pkg/core"
)

// fixedSampler returns the same values on every call
type fixedSampler struct {
	value float64
	disk  core.Vec2
}

func (s fixedSampler) Get1D() float64 { return s.value }
func (s fixedSampler) Get2D() core.Vec2 { return s.disk }
func (s fixedSampler) Get3D() core.Vec3 {
	return core.NewVec3(s.value, s.value, s.value)
}

func vecNear(a, b core.Vec3, tolerance float64) bool {
	return a.Subtract(b).Length() <= tolerance
}

func pinholeConfig(width, height int) CameraConfig {
	return CameraConfig{
		Width:           width,
		Height:          height,
		SamplesPerPixel: 1,
		MaxBounces:      10,
		VFov:            90,
		LookFrom:        core.NewVec3(0, 0, 0),
		LookAt:          core.NewVec3(0, 0, -1),
		Up:              core.NewVec3(0, 1, 0),
		FocusDist:       1,
	}
}

func TestCamera_PixelCenters(t *testing.T) {
	camera := NewCamera(pinholeConfig(2, 2))
	center := fixedSampler{value: 0.5}

	tests := []struct {
		name     string
		x, y     int
		expected core.Vec3
	}{
		{"top left", 0, 0, core.NewVec3(-0.5, 0.5, -1)},
		{"top right", 1, 0, core.NewVec3(0.5, 0.5, -1)},
		{"bottom left", 0, 1, core.NewVec3(-0.5, -0.5, -1)},
		{"bottom right", 1, 1, core.NewVec3(0.5, -0.5, -1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := camera.GetRay(tt.x, tt.y, 0, 0, center)
			if ray.Origin != (core.Vec3{}) {
				t.Errorf("Pinhole origin should be the camera center, got %v", ray.Origin)
			}
			if !vecNear(ray.Direction, tt.expected, 1e-12) {
				t.Errorf("Expected direction %v, got %v", tt.expected, ray.Direction)
			}
		})
	}
}

func TestCamera_CenterRayLooksAtTarget(t *testing.T) {
	config := pinholeConfig(3, 3)
	config.LookFrom = core.NewVec3(4, 2, 7)
	config.LookAt = core.NewVec3(-1, 0, 2)
	config.FocusDist = 3
	camera := NewCamera(config)

	ray := camera.GetRay(1, 1, 0, 0, fixedSampler{value: 0.5})
	expected := config.LookAt.Subtract(config.LookFrom).Normalize()
	if !vecNear(ray.Direction.Normalize(), expected, 1e-9) {
		t.Errorf("Center pixel should look at the target: expected %v, got %v", expected, ray.Direction.Normalize())
	}
	if math.Abs(ray.Direction.Length()-3) > 1e-9 {
		t.Errorf("Center ray should reach the focus plane, got length %v", ray.Direction.Length())
	}
}

func TestCamera_StratifiedJitterStaysInPixel(t *testing.T) {
	config := pinholeConfig(2, 2)
	config.SamplesPerPixel = 16
	camera := NewCamera(config)

	if camera.SamplesPerPixel() != 16 {
		t.Fatalf("Expected 16 samples, got %d", camera.SamplesPerPixel())
	}

	for _, u := range []float64{0, 0.999999} {
		for si := 0; si < 4; si++ {
			for sj := 0; sj < 4; sj++ {
				d := camera.GetRay(0, 0, si, sj, fixedSampler{value: u}).Direction
				if d.X < -1 || d.X > 0 || d.Y < 0 || d.Y > 1 {
					t.Fatalf("Stratum (%d,%d) jitter %v escaped pixel: %v", si, sj, u, d)
				}
			}
		}
	}
}

func TestCamera_SamplesRoundDownToSquare(t *testing.T) {
	tests := []struct {
		requested, effective int
	}{
		{0, 1},
		{1, 1},
		{3, 1},
		{10, 9},
		{100, 100},
	}

	for _, tt := range tests {
		config := pinholeConfig(1, 1)
		config.SamplesPerPixel = tt.requested
		if got := NewCamera(config).SamplesPerPixel(); got != tt.effective {
			t.Errorf("%d samples: expected %d, got %d", tt.requested, tt.effective, got)
		}
	}
}

func TestCamera_DefocusRaysConvergeOnFocusPlane(t *testing.T) {
	config := pinholeConfig(2, 2)
	config.DefocusAngle = 10
	config.FocusDist = 5
	camera := NewCamera(config)

	pinhole := camera.GetRay(0, 0, 0, 0, fixedSampler{value: 0.5, disk: core.NewVec2(0.5, 0.5)})
	target := pinhole.At(1)
	radius := 5 * math.Tan(5*math.Pi/180)

	for _, disk := range []core.Vec2{core.NewVec2(0, 0), core.NewVec2(1, 0.3), core.NewVec2(0.2, 0.9)} {
		ray := camera.GetRay(0, 0, 0, 0, fixedSampler{value: 0.5, disk: disk})
		if ray.Origin.Length() > radius+1e-9 {
			t.Errorf("Origin %v outside defocus disk of radius %v", ray.Origin, radius)
		}
		if math.Abs(ray.Origin.Z) > 1e-12 {
			t.Errorf("Defocus origin should lie in the lens plane, got %v", ray.Origin)
		}
		if !vecNear(ray.At(1), target, 1e-9) {
			t.Errorf("Ray should pass through focus point %v, got %v", target, ray.At(1))
		}
	}
}

func TestCamera_RayTime(t *testing.T) {
	camera := NewCamera(pinholeConfig(4, 4))
	sampler := core.NewSeededSampler(3, 3)
	for i := 0; i < 100; i++ {
		ray := camera.GetRay(2, 1, 0, 0, sampler)
		if ray.Time < 0 || ray.Time >= 1 {
			t.Fatalf("Ray time %v outside [0,1)", ray.Time)
		}
	}
}

func TestToRGBA(t *testing.T) {
	tests := []struct {
		name     string
		linear   float64
		expected uint8
	}{
		{"black", 0, 0},
		{"negative", -1, 0},
		{"nan", math.NaN(), 0},
		{"quarter", 0.25, 128},
		{"dim", 0.01, 25},
		{"white", 1, 255},
		{"overexposed", 50, 255},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ToRGBA(core.NewVec3(tt.linear, tt.linear, tt.linear))
			want := color.RGBA{R: tt.expected, G: tt.expected, B: tt.expected, A: 255}
			if got != want {
				t.Errorf("Expected %v, got %v", want, got)
			}
		})
	}
}
