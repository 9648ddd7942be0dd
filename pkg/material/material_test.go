package material

import (
	"math"
	"testing"

	"github.com/df07/go-raytracer/pkg/core"
)

// scriptedSampler returns fixed values so scatter decisions are predictable
type scriptedSampler struct {
	value1D float64
	value2D core.Vec2
}

func (s scriptedSampler) Get1D() float64 { return s.value1D }
func (s scriptedSampler) Get2D() core.Vec2 { return s.value2D }
func (s scriptedSampler) Get3D() core.Vec3 {
	return core.NewVec3(s.value2D.X, s.value2D.Y, s.value1D)
}

func upHit(mat Material) HitRecord {
	return HitRecord{
		Point:     core.NewVec3(0, 0, 0),
		Normal:    core.NewVec3(0, 1, 0),
		T:         1.0,
		FrontFace: true,
		Material:  mat,
		U:         0.25,
		V:         0.75,
	}
}

func vecNear(a, b core.Vec3, tolerance float64) bool {
	return a.Subtract(b).Length() <= tolerance
}

func TestLambertian_Scatter(t *testing.T) {
	albedo := core.NewVec3(0.5, 0.7, 0.9)
	lambertian := NewLambertian(albedo)
	hit := upHit(lambertian)
	ray := core.NewRayAtTime(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0), 0.4)

	sampler := core.NewSeededSampler(42, 0)
	for i := 0; i < 200; i++ {
		result, scattered := lambertian.Scatter(ray, hit, sampler)
		if !scattered {
			t.Fatal("Lambertian should always scatter")
		}
		if result.Attenuation != albedo {
			t.Errorf("Expected attenuation %v, got %v", albedo, result.Attenuation)
		}
		if result.Scattered.Direction.Dot(hit.Normal) < 0 {
			t.Errorf("Scattered direction %v points into the surface", result.Scattered.Direction)
		}
		if result.Scattered.Origin != hit.Point {
			t.Errorf("Scattered ray should start at hit point, got %v", result.Scattered.Origin)
		}
		if result.Scattered.Time != ray.Time {
			t.Errorf("Scattered ray should keep time %v, got %v", ray.Time, result.Scattered.Time)
		}
	}
}

func TestLambertian_DegenerateDirectionFallsBackToNormal(t *testing.T) {
	lambertian := NewLambertian(core.NewVec3(1, 1, 1))
	hit := upHit(lambertian)
	hit.Normal = core.NewVec3(0, 0, 1)

	// X=1 maps to the unit vector (0,0,-1), cancelling the normal exactly
	sampler := scriptedSampler{value2D: core.NewVec2(1, 0)}
	result, _ := lambertian.Scatter(core.NewRay(core.NewVec3(0, 0, 1), core.NewVec3(0, 0, -1)), hit, sampler)

	if result.Scattered.Direction != hit.Normal {
		t.Errorf("Expected fallback to normal %v, got %v", hit.Normal, result.Scattered.Direction)
	}
}

func TestMetal_Scatter(t *testing.T) {
	tests := []struct {
		name      string
		roughness float64
		direction core.Vec3
		sample    core.Vec2
		scatters  bool
		expected  core.Vec3
	}{
		{
			name:      "perfect mirror",
			roughness: 0,
			direction: core.NewVec3(1, -1, 0),
			sample:    core.NewVec2(0.5, 0.25),
			scatters:  true,
			expected:  core.NewVec3(1, 1, 0).Normalize(),
		},
		{
			name:      "rough grazing reflection pushed below surface",
			roughness: 1,
			direction: core.NewVec3(1, -0.1, 0),
			sample:    core.NewVec2(0.5, 0.75), // unit vector (0,-1,0)
			scatters:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			metal := NewMetal(core.NewVec3(0.8, 0.6, 0.2), tt.roughness)
			ray := core.NewRay(core.NewVec3(-1, 1, 0), tt.direction)
			result, scatters := metal.Scatter(ray, upHit(metal), scriptedSampler{value2D: tt.sample})

			if scatters != tt.scatters {
				t.Fatalf("Scatter() = %v, want %v", scatters, tt.scatters)
			}
			if tt.scatters && !vecNear(result.Scattered.Direction, tt.expected, 1e-9) {
				t.Errorf("Expected direction %v, got %v", tt.expected, result.Scattered.Direction)
			}
			if result.Attenuation != core.NewVec3(0.8, 0.6, 0.2) {
				t.Errorf("Unexpected attenuation %v", result.Attenuation)
			}
		})
	}
}

func TestMetal_RoughnessClamped(t *testing.T) {
	if m := NewMetal(core.NewVec3(1, 1, 1), 3); m.Roughness != 1 {
		t.Errorf("Expected roughness clamped to 1, got %v", m.Roughness)
	}
	if m := NewMetal(core.NewVec3(1, 1, 1), -1); m.Roughness != 0 {
		t.Errorf("Expected roughness clamped to 0, got %v", m.Roughness)
	}
}

func TestReflect(t *testing.T) {
	got := Reflect(core.NewVec3(1, -1, 0), core.NewVec3(0, 1, 0))
	if got != core.NewVec3(1, 1, 0) {
		t.Errorf("Reflect = %v, want (1,1,0)", got)
	}
}

func TestRefract_SnellsLaw(t *testing.T) {
	incoming := core.NewVec3(1, -1, 0).Normalize() // 45 degrees
	normal := core.NewVec3(0, 1, 0)
	ratio := 0.5

	refracted := Refract(incoming, normal, ratio)

	if math.Abs(refracted.Length()-1) > 1e-9 {
		t.Errorf("Refracted direction should stay unit length, got %v", refracted.Length())
	}

	sinIn := math.Abs(incoming.X)
	sinOut := math.Abs(refracted.X) / refracted.Length()
	if math.Abs(sinOut-ratio*sinIn) > 1e-9 {
		t.Errorf("Snell's law violated: sinOut=%v, want %v", sinOut, ratio*sinIn)
	}
	if refracted.Y >= 0 {
		t.Errorf("Refracted ray should continue through the surface, got %v", refracted)
	}
}

func TestReflectance_Schlick(t *testing.T) {
	if got := Reflectance(0.5, 1.5); math.Abs(got-0.07) > 1e-12 {
		t.Errorf("Reflectance(0.5, 1.5) = %v, want 0.07", got)
	}
	// Head-on incidence gives R0
	if got := Reflectance(1, 1.5); math.Abs(got-0.04) > 1e-12 {
		t.Errorf("Reflectance(1, 1.5) = %v, want 0.04", got)
	}
	// Grazing incidence reflects everything
	if got := Reflectance(0, 1.5); math.Abs(got-1) > 1e-12 {
		t.Errorf("Reflectance(0, 1.5) = %v, want 1", got)
	}
}

func TestDielectric_Scatter(t *testing.T) {
	glass := NewGlass()
	ray := core.NewRay(core.NewVec3(-1, 1, 0), core.NewVec3(1, -1, 0))

	// A high sample never beats the ~5% reflectance, so the ray refracts
	refractResult, ok := glass.Scatter(ray, upHit(glass), scriptedSampler{value1D: 0.99})
	if !ok {
		t.Fatal("Dielectric should always scatter")
	}
	if refractResult.Scattered.Direction.Y >= 0 {
		t.Errorf("Expected refraction into the surface, got %v", refractResult.Scattered.Direction)
	}
	if refractResult.Attenuation != core.NewVec3(1, 1, 1) {
		t.Errorf("Expected white attenuation, got %v", refractResult.Attenuation)
	}

	// A zero sample always loses to reflectance, so the ray reflects
	reflectResult, _ := glass.Scatter(ray, upHit(glass), scriptedSampler{value1D: 0})
	if reflectResult.Scattered.Direction.Y <= 0 {
		t.Errorf("Expected reflection off the surface, got %v", reflectResult.Scattered.Direction)
	}
}

func TestDielectric_TotalInternalReflection(t *testing.T) {
	glass := NewDielectric(1.5)

	// Leaving glass at a grazing angle cannot refract
	hit := upHit(glass)
	hit.FrontFace = false
	ray := core.NewRay(core.NewVec3(-1, 0.1, 0), core.NewVec3(1, -0.1, 0))

	result, ok := glass.Scatter(ray, hit, scriptedSampler{value1D: 0.999})
	if !ok {
		t.Fatal("Dielectric should always scatter")
	}
	expected := Reflect(ray.Direction.Normalize(), hit.Normal)
	if !vecNear(result.Scattered.Direction, expected, 1e-12) {
		t.Errorf("Expected total internal reflection %v, got %v", expected, result.Scattered.Direction)
	}
}

func TestDielectric_Presets(t *testing.T) {
	if NewGlass().RefractiveIndex != 1.5 {
		t.Error("Glass should have index 1.5")
	}
	if NewWater().RefractiveIndex != 1.33 {
		t.Error("Water should have index 1.33")
	}
}

func TestLight_EmitsAndAbsorbs(t *testing.T) {
	emit := core.NewVec3(4, 4, 4)
	light := NewLight(emit)

	if _, ok := light.Scatter(core.NewRay(core.Vec3{}, core.NewVec3(0, -1, 0)), upHit(light), core.NewSeededSampler(1, 1)); ok {
		t.Error("Light should never scatter")
	}
	if got := light.Emitted(0.3, 0.3, core.Vec3{}); got != emit {
		t.Errorf("Emitted = %v, want %v", got, emit)
	}
}

func TestNonEmitters_AreBlack(t *testing.T) {
	solid := NewSolidColor(core.NewVec3(1, 1, 1))
	materials := map[string]Material{
		"lambertian": NewLambertian(core.NewVec3(1, 1, 1)),
		"metal":      NewMetal(core.NewVec3(1, 1, 1), 0.1),
		"dielectric": NewGlass(),
		"isotropic":  NewIsotropic(solid),
	}
	for name, mat := range materials {
		if got := mat.Emitted(0.5, 0.5, core.NewVec3(1, 2, 3)); got != (core.Vec3{}) {
			t.Errorf("%s emitted %v, want black", name, got)
		}
	}
}

func TestIsotropic_Scatter(t *testing.T) {
	albedo := core.NewVec3(0.2, 0.4, 0.6)
	iso := NewIsotropic(NewSolidColor(albedo))
	sampler := core.NewSeededSampler(3, 9)

	for i := 0; i < 50; i++ {
		result, ok := iso.Scatter(core.NewRay(core.Vec3{}, core.NewVec3(1, 0, 0)), upHit(iso), sampler)
		if !ok {
			t.Fatal("Isotropic should always scatter")
		}
		if math.Abs(result.Scattered.Direction.Length()-1) > 1e-9 {
			t.Errorf("Expected unit direction, got %v", result.Scattered.Direction)
		}
		if result.Attenuation != albedo {
			t.Errorf("Expected attenuation %v, got %v", albedo, result.Attenuation)
		}
	}
}

func TestSetFaceNormal(t *testing.T) {
	outward := core.NewVec3(0, 1, 0)

	var rec HitRecord
	rec.SetFaceNormal(core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0)), outward)
	if !rec.FrontFace || rec.Normal != outward {
		t.Errorf("Ray from outside should see front face, got %+v", rec)
	}

	rec.SetFaceNormal(core.NewRay(core.NewVec3(0, -1, 0), core.NewVec3(0, 1, 0)), outward)
	if rec.FrontFace || rec.Normal != outward.Negate() {
		t.Errorf("Ray from inside should see back face with flipped normal, got %+v", rec)
	}
}
