package scene

import (
	"fmt"
	"sort"

	"github.com/df07/go-raytracer/pkg/core"
	"github.com/df07/go-raytracer/pkg/renderer"
)

// Builder creates a built-in scene. A width of zero or less keeps the
// scene's own default width.
type Builder func(width int) *Scene

type builtin struct {
	description string
	build       Builder
}

var builtins = map[string]builtin{
	"default":       {"Spheres of every material on a checkered ground, with motion blur", NewDefaultScene},
	"cornell":       {"Cornell box with two rotated blocks", NewCornellScene},
	"cornell-smoke": {"Cornell box with blocks of smoke and fog", NewCornellSmokeScene},
	"perlin":        {"Perlin noise textured spheres", NewPerlinScene},
	"sphere-grid":   {"Grid of rainbow-colored metallic spheres", NewSphereGridScene},
	"triangle-mesh": {"Box, pyramid and icosahedron triangle meshes", NewTriangleMeshScene},
	"showcase":      {"Every primitive, transform, material and texture together", NewShowcaseScene},
}

// Names returns the built-in scene names in sorted order
func Names() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Description returns the one-line description of a built-in scene
func Description(name string) string {
	return builtins[name].description
}

// Build creates the named built-in scene and prepares it for rendering
func Build(name string, width int) (*Scene, error) {
	b, ok := builtins[name]
	if !ok {
		return nil, fmt.Errorf("unknown scene %q (available: %v)", name, Names())
	}
	s := b.build(width)
	s.Preprocess()
	return s, nil
}

// cameraConfig fills in the fields shared by the built-in scenes
func cameraConfig(width, defaultWidth int, ratio AspectRatio, lookFrom, lookAt core.Vec3, vfov float64) renderer.CameraConfig {
	if width <= 0 {
		width = defaultWidth
	}
	return renderer.CameraConfig{
		Width:           width,
		Height:          ratio.Height(width),
		SamplesPerPixel: 100,
		MaxBounces:      50,
		VFov:            vfov,
		LookFrom:        lookFrom,
		LookAt:          lookAt,
		Up:              core.NewVec3(0, 1, 0),
		FocusDist:       lookFrom.Subtract(lookAt).Length(),
	}
}
