package scene

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/df07/go-raytracer/pkg/core"
	"github.com/df07/go-raytracer/pkg/geometry"
	"github.com/df07/go-raytracer/pkg/loaders"
	"github.com/df07/go-raytracer/pkg/material"
	"github.com/df07/go-raytracer/pkg/renderer"
)

// AspectRatio names one of the supported image proportions
type AspectRatio string

const (
	Widescreen AspectRatio = "widescreen"
	Square     AspectRatio = "square"
	Smartphone AspectRatio = "smartphone"
	Standard   AspectRatio = "standard"
	Cinema     AspectRatio = "cinema"
)

var aspectRatios = map[AspectRatio][2]float64{
	Widescreen: {16, 9},
	Square:     {1, 1},
	Smartphone: {9, 16},
	Standard:   {4, 3},
	Cinema:     {1.85, 1},
}

// Ratio returns the width and height proportions, ok is false for unknown names
func (a AspectRatio) Ratio() (x, y float64, ok bool) {
	r, ok := aspectRatios[a]
	return r[0], r[1], ok
}

// Height returns the image height for width, never less than one pixel
func (a AspectRatio) Height(width int) int {
	x, y, ok := a.Ratio()
	if !ok {
		return max(1, width)
	}
	return max(1, int(float64(width)/(x/y)))
}

// String formats the ratio as "x:y"
func (a AspectRatio) String() string {
	x, y, ok := a.Ratio()
	if !ok {
		return string(a)
	}
	return fmt.Sprintf("%g:%g", x, y)
}

type vec3 [3]float64

func (v vec3) toVec3() core.Vec3 {
	return core.NewVec3(v[0], v[1], v[2])
}

// cameraOptions mirrors the [camera] table
type cameraOptions struct {
	AspectRatio  AspectRatio `toml:"aspect_ratio"`
	ImageWidth   int         `toml:"image_width"`
	Samples      int         `toml:"samples"`
	MaxBounces   int         `toml:"max_bounces"`
	Threads      int         `toml:"threads"`
	Fov          float64     `toml:"fov"`
	LookFrom     vec3        `toml:"look_from"`
	LookAt       vec3        `toml:"look_at"`
	Vup          vec3        `toml:"vup"`
	DefocusAngle float64     `toml:"defocus_angle"`
	FocusDist    float64     `toml:"focus_dist"`
	Background   vec3        `toml:"background"`
	Seed         int64       `toml:"seed"`
}

var requiredCameraKeys = []string{
	"aspect_ratio", "image_width", "samples", "max_bounces",
	"threads", "fov", "look_from", "look_at", "vup",
}

type transformDef struct {
	Type    string  `toml:"type"`
	Offset  *vec3   `toml:"offset"`
	Axis    string  `toml:"axis"`
	Degrees float64 `toml:"degrees"`
	Factors *vec3   `toml:"factors"`
}

type volumeDef struct {
	Density float64 `toml:"density"`
	Albedo  vec3    `toml:"albedo"`
}

// objectDef is the union of every shape and material field
type objectDef struct {
	Shape    string `toml:"shape"`
	Material string `toml:"material"`

	Position  *vec3    `toml:"position"`
	Direction *vec3    `toml:"direction"`
	Radius    *float64 `toml:"radius"`
	U         *vec3    `toml:"u"`
	V         *vec3    `toml:"v"`
	A         *vec3    `toml:"a"`
	B         *vec3    `toml:"b"`
	C         *vec3    `toml:"c"`
	Model     string   `toml:"model"`

	Albedo          *vec3    `toml:"albedo"`
	Even            *vec3    `toml:"even"`
	Odd             *vec3    `toml:"odd"`
	Scale           *float64 `toml:"scale"`
	File            string   `toml:"file"`
	SRGB            *bool    `toml:"srgb"`
	MaxSize         *int     `toml:"max_size"`
	Turbulance      *int     `toml:"turbulance"`
	Roughness       *float64 `toml:"roughness"`
	RefractionIndex *float64 `toml:"refraction_index"`
	Emit            *vec3    `toml:"emit"`

	Transform []transformDef `toml:"transform"`
	Volume    *volumeDef     `toml:"volume"`
}

type configFile struct {
	Camera  cameraOptions `toml:"camera"`
	Objects []objectDef   `toml:"objects"`
}

var (
	commonKeys = []string{"shape", "material", "transform"}

	shapeKeys = map[string][]string{
		"sphere":   {"position", "radius", "direction", "volume"},
		"quad":     {"position", "u", "v"},
		"cube":     {"a", "b", "volume"},
		"triangle": {"a", "b", "c"},
		"mesh":     {"model"},
	}

	materialKeys = map[string][]string{
		"lambertian": {"albedo"},
		"checkered":  {"even", "odd", "scale"},
		"texture":    {"file", "srgb", "max_size"},
		"noise":      {"scale", "turbulance"},
		"metal":      {"albedo", "roughness"},
		"dielectric": {"refraction_index"},
		"glass":      {},
		"water":      {},
		"light":      {"emit"},
	}
)

// ConfigError describes an invalid value in a scene file
type ConfigError struct {
	Path string // File the error came from
	Key  string // Dotted key path, e.g. objects[2].radius
	Msg  string
}

func (e *ConfigError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Msg)
	}
	return fmt.Sprintf("%s: %s: %s", e.Path, e.Key, e.Msg)
}

// LoadConfig reads a TOML scene file. Relative asset paths resolve against
// the directory containing the file.
func LoadConfig(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return ParseConfig(string(data), path)
}

// ParseConfig builds a scene from TOML text; path names the source for error
// messages and anchors relative asset paths
func ParseConfig(data, path string) (*Scene, error) {
	var cfg configFile
	meta, err := toml.Decode(data, &cfg)
	if err != nil {
		var perr toml.ParseError
		if errors.As(err, &perr) {
			return nil, fmt.Errorf("%s:%d: %w", path, perr.Position.Line, perr)
		}
		return nil, &ConfigError{Path: path, Msg: err.Error()}
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, &ConfigError{Path: path, Key: undecoded[0].String(), Msg: "unknown field"}
	}
	for _, key := range requiredCameraKeys {
		if !meta.IsDefined("camera", key) {
			return nil, &ConfigError{Path: path, Key: "camera." + key, Msg: "missing field"}
		}
	}
	if !meta.IsDefined("camera", "focus_dist") {
		cfg.Camera.FocusDist = 1
	}

	// Field sets differ per shape and material, so object keys are checked
	// against a second, untyped decode
	var raw struct {
		Objects []map[string]interface{} `toml:"objects"`
	}
	if _, err := toml.Decode(data, &raw); err != nil {
		return nil, &ConfigError{Path: path, Msg: err.Error()}
	}

	camera, err := cfg.Camera.toCameraConfig(path)
	if err != nil {
		return nil, err
	}

	b := &objectBuilder{
		path:    path,
		baseDir: filepath.Dir(path),
		seed:    uint64(cfg.Camera.Seed),
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	s := NewScene(name, camera)
	s.AspectRatio = cfg.Camera.AspectRatio
	for i, def := range cfg.Objects {
		if i < len(raw.Objects) {
			if err := checkObjectKeys(path, i, def, raw.Objects[i]); err != nil {
				return nil, err
			}
		}
		object, err := b.build(i, def)
		if err != nil {
			return nil, err
		}
		s.Add(object)
	}
	s.Preprocess()
	return s, nil
}

func (c cameraOptions) toCameraConfig(path string) (renderer.CameraConfig, error) {
	if _, _, ok := c.AspectRatio.Ratio(); !ok {
		return renderer.CameraConfig{}, &ConfigError{Path: path, Key: "camera.aspect_ratio",
			Msg: fmt.Sprintf("unknown aspect ratio %q", string(c.AspectRatio))}
	}
	if c.ImageWidth < 1 {
		return renderer.CameraConfig{}, &ConfigError{Path: path, Key: "camera.image_width", Msg: "must be at least 1"}
	}
	if c.Samples < 1 {
		return renderer.CameraConfig{}, &ConfigError{Path: path, Key: "camera.samples", Msg: "must be at least 1"}
	}
	if c.MaxBounces < 0 || c.Threads < 0 {
		return renderer.CameraConfig{}, &ConfigError{Path: path, Key: "camera", Msg: "max_bounces and threads must not be negative"}
	}

	return renderer.CameraConfig{
		Width:           c.ImageWidth,
		Height:          c.AspectRatio.Height(c.ImageWidth),
		SamplesPerPixel: c.Samples,
		MaxBounces:      c.MaxBounces,
		Workers:         c.Threads,
		VFov:            c.Fov,
		LookFrom:        c.LookFrom.toVec3(),
		LookAt:          c.LookAt.toVec3(),
		Up:              c.Vup.toVec3(),
		DefocusAngle:    c.DefocusAngle,
		FocusDist:       c.FocusDist,
		Background:      c.Background.toVec3(),
		Seed:            uint64(c.Seed),
	}, nil
}

func checkObjectKeys(path string, index int, def objectDef, raw map[string]interface{}) error {
	prefix := fmt.Sprintf("objects[%d]", index)

	shapeAllowed, ok := shapeKeys[def.Shape]
	if !ok {
		return &ConfigError{Path: path, Key: prefix + ".shape", Msg: fmt.Sprintf("unknown shape %q", def.Shape)}
	}
	materialAllowed, ok := materialKeys[def.Material]
	if !ok {
		return &ConfigError{Path: path, Key: prefix + ".material", Msg: fmt.Sprintf("unknown material %q", def.Material)}
	}

	allowed := map[string]bool{}
	for _, list := range [][]string{commonKeys, shapeAllowed, materialAllowed} {
		for _, key := range list {
			allowed[key] = true
		}
	}

	keys := make([]string, 0, len(raw))
	for key := range raw {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if !allowed[key] {
			return &ConfigError{Path: path, Key: prefix + "." + key,
				Msg: fmt.Sprintf("unknown field for %s %s", def.Material, def.Shape)}
		}
	}
	return nil
}

// objectBuilder turns object definitions into geometry
type objectBuilder struct {
	path    string
	baseDir string
	seed    uint64
}

func (b *objectBuilder) errorf(index int, key, format string, args ...interface{}) error {
	k := fmt.Sprintf("objects[%d]", index)
	if key != "" {
		k += "." + key
	}
	return &ConfigError{Path: b.path, Key: k, Msg: fmt.Sprintf(format, args...)}
}

func (b *objectBuilder) build(index int, def objectDef) (geometry.Geometry, error) {
	mat, err := b.material(index, def)
	if err != nil {
		return nil, err
	}

	var object geometry.Geometry
	switch def.Shape {
	case "sphere":
		if def.Position == nil || def.Radius == nil {
			return nil, b.errorf(index, "", "sphere requires position and radius")
		}
		if def.Direction != nil {
			object = geometry.NewMovingSphere(def.Position.toVec3(), def.Direction.toVec3(), *def.Radius, mat)
		} else {
			object = geometry.NewSphere(def.Position.toVec3(), *def.Radius, mat)
		}
	case "quad":
		if def.Position == nil || def.U == nil || def.V == nil {
			return nil, b.errorf(index, "", "quad requires position, u and v")
		}
		object = geometry.NewQuad(def.Position.toVec3(), def.U.toVec3(), def.V.toVec3(), mat)
	case "cube":
		if def.A == nil || def.B == nil {
			return nil, b.errorf(index, "", "cube requires a and b")
		}
		object = geometry.NewCube(def.A.toVec3(), def.B.toVec3(), mat)
	case "triangle":
		if def.A == nil || def.B == nil || def.C == nil {
			return nil, b.errorf(index, "", "triangle requires a, b and c")
		}
		object = geometry.NewTriangle(
			geometry.NewVertex(def.A.toVec3()),
			geometry.NewVertex(def.B.toVec3()),
			geometry.NewVertex(def.C.toVec3()),
			mat,
		)
	case "mesh":
		if def.Model == "" {
			return nil, b.errorf(index, "model", "missing field")
		}
		data, err := loaders.LoadMesh(b.resolve(def.Model))
		if err != nil {
			return nil, b.errorf(index, "model", "%v", err)
		}
		mesh, err := geometry.NewMesh(data, mat)
		if err != nil {
			return nil, b.errorf(index, "model", "%v", err)
		}
		object = mesh
	default:
		return nil, b.errorf(index, "shape", "unknown shape %q", def.Shape)
	}

	if def.Volume != nil {
		if def.Volume.Density <= 0 {
			return nil, b.errorf(index, "volume.density", "must be positive")
		}
		albedo := material.NewSolidColor(def.Volume.Albedo.toVec3())
		object = geometry.NewVolume(object, def.Volume.Density, albedo)
	}

	for i, t := range def.Transform {
		object, err = b.transform(index, i, object, t)
		if err != nil {
			return nil, err
		}
	}
	return object, nil
}

func (b *objectBuilder) transform(index, i int, object geometry.Geometry, t transformDef) (geometry.Geometry, error) {
	key := fmt.Sprintf("transform[%d]", i)
	switch t.Type {
	case "translate":
		if t.Offset == nil {
			return nil, b.errorf(index, key+".offset", "missing field")
		}
		return geometry.NewTranslate(object, t.Offset.toVec3()), nil
	case "rotate":
		axis, ok := parseAxis(t.Axis)
		if !ok {
			return nil, b.errorf(index, key+".axis", "unknown axis %q", t.Axis)
		}
		return geometry.NewRotate(object, axis, t.Degrees), nil
	case "scale":
		if t.Factors == nil {
			return nil, b.errorf(index, key+".factors", "missing field")
		}
		factors := t.Factors.toVec3()
		if factors.X == 0 || factors.Y == 0 || factors.Z == 0 {
			return nil, b.errorf(index, key+".factors", "must be non-zero")
		}
		return geometry.NewScale(object, factors), nil
	default:
		return nil, b.errorf(index, key+".type", "unknown transform %q", t.Type)
	}
}

func parseAxis(name string) (core.Axis, bool) {
	switch name {
	case "x":
		return core.AxisX, true
	case "y":
		return core.AxisY, true
	case "z":
		return core.AxisZ, true
	}
	return core.AxisX, false
}

func (b *objectBuilder) material(index int, def objectDef) (material.Material, error) {
	switch def.Material {
	case "lambertian":
		if def.Albedo == nil {
			return nil, b.errorf(index, "albedo", "missing field")
		}
		return material.NewLambertian(def.Albedo.toVec3()), nil
	case "checkered":
		even := orDefault(def.Even, vec3{0.05, 0.05, 0.05})
		odd := orDefault(def.Odd, vec3{0.95, 0.95, 0.95})
		scale := 1.0
		if def.Scale != nil {
			scale = *def.Scale
		}
		return material.NewTexturedLambertian(material.NewCheckeredColors(scale, even.toVec3(), odd.toVec3())), nil
	case "texture":
		if def.File == "" {
			return nil, b.errorf(index, "file", "missing field")
		}
		opts := loaders.LoadImageOptions{SRGB: def.SRGB}
		if def.MaxSize != nil {
			if *def.MaxSize < 0 {
				return nil, b.errorf(index, "max_size", "must not be negative")
			}
			opts.MaxSize = *def.MaxSize
		}
		texture, err := loaders.LoadImageTexture(b.resolve(def.File), opts)
		if err != nil {
			return nil, b.errorf(index, "file", "%v", err)
		}
		return material.NewTexturedLambertian(texture), nil
	case "noise":
		scale := 1.0
		if def.Scale != nil {
			scale = *def.Scale
		}
		depth := 1
		if def.Turbulance != nil {
			depth = *def.Turbulance
		}
		// Each object gets its own noise stream so scenes stay reproducible
		perlin := material.NewPerlin(rand.New(rand.NewPCG(b.seed, uint64(index))))
		return material.NewTexturedLambertian(material.NewNoiseTexture(perlin, scale, depth)), nil
	case "metal":
		if def.Albedo == nil || def.Roughness == nil {
			return nil, b.errorf(index, "", "metal requires albedo and roughness")
		}
		return material.NewMetal(def.Albedo.toVec3(), *def.Roughness), nil
	case "dielectric":
		if def.RefractionIndex == nil {
			return nil, b.errorf(index, "refraction_index", "missing field")
		}
		return material.NewDielectric(*def.RefractionIndex), nil
	case "glass":
		return material.NewGlass(), nil
	case "water":
		return material.NewWater(), nil
	case "light":
		if def.Emit == nil {
			return nil, b.errorf(index, "emit", "missing field")
		}
		return material.NewLight(def.Emit.toVec3()), nil
	default:
		return nil, b.errorf(index, "material", "unknown material %q", def.Material)
	}
}

func (b *objectBuilder) resolve(file string) string {
	if filepath.IsAbs(file) {
		return file
	}
	return filepath.Join(b.baseDir, file)
}

func orDefault(v *vec3, fallback vec3) vec3 {
	if v == nil {
		return fallback
	}
	return *v
}
