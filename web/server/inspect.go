package server

import (
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/df07/go-raytracer/pkg/core"
	"github.com/df07/go-raytracer/pkg/geometry"
	"github.com/df07/go-raytracer/pkg/material"
	"github.com/df07/go-raytracer/pkg/renderer"
	"github.com/df07/go-raytracer/pkg/scene"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	MaterialType string                 `json:"materialType,omitempty"`
	GeometryType string                 `json:"geometryType,omitempty"`
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	Distance     float64                `json:"distance"`
	FrontFace    bool                   `json:"frontFace"`
	Properties   map[string]interface{} `json:"properties,omitempty"`
}

// centerSampler places camera rays through pixel centers at mid-shutter
// and makes volume scattering deterministic
type centerSampler struct{}

func (centerSampler) Get1D() float64 { return 0.5 }

func (centerSampler) Get2D() core.Vec2 { return core.Vec2{X: 0.5, Y: 0.5} }

func (centerSampler) Get3D() core.Vec3 { return core.NewVec3(0.5, 0.5, 0.5) }

// inspectPixel casts a ray through the center of pixel (x, y) and reports
// the first surface it hits
func inspectPixel(sc *scene.Scene, x, y int) InspectResponse {
	if sc.World == nil {
		sc.Preprocess()
	}

	config := sc.Camera
	config.SamplesPerPixel = 1
	config.DefocusAngle = 0
	camera := renderer.NewCamera(config)

	sampler := centerSampler{}
	ray := camera.GetRay(x, y, 0, 0, sampler)

	var rec material.HitRecord
	if !sc.World.Hit(ray, core.NewInterval(0.001, math.Inf(1)), &rec, sampler) {
		return InspectResponse{Hit: false}
	}

	materialType, materialProps := materialInfo(rec.Material, rec)
	return InspectResponse{
		Hit:          true,
		MaterialType: materialType,
		GeometryType: geometryType(hitObject(sc.Objects, ray, rec.T, sampler)),
		Point:        [3]float64{rec.Point.X, rec.Point.Y, rec.Point.Z},
		Normal:       [3]float64{rec.Normal.X, rec.Normal.Y, rec.Normal.Z},
		Distance:     rec.T,
		FrontFace:    rec.FrontFace,
		Properties:   materialProps,
	}
}

// hitObject finds the top-level object responsible for the hit at t.
// The BVH only reports the hit record, not the object.
func hitObject(objects []geometry.Geometry, ray core.Ray, t float64, sampler core.Sampler) geometry.Geometry {
	for _, object := range objects {
		var rec material.HitRecord
		if object.Hit(ray, core.NewInterval(0.001, t+1e-9), &rec, sampler) && math.Abs(rec.T-t) < 1e-9 {
			return object
		}
	}
	return nil
}

// geometryType names an object, looking through transforms
func geometryType(object geometry.Geometry) string {
	switch g := object.(type) {
	case *geometry.Sphere:
		return "sphere"
	case *geometry.Quad:
		return "quad"
	case *geometry.Triangle:
		return "triangle"
	case *geometry.Cube:
		return "cube"
	case *geometry.Mesh:
		return "mesh"
	case *geometry.Volume:
		return "volume(" + geometryType(g.Boundary) + ")"
	case *geometry.Translate:
		return geometryType(g.Child)
	case *geometry.Rotate:
		return geometryType(g.Child)
	case *geometry.Scale:
		return geometryType(g.Child)
	default:
		return "unknown"
	}
}

// materialInfo describes a material and the color it shows at the hit
func materialInfo(mat material.Material, rec material.HitRecord) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch m := mat.(type) {
	case *material.Lambertian:
		textureInfo(properties, m.Texture, rec)
		return "lambertian", properties

	case *material.Metal:
		textureInfo(properties, m.Texture, rec)
		properties["roughness"] = m.Roughness
		return "metal", properties

	case *material.Dielectric:
		properties["refractiveIndex"] = m.RefractiveIndex
		properties["color"] = "#ffffff"
		return "dielectric", properties

	case *material.Light:
		textureInfo(properties, m.Texture, rec)
		emission := m.Emitted(rec.U, rec.V, rec.Point)
		properties["emission"] = [3]float64{emission.X, emission.Y, emission.Z}
		return "light", properties

	case *material.Isotropic:
		textureInfo(properties, m.Texture, rec)
		return "isotropic", properties

	default:
		return "unknown", properties
	}
}

func textureInfo(properties map[string]interface{}, texture material.Texture, rec material.HitRecord) {
	switch t := texture.(type) {
	case *material.SolidColor:
		properties["texture"] = "solid"
	case *material.Checkered:
		properties["texture"] = "checkered"
	case *material.ImageTexture:
		properties["texture"] = "image"
		properties["size"] = [2]int{t.Width, t.Height}
	case *material.NoiseTexture:
		properties["texture"] = "noise"
		properties["scale"] = t.Scale
	}

	value := texture.Value(rec.U, rec.V, rec.Point)
	properties["albedo"] = [3]float64{value.X, value.Y, value.Z}
	properties["color"] = hexColor(value)
}

// hexColor formats a color clamped to [0, 1] as #rrggbb
func hexColor(c core.Vec3) string {
	unit := core.NewInterval(0, 1)
	return fmt.Sprintf("#%02x%02x%02x",
		int(unit.Clamp(c.X)*255), int(unit.Clamp(c.Y)*255), int(unit.Clamp(c.Z)*255))
}

// handleInspect reports what is visible at pixel (x, y) of a scene
func (s *Server) handleInspect(c echo.Context) error {
	req, err := parseRenderRequest(c.QueryParams())
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "Invalid scene parameters: "+err.Error())
	}

	x, err := strconv.Atoi(c.QueryParam("x"))
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "Invalid x coordinate")
	}
	y, err := strconv.Atoi(c.QueryParam("y"))
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, "Invalid y coordinate")
	}

	sc, err := s.loadScene(req)
	if err != nil {
		return errorJSON(c, http.StatusBadRequest, err.Error())
	}

	if x < 0 || x >= sc.Camera.Width || y < 0 || y >= sc.Camera.Height {
		return errorJSON(c, http.StatusBadRequest, "Pixel coordinates out of bounds")
	}

	return c.JSON(http.StatusOK, inspectPixel(sc, x, y))
}
