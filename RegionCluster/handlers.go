package RegionCluster

import (
	"Compass/Geometry"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// ClusterPointInput is one point of interest in the clustering request
type ClusterPointInput struct {
	ID     string  `json:"id" validate:"required"`
	Lat    float64 `json:"lat" validate:"gte=-90,lte=90"`
	Lng    float64 `json:"lng" validate:"gte=-180,lte=180"`
	Weight float64 `json:"weight,omitempty" validate:"omitempty,gt=0"`
}

// ClusterRequest is the structure of the incoming request
type ClusterRequest struct {
	Points             []ClusterPointInput `json:"points" validate:"required,min=1,dive"`
	MaxClusterRadiusKm float64             `json:"maxClusterRadiusKm,omitempty" validate:"omitempty,gt=0"`
	MinClusterSize     int                 `json:"minClusterSize,omitempty" validate:"omitempty,gte=1"`
}

// ClusterHandler groups the submitted points of interest into visitable regions
func ClusterHandler(c *fiber.Ctx) error {
	var req ClusterRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body: "+err.Error())
	}

	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Invalid clustering request",
			"details": err.Error(),
		})
	}

	points := make([]RegionPoint, 0, len(req.Points))
	for _, p := range req.Points {
		points = append(points, RegionPoint{
			ID:         p.ID,
			Coordinate: Geometry.Coordinate{Lat: p.Lat, Lng: p.Lng},
			Weight:     p.Weight,
		})
	}

	result, err := ClusterRegionsByCoordinates(points, ClusterOptions{
		MaxClusterRadiusKm: req.MaxClusterRadiusKm,
		MinClusterSize:     req.MinClusterSize,
	})
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(result)
}
