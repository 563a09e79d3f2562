package RouteOptimizer

import (
	"encoding/json"
	"fmt"
	"log"
	"math"
	"net/url"
	"strings"

	"Compass/Config"
	"Compass/Models"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// OptimalRouteHandler orders the submitted stops into a short visiting
// sequence and prices each leg through the provider chain
func OptimalRouteHandler(c *fiber.Ctx) error {
	// Parse request
	var req RouteRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body: "+err.Error())
	}

	// Validate request
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Invalid route request",
			"details": err.Error(),
		})
	}
	totalPoints := 1 + len(req.Waypoints)
	if req.End != nil {
		totalPoints++
	}
	if totalPoints < 2 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "at least two points are required",
		})
	}

	// Set defaults
	if req.Mode == "" {
		req.Mode = "driving"
	}
	assignPointIds(&req)

	// Optimize the waypoint order with the start forced first; a fixed end
	// and the round-trip return leg sit outside the optimized sequence
	start := toTspLocation(*req.Start)
	locations := make([]TspLocation, 0, len(req.Waypoints))
	for _, wp := range req.Waypoints {
		locations = append(locations, toTspLocation(wp))
	}
	result := OptimizeOrder(locations, &start)

	byID := make(map[string]Point, totalPoints)
	byID[req.Start.ID] = *req.Start
	for _, wp := range req.Waypoints {
		byID[wp.ID] = wp
	}

	ordered := make([]Point, 0, totalPoints+1)
	for _, id := range result.OrderedIds {
		ordered = append(ordered, byID[id])
	}
	if req.End != nil {
		ordered = append(ordered, *req.End)
	}
	if req.RoundTrip {
		ordered = append(ordered, *req.Start)
	}

	// Price each leg through the provider chain
	providers := segmentProviders(Config.Current)
	segments := make([]Segment, 0, len(ordered)-1)
	warnings := []string{}
	totalDistance := 0.0
	totalDuration := 0.0
	for i := 0; i < len(ordered)-1; i++ {
		segment, segWarnings := resolveSegment(providers, ordered[i], ordered[i+1], req.Mode)
		warnings = append(warnings, segWarnings...)
		segments = append(segments, segment)
		totalDistance += segment.DistanceKm
		totalDuration += segment.DurationMin
	}

	response := RouteResponse{
		OrderedPoints:    ordered,
		Segments:         segments,
		TotalDistanceKm:  math.Round(totalDistance*10) / 10,
		TotalDurationMin: math.Round(totalDuration*10) / 10,
		Source:           routeSource(segments),
		Warnings:         warnings,
		GoogleMapsURL:    generateGoogleMapsURL(ordered, req.Mode),
	}

	saveRouteLog(req, response)

	return c.JSON(response)
}

// assignPointIds fills in missing ids (p1, p2, ... in input order) so the
// response can correlate points
func assignPointIds(req *RouteRequest) {
	next := 1
	assign := func(p *Point) {
		if p.ID == "" {
			p.ID = fmt.Sprintf("p%d", next)
		}
		next++
	}
	assign(req.Start)
	for i := range req.Waypoints {
		assign(&req.Waypoints[i])
	}
	if req.End != nil {
		assign(req.End)
	}
}

func toTspLocation(p Point) TspLocation {
	return TspLocation{ID: p.ID, Name: p.Name, Lat: p.Lat, Lng: p.Lng}
}

// routeSource labels the response by where its legs came from
func routeSource(segments []Segment) string {
	if len(segments) == 0 {
		return "fallback"
	}
	source := segments[0].Provider
	for _, s := range segments[1:] {
		if s.Provider != source {
			return "mixed"
		}
	}
	return source
}

// saveRouteLog persists the served optimization for the history endpoints.
// Best effort: a storage failure never fails the request.
func saveRouteLog(req RouteRequest, resp RouteResponse) {
	if Models.DB == nil {
		return
	}
	orderedPoints, err := json.Marshal(resp.OrderedPoints)
	if err != nil {
		log.Printf("Error encoding route log points: %v", err)
		return
	}
	entry := Models.RouteLog{
		Mode:             req.Mode,
		Source:           resp.Source,
		RoundTrip:        req.RoundTrip,
		PointCount:       len(resp.OrderedPoints),
		TotalDistanceKm:  resp.TotalDistanceKm,
		TotalDurationMin: resp.TotalDurationMin,
		OrderedPoints:    orderedPoints,
	}
	if err := Models.DB.Create(&entry).Error; err != nil {
		log.Printf("Error saving route log: %v", err)
	}
}

// generateGoogleMapsURL creates a Google Maps URL for the ordered route
func generateGoogleMapsURL(ordered []Point, mode string) string {
	if len(ordered) < 2 {
		return ""
	}
	baseURL := "https://www.google.com/maps/dir/?api=1"

	params := url.Values{}
	params.Add("origin", fmt.Sprintf("%.6f,%.6f", ordered[0].Lat, ordered[0].Lng))
	params.Add("destination", fmt.Sprintf("%.6f,%.6f", ordered[len(ordered)-1].Lat, ordered[len(ordered)-1].Lng))

	if len(ordered) > 2 {
		var waypointStrings []string
		for _, wp := range ordered[1 : len(ordered)-1] {
			waypointStrings = append(waypointStrings, fmt.Sprintf("%.6f,%.6f", wp.Lat, wp.Lng))
		}
		params.Add("waypoints", strings.Join(waypointStrings, "|"))
	}

	params.Add("travelmode", mode)

	return baseURL + "&" + params.Encode()
}
