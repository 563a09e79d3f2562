package RouteOptimizer

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp() *fiber.App {
	app := fiber.New()
	app.Post("/api/route/optimize", OptimalRouteHandler)
	return app
}

func postRoute(t *testing.T, app *fiber.App, body interface{}) (int, map[string]interface{}) {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest("POST", "/api/route/optimize", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var decoded map[string]interface{}
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &decoded)
	}
	return resp.StatusCode, decoded
}

func TestOptimalRouteRejectsSinglePoint(t *testing.T) {
	app := newTestApp()

	status, body := postRoute(t, app, fiber.Map{
		"start": fiber.Map{"lat": 37.5665, "lng": 126.9780},
	})
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "at least two points are required", body["error"])
}

func TestOptimalRouteRejectsMissingStart(t *testing.T) {
	app := newTestApp()

	status, _ := postRoute(t, app, fiber.Map{
		"waypoints": []fiber.Map{{"lat": 1, "lng": 1}, {"lat": 2, "lng": 2}},
	})
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestOptimalRouteRejectsOutOfRangeCoordinate(t *testing.T) {
	app := newTestApp()

	status, _ := postRoute(t, app, fiber.Map{
		"start":     fiber.Map{"lat": 95.0, "lng": 0.0},
		"waypoints": []fiber.Map{{"lat": 1, "lng": 1}},
	})
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestOptimalRouteFallbackSource(t *testing.T) {
	app := newTestApp()

	status, body := postRoute(t, app, fiber.Map{
		"start": fiber.Map{"id": "start", "lat": 37.5665, "lng": 126.9780},
		"waypoints": []fiber.Map{
			{"id": "busan", "lat": 35.1796, "lng": 129.0756},
			{"id": "daejeon", "lat": 36.3504, "lng": 127.3845},
		},
	})
	require.Equal(t, fiber.StatusOK, status)

	// No provider keys configured in tests, so every leg is estimated
	assert.Equal(t, "fallback", body["source"])

	ordered, ok := body["orderedPoints"].([]interface{})
	require.True(t, ok)
	require.Len(t, ordered, 3)
	first := ordered[0].(map[string]interface{})
	assert.Equal(t, "start", first["id"])

	segments := body["segments"].([]interface{})
	assert.Len(t, segments, 2)
	seg := segments[0].(map[string]interface{})
	assert.Equal(t, "fallback", seg["provider"])
	assert.Greater(t, seg["distanceKm"].(float64), 0.0)
	assert.Greater(t, seg["durationMin"].(float64), 0.0)

	assert.Greater(t, body["totalDistanceKm"].(float64), 0.0)
	assert.NotEmpty(t, body["googleMapsUrl"])
}

func TestOptimalRouteOrdersWaypointsGeographically(t *testing.T) {
	app := newTestApp()

	// Seoul -> Daejeon -> Daegu -> Busan is the natural south-bound order
	status, body := postRoute(t, app, fiber.Map{
		"start": fiber.Map{"id": "seoul", "lat": 37.5665, "lng": 126.9780},
		"waypoints": []fiber.Map{
			{"id": "busan", "lat": 35.1796, "lng": 129.0756},
			{"id": "daejeon", "lat": 36.3504, "lng": 127.3845},
			{"id": "daegu", "lat": 35.8714, "lng": 128.6014},
		},
	})
	require.Equal(t, fiber.StatusOK, status)

	ordered := body["orderedPoints"].([]interface{})
	ids := make([]string, len(ordered))
	for i, p := range ordered {
		ids[i] = p.(map[string]interface{})["id"].(string)
	}
	assert.Equal(t, []string{"seoul", "daejeon", "daegu", "busan"}, ids)
}

func TestOptimalRouteRoundTripAppendsStart(t *testing.T) {
	app := newTestApp()

	status, body := postRoute(t, app, fiber.Map{
		"start":     fiber.Map{"id": "home", "lat": 37.5665, "lng": 126.9780},
		"waypoints": []fiber.Map{{"id": "stop", "lat": 37.6, "lng": 127.0}},
		"roundTrip": true,
	})
	require.Equal(t, fiber.StatusOK, status)

	ordered := body["orderedPoints"].([]interface{})
	require.Len(t, ordered, 3)
	assert.Equal(t, "home", ordered[0].(map[string]interface{})["id"])
	assert.Equal(t, "home", ordered[2].(map[string]interface{})["id"])

	segments := body["segments"].([]interface{})
	assert.Len(t, segments, 2)
}

func TestOptimalRouteEndStaysLast(t *testing.T) {
	app := newTestApp()

	status, body := postRoute(t, app, fiber.Map{
		"start":     fiber.Map{"id": "a", "lat": 37.5665, "lng": 126.9780},
		"waypoints": []fiber.Map{{"id": "b", "lat": 36.3504, "lng": 127.3845}},
		"end":       fiber.Map{"id": "z", "lat": 35.1796, "lng": 129.0756},
	})
	require.Equal(t, fiber.StatusOK, status)

	ordered := body["orderedPoints"].([]interface{})
	require.Len(t, ordered, 3)
	assert.Equal(t, "a", ordered[0].(map[string]interface{})["id"])
	assert.Equal(t, "z", ordered[2].(map[string]interface{})["id"])
}

func TestOptimalRouteAssignsMissingIds(t *testing.T) {
	app := newTestApp()

	status, body := postRoute(t, app, fiber.Map{
		"start":     fiber.Map{"lat": 37.5665, "lng": 126.9780},
		"waypoints": []fiber.Map{{"lat": 36.3504, "lng": 127.3845}},
	})
	require.Equal(t, fiber.StatusOK, status)

	ordered := body["orderedPoints"].([]interface{})
	require.Len(t, ordered, 2)
	assert.Equal(t, "p1", ordered[0].(map[string]interface{})["id"])
	assert.Equal(t, "p2", ordered[1].(map[string]interface{})["id"])
}
