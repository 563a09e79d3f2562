package RouteOptimizer

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"Compass/Config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFallbackEstimatorStraightLine(t *testing.T) {
	from := Point{ID: "a", Lat: 0, Lng: 0}
	to := Point{ID: "b", Lat: 0, Lng: 1} // ~111.19 km

	dist, dur, err := FallbackEstimator{}.Segment(from, to, "driving")
	require.NoError(t, err)
	assert.InDelta(t, 111.19, dist, 0.05)
	// 60 km/h driving default
	assert.InDelta(t, dist, dur, 0.01)

	_, walkDur, err := FallbackEstimator{}.Segment(from, to, "walking")
	require.NoError(t, err)
	assert.Greater(t, walkDur, dur)
}

func TestFallbackEstimatorUnknownModeUsesDriving(t *testing.T) {
	from := Point{Lat: 0, Lng: 0}
	to := Point{Lat: 0, Lng: 0.5}

	_, dur, err := FallbackEstimator{}.Segment(from, to, "")
	require.NoError(t, err)
	_, drivingDur, _ := FallbackEstimator{}.Segment(from, to, "driving")
	assert.Equal(t, drivingDur, dur)
}

func TestKakaoClientParsesDirections(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "KakaoAK test-key", r.Header.Get("Authorization"))
		assert.NotEmpty(t, r.URL.Query().Get("origin"))
		assert.NotEmpty(t, r.URL.Query().Get("destination"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"routes":[{"result_code":0,"summary":{"distance":12500,"duration":900}}]}`))
	}))
	defer server.Close()

	client := NewKakaoClient("test-key", server.URL)
	dist, dur, err := client.Segment(Point{Lat: 37.5, Lng: 127.0}, Point{Lat: 37.6, Lng: 127.1}, "driving")
	require.NoError(t, err)
	assert.Equal(t, 12.5, dist)
	assert.Equal(t, 15.0, dur)
}

func TestKakaoClientReportsRouteFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"routes":[{"result_code":104,"result_msg":"no route found"}]}`))
	}))
	defer server.Close()

	client := NewKakaoClient("test-key", server.URL)
	_, _, err := client.Segment(Point{}, Point{}, "driving")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no route found")
}

func TestOdsayClientParsesPath(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.URL.Query().Get("apiKey"))
		w.Write([]byte(`{"result":{"path":[{"info":{"totalDistance":8400,"totalTime":32}}]}}`))
	}))
	defer server.Close()

	client := NewOdsayClient("test-key", server.URL)
	dist, dur, err := client.Segment(Point{Lat: 37.5, Lng: 127.0}, Point{Lat: 37.6, Lng: 127.1}, "transit")
	require.NoError(t, err)
	assert.Equal(t, 8.4, dist)
	assert.Equal(t, 32.0, dur)
}

func TestResolveSegmentFallsBackOnProviderError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	providers := []SegmentProvider{
		NewKakaoClient("test-key", server.URL),
		FallbackEstimator{},
	}

	segment, warnings := resolveSegment(providers, Point{ID: "a", Lat: 0, Lng: 0}, Point{ID: "b", Lat: 0, Lng: 1}, "driving")
	assert.Equal(t, "fallback", segment.Provider)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "kakao failed")
}

func TestSegmentProvidersChain(t *testing.T) {
	providers := segmentProviders(nil)
	require.Len(t, providers, 1)
	assert.Equal(t, "fallback", providers[0].Name())

	providers = segmentProviders(&Config.AppConfig{KakaoAPIKey: "k", OdsayAPIKey: "o"})
	require.Len(t, providers, 3)
	assert.Equal(t, "kakao", providers[0].Name())
	assert.Equal(t, "odsay", providers[1].Name())
	assert.Equal(t, "fallback", providers[2].Name())
}
