package RouteOptimizer

import (
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"time"

	"Compass/Config"
	"Compass/Geometry"
)

// SegmentProvider estimates one leg of the route. Implementations wrap
// external mapping APIs; the core optimizer never calls them.
type SegmentProvider interface {
	Name() string
	Supports(mode string) bool
	Segment(from, to Point, mode string) (distanceKm, durationMin float64, err error)
}

// KakaoClient calls the Kakao Mobility directions API for driving legs
type KakaoClient struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
}

func NewKakaoClient(apiKey, baseURL string) *KakaoClient {
	if baseURL == "" {
		baseURL = "https://apis-navi.kakaomobility.com"
	}
	return &KakaoClient{
		APIKey:     apiKey,
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (k *KakaoClient) Name() string { return "kakao" }

func (k *KakaoClient) Supports(mode string) bool { return mode == "driving" }

type kakaoDirectionsResponse struct {
	Routes []struct {
		ResultCode int    `json:"result_code"`
		ResultMsg  string `json:"result_msg"`
		Summary    struct {
			Distance float64 `json:"distance"` // meters
			Duration float64 `json:"duration"` // seconds
		} `json:"summary"`
	} `json:"routes"`
}

func (k *KakaoClient) Segment(from, to Point, mode string) (float64, float64, error) {
	params := url.Values{}
	params.Add("origin", fmt.Sprintf("%f,%f", from.Lng, from.Lat))
	params.Add("destination", fmt.Sprintf("%f,%f", to.Lng, to.Lat))

	req, err := http.NewRequest(http.MethodGet, k.BaseURL+"/v1/directions?"+params.Encode(), nil)
	if err != nil {
		return 0, 0, err
	}
	req.Header.Set("Authorization", "KakaoAK "+k.APIKey)

	resp, err := k.HTTPClient.Do(req)
	if err != nil {
		return 0, 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, 0, fmt.Errorf("kakao directions returned status %d", resp.StatusCode)
	}

	var body kakaoDirectionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, 0, err
	}
	if len(body.Routes) == 0 {
		return 0, 0, fmt.Errorf("kakao directions returned no routes")
	}
	route := body.Routes[0]
	if route.ResultCode != 0 {
		return 0, 0, fmt.Errorf("kakao directions failed: %s", route.ResultMsg)
	}

	return route.Summary.Distance / 1000, route.Summary.Duration / 60, nil
}

// OdsayClient calls the ODsay public-transit path API for transit legs
type OdsayClient struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
}

func NewOdsayClient(apiKey, baseURL string) *OdsayClient {
	if baseURL == "" {
		baseURL = "https://api.odsay.com"
	}
	return &OdsayClient{
		APIKey:     apiKey,
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (o *OdsayClient) Name() string { return "odsay" }

func (o *OdsayClient) Supports(mode string) bool { return mode == "transit" }

type odsayPathResponse struct {
	Result struct {
		Path []struct {
			Info struct {
				TotalDistance float64 `json:"totalDistance"` // meters
				TotalTime     float64 `json:"totalTime"`     // minutes
			} `json:"info"`
		} `json:"path"`
	} `json:"result"`
	Error struct {
		Msg string `json:"msg"`
	} `json:"error"`
}

func (o *OdsayClient) Segment(from, to Point, mode string) (float64, float64, error) {
	params := url.Values{}
	params.Add("SX", fmt.Sprintf("%f", from.Lng))
	params.Add("SY", fmt.Sprintf("%f", from.Lat))
	params.Add("EX", fmt.Sprintf("%f", to.Lng))
	params.Add("EY", fmt.Sprintf("%f", to.Lat))
	params.Add("apiKey", o.APIKey)

	resp, err := o.HTTPClient.Get(o.BaseURL + "/v1/api/searchPubTransPathT?" + params.Encode())
	if err != nil {
		return 0, 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, 0, fmt.Errorf("odsay path search returned status %d", resp.StatusCode)
	}

	var body odsayPathResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return 0, 0, err
	}
	if body.Error.Msg != "" {
		return 0, 0, fmt.Errorf("odsay path search failed: %s", body.Error.Msg)
	}
	if len(body.Result.Path) == 0 {
		return 0, 0, fmt.Errorf("odsay path search returned no paths")
	}

	info := body.Result.Path[0].Info
	return info.TotalDistance / 1000, info.TotalTime, nil
}

// FallbackEstimator estimates a leg as the straight-line distance at the
// average speed for the travel mode. It never fails.
type FallbackEstimator struct{}

func (FallbackEstimator) Name() string { return "fallback" }

func (FallbackEstimator) Supports(string) bool { return true }

func (FallbackEstimator) Segment(from, to Point, mode string) (float64, float64, error) {
	dist := Geometry.HaversineDistanceKm(
		Geometry.Coordinate{Lat: from.Lat, Lng: from.Lng},
		Geometry.Coordinate{Lat: to.Lat, Lng: to.Lng},
	)
	speed := 0.0
	if Config.Current != nil {
		speed = Config.Current.AverageSpeedsKmh[mode]
	}
	if speed == 0 {
		speed = AverageSpeeds[mode]
	}
	if speed == 0 {
		speed = AverageSpeeds["driving"]
	}
	return dist, (dist / speed) * 60, nil
}

// segmentProviders builds the provider chain for the configured API keys.
// The fallback estimator is appended last and always applies.
func segmentProviders(cfg *Config.AppConfig) []SegmentProvider {
	providers := make([]SegmentProvider, 0, 3)
	if cfg != nil && cfg.KakaoAPIKey != "" {
		providers = append(providers, NewKakaoClient(cfg.KakaoAPIKey, cfg.KakaoBaseURL))
	}
	if cfg != nil && cfg.OdsayAPIKey != "" {
		providers = append(providers, NewOdsayClient(cfg.OdsayAPIKey, cfg.OdsayBaseURL))
	}
	providers = append(providers, FallbackEstimator{})
	return providers
}

// resolveSegment walks the provider chain for one leg. Provider failures
// degrade to the next provider and surface as warnings, never as request
// failures.
func resolveSegment(providers []SegmentProvider, from, to Point, mode string) (Segment, []string) {
	var warnings []string
	for _, p := range providers {
		if !p.Supports(mode) {
			continue
		}
		dist, dur, err := p.Segment(from, to, mode)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("%s failed for %s -> %s: %v", p.Name(), from.ID, to.ID, err))
			continue
		}
		return Segment{
			From:        from,
			To:          to,
			DistanceKm:  math.Round(dist*100) / 100,
			DurationMin: math.Round(dur*100) / 100,
			Provider:    p.Name(),
		}, warnings
	}

	// Unreachable: the fallback supports every mode and never errors
	dist, dur, _ := FallbackEstimator{}.Segment(from, to, mode)
	return Segment{From: from, To: to, DistanceKm: dist, DurationMin: dur, Provider: "fallback"}, warnings
}
