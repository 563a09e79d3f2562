package RouteOptimizer

// TspLocation is one stop fed into route optimization. Name, Category and
// StayMinutes are pass-through metadata and never influence the ordering.
type TspLocation struct {
	ID          string  `json:"id"`
	Name        string  `json:"name,omitempty"`
	Lat         float64 `json:"lat"`
	Lng         float64 `json:"lng"`
	Category    string  `json:"category,omitempty"`
	StayMinutes float64 `json:"duration,omitempty"`
}

// TspResult is the visiting order plus the tour length along it
type TspResult struct {
	OrderedIds      []string `json:"orderedIds"`
	TotalDistanceKm float64  `json:"totalDistanceKm"`
}

// OptimizeOptions bounds the 2-opt refinement. MaxPasses 0 keeps the
// original behavior of scanning until a full pass finds no improving move.
type OptimizeOptions struct {
	MaxPasses int `json:"maxPasses,omitempty"`
}

// Point is the wire shape of a stop in the optimization API
type Point struct {
	ID   string  `json:"id,omitempty"`
	Name string  `json:"name,omitempty"`
	Lat  float64 `json:"lat" validate:"gte=-90,lte=90"`
	Lng  float64 `json:"lng" validate:"gte=-180,lte=180"`
}

// RouteRequest is the structure of the incoming request
type RouteRequest struct {
	Start     *Point  `json:"start" validate:"required"`
	Waypoints []Point `json:"waypoints,omitempty" validate:"omitempty,dive"`
	End       *Point  `json:"end,omitempty"`
	RoundTrip bool    `json:"roundTrip,omitempty"`
	Mode      string  `json:"mode,omitempty" validate:"omitempty,oneof=driving transit walking"`
}

// Segment is one leg of the ordered route
type Segment struct {
	From        Point   `json:"from"`
	To          Point   `json:"to"`
	DistanceKm  float64 `json:"distanceKm"`
	DurationMin float64 `json:"durationMin"`
	Provider    string  `json:"provider"`
}

// RouteResponse is the structure of the API response
type RouteResponse struct {
	OrderedPoints    []Point   `json:"orderedPoints"`
	Segments         []Segment `json:"segments"`
	TotalDistanceKm  float64   `json:"totalDistanceKm"`
	TotalDurationMin float64   `json:"totalDurationMin"`
	Source           string    `json:"source"`
	Warnings         []string  `json:"warnings"`
	GoogleMapsURL    string    `json:"googleMapsUrl,omitempty"`
}

// Average speeds in km/h for the straight-line duration fallback
var AverageSpeeds = map[string]float64{
	"driving": 60.0,
	"walking": 5.0,
	"transit": 30.0,
}
