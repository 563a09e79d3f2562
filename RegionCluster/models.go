package RegionCluster

import "Compass/Geometry"

// RegionPoint is a weighted point of interest fed into clustering.
// A zero Weight means "not set" and defaults to 1.
type RegionPoint struct {
	ID         string              `json:"id"`
	Coordinate Geometry.Coordinate `json:"coordinate"`
	Weight     float64             `json:"weight,omitempty"`
}

// RegionCluster is one proximity group in the clustering result
type RegionCluster struct {
	ID          string              `json:"id"`
	Centroid    Geometry.Coordinate `json:"centroid"`
	PointIds    []string            `json:"pointIds"`
	TotalWeight float64             `json:"totalWeight"`
}

// ClusterOptions controls cluster growth. Zero values take the defaults
// (5 km radius, minimum size 1).
type ClusterOptions struct {
	MaxClusterRadiusKm float64 `json:"maxClusterRadiusKm,omitempty"`
	MinClusterSize     int     `json:"minClusterSize,omitempty"`
}

// ClusterResult carries the surviving clusters plus the ids of points that
// belonged to clusters dropped by the minimum-size filter, so callers can
// tell when points went missing
type ClusterResult struct {
	Clusters        []RegionCluster `json:"clusters"`
	DroppedPointIds []string        `json:"droppedPointIds"`
}

const (
	DefaultMaxClusterRadiusKm = 5.0
	DefaultMinClusterSize     = 1
)

// clusterAccumulator tracks one growing cluster during the streaming pass.
// Accumulators are passed and returned by value; each assignment produces a
// new accumulator rather than mutating shared state.
type clusterAccumulator struct {
	id          string
	centroid    Geometry.Coordinate
	weightedLat float64
	weightedLng float64
	pointIds    []string
	totalWeight float64
}

// add folds a point into the accumulator and moves the centroid to the
// weighted mean of every member added so far
func (a clusterAccumulator) add(p RegionPoint, weight float64) clusterAccumulator {
	a.weightedLat += p.Coordinate.Lat * weight
	a.weightedLng += p.Coordinate.Lng * weight
	a.totalWeight += weight
	a.centroid = Geometry.Coordinate{
		Lat: a.weightedLat / a.totalWeight,
		Lng: a.weightedLng / a.totalWeight,
	}
	a.pointIds = append(a.pointIds, p.ID)
	return a
}

func (a clusterAccumulator) toCluster() RegionCluster {
	return RegionCluster{
		ID:          a.id,
		Centroid:    a.centroid,
		PointIds:    a.pointIds,
		TotalWeight: a.totalWeight,
	}
}
