package RegionCluster

import (
	"fmt"
	"math"

	"Compass/Geometry"
)

// ClusterRegionsByCoordinates partitions points into proximity clusters in a
// single pass over the input order. Each point joins the closest existing
// cluster whose current centroid is within MaxClusterRadiusKm (ties broken
// by earliest-created cluster) or seeds a new one. Centroids move as points
// are added, so a member's distance to its cluster's final centroid can
// exceed the radius; that drift is intentional and kept.
//
// Validation is eager: the whole call fails on the first empty or duplicate
// id, invalid coordinate, non-positive weight, or out-of-range option, and
// no partial result is returned.
func ClusterRegionsByCoordinates(points []RegionPoint, options ClusterOptions) (ClusterResult, error) {
	radius := options.MaxClusterRadiusKm
	if radius == 0 {
		radius = DefaultMaxClusterRadiusKm
	}
	if math.IsNaN(radius) || math.IsInf(radius, 0) || radius <= 0 {
		return ClusterResult{}, fmt.Errorf("maxClusterRadiusKm must be a finite number greater than 0, got %v", options.MaxClusterRadiusKm)
	}

	minSize := options.MinClusterSize
	if minSize == 0 {
		minSize = DefaultMinClusterSize
	}
	if minSize < 1 {
		return ClusterResult{}, fmt.Errorf("minClusterSize must be a positive integer, got %d", options.MinClusterSize)
	}

	weights := make([]float64, len(points))
	seen := make(map[string]struct{}, len(points))
	for i, p := range points {
		if p.ID == "" {
			return ClusterResult{}, fmt.Errorf("region point at index %d has an empty id", i)
		}
		if _, ok := seen[p.ID]; ok {
			return ClusterResult{}, fmt.Errorf("duplicate region point id %q", p.ID)
		}
		seen[p.ID] = struct{}{}

		if !Geometry.IsValidCoordinate(p.Coordinate) {
			return ClusterResult{}, fmt.Errorf("region point %q has an invalid coordinate (%v, %v)", p.ID, p.Coordinate.Lat, p.Coordinate.Lng)
		}

		w := p.Weight
		if w == 0 {
			w = 1
		}
		if math.IsNaN(w) || math.IsInf(w, 0) || w <= 0 {
			return ClusterResult{}, fmt.Errorf("region point %q has a non-positive weight %v", p.ID, p.Weight)
		}
		weights[i] = w
	}

	accumulators := make([]clusterAccumulator, 0, len(points))
	for i, p := range points {
		best := -1
		bestDist := math.Inf(1)
		for idx, acc := range accumulators {
			d := Geometry.HaversineDistanceKm(p.Coordinate, acc.centroid)
			if d <= radius && d < bestDist {
				bestDist = d
				best = idx
			}
		}

		if best == -1 {
			accumulators = append(accumulators, clusterAccumulator{
				id:       fmt.Sprintf("region-%d", len(accumulators)+1),
				centroid: p.Coordinate,
			}.add(p, weights[i]))
			continue
		}
		accumulators[best] = accumulators[best].add(p, weights[i])
	}

	result := ClusterResult{
		Clusters:        make([]RegionCluster, 0, len(accumulators)),
		DroppedPointIds: []string{},
	}
	for _, acc := range accumulators {
		if len(acc.pointIds) < minSize {
			result.DroppedPointIds = append(result.DroppedPointIds, acc.pointIds...)
			continue
		}
		result.Clusters = append(result.Clusters, acc.toCluster())
	}
	return result, nil
}
