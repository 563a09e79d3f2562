package RouteOptimizer

import (
	"math"

	"Compass/Geometry"
)

// OptimizeOrder produces a short visiting order over the given locations
// using nearest-neighbor construction refined by 2-opt local search. When
// start is non-nil it is prepended to the working set and stays first in
// the result. Empty input returns an empty result, a single location comes
// back alone with distance 0.
//
// No input validation happens here: callers are expected to pre-validate
// coordinates, and NaN or out-of-range values flow through the distance
// math untouched.
func OptimizeOrder(locations []TspLocation, start *TspLocation) TspResult {
	return OptimizeOrderWithOptions(locations, start, OptimizeOptions{})
}

// OptimizeOrderWithOptions is OptimizeOrder with a cap on 2-opt passes for
// callers that need bounded worst-case latency
func OptimizeOrderWithOptions(locations []TspLocation, start *TspLocation, opts OptimizeOptions) TspResult {
	all := make([]TspLocation, 0, len(locations)+1)
	if start != nil {
		all = append(all, *start)
	}
	all = append(all, locations...)

	n := len(all)
	if n == 0 {
		return TspResult{OrderedIds: []string{}, TotalDistanceKm: 0}
	}
	if n == 1 {
		return TspResult{OrderedIds: []string{all[0].ID}, TotalDistanceKm: 0}
	}

	distMatrix := buildDistanceMatrix(all)
	route := nearestNeighborTSP(distMatrix, 0)
	route = twoOptImprovement(route, distMatrix, opts.MaxPasses)

	orderedIds := make([]string, n)
	for i, idx := range route {
		orderedIds[i] = all[idx].ID
	}
	return TspResult{
		OrderedIds:      orderedIds,
		TotalDistanceKm: math.Round(routeCost(route, distMatrix)*10) / 10,
	}
}

// buildDistanceMatrix computes the full symmetric pairwise distance matrix
func buildDistanceMatrix(locations []TspLocation) [][]float64 {
	n := len(locations)
	distMatrix := make([][]float64, n)
	for i := range distMatrix {
		distMatrix[i] = make([]float64, n)
		for j := range distMatrix[i] {
			distMatrix[i][j] = Geometry.HaversineDistanceKm(
				Geometry.Coordinate{Lat: locations[i].Lat, Lng: locations[i].Lng},
				Geometry.Coordinate{Lat: locations[j].Lat, Lng: locations[j].Lng},
			)
		}
	}
	return distMatrix
}

// nearestNeighborTSP implements the nearest neighbor construction starting
// from startIdx, visiting the closest unvisited location each step
func nearestNeighborTSP(distMatrix [][]float64, startIdx int) []int {
	n := len(distMatrix)
	route := make([]int, 0, n)
	visited := make([]bool, n)

	route = append(route, startIdx)
	visited[startIdx] = true
	current := startIdx

	for len(route) < n {
		nearest := -1
		minDist := math.Inf(1)

		for j := 0; j < n; j++ {
			if !visited[j] && distMatrix[current][j] < minDist {
				minDist = distMatrix[current][j]
				nearest = j
			}
		}

		if nearest == -1 {
			break
		}
		route = append(route, nearest)
		visited[nearest] = true
		current = nearest
	}

	return route
}

// twoOptImprovement refines an open tour by reversing the sub-path between
// edge pairs whenever that strictly shortens it, repeating full passes
// until one finds no improving move or maxPasses is hit (0 = no cap).
// Position 0 is never moved, so a forced start stays first.
func twoOptImprovement(route []int, distMatrix [][]float64, maxPasses int) []int {
	n := len(route)
	improvement := true
	passes := 0

	for improvement {
		improvement = false
		passes++

		for i := 0; i < n-2; i++ {
			for j := i + 2; j < n; j++ {
				// Removing edges (i,i+1) and (j,j+1); a reversal ending at
				// the last stop only rewires the first edge
				currentDist := distMatrix[route[i]][route[i+1]]
				newDist := distMatrix[route[i]][route[j]]
				if j < n-1 {
					currentDist += distMatrix[route[j]][route[j+1]]
					newDist += distMatrix[route[i+1]][route[j+1]]
				}

				if newDist < currentDist {
					// Reverse the sub-route between i+1 and j
					for k, l := i+1, j; k < l; k, l = k+1, l-1 {
						route[k], route[l] = route[l], route[k]
					}
					improvement = true
				}
			}
		}

		if maxPasses > 0 && passes >= maxPasses {
			break
		}
	}

	return route
}

// routeCost calculates the total length of a route
func routeCost(route []int, distMatrix [][]float64) float64 {
	cost := 0.0
	for i := 0; i < len(route)-1; i++ {
		cost += distMatrix[route[i]][route[i+1]]
	}
	return cost
}
