package Geometry

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidCoordinate(t *testing.T) {
	valid := []Coordinate{
		{Lat: 0, Lng: 0},
		{Lat: 37.5665, Lng: 126.9780},
		{Lat: -90, Lng: -180},
		{Lat: 90, Lng: 180},
	}
	for _, c := range valid {
		assert.True(t, IsValidCoordinate(c), "expected %+v to be valid", c)
	}

	invalid := []Coordinate{
		{Lat: 90.0001, Lng: 0},
		{Lat: -91, Lng: 0},
		{Lat: 0, Lng: 180.5},
		{Lat: 0, Lng: -181},
		{Lat: math.NaN(), Lng: 0},
		{Lat: 0, Lng: math.NaN()},
		{Lat: math.Inf(1), Lng: 0},
		{Lat: 0, Lng: math.Inf(-1)},
	}
	for _, c := range invalid {
		assert.False(t, IsValidCoordinate(c), "expected %+v to be invalid", c)
	}
}

func TestHaversineDistanceZeroOnSamePoint(t *testing.T) {
	points := []Coordinate{
		{Lat: 0, Lng: 0},
		{Lat: 37.5665, Lng: 126.9780},
		{Lat: -33.8688, Lng: 151.2093},
	}
	for _, p := range points {
		assert.InDelta(t, 0, HaversineDistanceKm(p, p), 1e-9)
	}
}

func TestHaversineDistanceSymmetry(t *testing.T) {
	a := Coordinate{Lat: 37.5665, Lng: 126.9780} // Seoul
	b := Coordinate{Lat: 35.1796, Lng: 129.0756} // Busan
	c := Coordinate{Lat: 33.4996, Lng: 126.5312} // Jeju

	assert.Equal(t, HaversineDistanceKm(a, b), HaversineDistanceKm(b, a))
	assert.Equal(t, HaversineDistanceKm(a, c), HaversineDistanceKm(c, a))
	assert.Equal(t, HaversineDistanceKm(b, c), HaversineDistanceKm(c, b))
}

func TestHaversineDistanceKnownValues(t *testing.T) {
	// One degree of longitude along the equator is ~111.19 km
	a := Coordinate{Lat: 0, Lng: 0}
	b := Coordinate{Lat: 0, Lng: 1}
	assert.InDelta(t, 111.19, HaversineDistanceKm(a, b), 0.05)

	// Seoul to Busan is roughly 325 km as the crow flies
	seoul := Coordinate{Lat: 37.5665, Lng: 126.9780}
	busan := Coordinate{Lat: 35.1796, Lng: 129.0756}
	assert.InDelta(t, 325, HaversineDistanceKm(seoul, busan), 5)
}

func TestHaversineDistanceNeverNegative(t *testing.T) {
	coords := []Coordinate{
		{Lat: 0, Lng: 0},
		{Lat: 89.9, Lng: 179.9},
		{Lat: -89.9, Lng: -179.9},
		{Lat: 45, Lng: -120},
	}
	for _, a := range coords {
		for _, b := range coords {
			assert.GreaterOrEqual(t, HaversineDistanceKm(a, b), 0.0)
		}
	}
}
