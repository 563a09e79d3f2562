package Models

import (
	"time"

	"gorm.io/datatypes"
)

// RouteLog records one served route optimization for the history endpoints
type RouteLog struct {
	ID               uint           `json:"id" gorm:"primaryKey"`
	CreatedAt        time.Time      `json:"created_at"`
	Mode             string         `json:"mode" gorm:"index"`
	Source           string         `json:"source"`
	RoundTrip        bool           `json:"round_trip"`
	PointCount       int            `json:"point_count"`
	TotalDistanceKm  float64        `json:"total_distance_km"`
	TotalDurationMin float64        `json:"total_duration_min"`
	OrderedPoints    datatypes.JSON `json:"ordered_points"`
}
