package utils

import (
	"math"
	"strings"

	"github.com/mmcloughlin/geohash"
	"github.com/piresc/angkut/internal/pkg/models"
)

// geohashPrecision is fine enough that any configured prefix is shorter
const geohashPrecision = 9

// EncodeCoordinates converts a point to a geohash string
func EncodeCoordinates(c models.Coordinates, precision uint) string {
	return geohash.EncodeWithPrecision(c.Latitude, c.Longitude, precision)
}

// CalculateDistance calculates the distance between two points in kilometers using the Haversine formula
func CalculateDistance(point1, point2 models.Coordinates) float64 {
	const earthRadius = 6371.0

	lat1 := point1.Latitude * math.Pi / 180.0
	lon1 := point1.Longitude * math.Pi / 180.0
	lat2 := point2.Latitude * math.Pi / 180.0
	lon2 := point2.Longitude * math.Pi / 180.0

	dLat := lat2 - lat1
	dLon := lon2 - lon1
	a := math.Sin(dLat/2)*math.Sin(dLat/2) + math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadius * c
}

// OperatingArea is the geography tracking updates must fall inside: a
// bounding box, optionally narrowed to a set of geohash cells.
type OperatingArea struct {
	MinLatitude  float64
	MaxLatitude  float64
	MinLongitude float64
	MaxLongitude float64
	Cells        []string
}

// NewOperatingArea builds an area from tracking config
func NewOperatingArea(cfg models.TrackingConfig) OperatingArea {
	cells := make([]string, 0, len(cfg.GeohashPrefix))
	for _, p := range cfg.GeohashPrefix {
		if p = strings.ToLower(strings.TrimSpace(p)); p != "" {
			cells = append(cells, p)
		}
	}
	return OperatingArea{
		MinLatitude:  cfg.MinLatitude,
		MaxLatitude:  cfg.MaxLatitude,
		MinLongitude: cfg.MinLongitude,
		MaxLongitude: cfg.MaxLongitude,
		Cells:        cells,
	}
}

// Contains reports whether c is inside the area
func (a OperatingArea) Contains(c models.Coordinates) bool {
	if !c.Valid() {
		return false
	}
	if c.Latitude < a.MinLatitude || c.Latitude > a.MaxLatitude ||
		c.Longitude < a.MinLongitude || c.Longitude > a.MaxLongitude {
		return false
	}
	if len(a.Cells) == 0 {
		return true
	}

	hash := EncodeCoordinates(c, geohashPrecision)
	for _, cell := range a.Cells {
		if strings.HasPrefix(hash, cell) {
			return true
		}
	}
	return false
}
