// Package geo holds the coordinate type shared by the API and the store,
// plus the great-circle distance used when no spatial index is available.
package geo

import (
	"errors"
	"math"

	"github.com/twpayne/go-geom"
	gjson "github.com/twpayne/go-geom/encoding/geojson"
)

// EarthRadiusKm is the mean Earth radius used by the haversine formula.
const EarthRadiusKm = 6371.0

// Point is a position in decimal degrees. On the wire it is a GeoJSON Point,
// so coordinates are always [longitude, latitude]. In the database it maps
// to two plain float columns via gorm's embedded-struct support.
type Point struct {
	Lng float64 `gorm:"column:lng"`
	Lat float64 `gorm:"column:lat"`
}

// MarshalJSON encodes the point as a GeoJSON Point object.
func (p Point) MarshalJSON() ([]byte, error) {
	return gjson.Marshal(geom.NewPointFlat(geom.XY, []float64{p.Lng, p.Lat}))
}

// UnmarshalJSON decodes a GeoJSON Point object.
func (p *Point) UnmarshalJSON(data []byte) error {
	var g geom.T
	if err := gjson.Unmarshal(data, &g); err != nil {
		return err
	}
	pt, ok := g.(*geom.Point)
	if !ok {
		return errors.New("location must be a GeoJSON Point")
	}
	coords := pt.Coords()
	if len(coords) < 2 {
		return errors.New("location must carry [longitude, latitude]")
	}
	p.Lng = coords[0]
	p.Lat = coords[1]
	return nil
}

// Haversine returns the great-circle distance between a and b in kilometers.
// Pure arithmetic: NaN inputs propagate, the caller validates coordinates.
func Haversine(a, b Point) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLng := (b.Lng - a.Lng) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * EarthRadiusKm * math.Asin(math.Sqrt(h))
}
