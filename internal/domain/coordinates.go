package domain

import "fmt"

// Coordinates is a WGS84 latitude/longitude pair in decimal degrees
type Coordinates struct {
	Latitude  float64 `json:"latitude" yaml:"latitude"`
	Longitude float64 `json:"longitude" yaml:"longitude"`
}

// InRange reports whether the pair lies within [-90,90] x [-180,180].
// Stores never call this; out-of-range values are persisted as-is.
func (c Coordinates) InRange() bool {
	return c.Latitude >= -90 && c.Latitude <= 90 &&
		c.Longitude >= -180 && c.Longitude <= 180
}

// String formats the pair with six decimals (~0.1m)
func (c Coordinates) String() string {
	return fmt.Sprintf("%.6f,%.6f", c.Latitude, c.Longitude)
}
