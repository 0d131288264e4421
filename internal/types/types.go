// README: Common value objects shared across modules.
package types

// ID identifies trips, drivers, and customers across the platform.
type ID string

// Point is a WGS84 coordinate pair.
type Point struct {
	Lat float64
	Lng float64
}
