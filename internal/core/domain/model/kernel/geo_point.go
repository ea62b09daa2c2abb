package kernel

import (
	"errors"
	"fmt"

	"devis/internal/pkg/errs"
	"devis/internal/pkg/guard"
)

const (
	LatitudeMin  = -90.0
	LatitudeMax  = 90.0
	LongitudeMin = -180.0
	LongitudeMax = 180.0
)

// ErrGeoPointIsNotConstructed is returned when attempting to use an improperly initialized GeoPoint.
var ErrGeoPointIsNotConstructed = errs.NewValueIsRequiredError(
	"geo point must be created via NewGeoPoint constructor")

// GeoPoint is a WGS84 position captured by a courier when reporting a delivery attempt.
// The zero value is invalid and will fail validation.
//
// Example:
//
//	p, err := kernel.NewGeoPoint(48.8566, 2.3522)
//	if err != nil {
//	    // Handle validation error
//	}
//	fmt.Println(p) // Output: GeoPoint(48.856600,2.352200)
type GeoPoint struct { //nolint:recvcheck //using for validation
	latitude  float64
	longitude float64
	guard     guard.ConstructorGuard
}

// NewGeoPoint creates a GeoPoint, checking latitude is within [-90, 90] and
// longitude within [-180, 180]. Both violations are reported together.
func NewGeoPoint(latitude, longitude float64) (GeoPoint, error) {
	p := GeoPoint{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(p.setLatitude(latitude), p.setLongitude(longitude)); err != nil {
		return GeoPoint{}, err
	}

	return p, nil
}

// Validate checks the GeoPoint was built through NewGeoPoint.
func (p GeoPoint) Validate() error {
	return p.guard.Validate(ErrGeoPointIsNotConstructed)
}

func (p GeoPoint) Latitude() float64 {
	return p.latitude
}

func (p GeoPoint) Longitude() float64 {
	return p.longitude
}

func (p GeoPoint) String() string {
	return fmt.Sprintf("GeoPoint(%f,%f)", p.latitude, p.longitude)
}

func (p *GeoPoint) setLatitude(latitude float64) error {
	if latitude < LatitudeMin || latitude > LatitudeMax {
		return errs.NewValueIsOutOfRangeError("latitude", latitude, LatitudeMin, LatitudeMax)
	}
	p.latitude = latitude
	return nil
}

func (p *GeoPoint) setLongitude(longitude float64) error {
	if longitude < LongitudeMin || longitude > LongitudeMax {
		return errs.NewValueIsOutOfRangeError("longitude", longitude, LongitudeMin, LongitudeMax)
	}
	p.longitude = longitude
	return nil
}
