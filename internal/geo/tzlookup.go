// Package geo resolves a configured (latitude, longitude) pair to an
// IANA timezone and holds the embedded city table that the interactive
// picker (internal/cli/picker) searches to choose that pair.
package geo

import (
	"time"

	"github.com/ringsaturn/tzf"
)

// finder is the tzf offline timezone boundary lookup, initialized once
// at load time since its embedded dataset is immutable for the life of
// the process.
var finder tzf.F

func init() {
	var err error
	finder, err = tzf.NewDefaultFinder()
	if err != nil {
		panic("failed to initialize timezone finder: " + err.Error())
	}
}

// TimezoneFor returns the IANA timezone identifier containing (lat,
// lon), falling back to "UTC" for points outside any known boundary
// (open ocean, disputed territory).
func TimezoneFor(lat, lon float64) string {
	tz := finder.GetTimezoneName(lon, lat)
	if tz == "" {
		return "UTC"
	}
	return tz
}

// LocationFor resolves (lat, lon) directly to a *time.Location,
// falling back to UTC if the resolved zone can't be loaded from the
// system's tzdata.
func LocationFor(lat, lon float64) *time.Location {
	loc, err := time.LoadLocation(TimezoneFor(lat, lon))
	if err != nil {
		return time.UTC
	}
	return loc
}
