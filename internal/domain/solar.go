package domain

import "time"

// Angle is a solar elevation angle, in degrees, used as a twilight
// boundary. The five angles used throughout this package mirror the
// glossary's "twilight angle" entry.
type Angle int

const (
	AngleUpper  Angle = 10
	AngleGolden Angle = 6
	AngleHorizon Angle = 0
	AngleCivil  Angle = -2
	AngleDeep   Angle = -6
)

// Angles lists every twilight angle the solar engine computes, in the
// order they appear on the descending (sunset) branch.
var Angles = []Angle{AngleUpper, AngleGolden, AngleHorizon, AngleCivil, AngleDeep}

// Method records whether SolarTimes came from the standard algorithm
// or from the extreme-latitude fallback.
type Method int

const (
	MethodStandard Method = iota
	MethodExtremeFallback
)

// SolarTimes holds the UTC instants at which the sun crosses each
// twilight angle, on both branches, for one calendar date and location.
type SolarTimes struct {
	// Descending holds instants on the sunset (descending) branch.
	Descending map[Angle]time.Time
	// Ascending holds instants on the sunrise (ascending) branch.
	Ascending map[Angle]time.Time
	Method    Method
}

// SunsetStart is the beginning of the sunset transition in Geo mode:
// the sun descending through +10°.
func (s SolarTimes) SunsetStart() time.Time { return s.Descending[AngleUpper] }

// SunsetEnd is the end of the sunset transition in Geo mode: the sun
// descending through -2°.
func (s SolarTimes) SunsetEnd() time.Time { return s.Descending[AngleCivil] }

// SunriseStart is the beginning of the sunrise transition in Geo mode:
// the sun ascending through -2°.
func (s SolarTimes) SunriseStart() time.Time { return s.Ascending[AngleCivil] }

// SunriseEnd is the end of the sunrise transition in Geo mode: the sun
// ascending through +10°.
func (s SolarTimes) SunriseEnd() time.Time { return s.Ascending[AngleUpper] }

// Windows extracts the four Geo-mode transition windows from the full
// set of twilight instants.
func (s SolarTimes) Windows() TransitionWindows {
	return TransitionWindows{
		SunsetStart:  s.SunsetStart(),
		SunsetEnd:    s.SunsetEnd(),
		SunriseStart: s.SunriseStart(),
		SunriseEnd:   s.SunriseEnd(),
	}
}
