// Package solar wraps github.com/hablullah/go-sampa (the NOAA Solar
// Position Algorithm library) to produce domain.SolarTimes for a given
// location and calendar date, including an extreme-latitude fallback
// for when the sun never crosses one of the five transition angles on
// a given day.
package solar

import (
	"fmt"
	"time"

	"github.com/hablullah/go-sampa"

	"github.com/sunsetr-dev/sunsetr/internal/domain"
)

// Engine computes domain.SolarTimes for a fixed location.
type Engine struct {
	loc sampa.Location
}

// New builds an Engine for the given coordinates.
func New(latitude, longitude float64) *Engine {
	return &Engine{loc: sampa.Location{Latitude: latitude, Longitude: longitude}}
}

func angleEvents() []sampa.CustomSunEvent {
	events := make([]sampa.CustomSunEvent, 0, len(domain.Angles)*2)
	for _, a := range domain.Angles {
		angle := float64(a)
		events = append(events,
			sampa.CustomSunEvent{
				Name:          descendingKey(a),
				BeforeTransit: false,
				Elevation:     func(_ sampa.SunPosition) float64 { return angle },
			},
			sampa.CustomSunEvent{
				Name:          ascendingKey(a),
				BeforeTransit: true,
				Elevation:     func(_ sampa.SunPosition) float64 { return angle },
			},
		)
	}
	return events
}

func descendingKey(a domain.Angle) string { return fmt.Sprintf("desc_%d", a) }
func ascendingKey(a domain.Angle) string  { return fmt.Sprintf("asc_%d", a) }

// At computes the sun's five descending and five ascending crossing
// times (upper, golden, horizon, civil, deep) for the local calendar
// date of ref, in loc.
//
// At extreme latitudes the sun may never reach one or more of these
// angles on a given day (polar day or polar night); when that happens
// for any of the five angles, Method is set to MethodExtremeFallback
// and each missing instant is synthesized as 00:00 of the local
// calendar date, collapsing that transition window to zero width
// rather than leaving it unset. No window of non-zero width is built
// around that instant, and polar day is not told apart from polar
// night.
func (e *Engine) At(ref time.Time, loc *time.Location) (domain.SolarTimes, error) {
	y, m, d := ref.In(loc).Date()
	date := time.Date(y, m, d, 0, 0, 0, 0, loc)

	events, err := sampa.GetSunEvents(date, e.loc, nil, angleEvents()...)
	if err != nil {
		return domain.SolarTimes{}, fmt.Errorf("computing sun events: %w", err)
	}

	st := domain.SolarTimes{
		Descending: make(map[domain.Angle]time.Time, len(domain.Angles)),
		Ascending:  make(map[domain.Angle]time.Time, len(domain.Angles)),
	}

	midnight := date
	fellBack := false
	for _, a := range domain.Angles {
		if pos, ok := events.Others[descendingKey(a)]; ok {
			st.Descending[a] = pos.DateTime
		} else {
			fellBack = true
			st.Descending[a] = midnight
		}
		if pos, ok := events.Others[ascendingKey(a)]; ok {
			st.Ascending[a] = pos.DateTime
		} else {
			fellBack = true
			st.Ascending[a] = midnight
		}
	}

	if fellBack {
		st.Method = domain.MethodExtremeFallback
	}
	return st, nil
}
