// Package geo turns GPS receiver output into reminder coordinates.
package geo

import (
	"errors"
	"fmt"
	"strings"

	"github.com/adrianmo/go-nmea"

	"locationreminders/internal/domain"
)

var (
	// ErrNoFix is returned for sentences that report no valid position
	ErrNoFix = errors.New("sentence carries no position fix")
	// ErrUnsupportedSentence is returned for sentence types without a position
	ErrUnsupportedSentence = errors.New("unsupported NMEA sentence")
)

// ParseNMEA extracts coordinates from a GGA or RMC sentence
func ParseNMEA(sentence string) (domain.Coordinates, error) {
	s, err := nmea.Parse(strings.TrimSpace(sentence))
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("parse NMEA: %w", err)
	}

	switch m := s.(type) {
	case nmea.GGA:
		if m.FixQuality == nmea.Invalid {
			return domain.Coordinates{}, ErrNoFix
		}
		return domain.Coordinates{Latitude: m.Latitude, Longitude: m.Longitude}, nil
	case nmea.RMC:
		if m.Validity != nmea.ValidRMC {
			return domain.Coordinates{}, ErrNoFix
		}
		return domain.Coordinates{Latitude: m.Latitude, Longitude: m.Longitude}, nil
	default:
		return domain.Coordinates{}, fmt.Errorf("%w: %s", ErrUnsupportedSentence, s.DataType())
	}
}
