package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// NoCause is the "none selected" sentinel for the cause selection.
const NoCause = ""

var validate = validator.New(validator.WithRequiredStructEnabled())

// RawRecord is one dataset row with every column still in its textual form.
type RawRecord struct {
	Year      string `json:"FIRE_YEAR"`
	State     string `json:"STATE"`
	Longitude string `json:"LONGITUDE"`
	Latitude  string `json:"LATITUDE"`
	Size      string `json:"FIRE_SIZE"`
	Cause     string `json:"STAT_CAUSE_DESCR"`
}

// Geo represents a WGS-84 latitude/longitude coordinate pair. The zero value means absent.
type Geo struct {
	Lat float64 `json:"lat,omitempty" validate:"gte=-90,lte=90"`
	Lon float64 `json:"lon,omitempty" validate:"gte=-180,lte=180"`
}

// Incident is one wildfire record. Values are never mutated once a Dataset holds them.
type Incident struct {
	Year  int     `json:"year" validate:"gte=1000,lte=9999"`
	State string  `json:"state,omitempty" validate:"omitempty,len=2,uppercase"`
	Geo   Geo     `json:"geo,omitempty"`
	Size  float64 `json:"size" validate:"gte=0"`
	Cause string  `json:"cause" validate:"required"`
}

// HasCoords reports whether the incident carries a location. Both axes must be set.
func (i Incident) HasCoords() bool {
	return i.Geo.Lat != 0 && i.Geo.Lon != 0
}

// ValidateIncident checks field constraints before an incident may enter a Dataset.
func ValidateIncident(inc Incident) error {
	if err := validate.Struct(inc); err != nil {
		return fmt.Errorf("invalid incident: %w", err)
	}
	return nil
}

// ParseRecord converts a textual row into a validated Incident.
func ParseRecord(rec RawRecord) (Incident, error) {
	year, err := parseYear(rec.Year)
	if err != nil {
		return Incident{}, err
	}

	inc := Incident{
		Year:  year,
		State: strings.ToUpper(strings.TrimSpace(rec.State)),
		Geo:   parseGeo(rec.Latitude, rec.Longitude),
		Size:  parseFloatOrZero(rec.Size),
		Cause: strings.TrimSpace(rec.Cause),
	}
	if err := ValidateIncident(inc); err != nil {
		return Incident{}, err
	}
	return inc, nil
}

// parseYear accepts "2005" as well as the "2005.0" spelling some exports produce.
func parseYear(s string) (int, error) {
	s = strings.TrimSpace(s)
	if y, err := strconv.Atoi(s); err == nil {
		return y, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != math.Trunc(f) {
		return 0, fmt.Errorf("parse year %q: not an integer", s)
	}
	return int(f), nil
}

// parseGeo returns the zero Geo unless both coordinates parse as finite numbers.
func parseGeo(lat, lon string) Geo {
	la, okLat := parseFloat(lat)
	lo, okLon := parseFloat(lon)
	if !okLat || !okLon {
		return Geo{}
	}
	return Geo{Lat: la, Lon: lo}
}

// parseFloatOrZero parses a string as float64, returning 0 on failure or non-finite input.
func parseFloatOrZero(s string) float64 {
	v, _ := parseFloat(s)
	return v
}

func parseFloat(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
