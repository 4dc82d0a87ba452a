package domain

import (
	"slices"
)

// Dataset is an immutable, ordered collection of incidents with a cached year index.
// All methods are safe for concurrent use.
type Dataset struct {
	incidents []Incident
	byYear    map[int][]Incident
	years     []int
	causes    map[string]struct{}
}

// NewDataset copies incidents into a new Dataset, preserving their order.
func NewDataset(incidents []Incident) *Dataset {
	d := &Dataset{
		incidents: slices.Clone(incidents),
		byYear:    make(map[int][]Incident),
		causes:    make(map[string]struct{}),
	}
	for _, inc := range d.incidents {
		if _, ok := d.byYear[inc.Year]; !ok {
			d.years = append(d.years, inc.Year)
		}
		d.byYear[inc.Year] = append(d.byYear[inc.Year], inc)
		d.causes[inc.Cause] = struct{}{}
	}
	slices.Sort(d.years)
	return d
}

// Len returns the number of incidents.
func (d *Dataset) Len() int { return len(d.incidents) }

// Incidents returns a copy of every incident in load order.
func (d *Dataset) Incidents() []Incident { return slices.Clone(d.incidents) }

// Years returns the distinct years, ascending.
func (d *Dataset) Years() []int { return slices.Clone(d.years) }

// YearDomain returns the smallest and largest year. ok is false for an empty dataset.
func (d *Dataset) YearDomain() (minYear, maxYear int, ok bool) {
	if len(d.years) == 0 {
		return 0, 0, false
	}
	return d.years[0], d.years[len(d.years)-1], true
}

// CheckYear returns an *OutOfRangeError when year lies outside the year domain.
func (d *Dataset) CheckYear(year int) error {
	minYear, maxYear, ok := d.YearDomain()
	if !ok {
		return ErrEmptyDataset
	}
	if year < minYear || year > maxYear {
		return &OutOfRangeError{Year: year, Min: minYear, Max: maxYear}
	}
	return nil
}

// HasCause reports whether any incident carries the cause label.
func (d *Dataset) HasCause(cause string) bool {
	_, ok := d.causes[cause]
	return ok
}

// Causes returns the cause vocabulary, sorted.
func (d *Dataset) Causes() []string {
	out := make([]string, 0, len(d.causes))
	for c := range d.causes {
		out = append(out, c)
	}
	slices.Sort(out)
	return out
}

// FilterByYear returns the incidents of a year in their original relative order.
// A year without incidents yields an empty, non-nil slice.
func (d *Dataset) FilterByYear(year int) []Incident {
	src := d.byYear[year]
	out := make([]Incident, len(src))
	copy(out, src)
	return out
}

// FilterByYearAndCause narrows FilterByYear to one cause label.
func (d *Dataset) FilterByYearAndCause(year int, cause string) []Incident {
	src := d.byYear[year]
	out := make([]Incident, 0, len(src))
	for _, inc := range src {
		if inc.Cause == cause {
			out = append(out, inc)
		}
	}
	return out
}

// CauseCounts aggregates FilterByYear(year) with CountByCause.
func (d *Dataset) CauseCounts(year int) []Count {
	return CountByCause(d.byYear[year])
}

// StateCounts aggregates FilterByYearAndCause(year, cause) with CountByState.
func (d *Dataset) StateCounts(year int, cause string) []Count {
	return CountByState(d.FilterByYearAndCause(year, cause))
}
